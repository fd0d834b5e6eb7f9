package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/feedgate/feedgate/internal/ingest"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "feedgate.db")
	db, err := OpenSQLite(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testArticle(externalID string) ingest.Article {
	desc := "a description"
	return ingest.Article{
		TenantID:    ingest.DefaultTenant,
		SourceID:    "newsroom",
		ExternalID:  externalID,
		Title:       "Hello",
		URL:         "https://example.com/" + externalID,
		Description: &desc,
		PublishedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Tags:        []string{"go", "security"},
	}
}

func TestOpenSQLiteBootstrapsTables(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)

	var name string
	if err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='articles';").Scan(&name); err != nil {
		t.Fatalf("articles table missing: %v", err)
	}
}

func TestInsertAndGet(t *testing.T) {
	t.Parallel()

	store := NewArticleStore(openTestDB(t))
	ctx := context.Background()

	inserted, err := store.Insert(ctx, testArticle("a-1"))
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if inserted.ID == "" {
		t.Fatal("Insert should assign an id")
	}
	if inserted.CreatedAt.IsZero() {
		t.Fatal("Insert should assign created_at")
	}

	got, err := store.GetByID(ctx, inserted.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ExternalID != "a-1" || got.Title != "Hello" {
		t.Errorf("GetByID = %+v, want inserted article", got)
	}
	if got.Description == nil || *got.Description != "a description" {
		t.Errorf("Description = %v, want 'a description'", got.Description)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "go" {
		t.Errorf("Tags = %v, want [go security]", got.Tags)
	}
	if !got.PublishedAt.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Errorf("PublishedAt = %v", got.PublishedAt)
	}
	if got.Content != nil || got.Author != nil || got.ReadAt != nil {
		t.Errorf("optional fields should stay null: %+v", got)
	}

	byExternal, err := store.GetByExternalID(ctx, ingest.DefaultTenant, "newsroom", "a-1")
	if err != nil {
		t.Fatalf("GetByExternalID: %v", err)
	}
	if byExternal.ID != inserted.ID {
		t.Errorf("GetByExternalID id = %q, want %q", byExternal.ID, inserted.ID)
	}
}

func TestInsertDuplicateReturnsExisting(t *testing.T) {
	t.Parallel()

	store := NewArticleStore(openTestDB(t))
	ctx := context.Background()

	first, err := store.Insert(ctx, testArticle("a-1"))
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	redelivered, err := store.Insert(ctx, testArticle("a-1"))
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("Insert duplicate error = %v, want ErrDuplicate", err)
	}
	if redelivered.ID != first.ID {
		t.Errorf("duplicate insert returned id %q, want existing %q", redelivered.ID, first.ID)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	t.Parallel()

	store := NewArticleStore(openTestDB(t))
	if _, err := store.GetByID(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetByID error = %v, want ErrNotFound", err)
	}
}

func TestListFilters(t *testing.T) {
	t.Parallel()

	store := NewArticleStore(openTestDB(t))
	ctx := context.Background()

	for _, ext := range []string{"a-1", "a-2"} {
		if _, err := store.Insert(ctx, testArticle(ext)); err != nil {
			t.Fatalf("Insert %s: %v", ext, err)
		}
	}
	other := testArticle("b-1")
	other.SourceID = "blogroll"
	if _, err := store.Insert(ctx, other); err != nil {
		t.Fatalf("Insert b-1: %v", err)
	}

	all, err := store.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List all = %d articles, want 3", len(all))
	}

	newsroom, err := store.List(ctx, ListFilter{SourceID: "newsroom"})
	if err != nil {
		t.Fatalf("List newsroom: %v", err)
	}
	if len(newsroom) != 2 {
		t.Errorf("List newsroom = %d articles, want 2", len(newsroom))
	}

	limited, err := store.List(ctx, ListFilter{Limit: 1})
	if err != nil {
		t.Fatalf("List limited: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("List limit=1 = %d articles, want 1", len(limited))
	}
}
