package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/feedgate/feedgate/internal/ingest"
)

// ErrNotFound is returned when no article matches the lookup.
var ErrNotFound = errors.New("article not found")

// ErrDuplicate is returned by Insert when an article with the same
// (tenant_id, source_id, external_id) already exists. The existing record is
// returned alongside, so redelivered webhooks stay idempotent.
var ErrDuplicate = errors.New("article already ingested")

// ArticleStore persists canonical article records in SQLite.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore wraps an opened database.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

// ListFilter narrows List results. Zero values mean no restriction.
type ListFilter struct {
	TenantID string
	SourceID string
	Limit    int
}

const defaultListLimit = 50

const articleColumns = `id, tenant_id, source_id, external_id, title, url,
  description, content, author, published_at, image_url, tags, source_url,
  is_read, read_at, is_bookmarked, bookmarked_at, is_curated, curated_at,
  is_archived, archived_at, created_at`

// Insert stores a and returns the stored record with its assigned id and
// created_at. If the article was already ingested, the existing record is
// returned with ErrDuplicate.
func (s *ArticleStore) Insert(ctx context.Context, a ingest.Article) (ingest.Article, error) {
	a.ID = uuid.NewString()
	a.CreatedAt = time.Now().UTC()

	tags, err := encodeTags(a.Tags)
	if err != nil {
		return ingest.Article{}, fmt.Errorf("encode tags: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
INSERT INTO articles (
  id, tenant_id, source_id, external_id, title, url,
  description, content, author, published_at, image_url, tags, source_url,
  is_read, read_at, is_bookmarked, bookmarked_at, is_curated, curated_at,
  is_archived, archived_at, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (tenant_id, source_id, external_id) DO NOTHING`,
		a.ID, a.TenantID, a.SourceID, a.ExternalID, a.Title, a.URL,
		a.Description, a.Content, a.Author, formatTime(a.PublishedAt), a.ImageURL, tags, a.SourceURL,
		a.IsRead, formatTimePtr(a.ReadAt), a.IsBookmarked, formatTimePtr(a.BookmarkedAt),
		a.IsCurated, formatTimePtr(a.CuratedAt), a.IsArchived, formatTimePtr(a.ArchivedAt),
		formatTime(a.CreatedAt),
	)
	if err != nil {
		return ingest.Article{}, fmt.Errorf("insert article: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return ingest.Article{}, fmt.Errorf("insert article: %w", err)
	}
	if affected == 0 {
		existing, err := s.GetByExternalID(ctx, a.TenantID, a.SourceID, a.ExternalID)
		if err != nil {
			return ingest.Article{}, fmt.Errorf("load duplicate article: %w", err)
		}
		return existing, ErrDuplicate
	}

	return a, nil
}

// GetByID looks an article up by its assigned id.
func (s *ArticleStore) GetByID(ctx context.Context, id string) (ingest.Article, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE id = ?`, id)
	return scanArticle(row)
}

// GetByExternalID looks an article up by its sender-supplied identity within
// a tenant and source.
func (s *ArticleStore) GetByExternalID(ctx context.Context, tenantID, sourceID, externalID string) (ingest.Article, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+` FROM articles
		 WHERE tenant_id = ? AND source_id = ? AND external_id = ?`,
		tenantID, sourceID, externalID)
	return scanArticle(row)
}

// List returns the most recently ingested articles matching filter.
func (s *ArticleStore) List(ctx context.Context, filter ListFilter) ([]ingest.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE 1=1`
	args := []any{}
	if filter.TenantID != "" {
		query += ` AND tenant_id = ?`
		args = append(args, filter.TenantID)
	}
	if filter.SourceID != "" {
		query += ` AND source_id = ?`
		args = append(args, filter.SourceID)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var articles []ingest.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (ingest.Article, error) {
	var (
		a            ingest.Article
		publishedAt  string
		createdAt    string
		tags         sql.NullString
		readAt       sql.NullString
		bookmarkedAt sql.NullString
		curatedAt    sql.NullString
		archivedAt   sql.NullString
	)

	err := row.Scan(
		&a.ID, &a.TenantID, &a.SourceID, &a.ExternalID, &a.Title, &a.URL,
		&a.Description, &a.Content, &a.Author, &publishedAt, &a.ImageURL, &tags, &a.SourceURL,
		&a.IsRead, &readAt, &a.IsBookmarked, &bookmarkedAt,
		&a.IsCurated, &curatedAt, &a.IsArchived, &archivedAt,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return ingest.Article{}, ErrNotFound
	}
	if err != nil {
		return ingest.Article{}, fmt.Errorf("scan article: %w", err)
	}

	if a.PublishedAt, err = parseTime(publishedAt); err != nil {
		return ingest.Article{}, err
	}
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return ingest.Article{}, err
	}
	if a.ReadAt, err = parseTimeNull(readAt); err != nil {
		return ingest.Article{}, err
	}
	if a.BookmarkedAt, err = parseTimeNull(bookmarkedAt); err != nil {
		return ingest.Article{}, err
	}
	if a.CuratedAt, err = parseTimeNull(curatedAt); err != nil {
		return ingest.Article{}, err
	}
	if a.ArchivedAt, err = parseTimeNull(archivedAt); err != nil {
		return ingest.Article{}, err
	}
	if tags.Valid {
		if err := json.Unmarshal([]byte(tags.String), &a.Tags); err != nil {
			return ingest.Article{}, fmt.Errorf("decode tags: %w", err)
		}
	}

	return a, nil
}

// encodeTags stores nil as SQL NULL so the record round-trips its shape.
func encodeTags(tags []string) (any, error) {
	if tags == nil {
		return nil, nil
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", s, err)
	}
	return t, nil
}

func parseTimeNull(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
