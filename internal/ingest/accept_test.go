package ingest

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minimalPayload() Payload {
	return Payload{
		ExternalID: "a-1",
		Title:      "Hello",
		URL:        "https://example.com/a-1",
	}
}

func TestAccept_RequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Payload)
		wantErr string
	}{
		{"missing external_id", func(p *Payload) { p.ExternalID = "" }, "external_id"},
		{"missing title", func(p *Payload) { p.Title = "" }, "title"},
		{"missing url", func(p *Payload) { p.URL = "" }, "url"},
		{"whitespace-only title", func(p *Payload) { p.Title = "   " }, "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := minimalPayload()
			tt.mutate(&p)

			_, err := Accept(p, "newsroom", "")
			require.Error(t, err)

			var missing *MissingFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.wantErr, missing.Field)
		})
	}
}

func TestAccept_Defaults(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	a, err := acceptAt(minimalPayload(), "newsroom", "", now)
	require.NoError(t, err)

	assert.Equal(t, DefaultTenant, a.TenantID)
	assert.Equal(t, "newsroom", a.SourceID)
	assert.Equal(t, "a-1", a.ExternalID)

	// Omitted published_at defaults to acceptance time.
	assert.Equal(t, now, a.PublishedAt)

	// Optional fields are explicit nulls, not garbage.
	assert.Nil(t, a.Description)
	assert.Nil(t, a.Content)
	assert.Nil(t, a.Author)
	assert.Nil(t, a.ImageURL)
	assert.Nil(t, a.SourceURL)
	assert.Nil(t, a.Tags)

	// Curation state always starts not-acted-upon.
	assert.False(t, a.IsRead)
	assert.Nil(t, a.ReadAt)
	assert.False(t, a.IsBookmarked)
	assert.Nil(t, a.BookmarkedAt)
	assert.False(t, a.IsCurated)
	assert.Nil(t, a.CuratedAt)
	assert.False(t, a.IsArchived)
	assert.Nil(t, a.ArchivedAt)
}

func TestAccept_SenderPublishedAtPreserved(t *testing.T) {
	published := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p := minimalPayload()
	p.PublishedAt = &published

	a, err := Accept(p, "newsroom", "tenant-a")
	require.NoError(t, err)
	assert.Equal(t, published, a.PublishedAt)
	assert.Equal(t, "tenant-a", a.TenantID)
}

// TestAccept_Idempotence: accepting the same minimal payload twice produces
// records identical except for the defaulted published_at, and never mutates
// the input.
func TestAccept_Idempotence(t *testing.T) {
	p := minimalPayload()
	p.Tags = []string{"go", "security"}
	before := p

	first, err := Accept(p, "newsroom", "")
	require.NoError(t, err)
	second, err := Accept(p, "newsroom", "")
	require.NoError(t, err)

	// Input untouched.
	assert.Equal(t, before, p)

	first.PublishedAt = time.Time{}
	second.PublishedAt = time.Time{}
	assert.Equal(t, first, second)

	// The record must not alias the caller's tags slice.
	first, err = Accept(p, "newsroom", "")
	require.NoError(t, err)
	first.Tags[0] = "mutated"
	assert.Equal(t, "go", p.Tags[0])
}

// TestAccept_TenantIsolation: tenant and source identity always come from
// the caller. A payload carrying its own tenant_id or source_id fields is
// decoded without them ever reaching the record.
func TestAccept_TenantIsolation(t *testing.T) {
	raw := []byte(`{
		"external_id": "a-1",
		"title": "Hello",
		"url": "https://example.com/a-1",
		"tenant_id": "forged-tenant",
		"source_id": "forged-source",
		"is_curated": true,
		"is_archived": true
	}`)

	var p Payload
	require.NoError(t, json.Unmarshal(raw, &p))

	a, err := Accept(p, "newsroom", "tenant-a")
	require.NoError(t, err)

	assert.Equal(t, "tenant-a", a.TenantID)
	assert.Equal(t, "newsroom", a.SourceID)
	assert.False(t, a.IsCurated)
	assert.False(t, a.IsArchived)
}

// TestArticle_JSONShape: every optional field serializes as an explicit null
// rather than being omitted.
func TestArticle_JSONShape(t *testing.T) {
	a, err := Accept(minimalPayload(), "newsroom", "")
	require.NoError(t, err)

	data, err := json.Marshal(a)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))

	for _, key := range []string{"description", "content", "author", "image_url", "tags", "source_url", "read_at", "bookmarked_at", "curated_at", "archived_at"} {
		v, present := out[key]
		assert.True(t, present, "key %q should be present", key)
		assert.Nil(t, v, "key %q should be null", key)
	}
}
