package ingest

import "time"

// DefaultTenant is used when the caller does not supply a tenant. Single
// tenant is the default deployment shape; multi-tenant callers pass their own.
const DefaultTenant = "default"

// Payload is an inbound article as the sender shipped it, prior to
// acceptance. Only external_id, title and url are required. Tenant and
// source identity are deliberately absent: those come from the receiving
// endpoint, never from the sender.
type Payload struct {
	ExternalID  string     `json:"external_id"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Description *string    `json:"description"`
	Content     *string    `json:"content"`
	Author      *string    `json:"author"`
	PublishedAt *time.Time `json:"published_at"`
	ImageURL    *string    `json:"image_url"`
	Tags        []string   `json:"tags"`
	SourceURL   *string    `json:"source_url"`
}

// Article is the canonical record the persistence layer accepts. Every field
// is present: optional input maps to explicit nulls, never missing keys, so
// downstream consumers always see a uniform shape.
//
// ID and CreatedAt are assigned by the store on insert.
type Article struct {
	ID         string `json:"id"`
	TenantID   string `json:"tenant_id"`
	SourceID   string `json:"source_id"`
	ExternalID string `json:"external_id"`

	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Description *string    `json:"description"`
	Content     *string    `json:"content"`
	Author      *string    `json:"author"`
	PublishedAt time.Time  `json:"published_at"`
	ImageURL    *string    `json:"image_url"`
	Tags        []string   `json:"tags"`
	SourceURL   *string    `json:"source_url"`

	// Curation state is owned by the dashboard workflow. A webhook can never
	// set these; they always start not-acted-upon.
	IsRead       bool       `json:"is_read"`
	ReadAt       *time.Time `json:"read_at"`
	IsBookmarked bool       `json:"is_bookmarked"`
	BookmarkedAt *time.Time `json:"bookmarked_at"`
	IsCurated    bool       `json:"is_curated"`
	CuratedAt    *time.Time `json:"curated_at"`
	IsArchived   bool       `json:"is_archived"`
	ArchivedAt   *time.Time `json:"archived_at"`

	CreatedAt time.Time `json:"created_at"`
}
