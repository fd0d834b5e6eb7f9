package webhook

import (
	"context"

	"github.com/feedgate/feedgate/internal/ingest"
	"github.com/feedgate/feedgate/internal/signature"
)

// ArticleStore is the persistence contract the server needs.
type ArticleStore interface {
	Insert(ctx context.Context, a ingest.Article) (ingest.Article, error)
}

// Config holds webhook server configuration.
type Config struct {
	Listen  string
	Sources []Source
}

// Source defines a single webhook ingestion endpoint. All policy is resolved
// at construction time; nothing is re-read per request.
type Source struct {
	// Path is the URL path for this source (e.g., "/webhook/newsroom").
	Path string

	// ID is stamped on every record ingested through this endpoint. It comes
	// from configuration, never from the payload.
	ID string

	// TenantID is stamped on every record. Empty selects the default tenant.
	TenantID string

	// Signature is the HMAC verification policy for this source.
	Signature signature.Config

	// AllowedIPs restricts callers to an exact-match IP allowlist. Empty
	// means no restriction.
	AllowedIPs []string

	// MaxBodySize is the maximum allowed request body size in bytes
	// (default: 1MB).
	MaxBodySize int64
}

// IngestResponse is the JSON response for accepted payloads.
type IngestResponse struct {
	ArticleID string `json:"article_id"`
}

// ErrorResponse is the JSON response for webhook errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DefaultMaxBodySize bounds request bodies when a source does not set one.
const DefaultMaxBodySize = 1048576 // 1 MB
