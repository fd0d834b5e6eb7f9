package api

import (
	"context"

	"github.com/feedgate/feedgate/internal/ingest"
	"github.com/feedgate/feedgate/internal/storage"
)

// ArticleReader is the store contract the read API needs.
type ArticleReader interface {
	GetByID(ctx context.Context, id string) (ingest.Article, error)
	List(ctx context.Context, filter storage.ListFilter) ([]ingest.Article, error)
}

// Config holds API server configuration.
type Config struct {
	Listen string
	// APIKey is the bearer token granting read access.
	APIKey string
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// ArticleListResponse wraps a page of articles.
type ArticleListResponse struct {
	Articles []ingest.Article `json:"articles"`
	Count    int              `json:"count"`
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
