// Package ingest validates accepted webhook payloads and maps them into
// canonical article records. Signature and origin checks happen upstream;
// this package only cares about structural completeness and shape.
package ingest

import (
	"fmt"
	"strings"
	"time"
)

// MissingFieldError reports a required payload field that is empty or absent.
// It is deliberately a distinct type from signature failures: "this sender is
// not who they claim to be" and "this sender sent malformed data" must never
// be conflated.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// Accept validates p and maps it to a canonical Article for sourceID and
// tenantID. An empty tenantID selects DefaultTenant. The input payload is
// never mutated.
//
// Required fields missing yields a *MissingFieldError; required fields are
// never silently defaulted.
func Accept(p Payload, sourceID, tenantID string) (Article, error) {
	return acceptAt(p, sourceID, tenantID, time.Now().UTC())
}

func acceptAt(p Payload, sourceID, tenantID string, now time.Time) (Article, error) {
	for _, f := range []struct {
		name, value string
	}{
		{"external_id", p.ExternalID},
		{"title", p.Title},
		{"url", p.URL},
	} {
		if strings.TrimSpace(f.value) == "" {
			return Article{}, &MissingFieldError{Field: f.name}
		}
	}

	if tenantID == "" {
		tenantID = DefaultTenant
	}

	publishedAt := now
	if p.PublishedAt != nil {
		publishedAt = *p.PublishedAt
	}

	// Copy the tags slice so the record never aliases caller memory.
	var tags []string
	if p.Tags != nil {
		tags = append([]string(nil), p.Tags...)
	}

	return Article{
		TenantID:    tenantID,
		SourceID:    sourceID,
		ExternalID:  p.ExternalID,
		Title:       p.Title,
		URL:         p.URL,
		Description: p.Description,
		Content:     p.Content,
		Author:      p.Author,
		PublishedAt: publishedAt,
		ImageURL:    p.ImageURL,
		Tags:        tags,
		SourceURL:   p.SourceURL,
	}, nil
}
