package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/feedgate/feedgate/internal/ingest"
	"github.com/feedgate/feedgate/internal/signature"
	"github.com/feedgate/feedgate/internal/storage"
)

// endpoint is one source with its policy objects resolved at construction.
type endpoint struct {
	source    Source
	verifier  *signature.Verifier
	allowlist Allowlist
}

// Server represents the webhook HTTP server.
type Server struct {
	config Config
	store  ArticleStore
	logger *slog.Logger
	server *http.Server

	// endpoints maps URL paths to their resolved configurations
	endpoints map[string]*endpoint
}

// New creates a new webhook server instance.
func New(config Config, store ArticleStore, logger *slog.Logger) *Server {
	endpoints := make(map[string]*endpoint)
	for i := range config.Sources {
		src := config.Sources[i]

		// Apply defaults
		if src.MaxBodySize == 0 {
			src.MaxBodySize = DefaultMaxBodySize
		}

		endpoints[src.Path] = &endpoint{
			source:    src,
			verifier:  signature.NewVerifier(src.Signature, logger.With("source", src.ID)),
			allowlist: NewAllowlist(src.AllowedIPs),
		}
	}

	return &Server{
		config:    config,
		store:     store,
		logger:    logger,
		endpoints: endpoints,
	}
}

// Start starts the webhook HTTP server (blocking).
func (s *Server) Start(ctx context.Context) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         s.config.Listen,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("webhook server starting", "listen", s.config.Listen, "sources", len(s.endpoints))

	// Run server in goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for context cancellation or server error
	select {
	case <-ctx.Done():
		s.logger.Info("webhook server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("webhook server shutdown failed: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		return fmt.Errorf("webhook server error: %w", err)
	}
}

// setupRoutes configures the HTTP router.
func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	// Register source endpoints
	for path := range s.endpoints {
		r.Post(path, s.handleIngest)
	}

	return r
}

// loggingMiddleware logs HTTP requests (excludes payload content).
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		// Log request (no body content for security)
		s.logger.Info("webhook request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
			"remote_addr", r.RemoteAddr,
		)
	})
}

// handleIngest handles incoming article webhook POST requests.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Look up source configuration
	ep, ok := s.endpoints[r.URL.Path]
	if !ok {
		s.respondError(w, http.StatusNotFound, "endpoint not found")
		return
	}

	// Origin check runs before the body is even read: it is the cheapest
	// rejection and independent of the signature check.
	if ip := callerIP(r); !ep.allowlist.Allows(ip) {
		s.logger.Warn("webhook origin rejected",
			"path", r.URL.Path,
			"source", ep.source.ID,
			"remote_ip", ip,
		)
		s.respondError(w, http.StatusForbidden, "forbidden")
		return
	}

	// Enforce body size limit
	limitedReader := io.LimitReader(r.Body, ep.source.MaxBodySize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to read request body")
		return
	}

	// Check if body exceeded limit
	if int64(len(body)) > ep.source.MaxBodySize {
		s.respondError(w, http.StatusRequestEntityTooLarge, "payload too large")
		return
	}

	// Verify the HMAC over the raw bytes, before any JSON parsing touches
	// the body. The response stays a generic 403 either way.
	if res := ep.verifier.Verify(body, extractSignature(r.Header)); !res.Valid {
		s.respondError(w, http.StatusForbidden, "forbidden")
		return
	}

	var payload ingest.Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	article, err := ingest.Accept(payload, ep.source.ID, ep.source.TenantID)
	if err != nil {
		var missing *ingest.MissingFieldError
		if errors.As(err, &missing) {
			// Structural failures name the field: unlike signature failures
			// they reveal no secret material.
			s.respondError(w, http.StatusUnprocessableEntity, missing.Error())
			return
		}
		s.respondError(w, http.StatusInternalServerError, "failed to accept payload")
		return
	}

	stored, err := s.store.Insert(ctx, article)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			// Redelivery of an already-ingested article is not an error.
			s.logger.Info("webhook article redelivered",
				"path", r.URL.Path,
				"source", ep.source.ID,
				"article_id", stored.ID,
			)
			s.respondJSON(w, http.StatusOK, IngestResponse{ArticleID: stored.ID})
			return
		}
		s.logger.Error("failed to store article",
			"path", r.URL.Path,
			"source", ep.source.ID,
			"error", err,
		)
		s.respondError(w, http.StatusInternalServerError, "failed to store article")
		return
	}

	s.logger.Info("webhook article ingested",
		"path", r.URL.Path,
		"source", ep.source.ID,
		"tenant", stored.TenantID,
		"article_id", stored.ID,
	)

	// Respond with 202 Accepted
	s.respondJSON(w, http.StatusAccepted, IngestResponse{ArticleID: stored.ID})
}

// callerIP extracts the caller's IP. The RealIP middleware has already
// resolved proxy headers into RemoteAddr; a bare IP without a port is kept
// as-is.
func callerIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// respondJSON sends a JSON response.
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends a JSON error response.
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{Error: message})
}
