package signature

import (
	"crypto/hmac"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
)

// Expected verification failures. These are the only errors a Result carries
// besides wrapped crypto errors.
var (
	ErrNoSecret         = errors.New("no secret configured")
	ErrMissingSignature = errors.New("missing signature header")
	ErrInvalidFormat    = errors.New("invalid signature format")
	ErrMismatch         = errors.New("signature mismatch")
)

// Config holds the verification policy for one webhook source. It is
// resolved once at construction and never mutated afterwards.
type Config struct {
	// Secret is the shared HMAC key. Empty means signature checking is
	// skipped unless RequireSignature is set.
	Secret string

	// Algorithm is the digest used when the header format does not declare
	// one. Defaults to SHA-256.
	Algorithm Algorithm

	// RequireSignature rejects requests whose signature is missing or
	// unverifiable instead of passing them through.
	RequireSignature bool
}

// Result is the outcome of one verification attempt. Err is set only when
// Valid is false; there is no partial validity.
type Result struct {
	Valid bool
	Err   error
}

func ok() Result                { return Result{Valid: true} }
func rejected(err error) Result { return Result{Valid: false, Err: err} }

// Verifier checks inbound payloads against one Config. It is stateless and
// safe for concurrent use.
type Verifier struct {
	cfg    Config
	logger *slog.Logger
}

// NewVerifier builds a Verifier, resolving config defaults. The logger is a
// required collaborator; pass a handler that discards for silent operation.
func NewVerifier(cfg Config, logger *slog.Logger) *Verifier {
	if cfg.Algorithm == "" {
		cfg.Algorithm = DefaultAlgorithm
	}
	return &Verifier{cfg: cfg, logger: logger}
}

// Verify checks header against the HMAC of body under the configured secret.
//
// body must be the raw request bytes as received, captured before any JSON
// parsing. The sender signed those exact bytes; verifying anything
// re-serialized would reject legitimate deliveries.
//
// Expected failures come back as a Result, never an error or panic.
func (v *Verifier) Verify(body []byte, header string) Result {
	if v.cfg.Secret == "" {
		if v.cfg.RequireSignature {
			return v.fail(ErrNoSecret, header)
		}
		return ok()
	}

	if header == "" {
		if v.cfg.RequireSignature {
			return v.fail(ErrMissingSignature, header)
		}
		return ok()
	}

	parsed, parsedOK := Parse(header, v.cfg.Algorithm)
	if !parsedOK {
		// Do the same work as the mismatch path so a format rejection is
		// not distinguishable from a signature mismatch by response latency.
		if expected, err := Sign(body, v.cfg.Secret, v.cfg.Algorithm); err == nil {
			ConstantTimeEqual(expected, header)
		}
		return v.fail(ErrInvalidFormat, header)
	}

	expected, err := Sign(body, v.cfg.Secret, parsed.Algorithm)
	if err != nil {
		return v.fail(fmt.Errorf("compute signature: %w", err), header)
	}

	if !ConstantTimeEqual(expected, parsed.Signature) {
		return v.fail(ErrMismatch, header)
	}

	v.logger.Debug("webhook signature verified", "algorithm", string(parsed.Algorithm))
	return ok()
}

// fail logs a rejection with enough context to diagnose misconfiguration.
// The header is truncated and the secret and computed digest are never
// logged; full values would hand an attacker the comparison target.
func (v *Verifier) fail(err error, header string) Result {
	v.logger.Warn("webhook signature rejected",
		"error", err.Error(),
		"algorithm", string(v.cfg.Algorithm),
		"header", truncate(header, 16),
	)
	return rejected(err)
}

// Sign computes the hex-encoded HMAC of body keyed by secret. Exported for
// senders and tests that need to produce valid signatures.
func Sign(body []byte, secret string, alg Algorithm) (string, error) {
	if alg == "" {
		alg = DefaultAlgorithm
	}
	newHash, err := alg.hashFunc()
	if err != nil {
		return "", err
	}
	mac := hmac.New(newHash, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil)), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
