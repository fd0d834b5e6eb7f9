package webhook

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/feedgate/feedgate/internal/config"
	"github.com/feedgate/feedgate/internal/signature"
)

// FromGlobalConfig converts config.WebhooksConfig to webhook.Config,
// resolving algorithms and parsing max body sizes. All defaults are fixed
// here, once, so nothing is re-resolved per request.
func FromGlobalConfig(wc *config.WebhooksConfig) (Config, error) {
	if wc == nil {
		return Config{}, fmt.Errorf("webhooks config is nil")
	}

	cfg := Config{
		Listen:  wc.Listen,
		Sources: make([]Source, len(wc.Sources)),
	}

	for i, src := range wc.Sources {
		alg, err := parseAlgorithm(src.Algorithm)
		if err != nil {
			return Config{}, fmt.Errorf("webhook source %q: %w", src.ID, err)
		}

		// Parse max body size (e.g., "1MB", "262144")
		maxBodySize, err := parseMaxBodySize(src.MaxBodySize)
		if err != nil {
			return Config{}, fmt.Errorf("webhook source %q: invalid max_body_size %q: %w", src.ID, src.MaxBodySize, err)
		}

		cfg.Sources[i] = Source{
			Path:     src.Path,
			ID:       src.ID,
			TenantID: src.TenantID,
			Signature: signature.Config{
				Secret:           src.Secret,
				Algorithm:        alg,
				RequireSignature: src.RequireSignature,
			},
			AllowedIPs:  src.AllowedIPs,
			MaxBodySize: maxBodySize,
		}
	}

	return cfg, nil
}

func parseAlgorithm(s string) (signature.Algorithm, error) {
	switch strings.ToLower(s) {
	case "":
		return signature.DefaultAlgorithm, nil
	case "sha256":
		return signature.AlgorithmSHA256, nil
	case "sha512":
		return signature.AlgorithmSHA512, nil
	default:
		return "", fmt.Errorf("unsupported algorithm %q", s)
	}
}

// parseMaxBodySize parses size strings like "1MB", "262144" to bytes.
// Returns DefaultMaxBodySize if empty.
func parseMaxBodySize(size string) (int64, error) {
	if size == "" {
		return DefaultMaxBodySize, nil
	}

	// Handle unit suffixes (KB, MB, GB)
	upper := strings.ToUpper(size)
	multiplier := int64(1)

	if strings.HasSuffix(upper, "KB") {
		multiplier = 1024
		size = strings.TrimSuffix(upper, "KB")
	} else if strings.HasSuffix(upper, "MB") {
		multiplier = 1024 * 1024
		size = strings.TrimSuffix(upper, "MB")
	} else if strings.HasSuffix(upper, "GB") {
		multiplier = 1024 * 1024 * 1024
		size = strings.TrimSuffix(upper, "GB")
	}

	// Parse numeric value
	value, err := strconv.ParseInt(strings.TrimSpace(size), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value: %w", err)
	}

	if value <= 0 {
		return 0, fmt.Errorf("size must be positive")
	}

	result := value * multiplier
	if result < 0 { // Check for overflow
		return 0, fmt.Errorf("size too large")
	}

	return result, nil
}
