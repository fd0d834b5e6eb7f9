package config

import (
	"fmt"
	"strings"
)

// Validate checks structural consistency of a loaded Config.
func Validate(cfg *Config) error {
	if len(cfg.Webhooks.Sources) == 0 {
		return fmt.Errorf("webhooks: at least one source must be configured")
	}

	seenPaths := make(map[string]string)
	seenIDs := make(map[string]bool)
	for i, src := range cfg.Webhooks.Sources {
		if src.ID == "" {
			return fmt.Errorf("webhooks.sources[%d]: id is required", i)
		}
		if src.Path == "" || !strings.HasPrefix(src.Path, "/") {
			return fmt.Errorf("webhooks.sources[%d] (%s): path must start with '/'", i, src.ID)
		}
		if prev, dup := seenPaths[src.Path]; dup {
			return fmt.Errorf("webhooks.sources[%d] (%s): path %q already used by source %q", i, src.ID, src.Path, prev)
		}
		seenPaths[src.Path] = src.ID
		if seenIDs[src.ID] {
			return fmt.Errorf("webhooks.sources[%d]: duplicate source id %q", i, src.ID)
		}
		seenIDs[src.ID] = true

		switch src.Algorithm {
		case "", "sha256", "sha512":
		default:
			return fmt.Errorf("webhooks.sources[%d] (%s): unsupported algorithm %q", i, src.ID, src.Algorithm)
		}
	}

	if cfg.API.Enabled && cfg.API.APIKey == "" {
		return fmt.Errorf("api: enabled but api_key is empty")
	}

	return nil
}

// Warnings returns non-fatal findings worth surfacing at startup. A source
// that requires signatures with no secret stays loadable: it rejects every
// delivery at runtime, which is the safe failure mode. It is still almost
// always an unset ${ENV_VAR}, so say so.
func Warnings(cfg *Config) []string {
	var out []string
	for _, src := range cfg.Webhooks.Sources {
		if src.RequireSignature && src.Secret == "" {
			out = append(out, fmt.Sprintf("source %q requires signatures but has no secret; all deliveries will be rejected (unset environment variable?)", src.ID))
		}
	}
	return out
}
