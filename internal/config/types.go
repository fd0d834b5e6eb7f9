package config

// Config represents the complete feedgate configuration.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Storage  StorageConfig  `yaml:"storage"`
	API      APIConfig      `yaml:"api,omitempty"`
	Webhooks WebhooksConfig `yaml:"webhooks"`
}

// ServiceConfig defines core service settings.
type ServiceConfig struct {
	Name      string `yaml:"name"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// StorageConfig defines article storage settings.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// APIConfig defines the read API server settings.
type APIConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
	// APIKey is the bearer token for the read API.
	APIKey string `yaml:"api_key"`
}

// WebhooksConfig defines the webhook listener and its sources.
type WebhooksConfig struct {
	Listen  string         `yaml:"listen"`
	Sources []SourceConfig `yaml:"sources"`
}

// SourceConfig defines a single webhook ingestion source.
type SourceConfig struct {
	// Path is the URL path for this source (e.g., "/webhook/newsroom").
	Path string `yaml:"path"`

	// ID identifies the source on ingested records.
	ID string `yaml:"id"`

	// TenantID stamps records for multi-tenant deployments. Empty selects
	// the default tenant.
	TenantID string `yaml:"tenant_id,omitempty"`

	// Secret is the shared HMAC key. Supports ${ENV_VAR} expansion so the
	// value never lives in the file.
	Secret string `yaml:"secret,omitempty"`

	// Algorithm selects the HMAC digest ("sha256" or "sha512", default
	// sha256) for header formats that do not declare one.
	Algorithm string `yaml:"algorithm,omitempty"`

	// RequireSignature rejects unsigned or unverifiable deliveries instead
	// of passing them through.
	RequireSignature bool `yaml:"require_signature,omitempty"`

	// AllowedIPs restricts senders to an exact-match IP allowlist.
	AllowedIPs []string `yaml:"allowed_ips,omitempty"`

	// MaxBodySize is the maximum request body size (e.g., "1MB", "262144").
	MaxBodySize string `yaml:"max_body_size,omitempty"`
}
