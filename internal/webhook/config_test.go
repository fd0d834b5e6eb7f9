package webhook

import (
	"testing"

	"github.com/feedgate/feedgate/internal/config"
	"github.com/feedgate/feedgate/internal/signature"
)

func TestFromGlobalConfig(t *testing.T) {
	wc := &config.WebhooksConfig{
		Listen: "127.0.0.1:9000",
		Sources: []config.SourceConfig{
			{
				Path:             "/webhook/newsroom",
				ID:               "newsroom",
				TenantID:         "tenant-a",
				Secret:           "s3cret",
				Algorithm:        "sha512",
				RequireSignature: true,
				AllowedIPs:       []string{"203.0.113.7"},
				MaxBodySize:      "2MB",
			},
			{
				Path: "/webhook/blogroll",
				ID:   "blogroll",
			},
		},
	}

	cfg, err := FromGlobalConfig(wc)
	if err != nil {
		t.Fatalf("FromGlobalConfig: %v", err)
	}
	if cfg.Listen != "127.0.0.1:9000" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if len(cfg.Sources) != 2 {
		t.Fatalf("Sources = %d, want 2", len(cfg.Sources))
	}

	newsroom := cfg.Sources[0]
	if newsroom.Signature.Algorithm != signature.AlgorithmSHA512 {
		t.Errorf("algorithm = %q, want sha512", newsroom.Signature.Algorithm)
	}
	if !newsroom.Signature.RequireSignature {
		t.Error("RequireSignature should carry over")
	}
	if newsroom.MaxBodySize != 2*1024*1024 {
		t.Errorf("MaxBodySize = %d, want 2MB", newsroom.MaxBodySize)
	}

	blogroll := cfg.Sources[1]
	if blogroll.Signature.Algorithm != signature.DefaultAlgorithm {
		t.Errorf("default algorithm = %q, want %q", blogroll.Signature.Algorithm, signature.DefaultAlgorithm)
	}
	if blogroll.MaxBodySize != DefaultMaxBodySize {
		t.Errorf("default MaxBodySize = %d, want %d", blogroll.MaxBodySize, DefaultMaxBodySize)
	}
}

func TestFromGlobalConfigNil(t *testing.T) {
	if _, err := FromGlobalConfig(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestParseMaxBodySize(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"", DefaultMaxBodySize, false},
		{"262144", 262144, false},
		{"4KB", 4 * 1024, false},
		{"1MB", 1024 * 1024, false},
		{"1GB", 1024 * 1024 * 1024, false},
		{"1mb", 1024 * 1024, false},
		{"0", 0, true},
		{"-5", 0, true},
		{"lots", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseMaxBodySize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseMaxBodySize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseMaxBodySize(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
