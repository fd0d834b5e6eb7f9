package api

import (
	"net/http/httptest"
	"testing"
)

func TestValidateAPIKey(t *testing.T) {
	tests := []struct {
		name      string
		provided  string
		configKey string
		want      bool
	}{
		{"matching keys", "secret-key", "secret-key", true},
		{"wrong key", "wrong-key1", "secret-key", false},
		{"empty provided", "", "secret-key", false},
		{"empty config disables auth", "anything", "", false},
		{"both empty", "", "", false},
		{"different lengths", "short", "a-much-longer-key", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateAPIKey(tt.provided, tt.configKey); got != tt.want {
				t.Errorf("ValidateAPIKey(%q, %q) = %v, want %v", tt.provided, tt.configKey, got, tt.want)
			}
		})
	}
}

func TestExtractAPIKey(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid bearer", "Bearer my-key", "my-key", false},
		{"bearer with extra spaces", "Bearer   my-key  ", "my-key", false},
		{"missing header", "", "", true},
		{"wrong scheme", "Basic my-key", "", true},
		{"bearer with empty key", "Bearer ", "", true},
		{"bearer with whitespace key", "Bearer    ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/v1/articles", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			got, err := ExtractAPIKey(r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractAPIKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ExtractAPIKey() = %q, want %q", got, tt.want)
			}
		})
	}
}
