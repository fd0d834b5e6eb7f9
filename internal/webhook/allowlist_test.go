package webhook

import "testing"

func TestAllowlist(t *testing.T) {
	tests := []struct {
		name string
		ips  []string
		ip   string
		want bool
	}{
		{"empty allowlist passes everything", nil, "203.0.113.7", true},
		{"empty allowlist passes empty ip", nil, "", true},
		{"member passes", []string{"203.0.113.7", "198.51.100.2"}, "203.0.113.7", true},
		{"non-member rejected", []string{"203.0.113.7"}, "198.51.100.2", false},
		{"exact string match only, no CIDR", []string{"203.0.113.0/24"}, "203.0.113.7", false},
		{"ipv4-mapped ipv6 is a different string", []string{"203.0.113.7"}, "::ffff:203.0.113.7", false},
		{"empty ip rejected by non-empty allowlist", []string{"203.0.113.7"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAllowlist(tt.ips)
			if got := a.Allows(tt.ip); got != tt.want {
				t.Errorf("Allows(%q) = %v, want %v", tt.ip, got, tt.want)
			}
		})
	}
}
