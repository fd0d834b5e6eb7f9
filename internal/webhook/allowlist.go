package webhook

// Allowlist is a closed set of permitted caller IPs. Membership is exact
// string match: no CIDR ranges, no wildcard matching, and no normalization
// of equivalent representations (an IPv4-mapped IPv6 literal is a different
// string). This is a coarse allowlist, not a firewall.
type Allowlist struct {
	ips map[string]struct{}
}

// NewAllowlist builds an Allowlist from IP literals. An empty list means no
// restriction.
func NewAllowlist(ips []string) Allowlist {
	if len(ips) == 0 {
		return Allowlist{}
	}
	set := make(map[string]struct{}, len(ips))
	for _, ip := range ips {
		set[ip] = struct{}{}
	}
	return Allowlist{ips: set}
}

// Allows reports whether ip may proceed. An unconfigured allowlist passes
// everything (default: open).
func (a Allowlist) Allows(ip string) bool {
	if len(a.ips) == 0 {
		return true
	}
	_, ok := a.ips[ip]
	return ok
}
