package signature

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"hash"
	"regexp"
	"strings"
)

// Algorithm identifies an HMAC digest algorithm.
type Algorithm string

const (
	AlgorithmSHA256 Algorithm = "sha256"
	AlgorithmSHA512 Algorithm = "sha512"
)

// DefaultAlgorithm is used when neither the configuration nor the header
// names one.
const DefaultAlgorithm = AlgorithmSHA256

// hashFunc returns the hash constructor for the algorithm.
func (a Algorithm) hashFunc() (func() hash.Hash, error) {
	switch a {
	case AlgorithmSHA256:
		return sha256.New, nil
	case AlgorithmSHA512:
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("unsupported algorithm %q", string(a))
	}
}

// ParsedSignature is a signature header reduced to a normalized form:
// the algorithm to verify with and the digest as lowercase hex.
type ParsedSignature struct {
	Algorithm Algorithm
	Signature string
}

// A matcher recognizes one vendor header convention. Matchers are total:
// they never fail, they either match or report false.
type matcher func(header string, def Algorithm) (ParsedSignature, bool)

// matchers in priority order; first match wins.
var matchers = []matcher{
	matchAlgorithmPrefix,
	matchStripeComposite,
	matchBareHex,
	matchBase64,
}

var (
	hexPattern    = regexp.MustCompile(`^[0-9a-fA-F]+$`)
	base64Pattern = regexp.MustCompile(`^[A-Za-z0-9+/]+={0,2}$`)
)

// Parse normalizes a raw signature header value. The default algorithm is
// used by formats that do not encode one. Unrecognized input reports ok=false;
// parsing never fails with an error.
func Parse(header string, def Algorithm) (ParsedSignature, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return ParsedSignature{}, false
	}
	if def == "" {
		def = DefaultAlgorithm
	}

	for _, m := range matchers {
		if parsed, ok := m(header, def); ok {
			return parsed, true
		}
	}
	return ParsedSignature{}, false
}

// matchAlgorithmPrefix handles "sha256=<hex>" and "sha512=<hex>" (GitHub
// X-Hub-Signature style). The algorithm token is case-insensitive.
func matchAlgorithmPrefix(header string, _ Algorithm) (ParsedSignature, bool) {
	eq := strings.IndexByte(header, '=')
	if eq < 0 {
		return ParsedSignature{}, false
	}

	var alg Algorithm
	switch strings.ToLower(header[:eq]) {
	case "sha256":
		alg = AlgorithmSHA256
	case "sha512":
		alg = AlgorithmSHA512
	default:
		return ParsedSignature{}, false
	}

	sig := header[eq+1:]
	if sig == "" || !hexPattern.MatchString(sig) {
		return ParsedSignature{}, false
	}
	return ParsedSignature{Algorithm: alg, Signature: strings.ToLower(sig)}, true
}

// matchStripeComposite handles the "t=<ts>,v1=<hex>" convention. Only the v1
// field is used; the timestamp is ignored (see the package doc for the replay
// implications). The algorithm comes from configuration.
func matchStripeComposite(header string, def Algorithm) (ParsedSignature, bool) {
	if !strings.Contains(header, "v1=") {
		return ParsedSignature{}, false
	}
	for _, field := range strings.Split(header, ",") {
		field = strings.TrimSpace(field)
		sig, ok := strings.CutPrefix(field, "v1=")
		if !ok || sig == "" || !hexPattern.MatchString(sig) {
			continue
		}
		return ParsedSignature{Algorithm: def, Signature: strings.ToLower(sig)}, true
	}
	return ParsedSignature{}, false
}

// matchBareHex handles an unadorned hex digest. Hex case carries no meaning,
// so mixed case is normalized to lowercase.
func matchBareHex(header string, def Algorithm) (ParsedSignature, bool) {
	if !hexPattern.MatchString(header) {
		return ParsedSignature{}, false
	}
	return ParsedSignature{Algorithm: def, Signature: strings.ToLower(header)}, true
}

// matchBase64 handles base64-encoded digest bytes, re-encoded as lowercase
// hex so the comparison path is uniform. Runs after matchBareHex, so input
// that is valid hex never lands here.
func matchBase64(header string, def Algorithm) (ParsedSignature, bool) {
	if !base64Pattern.MatchString(header) {
		return ParsedSignature{}, false
	}
	raw, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return ParsedSignature{}, false
	}
	return ParsedSignature{Algorithm: def, Signature: hex.EncodeToString(raw)}, true
}
