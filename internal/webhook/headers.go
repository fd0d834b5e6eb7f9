package webhook

import "net/http"

// signatureHeaders are the conventional signature header names, in priority
// order. The first header present wins.
var signatureHeaders = []string{
	"X-Hub-Signature-256",
	"X-Hub-Signature",
	"X-Signature",
	"X-Webhook-Signature",
	"Stripe-Signature",
}

// extractSignature returns the value of the highest-priority signature
// header present, or "" when none is. Lookup is case-insensitive per
// net/http header canonicalization.
func extractSignature(h http.Header) string {
	for _, name := range signatureHeaders {
		if v := h.Get(name); v != "" {
			return v
		}
	}
	return ""
}
