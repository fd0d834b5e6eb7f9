// Package webhook implements the HTTP endpoints that receive article
// payloads from external senders.
//
// Each configured source gets its own POST path with its own shared secret,
// algorithm and policy. A request passes through, in order:
//
//  1. Body size check (reject with 413 if too large)
//  2. Origin check against the source's IP allowlist (cheap, runs first)
//  3. HMAC signature verification over the raw body bytes
//  4. JSON decode into the inbound payload shape
//  5. Structural validation and mapping to the canonical article record
//  6. Insert into the article store
//
// The raw body is captured before any JSON parsing so the signature is
// verified over exactly the bytes the sender signed.
//
// # Error Responses
//
//   - 403 Forbidden: origin or signature rejected (no details leaked)
//   - 404 Not Found: unknown webhook path
//   - 413 Payload Too Large: body exceeds max_body_size
//   - 400 Bad Request: body is not valid JSON
//   - 422 Unprocessable Entity: required payload field missing (named; this
//     reveals no secret material, unlike signature failures)
//   - 200 OK: duplicate redelivery, existing article id returned
//   - 202 Accepted: article ingested, new article id returned
package webhook
