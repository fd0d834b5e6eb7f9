// Package signature implements HMAC verification of inbound webhook payloads.
//
// Senders sign the raw request body with a shared secret and put the result in
// a signature header. This package parses the common vendor header formats,
// recomputes the HMAC over the exact bytes received, and compares the two in
// constant time.
//
// # Supported header formats
//
//   - "sha256=<hex>" / "sha512=<hex>" (GitHub style, algorithm from the token)
//   - "t=<ts>,v1=<hex>" (Stripe style, algorithm from configuration)
//   - "<hex>" (plain hex)
//   - "<base64>" (base64-encoded digest bytes)
//
// # Security Model
//
//   - The HMAC is computed over the raw body bytes, before any JSON parsing.
//     Re-serializing the body would change the byte sequence and break
//     signatures computed by legitimate senders.
//   - Comparison never short-circuits: every position is examined and a length
//     mismatch is folded into the same accumulator as character mismatches.
//   - Expected failures (missing header, bad format, mismatch) are returned as
//     Result values, never panics. Crypto errors are caught at the Verify
//     boundary and converted to a failed Result.
//   - Log output includes the algorithm and a truncated header for diagnosis
//     but never the secret or a full signature.
//
// # Known limitation
//
// The Stripe-style parser extracts only the v1 field and ignores the t
// timestamp, so there is no replay-window protection for that convention.
// This matches the senders we accept today; tightening it would reject
// legitimate deliveries.
package signature
