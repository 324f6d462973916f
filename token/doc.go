// Package token inspects bearer tokens locally, without verifying signatures.
//
// The session manager never validates tokens cryptographically — that is the
// identity provider's job — but it refuses to restore a persisted session
// whose ID token is already past its expiry, saving a doomed round trip.
// Opaque (non-JWT) tokens are treated as inspectable-but-unknown: never
// reported expired locally.
package token
