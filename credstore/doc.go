// Package credstore persists the session envelope on device: the last known
// user record, auth token, refresh token, biometric capability flag, and the
// remember-me opt-in.
//
// # Design
//
// The underlying contract is five string-valued key/value slots, but the
// public boundary is a single [Envelope] value object written and cleared as
// a whole through [Store]. Modeling the envelope atomically at the interface
// structurally prevents the partial-write class of bugs; backends only need
// to implement the narrow [KV] contract.
//
// Clearing removes slots in user → token → refreshToken order, so an
// interrupted clear can never leave a token without its user. Restore treats
// an envelope missing either as absent.
//
// Backends: [MemoryKV] (tests, ephemeral sessions), [FileKV] (JSON file,
// on-device default), [SQLiteKV] (modernc.org/sqlite, shared app database),
// [RedisKV] (server-side embeddings of the same library).
//
// # What this package must NOT do
//
//   - Decide whether a session is valid; that is the state machine's job.
//   - Import sessionkit or interpret the user JSON payload.
package credstore
