// Package sessionkit provides the session and authentication lifecycle manager
// embedded in the AuraWell mobile application: password, federated (Google,
// Facebook), and biometric sign-in reconciled into a single authoritative
// session state, persisted across process restarts through a pluggable
// credential store.
//
// The package is designed for a single active session: [Manager] serializes
// lifecycle operations internally and exposes lock-free snapshot reads, so it
// is safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// sessionkit is the public surface. It exposes [Manager], [Builder], [Config],
// and value types (UserRecord, SessionSnapshot, etc.). All internal
// coordination — flow orchestration, state transitions, lifecycle-event
// dispatch — lives under internal/ and is never exported. Credential
// persistence backends live in credstore/, identity provider contracts in
// provider/, and the profile service client in profile/.
//
// # What this package must NOT do
//
//   - Expose store clients, internal state, or envelope encoding details in
//     its public API.
//   - Perform I/O outside of Manager methods (construction via Builder is
//     allocation-only until Build).
//   - Decide authentication by re-reading the credential store after startup
//     restore; in-memory state is authoritative for the process lifetime.
package sessionkit
