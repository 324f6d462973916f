// Package flows contains the effect executors of the session lifecycle: one
// Run function per operation (restore, login, register, federated, biometric,
// logout, refresh, profile, password), each driven by a per-flow Deps struct
// of injected function fields.
//
// # Design
//
// Flows perform the I/O sequencing — provider calls, profile service calls,
// envelope persistence — and return plain results. They never touch session
// state; the root manager translates results into state-machine events. User
// payloads pass through as opaque values owned by the root package.
//
// Every Deps field is a function so tests can exercise a flow with closures
// and no fakes framework. The root manager wires Deps once at Build time.
//
// # What this package must NOT do
//
//   - Import sessionkit, credstore, or provider implementations.
//   - Hold state between calls; flows are pure orchestration over Deps.
package flows
