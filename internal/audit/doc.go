// Package audit dispatches session lifecycle events (login, logout, restore,
// refresh, biometric changes) to a pluggable sink without blocking lifecycle
// operations.
//
// # Design
//
// Events are fanned out through a buffered channel serviced by a single
// goroutine. Backpressure behavior is configurable: block until the sink
// drains, or drop and count. The UI layer typically subscribes with a
// ChannelSink to observe authentication state changes.
//
// # What this package must NOT do
//
//   - Import sessionkit or any sibling package.
//   - Lose the drain guarantee: Close must flush buffered events.
package audit
