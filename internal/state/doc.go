// Package state implements the pure session state machine: a State value, a
// closed set of transition events, and an Apply function with no I/O and no
// side effects.
//
// # Design
//
// The original reducer-plus-effects arrangement is split in two: effects run
// in internal/flows and feed their outcomes back here as events. Apply is the
// only way state changes; it normalizes every input so the core invariant —
// authenticated exactly when both user and token are present — holds for all
// reachable states.
//
// # What this package must NOT do
//
//   - Perform I/O or call providers/stores.
//   - Import sessionkit or any sibling package.
//   - Expose mutable state; State is a value, transitions return copies.
package state
