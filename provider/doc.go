// Package provider defines the uniform error vocabulary shared by every
// identity backend adapter (password, Google, Facebook, biometric sensor).
//
// # Design
//
// Concrete adapters return [Error] values tagged with a [Code]; the root
// sessionkit package maps each code into exactly one sentinel of its public
// taxonomy before an error reaches a caller. Adapters must never leak raw
// backend error identifiers past this package.
//
// # What this package must NOT do
//
//   - Import sessionkit or any of its sub-packages.
//   - Perform I/O; it is vocabulary only.
package provider
