// Package profile implements the wellness profile service contract over its
// REST API.
//
// The profile service is the system of record for user documents. This
// client never caches; the session manager decides when a fetched record
// replaces the in-memory user.
package profile
