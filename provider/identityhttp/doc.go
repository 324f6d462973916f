// Package identityhttp implements the password identity provider contract
// over the identity service's REST API.
//
// Every backend failure is reduced to a provider.Error code before it leaves
// this package; raw HTTP statuses and backend error strings never cross the
// adapter boundary.
package identityhttp
