package provider

import "fmt"

// Code classifies a provider failure. Codes are the only identifiers allowed
// to cross the adapter boundary.
type Code string

const (
	// CodeInvalidCredentials is an exported constant or variable used by provider adapters.
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	// CodeAccountExists is an exported constant or variable used by provider adapters.
	CodeAccountExists Code = "ACCOUNT_EXISTS"
	// CodeAccountNotFound is an exported constant or variable used by provider adapters.
	CodeAccountNotFound Code = "ACCOUNT_NOT_FOUND"
	// CodeWeakPassword is an exported constant or variable used by provider adapters.
	CodeWeakPassword Code = "WEAK_PASSWORD"
	// CodeCancelled is an exported constant or variable used by provider adapters.
	CodeCancelled Code = "CANCELLED"
	// CodeTokenExpired is an exported constant or variable used by provider adapters.
	CodeTokenExpired Code = "TOKEN_EXPIRED"
	// CodeBiometricUnsupported is an exported constant or variable used by provider adapters.
	CodeBiometricUnsupported Code = "BIOMETRIC_UNSUPPORTED"
	// CodeNetwork is an exported constant or variable used by provider adapters.
	CodeNetwork Code = "NETWORK"
	// CodeUnavailable is an exported constant or variable used by provider adapters.
	CodeUnavailable Code = "UNAVAILABLE"
)

// Error is a provider failure normalized to a [Code] plus the backend's
// original message, retained for diagnostics only.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider: %s: %s", e.Code, e.Message)
}

// E builds a coded provider error.
func E(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the code from err, or "" when err is not a provider error.
func CodeOf(err error) Code {
	perr, ok := err.(*Error)
	if !ok {
		return ""
	}
	return perr.Code
}
