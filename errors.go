package sessionkit

import "errors"

var (
	// ErrInvalidCredentials is an exported constant or variable used by the session manager.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountExists is an exported constant or variable used by the session manager.
	ErrAccountExists = errors.New("account already exists")
	// ErrWeakCredential is an exported constant or variable used by the session manager.
	ErrWeakCredential = errors.New("credential does not meet strength requirements")
	// ErrAccountNotFound is an exported constant or variable used by the session manager.
	ErrAccountNotFound = errors.New("account not found")
	// ErrProviderCancelled is an exported constant or variable used by the session manager.
	ErrProviderCancelled = errors.New("provider sign-in cancelled by user")
	// ErrBiometricUnavailable is an exported constant or variable used by the session manager.
	ErrBiometricUnavailable = errors.New("biometric authentication unavailable")
	// ErrSessionNotFound is an exported constant or variable used by the session manager.
	ErrSessionNotFound = errors.New("no persisted session")
	// ErrNetworkFailure is an exported constant or variable used by the session manager.
	ErrNetworkFailure = errors.New("network failure")
	// ErrNotAuthenticated is an exported constant or variable used by the session manager.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrUnknown is an exported constant or variable used by the session manager.
	ErrUnknown = errors.New("unknown authentication failure")
	// ErrManagerNotReady is an exported constant or variable used by the session manager.
	ErrManagerNotReady = errors.New("manager not initialized")
	// ErrOperationInFlight is an exported constant or variable used by the session manager.
	ErrOperationInFlight = errors.New("lifecycle operation already in flight")
)

// kindTable maps sentinel errors to their stable kind identifiers. The UI layer
// keys localized messages off these strings, never off error text.
var kindTable = []struct {
	err  error
	kind string
}{
	{ErrInvalidCredentials, "InvalidCredentials"},
	{ErrAccountExists, "AccountAlreadyExists"},
	{ErrWeakCredential, "WeakCredential"},
	{ErrAccountNotFound, "AccountNotFound"},
	{ErrProviderCancelled, "ProviderCancelled"},
	{ErrBiometricUnavailable, "BiometricUnavailable"},
	{ErrSessionNotFound, "SessionNotFound"},
	{ErrNetworkFailure, "NetworkFailure"},
	{ErrNotAuthenticated, "NotAuthenticated"},
}

// KindOf returns the stable error kind for err. Errors outside the taxonomy
// report "Unknown"; a nil error reports the empty string.
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	for _, entry := range kindTable {
		if errors.Is(err, entry.err) {
			return entry.kind
		}
	}
	return "Unknown"
}
