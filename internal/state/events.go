package state

// Event is a closed set of transition inputs. Effect executors produce
// events; only Apply consumes them.
type Event interface {
	isEvent()
}

// OperationStarted marks the beginning of a lifecycle operation. Biometric
// restores get their own phase so the UI can render them distinctly.
type OperationStarted struct {
	Biometric bool
}

// OperationFinished clears the loading flag without touching credentials.
// Emitted when a user-initiated operation fails and the typed error is about
// to be re-raised.
type OperationFinished struct{}

// RestoreCompleted carries a valid remembered session found at startup.
type RestoreCompleted struct {
	User             any
	Token            string
	RefreshToken     string
	BiometricEnabled bool
	RememberMe       bool
}

// RestoreEmpty reports that startup restore found no usable session. The
// biometric capability flag still carries over when the slot was readable.
type RestoreEmpty struct {
	BiometricEnabled bool
}

// SignedIn carries the outcome of any successful login path.
type SignedIn struct {
	User         any
	Token        string
	RefreshToken string
}

// SignedOut resets to the default unauthenticated state. The biometric
// capability flag survives; it describes the device, not the session.
type SignedOut struct{}

// SessionExpired is the implicit-logout event used when refresh fails.
type SessionExpired struct{}

// UserReplaced swaps the user record while staying authenticated.
type UserReplaced struct {
	User any
}

// TokensRotated installs refreshed tokens without touching the user.
type TokensRotated struct {
	Token        string
	RefreshToken string
}

// BiometricFlagChanged flips the device capability flag.
type BiometricFlagChanged struct {
	Enabled bool
}

// RememberMeChanged flips the persistence opt-in flag.
type RememberMeChanged struct {
	On bool
}

func (OperationStarted) isEvent()     {}
func (OperationFinished) isEvent()    {}
func (RestoreCompleted) isEvent()     {}
func (RestoreEmpty) isEvent()         {}
func (SignedIn) isEvent()             {}
func (SignedOut) isEvent()            {}
func (SessionExpired) isEvent()       {}
func (UserReplaced) isEvent()         {}
func (TokensRotated) isEvent()        {}
func (BiometricFlagChanged) isEvent() {}
func (RememberMeChanged) isEvent()    {}
