package state

// Phase is the lifecycle position of the session state machine.
type Phase uint8

const (
	// PhaseInitializing is the only initial phase, held until startup restore completes.
	PhaseInitializing Phase = iota
	// PhaseUnauthenticated is the default resting phase with no active session.
	PhaseUnauthenticated
	// PhaseAuthenticating is held while a credential-producing operation is in flight.
	PhaseAuthenticating
	// PhaseAuthenticated is the resting phase with an active session.
	PhaseAuthenticated
	// PhaseRestoringBiometric is held while a persisted session is re-validated by the sensor.
	PhaseRestoringBiometric
)

// String reports the phase name for logs and lifecycle events.
func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseUnauthenticated:
		return "unauthenticated"
	case PhaseAuthenticating:
		return "authenticating"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseRestoringBiometric:
		return "restoring_biometric"
	default:
		return "unknown"
	}
}

// State is the single source of truth for the session. User is an opaque
// payload owned by the root package (nil while absent); the machine only
// cares about presence.
//
// Invariant: Authenticated() == (User != nil && Token != ""). Apply enforces
// this for every reachable state.
type State struct {
	Phase            Phase
	User             any
	Token            string
	RefreshToken     string
	Loading          bool
	BiometricEnabled bool
	RememberMe       bool
}

// Initial is the process-start state: unauthenticated, loading, phase
// Initializing.
func Initial() State {
	return State{Phase: PhaseInitializing, Loading: true}
}

// Authenticated reports whether a session is active. This is the invariant
// the rest of the application keys off.
func (s State) Authenticated() bool {
	return s.User != nil && s.Token != ""
}
