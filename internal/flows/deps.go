package flows

// Identity is the flow-local mirror of a normalized provider sign-in result.
type Identity struct {
	ExternalID   string
	Email        string
	DisplayName  string
	IDToken      string
	RefreshToken string
	NewAccount   bool
}

// Envelope is the flow-local mirror of the persisted session record.
type Envelope struct {
	UserJSON         []byte
	Token            string
	RefreshToken     string
	BiometricEnabled bool
	RememberMe       bool
}

// AuthOutcome is the uniform success shape of every login path.
type AuthOutcome struct {
	User         any
	Token        string
	RefreshToken string
}

// Deps groups flow dependency sets. The root manager builds this once and
// delegates lifecycle methods to the matching flow implementation.
type Deps struct {
	Restore   RestoreDeps
	Login     LoginDeps
	Register  RegisterDeps
	Federated FederatedDeps
	Biometric BiometricDeps
	Logout    LogoutDeps
	Refresh   RefreshDeps
	Profile   ProfileDeps
	Password  PasswordDeps
}
