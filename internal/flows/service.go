package flows

import "context"

// Service is the centralized flow runner built once by the root manager.
type Service struct {
	deps Deps
}

// New returns a flow service with immutable dependency wiring.
func New(deps Deps) Service {
	return Service{deps: deps}
}

// Initialized reports whether the service has been wired with flow deps.
func (s Service) Initialized() bool {
	return s.deps.Restore.LoadEnvelope != nil
}

func (s Service) Restore(ctx context.Context) RestoreResult {
	return RunRestore(ctx, s.deps.Restore)
}

func (s Service) Login(ctx context.Context, email, password string) (*AuthOutcome, error) {
	return RunLogin(ctx, email, password, s.deps.Login)
}

func (s Service) Register(ctx context.Context, in RegisterInput) (*AuthOutcome, error) {
	return RunRegister(ctx, in, s.deps.Register)
}

func (s Service) FederatedLogin(ctx context.Context, providerName string) (*AuthOutcome, error) {
	return RunFederatedLogin(ctx, providerName, s.deps.Federated)
}

func (s Service) BiometricLogin(ctx context.Context, enabled bool) (*AuthOutcome, error) {
	return RunBiometricLogin(ctx, enabled, s.deps.Biometric)
}

func (s Service) EnableBiometric(ctx context.Context) error {
	return RunEnableBiometric(ctx, s.deps.Biometric)
}

func (s Service) DisableBiometric(ctx context.Context) error {
	return RunDisableBiometric(ctx, s.deps.Biometric)
}

func (s Service) Logout(ctx context.Context) {
	RunLogout(ctx, s.deps.Logout)
}

func (s Service) Refresh(ctx context.Context, externalID, refreshToken string) (*AuthOutcome, error) {
	return RunRefresh(ctx, externalID, refreshToken, s.deps.Refresh)
}

func (s Service) UpdateProfile(
	ctx context.Context,
	current any,
	externalID, token, refreshToken string,
	update any,
) (any, error) {
	return RunUpdateProfile(ctx, current, externalID, token, refreshToken, update, s.deps.Profile)
}

func (s Service) ChangePassword(ctx context.Context, email, current, next string) error {
	return RunChangePassword(ctx, email, current, next, s.deps.Password)
}

func (s Service) SendPasswordReset(ctx context.Context, email string) error {
	return RunSendPasswordReset(ctx, email, s.deps.Password)
}
