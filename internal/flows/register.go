package flows

import "context"

// RegisterInput is the flow-local registration payload.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
}

// RegisterMetrics carries metric IDs used by the registration flow.
type RegisterMetrics struct {
	Success int
	Failure int
}

// RegisterEvents carries lifecycle event names used by the registration flow.
type RegisterEvents struct {
	Success string
	Failure string
}

// RegisterErrors carries host-level sentinel errors used by the registration flow.
type RegisterErrors struct {
	NotReady           error
	InvalidCredentials error
}

// RegisterDeps captures registration dependencies.
type RegisterDeps struct {
	SignUp            func(ctx context.Context, email, password string) (Identity, error)
	CreateProfile     func(ctx context.Context, ident Identity, in RegisterInput) (any, error)
	UpdateDisplayName func(ctx context.Context, idToken, displayName string) error
	MapProviderError  func(error) error

	Remembered func() bool
	Persist    func(ctx context.Context, user any, token, refreshToken string)

	MetricInc func(int)
	Emit      func(event string, success bool, err error, meta map[string]string)
	Warn      func(string, ...any)

	Metrics RegisterMetrics
	Events  RegisterEvents
	Errors  RegisterErrors
}

// RunRegister executes registration: provider sign-up, explicit profile
// creation (never a fetch), and a provider display-name update. Email
// uniqueness is enforced by the identity provider and surfaces as its error.
func RunRegister(ctx context.Context, in RegisterInput, deps RegisterDeps) (*AuthOutcome, error) {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.Emit == nil {
		deps.Emit = func(string, bool, error, map[string]string) {}
	}
	if deps.Warn == nil {
		deps.Warn = func(string, ...any) {}
	}
	if deps.SignUp == nil || deps.CreateProfile == nil || deps.MapProviderError == nil {
		return nil, deps.Errors.NotReady
	}

	if in.Email == "" || in.Password == "" {
		deps.MetricInc(deps.Metrics.Failure)
		deps.Emit(deps.Events.Failure, false, deps.Errors.InvalidCredentials, map[string]string{
			"reason": "empty_credentials",
		})
		return nil, deps.Errors.InvalidCredentials
	}

	ident, err := deps.SignUp(ctx, in.Email, in.Password)
	if err != nil {
		mapped := deps.MapProviderError(err)
		deps.MetricInc(deps.Metrics.Failure)
		deps.Emit(deps.Events.Failure, false, mapped, map[string]string{
			"reason": "provider_rejected",
		})
		return nil, mapped
	}
	in.Password = ""
	if ident.Email == "" {
		ident.Email = in.Email
	}
	ident.DisplayName = in.DisplayName

	user, err := deps.CreateProfile(ctx, ident, in)
	if err != nil {
		mapped := deps.MapProviderError(err)
		deps.MetricInc(deps.Metrics.Failure)
		deps.Emit(deps.Events.Failure, false, mapped, map[string]string{
			"reason": "profile_creation",
		})
		return nil, mapped
	}

	// The provider-side display name is cosmetic; the profile already holds
	// the authoritative copy, so a failure here does not fail registration.
	if deps.UpdateDisplayName != nil && in.DisplayName != "" {
		if err := deps.UpdateDisplayName(ctx, ident.IDToken, in.DisplayName); err != nil {
			deps.Warn("sessionkit: register: provider display name update failed: %v", err)
		}
	}

	if deps.Remembered != nil && deps.Remembered() && deps.Persist != nil {
		deps.Persist(ctx, user, ident.IDToken, ident.RefreshToken)
	}

	deps.MetricInc(deps.Metrics.Success)
	deps.Emit(deps.Events.Success, true, nil, nil)
	return &AuthOutcome{
		User:         user,
		Token:        ident.IDToken,
		RefreshToken: ident.RefreshToken,
	}, nil
}
