package flows

import "context"

// LoginMetrics carries metric IDs used by the password login flow.
type LoginMetrics struct {
	Success int
	Failure int
}

// LoginEvents carries lifecycle event names used by the password login flow.
type LoginEvents struct {
	Success string
	Failure string
}

// LoginErrors carries host-level sentinel errors used by the password login flow.
type LoginErrors struct {
	NotReady           error
	InvalidCredentials error
}

// LoginDeps captures password-login dependencies.
type LoginDeps struct {
	SignIn           func(ctx context.Context, email, password string) (Identity, error)
	FetchProfile     func(ctx context.Context, externalID, token string) (any, error)
	CreateProfile    func(ctx context.Context, ident Identity) (any, error)
	MapProviderError func(error) error

	Remembered func() bool
	Persist    func(ctx context.Context, user any, token, refreshToken string)

	MetricInc func(int)
	Emit      func(event string, success bool, err error, meta map[string]string)
	Warn      func(string, ...any)

	Metrics LoginMetrics
	Events  LoginEvents
	Errors  LoginErrors
}

// RunLogin executes the password login flow: provider sign-in, profile
// resolution (fetch for returning users, create when the provider reports a
// new account), and persistence when the session is remembered.
func RunLogin(ctx context.Context, email, password string, deps LoginDeps) (*AuthOutcome, error) {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.Emit == nil {
		deps.Emit = func(string, bool, error, map[string]string) {}
	}
	if deps.Warn == nil {
		deps.Warn = func(string, ...any) {}
	}
	if deps.SignIn == nil || deps.FetchProfile == nil || deps.CreateProfile == nil || deps.MapProviderError == nil {
		return nil, deps.Errors.NotReady
	}

	if email == "" || password == "" {
		deps.MetricInc(deps.Metrics.Failure)
		deps.Emit(deps.Events.Failure, false, deps.Errors.InvalidCredentials, map[string]string{
			"reason": "empty_credentials",
		})
		return nil, deps.Errors.InvalidCredentials
	}

	ident, err := deps.SignIn(ctx, email, password)
	if err != nil {
		mapped := deps.MapProviderError(err)
		deps.MetricInc(deps.Metrics.Failure)
		deps.Emit(deps.Events.Failure, false, mapped, map[string]string{
			"reason": "provider_rejected",
		})
		return nil, mapped
	}
	password = ""

	user, err := resolveProfile(ctx, ident, deps.FetchProfile, deps.CreateProfile)
	if err != nil {
		mapped := deps.MapProviderError(err)
		deps.MetricInc(deps.Metrics.Failure)
		deps.Emit(deps.Events.Failure, false, mapped, map[string]string{
			"reason": "profile_resolution",
		})
		return nil, mapped
	}

	if deps.Remembered != nil && deps.Remembered() && deps.Persist != nil {
		deps.Persist(ctx, user, ident.IDToken, ident.RefreshToken)
	}

	deps.MetricInc(deps.Metrics.Success)
	deps.Emit(deps.Events.Success, true, nil, map[string]string{
		"new_account": boolMeta(ident.NewAccount),
	})
	return &AuthOutcome{
		User:         user,
		Token:        ident.IDToken,
		RefreshToken: ident.RefreshToken,
	}, nil
}

// resolveProfile picks create for first sign-ins and fetch for returning
// users. Existing accounts always hit the profile service; a cached local
// copy is never trusted.
func resolveProfile(
	ctx context.Context,
	ident Identity,
	fetch func(context.Context, string, string) (any, error),
	create func(context.Context, Identity) (any, error),
) (any, error) {
	if ident.NewAccount {
		return create(ctx, ident)
	}
	return fetch(ctx, ident.ExternalID, ident.IDToken)
}

func boolMeta(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
