package flows

import (
	"context"
	"errors"
)

// FederatedMetrics carries metric IDs used by the federated login flow.
type FederatedMetrics struct {
	Success   int
	Failure   int
	Cancelled int
}

// FederatedEvents carries lifecycle event names used by the federated login flow.
type FederatedEvents struct {
	Success   string
	Failure   string
	Cancelled string
}

// FederatedErrors carries host-level sentinel errors used by the federated login flow.
type FederatedErrors struct {
	NotReady  error
	Cancelled error
}

// FederatedDeps captures federated-login dependencies. SignIn runs the
// complete external handshake for the named provider and must not return
// until the provider UI has resolved one way or the other.
type FederatedDeps struct {
	SignIn           func(ctx context.Context, providerName string) (Identity, error)
	FetchProfile     func(ctx context.Context, externalID, token string) (any, error)
	CreateProfile    func(ctx context.Context, ident Identity) (any, error)
	MapProviderError func(error) error

	Remembered func() bool
	Persist    func(ctx context.Context, user any, token, refreshToken string)

	MetricInc func(int)
	Emit      func(event string, success bool, err error, meta map[string]string)
	Warn      func(string, ...any)

	Metrics FederatedMetrics
	Events  FederatedEvents
	Errors  FederatedErrors
}

// RunFederatedLogin executes a Google/Facebook login. A user abort of the
// external sign-in UI is reported as the distinct cancelled error, never as a
// generic failure.
func RunFederatedLogin(ctx context.Context, providerName string, deps FederatedDeps) (*AuthOutcome, error) {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.Emit == nil {
		deps.Emit = func(string, bool, error, map[string]string) {}
	}
	if deps.SignIn == nil || deps.FetchProfile == nil || deps.CreateProfile == nil || deps.MapProviderError == nil {
		return nil, deps.Errors.NotReady
	}

	ident, err := deps.SignIn(ctx, providerName)
	if err != nil {
		mapped := deps.MapProviderError(err)
		if deps.Errors.Cancelled != nil && errors.Is(mapped, deps.Errors.Cancelled) {
			deps.MetricInc(deps.Metrics.Cancelled)
			deps.Emit(deps.Events.Cancelled, false, mapped, map[string]string{
				"provider": providerName,
			})
			return nil, mapped
		}
		deps.MetricInc(deps.Metrics.Failure)
		deps.Emit(deps.Events.Failure, false, mapped, map[string]string{
			"provider": providerName,
			"reason":   "handshake_failed",
		})
		return nil, mapped
	}

	user, err := resolveProfile(ctx, ident, deps.FetchProfile, deps.CreateProfile)
	if err != nil {
		mapped := deps.MapProviderError(err)
		deps.MetricInc(deps.Metrics.Failure)
		deps.Emit(deps.Events.Failure, false, mapped, map[string]string{
			"provider": providerName,
			"reason":   "profile_resolution",
		})
		return nil, mapped
	}

	if deps.Remembered != nil && deps.Remembered() && deps.Persist != nil {
		deps.Persist(ctx, user, ident.IDToken, ident.RefreshToken)
	}

	deps.MetricInc(deps.Metrics.Success)
	deps.Emit(deps.Events.Success, true, nil, map[string]string{
		"provider":    providerName,
		"new_account": boolMeta(ident.NewAccount),
	})
	return &AuthOutcome{
		User:         user,
		Token:        ident.IDToken,
		RefreshToken: ident.RefreshToken,
	}, nil
}
