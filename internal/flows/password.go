package flows

import "context"

// PasswordMetrics carries metric IDs used by the password maintenance flows.
type PasswordMetrics struct {
	ChangeSuccess int
	ChangeFailure int
	ResetRequest  int
}

// PasswordEvents carries lifecycle event names used by the password maintenance flows.
type PasswordEvents struct {
	ChangeSuccess string
	ChangeFailure string
	ResetRequest  string
}

// PasswordErrors carries host-level sentinel errors used by the password maintenance flows.
type PasswordErrors struct {
	NotReady           error
	InvalidCredentials error
	WeakCredential     error
}

// PasswordDeps captures password change/reset dependencies.
type PasswordDeps struct {
	Reauthenticate   func(ctx context.Context, email, password string) (Identity, error)
	ChangePassword   func(ctx context.Context, idToken, newPassword string) error
	SendReset        func(ctx context.Context, email string) error
	MapProviderError func(error) error

	MetricInc func(int)
	Emit      func(event string, success bool, err error, meta map[string]string)

	Metrics PasswordMetrics
	Events  PasswordEvents
	Errors  PasswordErrors
}

// RunChangePassword re-authenticates with the current credential, then
// delegates the change to the identity provider using the fresh token it
// issued. Neither password is retained anywhere; a failed re-authentication
// leaves session state and the persisted envelope untouched.
func RunChangePassword(ctx context.Context, email, current, next string, deps PasswordDeps) error {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.Emit == nil {
		deps.Emit = func(string, bool, error, map[string]string) {}
	}
	if deps.Reauthenticate == nil || deps.ChangePassword == nil || deps.MapProviderError == nil {
		return deps.Errors.NotReady
	}

	if current == "" {
		deps.MetricInc(deps.Metrics.ChangeFailure)
		deps.Emit(deps.Events.ChangeFailure, false, deps.Errors.InvalidCredentials, map[string]string{
			"reason": "empty_current",
		})
		return deps.Errors.InvalidCredentials
	}
	if next == "" {
		deps.MetricInc(deps.Metrics.ChangeFailure)
		deps.Emit(deps.Events.ChangeFailure, false, deps.Errors.WeakCredential, map[string]string{
			"reason": "empty_new",
		})
		return deps.Errors.WeakCredential
	}

	ident, err := deps.Reauthenticate(ctx, email, current)
	if err != nil {
		mapped := deps.MapProviderError(err)
		deps.MetricInc(deps.Metrics.ChangeFailure)
		deps.Emit(deps.Events.ChangeFailure, false, mapped, map[string]string{
			"reason": "reauthentication",
		})
		return mapped
	}
	current = ""

	if err := deps.ChangePassword(ctx, ident.IDToken, next); err != nil {
		mapped := deps.MapProviderError(err)
		deps.MetricInc(deps.Metrics.ChangeFailure)
		deps.Emit(deps.Events.ChangeFailure, false, mapped, map[string]string{
			"reason": "provider_rejected",
		})
		return mapped
	}
	next = ""

	deps.MetricInc(deps.Metrics.ChangeSuccess)
	deps.Emit(deps.Events.ChangeSuccess, true, nil, nil)
	return nil
}

// RunSendPasswordReset delegates the reset email entirely to the identity
// provider.
func RunSendPasswordReset(ctx context.Context, email string, deps PasswordDeps) error {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.Emit == nil {
		deps.Emit = func(string, bool, error, map[string]string) {}
	}
	if deps.SendReset == nil || deps.MapProviderError == nil {
		return deps.Errors.NotReady
	}
	if email == "" {
		return deps.Errors.InvalidCredentials
	}

	if err := deps.SendReset(ctx, email); err != nil {
		return deps.MapProviderError(err)
	}
	deps.MetricInc(deps.Metrics.ResetRequest)
	deps.Emit(deps.Events.ResetRequest, true, nil, nil)
	return nil
}
