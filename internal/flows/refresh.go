package flows

import "context"

// RefreshMetrics carries metric IDs used by the refresh flow.
type RefreshMetrics struct {
	Success int
	Failure int
}

// RefreshEvents carries lifecycle event names used by the refresh flow.
type RefreshEvents struct {
	Success string
	Failure string
}

// RefreshErrors carries host-level sentinel errors used by the refresh flow.
type RefreshErrors struct {
	NotReady         error
	NotAuthenticated error
}

// RefreshDeps captures session-refresh dependencies.
type RefreshDeps struct {
	RefreshToken     func(ctx context.Context, refreshToken string) (token, newRefreshToken string, err error)
	FetchProfile     func(ctx context.Context, externalID, token string) (any, error)
	MapProviderError func(error) error

	Remembered func() bool
	Persist    func(ctx context.Context, user any, token, refreshToken string)

	MetricInc func(int)
	Emit      func(event string, success bool, err error, meta map[string]string)
	Warn      func(string, ...any)

	Metrics RefreshMetrics
	Events  RefreshEvents
	Errors  RefreshErrors
}

// RunRefresh re-validates the active session: token refresh against the
// identity provider, then a profile refetch. Any failure is returned to the
// caller, which must treat it as an implicit logout — a stale session is
// never left half-valid.
func RunRefresh(ctx context.Context, externalID, refreshToken string, deps RefreshDeps) (*AuthOutcome, error) {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.Emit == nil {
		deps.Emit = func(string, bool, error, map[string]string) {}
	}
	if deps.RefreshToken == nil || deps.FetchProfile == nil || deps.MapProviderError == nil {
		return nil, deps.Errors.NotReady
	}
	if refreshToken == "" {
		deps.MetricInc(deps.Metrics.Failure)
		deps.Emit(deps.Events.Failure, false, deps.Errors.NotAuthenticated, map[string]string{
			"reason": "no_refresh_token",
		})
		return nil, deps.Errors.NotAuthenticated
	}

	token, nextRefresh, err := deps.RefreshToken(ctx, refreshToken)
	if err != nil {
		mapped := deps.MapProviderError(err)
		deps.MetricInc(deps.Metrics.Failure)
		deps.Emit(deps.Events.Failure, false, mapped, map[string]string{
			"reason": "token_rejected",
		})
		return nil, mapped
	}
	if nextRefresh == "" {
		nextRefresh = refreshToken
	}

	user, err := deps.FetchProfile(ctx, externalID, token)
	if err != nil {
		mapped := deps.MapProviderError(err)
		deps.MetricInc(deps.Metrics.Failure)
		deps.Emit(deps.Events.Failure, false, mapped, map[string]string{
			"reason": "profile_refetch",
		})
		return nil, mapped
	}

	if deps.Remembered != nil && deps.Remembered() && deps.Persist != nil {
		deps.Persist(ctx, user, token, nextRefresh)
	}

	deps.MetricInc(deps.Metrics.Success)
	deps.Emit(deps.Events.Success, true, nil, nil)
	return &AuthOutcome{
		User:         user,
		Token:        token,
		RefreshToken: nextRefresh,
	}, nil
}
