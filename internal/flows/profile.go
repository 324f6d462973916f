package flows

import "context"

// ProfileMetrics carries metric IDs used by the profile update flow.
type ProfileMetrics struct {
	Success int
	Failure int
}

// ProfileEvents carries lifecycle event names used by the profile update flow.
type ProfileEvents struct {
	Success string
	Failure string
}

// ProfileErrors carries host-level sentinel errors used by the profile update flow.
type ProfileErrors struct {
	NotReady         error
	NotAuthenticated error
}

// ProfileDeps captures profile-update dependencies. Merge applies the partial
// update to the current record with per-section semantics; PushUpdate sends
// the partial to the profile service.
type ProfileDeps struct {
	PushUpdate       func(ctx context.Context, externalID string, update any, token string) error
	Merge            func(current, update any) any
	MapProviderError func(error) error

	Remembered func() bool
	Persist    func(ctx context.Context, user any, token, refreshToken string)

	MetricInc func(int)
	Emit      func(event string, success bool, err error, meta map[string]string)

	Metrics ProfileMetrics
	Events  ProfileEvents
	Errors  ProfileErrors
}

// RunUpdateProfile pushes a partial update to the profile service and, on
// success, returns the locally merged replacement record. The local merge
// keeps replacement semantics deterministic; the service response only
// confirms durability.
func RunUpdateProfile(
	ctx context.Context,
	current any,
	externalID, token, refreshToken string,
	update any,
	deps ProfileDeps,
) (any, error) {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.Emit == nil {
		deps.Emit = func(string, bool, error, map[string]string) {}
	}
	if deps.PushUpdate == nil || deps.Merge == nil || deps.MapProviderError == nil {
		return nil, deps.Errors.NotReady
	}
	if current == nil || token == "" {
		return nil, deps.Errors.NotAuthenticated
	}

	if err := deps.PushUpdate(ctx, externalID, update, token); err != nil {
		mapped := deps.MapProviderError(err)
		deps.MetricInc(deps.Metrics.Failure)
		deps.Emit(deps.Events.Failure, false, mapped, nil)
		return nil, mapped
	}

	merged := deps.Merge(current, update)

	if deps.Remembered != nil && deps.Remembered() && deps.Persist != nil {
		deps.Persist(ctx, merged, token, refreshToken)
	}

	deps.MetricInc(deps.Metrics.Success)
	deps.Emit(deps.Events.Success, true, nil, nil)
	return merged, nil
}
