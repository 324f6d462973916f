package flows

import "context"

// LogoutMetrics carries metric IDs used by the logout flow.
type LogoutMetrics struct {
	Logout int
}

// LogoutEvents carries lifecycle event names used by the logout flow.
type LogoutEvents struct {
	Logout string
}

// NamedSignOut pairs a provider name with its sign-out call for diagnostics.
type NamedSignOut struct {
	Provider string
	SignOut  func(ctx context.Context) error
}

// LogoutDeps captures logout dependencies.
type LogoutDeps struct {
	SignOuts      []NamedSignOut
	ClearEnvelope func(ctx context.Context) error

	MetricInc func(int)
	Emit      func(event string, success bool, err error, meta map[string]string)
	Warn      func(string, ...any)

	Metrics LogoutMetrics
	Events  LogoutEvents
}

// RunLogout signs out of every provider that may be active and clears the
// persisted envelope. Logout never raises: provider sign-out is idempotent by
// contract, and a misbehaving provider or an unavailable store is warned
// about while the in-memory reset proceeds regardless.
func RunLogout(ctx context.Context, deps LogoutDeps) {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.Emit == nil {
		deps.Emit = func(string, bool, error, map[string]string) {}
	}
	if deps.Warn == nil {
		deps.Warn = func(string, ...any) {}
	}

	for _, s := range deps.SignOuts {
		if s.SignOut == nil {
			continue
		}
		if err := s.SignOut(ctx); err != nil {
			deps.Warn("sessionkit: logout: %s sign-out failed: %v", s.Provider, err)
		}
	}

	if deps.ClearEnvelope != nil {
		if err := deps.ClearEnvelope(ctx); err != nil {
			deps.Warn("sessionkit: logout: envelope clear failed: %v", err)
		}
	}

	deps.MetricInc(deps.Metrics.Logout)
	deps.Emit(deps.Events.Logout, true, nil, nil)
}
