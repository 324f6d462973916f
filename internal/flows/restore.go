package flows

import "context"

// RestoreMetrics carries metric IDs used by the startup restore flow.
type RestoreMetrics struct {
	Success int
	Empty   int
}

// RestoreResult reports what startup restore found. When Restored is false
// the flag fields still carry whatever capability state was readable.
type RestoreResult struct {
	Restored         bool
	User             any
	Token            string
	RefreshToken     string
	BiometricEnabled bool
	RememberMe       bool
}

// RestoreDeps captures startup-restore dependencies.
type RestoreDeps struct {
	LoadEnvelope func(ctx context.Context) (Envelope, bool, error)
	DecodeUser   func(data []byte) (any, error)
	TokenExpired func(token string) bool

	MetricInc func(int)
	Warn      func(string, ...any)

	Metrics RestoreMetrics
}

// RunRestore executes startup restore. It is a background operation: every
// failure degrades to "no session" rather than propagating, and store
// problems are only warned about.
func RunRestore(ctx context.Context, deps RestoreDeps) RestoreResult {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.Warn == nil {
		deps.Warn = func(string, ...any) {}
	}
	if deps.LoadEnvelope == nil || deps.DecodeUser == nil {
		deps.MetricInc(deps.Metrics.Empty)
		return RestoreResult{}
	}

	env, ok, err := deps.LoadEnvelope(ctx)
	if err != nil {
		deps.Warn("sessionkit: restore: envelope load failed: %v", err)
		deps.MetricInc(deps.Metrics.Empty)
		return RestoreResult{}
	}

	empty := RestoreResult{
		BiometricEnabled: env.BiometricEnabled,
		RememberMe:       env.RememberMe,
	}
	if !ok || !env.RememberMe {
		deps.MetricInc(deps.Metrics.Empty)
		return empty
	}
	if deps.TokenExpired != nil && deps.TokenExpired(env.Token) {
		deps.MetricInc(deps.Metrics.Empty)
		return empty
	}

	user, err := deps.DecodeUser(env.UserJSON)
	if err != nil {
		deps.Warn("sessionkit: restore: persisted user record corrupt: %v", err)
		deps.MetricInc(deps.Metrics.Empty)
		return empty
	}

	deps.MetricInc(deps.Metrics.Success)
	return RestoreResult{
		Restored:         true,
		User:             user,
		Token:            env.Token,
		RefreshToken:     env.RefreshToken,
		BiometricEnabled: env.BiometricEnabled,
		RememberMe:       env.RememberMe,
	}
}
