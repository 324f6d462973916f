package flows

import "context"

// BiometricMetrics carries metric IDs used by the biometric flows.
type BiometricMetrics struct {
	LoginSuccess int
	LoginFailure int
}

// BiometricEvents carries lifecycle event names used by the biometric flows.
type BiometricEvents struct {
	LoginSuccess string
	LoginFailure string
	Enabled      string
	Disabled     string
}

// BiometricErrors carries host-level sentinel errors used by the biometric flows.
type BiometricErrors struct {
	NotReady           error
	Unavailable        error
	SessionNotFound    error
	InvalidCredentials error
}

// BiometricDeps captures biometric re-authentication dependencies.
type BiometricDeps struct {
	Supported    func(ctx context.Context) bool
	Authenticate func(ctx context.Context, prompt string) error

	LoadEnvelope func(ctx context.Context) (Envelope, bool, error)
	DecodeUser   func(data []byte) (any, error)
	TokenExpired func(token string) bool
	SetFlag      func(ctx context.Context, enabled bool) error

	MapProviderError func(error) error

	LoginPrompt  string
	EnablePrompt string

	MetricInc func(int)
	Emit      func(event string, success bool, err error, meta map[string]string)
	Warn      func(string, ...any)

	Metrics BiometricMetrics
	Events  BiometricEvents
	Errors  BiometricErrors
}

// RunBiometricLogin re-validates the persisted session behind the device
// sensor. It restores the envelope exactly as written — no profile service
// round trip — and therefore requires both the capability flag and a complete
// persisted envelope.
func RunBiometricLogin(ctx context.Context, enabled bool, deps BiometricDeps) (*AuthOutcome, error) {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.Emit == nil {
		deps.Emit = func(string, bool, error, map[string]string) {}
	}
	if deps.Warn == nil {
		deps.Warn = func(string, ...any) {}
	}
	if deps.Supported == nil || deps.Authenticate == nil || deps.LoadEnvelope == nil || deps.DecodeUser == nil {
		return nil, deps.Errors.NotReady
	}

	if !enabled || !deps.Supported(ctx) {
		deps.MetricInc(deps.Metrics.LoginFailure)
		deps.Emit(deps.Events.LoginFailure, false, deps.Errors.Unavailable, map[string]string{
			"reason": "capability_disabled",
		})
		return nil, deps.Errors.Unavailable
	}

	env, ok, err := deps.LoadEnvelope(ctx)
	if err != nil {
		deps.Warn("sessionkit: biometric login: envelope load failed: %v", err)
	}
	if err != nil || !ok || !complete(env) {
		deps.MetricInc(deps.Metrics.LoginFailure)
		deps.Emit(deps.Events.LoginFailure, false, deps.Errors.SessionNotFound, map[string]string{
			"reason": "no_persisted_session",
		})
		return nil, deps.Errors.SessionNotFound
	}
	if deps.TokenExpired != nil && deps.TokenExpired(env.Token) {
		deps.MetricInc(deps.Metrics.LoginFailure)
		deps.Emit(deps.Events.LoginFailure, false, deps.Errors.SessionNotFound, map[string]string{
			"reason": "persisted_token_expired",
		})
		return nil, deps.Errors.SessionNotFound
	}

	if err := deps.Authenticate(ctx, deps.LoginPrompt); err != nil {
		mapped := deps.Errors.InvalidCredentials
		if deps.MapProviderError != nil {
			mapped = deps.MapProviderError(err)
		}
		deps.MetricInc(deps.Metrics.LoginFailure)
		deps.Emit(deps.Events.LoginFailure, false, mapped, map[string]string{
			"reason": "sensor_rejected",
		})
		return nil, mapped
	}

	user, err := deps.DecodeUser(env.UserJSON)
	if err != nil {
		deps.Warn("sessionkit: biometric login: persisted user record corrupt: %v", err)
		deps.MetricInc(deps.Metrics.LoginFailure)
		deps.Emit(deps.Events.LoginFailure, false, deps.Errors.SessionNotFound, map[string]string{
			"reason": "corrupt_envelope",
		})
		return nil, deps.Errors.SessionNotFound
	}

	deps.MetricInc(deps.Metrics.LoginSuccess)
	deps.Emit(deps.Events.LoginSuccess, true, nil, nil)
	return &AuthOutcome{
		User:         user,
		Token:        env.Token,
		RefreshToken: env.RefreshToken,
	}, nil
}

// RunEnableBiometric flips the capability flag on, gated behind an explicit
// sensor confirmation so re-authentication is never enabled without consent.
func RunEnableBiometric(ctx context.Context, deps BiometricDeps) error {
	if deps.Emit == nil {
		deps.Emit = func(string, bool, error, map[string]string) {}
	}
	if deps.Warn == nil {
		deps.Warn = func(string, ...any) {}
	}
	if deps.Supported == nil || deps.Authenticate == nil {
		return deps.Errors.NotReady
	}

	if !deps.Supported(ctx) {
		return deps.Errors.Unavailable
	}
	if err := deps.Authenticate(ctx, deps.EnablePrompt); err != nil {
		if deps.MapProviderError != nil {
			return deps.MapProviderError(err)
		}
		return deps.Errors.InvalidCredentials
	}

	if deps.SetFlag != nil {
		if err := deps.SetFlag(ctx, true); err != nil {
			// The in-memory flag still flips; it just will not survive a
			// restart until the store recovers.
			deps.Warn("sessionkit: enable biometric: flag persist failed: %v", err)
		}
	}
	deps.Emit(deps.Events.Enabled, true, nil, nil)
	return nil
}

// RunDisableBiometric flips the capability flag off. No gesture is required
// to reduce security.
func RunDisableBiometric(ctx context.Context, deps BiometricDeps) error {
	if deps.Emit == nil {
		deps.Emit = func(string, bool, error, map[string]string) {}
	}
	if deps.Warn == nil {
		deps.Warn = func(string, ...any) {}
	}
	if deps.Supported == nil {
		return deps.Errors.NotReady
	}
	if !deps.Supported(ctx) {
		return deps.Errors.Unavailable
	}

	if deps.SetFlag != nil {
		if err := deps.SetFlag(ctx, false); err != nil {
			deps.Warn("sessionkit: disable biometric: flag persist failed: %v", err)
		}
	}
	deps.Emit(deps.Events.Disabled, true, nil, nil)
	return nil
}

func complete(env Envelope) bool {
	return len(env.UserJSON) > 0 && env.Token != ""
}
