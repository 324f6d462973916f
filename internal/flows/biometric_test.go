package flows

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func biometricDeps(rec *recorder, env Envelope, found bool) BiometricDeps {
	return BiometricDeps{
		Supported:    func(context.Context) bool { return true },
		Authenticate: func(context.Context, string) error { return nil },
		LoadEnvelope: func(context.Context) (Envelope, bool, error) {
			return env, found, nil
		},
		DecodeUser: func(data []byte) (any, error) {
			var v map[string]string
			if err := json.Unmarshal(data, &v); err != nil {
				return nil, err
			}
			return v, nil
		},
		SetFlag:          func(context.Context, bool) error { return nil },
		MapProviderError: passthroughMapper,
		LoginPrompt:      "unlock",
		EnablePrompt:     "confirm",
		MetricInc:        rec.metricInc,
		Emit:             rec.emit,
		Warn:             rec.warn,
		Metrics:          BiometricMetrics{LoginSuccess: 5, LoginFailure: 6},
		Events: BiometricEvents{
			LoginSuccess: "biometric_login",
			LoginFailure: "biometric_login",
			Enabled:      "biometric_enabled",
			Disabled:     "biometric_disabled",
		},
		Errors: BiometricErrors{
			NotReady:           errNotReady,
			Unavailable:        errUnavailable,
			SessionNotFound:    errNotFound,
			InvalidCredentials: errInvalidCred,
		},
	}
}

func TestBiometricLoginRestoresPersistedSession(t *testing.T) {
	rec := &recorder{}
	deps := biometricDeps(rec, validEnvelope(), true)
	prompt := ""
	deps.Authenticate = func(_ context.Context, p string) error {
		prompt = p
		return nil
	}

	out, err := RunBiometricLogin(context.Background(), true, deps)
	if err != nil {
		t.Fatalf("biometric login failed: %v", err)
	}
	if out.Token != "tok-1" || out.RefreshToken != "rt-1" {
		t.Fatalf("tokens = %q/%q", out.Token, out.RefreshToken)
	}
	if prompt != "unlock" {
		t.Fatalf("prompt = %q, want login prompt", prompt)
	}
	if !rec.hasMetric(5) {
		t.Fatal("success metric not incremented")
	}
}

func TestBiometricLoginDisabledFlag(t *testing.T) {
	rec := &recorder{}
	if _, err := RunBiometricLogin(context.Background(), false, biometricDeps(rec, validEnvelope(), true)); !errors.Is(err, errUnavailable) {
		t.Fatalf("err = %v, want unavailable", err)
	}
}

func TestBiometricLoginUnsupportedSensor(t *testing.T) {
	rec := &recorder{}
	deps := biometricDeps(rec, validEnvelope(), true)
	deps.Supported = func(context.Context) bool { return false }

	if _, err := RunBiometricLogin(context.Background(), true, deps); !errors.Is(err, errUnavailable) {
		t.Fatalf("err = %v, want unavailable", err)
	}
}

func TestBiometricLoginNoEnvelope(t *testing.T) {
	rec := &recorder{}
	if _, err := RunBiometricLogin(context.Background(), true, biometricDeps(rec, Envelope{}, false)); !errors.Is(err, errNotFound) {
		t.Fatalf("err = %v, want session not found", err)
	}
}

func TestBiometricLoginIncompleteEnvelope(t *testing.T) {
	rec := &recorder{}
	env := validEnvelope()
	env.Token = ""

	if _, err := RunBiometricLogin(context.Background(), true, biometricDeps(rec, env, true)); !errors.Is(err, errNotFound) {
		t.Fatalf("err = %v, want session not found", err)
	}
}

func TestBiometricLoginExpiredToken(t *testing.T) {
	rec := &recorder{}
	deps := biometricDeps(rec, validEnvelope(), true)
	deps.TokenExpired = func(string) bool { return true }

	if _, err := RunBiometricLogin(context.Background(), true, deps); !errors.Is(err, errNotFound) {
		t.Fatalf("err = %v, want session not found", err)
	}
}

func TestBiometricLoginSensorRejection(t *testing.T) {
	rec := &recorder{}
	deps := biometricDeps(rec, validEnvelope(), true)
	deps.Authenticate = func(context.Context, string) error { return errProvider }

	if _, err := RunBiometricLogin(context.Background(), true, deps); !errors.Is(err, errProvider) {
		t.Fatalf("err = %v, want mapped sensor error", err)
	}
	if !rec.hasMetric(6) {
		t.Fatal("failure metric not incremented")
	}
}

func TestEnableBiometricRequiresGesture(t *testing.T) {
	rec := &recorder{}
	deps := biometricDeps(rec, validEnvelope(), true)
	prompt := ""
	flagSet := false
	deps.Authenticate = func(_ context.Context, p string) error {
		prompt = p
		return nil
	}
	deps.SetFlag = func(_ context.Context, enabled bool) error {
		flagSet = enabled
		return nil
	}

	if err := RunEnableBiometric(context.Background(), deps); err != nil {
		t.Fatalf("enable failed: %v", err)
	}
	if prompt != "confirm" {
		t.Fatalf("prompt = %q, want enable prompt", prompt)
	}
	if !flagSet {
		t.Fatal("flag not persisted")
	}
}

func TestEnableBiometricGestureRejected(t *testing.T) {
	rec := &recorder{}
	deps := biometricDeps(rec, validEnvelope(), true)
	deps.Authenticate = func(context.Context, string) error { return errProvider }
	deps.SetFlag = func(context.Context, bool) error {
		t.Fatal("flag must not flip on a rejected gesture")
		return nil
	}

	if err := RunEnableBiometric(context.Background(), deps); !errors.Is(err, errProvider) {
		t.Fatalf("err = %v, want mapped sensor error", err)
	}
}

func TestEnableBiometricFlagPersistFailureIsWarnOnly(t *testing.T) {
	rec := &recorder{}
	deps := biometricDeps(rec, validEnvelope(), true)
	deps.SetFlag = func(context.Context, bool) error { return errProvider }

	if err := RunEnableBiometric(context.Background(), deps); err != nil {
		t.Fatalf("enable must succeed despite persist failure: %v", err)
	}
	if len(rec.warns) == 0 {
		t.Fatal("persist failure must be warned about")
	}
}

func TestDisableBiometricNeedsNoGesture(t *testing.T) {
	rec := &recorder{}
	deps := biometricDeps(rec, validEnvelope(), true)
	deps.Authenticate = func(context.Context, string) error {
		t.Fatal("disable must not prompt")
		return nil
	}
	cleared := true
	deps.SetFlag = func(_ context.Context, enabled bool) error {
		cleared = enabled
		return nil
	}

	if err := RunDisableBiometric(context.Background(), deps); err != nil {
		t.Fatalf("disable failed: %v", err)
	}
	if cleared {
		t.Fatal("flag not cleared")
	}
}
