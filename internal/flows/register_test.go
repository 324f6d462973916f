package flows

import (
	"context"
	"errors"
	"testing"
)

func registerDeps(rec *recorder) RegisterDeps {
	return RegisterDeps{
		SignUp: func(_ context.Context, email, _ string) (Identity, error) {
			return Identity{ExternalID: "u-1", Email: email, IDToken: "tok-1", RefreshToken: "rt-1", NewAccount: true}, nil
		},
		CreateProfile: func(_ context.Context, ident Identity, _ RegisterInput) (any, error) {
			return "created-" + ident.ExternalID, nil
		},
		UpdateDisplayName: func(context.Context, string, string) error { return nil },
		MapProviderError:  passthroughMapper,
		MetricInc:         rec.metricInc,
		Emit:              rec.emit,
		Warn:              rec.warn,
		Metrics:           RegisterMetrics{Success: 3, Failure: 4},
		Events:            RegisterEvents{Success: "register", Failure: "register"},
		Errors:            RegisterErrors{NotReady: errNotReady, InvalidCredentials: errInvalidCred},
	}
}

func TestRegisterSuccessCreatesProfile(t *testing.T) {
	rec := &recorder{}
	out, err := RunRegister(context.Background(), RegisterInput{
		Email:       "a@b.c",
		Password:    "pw",
		DisplayName: "Alice",
	}, registerDeps(rec))
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if out.User != "created-u-1" {
		t.Fatalf("user = %v, want created profile", out.User)
	}
	if !rec.hasMetric(3) {
		t.Fatal("success metric not incremented")
	}
}

func TestRegisterEmptyInputRejected(t *testing.T) {
	rec := &recorder{}
	deps := registerDeps(rec)
	for _, in := range []RegisterInput{
		{Password: "pw"},
		{Email: "a@b.c"},
		{},
	} {
		if _, err := RunRegister(context.Background(), in, deps); !errors.Is(err, errInvalidCred) {
			t.Fatalf("in=%+v err=%v, want invalid credentials", in, err)
		}
	}
}

func TestRegisterDuplicateSurfacesProviderError(t *testing.T) {
	rec := &recorder{}
	deps := registerDeps(rec)
	deps.SignUp = func(context.Context, string, string) (Identity, error) {
		return Identity{}, errProvider
	}

	if _, err := RunRegister(context.Background(), RegisterInput{Email: "a@b.c", Password: "pw"}, deps); !errors.Is(err, errProvider) {
		t.Fatalf("err = %v, want wrapped provider error", err)
	}
	if !rec.hasMetric(4) {
		t.Fatal("failure metric not incremented")
	}
}

func TestRegisterDisplayNameFailureIsWarnOnly(t *testing.T) {
	rec := &recorder{}
	deps := registerDeps(rec)
	deps.UpdateDisplayName = func(context.Context, string, string) error { return errProvider }

	out, err := RunRegister(context.Background(), RegisterInput{
		Email:       "a@b.c",
		Password:    "pw",
		DisplayName: "Alice",
	}, deps)
	if err != nil {
		t.Fatalf("register must succeed despite display-name failure: %v", err)
	}
	if out == nil {
		t.Fatal("nil outcome")
	}
	if len(rec.warns) == 0 {
		t.Fatal("expected a warning about the display-name failure")
	}
}

func TestRegisterProfileCreationFailureFails(t *testing.T) {
	rec := &recorder{}
	deps := registerDeps(rec)
	deps.CreateProfile = func(context.Context, Identity, RegisterInput) (any, error) {
		return nil, errProvider
	}

	if _, err := RunRegister(context.Background(), RegisterInput{Email: "a@b.c", Password: "pw"}, deps); !errors.Is(err, errProvider) {
		t.Fatalf("err = %v, want wrapped provider error", err)
	}
}

func TestRegisterPersistsWhenRemembered(t *testing.T) {
	rec := &recorder{}
	deps := registerDeps(rec)
	persisted := false
	deps.Remembered = func() bool { return true }
	deps.Persist = func(_ context.Context, user any, tok, _ string) {
		persisted = true
		if user != "created-u-1" || tok != "tok-1" {
			t.Fatalf("persisted %v/%q", user, tok)
		}
	}

	if _, err := RunRegister(context.Background(), RegisterInput{Email: "a@b.c", Password: "pw"}, deps); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if !persisted {
		t.Fatal("expected persistence")
	}
}
