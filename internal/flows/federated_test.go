package flows

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func federatedDeps(rec *recorder) FederatedDeps {
	return FederatedDeps{
		SignIn: func(_ context.Context, providerName string) (Identity, error) {
			return Identity{ExternalID: "u-" + providerName, IDToken: "tok-1", RefreshToken: "rt-1"}, nil
		},
		FetchProfile: func(_ context.Context, externalID, _ string) (any, error) {
			return "profile-" + externalID, nil
		},
		CreateProfile: func(_ context.Context, ident Identity) (any, error) {
			return "created-" + ident.ExternalID, nil
		},
		MapProviderError: passthroughMapper,
		MetricInc:        rec.metricInc,
		Emit:             rec.emit,
		Warn:             rec.warn,
		Metrics:          FederatedMetrics{Success: 7, Failure: 8, Cancelled: 9},
		Events: FederatedEvents{
			Success:   "federated_login",
			Failure:   "federated_login",
			Cancelled: "federated_login_cancelled",
		},
		Errors: FederatedErrors{NotReady: errNotReady, Cancelled: errCancelled},
	}
}

func TestFederatedLoginExistingAccountFetches(t *testing.T) {
	rec := &recorder{}
	out, err := RunFederatedLogin(context.Background(), "google", federatedDeps(rec))
	if err != nil {
		t.Fatalf("federated login failed: %v", err)
	}
	if out.User != "profile-u-google" {
		t.Fatalf("user = %v, want fetched profile", out.User)
	}
	if !rec.hasMetric(7) {
		t.Fatal("success metric not incremented")
	}
}

func TestFederatedLoginNewAccountCreates(t *testing.T) {
	rec := &recorder{}
	deps := federatedDeps(rec)
	deps.SignIn = func(context.Context, string) (Identity, error) {
		return Identity{ExternalID: "u-1", IDToken: "tok-1", NewAccount: true}, nil
	}

	out, err := RunFederatedLogin(context.Background(), "facebook", deps)
	if err != nil {
		t.Fatalf("federated login failed: %v", err)
	}
	if out.User != "created-u-1" {
		t.Fatalf("user = %v, want created profile", out.User)
	}
}

func TestFederatedLoginCancelledIsDistinct(t *testing.T) {
	rec := &recorder{}
	deps := federatedDeps(rec)
	deps.SignIn = func(context.Context, string) (Identity, error) {
		return Identity{}, errors.New("user aborted")
	}
	deps.MapProviderError = func(err error) error {
		return fmt.Errorf("%w: %v", errCancelled, err)
	}

	_, err := RunFederatedLogin(context.Background(), "google", deps)
	if !errors.Is(err, errCancelled) {
		t.Fatalf("err = %v, want cancelled", err)
	}
	if !rec.hasMetric(9) {
		t.Fatal("cancelled metric not incremented")
	}
	if rec.hasMetric(8) {
		t.Fatal("cancellation must not count as a failure")
	}
	if len(rec.events) != 1 || rec.events[0] != "federated_login_cancelled" {
		t.Fatalf("events = %v", rec.events)
	}
}

func TestFederatedLoginHandshakeFailure(t *testing.T) {
	rec := &recorder{}
	deps := federatedDeps(rec)
	deps.SignIn = func(context.Context, string) (Identity, error) {
		return Identity{}, errProvider
	}

	if _, err := RunFederatedLogin(context.Background(), "google", deps); !errors.Is(err, errProvider) {
		t.Fatalf("err = %v, want wrapped provider error", err)
	}
	if !rec.hasMetric(8) {
		t.Fatal("failure metric not incremented")
	}
}

func TestFederatedLoginProfileFailure(t *testing.T) {
	rec := &recorder{}
	deps := federatedDeps(rec)
	deps.FetchProfile = func(context.Context, string, string) (any, error) {
		return nil, errProvider
	}

	if _, err := RunFederatedLogin(context.Background(), "google", deps); !errors.Is(err, errProvider) {
		t.Fatalf("err = %v, want wrapped provider error", err)
	}
}
