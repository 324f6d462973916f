package flows

import (
	"context"
	"errors"
	"testing"
)

func refreshDeps(rec *recorder) RefreshDeps {
	return RefreshDeps{
		RefreshToken: func(_ context.Context, refreshToken string) (string, string, error) {
			return "tok-2", "rt-2", nil
		},
		FetchProfile: func(_ context.Context, externalID, tok string) (any, error) {
			return "profile-" + externalID + "-" + tok, nil
		},
		MapProviderError: passthroughMapper,
		MetricInc:        rec.metricInc,
		Emit:             rec.emit,
		Metrics:          RefreshMetrics{Success: 10, Failure: 11},
		Events:           RefreshEvents{Success: "session_refresh", Failure: "session_refresh"},
		Errors:           RefreshErrors{NotReady: errNotReady, NotAuthenticated: errNoAuth},
	}
}

func TestRefreshRotatesAndRefetches(t *testing.T) {
	rec := &recorder{}
	out, err := RunRefresh(context.Background(), "u-1", "rt-1", refreshDeps(rec))
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if out.Token != "tok-2" || out.RefreshToken != "rt-2" {
		t.Fatalf("tokens = %q/%q", out.Token, out.RefreshToken)
	}
	if out.User != "profile-u-1-tok-2" {
		t.Fatalf("user = %v, want refetched profile under the new token", out.User)
	}
	if !rec.hasMetric(10) {
		t.Fatal("success metric not incremented")
	}
}

func TestRefreshKeepsOldRefreshTokenWhenNotRotated(t *testing.T) {
	rec := &recorder{}
	deps := refreshDeps(rec)
	deps.RefreshToken = func(context.Context, string) (string, string, error) {
		return "tok-2", "", nil
	}

	out, err := RunRefresh(context.Background(), "u-1", "rt-1", deps)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if out.RefreshToken != "rt-1" {
		t.Fatalf("refresh token = %q, want rt-1 kept", out.RefreshToken)
	}
}

func TestRefreshWithoutTokenNotAuthenticated(t *testing.T) {
	rec := &recorder{}
	if _, err := RunRefresh(context.Background(), "u-1", "", refreshDeps(rec)); !errors.Is(err, errNoAuth) {
		t.Fatalf("err = %v, want not authenticated", err)
	}
}

func TestRefreshProviderRejection(t *testing.T) {
	rec := &recorder{}
	deps := refreshDeps(rec)
	deps.RefreshToken = func(context.Context, string) (string, string, error) {
		return "", "", errProvider
	}

	if _, err := RunRefresh(context.Background(), "u-1", "rt-1", deps); !errors.Is(err, errProvider) {
		t.Fatalf("err = %v, want wrapped provider error", err)
	}
	if !rec.hasMetric(11) {
		t.Fatal("failure metric not incremented")
	}
}

func TestRefreshProfileRefetchFailure(t *testing.T) {
	rec := &recorder{}
	deps := refreshDeps(rec)
	deps.FetchProfile = func(context.Context, string, string) (any, error) {
		return nil, errProvider
	}

	if _, err := RunRefresh(context.Background(), "u-1", "rt-1", deps); !errors.Is(err, errProvider) {
		t.Fatalf("err = %v, want wrapped provider error", err)
	}
}

func TestRefreshPersistsWhenRemembered(t *testing.T) {
	rec := &recorder{}
	deps := refreshDeps(rec)
	persisted := false
	deps.Remembered = func() bool { return true }
	deps.Persist = func(_ context.Context, _ any, tok, refresh string) {
		persisted = true
		if tok != "tok-2" || refresh != "rt-2" {
			t.Fatalf("persisted %q/%q", tok, refresh)
		}
	}

	if _, err := RunRefresh(context.Background(), "u-1", "rt-1", deps); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if !persisted {
		t.Fatal("expected persistence")
	}
}
