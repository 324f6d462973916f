package flows

import (
	"context"
	"errors"
	"testing"
)

func profileDeps(rec *recorder) ProfileDeps {
	return ProfileDeps{
		PushUpdate: func(context.Context, string, any, string) error { return nil },
		Merge: func(current, update any) any {
			return current.(string) + "+" + update.(string)
		},
		MapProviderError: passthroughMapper,
		MetricInc:        rec.metricInc,
		Emit:             rec.emit,
		Metrics:          ProfileMetrics{Success: 16, Failure: 17},
		Events:           ProfileEvents{Success: "profile_update", Failure: "profile_update"},
		Errors:           ProfileErrors{NotReady: errNotReady, NotAuthenticated: errNoAuth},
	}
}

func TestUpdateProfileReturnsLocalMerge(t *testing.T) {
	rec := &recorder{}
	merged, err := RunUpdateProfile(context.Background(), "rec", "u-1", "tok-1", "rt-1", "patch", profileDeps(rec))
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if merged != "rec+patch" {
		t.Fatalf("merged = %v, want local merge result", merged)
	}
	if !rec.hasMetric(16) {
		t.Fatal("success metric not incremented")
	}
}

func TestUpdateProfileRequiresSession(t *testing.T) {
	rec := &recorder{}
	deps := profileDeps(rec)

	if _, err := RunUpdateProfile(context.Background(), nil, "u-1", "tok-1", "", "patch", deps); !errors.Is(err, errNoAuth) {
		t.Fatalf("err = %v, want not authenticated", err)
	}
	if _, err := RunUpdateProfile(context.Background(), "rec", "u-1", "", "", "patch", deps); !errors.Is(err, errNoAuth) {
		t.Fatalf("err = %v, want not authenticated", err)
	}
}

func TestUpdateProfileServiceFailureKeepsCurrent(t *testing.T) {
	rec := &recorder{}
	deps := profileDeps(rec)
	deps.PushUpdate = func(context.Context, string, any, string) error { return errProvider }
	deps.Merge = func(any, any) any {
		t.Fatal("merge must not run when the push fails")
		return nil
	}

	if _, err := RunUpdateProfile(context.Background(), "rec", "u-1", "tok-1", "", "patch", deps); !errors.Is(err, errProvider) {
		t.Fatalf("err = %v, want wrapped provider error", err)
	}
	if !rec.hasMetric(17) {
		t.Fatal("failure metric not incremented")
	}
}

func TestUpdateProfilePersistsMergedRecord(t *testing.T) {
	rec := &recorder{}
	deps := profileDeps(rec)
	persisted := any(nil)
	deps.Remembered = func() bool { return true }
	deps.Persist = func(_ context.Context, user any, tok, refresh string) {
		persisted = user
		if tok != "tok-1" || refresh != "rt-1" {
			t.Fatalf("persisted tokens %q/%q", tok, refresh)
		}
	}

	if _, err := RunUpdateProfile(context.Background(), "rec", "u-1", "tok-1", "rt-1", "patch", deps); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if persisted != "rec+patch" {
		t.Fatalf("persisted = %v, want merged record", persisted)
	}
}
