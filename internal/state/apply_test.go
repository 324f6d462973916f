package state

import "testing"

func authenticated() State {
	return State{
		Phase:        PhaseAuthenticated,
		User:         "alice",
		Token:        "tok-1",
		RefreshToken: "rt-1",
	}
}

func TestInitialState(t *testing.T) {
	s := Initial()
	if s.Phase != PhaseInitializing {
		t.Fatalf("phase = %v, want initializing", s.Phase)
	}
	if !s.Loading {
		t.Fatal("initial state must be loading")
	}
	if s.Authenticated() {
		t.Fatal("initial state must not be authenticated")
	}
}

func TestRestoreCompletedAuthenticates(t *testing.T) {
	s := Apply(Initial(), RestoreCompleted{
		User:             "alice",
		Token:            "tok-1",
		RefreshToken:     "rt-1",
		BiometricEnabled: true,
		RememberMe:       true,
	})
	if !s.Authenticated() {
		t.Fatal("expected authenticated state")
	}
	if s.Phase != PhaseAuthenticated {
		t.Fatalf("phase = %v, want authenticated", s.Phase)
	}
	if s.Loading {
		t.Fatal("restore must end loading")
	}
	if !s.BiometricEnabled || !s.RememberMe {
		t.Fatal("restore must carry flags over")
	}
}

func TestRestoreCompletedIncompleteDegradesToEmpty(t *testing.T) {
	for name, ev := range map[string]RestoreCompleted{
		"no user":  {Token: "tok-1", BiometricEnabled: true},
		"no token": {User: "alice", BiometricEnabled: true},
	} {
		s := Apply(Initial(), ev)
		if s.Authenticated() {
			t.Fatalf("%s: must not authenticate", name)
		}
		if s.Phase != PhaseUnauthenticated {
			t.Fatalf("%s: phase = %v, want unauthenticated", name, s.Phase)
		}
		if !s.BiometricEnabled {
			t.Fatalf("%s: biometric flag lost", name)
		}
	}
}

func TestRestoreEmpty(t *testing.T) {
	s := Apply(Initial(), RestoreEmpty{BiometricEnabled: true})
	if s.Authenticated() || s.Loading {
		t.Fatal("restore-empty must end on resting unauthenticated")
	}
	if !s.BiometricEnabled {
		t.Fatal("biometric flag must carry over")
	}
}

func TestOperationStartedPhases(t *testing.T) {
	s := Apply(Apply(Initial(), RestoreEmpty{}), OperationStarted{})
	if s.Phase != PhaseAuthenticating || !s.Loading {
		t.Fatalf("got phase=%v loading=%v", s.Phase, s.Loading)
	}

	s = Apply(Apply(Initial(), RestoreEmpty{}), OperationStarted{Biometric: true})
	if s.Phase != PhaseRestoringBiometric {
		t.Fatalf("phase = %v, want restoring_biometric", s.Phase)
	}
}

func TestOperationFinishedRestoresRestingPhase(t *testing.T) {
	s := Apply(Apply(authenticated(), OperationStarted{}), OperationFinished{})
	if s.Phase != PhaseAuthenticated || s.Loading {
		t.Fatalf("got phase=%v loading=%v", s.Phase, s.Loading)
	}

	unauth := Apply(Initial(), RestoreEmpty{})
	s = Apply(Apply(unauth, OperationStarted{}), OperationFinished{})
	if s.Phase != PhaseUnauthenticated || s.Loading {
		t.Fatalf("got phase=%v loading=%v", s.Phase, s.Loading)
	}
}

func TestSignedInIncompleteDegrades(t *testing.T) {
	start := Apply(Apply(Initial(), RestoreEmpty{}), OperationStarted{})

	s := Apply(start, SignedIn{User: "alice"})
	if s.Authenticated() {
		t.Fatal("token-less sign-in must not authenticate")
	}
	if s.Loading {
		t.Fatal("degraded sign-in must end loading")
	}

	s = Apply(start, SignedIn{Token: "tok-1"})
	if s.Authenticated() {
		t.Fatal("user-less sign-in must not authenticate")
	}
}

func TestSignedOutPreservesBiometricOnly(t *testing.T) {
	s := authenticated()
	s.BiometricEnabled = true
	s.RememberMe = true

	for _, ev := range []Event{SignedOut{}, SessionExpired{}} {
		next := Apply(s, ev)
		if next.Authenticated() {
			t.Fatal("must reset authentication")
		}
		if next.User != nil || next.Token != "" || next.RefreshToken != "" {
			t.Fatal("credentials must be dropped")
		}
		if !next.BiometricEnabled {
			t.Fatal("biometric capability must survive")
		}
		if next.RememberMe {
			t.Fatal("remember-me must reset with the session")
		}
	}
}

func TestUserReplacedRequiresAuthenticated(t *testing.T) {
	s := Apply(Initial(), RestoreEmpty{})
	if next := Apply(s, UserReplaced{User: "bob"}); next.User != nil {
		t.Fatal("user replacement while unauthenticated must be ignored")
	}

	next := Apply(authenticated(), UserReplaced{User: "bob"})
	if next.User != "bob" {
		t.Fatalf("user = %v, want bob", next.User)
	}
	if next.Token != "tok-1" {
		t.Fatal("token must be untouched")
	}
}

func TestTokensRotated(t *testing.T) {
	next := Apply(authenticated(), TokensRotated{Token: "tok-2", RefreshToken: "rt-2"})
	if next.Token != "tok-2" || next.RefreshToken != "rt-2" {
		t.Fatalf("got %q/%q", next.Token, next.RefreshToken)
	}

	// Empty replacement refresh token keeps the previous one.
	next = Apply(authenticated(), TokensRotated{Token: "tok-2"})
	if next.RefreshToken != "rt-1" {
		t.Fatalf("refresh token = %q, want rt-1", next.RefreshToken)
	}

	// Empty access token is a no-op.
	next = Apply(authenticated(), TokensRotated{RefreshToken: "rt-2"})
	if next.Token != "tok-1" || next.RefreshToken != "rt-1" {
		t.Fatal("rotation without a token must be ignored")
	}
}

func TestFlagEvents(t *testing.T) {
	s := Apply(Initial(), RestoreEmpty{})

	s = Apply(s, BiometricFlagChanged{Enabled: true})
	if !s.BiometricEnabled {
		t.Fatal("flag not set")
	}
	s = Apply(s, RememberMeChanged{On: true})
	if !s.RememberMe {
		t.Fatal("remember-me not set")
	}
	s = Apply(s, BiometricFlagChanged{})
	if s.BiometricEnabled {
		t.Fatal("flag not cleared")
	}
}

// Every event from every representative state must land on a state satisfying
// the authentication invariant.
func TestApplyInvariant(t *testing.T) {
	states := []State{
		Initial(),
		Apply(Initial(), RestoreEmpty{}),
		authenticated(),
		Apply(authenticated(), OperationStarted{}),
	}
	events := []Event{
		OperationStarted{},
		OperationStarted{Biometric: true},
		OperationFinished{},
		RestoreCompleted{User: "alice", Token: "tok-1"},
		RestoreCompleted{User: "alice"},
		RestoreCompleted{Token: "tok-1"},
		RestoreEmpty{BiometricEnabled: true},
		SignedIn{User: "bob", Token: "tok-2"},
		SignedIn{User: "bob"},
		SignedIn{Token: "tok-2"},
		SignedOut{},
		SessionExpired{},
		UserReplaced{User: "carol"},
		UserReplaced{},
		TokensRotated{Token: "tok-3"},
		TokensRotated{},
		BiometricFlagChanged{Enabled: true},
		RememberMeChanged{On: true},
	}

	for _, s := range states {
		for _, ev := range events {
			next := Apply(s, ev)
			got := next.Authenticated()
			want := next.User != nil && next.Token != ""
			if got != want {
				t.Fatalf("invariant broken: state %+v event %#v -> %+v", s, ev, next)
			}
		}
	}
}
