package sessionkit

import (
	"context"
	"fmt"

	"github.com/aurawell/sessionkit/internal/flows"
	"github.com/aurawell/sessionkit/internal/state"
)

// Restore describes the restore operation and its observable behavior.
//
// Restore runs the startup restore exactly once per app launch: a valid
// remembered envelope moves the manager straight to Authenticated, anything
// else lands on Unauthenticated. It is a background operation and never
// returns a user-facing error; the resulting snapshot is the answer. Calls
// after the first restore are no-ops returning the current snapshot, so a
// live session is never overwritten from the envelope.
func (m *Manager) Restore(ctx context.Context) SessionSnapshot {
	if err := m.beginOp(); err != nil {
		return m.Snapshot()
	}
	defer m.endOp()

	if m.currentState().Phase != state.PhaseInitializing {
		return m.Snapshot()
	}

	res := m.flows.Restore(ctx)
	if res.Restored {
		m.apply(state.RestoreCompleted{
			User:             res.User,
			Token:            res.Token,
			RefreshToken:     res.RefreshToken,
			BiometricEnabled: res.BiometricEnabled,
			RememberMe:       res.RememberMe,
		})
	} else {
		m.apply(state.RestoreEmpty{BiometricEnabled: res.BiometricEnabled})
		if res.RememberMe {
			m.apply(state.RememberMeChanged{On: true})
		}
	}
	return m.Snapshot()
}

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login authenticates with the password provider, resolves the profile, and
// installs the new session atomically; on failure the prior state is kept
// untouched apart from the loading flag.
func (m *Manager) Login(ctx context.Context, email, password string) (*UserRecord, error) {
	if err := m.beginOp(); err != nil {
		return nil, err
	}
	defer m.endOp()

	m.apply(state.OperationStarted{})
	out, err := m.flows.Login(ctx, email, password)
	if err != nil {
		m.apply(state.OperationFinished{})
		return nil, err
	}
	m.apply(state.SignedIn{User: out.User, Token: out.Token, RefreshToken: out.RefreshToken})
	return m.CurrentUser(), nil
}

// Register describes the register operation and its observable behavior.
//
// Register may return an error when input validation, dependency calls, or security checks fail.
// Register signs the account up with the identity provider, creates the
// wellness profile (never fetches), and signs the new user in.
func (m *Manager) Register(ctx context.Context, in RegisterInput) (*UserRecord, error) {
	if err := m.beginOp(); err != nil {
		return nil, err
	}
	defer m.endOp()

	m.pendingPrefs = in.Preferences
	defer func() { m.pendingPrefs = nil }()

	m.apply(state.OperationStarted{})
	out, err := m.flows.Register(ctx, toFlowRegisterInput(in))
	if err != nil {
		m.apply(state.OperationFinished{})
		return nil, err
	}
	m.apply(state.SignedIn{User: out.User, Token: out.Token, RefreshToken: out.RefreshToken})
	return m.CurrentUser(), nil
}

// Logout describes the logout operation and its observable behavior.
//
// Logout signs out of every configured provider, clears the persisted
// envelope, and resets to the default unauthenticated state. It is idempotent
// and never raises; unlike other lifecycle operations it waits for any
// in-flight operation instead of rejecting.
func (m *Manager) Logout(ctx context.Context) {
	if m == nil || !m.flows.Initialized() {
		return
	}
	m.opMu.Lock()
	defer m.opMu.Unlock()

	m.flows.Logout(ctx)
	m.apply(state.SignedOut{})
}

// RefreshSession describes the refreshsession operation and its observable behavior.
//
// RefreshSession may return an error when input validation, dependency calls, or security checks fail.
// RefreshSession re-validates the active session against the identity
// provider and refetches the profile. A failure triggers an implicit full
// logout before returning, so the manager is never left with a half-valid
// session; the returned error is diagnostic only.
func (m *Manager) RefreshSession(ctx context.Context) error {
	if err := m.beginOp(); err != nil {
		return err
	}
	defer m.endOp()

	st := m.currentState()
	if !st.Authenticated() {
		return ErrNotAuthenticated
	}
	rec, _ := st.User.(*UserRecord)
	externalID := ""
	if rec != nil {
		externalID = rec.ID
	}

	out, err := m.flows.Refresh(ctx, externalID, st.RefreshToken)
	if err != nil {
		m.flows.Logout(ctx)
		m.apply(state.SessionExpired{})
		return fmt.Errorf("session refresh failed: %w", err)
	}

	m.apply(state.TokensRotated{Token: out.Token, RefreshToken: out.RefreshToken})
	m.apply(state.UserReplaced{User: out.User})
	return nil
}

// SetRememberMe describes the setrememberme operation and its observable behavior.
//
// SetRememberMe may return an error when input validation, dependency calls, or security checks fail.
// SetRememberMe flips the persistence opt-in. Turning it on while a session
// is active persists the envelope immediately; turning it off clears the
// credential slots while preserving the biometric capability flag.
func (m *Manager) SetRememberMe(ctx context.Context, on bool) error {
	if err := m.beginOp(); err != nil {
		return err
	}
	defer m.endOp()

	st := m.apply(state.RememberMeChanged{On: on})
	if on {
		if st.Authenticated() {
			m.persistSession(ctx, st.User, st.Token, st.RefreshToken)
		}
		return nil
	}
	if err := m.store.Clear(ctx); err != nil {
		m.warnf("sessionkit: remember-me off: envelope clear failed: %v", err)
	}
	return nil
}

func toFlowRegisterInput(in RegisterInput) flows.RegisterInput {
	return flows.RegisterInput{
		Email:       in.Email,
		Password:    in.Password,
		DisplayName: in.DisplayName,
	}
}
