package sessionkit

import "context"

// ChangePassword describes the changepassword operation and its observable behavior.
//
// ChangePassword may return an error when input validation, dependency calls, or security checks fail.
// ChangePassword re-authenticates the active account with its current
// password before delegating the change to the identity provider. Neither
// password is retained; a failure leaves session state and the persisted
// envelope untouched.
func (m *Manager) ChangePassword(ctx context.Context, current, next string) error {
	if err := m.beginOp(); err != nil {
		return err
	}
	defer m.endOp()

	st := m.currentState()
	if !st.Authenticated() {
		return ErrNotAuthenticated
	}
	email := ""
	if rec, ok := st.User.(*UserRecord); ok && rec != nil {
		email = rec.Email
	}

	return m.flows.ChangePassword(ctx, email, current, next)
}

// SendPasswordReset describes the sendpasswordreset operation and its observable behavior.
//
// SendPasswordReset may return an error when input validation, dependency calls, or security checks fail.
// SendPasswordReset delegates the reset email entirely to the identity
// provider; it works for any account, signed in or not.
func (m *Manager) SendPasswordReset(ctx context.Context, email string) error {
	if err := m.beginOp(); err != nil {
		return err
	}
	defer m.endOp()

	return m.flows.SendPasswordReset(ctx, email)
}
