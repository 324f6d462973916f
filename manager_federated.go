package sessionkit

import (
	"context"
	"fmt"

	"github.com/aurawell/sessionkit/internal/state"
)

// LoginWithGoogle describes the loginwithgoogle operation and its observable behavior.
//
// LoginWithGoogle may return an error when input validation, dependency calls, or security checks fail.
// LoginWithGoogle runs the full Google handshake before touching any session
// state; an abort of the external sign-in UI surfaces as ErrProviderCancelled.
func (m *Manager) LoginWithGoogle(ctx context.Context) (*UserRecord, error) {
	return m.loginWithProvider(ctx, ProviderGoogle)
}

// LoginWithFacebook describes the loginwithfacebook operation and its observable behavior.
//
// LoginWithFacebook may return an error when input validation, dependency calls, or security checks fail.
// LoginWithFacebook runs the full Facebook handshake before touching any
// session state; an abort of the external sign-in UI surfaces as
// ErrProviderCancelled.
func (m *Manager) LoginWithFacebook(ctx context.Context) (*UserRecord, error) {
	return m.loginWithProvider(ctx, ProviderFacebook)
}

func (m *Manager) loginWithProvider(ctx context.Context, providerName string) (*UserRecord, error) {
	if err := m.beginOp(); err != nil {
		return nil, err
	}
	defer m.endOp()

	if m.federated[providerName] == nil {
		return nil, fmt.Errorf("%w: %s provider not configured", ErrManagerNotReady, providerName)
	}

	m.apply(state.OperationStarted{})
	out, err := m.flows.FederatedLogin(ctx, providerName)
	if err != nil {
		m.apply(state.OperationFinished{})
		return nil, err
	}
	m.apply(state.SignedIn{User: out.User, Token: out.Token, RefreshToken: out.RefreshToken})
	return m.CurrentUser(), nil
}
