package sessionkit

import (
	"context"

	"github.com/aurawell/sessionkit/internal/state"
)

// LoginWithBiometric describes the loginwithbiometric operation and its observable behavior.
//
// LoginWithBiometric may return an error when input validation, dependency calls, or security checks fail.
// LoginWithBiometric re-validates the persisted session behind the device
// sensor and restores it without any network call. It requires the biometric
// capability flag and a complete persisted envelope; ErrSessionNotFound and
// ErrBiometricUnavailable report which precondition failed.
func (m *Manager) LoginWithBiometric(ctx context.Context) (*UserRecord, error) {
	if err := m.beginOp(); err != nil {
		return nil, err
	}
	defer m.endOp()

	enabled := m.currentState().BiometricEnabled

	m.apply(state.OperationStarted{Biometric: true})
	out, err := m.flows.BiometricLogin(ctx, enabled)
	if err != nil {
		m.apply(state.OperationFinished{})
		return nil, err
	}
	m.apply(state.SignedIn{User: out.User, Token: out.Token, RefreshToken: out.RefreshToken})
	return m.CurrentUser(), nil
}

// EnableBiometric describes the enablebiometric operation and its observable behavior.
//
// EnableBiometric may return an error when input validation, dependency calls, or security checks fail.
// EnableBiometric requires sensor support and an explicit confirmation
// gesture before the capability flag flips on. The flag describes the device,
// not the session, and survives logout.
func (m *Manager) EnableBiometric(ctx context.Context) error {
	if err := m.beginOp(); err != nil {
		return err
	}
	defer m.endOp()

	if err := m.flows.EnableBiometric(ctx); err != nil {
		return err
	}
	m.apply(state.BiometricFlagChanged{Enabled: true})
	return nil
}

// DisableBiometric describes the disablebiometric operation and its observable behavior.
//
// DisableBiometric may return an error when input validation, dependency calls, or security checks fail.
// DisableBiometric flips the capability flag off. No gesture is required to
// reduce security.
func (m *Manager) DisableBiometric(ctx context.Context) error {
	if err := m.beginOp(); err != nil {
		return err
	}
	defer m.endOp()

	if err := m.flows.DisableBiometric(ctx); err != nil {
		return err
	}
	m.apply(state.BiometricFlagChanged{Enabled: false})
	return nil
}
