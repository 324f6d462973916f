package sessionkit

import (
	"context"
	"errors"
	"fmt"

	"github.com/aurawell/sessionkit/provider"
)

// PasswordProvider is the contract for the password-based identity service.
// Implementations live outside this package (see provider/identityhttp); the
// manager only calls the subset relevant to the requested operation.
type PasswordProvider interface {
	SignIn(ctx context.Context, email, password string) (Identity, error)
	SignUp(ctx context.Context, email, password string) (Identity, error)
	UpdateDisplayName(ctx context.Context, idToken, displayName string) error
	SendPasswordReset(ctx context.Context, email string) error
	Reauthenticate(ctx context.Context, email, password string) (Identity, error)
	ChangePassword(ctx context.Context, idToken, newPassword string) error
	RefreshToken(ctx context.Context, refreshToken string) (idToken, newRefreshToken string, err error)
	SignOut(ctx context.Context) error
}

// FederatedProvider is the contract for an external OAuth backend (Google,
// Facebook). SignIn runs the complete provider handshake, including any
// external sign-in UI, before returning; a user abort surfaces as a
// provider.CodeCancelled error, never as a generic failure.
type FederatedProvider interface {
	SignIn(ctx context.Context) (Identity, error)
	SignOut(ctx context.Context) error
}

// BiometricSensor is the contract for the device biometric sensor.
// Authenticate blocks on the device confirmation gesture for the given prompt.
type BiometricSensor interface {
	Supported(ctx context.Context) bool
	Authenticate(ctx context.Context, prompt string) error
}

// ProfileService is the contract for the application profile backend. Every
// call carries the provider-issued bearer token.
type ProfileService interface {
	Fetch(ctx context.Context, externalID, token string) (UserRecord, error)
	Create(ctx context.Context, seed NewProfile, token string) (UserRecord, error)
	Update(ctx context.Context, externalID string, update ProfileUpdate, token string) (UserRecord, error)
}

// mapProviderError folds every provider-specific failure into exactly one
// sentinel from the public taxonomy. Callers of the manager never see
// provider error identifiers; unmapped codes land on ErrUnknown with the
// original message preserved for diagnostics.
func mapProviderError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrNetworkFailure, err)
	}

	var perr *provider.Error
	if !errors.As(err, &perr) {
		return fmt.Errorf("%w: %v", ErrUnknown, err)
	}

	switch perr.Code {
	case provider.CodeInvalidCredentials, provider.CodeTokenExpired:
		return fmt.Errorf("%w: %s", ErrInvalidCredentials, perr.Message)
	case provider.CodeAccountExists:
		return fmt.Errorf("%w: %s", ErrAccountExists, perr.Message)
	case provider.CodeWeakPassword:
		return fmt.Errorf("%w: %s", ErrWeakCredential, perr.Message)
	case provider.CodeAccountNotFound:
		return fmt.Errorf("%w: %s", ErrAccountNotFound, perr.Message)
	case provider.CodeCancelled:
		return fmt.Errorf("%w: %s", ErrProviderCancelled, perr.Message)
	case provider.CodeBiometricUnsupported:
		return fmt.Errorf("%w: %s", ErrBiometricUnavailable, perr.Message)
	case provider.CodeNetwork:
		return fmt.Errorf("%w: %s", ErrNetworkFailure, perr.Message)
	default:
		return fmt.Errorf("%w: %s (%s)", ErrUnknown, perr.Message, perr.Code)
	}
}
