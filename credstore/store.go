package credstore

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable wraps backend failures. Callers treat it as "session not
// remembered", never as fatal.
var ErrUnavailable = errors.New("credential store unavailable")

// KV is the minimal backend contract: five logical string slots.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Store is the envelope-level boundary over a [KV] backend.
type Store struct {
	kv KV
}

// NewStore wraps kv in the envelope boundary.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Load reads the whole envelope. ok is false when no credential pair is
// persisted; the biometric and remember-me flags are still populated from
// whatever slots were readable, since the capability flag outlives sessions.
func (s *Store) Load(ctx context.Context) (env Envelope, ok bool, err error) {
	if s == nil || s.kv == nil {
		return Envelope{}, false, fmt.Errorf("%w: no backend", ErrUnavailable)
	}

	read := func(key string) (string, bool, error) {
		v, found, gerr := s.kv.Get(ctx, key)
		if gerr != nil {
			return "", false, fmt.Errorf("%w: get %s: %v", ErrUnavailable, key, gerr)
		}
		return v, found, nil
	}

	if v, found, gerr := read(KeyBiometric); gerr != nil {
		return Envelope{}, false, gerr
	} else if found {
		env.BiometricEnabled = boolValue(v)
	}
	if v, found, gerr := read(KeyRememberMe); gerr != nil {
		return env, false, gerr
	} else if found {
		env.RememberMe = boolValue(v)
	}

	userJSON, userFound, gerr := read(KeyUser)
	if gerr != nil {
		return env, false, gerr
	}
	token, tokenFound, gerr := read(KeyToken)
	if gerr != nil {
		return env, false, gerr
	}
	refresh, _, gerr := read(KeyRefreshToken)
	if gerr != nil {
		return env, false, gerr
	}

	if !userFound || !tokenFound || userJSON == "" || token == "" {
		// A half-cleared or never-written envelope is simply absent.
		return env, false, nil
	}

	env.UserJSON = []byte(userJSON)
	env.Token = token
	env.RefreshToken = refresh
	return env, true, nil
}

// Save writes the whole envelope. Slot writes are not atomic as a group; the
// clear ordering in Clear is what keeps interrupted sequences safe.
func (s *Store) Save(ctx context.Context, env Envelope) error {
	if s == nil || s.kv == nil {
		return fmt.Errorf("%w: no backend", ErrUnavailable)
	}
	sets := []struct{ key, value string }{
		{KeyUser, string(env.UserJSON)},
		{KeyToken, env.Token},
		{KeyRefreshToken, env.RefreshToken},
		{KeyBiometric, boolString(env.BiometricEnabled)},
		{KeyRememberMe, boolString(env.RememberMe)},
	}
	for _, kv := range sets {
		if err := s.kv.Set(ctx, kv.key, kv.value); err != nil {
			return fmt.Errorf("%w: set %s: %v", ErrUnavailable, kv.key, err)
		}
	}
	return nil
}

// Clear removes the credential slots and the remember-me flag, preserving the
// biometric capability slot. Removal order is user, then token, then refresh
// token: if the sequence is interrupted, the leftover suffix never restores.
func (s *Store) Clear(ctx context.Context) error {
	if s == nil || s.kv == nil {
		return fmt.Errorf("%w: no backend", ErrUnavailable)
	}
	for _, key := range []string{KeyUser, KeyToken, KeyRefreshToken, KeyRememberMe} {
		if err := s.kv.Delete(ctx, key); err != nil {
			return fmt.Errorf("%w: delete %s: %v", ErrUnavailable, key, err)
		}
	}
	return nil
}

// SetBiometric persists just the capability flag; it survives Clear.
func (s *Store) SetBiometric(ctx context.Context, enabled bool) error {
	if s == nil || s.kv == nil {
		return fmt.Errorf("%w: no backend", ErrUnavailable)
	}
	if err := s.kv.Set(ctx, KeyBiometric, boolString(enabled)); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrUnavailable, KeyBiometric, err)
	}
	return nil
}
