package sessionkit

import (
	"context"

	"github.com/aurawell/sessionkit/internal/flows"
	"github.com/aurawell/sessionkit/internal/metrics"
	"github.com/aurawell/sessionkit/provider"
	"github.com/aurawell/sessionkit/token"
)

// Lifecycle event types forwarded to the audit sink.
const (
	eventPasswordLogin     = "password_login"
	eventRegister          = "register"
	eventFederatedLogin    = "federated_login"
	eventFederatedCancel   = "federated_login_cancelled"
	eventBiometricLogin    = "biometric_login"
	eventBiometricEnabled  = "biometric_enabled"
	eventBiometricDisabled = "biometric_disabled"
	eventLogout            = "logout"
	eventSessionRefresh    = "session_refresh"
	eventProfileUpdate     = "profile_update"
	eventPasswordChange    = "password_change"
	eventPasswordReset     = "password_reset_request"
)

// flowDeps wires the flow runner with closures over the manager's providers,
// store, and observability. All typed conversions between the root models and
// the opaque flow payloads happen here and nowhere else.
func (m *Manager) flowDeps() flows.Deps {
	loadEnvelope := func(ctx context.Context) (flows.Envelope, bool, error) {
		env, ok, err := m.store.Load(ctx)
		return flows.Envelope{
			UserJSON:         env.UserJSON,
			Token:            env.Token,
			RefreshToken:     env.RefreshToken,
			BiometricEnabled: env.BiometricEnabled,
			RememberMe:       env.RememberMe,
		}, ok, err
	}

	tokenExpired := func(tok string) bool {
		return token.Expired(tok, m.now(), m.config.Token.ExpiryLeeway)
	}

	metricInc := func(id int) {
		m.metrics.Inc(metrics.MetricID(id))
	}

	fetchProfile := func(ctx context.Context, externalID, tok string) (any, error) {
		rec, err := m.profiles.Fetch(ctx, externalID, tok)
		if err != nil {
			return nil, err
		}
		return &rec, nil
	}

	createProfile := func(ctx context.Context, ident flows.Identity) (any, error) {
		rec, err := m.profiles.Create(ctx, NewProfile{
			ExternalID:  ident.ExternalID,
			Email:       ident.Email,
			DisplayName: ident.DisplayName,
		}, ident.IDToken)
		if err != nil {
			return nil, err
		}
		return &rec, nil
	}

	sensorSupported := func(ctx context.Context) bool {
		return m.sensor != nil && m.sensor.Supported(ctx)
	}
	sensorAuthenticate := func(ctx context.Context, prompt string) error {
		if m.sensor == nil {
			return provider.E(provider.CodeBiometricUnsupported, "no biometric sensor configured")
		}
		return m.sensor.Authenticate(ctx, prompt)
	}

	return flows.Deps{
		Restore: flows.RestoreDeps{
			LoadEnvelope: loadEnvelope,
			DecodeUser:   decodeUserRecord,
			TokenExpired: tokenExpired,
			MetricInc:    metricInc,
			Warn:         m.warnf,
			Metrics: flows.RestoreMetrics{
				Success: int(metrics.MetricRestoreSuccess),
				Empty:   int(metrics.MetricRestoreEmpty),
			},
		},

		Login: flows.LoginDeps{
			SignIn: func(ctx context.Context, email, password string) (flows.Identity, error) {
				ident, err := m.password.SignIn(ctx, email, password)
				return toFlowIdentity(ident), err
			},
			FetchProfile:     fetchProfile,
			CreateProfile:    createProfile,
			MapProviderError: mapProviderError,
			Remembered:       m.remembered,
			Persist:          m.persistSession,
			MetricInc:        metricInc,
			Emit:             m.flowEmit(ProviderPassword),
			Warn:             m.warnf,
			Metrics: flows.LoginMetrics{
				Success: int(metrics.MetricLoginSuccess),
				Failure: int(metrics.MetricLoginFailure),
			},
			Events: flows.LoginEvents{
				Success: eventPasswordLogin,
				Failure: eventPasswordLogin,
			},
			Errors: flows.LoginErrors{
				NotReady:           ErrManagerNotReady,
				InvalidCredentials: ErrInvalidCredentials,
			},
		},

		Register: flows.RegisterDeps{
			SignUp: func(ctx context.Context, email, password string) (flows.Identity, error) {
				ident, err := m.password.SignUp(ctx, email, password)
				return toFlowIdentity(ident), err
			},
			CreateProfile: func(ctx context.Context, ident flows.Identity, in flows.RegisterInput) (any, error) {
				rec, err := m.profiles.Create(ctx, NewProfile{
					ExternalID:  ident.ExternalID,
					Email:       ident.Email,
					DisplayName: in.DisplayName,
					Preferences: m.pendingPrefs,
				}, ident.IDToken)
				if err != nil {
					return nil, err
				}
				return &rec, nil
			},
			UpdateDisplayName: func(ctx context.Context, idToken, displayName string) error {
				return m.password.UpdateDisplayName(ctx, idToken, displayName)
			},
			MapProviderError: mapProviderError,
			Remembered:       m.remembered,
			Persist:          m.persistSession,
			MetricInc:        metricInc,
			Emit:             m.flowEmit(ProviderPassword),
			Warn:             m.warnf,
			Metrics: flows.RegisterMetrics{
				Success: int(metrics.MetricRegisterSuccess),
				Failure: int(metrics.MetricRegisterFailure),
			},
			Events: flows.RegisterEvents{
				Success: eventRegister,
				Failure: eventRegister,
			},
			Errors: flows.RegisterErrors{
				NotReady:           ErrManagerNotReady,
				InvalidCredentials: ErrInvalidCredentials,
			},
		},

		Federated: flows.FederatedDeps{
			SignIn: func(ctx context.Context, providerName string) (flows.Identity, error) {
				p := m.federated[providerName]
				if p == nil {
					return flows.Identity{}, provider.E(provider.CodeUnavailable, "%s provider not configured", providerName)
				}
				ident, err := p.SignIn(ctx)
				return toFlowIdentity(ident), err
			},
			FetchProfile:     fetchProfile,
			CreateProfile:    createProfile,
			MapProviderError: mapProviderError,
			Remembered:       m.remembered,
			Persist:          m.persistSession,
			MetricInc:        metricInc,
			Emit:             m.flowEmit(""),
			Warn:             m.warnf,
			Metrics: flows.FederatedMetrics{
				Success:   int(metrics.MetricFederatedSuccess),
				Failure:   int(metrics.MetricFederatedFailure),
				Cancelled: int(metrics.MetricFederatedCancelled),
			},
			Events: flows.FederatedEvents{
				Success:   eventFederatedLogin,
				Failure:   eventFederatedLogin,
				Cancelled: eventFederatedCancel,
			},
			Errors: flows.FederatedErrors{
				NotReady:  ErrManagerNotReady,
				Cancelled: ErrProviderCancelled,
			},
		},

		Biometric: flows.BiometricDeps{
			Supported:        sensorSupported,
			Authenticate:     sensorAuthenticate,
			LoadEnvelope:     loadEnvelope,
			DecodeUser:       decodeUserRecord,
			TokenExpired:     tokenExpired,
			SetFlag:          m.store.SetBiometric,
			MapProviderError: mapProviderError,
			LoginPrompt:      m.config.Biometric.LoginPrompt,
			EnablePrompt:     m.config.Biometric.EnablePrompt,
			MetricInc:        metricInc,
			Emit:             m.flowEmit(ProviderBiometric),
			Warn:             m.warnf,
			Metrics: flows.BiometricMetrics{
				LoginSuccess: int(metrics.MetricBiometricSuccess),
				LoginFailure: int(metrics.MetricBiometricFailure),
			},
			Events: flows.BiometricEvents{
				LoginSuccess: eventBiometricLogin,
				LoginFailure: eventBiometricLogin,
				Enabled:      eventBiometricEnabled,
				Disabled:     eventBiometricDisabled,
			},
			Errors: flows.BiometricErrors{
				NotReady:           ErrManagerNotReady,
				Unavailable:        ErrBiometricUnavailable,
				SessionNotFound:    ErrSessionNotFound,
				InvalidCredentials: ErrInvalidCredentials,
			},
		},

		Logout: flows.LogoutDeps{
			SignOuts:      m.signOuts(),
			ClearEnvelope: m.store.Clear,
			MetricInc:     metricInc,
			Emit:          m.flowEmit(""),
			Warn:          m.warnf,
			Metrics: flows.LogoutMetrics{
				Logout: int(metrics.MetricLogout),
			},
			Events: flows.LogoutEvents{
				Logout: eventLogout,
			},
		},

		Refresh: flows.RefreshDeps{
			RefreshToken:     m.password.RefreshToken,
			FetchProfile:     fetchProfile,
			MapProviderError: mapProviderError,
			Remembered:       m.remembered,
			Persist:          m.persistSession,
			MetricInc:        metricInc,
			Emit:             m.flowEmit(ProviderPassword),
			Warn:             m.warnf,
			Metrics: flows.RefreshMetrics{
				Success: int(metrics.MetricRefreshSuccess),
				Failure: int(metrics.MetricRefreshFailure),
			},
			Events: flows.RefreshEvents{
				Success: eventSessionRefresh,
				Failure: eventSessionRefresh,
			},
			Errors: flows.RefreshErrors{
				NotReady:         ErrManagerNotReady,
				NotAuthenticated: ErrNotAuthenticated,
			},
		},

		Profile: flows.ProfileDeps{
			PushUpdate: func(ctx context.Context, externalID string, update any, tok string) error {
				u, ok := update.(ProfileUpdate)
				if !ok {
					return provider.E(provider.CodeUnavailable, "unexpected update payload")
				}
				// The service echo only confirms durability; the merged record
				// returned by the flow is the replacement the state machine sees.
				_, err := m.profiles.Update(ctx, externalID, u, tok)
				return err
			},
			Merge: func(current, update any) any {
				rec, _ := current.(*UserRecord)
				u, _ := update.(ProfileUpdate)
				if rec == nil {
					return current
				}
				next := u.ApplyTo(*rec)
				return &next
			},
			MapProviderError: mapProviderError,
			Remembered:       m.remembered,
			Persist:          m.persistSession,
			MetricInc:        metricInc,
			Emit:             m.flowEmit(""),
			Metrics: flows.ProfileMetrics{
				Success: int(metrics.MetricProfileUpdateSuccess),
				Failure: int(metrics.MetricProfileUpdateFailure),
			},
			Events: flows.ProfileEvents{
				Success: eventProfileUpdate,
				Failure: eventProfileUpdate,
			},
			Errors: flows.ProfileErrors{
				NotReady:         ErrManagerNotReady,
				NotAuthenticated: ErrNotAuthenticated,
			},
		},

		Password: flows.PasswordDeps{
			Reauthenticate: func(ctx context.Context, email, password string) (flows.Identity, error) {
				ident, err := m.password.Reauthenticate(ctx, email, password)
				return toFlowIdentity(ident), err
			},
			ChangePassword:   m.password.ChangePassword,
			SendReset:        m.password.SendPasswordReset,
			MapProviderError: mapProviderError,
			MetricInc:        metricInc,
			Emit:             m.flowEmit(ProviderPassword),
			Metrics: flows.PasswordMetrics{
				ChangeSuccess: int(metrics.MetricPasswordChangeSuccess),
				ChangeFailure: int(metrics.MetricPasswordChangeFailure),
				ResetRequest:  int(metrics.MetricPasswordResetRequest),
			},
			Events: flows.PasswordEvents{
				ChangeSuccess: eventPasswordChange,
				ChangeFailure: eventPasswordChange,
				ResetRequest:  eventPasswordReset,
			},
			Errors: flows.PasswordErrors{
				NotReady:           ErrManagerNotReady,
				InvalidCredentials: ErrInvalidCredentials,
				WeakCredential:     ErrWeakCredential,
			},
		},
	}
}

// flowEmit adapts the manager's audit emission for flow use, stamping a fixed
// provider name unless the flow supplies its own in the metadata.
func (m *Manager) flowEmit(providerName string) func(event string, success bool, err error, meta map[string]string) {
	return func(event string, success bool, err error, meta map[string]string) {
		if providerName != "" {
			if meta == nil {
				meta = map[string]string{}
			}
			if _, ok := meta["provider"]; !ok {
				meta["provider"] = providerName
			}
		}
		m.emit(event, success, err, meta)
	}
}

// signOuts lists every provider sign-out for logout, in a fixed order so
// diagnostics stay stable.
func (m *Manager) signOuts() []flows.NamedSignOut {
	outs := []flows.NamedSignOut{
		{Provider: ProviderPassword, SignOut: m.password.SignOut},
	}
	for _, name := range []string{ProviderGoogle, ProviderFacebook} {
		if p := m.federated[name]; p != nil {
			outs = append(outs, flows.NamedSignOut{Provider: name, SignOut: p.SignOut})
		}
	}
	return outs
}

func toFlowIdentity(ident Identity) flows.Identity {
	return flows.Identity{
		ExternalID:   ident.ExternalID,
		Email:        ident.Email,
		DisplayName:  ident.DisplayName,
		IDToken:      ident.IDToken,
		RefreshToken: ident.RefreshToken,
		NewAccount:   ident.NewAccount,
	}
}
