package sessionkit

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config defines a public type used by sessionkit APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Identity  IdentityConfig
	Profile   ProfileConfig
	Biometric BiometricConfig
	Token     TokenConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
}

/*
====================================
IDENTITY CONFIG
====================================
*/

// IdentityConfig defines a public type used by sessionkit APIs.
//
// IdentityConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type IdentityConfig struct {
	BaseURL string        `env:"SESSIONKIT_IDENTITY_BASE_URL"`
	APIKey  string        `env:"SESSIONKIT_IDENTITY_API_KEY"`
	Timeout time.Duration `env:"SESSIONKIT_IDENTITY_TIMEOUT"`
}

/*
====================================
PROFILE CONFIG
====================================
*/

// ProfileConfig defines a public type used by sessionkit APIs.
//
// ProfileConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ProfileConfig struct {
	BaseURL string        `env:"SESSIONKIT_PROFILE_BASE_URL"`
	Timeout time.Duration `env:"SESSIONKIT_PROFILE_TIMEOUT"`
}

/*
====================================
BIOMETRIC CONFIG
====================================
*/

// BiometricConfig defines a public type used by sessionkit APIs.
//
// BiometricConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type BiometricConfig struct {
	LoginPrompt  string `env:"SESSIONKIT_BIOMETRIC_LOGIN_PROMPT"`
	EnablePrompt string `env:"SESSIONKIT_BIOMETRIC_ENABLE_PROMPT"`
}

// TokenConfig defines a public type used by sessionkit APIs.
//
// TokenConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TokenConfig struct {
	// ExpiryLeeway widens the local expiry check on persisted ID tokens: a
	// token within ExpiryLeeway of its exp claim is treated as expired so a
	// restore never hands out a token about to die mid-request.
	ExpiryLeeway time.Duration `env:"SESSIONKIT_TOKEN_EXPIRY_LEEWAY"`
}

// AuditConfig defines a public type used by sessionkit APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool `env:"SESSIONKIT_AUDIT_ENABLED"`
	BufferSize int  `env:"SESSIONKIT_AUDIT_BUFFER_SIZE"`
	DropIfFull bool `env:"SESSIONKIT_AUDIT_DROP_IF_FULL"`
}

// MetricsConfig defines a public type used by sessionkit APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled bool `env:"SESSIONKIT_METRICS_ENABLED"`
}

/*
====================================
DEFAULT CONFIG
====================================
*/

func defaultConfig() Config {
	return Config{
		Identity: IdentityConfig{
			Timeout: 15 * time.Second,
		},
		Profile: ProfileConfig{
			Timeout: 15 * time.Second,
		},
		Biometric: BiometricConfig{
			LoginPrompt:  "Unlock your AuraWell session",
			EnablePrompt: "Confirm to enable biometric sign-in",
		},
		Token: TokenConfig{
			ExpiryLeeway: 30 * time.Second,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
		},
	}
}

// ConfigFromEnv describes the configfromenv operation and its observable behavior.
//
// ConfigFromEnv may return an error when input validation, dependency calls, or security checks fail.
// ConfigFromEnv does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func ConfigFromEnv() (Config, error) {
	cfg := defaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	if c.Identity.Timeout < 0 {
		return errors.New("Identity Timeout must be >= 0")
	}
	if c.Profile.Timeout < 0 {
		return errors.New("Profile Timeout must be >= 0")
	}

	if c.Biometric.LoginPrompt == "" {
		return errors.New("Biometric LoginPrompt is required")
	}
	if c.Biometric.EnablePrompt == "" {
		return errors.New("Biometric EnablePrompt is required")
	}

	if c.Token.ExpiryLeeway < 0 {
		return errors.New("Token ExpiryLeeway must be >= 0")
	}

	if c.Audit.Enabled {
		if c.Audit.BufferSize <= 0 {
			return errors.New("Audit BufferSize must be > 0 when audit is enabled")
		}
	}

	return nil
}
