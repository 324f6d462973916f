package sessionkit

import (
	"errors"
	"log"
	"time"

	"github.com/aurawell/sessionkit/credstore"
	"github.com/aurawell/sessionkit/internal/audit"
	"github.com/aurawell/sessionkit/internal/flows"
	"github.com/aurawell/sessionkit/internal/metrics"
	"github.com/aurawell/sessionkit/internal/state"
)

// Builder defines a public type used by sessionkit APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	kv       credstore.KV
	password PasswordProvider
	google   FederatedProvider
	facebook FederatedProvider
	sensor   BiometricSensor
	profiles ProfileService

	auditSink AuditSink
	warn      func(format string, args ...any)
	clock     func() time.Time

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithCredentialStore describes the withcredentialstore operation and its observable behavior.
//
// WithCredentialStore may return an error when input validation, dependency calls, or security checks fail.
// WithCredentialStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithCredentialStore(kv credstore.KV) *Builder {
	b.kv = kv
	return b
}

// WithPasswordProvider describes the withpasswordprovider operation and its observable behavior.
//
// WithPasswordProvider may return an error when input validation, dependency calls, or security checks fail.
// WithPasswordProvider does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithPasswordProvider(p PasswordProvider) *Builder {
	b.password = p
	return b
}

// WithGoogleProvider describes the withgoogleprovider operation and its observable behavior.
//
// WithGoogleProvider may return an error when input validation, dependency calls, or security checks fail.
// WithGoogleProvider does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithGoogleProvider(p FederatedProvider) *Builder {
	b.google = p
	return b
}

// WithFacebookProvider describes the withfacebookprovider operation and its observable behavior.
//
// WithFacebookProvider may return an error when input validation, dependency calls, or security checks fail.
// WithFacebookProvider does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithFacebookProvider(p FederatedProvider) *Builder {
	b.facebook = p
	return b
}

// WithBiometricSensor describes the withbiometricsensor operation and its observable behavior.
//
// WithBiometricSensor may return an error when input validation, dependency calls, or security checks fail.
// WithBiometricSensor does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithBiometricSensor(s BiometricSensor) *Builder {
	b.sensor = s
	return b
}

// WithProfileService describes the withprofileservice operation and its observable behavior.
//
// WithProfileService may return an error when input validation, dependency calls, or security checks fail.
// WithProfileService does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithProfileService(ps ProfileService) *Builder {
	b.profiles = ps
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink may return an error when input validation, dependency calls, or security checks fail.
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithWarn describes the withwarn operation and its observable behavior.
//
// WithWarn may return an error when input validation, dependency calls, or security checks fail.
// WithWarn does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithWarn(warn func(format string, args ...any)) *Builder {
	b.warn = warn
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithClock describes the withclock operation and its observable behavior.
//
// WithClock may return an error when input validation, dependency calls, or security checks fail.
// WithClock does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithClock(clock func() time.Time) *Builder {
	b.clock = clock
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Manager, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.kv == nil {
		return nil, errors.New("credential store required")
	}
	if b.password == nil {
		return nil, errors.New("password provider required")
	}
	if b.profiles == nil {
		return nil, errors.New("profile service required")
	}

	m := &Manager{
		config:   cfg,
		password: b.password,
		sensor:   b.sensor,
		profiles: b.profiles,
		store:    credstore.NewStore(b.kv),
		metrics:  metrics.New(metrics.Config{Enabled: cfg.Metrics.Enabled}),
		st:       state.Initial(),
	}

	m.federated = make(map[string]FederatedProvider)
	if b.google != nil {
		m.federated[ProviderGoogle] = b.google
	}
	if b.facebook != nil {
		m.federated[ProviderFacebook] = b.facebook
	}

	m.warn = b.warn
	if m.warn == nil {
		m.warn = log.Printf
	}
	m.now = b.clock
	if m.now == nil {
		m.now = time.Now
	}

	m.audit = audit.NewDispatcher(audit.Config{
		Enabled:    cfg.Audit.Enabled,
		BufferSize: cfg.Audit.BufferSize,
		DropIfFull: cfg.Audit.DropIfFull,
	}, b.auditSink)

	m.flows = flows.New(m.flowDeps())

	b.built = true

	return m, nil
}
