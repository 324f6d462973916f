package sessionkit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/aurawell/sessionkit/credstore"
	"github.com/aurawell/sessionkit/internal/audit"
	"github.com/aurawell/sessionkit/internal/flows"
	"github.com/aurawell/sessionkit/internal/metrics"
	"github.com/aurawell/sessionkit/internal/state"
)

// Provider name identifiers used in lifecycle events and logs.
const (
	// ProviderPassword is an exported constant or variable used by the session manager.
	ProviderPassword = "password"
	// ProviderGoogle is an exported constant or variable used by the session manager.
	ProviderGoogle = "google"
	// ProviderFacebook is an exported constant or variable used by the session manager.
	ProviderFacebook = "facebook"
	// ProviderBiometric is an exported constant or variable used by the session manager.
	ProviderBiometric = "biometric"
)

// Manager defines a public type used by sessionkit APIs.
//
// Manager is the single authoritative owner of session state. All lifecycle
// operations funnel through it; reads are point-in-time snapshots. Lifecycle
// operations are serialized: a second operation arriving while one is in
// flight is rejected with ErrOperationInFlight (Logout alone waits instead,
// because it must always run).
type Manager struct {
	config Config

	password  PasswordProvider
	federated map[string]FederatedProvider
	sensor    BiometricSensor
	profiles  ProfileService
	store     *credstore.Store

	flows   flows.Service
	audit   *audit.Dispatcher
	metrics *metrics.Metrics
	warn    func(format string, args ...any)
	now     func() time.Time

	// opMu serializes lifecycle operations; stateMu guards st for snapshot
	// reads. Lock order is always opMu before stateMu.
	opMu    sync.Mutex
	stateMu sync.RWMutex
	st      state.State

	// pendingPrefs carries registration preferences into the profile-create
	// closure. Guarded by opMu.
	pendingPrefs *PreferencesUpdate

	closedMu sync.Mutex
	closed   bool
}

func (m *Manager) beginOp() error {
	if m == nil || !m.flows.Initialized() {
		return ErrManagerNotReady
	}
	if !m.opMu.TryLock() {
		return ErrOperationInFlight
	}
	if m.isClosed() {
		m.opMu.Unlock()
		return ErrManagerNotReady
	}
	return nil
}

func (m *Manager) endOp() {
	m.opMu.Unlock()
}

func (m *Manager) isClosed() bool {
	m.closedMu.Lock()
	defer m.closedMu.Unlock()
	return m.closed
}

// apply advances the state machine. Every state change in the manager goes
// through this single choke point.
func (m *Manager) apply(ev state.Event) state.State {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	m.st = state.Apply(m.st, ev)
	return m.st
}

func (m *Manager) currentState() state.State {
	m.stateMu.RLock()
	defer m.stateMu.RUnlock()
	return m.st
}

// Snapshot describes the snapshot operation and its observable behavior.
//
// Snapshot may return an error when input validation, dependency calls, or security checks fail.
// Snapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) Snapshot() SessionSnapshot {
	st := m.currentState()
	var user *UserRecord
	if rec, ok := st.User.(*UserRecord); ok {
		user = cloneRecord(rec)
	}
	return SessionSnapshot{
		User:             user,
		Token:            st.Token,
		RefreshToken:     st.RefreshToken,
		IsAuthenticated:  st.Authenticated(),
		IsLoading:        st.Loading,
		BiometricEnabled: st.BiometricEnabled,
		RememberMe:       st.RememberMe,
	}
}

// CurrentUser describes the currentuser operation and its observable behavior.
//
// CurrentUser may return an error when input validation, dependency calls, or security checks fail.
// CurrentUser does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) CurrentUser() *UserRecord {
	st := m.currentState()
	if rec, ok := st.User.(*UserRecord); ok {
		return cloneRecord(rec)
	}
	return nil
}

// IsAuthenticated describes the isauthenticated operation and its observable behavior.
//
// IsAuthenticated may return an error when input validation, dependency calls, or security checks fail.
// IsAuthenticated does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) IsAuthenticated() bool {
	return m.currentState().Authenticated()
}

// IsLoading describes the isloading operation and its observable behavior.
//
// IsLoading may return an error when input validation, dependency calls, or security checks fail.
// IsLoading does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) IsLoading() bool {
	return m.currentState().Loading
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) MetricsSnapshot() MetricsSnapshot {
	return m.metrics.Snapshot()
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) AuditDropped() uint64 {
	return m.audit.Dropped()
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (m *Manager) Close() {
	m.closedMu.Lock()
	if m.closed {
		m.closedMu.Unlock()
		return
	}
	m.closed = true
	m.closedMu.Unlock()

	m.audit.Close()
}

func (m *Manager) warnf(format string, args ...any) {
	if m.warn != nil {
		m.warn(format, args...)
	}
}

// emit forwards a lifecycle event to the audit dispatcher, enriched with
// whatever session context is current at emission time.
func (m *Manager) emit(eventType string, success bool, err error, meta map[string]string) {
	if m.audit == nil {
		return
	}
	st := m.currentState()
	ev := audit.Event{
		Timestamp: m.now(),
		EventType: eventType,
		Phase:     st.Phase.String(),
		Success:   success,
		Metadata:  meta,
	}
	if rec, ok := st.User.(*UserRecord); ok && rec != nil {
		ev.UserID = rec.ID
	}
	if meta != nil {
		ev.Provider = meta["provider"]
	}
	if err != nil {
		ev.Error = err.Error()
		ev.ErrorKind = KindOf(err)
	}
	m.audit.Emit(context.Background(), ev)
}

// remembered reports the persistence opt-in from the authoritative state.
func (m *Manager) remembered() bool {
	return m.currentState().RememberMe
}

// persistSession writes the full envelope. Persistence failures never fail
// the operation that triggered them: the live session is already valid, so
// the failure is warned about and counted instead.
func (m *Manager) persistSession(ctx context.Context, user any, tok, refreshTok string) {
	rec, ok := user.(*UserRecord)
	if !ok || rec == nil || tok == "" {
		return
	}
	data, err := json.Marshal(rec)
	if err != nil {
		m.warnf("sessionkit: persist: user record encode failed: %v", err)
		m.metrics.Inc(metrics.MetricPersistFailure)
		return
	}
	env := credstore.Envelope{
		UserJSON:         data,
		Token:            tok,
		RefreshToken:     refreshTok,
		BiometricEnabled: m.currentState().BiometricEnabled,
		RememberMe:       true,
	}
	if err := m.store.Save(ctx, env); err != nil {
		m.warnf("sessionkit: persist: envelope save failed: %v", err)
		m.metrics.Inc(metrics.MetricPersistFailure)
	}
}

func decodeUserRecord(data []byte) (any, error) {
	var rec UserRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func cloneRecord(rec *UserRecord) *UserRecord {
	if rec == nil {
		return nil
	}
	c := *rec
	c.Profile.Goals = append([]string(nil), rec.Profile.Goals...)
	c.Profile.Interests = append([]string(nil), rec.Profile.Interests...)
	c.Subscription.Features = append([]string(nil), rec.Subscription.Features...)
	return &c
}
