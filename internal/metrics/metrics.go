package metrics

import "sync/atomic"

// MetricID identifies a specific lifecycle counter.
type MetricID uint16

const (
	// MetricRestoreSuccess is an exported constant or variable used by the session manager.
	MetricRestoreSuccess MetricID = iota
	// MetricRestoreEmpty is an exported constant or variable used by the session manager.
	MetricRestoreEmpty
	// MetricLoginSuccess is an exported constant or variable used by the session manager.
	MetricLoginSuccess
	// MetricLoginFailure is an exported constant or variable used by the session manager.
	MetricLoginFailure
	// MetricRegisterSuccess is an exported constant or variable used by the session manager.
	MetricRegisterSuccess
	// MetricRegisterFailure is an exported constant or variable used by the session manager.
	MetricRegisterFailure
	// MetricFederatedSuccess is an exported constant or variable used by the session manager.
	MetricFederatedSuccess
	// MetricFederatedFailure is an exported constant or variable used by the session manager.
	MetricFederatedFailure
	// MetricFederatedCancelled is an exported constant or variable used by the session manager.
	MetricFederatedCancelled
	// MetricBiometricSuccess is an exported constant or variable used by the session manager.
	MetricBiometricSuccess
	// MetricBiometricFailure is an exported constant or variable used by the session manager.
	MetricBiometricFailure
	// MetricRefreshSuccess is an exported constant or variable used by the session manager.
	MetricRefreshSuccess
	// MetricRefreshFailure is an exported constant or variable used by the session manager.
	MetricRefreshFailure
	// MetricLogout is an exported constant or variable used by the session manager.
	MetricLogout
	// MetricProfileUpdateSuccess is an exported constant or variable used by the session manager.
	MetricProfileUpdateSuccess
	// MetricProfileUpdateFailure is an exported constant or variable used by the session manager.
	MetricProfileUpdateFailure
	// MetricPasswordChangeSuccess is an exported constant or variable used by the session manager.
	MetricPasswordChangeSuccess
	// MetricPasswordChangeFailure is an exported constant or variable used by the session manager.
	MetricPasswordChangeFailure
	// MetricPasswordResetRequest is an exported constant or variable used by the session manager.
	MetricPasswordResetRequest
	// MetricPersistFailure is an exported constant or variable used by the session manager.
	MetricPersistFailure

	// MetricIDCount is the number of defined counters.
	MetricIDCount
)

const cacheLineSize = 64

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Config controls metric collection.
type Config struct {
	Enabled bool
}

// Metrics holds atomic lifecycle counters. A nil or disabled Metrics is a
// valid no-op receiver.
type Metrics struct {
	enabled  bool
	counters [MetricIDCount]paddedCounter
}

// New creates a Metrics instance. When cfg.Enabled is false, all operations
// are no-ops.
func New(cfg Config) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Enabled reports whether counters are being collected.
func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

// Inc increments the counter for id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= MetricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Get reads a single counter.
func (m *Metrics) Get(id MetricID) uint64 {
	if m == nil || id >= MetricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

// Snapshot is a point-in-time deep copy of all counters.
type Snapshot struct {
	Counters map[MetricID]uint64
}

// Snapshot copies every counter. Disabled instances return an empty snapshot.
func (m *Metrics) Snapshot() Snapshot {
	snap := Snapshot{Counters: make(map[MetricID]uint64, MetricIDCount)}
	if m == nil || !m.enabled {
		return snap
	}
	for id := MetricID(0); id < MetricIDCount; id++ {
		snap.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}
	return snap
}
