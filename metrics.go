package sessionkit

import "github.com/aurawell/sessionkit/internal/metrics"

// MetricID defines a public type used by sessionkit APIs.
//
// MetricID instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricID = metrics.MetricID

// MetricsSnapshot defines a public type used by sessionkit APIs.
//
// MetricsSnapshot instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsSnapshot = metrics.Snapshot

// Lifecycle counter identifiers, re-exported for snapshot consumers.
const (
	// MetricRestoreSuccess is an exported constant or variable used by the session manager.
	MetricRestoreSuccess = metrics.MetricRestoreSuccess
	// MetricRestoreEmpty is an exported constant or variable used by the session manager.
	MetricRestoreEmpty = metrics.MetricRestoreEmpty
	// MetricLoginSuccess is an exported constant or variable used by the session manager.
	MetricLoginSuccess = metrics.MetricLoginSuccess
	// MetricLoginFailure is an exported constant or variable used by the session manager.
	MetricLoginFailure = metrics.MetricLoginFailure
	// MetricRegisterSuccess is an exported constant or variable used by the session manager.
	MetricRegisterSuccess = metrics.MetricRegisterSuccess
	// MetricRegisterFailure is an exported constant or variable used by the session manager.
	MetricRegisterFailure = metrics.MetricRegisterFailure
	// MetricFederatedSuccess is an exported constant or variable used by the session manager.
	MetricFederatedSuccess = metrics.MetricFederatedSuccess
	// MetricFederatedFailure is an exported constant or variable used by the session manager.
	MetricFederatedFailure = metrics.MetricFederatedFailure
	// MetricFederatedCancelled is an exported constant or variable used by the session manager.
	MetricFederatedCancelled = metrics.MetricFederatedCancelled
	// MetricBiometricSuccess is an exported constant or variable used by the session manager.
	MetricBiometricSuccess = metrics.MetricBiometricSuccess
	// MetricBiometricFailure is an exported constant or variable used by the session manager.
	MetricBiometricFailure = metrics.MetricBiometricFailure
	// MetricRefreshSuccess is an exported constant or variable used by the session manager.
	MetricRefreshSuccess = metrics.MetricRefreshSuccess
	// MetricRefreshFailure is an exported constant or variable used by the session manager.
	MetricRefreshFailure = metrics.MetricRefreshFailure
	// MetricLogout is an exported constant or variable used by the session manager.
	MetricLogout = metrics.MetricLogout
	// MetricProfileUpdateSuccess is an exported constant or variable used by the session manager.
	MetricProfileUpdateSuccess = metrics.MetricProfileUpdateSuccess
	// MetricProfileUpdateFailure is an exported constant or variable used by the session manager.
	MetricProfileUpdateFailure = metrics.MetricProfileUpdateFailure
	// MetricPasswordChangeSuccess is an exported constant or variable used by the session manager.
	MetricPasswordChangeSuccess = metrics.MetricPasswordChangeSuccess
	// MetricPasswordChangeFailure is an exported constant or variable used by the session manager.
	MetricPasswordChangeFailure = metrics.MetricPasswordChangeFailure
	// MetricPasswordResetRequest is an exported constant or variable used by the session manager.
	MetricPasswordResetRequest = metrics.MetricPasswordResetRequest
	// MetricPersistFailure is an exported constant or variable used by the session manager.
	MetricPersistFailure = metrics.MetricPersistFailure
)
