package prometheus

import (
	"net/http"
	"strconv"
	"strings"

	sessionkit "github.com/aurawell/sessionkit"
)

type metricsSource interface {
	MetricsSnapshot() sessionkit.MetricsSnapshot
	AuditDropped() uint64
}

// counterDefs fixes the exposition order and naming of every lifecycle
// counter.
var counterDefs = []struct {
	ID   sessionkit.MetricID
	Name string
	Help string
}{
	{sessionkit.MetricRestoreSuccess, "sessionkit_restore_success_total", "Startup restores that produced an authenticated session."},
	{sessionkit.MetricRestoreEmpty, "sessionkit_restore_empty_total", "Startup restores that found no usable session."},
	{sessionkit.MetricLoginSuccess, "sessionkit_login_success_total", "Successful password logins."},
	{sessionkit.MetricLoginFailure, "sessionkit_login_failure_total", "Failed password logins."},
	{sessionkit.MetricRegisterSuccess, "sessionkit_register_success_total", "Successful registrations."},
	{sessionkit.MetricRegisterFailure, "sessionkit_register_failure_total", "Failed registrations."},
	{sessionkit.MetricFederatedSuccess, "sessionkit_federated_success_total", "Successful federated logins."},
	{sessionkit.MetricFederatedFailure, "sessionkit_federated_failure_total", "Failed federated logins."},
	{sessionkit.MetricFederatedCancelled, "sessionkit_federated_cancelled_total", "Federated logins aborted by the user."},
	{sessionkit.MetricBiometricSuccess, "sessionkit_biometric_success_total", "Successful biometric session restores."},
	{sessionkit.MetricBiometricFailure, "sessionkit_biometric_failure_total", "Failed biometric session restores."},
	{sessionkit.MetricRefreshSuccess, "sessionkit_refresh_success_total", "Successful session refreshes."},
	{sessionkit.MetricRefreshFailure, "sessionkit_refresh_failure_total", "Failed session refreshes."},
	{sessionkit.MetricLogout, "sessionkit_logout_total", "Logouts."},
	{sessionkit.MetricProfileUpdateSuccess, "sessionkit_profile_update_success_total", "Successful profile updates."},
	{sessionkit.MetricProfileUpdateFailure, "sessionkit_profile_update_failure_total", "Failed profile updates."},
	{sessionkit.MetricPasswordChangeSuccess, "sessionkit_password_change_success_total", "Successful password changes."},
	{sessionkit.MetricPasswordChangeFailure, "sessionkit_password_change_failure_total", "Failed password changes."},
	{sessionkit.MetricPasswordResetRequest, "sessionkit_password_reset_request_total", "Password reset emails requested."},
	{sessionkit.MetricPersistFailure, "sessionkit_persist_failure_total", "Envelope persistence failures."},
}

// PrometheusExporter renders sessionkit metrics in Prometheus text exposition format.
type PrometheusExporter struct {
	source metricsSource
}

// NewPrometheusExporter creates a Prometheus exporter that reads from the given [sessionkit.Manager].
func NewPrometheusExporter(manager *sessionkit.Manager) *PrometheusExporter {
	return &PrometheusExporter{source: manager}
}

// NewPrometheusExporterFromSource creates a Prometheus exporter from a custom source.
func NewPrometheusExporterFromSource(source metricsSource) *PrometheusExporter {
	return &PrometheusExporter{source: source}
}

// Handler returns an http.Handler that serves Prometheus metrics.
func (p *PrometheusExporter) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		_, _ = w.Write([]byte(p.Render()))
	})
}

// Render writes the current metrics in Prometheus text exposition format.
func (p *PrometheusExporter) Render() string {
	if p == nil || p.source == nil {
		return ""
	}

	snapshot := p.source.MetricsSnapshot()
	dropped := p.source.AuditDropped()
	if len(snapshot.Counters) == 0 && dropped == 0 {
		return ""
	}

	var b strings.Builder
	b.Grow(8192)

	for _, def := range counterDefs {
		writeCounter(&b, def.Name, def.Help, snapshot.Counters[def.ID])
	}

	writeCounter(&b, "sessionkit_audit_dropped_total", "Dropped lifecycle events due to dispatcher backpressure.", dropped)

	return b.String()
}

func writeCounter(b *strings.Builder, name, help string, value uint64) {
	b.WriteString("# HELP ")
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(escapeHelp(help))
	b.WriteByte('\n')
	b.WriteString("# TYPE ")
	b.WriteString(name)
	b.WriteString(" counter\n")
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(strconv.FormatUint(value, 10))
	b.WriteByte('\n')
}

func escapeHelp(help string) string {
	help = strings.ReplaceAll(help, "\\", "\\\\")
	help = strings.ReplaceAll(help, "\n", "\\n")
	return help
}
