// Package prometheus renders session lifecycle metrics in the Prometheus
// text exposition format without depending on a Prometheus client library.
package prometheus
