// Package metrics records per-operation counters for batch runs.
//
// The job is short-lived, so nothing is scraped. Metrics live in a private
// registry and are pushed to a Prometheus Pushgateway once the command
// finishes, when metrics.pushgateway_url is configured.
//
// All recording methods are safe to call on a nil *Metrics.
package metrics
