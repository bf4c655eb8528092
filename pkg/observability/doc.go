/*
Package observability provides lifecycle hooks for monitoring simulations.

Metrics exports Prometheus counters and histograms for block invocations, and
LoggingHooks writes one structured log line per lifecycle event. Both return
domain.LifecycleHooks and can be combined with domain.Chain.
*/
package observability
