// Package metrics defines and registers all custom Prometheus metrics for the
// dashboard service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation (promauto) and exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboard"

// ── Action metrics ────────────────────────────────────────────────────────────

// ActionsTotal counts completed mutation actions.
// Labels:
//   - action: "create_invoice", "update_invoice", "delete_invoice", "authenticate"
//   - outcome: "redirected", "invalid" or "failed"
var ActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "actions_total",
		Help:      "Total number of mutation actions, by action and outcome.",
	},
	[]string{"action", "outcome"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts credential checks.
// Label:
//   - result: "success", "lookup_error", or the rejection reason
//     ("invalid_format", "user_not_found", "wrong_password")
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of credential checks, labelled by result.",
	},
	[]string{"result"},
)

// ── Cache metrics ─────────────────────────────────────────────────────────────

// CacheInvalidationsTotal counts view invalidations issued after writes.
// Label:
//   - result: "ok" or "error"
var CacheInvalidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_invalidations_total",
		Help:      "Total number of view cache invalidations, labelled by result (ok/error).",
	},
	[]string{"result"},
)
