// Package metrics defines all custom Prometheus metrics for the identity
// service. It is the single source of truth for metric names, labels, and
// help strings. Registration happens at import time via promauto; the router
// exposes everything on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "not_found", "invalid_password", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// TokensRefreshedTotal counts successful token rotations.
var TokensRefreshedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_refreshed_total",
		Help:      "Total number of tokens rotated via session refresh.",
	},
)

// SessionsActive tracks the number of tokens currently registered in the
// in-memory session store.
var SessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Current number of live sessions in the session store.",
	},
)

// SessionsCleanedTotal counts sessions removed by the periodic expiry sweep.
var SessionsCleanedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_cleaned_total",
		Help:      "Total number of expired sessions removed by the cleanup task.",
	},
)

// UserOperationsTotal counts user CRUD operations that reached the store.
// Labels:
//   - op: "create", "update", or "delete"
//   - result: "success", "conflict", "not_found", "forbidden", or "error"
var UserOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_operations_total",
		Help:      "Total number of user mutations, labelled by operation and result.",
	},
	[]string{"op", "result"},
)
