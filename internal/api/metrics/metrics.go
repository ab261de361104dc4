// Package metrics defines and registers all custom Prometheus metrics for the
// CFO Web finance gateway. It is the single source of truth for metric names,
// labels, and help strings; metrics register with the default registry on
// package import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cfoweb"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "network_unreachable",
//     "storage_unavailable", or "unexpected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"result"},
)

// LogoutsTotal counts logout requests.
var LogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of logout requests.",
	},
)

// ── Access gate metrics ───────────────────────────────────────────────────────

// GateDecisionsTotal counts access gate verdicts.
// Labels:
//   - decision: "allow", "redirect_to_login", "deny_admin_required",
//     "require_subscription", or "pending"
//   - route: the gated route pattern
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of access gate evaluations, by decision and route.",
	},
	[]string{"decision", "route"},
)

// RedirectsTotal counts boundary redirects issued before page code runs.
// Label:
//   - target: "login" or "finance"
var RedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "boundary_redirects_total",
		Help:      "Total number of boundary route redirects, by target.",
	},
	[]string{"target"},
)

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamRequestDuration measures upstream REST call latency.
// Labels:
//   - path: the upstream path template
//   - status: HTTP status code, or "error" on transport failure
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of REST calls to the finance backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"path", "status"},
)

// SubscriptionCacheTotal counts subscription cache lookups.
// Label:
//   - result: "hit" or "miss"
var SubscriptionCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "subscription_cache_total",
		Help:      "Total number of subscription cache lookups, by result.",
	},
	[]string{"result"},
)
