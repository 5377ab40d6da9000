// Package metrics defines and registers all custom Prometheus metrics for the
// hotel management API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hotel"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginAttemptsTotal counts login exchanges.
// Label:
//   - result: "success", "failure", "invalid", "unavailable", "throttled" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// GateDecisionsTotal counts route gate outcomes.
// Labels:
//   - class: route class of the request path (e.g. "protected-api")
//   - decision: "pass", "annotate", "reject_401", "reject_403" or "redirect"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of route gate decisions, by route class and decision.",
	},
	[]string{"class", "decision"},
)

// PasswordResetRequestsTotal counts password reset requests.
// Label:
//   - result: "queued", "unknown" (no matching account) or "error"
var PasswordResetRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_reset_requests_total",
		Help:      "Total number of password reset requests, by result.",
	},
	[]string{"result"},
)

// ── Mail metrics ──────────────────────────────────────────────────────────────

// MailQueueDepth tracks the current number of messages waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var MailQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of messages pending in each mail dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// MailDeliveryDuration measures how long a single delivery attempt takes.
// Label:
//   - result: "sent" or "error"
var MailDeliveryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "mail_delivery_duration_seconds",
		Help:      "Duration of mail delivery attempts from dequeue to completion.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"result"},
)

// ── Review metrics ────────────────────────────────────────────────────────────

// ReviewsSubmittedTotal counts stored guest reviews.
// Label:
//   - overall_rating: "1" through "10"
var ReviewsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_submitted_total",
		Help:      "Total number of guest reviews submitted, by overall rating.",
	},
	[]string{"overall_rating"},
)
