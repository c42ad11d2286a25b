// Package metrics defines and registers all custom Prometheus metrics for the
// Devlance marketplace API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// initialisation via promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Project metrics ───────────────────────────────────────────────────────────

// ProjectsCreatedTotal counts newly created projects.
// Label:
//   - service_type: the client-chosen service category (free-form)
var ProjectsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created, by service type.",
	},
	[]string{"service_type"},
)

// ProjectTransitionsTotal counts successful project status transitions.
// Labels:
//   - from: the prior status
//   - to: the status applied
var ProjectTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "project_transitions_total",
		Help:      "Total number of project status transitions applied.",
	},
	[]string{"from", "to"},
)

// ── Application metrics ───────────────────────────────────────────────────────

// ApplicationsTotal counts application lifecycle events.
// Label:
//   - outcome: "submitted", "Approved", or "Rejected"
var ApplicationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_total",
		Help:      "Total number of application events, by outcome.",
	},
	[]string{"outcome"},
)

// ── Task metrics ──────────────────────────────────────────────────────────────

// TasksCreatedTotal counts tasks created from approved applications.
var TasksCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created.",
	},
)

// TaskTransitionsTotal counts successful task status transitions.
// Labels:
//   - from: the prior status
//   - to: the status applied
var TaskTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_transitions_total",
		Help:      "Total number of task status transitions applied.",
	},
	[]string{"from", "to"},
)

// ── Ledger metrics ────────────────────────────────────────────────────────────

// PaymentsRecordedTotal counts ledger entries written.
// Label:
//   - type: "Incoming" or "Payout"
var PaymentsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_recorded_total",
		Help:      "Total number of ledger entries recorded, by payment type.",
	},
	[]string{"type"},
)

// BillingEventsDedupTotal counts billing webhook deduplication decisions.
// Label:
//   - result: "hit" (replay, dropped) or "miss" (new event, recorded)
var BillingEventsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "billing_events_dedup_total",
		Help:      "Total number of billing webhook dedup checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsQueueDepth tracks the events waiting in each dispatcher worker
// channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notifications_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// NotificationsDroppedTotal counts notifications dropped because a worker
// channel was full or persistence failed.
var NotificationsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dropped_total",
		Help:      "Total number of notifications dropped instead of delivered.",
	},
)
