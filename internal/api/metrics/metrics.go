// Package metrics defines and registers all custom Prometheus metrics for
// the admin console API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "staffdesk"

// ── Mutation metrics ──────────────────────────────────────────────────────────

// MutationsTotal counts entity mutations by outcome.
// Labels:
//   - entity: "user" or "employee"
//   - action: "create", "update", or "delete"
//   - result: "ok" or "error"
var MutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Total number of entity mutations, by entity, action and result.",
	},
	[]string{"entity", "action", "result"},
)

// ── List cache metrics ────────────────────────────────────────────────────────

// ListReadsTotal counts list reads against the cached query.
// Labels:
//   - entity: "user" or "employee"
//   - result: "hit" (served from cache) or "refetch"
var ListReadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "list_reads_total",
		Help:      "Total number of list reads, labelled by cache outcome (hit/refetch).",
	},
	[]string{"entity", "result"},
)

// ── Storage metrics ───────────────────────────────────────────────────────────

// FolderProvisionsTotal counts employee folder provisioning attempts.
// Label:
//   - result: "ok" or "error"
var FolderProvisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "folder_provisions_total",
		Help:      "Total number of employee document-folder provisioning attempts.",
	},
	[]string{"result"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsDeliveredTotal counts notifications handed to the sink.
// Label:
//   - variant: "success" or "destructive"
var NotificationsDeliveredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_delivered_total",
		Help:      "Total number of notifications delivered, by variant.",
	},
	[]string{"variant"},
)

// NotificationsDroppedTotal counts notifications discarded because a worker
// queue was full.
var NotificationsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dropped_total",
		Help:      "Total number of notifications dropped due to backpressure.",
	},
)

// NotificationsQueueDepth tracks the number of notifications waiting in each
// dispatcher worker channel.
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
