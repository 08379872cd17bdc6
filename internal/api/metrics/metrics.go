// Package metrics defines and registers all custom Prometheus metrics
// for the staffing back office. It is the single source of truth for
// metric names, labels, and help strings.
//
// Metrics register with the default Prometheus registry via promauto at
// package initialisation; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "staffing"

// ── Onboarding pipeline metrics ───────────────────────────────────────────────

// CasesCreatedTotal counts hiring cases opened by HR.
var CasesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cases_created_total",
		Help:      "Total number of hiring cases created.",
	},
)

// CaseTransitionsTotal counts state machine transitions.
// Label:
//   - status: the status entered (e.g. "hired", "rejected")
var CaseTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "case_transitions_total",
		Help:      "Total number of hiring case status transitions, by entered status.",
	},
	[]string{"status"},
)

// CredentialsIssuedTotal counts credential operations as seen at the API
// edge.
// Label:
//   - kind: "issue" (new identity on approval)
var CredentialsIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credentials_issued_total",
		Help:      "Total number of credential issuances.",
	},
	[]string{"kind"},
)

// ── Channel link metrics ──────────────────────────────────────────────────────

// LinkEventsTotal counts inbound webhook updates as seen at the edge.
// Label:
//   - result: "accepted" (enqueued), "duplicate" (dedup hit),
//     "ignored" (no message payload), or "refused" (queue saturated)
var LinkEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "link_events_total",
		Help:      "Total number of inbound channel updates, by edge outcome.",
	},
	[]string{"result"},
)

// DeliveriesTotal counts credential delivery attempts to the channel.
// Label:
//   - result: "sent", "failed", or "deferred"
var DeliveriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deliveries_total",
		Help:      "Total number of credential delivery attempts, by result.",
	},
	[]string{"result"},
)

// WebhookQueueDepth tracks updates waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var WebhookQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "webhook_queue_depth",
		Help:      "Current number of updates pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
