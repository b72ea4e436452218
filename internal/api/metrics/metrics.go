// Package metrics defines and registers all custom Prometheus metrics for
// the camper rentals API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rentals"

// ── Session resolution metrics ───────────────────────────────────────────────

// SessionResolutionsTotal counts completed resolution attempts.
// Label:
//   - outcome: "resolved", "needs_profile", "unauthenticated", or
//     "store_error" (lookup failed/timed out and fell back to setup)
var SessionResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_resolutions_total",
		Help:      "Total number of session resolution attempts, by outcome.",
	},
	[]string{"outcome"},
)

// SessionResolutionDuration measures the profile lookup from trigger to publish.
var SessionResolutionDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "session_resolution_duration_seconds",
		Help:      "Duration of session resolution from trigger to state publication.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)

// SessionResolvesCollapsedTotal counts repeat resolve triggers collapsed into
// an already in-flight lookup for the same subject.
var SessionResolvesCollapsedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_resolves_collapsed_total",
		Help:      "Total number of resolve triggers collapsed into an in-flight lookup.",
	},
)

// ProfileSetupsTotal counts profile setup submissions.
// Label:
//   - result: "created", "conflict", "validation_failed", or "error"
var ProfileSetupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_setups_total",
		Help:      "Total number of profile setup submissions, by result.",
	},
	[]string{"result"},
)

// SessionEventsQueueDepth tracks events waiting in each dispatcher worker channel.
var SessionEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "session_events_queue_depth",
		Help:      "Current number of session events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Catalog metrics ──────────────────────────────────────────────────────────

// CatalogSearchesTotal counts listing searches served from the snapshot.
var CatalogSearchesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_searches_total",
		Help:      "Total number of listing catalog searches.",
	},
)

// ListingsCreatedTotal counts newly published listings.
var ListingsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "listings_created_total",
		Help:      "Total number of listings created, by vehicle type.",
	},
	[]string{"type"},
)
