// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RPCRequests counts finished RPCs by procedure and Connect code ("ok" on success).
	RPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "settleup",
		Name:      "rpc_requests_total",
		Help:      "Finished RPCs by procedure and result code.",
	}, []string{"procedure", "code"})

	// RPCDuration observes RPC latency in seconds.
	RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "settleup",
		Name:      "rpc_duration_seconds",
		Help:      "RPC latency by procedure.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure"})

	SettlementsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "settleup",
		Name:      "settlements_recorded_total",
		Help:      "Reimbursements recorded.",
	})

	SettlementsUndone = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "settleup",
		Name:      "settlements_undone_total",
		Help:      "Reimbursements removed by undo.",
	})

	GroupsArchived = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "settleup",
		Name:      "groups_archived_total",
		Help:      "Groups moved to the archive.",
	})

	EventPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "settleup",
		Name:      "event_publish_failures_total",
		Help:      "Events that could not be delivered.",
	})
)
