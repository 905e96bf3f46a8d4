// Package metrics exposes the sync loop and submission counters scraped at
// /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SyncCycles counts completed sync cycles, including partial ones.
	SyncCycles = promauto.NewCounter(prometheus.CounterOpts{
		Name: "groupbuy_sync_cycles_total",
		Help: "Completed data sync cycles.",
	})

	// FetchResults counts per-collection fetch outcomes.
	FetchResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "groupbuy_fetch_results_total",
		Help: "Per-collection fetch outcomes of the sync loop.",
	}, []string{"collection", "result"})

	// OrdersSubmitted counts accepted order submissions.
	OrdersSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "groupbuy_orders_submitted_total",
		Help: "Orders accepted by the submission flow.",
	})
)

// FetchOK / FetchFailed / FetchSkipped are the result label values.
const (
	FetchOK      = "ok"
	FetchFailed  = "failed"
	FetchSkipped = "skipped"
)
