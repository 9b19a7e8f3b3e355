package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalPagesFetched tracks pages successfully fetched across all sites.
	TotalPagesFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "promowatch_pages_fetched_total",
		Help: "The total number of pages successfully fetched.",
	})
	// TotalFetchErrors tracks page fetches that resulted in an error.
	TotalFetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "promowatch_fetch_errors_total",
		Help: "The total number of failed page fetches.",
	})
	// TotalJudgments tracks judgment calls by outcome (promotion, no_promotion, error).
	TotalJudgments = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "promowatch_judgments_total",
		Help: "The total number of judgment calls, labeled by outcome.",
	}, []string{"outcome"})
	// ActiveWorkers gauges site workers currently executing.
	ActiveWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "promowatch_active_workers",
		Help: "Number of site workers currently processing a site.",
	})
)
