// Package metrics exposes Prometheus instruments for the polling loop.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pass results used as the "result" label.
const (
	ResultSuccess      = "success"
	ResultEmpty        = "empty"
	ResultError        = "error"
	ResultPersistError = "persist_error"
)

var (
	passesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tippscrape",
		Name:      "passes_total",
		Help:      "Extraction passes by result.",
	}, []string{"result"})
	lastMarkets = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "tippscrape",
		Name:      "last_markets",
		Help:      "Markets found by the most recent successful pass.",
	})
	passDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tippscrape",
		Name:      "pass_duration_seconds",
		Help:      "Wall time of one extraction pass.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	})
	sessionOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "tippscrape",
		Name:      "session_open",
		Help:      "1 while a browser page is open.",
	})
)

// ObservePass records one finished pass.
func ObservePass(result string, markets int, d time.Duration) {
	passesTotal.WithLabelValues(result).Inc()
	passDuration.Observe(d.Seconds())
	if result == ResultSuccess {
		lastMarkets.Set(float64(markets))
	}
}

// SetSessionOpen records the browser session state.
func SetSessionOpen(open bool) {
	if open {
		sessionOpen.Set(1)
		return
	}
	sessionOpen.Set(0)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
