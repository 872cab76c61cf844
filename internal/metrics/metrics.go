package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Page outcome labels for PagesTotal
const (
	PageOK     = "ok"
	PageFailed = "failed"
)

// Metrics bundles the Prometheus collectors for a harvest run.
//
// Every record method is safe on a nil receiver, so callers that do not
// collect metrics can pass nil instead of wiring a registry.
type Metrics struct {
	Registry *prometheus.Registry

	PagesTotal    *prometheus.CounterVec
	ProductsTotal prometheus.Counter
	DroppedTotal  prometheus.Counter
	ClicksTotal   prometheus.Counter
	WriteFailures prometheus.Counter
	PageDuration  prometheus.Histogram
}

// New creates a metrics bundle backed by a dedicated registry
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		PagesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "harvest_pages_total",
			Help: "Catalog pages processed, partitioned by outcome.",
		}, []string{"status"}),
		ProductsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "harvest_products_total",
			Help: "Product records extracted across all pages.",
		}),
		DroppedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "harvest_dropped_listings_total",
			Help: "Listings dropped because a required field failed to extract.",
		}),
		ClicksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "harvest_load_more_clicks_total",
			Help: "Load-more activations across all pages.",
		}),
		WriteFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "harvest_write_failures_total",
			Help: "Output files that could not be written.",
		}),
		PageDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "harvest_page_duration_seconds",
			Help:    "Time spent rendering and extracting one catalog page.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
	}

	m.Registry.MustRegister(
		m.PagesTotal,
		m.ProductsTotal,
		m.DroppedTotal,
		m.ClicksTotal,
		m.WriteFailures,
		m.PageDuration,
	)

	return m
}

// IncPage records a processed page with the given outcome status
func (m *Metrics) IncPage(status string) {
	if m == nil {
		return
	}
	m.PagesTotal.WithLabelValues(status).Inc()
}

// AddProducts records extracted product records
func (m *Metrics) AddProducts(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ProductsTotal.Add(float64(n))
}

// AddDropped records listings dropped during extraction
func (m *Metrics) AddDropped(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.DroppedTotal.Add(float64(n))
}

// AddClicks records load-more activations
func (m *Metrics) AddClicks(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ClicksTotal.Add(float64(n))
}

// IncWriteFailure records an output file that could not be written
func (m *Metrics) IncWriteFailure() {
	if m == nil {
		return
	}
	m.WriteFailures.Inc()
}

// ObservePageDuration records how long one page took end to end
func (m *Metrics) ObservePageDuration(seconds float64) {
	if m == nil {
		return
	}
	m.PageDuration.Observe(seconds)
}
