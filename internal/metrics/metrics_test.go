package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.IncPage(PageOK)
	m.AddProducts(3)
	m.AddDropped(1)
	m.AddClicks(2)
	m.IncWriteFailure()
	m.ObservePageDuration(1.5)
}

func TestMetricsRecordCounts(t *testing.T) {
	m := New()

	m.IncPage(PageOK)
	m.IncPage(PageOK)
	m.IncPage(PageFailed)
	m.AddProducts(90)
	m.AddDropped(2)
	m.AddClicks(4)
	m.IncWriteFailure()

	if got := testutil.ToFloat64(m.PagesTotal.WithLabelValues(PageOK)); got != 2 {
		t.Errorf("expected 2 ok pages, got %v", got)
	}
	if got := testutil.ToFloat64(m.PagesTotal.WithLabelValues(PageFailed)); got != 1 {
		t.Errorf("expected 1 failed page, got %v", got)
	}
	if got := testutil.ToFloat64(m.ProductsTotal); got != 90 {
		t.Errorf("expected 90 products, got %v", got)
	}
	if got := testutil.ToFloat64(m.DroppedTotal); got != 2 {
		t.Errorf("expected 2 dropped listings, got %v", got)
	}
	if got := testutil.ToFloat64(m.ClicksTotal); got != 4 {
		t.Errorf("expected 4 clicks, got %v", got)
	}
	if got := testutil.ToFloat64(m.WriteFailures); got != 1 {
		t.Errorf("expected 1 write failure, got %v", got)
	}
}

func TestMetricsRegistryServesAllCollectors(t *testing.T) {
	m := New()
	m.IncPage(PageOK)
	m.AddProducts(1)

	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"harvest_pages_total",
		"harvest_products_total",
	} {
		if !names[want] {
			t.Errorf("registry missing %s", want)
		}
	}
}
