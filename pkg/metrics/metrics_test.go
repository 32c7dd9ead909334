package metrics_test

import (
	"testing"

	"github.com/Gunvolt24/wb_eshop/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestLineItems_CountersByOutcome(t *testing.T) {
	successBefore := testutil.ToFloat64(metrics.LineItems.WithLabelValues("success"))
	skippedBefore := testutil.ToFloat64(metrics.LineItems.WithLabelValues("skipped"))

	metrics.LineItems.WithLabelValues("success").Inc()
	metrics.LineItems.WithLabelValues("success").Inc()

	if got := testutil.ToFloat64(metrics.LineItems.WithLabelValues("success")); got != successBefore+2 {
		t.Fatalf("LineItems(success): got=%v want=%v", got, successBefore+2)
	}
	if got := testutil.ToFloat64(metrics.LineItems.WithLabelValues("skipped")); got != skippedBefore {
		t.Fatalf("LineItems(skipped): got=%v want=%v", got, skippedBefore)
	}
}

func TestConnections_GaugeAndCounter(t *testing.T) {
	cur := testutil.ToFloat64(metrics.ActiveConnections)

	metrics.ActiveConnections.Inc()
	if got := testutil.ToFloat64(metrics.ActiveConnections); got != cur+1 {
		t.Fatalf("ActiveConnections after Inc: got=%v want=%v", got, cur+1)
	}
	metrics.ActiveConnections.Dec()
	if got := testutil.ToFloat64(metrics.ActiveConnections); got != cur {
		t.Fatalf("ActiveConnections restore: got=%v want=%v", got, cur)
	}

	before := testutil.ToFloat64(metrics.ConnectionsTotal)
	metrics.ConnectionsTotal.Inc()
	if got := testutil.ToFloat64(metrics.ConnectionsTotal); got != before+1 {
		t.Fatalf("ConnectionsTotal: got=%v want=%v", got, before+1)
	}
}
