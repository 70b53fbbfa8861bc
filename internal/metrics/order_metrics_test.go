package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestNewOrderMetricsWithRegisterer_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewOrderMetricsWithRegisterer(reg)

	metrics.RecordOrderCreated()
	metrics.RecordOrderUpdated()
	metrics.RecordOrderDeleted()
	metrics.RecordOperation("create_order", 10*time.Millisecond)
	metrics.RecordOperationError("get_order", "not_found")
	metrics.RecordPublicationStarted()
	metrics.RecordPublication("order_created", nil, time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	names := make(map[string]struct{}, len(families))
	for _, family := range families {
		names[family.GetName()] = struct{}{}
	}
	for _, name := range []string{
		"orders_created_total",
		"orders_updated_total",
		"orders_deleted_total",
		"orders_operation_duration_seconds",
		"orders_operation_errors_total",
		"orders_events_published_total",
		"orders_event_publish_duration_seconds",
		"orders_event_publications_in_flight",
	} {
		if _, ok := names[name]; !ok {
			t.Errorf("metric %s is not registered", name)
		}
	}
}

func TestNewOrderMetricsWithRegisterer_ReusesExistingCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewOrderMetricsWithRegisterer(reg)
	second := NewOrderMetricsWithRegisterer(reg)

	first.RecordOrderCreated()
	second.RecordOrderCreated()

	if got := testutil.ToFloat64(first.ordersCreated); got != 2 {
		t.Fatalf("expected shared counter value 2, got %v", got)
	}
}

func TestRecordPublication_SplitsByResult(t *testing.T) {
	metrics := NewOrderMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordPublicationStarted()
	metrics.RecordPublicationStarted()
	metrics.RecordPublication("order_created", nil, 5*time.Millisecond)
	metrics.RecordPublication("order_created", errors.New("broker down"), 7*time.Millisecond)

	if got := testutil.ToFloat64(metrics.eventsPublished.WithLabelValues("order_created", PublishResultSuccess)); got != 1 {
		t.Fatalf("expected 1 success, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.eventsPublished.WithLabelValues("order_created", PublishResultFailure)); got != 1 {
		t.Fatalf("expected 1 failure, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.publicationsInFlight); got != 0 {
		t.Fatalf("expected no publications in flight, got %v", got)
	}

	metric := &dto.Metric{}
	if err := metrics.publishDuration.Write(metric); err != nil {
		t.Fatalf("write histogram: %v", err)
	}
	if metric.Histogram.GetSampleCount() != 2 {
		t.Errorf("expected 2 samples, got %d", metric.Histogram.GetSampleCount())
	}
}

func TestRecordOperation_ObservesPerOperation(t *testing.T) {
	metrics := NewOrderMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordOperation("list", 2*time.Millisecond)
	metrics.RecordOperation("list", 3*time.Millisecond)
	metrics.RecordOperationError("update_order", "key_not_found")

	if count := testutil.CollectAndCount(metrics.operationDuration); count != 1 {
		t.Fatalf("expected one labelled series, got %d", count)
	}
	if got := testutil.ToFloat64(metrics.operationErrors.WithLabelValues("update_order", "key_not_found")); got != 1 {
		t.Fatalf("expected 1 error, got %v", got)
	}
}
