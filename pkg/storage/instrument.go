package storage

import (
	"context"
	"time"

	"github.com/dcahoon3/mbr-shapefile-generator/pkg/observability"
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/zone"
)

// InstrumentedStore wraps an AreaPointStore and records every operation as
// Prometheus metrics, labeled with the backend name.
type InstrumentedStore struct {
	inner   AreaPointStore
	backend string
	metrics *observability.Metrics
}

// NewInstrumentedStore wraps a store with operation metrics. A nil metrics
// value returns the store unwrapped.
func NewInstrumentedStore(inner AreaPointStore, backend string, metrics *observability.Metrics) AreaPointStore {
	if metrics == nil {
		return inner
	}
	return &InstrumentedStore{
		inner:   inner,
		backend: backend,
		metrics: metrics,
	}
}

// ListCustomers records the operation and delegates.
func (s *InstrumentedStore) ListCustomers(ctx context.Context) ([]string, error) {
	start := time.Now()
	customers, err := s.inner.ListCustomers(ctx)
	s.observe("list_customers", start, err)
	return customers, err
}

// GetAreaPoints records the operation and delegates.
func (s *InstrumentedStore) GetAreaPoints(ctx context.Context, customerID string) ([]zone.AreaPoint, error) {
	start := time.Now()
	points, err := s.inner.GetAreaPoints(ctx, customerID)
	s.observe("get_areapoints", start, err)
	return points, err
}

// HealthCheck records the operation and delegates.
func (s *InstrumentedStore) HealthCheck(ctx context.Context) error {
	start := time.Now()
	err := s.inner.HealthCheck(ctx)
	s.observe("health_check", start, err)
	return err
}

// Close delegates without recording.
func (s *InstrumentedStore) Close() error {
	return s.inner.Close()
}

func (s *InstrumentedStore) observe(operation string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	s.metrics.StorageOperationsTotal.WithLabelValues(operation, s.backend, status).Inc()
	s.metrics.StorageOperationDuration.WithLabelValues(operation, s.backend).Observe(time.Since(start).Seconds())
}
