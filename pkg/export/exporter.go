package export

import (
	"context"
	"fmt"
	"path"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dcahoon3/mbr-shapefile-generator/pkg/observability"
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/shapefile"
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/storage"
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/zone"
)

// Config controls the exporter.
type Config struct {
	// OutputDir is where shapefile sets are written.
	OutputDir string

	// Concurrency bounds parallel customer exports in ExportAll.
	Concurrency int

	// KeyPrefix prefixes artifact keys when an artifact store is wired.
	KeyPrefix string
}

// DefaultConfig returns default exporter settings.
func DefaultConfig() Config {
	return Config{
		OutputDir:   "out",
		Concurrency: 4,
		KeyPrefix:   "exports",
	}
}

// Exporter runs the areapoint-to-shapefile pipeline for customers.
type Exporter struct {
	store     storage.AreaPointStore
	artifacts storage.ArtifactStore // optional, archives skipped when nil
	cache     *GeometryCache        // optional
	metrics   *observability.Metrics
	log       *observability.Logger
	config    Config
}

// NewExporter creates an exporter. Artifact store, cache, and metrics are
// optional; a nil logger gets a default.
func NewExporter(store storage.AreaPointStore, artifacts storage.ArtifactStore, cache *GeometryCache, metrics *observability.Metrics, log *observability.Logger, config Config) *Exporter {
	if log == nil {
		log = observability.NewLogger(observability.InfoLevel, nil)
	}
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultConfig().Concurrency
	}
	return &Exporter{
		store:     store,
		artifacts: artifacts,
		cache:     cache,
		metrics:   metrics,
		log:       log,
		config:    config,
	}
}

// Result describes one finished customer export.
type Result struct {
	CustomerID string             `json:"customer_id"`
	Zones      int                `json:"zones"`
	Summary    *zone.BuildSummary `json:"summary"`
	FileSet    *shapefile.FileSet `json:"file_set"`
	ArchiveKey string             `json:"archive_key,omitempty"`
	Checksum   string             `json:"checksum,omitempty"`
	Duration   time.Duration      `json:"duration_ns"`
	FromCache  bool               `json:"from_cache"`
}

// ExportCustomer fetches a customer's areapoints, builds zone geometry,
// writes the shapefile set, and archives it when an artifact store is
// wired. Zones without usable geometry are reported in the summary, not
// treated as failures.
func (e *Exporter) ExportCustomer(ctx context.Context, customerID string) (*Result, error) {
	start := time.Now()
	log := e.log.WithField("customer", customerID)

	points, err := e.store.GetAreaPoints(ctx, customerID)
	if err != nil {
		e.observeExport("failed", customerID, start)
		return nil, fmt.Errorf("failed to fetch areapoints for %s: %w", customerID, err)
	}
	if len(points) == 0 {
		e.observeExport("empty", customerID, start)
		return nil, fmt.Errorf("customer %s has no areapoint rows", customerID)
	}

	zones, summary, fromCache := e.buildZones(customerID, points)
	if len(zones) == 0 {
		e.observeExport("empty", customerID, start)
		return nil, fmt.Errorf("customer %s produced no usable zones", customerID)
	}

	fs, err := shapefile.WriteCustomer(e.config.OutputDir, customerID, zones)
	if err != nil {
		e.observeExport("failed", customerID, start)
		return nil, fmt.Errorf("failed to write shapefile for %s: %w", customerID, err)
	}

	result := &Result{
		CustomerID: customerID,
		Zones:      len(zones),
		Summary:    summary,
		FileSet:    fs,
		FromCache:  fromCache,
	}

	if e.artifacts != nil {
		data, err := shapefile.Archive(fs)
		if err != nil {
			e.observeExport("failed", customerID, start)
			return nil, fmt.Errorf("failed to archive shapefile for %s: %w", customerID, err)
		}

		key := path.Join(e.config.KeyPrefix, customerID, fs.BaseName+".zip")
		checksum, err := e.artifacts.PutArchive(ctx, key, data)
		if err != nil {
			e.observeExport("failed", customerID, start)
			return nil, fmt.Errorf("failed to store archive for %s: %w", customerID, err)
		}
		result.ArchiveKey = key
		result.Checksum = checksum
	}

	result.Duration = time.Since(start)
	e.observeExport("completed", customerID, start)
	if e.metrics != nil {
		e.metrics.ZonesBuilt.Add(float64(summary.ZonesBuilt))
		e.metrics.ZonesSkipped.Add(float64(summary.ZonesSkipped))
		e.metrics.RingsClosed.Add(float64(summary.RingsClosed))
		e.metrics.RingsDropped.Add(float64(summary.RingsDropped))
	}

	log.WithFields(map[string]interface{}{
		"zones":    result.Zones,
		"skipped":  summary.ZonesSkipped,
		"duration": result.Duration.String(),
	}).Info("export completed")

	return result, nil
}

// ExportAll exports every customer, bounded by the configured concurrency.
// A failing customer does not cancel the others; the first error is
// returned after all exports finish, alongside the successful results.
func (e *Exporter) ExportAll(ctx context.Context, customers []string) ([]*Result, error) {
	if customers == nil {
		var err error
		customers, err = e.store.ListCustomers(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list customers: %w", err)
		}
	}

	results := make([]*Result, len(customers))

	var g errgroup.Group
	g.SetLimit(e.config.Concurrency)

	for i, customerID := range customers {
		i, customerID := i, customerID
		g.Go(func() error {
			result, err := e.ExportCustomer(ctx, customerID)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	err := g.Wait()

	out := make([]*Result, 0, len(results))
	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}
	return out, err
}

// buildZones consults the geometry cache before rebuilding.
func (e *Exporter) buildZones(customerID string, points []zone.AreaPoint) ([]*zone.Zone, *zone.BuildSummary, bool) {
	var fingerprint string
	if e.cache != nil {
		fingerprint = Fingerprint(points)
		if zones, summary, ok := e.cache.Get(customerID, fingerprint); ok {
			if e.metrics != nil {
				e.metrics.CacheHitsTotal.WithLabelValues("geometry").Inc()
			}
			return zones, summary, true
		}
		if e.metrics != nil {
			e.metrics.CacheMissesTotal.WithLabelValues("geometry").Inc()
		}
	}

	zones, summary := zone.BuildAll(customerID, points)
	if e.cache != nil && len(zones) > 0 {
		e.cache.Set(customerID, fingerprint, zones, summary)
	}
	return zones, summary, false
}

func (e *Exporter) observeExport(status, customerID string, start time.Time) {
	if e.metrics == nil {
		return
	}
	e.metrics.ExportsTotal.WithLabelValues(status).Inc()
	e.metrics.ExportDuration.WithLabelValues(customerID).Observe(time.Since(start).Seconds())
}
