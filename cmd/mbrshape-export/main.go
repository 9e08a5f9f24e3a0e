package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dcahoon3/mbr-shapefile-generator/pkg/config"
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/export"
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/observability"
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/storage"
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/storage/postgres"
)

var (
	planPath = flag.String("plan", "", "Path to a YAML export plan")
	schedule = flag.String("schedule", "0 2 * * *", "Cron schedule for batch exports (default: 02:00 daily)")
	runOnce  = flag.Bool("run-once", false, "Run the export once and exit")
	customer = flag.String("customer", "", "Export a single customer (implies --run-once)")
	timeout  = flag.Duration("timeout", 30*time.Minute, "Timeout for one batch run")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	exporterCfg := cfg.ExporterConfig()
	var customers []string
	upload := cfg.Storage.S3Bucket != "" || cfg.Storage.ArtifactRoot != ""

	if *planPath != "" {
		plan, err := export.LoadPlan(*planPath)
		if err != nil {
			log.Fatalf("Failed to load export plan: %v", err)
		}
		exporterCfg = plan.Apply(exporterCfg)
		customers = plan.Customers
		upload = plan.Upload
		if plan.Schedule != "" {
			*schedule = plan.Schedule
		}
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open areapoint store: %v", err)
	}
	defer store.Close()

	var artifacts storage.ArtifactStore
	if upload {
		artifacts, err = openArtifacts(cfg)
		if err != nil {
			log.Fatalf("Failed to open artifact store: %v", err)
		}
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, nil)
	cache := export.NewGeometryCache(cfg.Export.CacheSize, cfg.Export.CacheTTL)
	exporter := export.NewExporter(store, artifacts, cache, nil, logger, exporterCfg)

	// Run once mode (for testing or manual exports)
	if *runOnce || *customer != "" {
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		defer cancel()

		if *customer != "" {
			result, err := exporter.ExportCustomer(ctx, *customer)
			if err != nil {
				log.Fatalf("Export failed: %v", err)
			}
			log.Printf("Exported %d zones for %s to %s", result.Zones, result.CustomerID, result.FileSet.Dir)
			return
		}

		results, err := exporter.ExportAll(ctx, customers)
		if err != nil {
			log.Fatalf("Batch export failed after %d customers: %v", len(results), err)
		}
		log.Printf("Batch export completed: %d customers", len(results))
		return
	}

	// Scheduled mode
	c := cron.New()

	_, err = c.AddFunc(*schedule, func() {
		log.Println("Starting scheduled batch export")

		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		defer cancel()

		results, err := exporter.ExportAll(ctx, customers)
		if err != nil {
			log.Printf("Batch export failed: %v", err)
		}
		log.Printf("Batch export finished: %d customers exported", len(results))
	})
	if err != nil {
		log.Fatalf("Failed to schedule batch export: %v", err)
	}

	c.Start()
	log.Println("Export scheduler started")
	log.Printf("Batch export schedule: %s", *schedule)

	// Wait for termination signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutting down gracefully...")

	ctx := c.Stop()
	<-ctx.Done()

	log.Println("Export scheduler stopped")
}

func openStore(cfg *config.Config) (storage.AreaPointStore, error) {
	switch cfg.Storage.Type {
	case "postgres":
		return postgres.NewStore(cfg.Storage)
	default:
		return storage.NewSQLiteStore(cfg.Storage.SQLitePath)
	}
}

func openArtifacts(cfg *config.Config) (storage.ArtifactStore, error) {
	if cfg.Storage.S3Bucket != "" {
		return storage.NewS3ArtifactStore(cfg.Storage)
	}
	return storage.NewFilesystemArtifactStore(cfg.Storage.ArtifactRoot)
}
