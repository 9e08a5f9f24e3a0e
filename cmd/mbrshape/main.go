package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dcahoon3/mbr-shapefile-generator/pkg/api"
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/config"
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/export"
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/observability"
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/plugins"
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/storage"
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/storage/postgres"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		observability.NewLogger(observability.ErrorLevel, nil).Fatalf("failed to load configuration: %v", err)
	}

	log := observability.NewLogger(cfg.Observability.LogLevel, nil)
	log.Infof("Starting mbrshape server (storage: %s)", cfg.Storage.Type)

	ctx := context.Background()

	providers, err := observability.InitOTel(ctx, observability.OTelConfig{
		Enabled:        cfg.Observability.OTelEnabled,
		Endpoint:       cfg.Observability.OTelEndpoint,
		ServiceName:    cfg.Observability.OTelServiceName,
		ServiceVersion: cfg.Observability.OTelServiceVersion,
		Insecure:       cfg.Observability.OTelInsecure,
	}, log)
	if err != nil {
		log.Fatalf("failed to initialize OpenTelemetry: %v", err)
	}

	var metrics *observability.Metrics
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(nil)
	}

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("failed to open areapoint store: %v", err)
	}
	store = storage.NewInstrumentedStore(store, cfg.Storage.Type, metrics)
	defer store.Close()

	artifacts, err := openArtifacts(cfg)
	if err != nil {
		log.Fatalf("failed to open artifact store: %v", err)
	}

	// Plugin discovery
	registry := plugins.NewRegistry()
	if len(cfg.Plugins.Dirs) > 0 {
		pluginLog := logrus.New()
		loader := plugins.NewLoader(cfg.Plugins.Dirs, pluginLog)
		discovered, err := loader.DiscoverPlugins(ctx)
		if err != nil {
			log.Fatalf("plugin discovery failed: %v", err)
		}
		for _, p := range discovered {
			if err := registry.Register(p); err != nil {
				log.Warnf("failed to register plugin from %s: %v", p.Dir, err)
			}
		}
		log.Infof("Registered %d plugins from %d directories", registry.Count(), len(cfg.Plugins.Dirs))
		if metrics != nil {
			metrics.PluginsRegistered.Set(float64(registry.Count()))
		}
	}

	cache := export.NewGeometryCache(cfg.Export.CacheSize, cfg.Export.CacheTTL)
	exporter := export.NewExporter(store, artifacts, cache, metrics, log, cfg.ExporterConfig())

	health := observability.NewHealthChecker(cfg.Observability.OTelServiceVersion)
	health.AddDependency("store", store)

	server := api.NewServer(registry, store, artifacts, exporter, health, metrics, log)

	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Infof("Listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("server shutdown failed: %v", err)
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Errorf("tracer shutdown failed: %v", err)
	}
	log.Info("Server stopped")
}

// openStore picks the areapoint backend from configuration.
func openStore(cfg *config.Config) (storage.AreaPointStore, error) {
	switch cfg.Storage.Type {
	case "postgres":
		return postgres.NewStore(cfg.Storage)
	default:
		return storage.NewSQLiteStore(cfg.Storage.SQLitePath)
	}
}

// openArtifacts picks the archive backend. S3 when a bucket is configured,
// local filesystem otherwise.
func openArtifacts(cfg *config.Config) (storage.ArtifactStore, error) {
	if cfg.Storage.S3Bucket != "" {
		return storage.NewS3ArtifactStore(cfg.Storage)
	}
	return storage.NewFilesystemArtifactStore(cfg.Storage.ArtifactRoot)
}
