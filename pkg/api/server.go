package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dcahoon3/mbr-shapefile-generator/pkg/export"
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/httputil"
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/observability"
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/plugins"
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/storage"
)

// Server represents our API server
type Server struct {
	registry  *plugins.Registry
	store     storage.AreaPointStore
	artifacts storage.ArtifactStore
	exporter  *export.Exporter
	jobs      *export.JobManager
	health    *observability.HealthChecker
	metrics   *observability.Metrics
	log       *observability.Logger
	router    *mux.Router
}

// NewServer creates a new API server
func NewServer(registry *plugins.Registry, store storage.AreaPointStore, artifacts storage.ArtifactStore, exporter *export.Exporter, health *observability.HealthChecker, metrics *observability.Metrics, log *observability.Logger) *Server {
	if log == nil {
		log = observability.NewLogger(observability.InfoLevel, nil)
	}
	s := &Server{
		registry:  registry,
		store:     store,
		artifacts: artifacts,
		exporter:  exporter,
		jobs:      export.NewJobManager(),
		health:    health,
		metrics:   metrics,
		log:       log,
		router:    mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all the API routes
func (s *Server) setupRoutes() {
	// Plugin routes
	s.router.HandleFunc("/plugins", s.listPlugins).Methods("GET")
	s.router.HandleFunc("/plugins/validate", s.validateDescriptor).Methods("POST")
	s.router.HandleFunc("/plugins/{name}", s.getPlugin).Methods("GET")

	// Customer and export routes
	s.router.HandleFunc("/customers", s.listCustomers).Methods("GET")
	s.router.HandleFunc("/customers/{id}/exports", s.createExport).Methods("POST")
	s.router.HandleFunc("/exports", s.listExports).Methods("GET")
	s.router.HandleFunc("/exports/{jobId}", s.getExport).Methods("GET")
	s.router.HandleFunc("/exports/{jobId}/download", s.downloadExport).Methods("GET")

	// Probes and metrics
	if s.health != nil {
		s.router.HandleFunc("/healthz", s.health.Liveness).Methods("GET")
		s.router.HandleFunc("/readyz", s.health.Readiness).Methods("GET")
	}
	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler()).Methods("GET")
	}
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	wrapped := httputil.Chain(
		httputil.RecoveryMiddleware(s.log),
		httputil.LoggingMiddleware(s.log, s.metrics),
	)(s.router)
	return otelhttp.NewHandler(wrapped, "mbrshape-api")
}

// Router returns the bare mux router, used by tests.
func (s *Server) Router() *mux.Router {
	return s.router
}
