// Package api implements the HTTP API for the shapefile generator.
//
// # Overview
//
// The server exposes the plugin registry, descriptor validation, customer
// listing, and the export pipeline over a gorilla/mux router:
//
//	GET  /plugins                   list registered plugins
//	GET  /plugins/{name}            fetch one plugin
//	POST /plugins/validate          validate a raw metadata.txt body
//	GET  /customers                 list customers in the areapoint store
//	POST /customers/{id}/exports    start an asynchronous export job
//	GET  /exports                   list export jobs
//	GET  /exports/{jobId}           fetch one job
//	GET  /exports/{jobId}/download  stream a completed job's archive
//	GET  /healthz, /readyz          probes
//	GET  /metrics                   Prometheus metrics
//
// Handler wraps the router with recovery, request logging, and
// OpenTelemetry instrumentation.
package api
