// Package storage provides the areapoint data sources and artifact stores
// behind the export pipeline.
//
// # Overview
//
// AreaPointStore reads routing-zone vertex rows from the areapoint table.
// Two backends exist: SQLite for single-file deployments and PostgreSQL
// (pkg/storage/postgres) with an optional Redis row cache for service
// deployments.
//
// ArtifactStore persists the generated shapefile archives: on local disk
// or in S3/MinIO, each upload returning the archive's sha256 checksum.
//
// # Backend selection
//
//	cfg := storage.DefaultConfig()      // sqlite by default
//	cfg.Type = "postgres"
//	cfg.PostgresURL = "postgres://localhost/mbr?sslmode=disable"
//
// # Related Packages
//
//   - pkg/storage/postgres: PostgreSQL + Redis implementation
//   - pkg/export: consumes both interfaces
package storage
