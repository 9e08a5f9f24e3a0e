// Package config provides application configuration management from environment variables.
//
// # Overview
//
// This package loads and validates configuration from environment variables
// with sensible defaults for all settings.
//
// Server settings:
//
//	MBRSHAPE_HOST="0.0.0.0"
//	MBRSHAPE_PORT="8080"
//	MBRSHAPE_READ_TIMEOUT="15s"
//	MBRSHAPE_WRITE_TIMEOUT="60s"
//
// Storage settings:
//
//	MBRSHAPE_STORAGE_TYPE="sqlite"  # sqlite, postgres
//	MBRSHAPE_SQLITE_PATH="mbr.db"
//	MBRSHAPE_POSTGRES_URL="postgres://localhost/mbr"
//	MBRSHAPE_REDIS_URL="redis://localhost:6379"
//	MBRSHAPE_S3_BUCKET="mbr-shapefiles"
//	MBRSHAPE_ARTIFACT_ROOT="/tmp/mbr-shapefiles"
//
// Export settings:
//
//	MBRSHAPE_OUTPUT_DIR="out"
//	MBRSHAPE_EXPORT_CONCURRENCY="4"
//	MBRSHAPE_GEOMETRY_CACHE_SIZE="64"
//	MBRSHAPE_GEOMETRY_CACHE_TTL="15m"
//
// Plugin settings:
//
//	MBRSHAPE_PLUGIN_DIRS="/var/qgis/plugins:/opt/plugins"
//
// Observability settings:
//
//	MBRSHAPE_LOG_LEVEL="info"  # debug, info, warn, error
//	MBRSHAPE_METRICS_ENABLED="true"
//	MBRSHAPE_OTEL_ENABLED="false"
//	MBRSHAPE_OTEL_ENDPOINT="otel-collector:4317"
package config
