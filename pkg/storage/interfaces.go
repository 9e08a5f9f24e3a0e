package storage

import (
	"context"
	"io"
	"time"

	"github.com/dcahoon3/mbr-shapefile-generator/pkg/zone"
)

// AreaPointTable is the table every backend reads zone vertices from.
const AreaPointTable = "areapoint"

// AreaPointStore provides read access to the areapoint table.
type AreaPointStore interface {
	// ListCustomers returns the distinct customer ids present in the table.
	ListCustomers(ctx context.Context) ([]string, error)

	// GetAreaPoints returns a customer's rows ordered by zoneid, suffixid,
	// areanumber, seqno.
	GetAreaPoints(ctx context.Context, customerID string) ([]zone.AreaPoint, error)

	// HealthCheck verifies the backend is reachable.
	HealthCheck(ctx context.Context) error

	Close() error
}

// ArtifactStore persists generated shapefile archives.
type ArtifactStore interface {
	// PutArchive stores an archive under key and returns its sha256 checksum.
	PutArchive(ctx context.Context, key string, data []byte) (string, error)

	// GetArchive retrieves a stored archive.
	GetArchive(ctx context.Context, key string) (io.ReadCloser, error)
}

// Config for storage backends.
type Config struct {
	Type string // "postgres" or "sqlite"

	// SQLite config
	SQLitePath string

	// PostgreSQL config
	PostgresURL      string
	PostgresMaxConns int
	PostgresMinConns int
	PostgresTimeout  time.Duration

	// Redis config (row cache in front of postgres)
	RedisURL        string
	RedisPassword   string
	RedisDB         int
	RedisMaxRetries int
	RedisPoolSize   int

	// S3 artifact store config
	S3Endpoint     string
	S3Region       string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string
	S3UsePathStyle bool

	// Filesystem artifact store config
	ArtifactRoot string

	// Cache config
	CacheEnabled bool
	CacheTTL     map[string]time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Type:             "sqlite",
		SQLitePath:       "mbr.db",
		PostgresMaxConns: 20,
		PostgresMinConns: 2,
		PostgresTimeout:  10 * time.Second,
		RedisDB:          0,
		RedisMaxRetries:  3,
		RedisPoolSize:    10,
		ArtifactRoot:     "/tmp/mbr-shapefiles",
		CacheEnabled:     true,
		CacheTTL: map[string]time.Duration{
			"areapoints": 15 * time.Minute,
			"customers":  5 * time.Minute,
		},
	}
}
