package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dcahoon3/mbr-shapefile-generator/pkg/storage"
	"github.com/dcahoon3/mbr-shapefile-generator/pkg/zone"
)

var tracer = otel.Tracer("github.com/dcahoon3/mbr-shapefile-generator/pkg/storage/postgres")

// Store reads the areapoint table from PostgreSQL, with an optional Redis
// row cache in front of it.
type Store struct {
	db     *sql.DB
	cache  *RowCache
	config storage.Config
}

// NewStore connects to PostgreSQL per config and wires the row cache when
// caching is enabled and a Redis URL is configured.
func NewStore(config storage.Config) (*Store, error) {
	db, err := sql.Open("postgres", config.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(config.PostgresMaxConns)
	db.SetMaxIdleConns(config.PostgresMinConns)
	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), config.PostgresTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	var cache *RowCache
	if config.CacheEnabled && config.RedisURL != "" {
		cache, err = NewRowCache(config)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create row cache: %w", err)
		}
	}

	return &Store{db: db, cache: cache, config: config}, nil
}

// NewStoreFromDB wraps an existing handle, primarily for tests.
func NewStoreFromDB(db *sql.DB, cache *RowCache) *Store {
	return &Store{db: db, cache: cache}
}

// ListCustomers returns the distinct customer ids in the areapoint table.
func (s *Store) ListCustomers(ctx context.Context) ([]string, error) {
	ctx, span := tracer.Start(ctx, "Store.ListCustomers")
	defer span.End()

	if s.cache != nil {
		if customers, err := s.cache.GetCustomers(ctx); err == nil && customers != nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return customers, nil
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT customerid FROM areapoint ORDER BY customerid`)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("customer row iteration failed: %w", err)
	}

	span.SetAttributes(attribute.Int("customers.count", len(customers)))

	if s.cache != nil {
		s.cache.SetCustomers(ctx, customers)
	}
	return customers, nil
}

// GetAreaPoints returns a customer's rows in builder order.
func (s *Store) GetAreaPoints(ctx context.Context, customerID string) ([]zone.AreaPoint, error) {
	ctx, span := tracer.Start(ctx, "Store.GetAreaPoints",
		trace.WithAttributes(attribute.String("customer.id", customerID)),
	)
	defer span.End()

	if s.cache != nil {
		if points, err := s.cache.GetAreaPoints(ctx, customerID); err == nil && points != nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return points, nil
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT customerid, zoneid, suffixid, areanumber, seqno, x, y
		 FROM areapoint
		 WHERE customerid = $1
		 ORDER BY zoneid, suffixid, areanumber, seqno`, customerID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, fmt.Errorf("failed to query areapoints: %w", err)
	}
	defer rows.Close()

	var points []zone.AreaPoint
	for rows.Next() {
		var p zone.AreaPoint
		var suffix sql.NullString
		if err := rows.Scan(&p.CustomerID, &p.ZoneID, &suffix, &p.AreaNumber, &p.SeqNo, &p.X, &p.Y); err != nil {
			return nil, fmt.Errorf("failed to scan areapoint: %w", err)
		}
		p.SuffixID = suffix.String
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("areapoint row iteration failed: %w", err)
	}

	span.SetAttributes(attribute.Int("areapoints.count", len(points)))

	if s.cache != nil {
		s.cache.SetAreaPoints(ctx, customerID, points)
	}
	return points, nil
}

// HealthCheck pings the database and, when wired, the cache.
func (s *Store) HealthCheck(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres unhealthy: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			return fmt.Errorf("redis unhealthy: %w", err)
		}
	}
	return nil
}

// DB exposes the underlying handle for the health endpoint's pool stats.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database and cache connections.
func (s *Store) Close() error {
	if s.cache != nil {
		s.cache.Close()
	}
	return s.db.Close()
}
