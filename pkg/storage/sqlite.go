package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/dcahoon3/mbr-shapefile-generator/pkg/zone"
)

// SQLiteStore reads the areapoint table from a local SQLite database,
// for single-file deployments where the routing data ships as a .db file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// NewSQLiteStoreFromDB wraps an existing handle; the caller keeps ownership
// for in-memory databases shared with test fixtures.
func NewSQLiteStoreFromDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// ListCustomers returns the distinct customer ids in the areapoint table.
func (s *SQLiteStore) ListCustomers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT customerid FROM areapoint ORDER BY customerid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	return scanCustomers(rows)
}

// GetAreaPoints returns a customer's rows in builder order.
func (s *SQLiteStore) GetAreaPoints(ctx context.Context, customerID string) ([]zone.AreaPoint, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT customerid, zoneid, suffixid, areanumber, seqno, x, y
		 FROM areapoint
		 WHERE customerid = ?
		 ORDER BY zoneid, suffixid, areanumber, seqno`, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query areapoints: %w", err)
	}
	defer rows.Close()

	return scanAreaPoints(rows)
}

// HealthCheck pings the database.
func (s *SQLiteStore) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanCustomers(rows *sql.Rows) ([]string, error) {
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
	return customers, nil
}

func scanAreaPoints(rows *sql.Rows) ([]zone.AreaPoint, error) {
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
	return points, nil
}
