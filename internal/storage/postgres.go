package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/cityops/parkfee/pkg/pricing"
)

// PostgresStore persists runs in PostgreSQL, scenarios as a JSONB document.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens and pings a connection. DSN format:
// "host=... port=... user=... password=... dbname=... sslmode=..."
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Close closes the database connection.
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}

// EnsureSchema creates the runs table if it does not exist.
func (ps *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS optimization_runs (
		id BIGSERIAL PRIMARY KEY,
		seed BIGINT NOT NULL,
		population_size INT NOT NULL,
		generations INT NOT NULL,
		scenarios JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := ps.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveRun stores a completed result and returns its run id.
func (ps *PostgresStore) SaveRun(ctx context.Context, result *pricing.Result) (int64, error) {
	scenarios, err := json.Marshal(result.Scenarios)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal scenarios: %w", err)
	}

	query := `INSERT INTO optimization_runs (seed, population_size, generations, scenarios)
		VALUES ($1, $2, $3, $4) RETURNING id`

	var id int64
	err = ps.db.QueryRowContext(ctx, query,
		int64(result.Seed), result.PopulationSize, result.Generations, scenarios,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return id, nil
}

// GetRun loads a stored result by run id.
func (ps *PostgresStore) GetRun(ctx context.Context, id int64) (*pricing.Result, error) {
	query := `SELECT seed, population_size, generations, scenarios
		FROM optimization_runs WHERE id = $1`

	var (
		seed      int64
		result    pricing.Result
		scenarios []byte
	)
	err := ps.db.QueryRowContext(ctx, query, id).Scan(
		&seed, &result.PopulationSize, &result.Generations, &scenarios,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run %d: %w", id, err)
	}

	if err := json.Unmarshal(scenarios, &result.Scenarios); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenarios of run %d: %w", id, err)
	}
	result.Seed = uint64(seed)
	return &result, nil
}
