package db

import (
	"context"

	"github.com/gnames/exiodb/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator defines basic database management operations. It owns the
// connection pool lifecycle and exposes the pool to the loader, the schema
// manager and the query service, which run their own SQL on it.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool. Components use it for
	// transactions and bulk inserts (CopyFrom).
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the public schema.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables in the public schema.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables in the public schema, including
	// per-region indicator tables.
	DropAllTables(ctx context.Context) error
}
