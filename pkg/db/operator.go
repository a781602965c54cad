// Package db defines the contract for basic database management
// operations. Implementations live in internal/iodb.
package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/leafdex/leafdex/pkg/config"
)

// Operator provides connection lifecycle management and exposes the
// pgxpool.Pool for components that need specialized SQL operations
// (bulk CopyFrom inserts during catalog seeding).
//
// Schema creation and migration are handled by GORM AutoMigrate via
// the schema manager; the pool covers everything GORM is a poor fit
// for.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// HasTables checks if the database has any tables in the public
	// schema.
	HasTables(ctx context.Context) (bool, error)
}
