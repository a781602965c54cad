// Package ioschema implements database schema management. This is an
// impure I/O package that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"

	"github.com/leafdex/leafdex/internal/iodb"
	"github.com/leafdex/leafdex/pkg/db"
	"github.com/leafdex/leafdex/pkg/schema"
)

// Manager creates and updates the database schema.
// Schema management is idempotent - safe to run multiple times.
type Manager interface {
	// Migrate brings the schema up to date using GORM AutoMigrate.
	Migrate(ctx context.Context) error
}

type manager struct {
	operator db.Operator
}

// NewManager creates a new schema Manager on top of a connected
// operator.
func NewManager(op db.Operator) Manager {
	return &manager{operator: op}
}

func (m *manager) Migrate(ctx context.Context) error {
	gormDB, err := iodb.OpenGorm(m.operator)
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return MigrateSchemaError(err)
	}
	return nil
}
