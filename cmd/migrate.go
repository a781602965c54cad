package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/leafdex/leafdex/internal/iodb"
	"github.com/leafdex/leafdex/internal/ioschema"
	"github.com/spf13/cobra"
)

// getMigrateCmd returns the migrate command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getMigrateCmd() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Long: `Create or update the Leafdex database schema.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Creates missing tables and indexes using GORM AutoMigrate

Migration is additive: existing tables and data are preserved.

Examples:
  leafdex migrate`,
		RunE: runMigrate,
	}

	return migrateCmd
}

func runMigrate(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: %s@%s:%d/%s",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	mgr := ioschema.NewManager(op)
	if err := mgr.Migrate(ctx); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("<em>Database schema is up to date</em>")
	return nil
}
