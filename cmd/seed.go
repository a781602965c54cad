package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/leafdex/leafdex/internal/iodb"
	"github.com/leafdex/leafdex/internal/ioseed"
	"github.com/spf13/cobra"
)

// getSeedCmd returns the seed command.
func getSeedCmd() *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed <catalog.sqlite>",
		Short: "Import a species catalog",
		Long: `Import a species catalog from an SQLite file.

The catalog needs a species table with common_name, scientific_name,
category and description columns. Scientific names are parsed into
canonical forms during import; imported species are marked verified.

Re-running against the same catalog is safe: species already in the
database are left untouched.

Examples:
  leafdex seed plants.sqlite`,
		Args: cobra.ExactArgs(1),
		RunE: runSeed,
	}

	return seedCmd
}

func runSeed(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	// Seeding needs the species table in place.
	exists, err := op.TableExists(ctx, "species")
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if !exists {
		gn.Warn("The species table does not exist yet.")
		gn.Warn("Run <em>leafdex migrate</em> first.")
		return nil
	}

	seeder := ioseed.New(cfg, op)
	if err := seeder.Seed(ctx, args[0]); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("<em>Species catalog imported</em>")
	return nil
}
