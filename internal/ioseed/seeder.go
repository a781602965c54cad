// Package ioseed imports a species catalog from an SQLite file into
// the PostgreSQL species table. The catalog gives a fresh deployment
// a verified species base so early discoveries resolve against known
// names instead of creating everything from classifier output.
package ioseed

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/leafdex/leafdex/pkg/config"
	"github.com/leafdex/leafdex/pkg/db"
)

// Seeder imports a species catalog.
type Seeder interface {
	// Seed reads the catalog at path and imports its species.
	// Already imported species are left untouched, so re-running
	// against the same catalog is safe.
	Seed(ctx context.Context, path string) error
}

type seeder struct {
	cfg *config.Config
	op  db.Operator
}

// New creates a Seeder over a connected database operator.
func New(cfg *config.Config, op db.Operator) Seeder {
	return &seeder{cfg: cfg, op: op}
}

func (s *seeder) Seed(ctx context.Context, path string) error {
	start := time.Now()
	slog.Info("Importing species catalog", "path", path)

	records, err := s.readCatalog(ctx, path)
	if err != nil {
		return err
	}
	slog.Info("Catalog loaded",
		"species", humanize.Comma(int64(len(records))),
	)

	species, err := s.parseRecords(ctx, records)
	if err != nil {
		return err
	}

	inserted, err := s.insertSpecies(ctx, species)
	if err != nil {
		return err
	}

	slog.Info("Species catalog imported",
		"inserted", humanize.Comma(int64(inserted)),
		"total", humanize.Comma(int64(len(species))),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}
