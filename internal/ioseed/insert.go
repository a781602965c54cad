package ioseed

import (
	"context"
	"fmt"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/jackc/pgx/v5"
	"github.com/leafdex/leafdex/pkg/schema"
)

// speciesColumns is the column order for both insert paths.
var speciesColumns = []string{
	"id", "category", "common_name", "scientific_name",
	"canonical_name", "parse_quality", "description", "verified",
}

// insertSpecies writes species to PostgreSQL. An empty table takes
// the COPY fast path; a table with prior rows falls back to batched
// upserts so a re-run never disturbs existing records.
func (s *seeder) insertSpecies(
	ctx context.Context,
	species []schema.Species,
) (int, error) {
	pool := s.op.Pool()

	var existing int64
	err := pool.QueryRow(
		ctx, "SELECT count(*) FROM species",
	).Scan(&existing)
	if err != nil {
		return 0, InsertError(err)
	}

	if existing == 0 {
		return s.copySpecies(ctx, species)
	}
	return s.upsertSpecies(ctx, species)
}

func (s *seeder) copySpecies(
	ctx context.Context,
	species []schema.Species,
) (int, error) {
	rows := make([][]any, len(species))
	for i, sp := range species {
		rows[i] = []any{
			sp.ID, sp.Category, sp.CommonName, sp.ScientificName,
			sp.CanonicalName, sp.ParseQuality, sp.Description,
			sp.Verified,
		}
	}

	n, err := s.op.Pool().CopyFrom(
		ctx,
		pgx.Identifier{"species"},
		speciesColumns,
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, InsertError(err)
	}
	return int(n), nil
}

func (s *seeder) upsertSpecies(
	ctx context.Context,
	species []schema.Species,
) (int, error) {
	batchSize := s.cfg.Database.BatchSize
	if batchSize < 1 {
		batchSize = 1000
	}
	// PostgreSQL caps one statement at 65535 parameters.
	if lim := 65535 / len(speciesColumns); batchSize > lim {
		batchSize = lim
	}

	bar := pb.Full.Start(len(species))
	bar.Set("prefix", "Importing species: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	var total int
	for i := 0; i < len(species); i += batchSize {
		end := min(i+batchSize, len(species))
		batch := species[i:end]

		var values []string
		var args []any
		argIdx := 1
		for _, sp := range batch {
			ph := make([]string, len(speciesColumns))
			for j := range speciesColumns {
				ph[j] = fmt.Sprintf("$%d", argIdx)
				argIdx++
			}
			values = append(values,
				"("+strings.Join(ph, ", ")+")")
			args = append(args,
				sp.ID, sp.Category, sp.CommonName, sp.ScientificName,
				sp.CanonicalName, sp.ParseQuality, sp.Description,
				sp.Verified,
			)
		}

		q := fmt.Sprintf(
			`INSERT INTO species (%s) VALUES %s
			 ON CONFLICT (id) DO NOTHING`,
			strings.Join(speciesColumns, ", "),
			strings.Join(values, ", "),
		)
		res, err := s.op.Pool().Exec(ctx, q, args...)
		if err != nil {
			return 0, InsertError(err)
		}
		total += int(res.RowsAffected())
		bar.Add(len(batch))
	}
	return total, nil
}
