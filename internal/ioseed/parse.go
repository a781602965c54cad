package ioseed

import (
	"context"
	"strings"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
	"github.com/leafdex/leafdex/internal/iogame"
	"github.com/leafdex/leafdex/pkg/schema"
	"golang.org/x/sync/errgroup"
)

// parseRecords converts catalog rows into species records, parsing
// scientific names concurrently. Each worker owns its gnparser
// instance; one parser is not safe for concurrent use.
func (s *seeder) parseRecords(
	ctx context.Context,
	records []catalogRecord,
) ([]schema.Species, error) {
	chIn := make(chan catalogRecord)
	chOut := make(chan schema.Species)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(chIn)
		for _, rec := range records {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case chIn <- rec:
			}
		}
		return nil
	})

	jobs := s.cfg.JobsNumber
	if jobs < 1 {
		jobs = 1
	}
	workers, ctx := errgroup.WithContext(ctx)
	for range jobs {
		workers.Go(func() error {
			pCfg := gnparser.NewConfig(gnparser.OptCode(nomcode.Botanical))
			parser := gnparser.New(pCfg)
			for rec := range chIn {
				sp := parseRecord(parser, rec)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case chOut <- sp:
				}
			}
			return nil
		})
	}
	go func() {
		_ = workers.Wait()
		close(chOut)
	}()

	// The map keyed by deterministic id drops duplicate common
	// names; the first parsed row for an id wins.
	seen := make(map[string]schema.Species, len(records))
	order := make([]string, 0, len(records))
	for sp := range chOut {
		if _, ok := seen[sp.ID]; ok {
			continue
		}
		seen[sp.ID] = sp
		order = append(order, sp.ID)
	}
	if err := workers.Wait(); err != nil {
		return nil, err
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	species := make([]schema.Species, len(order))
	for i, id := range order {
		species[i] = seen[id]
	}
	return species, nil
}

// parseRecord derives the species id from the common name and the
// canonical form from the scientific name.
func parseRecord(
	parser gnparser.GNparser,
	rec catalogRecord,
) schema.Species {
	sp := schema.Species{
		ID:          iogame.SpeciesID(rec.commonName),
		Category:    "Plant",
		CommonName:  strings.TrimSpace(rec.commonName),
		Description: rec.description.String,
		Verified:    true,
	}
	if rec.category.Valid && rec.category.String != "" {
		sp.Category = rec.category.String
	}

	name := strings.TrimSpace(rec.scientificName.String)
	if name == "" {
		return sp
	}
	sp.ScientificName = name

	parsed := parser.ParseName(name)
	sp.ParseQuality = parsed.ParseQuality
	if parsed.Parsed {
		sp.CanonicalName = parsed.Canonical.Simple
	}
	return sp
}
