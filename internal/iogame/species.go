package iogame

import (
	"errors"
	"strings"

	"github.com/gnames/gnuuid"
	"github.com/leafdex/leafdex/pkg/leafdex"
	"github.com/leafdex/leafdex/pkg/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SpeciesID derives the species primary key from a common name.
// UUID v5 over the lowercased name makes the key deterministic, so
// two racing creations of the same species collide on the primary key
// instead of producing twins.
func SpeciesID(commonName string) string {
	norm := strings.ToLower(strings.TrimSpace(commonName))
	return gnuuid.New(norm).String()
}

// resolveSpecies finds or creates the canonical species record for a
// judgment. The scientific name is parsed once at creation; the
// canonical simple form supports later lookups across spelling
// variants.
func (g *game) resolveSpecies(
	tx *gorm.DB,
	j *leafdex.Judgment,
) (*schema.Species, error) {
	id := SpeciesID(j.CommonName)

	var sp schema.Species
	err := tx.First(&sp, "id = ?", id).Error
	if err == nil {
		return &sp, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	canonical, quality := g.parseScientificName(j.ScientificName)
	sp = newSpeciesRecord(j, canonical, quality)

	// A concurrent discovery may have created the same species
	// between the read and this insert; the deterministic key turns
	// that race into a no-op.
	err = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&sp).Error
	if err != nil {
		return nil, err
	}
	if err = tx.First(&sp, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sp, nil
}

// newSpeciesRecord builds the canonical record for a judgment.
// Classifier-identified species are marked verified, the same as
// seeded catalog entries.
func newSpeciesRecord(
	j *leafdex.Judgment,
	canonical string,
	quality int,
) schema.Species {
	return schema.Species{
		ID:             SpeciesID(j.CommonName),
		Category:       "Plant",
		CommonName:     strings.TrimSpace(j.CommonName),
		ScientificName: strings.TrimSpace(j.ScientificName),
		CanonicalName:  canonical,
		ParseQuality:   quality,
		Description:    j.Description,
		Verified:       true,
	}
}

// parseScientificName extracts the simple canonical form with
// gnparser. An unparseable name keeps quality 0 and no canonical.
func (g *game) parseScientificName(name string) (string, int) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", 0
	}

	parser := <-g.parsers
	defer func() { g.parsers <- parser }()

	parsed := parser.ParseName(name)
	if !parsed.Parsed {
		return "", parsed.ParseQuality
	}
	return parsed.Canonical.Simple, parsed.ParseQuality
}
