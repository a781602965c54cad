package iogame

import (
	"errors"

	"github.com/leafdex/leafdex/pkg/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// bumpRarity increments the per-region discovery counter for a
// species and returns the count BEFORE the increment. The row is
// locked for the rest of the transaction, so concurrent discoveries
// of the same (region, species) serialize here and each one sees a
// distinct prior count.
func bumpRarity(tx *gorm.DB, regionID, speciesID string) (int, error) {
	var ctr schema.RegionalRarityCounter
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("region_id = ? AND species_id = ?", regionID, speciesID).
		First(&ctr).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		ctr = schema.RegionalRarityCounter{
			RegionID:       regionID,
			SpeciesID:      speciesID,
			DiscoveryCount: 1,
		}
		// A concurrent first sighting may land between the read and
		// this insert. When the insert loses that race, re-read under
		// lock and take the ordinary increment path.
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&ctr)
		if res.Error != nil {
			return 0, res.Error
		}
		if res.RowsAffected == 1 {
			return 0, nil
		}
		err = tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("region_id = ? AND species_id = ?", regionID, speciesID).
			First(&ctr).Error
	}
	if err != nil {
		return 0, err
	}

	prior := ctr.DiscoveryCount
	ctr.DiscoveryCount++
	return prior, tx.Save(&ctr).Error
}

// ensureRegion creates the region row on first sight. Regions are
// append-only reference data; existing rows are never touched.
func ensureRegion(tx *gorm.DB, r *schema.Region) error {
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(r).Error
}
