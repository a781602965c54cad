package iogame

import (
	"github.com/leafdex/leafdex/pkg/schema"
	"gorm.io/gorm"
)

// hasNearbyClaim reports whether the user already has a discovery of
// this species within the geofence tolerance of the submitted
// coordinate. The square tolerance window matches the bucket grid on
// the (user, species, geo bucket) unique index, which backstops this
// read against concurrent submissions.
func hasNearbyClaim(
	tx *gorm.DB,
	userID, speciesID string,
	lat, lon, tolerance float64,
) (bool, error) {
	var n int64
	err := tx.Model(&schema.Discovery{}).
		Where("user_id = ? AND species_id = ?", userID, speciesID).
		Where("latitude BETWEEN ? AND ?", lat-tolerance, lat+tolerance).
		Where("longitude BETWEEN ? AND ?", lon-tolerance, lon+tolerance).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
