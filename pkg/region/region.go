// Package region derives normalized geographic bucket identifiers
// from free-text country/state/district input.
package region

import (
	"fmt"
	"math"
	"strings"
)

const (
	// prefixLen bounds the country and state components.
	prefixLen = 3
	// districtLen bounds the district component.
	districtLen = 24
)

// ID returns the deterministic region identifier for a location,
// e.g. ("India", "Odisha", "Rourkela") -> "IND_ODI_ROURKELA".
// Empty components collapse to fixed placeholders so the id is always
// well formed.
func ID(country, state, district string) string {
	c := clean(country, prefixLen)
	if c == "" {
		c = "UNK"
	}
	s := clean(state, prefixLen)
	if s == "" {
		s = "UNK"
	}
	d := clean(district, districtLen)
	if d == "" {
		d = "UNKNOWN"
	}
	return fmt.Sprintf("%s_%s_%s", c, s, d)
}

// clean uppercases, strips non-alphanumerics and bounds the length.
func clean(s string, maxLen int) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
		if b.Len() == maxLen {
			break
		}
	}
	return b.String()
}

// GeoBucket snaps a coordinate to the geofence tolerance grid. Two
// submissions inside the same bucket collide on the defensive unique
// index over (user, species, bucket).
func GeoBucket(lat, lon, tolerance float64) string {
	if tolerance <= 0 {
		tolerance = 0.0002
	}
	return fmt.Sprintf("%d:%d",
		int64(math.Round(lat/tolerance)),
		int64(math.Round(lon/tolerance)),
	)
}
