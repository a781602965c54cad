// Package schema provides the persistent data model of Leafdex.
// Models are plain GORM structs; defensive unique indexes back the
// invariants that transaction scoping alone cannot guarantee.
package schema

import (
	"time"
)

// User is a player profile. XP is cumulative and non-decreasing;
// Level is derived from XP and recomputed on every award.
type User struct {
	// ID is the opaque identifier issued by the auth collaborator.
	ID string `gorm:"primaryKey;size:128" json:"id"`

	Email    string `gorm:"size:255" json:"email"`
	Username string `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Name     string `gorm:"size:128" json:"name"`
	PhotoURL string `gorm:"size:512" json:"photo_url"`

	XP               int `gorm:"not null;default:0" json:"xp"`
	Level            int `gorm:"not null;default:1" json:"level"`
	TotalDiscoveries int `gorm:"not null;default:0" json:"total_discoveries"`

	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

// Region is a normalized geographic bucket used to scope rarity.
// Regions are created lazily on first discovery and never deleted.
type Region struct {
	// ID is derived from country+state+district text,
	// e.g. "IND_ODI_ROURKELA".
	ID string `gorm:"primaryKey;size:64" json:"id"`

	Country  string `gorm:"size:64" json:"country"`
	State    string `gorm:"size:64" json:"state"`
	District string `gorm:"size:64" json:"district"`

	CreatedAt time.Time `json:"created_at"`
}

// Species is the canonical record for one distinct common name.
// The ID is a UUID v5 of the lowercased common name, so the primary
// key doubles as a case-insensitive uniqueness constraint.
type Species struct {
	ID string `gorm:"primaryKey;type:uuid" json:"id"`

	Category       string `gorm:"size:32;not null;default:Plant" json:"category"`
	CommonName     string `gorm:"size:255;not null" json:"common_name"`
	ScientificName string `gorm:"size:255" json:"scientific_name"`

	// CanonicalName is the simple canonical form of the scientific
	// name as produced by gnparser; empty when parsing failed.
	CanonicalName string `gorm:"size:255" json:"canonical_name"`

	// ParseQuality: 0-no parse, 1-clear, 2-some problems, 3-big problems.
	ParseQuality int `gorm:"not null;default:0" json:"parse_quality"`

	Description string `gorm:"type:text" json:"description"`
	Verified    bool   `gorm:"not null;default:false" json:"verified"`

	CreatedAt time.Time `json:"created_at"`
}

// RegionalRarityCounter counts accepted discoveries of one species in
// one region. The count increases by exactly 1 per non-duplicate
// discovery and never decreases.
type RegionalRarityCounter struct {
	RegionID  string `gorm:"primaryKey;size:64" json:"region_id"`
	SpeciesID string `gorm:"primaryKey;type:uuid" json:"species_id"`

	DiscoveryCount int `gorm:"not null;default:0" json:"discovery_count"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Discovery is the immutable record of one accepted identification
// event. The (user, species, geo bucket) unique index is the
// store-level strengthening of the geofence duplicate check.
type Discovery struct {
	ID string `gorm:"primaryKey;type:uuid" json:"id"`

	UserID    string `gorm:"size:128;not null;index;uniqueIndex:ux_discovery_claim,priority:1" json:"user_id"`
	SpeciesID string `gorm:"type:uuid;not null;uniqueIndex:ux_discovery_claim,priority:2" json:"species_id"`

	// GeoBucket is the submission coordinate rounded to the geofence
	// tolerance grid.
	GeoBucket string `gorm:"size:48;not null;uniqueIndex:ux_discovery_claim,priority:3" json:"-"`

	RegionID  string  `gorm:"size:64;not null;index" json:"region_id"`
	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`

	ImageURL   string  `gorm:"size:512" json:"image_url"`
	Confidence float64 `gorm:"not null" json:"confidence"`

	// RarityMultiplier is the combined global*local multiplier frozen
	// at creation time.
	RarityMultiplier float64 `gorm:"not null" json:"rarity_multiplier"`

	Verified     bool      `gorm:"not null;default:true" json:"verified"`
	DiscoveredAt time.Time `gorm:"autoCreateTime;index" json:"discovered_at"`

	User    User    `gorm:"foreignKey:UserID" json:"user"`
	Species Species `gorm:"foreignKey:SpeciesID" json:"species"`
	Region  Region  `gorm:"foreignKey:RegionID" json:"region"`
	Plant   *Plant  `gorm:"foreignKey:DiscoveryID" json:"plant,omitempty"`
}

// Plant is the living instance created together with its Discovery.
// HealthScore and Status change with every care verification.
type Plant struct {
	ID string `gorm:"primaryKey;type:uuid" json:"id"`

	DiscoveryID string `gorm:"type:uuid;not null;uniqueIndex" json:"discovery_id"`
	SpeciesID   string `gorm:"type:uuid;not null;index" json:"species_id"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	HealthScore int    `gorm:"not null;default:100" json:"health_score"`
	Status      string `gorm:"size:16;not null;default:HEALTHY" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Species Species    `gorm:"foreignKey:SpeciesID" json:"species"`
	Tasks   []CareTask `gorm:"foreignKey:PlantID" json:"tasks,omitempty"`
}

// CareTask is a recurring chore attached to a plant. NextDueAt only
// moves forward: completion advances it by FrequencyDays from the
// completion time.
type CareTask struct {
	ID string `gorm:"primaryKey;type:uuid" json:"id"`

	PlantID string `gorm:"type:uuid;not null;index" json:"plant_id"`

	TaskName      string `gorm:"size:128;not null" json:"task_name"`
	Action        string `gorm:"size:32;not null" json:"action"`
	FrequencyDays int    `gorm:"not null;default:1" json:"frequency_days"`
	XPReward      int    `gorm:"not null;default:10" json:"xp_reward"`
	Instruction   string `gorm:"type:text" json:"instruction"`

	LastCompletedAt *time.Time `json:"last_completed_at"`
	NextDueAt       time.Time  `gorm:"not null;index" json:"next_due_at"`

	CreatedAt time.Time `json:"created_at"`
}

// CaretakerLink ties a user to a plant they look after and carries the
// caretaking streak. Invariants: LongestStreak >= CurrentStreak,
// CurrentStreak >= 0.
type CaretakerLink struct {
	UserID  string `gorm:"primaryKey;size:128" json:"user_id"`
	PlantID string `gorm:"primaryKey;type:uuid" json:"plant_id"`

	Role string `gorm:"size:32;not null;default:GUARDIAN" json:"role"`

	CurrentStreak int `gorm:"not null;default:0" json:"current_streak"`
	LongestStreak int `gorm:"not null;default:0" json:"longest_streak"`

	// LastLogDate is compared at calendar-day granularity in the
	// configured game timezone.
	LastLogDate *time.Time `json:"last_log_date"`

	PointsEarned int `gorm:"not null;default:0" json:"points_earned"`

	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`

	Plant Plant `gorm:"foreignKey:PlantID" json:"plant"`
}

// CareLog is the immutable audit record of one verification event.
type CareLog struct {
	ID string `gorm:"primaryKey;type:uuid" json:"id"`

	UserID  string `gorm:"size:128;not null;index" json:"user_id"`
	PlantID string `gorm:"type:uuid;not null;index" json:"plant_id"`

	Action           string `gorm:"size:32;not null" json:"action"`
	PhotoURL         string `gorm:"size:512" json:"photo_url"`
	LocationVerified bool   `gorm:"not null;default:false" json:"location_verified"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
