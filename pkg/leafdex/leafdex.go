// Package leafdex defines the contracts and domain types of the
// Leafdex reward engine. External collaborators (classifier, image
// store, token verifier) and the transaction coordinator are expressed
// as interfaces here; impure implementations live in internal/io*.
package leafdex

import (
	"context"

	"github.com/leafdex/leafdex/pkg/schema"
)

// Identity is the trusted result of bearer-token verification.
// The core trusts UserID completely; Email is optional and only used
// to bootstrap a profile for first-time users.
type Identity struct {
	UserID string
	Email  string
}

// TokenVerifier validates a bearer credential with the external auth
// collaborator and returns the trusted identity behind it.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// CareEvent is a compact view of a past care action, fed back to the
// classifier as context for health checkups.
type CareEvent struct {
	Action string `json:"action"`
	When   string `json:"when"`
}

// Classifier consumes an image and returns a structured judgment.
// It is a black box; the core only validates and applies its output.
type Classifier interface {
	// Classify identifies a plant on a discovery photo.
	Classify(
		ctx context.Context,
		image []byte,
		mimeType, locationContext string,
	) (*Judgment, error)

	// Checkup assesses plant health on a care-verification photo.
	// History provides recent care actions as context.
	Checkup(
		ctx context.Context,
		image []byte,
		mimeType string,
		history []CareEvent,
	) (*HealthCheck, error)
}

// ImageStore persists image bytes in durable object storage and
// returns a stable URL. Uploads are never rolled back; an orphaned
// image after an aborted transaction is an accepted inconsistency.
type ImageStore interface {
	Upload(
		ctx context.Context,
		image []byte,
		fileName, folder string,
	) (string, error)
}

// DiscoveryRequest carries one discovery submission after input
// validation at the HTTP boundary.
type DiscoveryRequest struct {
	UserID    string
	Email     string
	Image     []byte
	MimeType  string
	Latitude  float64
	Longitude float64
	Country   string
	State     string
	District  string
}

// DiscoveryResult is the committed outcome of a discovery submission.
type DiscoveryResult struct {
	ImageURL   string         `json:"image_url"`
	Judgment   *Judgment      `json:"plant_data"`
	XPEarned   int            `json:"xp_earned"`
	NewTotalXP int            `json:"new_total_xp"`
	Level      int            `json:"level"`
	PlantID    string         `json:"plant_id"`
	Quests     []CareTaskSpec `json:"quests"`
}

// CareRequest carries one care-verification submission.
// TaskID is optional; an empty value means a free-form check-in.
type CareRequest struct {
	UserID   string
	PlantID  string
	TaskID   string
	Image    []byte
	MimeType string
}

// CareResult is the committed outcome of a care verification.
type CareResult struct {
	HealthUpdate string `json:"health_update"`
	Tip          string `json:"tip"`
	XPGained     int    `json:"xp_gained"`
}

// AdoptionRequest creates a caretaker relationship for an existing
// plant together with its care schedule.
type AdoptionRequest struct {
	UserID       string
	PlantID      string
	CareSchedule []CareTaskSpec
}

// Coordinator orchestrates the discovery and care-verification
// transactions. Each call is one atomic unit against the store;
// any failure after the transaction begins rolls everything back.
type Coordinator interface {
	// Discover applies a classifier judgment as one atomic set of
	// state changes: region, species, rarity counter, discovery,
	// plant, care tasks and user XP/level.
	Discover(ctx context.Context, req *DiscoveryRequest) (*DiscoveryResult, error)

	// VerifyCare applies a health checkup: plant health, task
	// rescheduling, care log, XP and (when a caretaker link exists)
	// streak continuity, in one transaction.
	VerifyCare(ctx context.Context, req *CareRequest) (*CareResult, error)

	// Adopt creates a caretaker link and its care schedule.
	Adopt(ctx context.Context, req *AdoptionRequest) (*schema.CaretakerLink, error)
}

// Profiles manages user records keyed by the trusted auth identity.
type Profiles interface {
	// Sync finds or creates the profile for an authenticated
	// identity (implicit sign-up).
	Sync(ctx context.Context, id Identity) (*schema.User, error)

	// Register creates a profile with an explicit username.
	Register(ctx context.Context, id Identity, username string) (*schema.User, error)
}

// GardenEntry is one adopted plant in a caretaker's garden view.
type GardenEntry struct {
	PlantID  string            `json:"plant_id"`
	Name     string            `json:"name"`
	Health   int               `json:"health"`
	Streak   int               `json:"streak"`
	TasksDue []schema.CareTask `json:"tasks_due"`
}

// LeaderboardEntry is one row of the XP leaderboard.
type LeaderboardEntry struct {
	Username         string `json:"username"`
	PhotoURL         string `json:"photo_url"`
	XP               int    `json:"xp"`
	Level            int    `json:"level"`
	TotalDiscoveries int    `json:"total_discoveries"`
}

// FeedItem is one row of the global discovery feed.
type FeedItem struct {
	ID             string  `json:"id"`
	Username       string  `json:"username"`
	UserPhotoURL   string  `json:"user_photo_url"`
	UserLevel      int     `json:"user_level"`
	CommonName     string  `json:"common_name"`
	ScientificName string  `json:"scientific_name"`
	District       string  `json:"district"`
	State          string  `json:"state"`
	ImageURL       string  `json:"image_url"`
	Multiplier     float64 `json:"rarity_multiplier"`
	DiscoveredAt   string  `json:"discovered_at"`
}

// Feed is a page of the global discovery feed.
type Feed struct {
	Items      []FeedItem `json:"data"`
	Page       int        `json:"current_page"`
	TotalPages int        `json:"total_pages"`
	TotalItems int64      `json:"total_items"`
}

// Game is the full reward-engine surface served over HTTP.
type Game interface {
	Coordinator
	Profiles
	Views
}

// Views exposes derived read models. They are plain queries; their
// correctness under concurrent submissions comes from the store's
// isolation, not from any in-process state.
type Views interface {
	Garden(ctx context.Context, userID string) ([]GardenEntry, error)
	Leaderboard(ctx context.Context) ([]LeaderboardEntry, error)
	Discoveries(ctx context.Context, page, limit int) (*Feed, error)
	UserDiscoveries(ctx context.Context, userID string) ([]schema.Discovery, error)
}
