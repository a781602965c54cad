package iogame

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/leafdex/leafdex/internal/iodb"
	"github.com/leafdex/leafdex/internal/iotesting"
	"github.com/leafdex/leafdex/pkg/leafdex"
	"github.com/leafdex/leafdex/pkg/schema"
)

// Note: These are integration tests against a real PostgreSQL
// database. Skip with: go test -short
// Point them at a test database with LEAFDEX_TEST_DB, e.g.
// LEAFDEX_TEST_DB=leafdex_test

// fakeClassifier scripts judgments without a network round trip.
type fakeClassifier struct {
	judgment *leafdex.Judgment
	check    *leafdex.HealthCheck
}

func (f *fakeClassifier) Classify(
	ctx context.Context, image []byte, mimeType, loc string,
) (*leafdex.Judgment, error) {
	return f.judgment, nil
}

func (f *fakeClassifier) Checkup(
	ctx context.Context, image []byte, mimeType string,
	history []leafdex.CareEvent,
) (*leafdex.HealthCheck, error) {
	return f.check, nil
}

type fakeStore struct{}

func (fakeStore) Upload(
	ctx context.Context, image []byte, fileName, folder string,
) (string, error) {
	return "https://img.test/" + fileName, nil
}

func testGame(t *testing.T, clf leafdex.Classifier) leafdex.Game {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := iotesting.GetTestConfig()

	op := iodb.NewPgxOperator()
	if err := op.Connect(context.Background(), &cfg.Database); err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	t.Cleanup(func() { op.Close() })

	gormDB, err := iodb.OpenGorm(op)
	require.NoError(t, err)
	require.NoError(t, schema.Migrate(gormDB))

	g, err := New(cfg, op, clf, fakeStore{})
	require.NoError(t, err)
	return g
}

func TestDiscover_Integration(t *testing.T) {
	// unique per run so earlier runs never inflate the rarity counter
	species := "Integration Neem " + uuid.New().String()
	clf := &fakeClassifier{
		judgment: &leafdex.Judgment{
			IsPlant:        true,
			CommonName:     species,
			ScientificName: "Azadirachta indica A.Juss.",
			Confidence:     0.95,
			Rarity:         leafdex.RarityJudgment{Score: 2},
			Health: leafdex.HealthJudgment{
				Score:  90,
				Status: leafdex.StatusHealthy,
			},
			CareSchedule: []leafdex.CareTaskSpec{
				{
					TaskName:      "Water",
					Action:        "WATER",
					FrequencyDays: 3,
					XPReward:      10,
				},
			},
			ImageSource: leafdex.SourceConfidence{
				RealPlant:     0.99,
				ScreenOrPhoto: 0.01,
			},
		},
	}
	g := testGame(t, clf)
	ctx := context.Background()

	userID := "it-user-" + uuid.New().String()
	req := &leafdex.DiscoveryRequest{
		UserID:    userID,
		Email:     "it@example.org",
		Image:     []byte("jpeg"),
		MimeType:  "image/jpeg",
		Latitude:  22.2604,
		Longitude: 84.8536,
		Country:   "India",
		State:     "Odisha",
		District:  "Rourkela",
	}

	res, err := g.Discover(ctx, req)
	require.NoError(t, err)

	// first sighting in the region: 50 * max(1,2) * 5.0
	assert.Equal(t, 500, res.XPEarned)
	assert.NotEmpty(t, res.PlantID)
	assert.Equal(t, 1, len(res.Quests))

	// the same species at the same spot is a duplicate
	_, err = g.Discover(ctx, req)
	assert.ErrorIs(t, err, leafdex.ErrDuplicateDiscovery)

	// far enough away it counts again, now as an early sighting:
	// 50 * 2 * 2.0
	req2 := *req
	req2.Latitude += 0.01
	res2, err := g.Discover(ctx, &req2)
	require.NoError(t, err)
	assert.Equal(t, 200, res2.XPEarned)
	assert.Equal(t, res.NewTotalXP+200, res2.NewTotalXP)
}

func TestDiscoverRollback_Integration(t *testing.T) {
	// a care-task name longer than the column forces the insert to
	// fail after the discovery and plant rows are already written
	species := "Integration Baobab " + uuid.New().String()
	clf := &fakeClassifier{
		judgment: &leafdex.Judgment{
			IsPlant:        true,
			CommonName:     species,
			ScientificName: "Adansonia digitata L.",
			Confidence:     0.95,
			Rarity:         leafdex.RarityJudgment{Score: 2},
			Health: leafdex.HealthJudgment{
				Score:  90,
				Status: leafdex.StatusHealthy,
			},
			CareSchedule: []leafdex.CareTaskSpec{
				{
					TaskName:      strings.Repeat("w", 200),
					Action:        "WATER",
					FrequencyDays: 3,
					XPReward:      10,
				},
			},
			ImageSource: leafdex.SourceConfidence{
				RealPlant:     0.99,
				ScreenOrPhoto: 0.01,
			},
		},
	}
	g := testGame(t, clf)
	ctx := context.Background()

	userID := "it-user-" + uuid.New().String()
	_, err := g.Discover(ctx, &leafdex.DiscoveryRequest{
		UserID:    userID,
		Email:     "rollback@example.org",
		Image:     []byte("jpeg"),
		MimeType:  "image/jpeg",
		Latitude:  22.2604,
		Longitude: 84.8536,
		Country:   "India",
		State:     "Odisha",
		District:  "Rourkela",
	})
	require.Error(t, err)

	// nothing from the failed submission survives
	db := g.(*game).db
	speciesID := SpeciesID(species)

	var discoveries int64
	require.NoError(t, db.Model(&schema.Discovery{}).
		Where("user_id = ?", userID).
		Count(&discoveries).Error)
	assert.Equal(t, int64(0), discoveries)

	var plants int64
	require.NoError(t, db.Model(&schema.Plant{}).
		Where("species_id = ?", speciesID).
		Count(&plants).Error)
	assert.Equal(t, int64(0), plants)

	// the user row was synced before the transaction, but credits
	// nothing from it
	var user schema.User
	require.NoError(t, db.First(&user, "id = ?", userID).Error)
	assert.Equal(t, 0, user.XP)
	assert.Equal(t, 0, user.TotalDiscoveries)
}

func TestVerifyCare_Integration(t *testing.T) {
	clf := &fakeClassifier{
		judgment: &leafdex.Judgment{
			IsPlant:    true,
			CommonName: "Integration Tulsi " + uuid.New().String(),
			Confidence: 0.9,
			Rarity:     leafdex.RarityJudgment{Score: 1},
			Health: leafdex.HealthJudgment{
				Score:  80,
				Status: leafdex.StatusHealthy,
			},
			ImageSource: leafdex.SourceConfidence{
				RealPlant:     0.97,
				ScreenOrPhoto: 0.03,
			},
		},
		check: &leafdex.HealthCheck{
			ValidImage:  true,
			HealthScore: 65,
			Status:      leafdex.StatusWilted,
			Tip:         "less direct sun",
		},
	}
	g := testGame(t, clf)
	ctx := context.Background()

	userID := "it-user-" + uuid.New().String()
	disc, err := g.Discover(ctx, &leafdex.DiscoveryRequest{
		UserID:    userID,
		Email:     "care@example.org",
		Image:     []byte("jpeg"),
		MimeType:  "image/jpeg",
		Latitude:  20.27,
		Longitude: 85.84,
		Country:   "India",
		State:     "Odisha",
		District:  "Khordha",
	})
	require.NoError(t, err)

	// adopt, then verify care; the streak starts at 1
	_, err = g.Adopt(ctx, &leafdex.AdoptionRequest{
		UserID:  userID,
		PlantID: disc.PlantID,
	})
	require.NoError(t, err)

	res, err := g.VerifyCare(ctx, &leafdex.CareRequest{
		UserID:   userID,
		PlantID:  disc.PlantID,
		Image:    []byte("jpeg"),
		MimeType: "image/jpeg",
	})
	require.NoError(t, err)
	assert.Equal(t, leafdex.StatusWilted, res.HealthUpdate)
	assert.Equal(t, 20, res.XPGained)

	garden, err := g.Garden(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, 1, len(garden))
	assert.Equal(t, 65, garden[0].Health)
	assert.Equal(t, 1, garden[0].Streak)

	// adopting the same plant again conflicts
	_, err = g.Adopt(ctx, &leafdex.AdoptionRequest{
		UserID:  userID,
		PlantID: disc.PlantID,
	})
	assert.ErrorIs(t, err, leafdex.ErrAlreadyCaretaker)

	// a missing plant is reported as such
	_, err = g.VerifyCare(ctx, &leafdex.CareRequest{
		UserID:   userID,
		PlantID:  "00000000-0000-0000-0000-000000000000",
		Image:    []byte("jpeg"),
		MimeType: "image/jpeg",
	})
	assert.ErrorIs(t, err, leafdex.ErrPlantNotFound)
}
