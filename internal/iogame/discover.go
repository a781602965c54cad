package iogame

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/leafdex/leafdex/pkg/config"
	"github.com/leafdex/leafdex/pkg/leafdex"
	"github.com/leafdex/leafdex/pkg/region"
	"github.com/leafdex/leafdex/pkg/reward"
	"github.com/leafdex/leafdex/pkg/schema"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pgUniqueViolation is the PostgreSQL error code for a unique
// constraint violation.
const pgUniqueViolation = "23505"

func (g *game) Discover(
	ctx context.Context,
	req *leafdex.DiscoveryRequest,
) (*leafdex.DiscoveryResult, error) {
	user, err := g.Sync(ctx, leafdex.Identity{
		UserID: req.UserID,
		Email:  req.Email,
	})
	if err != nil {
		return nil, err
	}

	// Classification and upload run concurrently; neither holds
	// database locks. An uploaded image is orphaned when the
	// transaction later aborts, an accepted trade for latency.
	var (
		judgment *leafdex.Judgment
		imageURL string
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var errClf error
		judgment, errClf = g.clf.Classify(
			egCtx,
			req.Image,
			req.MimeType,
			locationContext(req),
		)
		return errClf
	})
	eg.Go(func() error {
		name := fmt.Sprintf("discovery_%s_%d", req.UserID,
			time.Now().UnixNano())
		var errUp error
		imageURL, errUp = g.store.Upload(
			egCtx, req.Image, name, g.cfg.Storage.Folder,
		)
		return errUp
	})
	if err = eg.Wait(); err != nil {
		return nil, err
	}

	if err = judgePolicy(judgment, &g.cfg.Classifier, &g.cfg.Game); err != nil {
		return nil, err
	}

	reg := &schema.Region{
		ID:       region.ID(req.Country, req.State, req.District),
		Country:  req.Country,
		State:    req.State,
		District: req.District,
	}

	res := &leafdex.DiscoveryResult{
		ImageURL: imageURL,
		Judgment: judgment,
		Quests:   judgment.CareSchedule,
	}

	txCtx, cancel := context.WithTimeout(ctx, g.cfg.Game.TxTimeout())
	defer cancel()

	err = g.db.WithContext(txCtx).Transaction(func(tx *gorm.DB) error {
		if err := ensureRegion(tx, reg); err != nil {
			return err
		}

		sp, err := g.resolveSpecies(tx, judgment)
		if err != nil {
			return err
		}

		dup, err := hasNearbyClaim(
			tx, user.ID, sp.ID,
			req.Latitude, req.Longitude,
			g.cfg.Game.GeofenceTolerance,
		)
		if err != nil {
			return err
		}
		if dup {
			return fmt.Errorf("%w: %s at %f,%f",
				leafdex.ErrDuplicateDiscovery,
				sp.CommonName, req.Latitude, req.Longitude)
		}

		prior, err := bumpRarity(tx, reg.ID, sp.ID)
		if err != nil {
			return err
		}

		xp, multiplier := reward.ComputeXP(judgment.Rarity.Score, prior)
		now := time.Now()

		disc := schema.Discovery{
			ID:        uuid.New().String(),
			UserID:    user.ID,
			SpeciesID: sp.ID,
			GeoBucket: region.GeoBucket(
				req.Latitude, req.Longitude,
				g.cfg.Game.GeofenceTolerance,
			),
			RegionID:         reg.ID,
			Latitude:         req.Latitude,
			Longitude:        req.Longitude,
			ImageURL:         imageURL,
			Confidence:       judgment.Confidence,
			RarityMultiplier: multiplier,
			Verified:         true,
		}
		if err = tx.Create(&disc).Error; err != nil {
			return err
		}

		score, status := plantHealth(judgment)
		plant := schema.Plant{
			ID:          uuid.New().String(),
			DiscoveryID: disc.ID,
			SpeciesID:   sp.ID,
			Latitude:    req.Latitude,
			Longitude:   req.Longitude,
			HealthScore: score,
			Status:      status,
		}
		if err = tx.Create(&plant).Error; err != nil {
			return err
		}

		for _, spec := range judgment.CareSchedule {
			task := schema.CareTask{
				ID:            uuid.New().String(),
				PlantID:       plant.ID,
				TaskName:      spec.TaskName,
				Action:        spec.Action,
				FrequencyDays: spec.FrequencyDays,
				XPReward:      spec.XPReward,
				Instruction:   spec.Instruction,
				NextDueAt:     now,
			}
			if err = tx.Create(&task).Error; err != nil {
				return err
			}
		}

		// Lock the profile row so concurrent awards to the same user
		// serialize and neither increment is lost.
		var u schema.User
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&u, "id = ?", user.ID).Error
		if err != nil {
			return err
		}
		u.XP += xp
		u.Level = reward.LevelFor(u.XP)
		u.TotalDiscoveries++
		if err = tx.Save(&u).Error; err != nil {
			return err
		}

		res.XPEarned = xp
		res.NewTotalXP = u.XP
		res.Level = u.Level
		res.PlantID = plant.ID
		return nil
	})
	if err != nil {
		if isPolicyOutcome(err) {
			return nil, err
		}
		// The unique index over (user, species, geo bucket) catches
		// duplicate submissions that raced past the geofence read.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("%w: concurrent submission",
				leafdex.ErrDuplicateDiscovery)
		}
		return nil, TxError("discovery", err)
	}

	return res, nil
}

// judgePolicy applies the acceptance rules to a validated judgment.
// Order matters: a non-plant verdict wins over low confidence.
func judgePolicy(
	j *leafdex.Judgment,
	clf *config.ClassifierConfig,
	game *config.GameConfig,
) error {
	if !j.IsPlant {
		return fmt.Errorf("%w: %s", leafdex.ErrNotAPlant, j.Description)
	}
	if j.ImageSource.ScreenOrPhoto >= game.ScreenThreshold {
		return fmt.Errorf("%w: screen confidence %.2f",
			leafdex.ErrScreenSuspected, j.ImageSource.ScreenOrPhoto)
	}
	if j.Confidence < clf.MinConfidence {
		return fmt.Errorf("%w: %.2f below %.2f",
			leafdex.ErrLowConfidence, j.Confidence, clf.MinConfidence)
	}
	return nil
}

// plantHealth derives the initial health record for a new plant. A
// zero score from the classifier is treated as missing and replaced
// with a perfect score, and a missing status defaults to healthy.
func plantHealth(j *leafdex.Judgment) (int, string) {
	score := j.Health.Score
	if score == 0 {
		score = 100
	}
	status := j.Health.Status
	if status == "" {
		status = leafdex.StatusHealthy
	}
	return score, status
}

// locationContext renders the submission's administrative location as
// a hint for the classifier's locality-aware rarity estimate.
func locationContext(req *leafdex.DiscoveryRequest) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{req.District, req.State, req.Country} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// isPolicyOutcome reports whether err is a user-actionable rejection
// rather than an infrastructure failure.
func isPolicyOutcome(err error) bool {
	for _, target := range []error{
		leafdex.ErrNotAPlant,
		leafdex.ErrLowConfidence,
		leafdex.ErrScreenSuspected,
		leafdex.ErrDuplicateDiscovery,
		leafdex.ErrInvalidCareImage,
		leafdex.ErrPlantNotFound,
		leafdex.ErrAlreadyCaretaker,
		leafdex.ErrUserExists,
		leafdex.ErrUsernameTaken,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
