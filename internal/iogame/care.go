package iogame

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/leafdex/leafdex/pkg/care"
	"github.com/leafdex/leafdex/pkg/leafdex"
	"github.com/leafdex/leafdex/pkg/reward"
	"github.com/leafdex/leafdex/pkg/schema"
	"github.com/leafdex/leafdex/pkg/streak"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// careHistoryLimit bounds the number of recent care events fed back
// to the classifier as checkup context.
const careHistoryLimit = 5

func (g *game) VerifyCare(
	ctx context.Context,
	req *leafdex.CareRequest,
) (*leafdex.CareResult, error) {
	var plant schema.Plant
	err := g.db.WithContext(ctx).First(&plant, "id = ?", req.PlantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", leafdex.ErrPlantNotFound, req.PlantID)
	}
	if err != nil {
		return nil, TxError("care lookup", err)
	}

	history, err := g.careHistory(ctx, req.PlantID)
	if err != nil {
		return nil, TxError("care history", err)
	}

	var (
		check    *leafdex.HealthCheck
		photoURL string
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var errChk error
		check, errChk = g.clf.Checkup(
			egCtx, req.Image, req.MimeType, history,
		)
		return errChk
	})
	eg.Go(func() error {
		name := fmt.Sprintf("care_%s_%d", req.PlantID,
			time.Now().UnixNano())
		var errUp error
		photoURL, errUp = g.store.Upload(
			egCtx, req.Image, name, g.cfg.Storage.Folder,
		)
		return errUp
	})
	if err = eg.Wait(); err != nil {
		return nil, err
	}

	if !check.ValidImage {
		return nil, fmt.Errorf("%w: %s",
			leafdex.ErrInvalidCareImage, check.RejectionReason)
	}

	res := &leafdex.CareResult{
		HealthUpdate: check.Status,
		Tip:          check.Tip,
	}

	txCtx, cancel := context.WithTimeout(ctx, g.cfg.Game.TxTimeout())
	defer cancel()

	err = g.db.WithContext(txCtx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		plant.HealthScore = check.HealthScore
		if check.Status != "" {
			plant.Status = check.Status
		}
		if err := tx.Save(&plant).Error; err != nil {
			return err
		}

		// A missing task id is not an error: the event downgrades to
		// a free-form check-in and still logs and grants XP.
		action := leafdex.ActionDailyCheckin
		xp := reward.CheckinXP
		if req.TaskID != "" {
			var task schema.CareTask
			err := tx.First(
				&task, "id = ? AND plant_id = ?", req.TaskID, plant.ID,
			).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				// skipped; check-in proceeds
			case err != nil:
				return err
			default:
				task = care.Complete(task, now)
				if err = tx.Save(&task).Error; err != nil {
					return err
				}
				action = leafdex.ActionTaskComplete
				xp = reward.TaskCompleteXP
			}
		}

		log := schema.CareLog{
			ID:       uuid.New().String(),
			UserID:   req.UserID,
			PlantID:  plant.ID,
			Action:   action,
			PhotoURL: photoURL,
		}
		if err := tx.Create(&log).Error; err != nil {
			return err
		}

		var u schema.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&u, "id = ?", req.UserID).Error
		if err != nil {
			return err
		}
		u.XP += xp
		u.Level = reward.LevelFor(u.XP)
		if err = tx.Save(&u).Error; err != nil {
			return err
		}

		// Caring without an adoption relationship still logs and
		// earns, but builds no streak.
		var link schema.CaretakerLink
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND plant_id = ?", req.UserID, plant.ID).
			First(&link).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			res.XPGained = xp
			return nil
		}
		if err != nil {
			return err
		}

		next := streakAdvance(&link, now, g.loc)
		link.CurrentStreak = next.Current
		link.LongestStreak = next.Longest
		link.LastLogDate = next.LastLogDate
		link.PointsEarned += reward.CaretakerPoints
		if err = tx.Save(&link).Error; err != nil {
			return err
		}

		res.XPGained = xp
		return nil
	})
	if err != nil {
		if isPolicyOutcome(err) {
			return nil, err
		}
		return nil, TxError("care verification", err)
	}

	return res, nil
}

func streakAdvance(
	link *schema.CaretakerLink,
	now time.Time,
	loc *time.Location,
) streak.State {
	return streak.Advance(streak.State{
		Current:     link.CurrentStreak,
		Longest:     link.LongestStreak,
		LastLogDate: link.LastLogDate,
	}, now, loc)
}

// careHistory loads the most recent care events for a plant, newest
// first, as classifier context.
func (g *game) careHistory(
	ctx context.Context,
	plantID string,
) ([]leafdex.CareEvent, error) {
	var logs []schema.CareLog
	err := g.db.WithContext(ctx).
		Where("plant_id = ?", plantID).
		Order("created_at DESC").
		Limit(careHistoryLimit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	events := make([]leafdex.CareEvent, len(logs))
	for i, l := range logs {
		events[i] = leafdex.CareEvent{
			Action: l.Action,
			When:   l.CreatedAt.Format(time.RFC3339),
		}
	}
	return events, nil
}
