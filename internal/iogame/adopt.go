package iogame

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/leafdex/leafdex/pkg/leafdex"
	"github.com/leafdex/leafdex/pkg/schema"
	"gorm.io/gorm"
)

// Adopt creates a caretaker link for an existing plant and seeds its
// care schedule. Tasks start due immediately so the new caretaker's
// first chore is available right away.
func (g *game) Adopt(
	ctx context.Context,
	req *leafdex.AdoptionRequest,
) (*schema.CaretakerLink, error) {
	var link schema.CaretakerLink

	txCtx, cancel := context.WithTimeout(ctx, g.cfg.Game.TxTimeout())
	defer cancel()

	err := g.db.WithContext(txCtx).Transaction(func(tx *gorm.DB) error {
		var plant schema.Plant
		err := tx.First(&plant, "id = ?", req.PlantID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s",
				leafdex.ErrPlantNotFound, req.PlantID)
		}
		if err != nil {
			return err
		}

		var existing schema.CaretakerLink
		err = tx.Where(
			"user_id = ? AND plant_id = ?", req.UserID, req.PlantID,
		).First(&existing).Error
		if err == nil {
			return fmt.Errorf("%w: plant %s",
				leafdex.ErrAlreadyCaretaker, req.PlantID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		link = schema.CaretakerLink{
			UserID:  req.UserID,
			PlantID: req.PlantID,
			Role:    "GUARDIAN",
		}
		if err = tx.Create(&link).Error; err != nil {
			return err
		}

		now := time.Now()
		for _, spec := range req.CareSchedule {
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
		return nil
	})
	if err != nil {
		if isPolicyOutcome(err) {
			return nil, err
		}
		return nil, TxError("adoption", err)
	}

	return &link, nil
}
