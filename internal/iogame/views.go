package iogame

import (
	"context"
	"time"

	"github.com/leafdex/leafdex/pkg/leafdex"
	"github.com/leafdex/leafdex/pkg/reward"
	"github.com/leafdex/leafdex/pkg/schema"
)

const (
	leaderboardSize = 10
	feedDefaultSize = 20
	feedMaxSize     = 100
)

// Garden lists the caller's adopted plants with currently due tasks.
func (g *game) Garden(
	ctx context.Context,
	userID string,
) ([]leafdex.GardenEntry, error) {
	var links []schema.CaretakerLink
	err := g.db.WithContext(ctx).
		Preload("Plant").
		Preload("Plant.Species").
		Where("user_id = ?", userID).
		Order("joined_at").
		Find(&links).Error
	if err != nil {
		return nil, TxError("garden view", err)
	}

	now := time.Now()
	entries := make([]leafdex.GardenEntry, 0, len(links))
	for _, l := range links {
		var due []schema.CareTask
		err = g.db.WithContext(ctx).
			Where("plant_id = ? AND next_due_at <= ?", l.PlantID, now).
			Order("next_due_at").
			Find(&due).Error
		if err != nil {
			return nil, TxError("garden view", err)
		}
		entries = append(entries, leafdex.GardenEntry{
			PlantID:  l.PlantID,
			Name:     l.Plant.Species.CommonName,
			Health:   l.Plant.HealthScore,
			Streak:   l.CurrentStreak,
			TasksDue: due,
		})
	}
	return entries, nil
}

// Leaderboard returns the top players by cumulative XP.
func (g *game) Leaderboard(
	ctx context.Context,
) ([]leafdex.LeaderboardEntry, error) {
	var users []schema.User
	err := g.db.WithContext(ctx).
		Order("xp DESC").
		Limit(leaderboardSize).
		Find(&users).Error
	if err != nil {
		return nil, TxError("leaderboard view", err)
	}

	entries := make([]leafdex.LeaderboardEntry, len(users))
	for i, u := range users {
		entries[i] = leafdex.LeaderboardEntry{
			Username:         u.Username,
			PhotoURL:         u.PhotoURL,
			XP:               u.XP,
			Level:            reward.LevelFor(u.XP),
			TotalDiscoveries: u.TotalDiscoveries,
		}
	}
	return entries, nil
}

// Discoveries returns one page of the global feed, newest first.
func (g *game) Discoveries(
	ctx context.Context,
	page, limit int,
) (*leafdex.Feed, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = feedDefaultSize
	}
	if limit > feedMaxSize {
		limit = feedMaxSize
	}

	var total int64
	err := g.db.WithContext(ctx).
		Model(&schema.Discovery{}).Count(&total).Error
	if err != nil {
		return nil, TxError("feed view", err)
	}

	var discs []schema.Discovery
	err = g.db.WithContext(ctx).
		Preload("User").
		Preload("Species").
		Preload("Region").
		Order("discovered_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&discs).Error
	if err != nil {
		return nil, TxError("feed view", err)
	}

	items := make([]leafdex.FeedItem, len(discs))
	for i, d := range discs {
		items[i] = leafdex.FeedItem{
			ID:             d.ID,
			Username:       d.User.Username,
			UserPhotoURL:   d.User.PhotoURL,
			UserLevel:      d.User.Level,
			CommonName:     d.Species.CommonName,
			ScientificName: d.Species.ScientificName,
			District:       d.Region.District,
			State:          d.Region.State,
			ImageURL:       d.ImageURL,
			Multiplier:     d.RarityMultiplier,
			DiscoveredAt:   d.DiscoveredAt.Format(time.RFC3339),
		}
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &leafdex.Feed{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
		TotalItems: total,
	}, nil
}

// UserDiscoveries lists one user's discoveries, newest first.
func (g *game) UserDiscoveries(
	ctx context.Context,
	userID string,
) ([]schema.Discovery, error) {
	var discs []schema.Discovery
	err := g.db.WithContext(ctx).
		Preload("Species").
		Preload("Region").
		Preload("Plant").
		Where("user_id = ?", userID).
		Order("discovered_at DESC").
		Find(&discs).Error
	if err != nil {
		return nil, TxError("user discoveries view", err)
	}
	return discs, nil
}
