package iogame

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/leafdex/leafdex/pkg/leafdex"
	"github.com/leafdex/leafdex/pkg/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sync finds or creates the profile behind a trusted identity. A
// first submission from a verified token is an implicit sign-up; the
// reward engine never turns away an authenticated user for lacking a
// profile row.
func (g *game) Sync(
	ctx context.Context,
	id leafdex.Identity,
) (*schema.User, error) {
	var user schema.User
	err := g.db.WithContext(ctx).First(&user, "id = ?", id.UserID).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, UserSyncError(id.UserID, err)
	}

	// Usernames carry a random suffix so two first-timers sharing an
	// email prefix do not collide; on the rare collision anyway, the
	// conflict clause leaves the existing row alone and the re-read
	// returns it.
	user = schema.User{
		ID:       id.UserID,
		Email:    id.Email,
		Username: generateUsername(id),
	}
	err = g.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&user).Error
	if err != nil {
		return nil, UserSyncError(id.UserID, err)
	}
	err = g.db.WithContext(ctx).First(&user, "id = ?", id.UserID).Error
	if err != nil {
		return nil, UserSyncError(id.UserID, err)
	}
	return &user, nil
}

// Register creates a profile with a caller-chosen username.
func (g *game) Register(
	ctx context.Context,
	id leafdex.Identity,
	username string,
) (*schema.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		username = generateUsername(id)
	}

	var existing schema.User
	err := g.db.WithContext(ctx).First(&existing, "id = ?", id.UserID).Error
	if err == nil {
		return nil, fmt.Errorf("%w: %s", leafdex.ErrUserExists, id.UserID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, UserSyncError(id.UserID, err)
	}

	var n int64
	err = g.db.WithContext(ctx).Model(&schema.User{}).
		Where("username = ?", username).Count(&n).Error
	if err != nil {
		return nil, UserSyncError(id.UserID, err)
	}
	if n > 0 {
		return nil, fmt.Errorf("%w: %s", leafdex.ErrUsernameTaken, username)
	}

	user := schema.User{
		ID:       id.UserID,
		Email:    id.Email,
		Username: username,
	}
	if err = g.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, UserSyncError(id.UserID, err)
	}
	return &user, nil
}

// generateUsername builds a default username from the email's local
// part plus a 4-digit suffix; identities without an email fall back
// to a generic explorer handle.
func generateUsername(id leafdex.Identity) string {
	base := "explorer"
	if at := strings.Index(id.Email, "@"); at > 0 {
		base = sanitizeHandle(id.Email[:at])
	}
	return fmt.Sprintf("%s%04d", base, rand.Intn(10_000))
}

// sanitizeHandle keeps lowercase alphanumerics only.
func sanitizeHandle(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "explorer"
	}
	return b.String()
}
