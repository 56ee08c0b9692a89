package user

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dogwalk-app-go/internal/db"
	userdomain "dogwalk-app-go/internal/domain/user"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// UpsertProfile creates the profile on first sight and refreshes identity
// fields afterwards. The display name is owned by the user and never touched.
func (r *PostgresRepository) UpsertProfile(ctx context.Context, profile *userdomain.Profile) error {
	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if profile.Email != nil {
		updates["email"] = profile.Email
	}
	if profile.AvatarURL != nil {
		updates["avatar_url"] = profile.AvatarURL
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(updates),
		}).
		Create(profile).Error
}

func (r *PostgresRepository) GetProfile(ctx context.Context, userID string) (*userdomain.Profile, error) {
	var profile userdomain.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, userdomain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *PostgresRepository) UpdateDisplayName(ctx context.Context, userID string, displayName *string) error {
	result := r.db.WithContext(ctx).Model(&userdomain.Profile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"display_name": displayName,
			"updated_at":   time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return userdomain.ErrProfileNotFound
	}
	return nil
}
