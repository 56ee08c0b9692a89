package match

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dogwalk-app-go/internal/db"
	matchdomain "dogwalk-app-go/internal/domain/match"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) UpsertMatch(ctx context.Context, match *matchdomain.UserMatch) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "target_user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"action":     match.Action,
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(match).Error
}

func (r *PostgresRepository) GetMatch(ctx context.Context, userID, targetUserID string) (*matchdomain.UserMatch, error) {
	var match matchdomain.UserMatch
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND target_user_id = ?", userID, targetUserID).
		First(&match).Error
	if db.IsNotFound(err) {
		return nil, matchdomain.ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	return &match, nil
}

// ListMutual returns users that liked userID back, newest reciprocation first.
func (r *PostgresRepository) ListMutual(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Table("user_matches AS mine").
		Joins("join user_matches AS theirs on theirs.user_id = mine.target_user_id AND theirs.target_user_id = mine.user_id").
		Where("mine.user_id = ? AND mine.action = ? AND theirs.action = ?", userID, matchdomain.ActionLike, matchdomain.ActionLike).
		Order("GREATEST(mine.updated_at, theirs.updated_at) desc").
		Pluck("mine.target_user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
