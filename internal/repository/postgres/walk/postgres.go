package walk

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"dogwalk-app-go/internal/db"
	groupdomain "dogwalk-app-go/internal/domain/group"
	walkdomain "dogwalk-app-go/internal/domain/walk"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(walkdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GroupExists(ctx context.Context, groupID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&groupdomain.Group{}).Where("id = ?", groupID).Count(&count).Error; err != nil {
		if db.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) GetMembership(ctx context.Context, groupID, userID string) (*groupdomain.Membership, error) {
	var membership groupdomain.Membership
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		First(&membership).Error
	if db.IsNotFound(err) {
		return nil, groupdomain.ErrMembershipNotFound
	}
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

func (r *PostgresRepository) CreateWalk(ctx context.Context, walk *walkdomain.Walk) error {
	err := r.db.WithContext(ctx).Create(walk).Error
	if db.IsForeignKeyViolation(err) {
		return walkdomain.ErrGroupNotFound
	}
	if err != nil {
		return fmt.Errorf("create walk: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetWalk(ctx context.Context, walkID string) (*walkdomain.Walk, error) {
	var walk walkdomain.Walk
	if err := r.db.WithContext(ctx).Where("id = ?", walkID).First(&walk).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, walkdomain.ErrWalkNotFound
		}
		return nil, err
	}
	return &walk, nil
}

func (r *PostgresRepository) ListWalksByGroup(ctx context.Context, groupID string, filter walkdomain.ListFilter) ([]walkdomain.Walk, int64, error) {
	query := r.db.WithContext(ctx).Model(&walkdomain.Walk{}).Where("group_id = ?", groupID)
	if filter.From != nil {
		query = query.Where("starts_at >= ?", *filter.From)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("starts_at asc").Order("id asc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var walks []walkdomain.Walk
	if err := query.Find(&walks).Error; err != nil {
		return nil, 0, err
	}
	return walks, total, nil
}
