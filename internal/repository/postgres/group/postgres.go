package group

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dogwalk-app-go/internal/db"
	groupdomain "dogwalk-app-go/internal/domain/group"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(groupdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) GetGroup(ctx context.Context, groupID string) (*groupdomain.Group, error) {
	var group groupdomain.Group
	if err := r.db.WithContext(ctx).Where("id = ?", groupID).First(&group).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, groupdomain.ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (r *PostgresRepository) ListGroups(ctx context.Context, filter groupdomain.ListFilter) ([]groupdomain.Group, int64, error) {
	query := r.db.WithContext(ctx).Model(&groupdomain.Group{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var groups []groupdomain.Group
	query = query.Order("created_at desc").Order("id asc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if err := query.Find(&groups).Error; err != nil {
		return nil, 0, err
	}
	return groups, total, nil
}

func (r *PostgresRepository) CreateGroup(ctx context.Context, group *groupdomain.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

// UpdateGroup writes name and description, then reloads the row so the
// caller sees the new updated_at.
func (r *PostgresRepository) UpdateGroup(ctx context.Context, group *groupdomain.Group) error {
	result := r.db.WithContext(ctx).Model(&groupdomain.Group{}).
		Where("id = ?", group.ID).
		Updates(map[string]interface{}{
			"name":        group.Name,
			"description": group.Description,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return groupdomain.ErrGroupNotFound
	}
	return r.db.WithContext(ctx).First(group, "id = ?", group.ID).Error
}

func (r *PostgresRepository) DeleteGroup(ctx context.Context, groupID string) error {
	result := r.db.WithContext(ctx).Delete(&groupdomain.Group{}, "id = ?", groupID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return groupdomain.ErrGroupNotFound
	}
	return nil
}

func (r *PostgresRepository) GetMembership(ctx context.Context, membershipID string) (*groupdomain.Membership, error) {
	return r.firstMembership(r.db.WithContext(ctx).Where("id = ?", membershipID))
}

func (r *PostgresRepository) GetMembershipForUpdate(ctx context.Context, membershipID string) (*groupdomain.Membership, error) {
	return r.firstMembership(r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", membershipID))
}

func (r *PostgresRepository) GetMembershipByUser(ctx context.Context, groupID, userID string) (*groupdomain.Membership, error) {
	return r.firstMembership(r.db.WithContext(ctx).Where("group_id = ? AND user_id = ?", groupID, userID))
}

func (r *PostgresRepository) firstMembership(query *gorm.DB) (*groupdomain.Membership, error) {
	var membership groupdomain.Membership
	if err := query.First(&membership).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, groupdomain.ErrMembershipNotFound
		}
		return nil, err
	}
	return &membership, nil
}

func (r *PostgresRepository) ListMemberships(ctx context.Context, groupID string, status *groupdomain.Status) ([]groupdomain.Membership, error) {
	query := r.db.WithContext(ctx).Where("group_id = ?", groupID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var memberships []groupdomain.Membership
	if err := query.Order("created_at asc").Order("id asc").Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *PostgresRepository) ListMembershipsByUser(ctx context.Context, userID string) ([]groupdomain.Membership, error) {
	var memberships []groupdomain.Membership
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *PostgresRepository) CreateMembership(ctx context.Context, membership *groupdomain.Membership) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(membership).Error
	switch {
	case err == nil:
		return nil
	case db.IsUniqueViolation(err):
		return groupdomain.ErrAlreadyMember
	case db.IsForeignKeyViolation(err):
		return groupdomain.ErrGroupNotFound
	default:
		return fmt.Errorf("create membership: %w", err)
	}
}

func (r *PostgresRepository) UpdateMembership(ctx context.Context, membership *groupdomain.Membership) error {
	result := r.db.WithContext(ctx).Model(&groupdomain.Membership{}).
		Where("id = ?", membership.ID).
		Updates(map[string]interface{}{
			"status": membership.Status,
			"role":   membership.Role,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return groupdomain.ErrMembershipNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteMembership(ctx context.Context, membershipID string) error {
	result := r.db.WithContext(ctx).Delete(&groupdomain.Membership{}, "id = ?", membershipID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return groupdomain.ErrMembershipNotFound
	}
	return nil
}
