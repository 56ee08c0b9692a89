package keyword

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	keyworddomain "dogwalk-app-go/internal/domain/keyword"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(keyworddomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListKeywords(ctx context.Context, category *keyworddomain.Category) ([]keyworddomain.Keyword, error) {
	query := r.db.WithContext(ctx).Model(&keyworddomain.Keyword{})
	if category != nil {
		query = query.Where("category = ?", *category)
	}

	var keywords []keyworddomain.Keyword
	if err := query.Order("category asc").Order("name asc").Find(&keywords).Error; err != nil {
		return nil, err
	}
	return keywords, nil
}

func (r *PostgresRepository) GetKeywordsByNames(ctx context.Context, names []string) ([]keyworddomain.Keyword, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var keywords []keyworddomain.Keyword
	if err := r.db.WithContext(ctx).Where("name IN ?", names).Find(&keywords).Error; err != nil {
		return nil, err
	}
	return keywords, nil
}

func (r *PostgresRepository) UpsertKeywords(ctx context.Context, keywords []keyworddomain.Keyword) error {
	if len(keywords) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"category"}),
		}).
		Create(&keywords).Error
}

func (r *PostgresRepository) ListByRef(ctx context.Context, ref keyworddomain.Ref) ([]keyworddomain.Keyword, error) {
	var keywords []keyworddomain.Keyword
	err := r.db.WithContext(ctx).
		Table("keywords").
		Select("keywords.*").
		Joins("join keywordables on keywordables.keyword_id = keywords.id").
		Where("keywordables.keywordable_type = ? AND keywordables.keywordable_id = ?", ref.Kind, ref.ID).
		Order("keywordables.id asc").
		Scan(&keywords).Error
	if err != nil {
		return nil, err
	}
	return keywords, nil
}

func (r *PostgresRepository) HasAssociation(ctx context.Context, ref keyworddomain.Ref, keywordID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&keyworddomain.Keywordable{}).
		Where("keywordable_type = ? AND keywordable_id = ? AND keyword_id = ?", ref.Kind, ref.ID, keywordID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddAssociations skips rows that already exist so concurrent adds of the
// same keyword stay idempotent.
func (r *PostgresRepository) AddAssociations(ctx context.Context, links []keyworddomain.Keywordable) error {
	if len(links) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&links).Error
}

func (r *PostgresRepository) DeleteAssociation(ctx context.Context, ref keyworddomain.Ref, keywordID string) error {
	return r.db.WithContext(ctx).
		Where("keywordable_type = ? AND keywordable_id = ? AND keyword_id = ?", ref.Kind, ref.ID, keywordID).
		Delete(&keyworddomain.Keywordable{}).Error
}

func (r *PostgresRepository) DeleteAssociations(ctx context.Context, ref keyworddomain.Ref) error {
	return r.db.WithContext(ctx).
		Where("keywordable_type = ? AND keywordable_id = ?", ref.Kind, ref.ID).
		Delete(&keyworddomain.Keywordable{}).Error
}
