package dog

import (
	"context"

	"gorm.io/gorm"

	"dogwalk-app-go/internal/db"
	dogdomain "dogwalk-app-go/internal/domain/dog"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateDog(ctx context.Context, dog *dogdomain.Dog) error {
	return r.db.WithContext(ctx).Create(dog).Error
}

func (r *PostgresRepository) GetDog(ctx context.Context, dogID string) (*dogdomain.Dog, error) {
	var dog dogdomain.Dog
	if err := r.db.WithContext(ctx).Where("id = ?", dogID).First(&dog).Error; err != nil {
		if db.IsNotFound(err) {
			return nil, dogdomain.ErrDogNotFound
		}
		return nil, err
	}
	return &dog, nil
}

func (r *PostgresRepository) ListDogsByOwner(ctx context.Context, ownerID string) ([]dogdomain.Dog, error) {
	var dogs []dogdomain.Dog
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at asc").
		Find(&dogs).Error; err != nil {
		return nil, err
	}
	return dogs, nil
}

func (r *PostgresRepository) UpdateDog(ctx context.Context, dog *dogdomain.Dog) error {
	result := r.db.WithContext(ctx).Model(&dogdomain.Dog{}).
		Where("id = ?", dog.ID).
		Updates(map[string]interface{}{
			"name":       dog.Name,
			"breed":      dog.Breed,
			"birth_date": dog.BirthDate,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return dogdomain.ErrDogNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteDog(ctx context.Context, dogID string) error {
	result := r.db.WithContext(ctx).Delete(&dogdomain.Dog{}, "id = ?", dogID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return dogdomain.ErrDogNotFound
	}
	return nil
}
