package dog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) CreateDog(ctx context.Context, input CreateDogInput) (*Dog, error) {
	if input.OwnerID == "" {
		return nil, ErrOwnerRequired
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if err := s.validateBirthDate(input.BirthDate); err != nil {
		return nil, err
	}

	dog := Dog{
		ID:        uuid.NewString(),
		OwnerID:   input.OwnerID,
		Name:      name,
		Breed:     normalizeOptional(input.Breed),
		BirthDate: input.BirthDate,
	}
	if err := s.repo.CreateDog(ctx, &dog); err != nil {
		return nil, err
	}
	return &dog, nil
}

func (s *Service) GetDog(ctx context.Context, dogID string) (*Dog, error) {
	return s.repo.GetDog(ctx, dogID)
}

func (s *Service) ListDogs(ctx context.Context, ownerID string) ([]Dog, error) {
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}
	return s.repo.ListDogsByOwner(ctx, ownerID)
}

func (s *Service) UpdateDog(ctx context.Context, input UpdateDogInput) (*Dog, error) {
	dog, err := s.ownedDog(ctx, input.OwnerID, input.DogID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		dog.Name = name
	}
	if input.Breed != nil {
		dog.Breed = normalizeOptional(input.Breed)
	}
	if input.BirthDate != nil {
		if err := s.validateBirthDate(input.BirthDate); err != nil {
			return nil, err
		}
		dog.BirthDate = input.BirthDate
	}

	if err := s.repo.UpdateDog(ctx, dog); err != nil {
		return nil, err
	}
	return dog, nil
}

func (s *Service) DeleteDog(ctx context.Context, ownerID, dogID string) error {
	if _, err := s.ownedDog(ctx, ownerID, dogID); err != nil {
		return err
	}
	return s.repo.DeleteDog(ctx, dogID)
}

func (s *Service) ownedDog(ctx context.Context, ownerID, dogID string) (*Dog, error) {
	dog, err := s.repo.GetDog(ctx, dogID)
	if err != nil {
		return nil, err
	}
	if dog.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return dog, nil
}

func (s *Service) validateBirthDate(value *time.Time) error {
	if value != nil && value.After(s.now()) {
		return ErrBirthInFuture
	}
	return nil
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
