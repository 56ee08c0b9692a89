package inmemory

import (
	"context"

	dogdomain "dogwalk-app-go/internal/domain/dog"
)

type DogRepository struct {
	store *Store
}

func (r *DogRepository) CreateDog(_ context.Context, dog *dogdomain.Dog) error {
	defer r.store.acquire(false)()

	now := r.store.now()
	dog.CreatedAt = now
	dog.UpdatedAt = now
	r.store.dogs[dog.ID] = row[dogdomain.Dog]{seq: r.store.next(), value: *dog}
	return nil
}

func (r *DogRepository) GetDog(_ context.Context, dogID string) (*dogdomain.Dog, error) {
	defer r.store.acquire(false)()

	item, ok := r.store.dogs[dogID]
	if !ok {
		return nil, dogdomain.ErrDogNotFound
	}
	dog := item.value
	return &dog, nil
}

func (r *DogRepository) ListDogsByOwner(_ context.Context, ownerID string) ([]dogdomain.Dog, error) {
	defer r.store.acquire(false)()

	return sortedValues(r.store.dogs, func(d dogdomain.Dog) bool {
		return d.OwnerID == ownerID
	}), nil
}

func (r *DogRepository) UpdateDog(_ context.Context, dog *dogdomain.Dog) error {
	defer r.store.acquire(false)()

	item, ok := r.store.dogs[dog.ID]
	if !ok {
		return dogdomain.ErrDogNotFound
	}
	item.value.Name = dog.Name
	item.value.Breed = dog.Breed
	item.value.BirthDate = dog.BirthDate
	item.value.UpdatedAt = r.store.now()
	r.store.dogs[dog.ID] = item
	*dog = item.value
	return nil
}

func (r *DogRepository) DeleteDog(_ context.Context, dogID string) error {
	defer r.store.acquire(false)()

	if _, ok := r.store.dogs[dogID]; !ok {
		return dogdomain.ErrDogNotFound
	}
	delete(r.store.dogs, dogID)
	return nil
}
