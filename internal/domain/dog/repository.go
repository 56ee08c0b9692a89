package dog

import "context"

type Repository interface {
	CreateDog(ctx context.Context, dog *Dog) error
	GetDog(ctx context.Context, dogID string) (*Dog, error)
	ListDogsByOwner(ctx context.Context, ownerID string) ([]Dog, error)
	UpdateDog(ctx context.Context, dog *Dog) error
	DeleteDog(ctx context.Context, dogID string) error
}
