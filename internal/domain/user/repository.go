package user

import "context"

type Repository interface {
	UpsertProfile(ctx context.Context, profile *Profile) error
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateDisplayName(ctx context.Context, userID string, displayName *string) error
}
