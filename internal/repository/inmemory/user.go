package inmemory

import (
	"context"

	userdomain "dogwalk-app-go/internal/domain/user"
)

type UserRepository struct {
	store *Store
}

func (r *UserRepository) UpsertProfile(_ context.Context, profile *userdomain.Profile) error {
	defer r.store.acquire(false)()

	now := r.store.now()
	item, ok := r.store.profiles[profile.UserID]
	if !ok {
		profile.CreatedAt = now
		profile.UpdatedAt = now
		r.store.profiles[profile.UserID] = row[userdomain.Profile]{seq: r.store.next(), value: *profile}
		return nil
	}

	if profile.Email != nil {
		item.value.Email = profile.Email
	}
	if profile.AvatarURL != nil {
		item.value.AvatarURL = profile.AvatarURL
	}
	item.value.UpdatedAt = now
	r.store.profiles[profile.UserID] = item
	return nil
}

func (r *UserRepository) GetProfile(_ context.Context, userID string) (*userdomain.Profile, error) {
	defer r.store.acquire(false)()

	item, ok := r.store.profiles[userID]
	if !ok {
		return nil, userdomain.ErrProfileNotFound
	}
	profile := item.value
	return &profile, nil
}

func (r *UserRepository) UpdateDisplayName(_ context.Context, userID string, displayName *string) error {
	defer r.store.acquire(false)()

	item, ok := r.store.profiles[userID]
	if !ok {
		return userdomain.ErrProfileNotFound
	}
	item.value.DisplayName = displayName
	item.value.UpdatedAt = r.store.now()
	r.store.profiles[userID] = item
	return nil
}
