package user

import (
	"context"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// UpsertProfile records identity claims seen on an authenticated request.
// Empty values never overwrite stored ones.
func (s *Service) UpsertProfile(ctx context.Context, userID, email, avatarURL string) error {
	if userID == "" {
		return ErrUserIDRequired
	}

	profile := Profile{UserID: userID}
	if email != "" {
		profile.Email = &email
	}
	if avatarURL != "" {
		profile.AvatarURL = &avatarURL
	}

	return s.repo.UpsertProfile(ctx, &profile)
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	return s.repo.GetProfile(ctx, userID)
}

// UpdateDisplayName sets the display name; a blank name clears it.
func (s *Service) UpdateDisplayName(ctx context.Context, userID, displayName string) (*Profile, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}

	var value *string
	if trimmed := strings.TrimSpace(displayName); trimmed != "" {
		value = &trimmed
	}
	if err := s.repo.UpdateDisplayName(ctx, userID, value); err != nil {
		return nil, err
	}
	return s.repo.GetProfile(ctx, userID)
}
