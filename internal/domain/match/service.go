package match

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Record(ctx context.Context, actorID, targetUserID string, action Action) (*RecordResult, error) {
	if actorID == "" {
		return nil, ErrActorRequired
	}
	targetUserID = strings.TrimSpace(targetUserID)
	if targetUserID == "" {
		return nil, ErrTargetMissing
	}
	if targetUserID == actorID {
		return nil, ErrSelfMatch
	}
	if action != ActionLike && action != ActionPass {
		return nil, ErrInvalidAction
	}

	if err := s.repo.UpsertMatch(ctx, &UserMatch{
		ID:           uuid.NewString(),
		UserID:       actorID,
		TargetUserID: targetUserID,
		Action:       action,
	}); err != nil {
		return nil, err
	}

	stored, err := s.repo.GetMatch(ctx, actorID, targetUserID)
	if err != nil {
		return nil, err
	}

	result := &RecordResult{Match: *stored}
	if action != ActionLike {
		return result, nil
	}

	reverse, err := s.repo.GetMatch(ctx, targetUserID, actorID)
	if err != nil {
		if errors.Is(err, ErrMatchNotFound) {
			return result, nil
		}
		return nil, err
	}
	result.Mutual = reverse.Action == ActionLike
	return result, nil
}

func (s *Service) ListMutual(ctx context.Context, actorID string) ([]string, error) {
	if actorID == "" {
		return nil, ErrActorRequired
	}
	return s.repo.ListMutual(ctx, actorID)
}
