package walk

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	groupdomain "dogwalk-app-go/internal/domain/group"
)

const maxListLimit = 100

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// CreateWalk checks the creator's membership and inserts the walk in one
// transaction, so a rejected walk leaves nothing behind.
func (s *Service) CreateWalk(ctx context.Context, actorID string, input CreateWalkInput) (*Walk, error) {
	if actorID == "" {
		return nil, ErrActorRequired
	}
	groupID := strings.TrimSpace(input.GroupID)
	if groupID == "" {
		return nil, ErrGroupRequired
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	startsAt := input.StartsAt
	if startsAt.IsZero() {
		startsAt = s.now()
	}

	walk := Walk{
		ID:          uuid.NewString(),
		GroupID:     groupID,
		CreatorID:   actorID,
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		StartsAt:    startsAt.UTC(),
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		exists, err := tx.GroupExists(ctx, groupID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrGroupNotFound
		}
		if err := requireWalker(ctx, tx, groupID, actorID); err != nil {
			return err
		}
		return tx.CreateWalk(ctx, &walk)
	})
	if err != nil {
		return nil, err
	}
	return &walk, nil
}

func (s *Service) GetWalk(ctx context.Context, walkID string) (*Walk, error) {
	return s.repo.GetWalk(ctx, walkID)
}

func (s *Service) ListGroupWalks(ctx context.Context, groupID string, filter ListFilter) ([]Walk, int64, error) {
	exists, err := s.repo.GroupExists(ctx, groupID)
	if err != nil {
		return nil, 0, err
	}
	if !exists {
		return nil, 0, ErrGroupNotFound
	}
	if filter.Limit <= 0 || filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	return s.repo.ListWalksByGroup(ctx, groupID, filter)
}

func requireWalker(ctx context.Context, repo Repository, groupID, userID string) error {
	membership, err := repo.GetMembership(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, groupdomain.ErrMembershipNotFound) {
			return ErrNotGroupMember
		}
		return err
	}
	if !membership.CanWalk() {
		return ErrNotGroupMember
	}
	return nil
}
