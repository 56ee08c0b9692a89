package match

import "context"

type Repository interface {
	// UpsertMatch inserts the row or updates the action of the existing
	// (user, target) row.
	UpsertMatch(ctx context.Context, match *UserMatch) error
	GetMatch(ctx context.Context, userID, targetUserID string) (*UserMatch, error)
	ListMutual(ctx context.Context, userID string) ([]string, error)
}
