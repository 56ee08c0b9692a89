package walk

import (
	"context"

	groupdomain "dogwalk-app-go/internal/domain/group"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GroupExists(ctx context.Context, groupID string) (bool, error)
	// GetMembership returns groupdomain.ErrMembershipNotFound when the user has no row.
	GetMembership(ctx context.Context, groupID, userID string) (*groupdomain.Membership, error)
	CreateWalk(ctx context.Context, walk *Walk) error
	GetWalk(ctx context.Context, walkID string) (*Walk, error)
	ListWalksByGroup(ctx context.Context, groupID string, filter ListFilter) ([]Walk, int64, error)
}
