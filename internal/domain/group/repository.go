package group

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	GetGroup(ctx context.Context, groupID string) (*Group, error)
	ListGroups(ctx context.Context, filter ListFilter) ([]Group, int64, error)
	CreateGroup(ctx context.Context, group *Group) error
	UpdateGroup(ctx context.Context, group *Group) error
	DeleteGroup(ctx context.Context, groupID string) error
	GetMembership(ctx context.Context, membershipID string) (*Membership, error)
	// GetMembershipForUpdate locks the row until the surrounding transaction ends.
	GetMembershipForUpdate(ctx context.Context, membershipID string) (*Membership, error)
	GetMembershipByUser(ctx context.Context, groupID, userID string) (*Membership, error)
	ListMemberships(ctx context.Context, groupID string, status *Status) ([]Membership, error)
	ListMembershipsByUser(ctx context.Context, userID string) ([]Membership, error)
	CreateMembership(ctx context.Context, membership *Membership) error
	UpdateMembership(ctx context.Context, membership *Membership) error
	DeleteMembership(ctx context.Context, membershipID string) error
}
