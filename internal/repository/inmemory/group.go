package inmemory

import (
	"context"
	"slices"

	groupdomain "dogwalk-app-go/internal/domain/group"
)

type GroupRepository struct {
	store *Store
	inTx  bool
}

func (r *GroupRepository) Transaction(ctx context.Context, fn func(groupdomain.Repository) error) error {
	return r.store.transaction(r.inTx, func() error {
		return fn(&GroupRepository{store: r.store, inTx: true})
	})
}

func (r *GroupRepository) GetGroup(_ context.Context, groupID string) (*groupdomain.Group, error) {
	defer r.store.acquire(r.inTx)()

	item, ok := r.store.groups[groupID]
	if !ok {
		return nil, groupdomain.ErrGroupNotFound
	}
	group := item.value
	return &group, nil
}

func (r *GroupRepository) ListGroups(_ context.Context, filter groupdomain.ListFilter) ([]groupdomain.Group, int64, error) {
	defer r.store.acquire(r.inTx)()

	groups := sortedValues(r.store.groups, nil)
	slices.Reverse(groups)
	return page(groups, filter.Limit, filter.Offset), int64(len(groups)), nil
}

func (r *GroupRepository) CreateGroup(_ context.Context, group *groupdomain.Group) error {
	defer r.store.acquire(r.inTx)()

	now := r.store.now()
	group.CreatedAt = now
	group.UpdatedAt = now
	r.store.groups[group.ID] = row[groupdomain.Group]{seq: r.store.next(), value: *group}
	return nil
}

func (r *GroupRepository) UpdateGroup(_ context.Context, group *groupdomain.Group) error {
	defer r.store.acquire(r.inTx)()

	item, ok := r.store.groups[group.ID]
	if !ok {
		return groupdomain.ErrGroupNotFound
	}
	item.value.Name = group.Name
	item.value.Description = group.Description
	item.value.UpdatedAt = r.store.now()
	r.store.groups[group.ID] = item
	*group = item.value
	return nil
}

// DeleteGroup cascades to memberships and walks like the foreign keys do.
func (r *GroupRepository) DeleteGroup(_ context.Context, groupID string) error {
	defer r.store.acquire(r.inTx)()

	if _, ok := r.store.groups[groupID]; !ok {
		return groupdomain.ErrGroupNotFound
	}
	delete(r.store.groups, groupID)
	for id, item := range r.store.memberships {
		if item.value.GroupID == groupID {
			delete(r.store.memberships, id)
		}
	}
	for id, item := range r.store.walks {
		if item.value.GroupID == groupID {
			delete(r.store.walks, id)
		}
	}
	return nil
}

func (r *GroupRepository) GetMembership(_ context.Context, membershipID string) (*groupdomain.Membership, error) {
	defer r.store.acquire(r.inTx)()
	return r.membership(membershipID)
}

// GetMembershipForUpdate needs no extra locking here: a transaction already
// holds the store mutex.
func (r *GroupRepository) GetMembershipForUpdate(_ context.Context, membershipID string) (*groupdomain.Membership, error) {
	defer r.store.acquire(r.inTx)()
	return r.membership(membershipID)
}

func (r *GroupRepository) membership(membershipID string) (*groupdomain.Membership, error) {
	item, ok := r.store.memberships[membershipID]
	if !ok {
		return nil, groupdomain.ErrMembershipNotFound
	}
	membership := item.value
	return &membership, nil
}

func (r *GroupRepository) GetMembershipByUser(_ context.Context, groupID, userID string) (*groupdomain.Membership, error) {
	defer r.store.acquire(r.inTx)()
	return findMembership(r.store, groupID, userID)
}

func findMembership(store *Store, groupID, userID string) (*groupdomain.Membership, error) {
	for _, item := range store.memberships {
		if item.value.GroupID == groupID && item.value.UserID == userID {
			membership := item.value
			return &membership, nil
		}
	}
	return nil, groupdomain.ErrMembershipNotFound
}

func (r *GroupRepository) ListMemberships(_ context.Context, groupID string, status *groupdomain.Status) ([]groupdomain.Membership, error) {
	defer r.store.acquire(r.inTx)()

	return sortedValues(r.store.memberships, func(m groupdomain.Membership) bool {
		return m.GroupID == groupID && (status == nil || m.Status == *status)
	}), nil
}

func (r *GroupRepository) ListMembershipsByUser(_ context.Context, userID string) ([]groupdomain.Membership, error) {
	defer r.store.acquire(r.inTx)()

	return sortedValues(r.store.memberships, func(m groupdomain.Membership) bool {
		return m.UserID == userID
	}), nil
}

func (r *GroupRepository) CreateMembership(_ context.Context, membership *groupdomain.Membership) error {
	defer r.store.acquire(r.inTx)()

	if _, ok := r.store.groups[membership.GroupID]; !ok {
		return groupdomain.ErrGroupNotFound
	}
	for _, item := range r.store.memberships {
		if item.value.GroupID != membership.GroupID {
			continue
		}
		if item.value.UserID == membership.UserID {
			return groupdomain.ErrAlreadyMember
		}
		if membership.Role == groupdomain.RoleCreator && item.value.Role == groupdomain.RoleCreator {
			return groupdomain.ErrCreatorRoleFixed
		}
	}

	now := r.store.now()
	membership.CreatedAt = now
	membership.UpdatedAt = now
	stored := *membership
	stored.Group = groupdomain.Group{}
	r.store.memberships[membership.ID] = row[groupdomain.Membership]{seq: r.store.next(), value: stored}
	return nil
}

func (r *GroupRepository) UpdateMembership(_ context.Context, membership *groupdomain.Membership) error {
	defer r.store.acquire(r.inTx)()

	item, ok := r.store.memberships[membership.ID]
	if !ok {
		return groupdomain.ErrMembershipNotFound
	}
	item.value.Status = membership.Status
	item.value.Role = membership.Role
	item.value.UpdatedAt = r.store.now()
	r.store.memberships[membership.ID] = item
	membership.UpdatedAt = item.value.UpdatedAt
	return nil
}

func (r *GroupRepository) DeleteMembership(_ context.Context, membershipID string) error {
	defer r.store.acquire(r.inTx)()

	if _, ok := r.store.memberships[membershipID]; !ok {
		return groupdomain.ErrMembershipNotFound
	}
	delete(r.store.memberships, membershipID)
	return nil
}
