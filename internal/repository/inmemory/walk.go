package inmemory

import (
	"context"
	"sort"

	groupdomain "dogwalk-app-go/internal/domain/group"
	walkdomain "dogwalk-app-go/internal/domain/walk"
)

type WalkRepository struct {
	store *Store
	inTx  bool
}

func (r *WalkRepository) Transaction(ctx context.Context, fn func(walkdomain.Repository) error) error {
	return r.store.transaction(r.inTx, func() error {
		return fn(&WalkRepository{store: r.store, inTx: true})
	})
}

func (r *WalkRepository) GroupExists(_ context.Context, groupID string) (bool, error) {
	defer r.store.acquire(r.inTx)()

	_, ok := r.store.groups[groupID]
	return ok, nil
}

func (r *WalkRepository) GetMembership(_ context.Context, groupID, userID string) (*groupdomain.Membership, error) {
	defer r.store.acquire(r.inTx)()
	return findMembership(r.store, groupID, userID)
}

func (r *WalkRepository) CreateWalk(_ context.Context, walk *walkdomain.Walk) error {
	defer r.store.acquire(r.inTx)()

	if _, ok := r.store.groups[walk.GroupID]; !ok {
		return walkdomain.ErrGroupNotFound
	}
	now := r.store.now()
	walk.CreatedAt = now
	walk.UpdatedAt = now
	r.store.walks[walk.ID] = row[walkdomain.Walk]{seq: r.store.next(), value: *walk}
	return nil
}

func (r *WalkRepository) GetWalk(_ context.Context, walkID string) (*walkdomain.Walk, error) {
	defer r.store.acquire(r.inTx)()

	item, ok := r.store.walks[walkID]
	if !ok {
		return nil, walkdomain.ErrWalkNotFound
	}
	walk := item.value
	return &walk, nil
}

func (r *WalkRepository) ListWalksByGroup(_ context.Context, groupID string, filter walkdomain.ListFilter) ([]walkdomain.Walk, int64, error) {
	defer r.store.acquire(r.inTx)()

	walks := sortedValues(r.store.walks, func(w walkdomain.Walk) bool {
		return w.GroupID == groupID && (filter.From == nil || !w.StartsAt.Before(*filter.From))
	})
	sort.SliceStable(walks, func(i, j int) bool { return walks[i].StartsAt.Before(walks[j].StartsAt) })
	return page(walks, filter.Limit, filter.Offset), int64(len(walks)), nil
}
