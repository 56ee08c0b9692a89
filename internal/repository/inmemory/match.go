package inmemory

import (
	"context"
	"sort"

	matchdomain "dogwalk-app-go/internal/domain/match"
)

type MatchRepository struct {
	store *Store
}

func (r *MatchRepository) UpsertMatch(_ context.Context, match *matchdomain.UserMatch) error {
	defer r.store.acquire(false)()

	now := r.store.now()
	for id, item := range r.store.matches {
		if item.value.UserID == match.UserID && item.value.TargetUserID == match.TargetUserID {
			item.value.Action = match.Action
			item.value.UpdatedAt = now
			r.store.matches[id] = item
			return nil
		}
	}

	match.CreatedAt = now
	match.UpdatedAt = now
	r.store.matches[match.ID] = row[matchdomain.UserMatch]{seq: r.store.next(), value: *match}
	return nil
}

func (r *MatchRepository) GetMatch(_ context.Context, userID, targetUserID string) (*matchdomain.UserMatch, error) {
	defer r.store.acquire(false)()
	return r.find(userID, targetUserID)
}

func (r *MatchRepository) find(userID, targetUserID string) (*matchdomain.UserMatch, error) {
	for _, item := range r.store.matches {
		if item.value.UserID == userID && item.value.TargetUserID == targetUserID {
			match := item.value
			return &match, nil
		}
	}
	return nil, matchdomain.ErrMatchNotFound
}

func (r *MatchRepository) ListMutual(_ context.Context, userID string) ([]string, error) {
	defer r.store.acquire(false)()

	type mutual struct {
		userID string
		at     int64
	}
	var found []mutual
	for _, item := range r.store.matches {
		mine := item.value
		if mine.UserID != userID || mine.Action != matchdomain.ActionLike {
			continue
		}
		theirs, err := r.find(mine.TargetUserID, userID)
		if err != nil || theirs.Action != matchdomain.ActionLike {
			continue
		}
		at := mine.UpdatedAt
		if theirs.UpdatedAt.After(at) {
			at = theirs.UpdatedAt
		}
		found = append(found, mutual{userID: mine.TargetUserID, at: at.UnixNano()})
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].at != found[j].at {
			return found[i].at > found[j].at
		}
		return found[i].userID < found[j].userID
	})

	ids := make([]string, 0, len(found))
	for _, item := range found {
		ids = append(ids, item.userID)
	}
	return ids, nil
}
