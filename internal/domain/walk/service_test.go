package walk_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dogwalk-app-go/internal/domain/group"
	"dogwalk-app-go/internal/domain/walk"
	"dogwalk-app-go/internal/repository/inmemory"
)

type fixture struct {
	groups  *group.Service
	walks   *walk.Service
	groupID string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := inmemory.NewStore()
	groups := group.NewService(store.Groups())
	g, err := groups.CreateGroup(context.Background(), "creator", group.CreateGroupInput{Name: "Park"})
	require.NoError(t, err)
	return fixture{groups: groups, walks: walk.NewService(store.Walks()), groupID: g.ID}
}

func TestCreateWalkRequiresActiveMember(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	input := walk.CreateWalkInput{GroupID: f.groupID, Title: "Sunday loop", StartsAt: time.Now().Add(time.Hour)}

	_, err := f.walks.CreateWalk(ctx, "stranger", input)
	assert.ErrorIs(t, err, walk.ErrNotGroupMember)

	req, err := f.groups.RequestMembership(ctx, "alice", f.groupID)
	require.NoError(t, err)
	_, err = f.walks.CreateWalk(ctx, "alice", input)
	assert.ErrorIs(t, err, walk.ErrNotGroupMember)

	_, err = f.groups.Accept(ctx, "creator", req.ID)
	require.NoError(t, err)
	created, err := f.walks.CreateWalk(ctx, "alice", input)
	require.NoError(t, err)
	assert.Equal(t, "alice", created.CreatorID)

	_, err = f.groups.ChangeRole(ctx, "creator", req.ID, group.RoleAdmin)
	require.NoError(t, err)
	_, err = f.walks.CreateWalk(ctx, "alice", input)
	assert.ErrorIs(t, err, walk.ErrNotGroupMember)

	walks, total, err := f.walks.ListGroupWalks(ctx, f.groupID, walk.ListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, walks, 1)
}

func TestCreateWalkValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.walks.CreateWalk(ctx, "", walk.CreateWalkInput{GroupID: f.groupID, Title: "x"})
	assert.ErrorIs(t, err, walk.ErrActorRequired)
	_, err = f.walks.CreateWalk(ctx, "creator", walk.CreateWalkInput{Title: "x"})
	assert.ErrorIs(t, err, walk.ErrGroupRequired)
	_, err = f.walks.CreateWalk(ctx, "creator", walk.CreateWalkInput{GroupID: f.groupID, Title: "  "})
	assert.ErrorIs(t, err, walk.ErrTitleRequired)
	_, err = f.walks.CreateWalk(ctx, "creator", walk.CreateWalkInput{GroupID: "missing", Title: "x"})
	assert.ErrorIs(t, err, walk.ErrGroupNotFound)
}

func TestListGroupWalksOrdersByStart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	for i, title := range []string{"later", "first", "middle"} {
		offsets := []time.Duration{48 * time.Hour, 0, 24 * time.Hour}
		_, err := f.walks.CreateWalk(ctx, "creator", walk.CreateWalkInput{GroupID: f.groupID, Title: title, StartsAt: base.Add(offsets[i])})
		require.NoError(t, err)
	}

	from := base.Add(time.Hour)
	walks, total, err := f.walks.ListGroupWalks(ctx, f.groupID, walk.ListFilter{From: &from})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, walks, 2)
	assert.Equal(t, "middle", walks[0].Title)
	assert.Equal(t, "later", walks[1].Title)

	_, _, err = f.walks.ListGroupWalks(ctx, "missing", walk.ListFilter{})
	assert.ErrorIs(t, err, walk.ErrGroupNotFound)
}
