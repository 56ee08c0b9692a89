package access

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	groupdomain "dogwalk-app-go/internal/domain/group"
	walkdomain "dogwalk-app-go/internal/domain/walk"
)

func membership(userID, groupID string, status groupdomain.Status, role groupdomain.Role) groupdomain.Membership {
	return groupdomain.Membership{ID: userID + "@" + groupID, UserID: userID, GroupID: groupID, Status: status, Role: role}
}

func TestDecide(t *testing.T) {
	park := &groupdomain.Group{ID: "g-1", CreatorID: "creator"}
	walk := &walkdomain.Walk{ID: "w-1", GroupID: "g-1"}
	aliceRequest := membership("alice", "g-1", groupdomain.StatusRequested, groupdomain.RoleMember)

	creator := Actor{ID: "creator", Memberships: []groupdomain.Membership{
		membership("creator", "g-1", groupdomain.StatusActive, groupdomain.RoleCreator),
	}}
	alice := Actor{ID: "alice", Memberships: []groupdomain.Membership{aliceRequest}}
	member := Actor{ID: "bob", Memberships: []groupdomain.Membership{
		membership("bob", "g-1", groupdomain.StatusActive, groupdomain.RoleMember),
	}}
	admin := Actor{ID: "carol", Memberships: []groupdomain.Membership{
		membership("carol", "g-1", groupdomain.StatusActive, groupdomain.RoleAdmin),
	}}
	stranger := Actor{ID: "dave"}

	tests := []struct {
		name    string
		actor   Actor
		action  Action
		subject Subject
		want    bool
	}{
		{"creator edits group", creator, GroupEdit, Subject{Group: park}, true},
		{"member edits group", member, GroupEdit, Subject{Group: park}, false},
		{"creator deletes group", creator, GroupDelete, Subject{Group: park}, true},
		{"group edit without subject", creator, GroupEdit, Subject{}, false},
		{"creator manages request", creator, MembershipEdit, Subject{Membership: &aliceRequest}, true},
		{"admin manages request", admin, MembershipEdit, Subject{Membership: &aliceRequest}, false},
		{"requester edits own", alice, MembershipEdit, Subject{Membership: &aliceRequest}, false},
		{"requester deletes own", alice, MembershipDelete, Subject{Membership: &aliceRequest}, true},
		{"creator deletes request", creator, MembershipDelete, Subject{Membership: &aliceRequest}, true},
		{"member deletes other", member, MembershipDelete, Subject{Membership: &aliceRequest}, false},
		{"member creates walk", member, WalkCreate, Subject{}, true},
		{"creator creates walk", creator, WalkCreate, Subject{}, true},
		{"admin creates walk", admin, WalkCreate, Subject{}, false},
		{"pending creates walk", alice, WalkCreate, Subject{}, false},
		{"stranger creates walk", stranger, WalkCreate, Subject{}, false},
		{"member views walk", member, WalkView, Subject{Walk: walk}, true},
		{"member views group walks", member, WalkView, Subject{Group: park}, true},
		{"admin views walk", admin, WalkView, Subject{Walk: walk}, false},
		{"stranger views walk", stranger, WalkView, Subject{Walk: walk}, false},
		{"creator edits walk", creator, WalkEdit, Subject{Walk: walk}, false},
		{"creator deletes walk", creator, WalkDelete, Subject{Walk: walk}, false},
		{"unknown action", creator, Action("GROUP_ARCHIVE"), Subject{Group: park}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.actor, tt.action, tt.subject))
		})
	}
}

func TestActiveCreatorElsewhereDoesNotLeak(t *testing.T) {
	other := membership("mallory", "g-2", groupdomain.StatusActive, groupdomain.RoleCreator)
	subject := membership("alice", "g-1", groupdomain.StatusRequested, groupdomain.RoleMember)
	actor := Actor{ID: "mallory", Memberships: []groupdomain.Membership{other}}

	assert.False(t, Decide(actor, MembershipEdit, Subject{Membership: &subject}))
	assert.False(t, Decide(actor, WalkView, Subject{Walk: &walkdomain.Walk{GroupID: "g-1"}}))
}

type staticLister map[string][]groupdomain.Membership

func (l staticLister) ListMembershipsByUser(ctx context.Context, userID string) ([]groupdomain.Membership, error) {
	return l[userID], nil
}

func TestCheckerRequire(t *testing.T) {
	checker := NewChecker(staticLister{
		"bob": {membership("bob", "g-1", groupdomain.StatusActive, groupdomain.RoleMember)},
	})
	ctx := context.Background()
	walk := &walkdomain.Walk{GroupID: "g-1"}

	require.NoError(t, checker.Require(ctx, "bob", WalkView, Subject{Walk: walk}))

	err := checker.Require(ctx, "dave", WalkView, Subject{Walk: walk})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAccessDenied))
	var denial *Denial
	require.ErrorAs(t, err, &denial)
	assert.Equal(t, WalkView, denial.Action)
	assert.Equal(t, Message(WalkView), denial.Message)

	assert.ErrorIs(t, checker.Require(ctx, "", WalkCreate, Subject{}), ErrAccessDenied)
}

func TestCheckerPermissions(t *testing.T) {
	checker := NewChecker(staticLister{
		"creator": {membership("creator", "g-1", groupdomain.StatusActive, groupdomain.RoleCreator)},
	})
	park := &groupdomain.Group{ID: "g-1", CreatorID: "creator"}

	perms, err := checker.Permissions(context.Background(), "creator", Subject{Group: park}, GroupEdit, GroupDelete, WalkView, WalkEdit)
	require.NoError(t, err)
	assert.Equal(t, map[Action]bool{GroupEdit: true, GroupDelete: true, WalkView: true, WalkEdit: false}, perms)
}
