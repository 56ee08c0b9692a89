// Package access decides whether an actor may act on a group, membership or
// walk. Decisions are pure functions of an Actor snapshot and a Subject.
package access

import (
	groupdomain "dogwalk-app-go/internal/domain/group"
	walkdomain "dogwalk-app-go/internal/domain/walk"
)

type Action string

const (
	GroupEdit        Action = "GROUP_EDIT"
	GroupDelete      Action = "GROUP_DELETE"
	MembershipEdit   Action = "MEMBERSHIP_EDIT"
	MembershipDelete Action = "MEMBERSHIP_DELETE"
	WalkCreate       Action = "WALK_CREATE"
	WalkView         Action = "WALK_VIEW"
	WalkEdit         Action = "WALK_EDIT"
	WalkDelete       Action = "WALK_DELETE"
)

// Actor is the caller together with every membership it holds.
type Actor struct {
	ID          string
	Memberships []groupdomain.Membership
}

// Subject carries whichever entity the action targets. WALK_CREATE takes an
// empty Subject; WALK_VIEW accepts either a Walk or a Group.
type Subject struct {
	Group      *groupdomain.Group
	Membership *groupdomain.Membership
	Walk       *walkdomain.Walk
}

type rule struct {
	decide  func(Actor, Subject) bool
	message string
}

var rules = map[Action]rule{
	GroupEdit: {
		decide:  isGroupCreator,
		message: "only the group creator can edit this group",
	},
	GroupDelete: {
		decide:  isGroupCreator,
		message: "only the group creator can delete this group",
	},
	MembershipEdit: {
		decide: func(a Actor, s Subject) bool {
			return s.Membership != nil && a.activeCreatorOf(s.Membership.GroupID)
		},
		message: "only the group creator can manage membership requests",
	},
	MembershipDelete: {
		decide: func(a Actor, s Subject) bool {
			if s.Membership == nil || a.ID == "" {
				return false
			}
			return s.Membership.UserID == a.ID || a.activeCreatorOf(s.Membership.GroupID)
		},
		message: "only the member or the group creator can delete this membership",
	},
	WalkCreate: {
		decide: func(a Actor, _ Subject) bool {
			for _, m := range a.Memberships {
				if m.UserID == a.ID && m.CanWalk() {
					return true
				}
			}
			return false
		},
		message: "join a walk group before creating walks",
	},
	WalkView: {
		decide: func(a Actor, s Subject) bool {
			groupID := s.walkGroupID()
			return groupID != "" && a.canWalkIn(groupID)
		},
		message: "only active members of the walk group can view its walks",
	},
	WalkEdit: {
		decide:  deny,
		message: "walks cannot be edited",
	},
	WalkDelete: {
		decide:  deny,
		message: "walks cannot be deleted",
	},
}

// Decide reports whether actor may perform action on subject. Unknown
// actions are denied.
func Decide(actor Actor, action Action, subject Subject) bool {
	r, ok := rules[action]
	if !ok {
		return false
	}
	return r.decide(actor, subject)
}

// Message is the human-readable reason shown when action is denied.
func Message(action Action) string {
	if r, ok := rules[action]; ok {
		return r.message
	}
	return "access denied"
}

func isGroupCreator(a Actor, s Subject) bool {
	return s.Group != nil && a.ID != "" && a.ID == s.Group.CreatorID
}

func deny(Actor, Subject) bool { return false }

func (a Actor) membershipIn(groupID string) (groupdomain.Membership, bool) {
	for _, m := range a.Memberships {
		if m.GroupID == groupID && m.UserID == a.ID {
			return m, true
		}
	}
	return groupdomain.Membership{}, false
}

func (a Actor) activeCreatorOf(groupID string) bool {
	m, ok := a.membershipIn(groupID)
	return ok && m.IsActiveCreator()
}

func (a Actor) canWalkIn(groupID string) bool {
	m, ok := a.membershipIn(groupID)
	return ok && m.CanWalk()
}

func (s Subject) walkGroupID() string {
	if s.Walk != nil {
		return s.Walk.GroupID
	}
	if s.Group != nil {
		return s.Group.ID
	}
	return ""
}
