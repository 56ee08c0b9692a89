package access

import (
	"context"
	"errors"
	"fmt"

	groupdomain "dogwalk-app-go/internal/domain/group"
)

var ErrAccessDenied = errors.New("access denied")

// Denial is returned by Checker.Require. It unwraps to ErrAccessDenied.
type Denial struct {
	Action  Action
	Message string
}

func (d *Denial) Error() string {
	return fmt.Sprintf("%s: %s", d.Action, d.Message)
}

func (d *Denial) Unwrap() error {
	return ErrAccessDenied
}

type MembershipLister interface {
	ListMembershipsByUser(ctx context.Context, userID string) ([]groupdomain.Membership, error)
}

// Checker loads actor snapshots and evaluates the voters. It never writes.
type Checker struct {
	memberships MembershipLister
}

func NewChecker(memberships MembershipLister) *Checker {
	return &Checker{memberships: memberships}
}

func (c *Checker) LoadActor(ctx context.Context, actorID string) (Actor, error) {
	if actorID == "" {
		return Actor{}, nil
	}
	memberships, err := c.memberships.ListMembershipsByUser(ctx, actorID)
	if err != nil {
		return Actor{}, fmt.Errorf("load memberships: %w", err)
	}
	return Actor{ID: actorID, Memberships: memberships}, nil
}

func (c *Checker) Require(ctx context.Context, actorID string, action Action, subject Subject) error {
	actor, err := c.LoadActor(ctx, actorID)
	if err != nil {
		return err
	}
	if !Decide(actor, action, subject) {
		return &Denial{Action: action, Message: Message(action)}
	}
	return nil
}

// Permissions evaluates several actions at once, e.g. for UI hints.
func (c *Checker) Permissions(ctx context.Context, actorID string, subject Subject, actions ...Action) (map[Action]bool, error) {
	actor, err := c.LoadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	result := make(map[Action]bool, len(actions))
	for _, action := range actions {
		result[action] = Decide(actor, action, subject)
	}
	return result, nil
}
