package group

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetGroup(ctx context.Context, groupID string) (*Group, error) {
	return s.repo.GetGroup(ctx, groupID)
}

func (s *Service) ListGroups(ctx context.Context, filter ListFilter) ([]Group, int64, error) {
	return s.repo.ListGroups(ctx, filter)
}

// CreateGroup stores the group together with its creator membership.
func (s *Service) CreateGroup(ctx context.Context, actorID string, input CreateGroupInput) (*Group, error) {
	if actorID == "" {
		return nil, ErrActorRequired
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	group := Group{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		CreatorID:   actorID,
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreateGroup(ctx, &group); err != nil {
			return err
		}
		return tx.CreateMembership(ctx, &Membership{
			ID:      uuid.NewString(),
			UserID:  actorID,
			GroupID: group.ID,
			Status:  StatusActive,
			Role:    RoleCreator,
		})
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (s *Service) UpdateGroup(ctx context.Context, actorID, groupID string, input UpdateGroupInput) (*Group, error) {
	var result Group
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		group, err := tx.GetGroup(ctx, groupID)
		if err != nil {
			return err
		}
		if group.CreatorID != actorID {
			return ErrNotCreator
		}

		if input.Name != nil {
			name := strings.TrimSpace(*input.Name)
			if name == "" {
				return ErrNameRequired
			}
			group.Name = name
		}
		if input.Description != nil {
			group.Description = strings.TrimSpace(*input.Description)
		}
		if err := tx.UpdateGroup(ctx, group); err != nil {
			return err
		}
		result = *group
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Service) DeleteGroup(ctx context.Context, actorID, groupID string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		group, err := tx.GetGroup(ctx, groupID)
		if err != nil {
			return err
		}
		if group.CreatorID != actorID {
			return ErrNotCreator
		}
		return tx.DeleteGroup(ctx, groupID)
	})
}

func (s *Service) GetMembership(ctx context.Context, membershipID string) (*Membership, error) {
	return s.repo.GetMembership(ctx, membershipID)
}

func (s *Service) ListMemberships(ctx context.Context, groupID string, status *Status) ([]Membership, error) {
	if _, err := s.repo.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.repo.ListMemberships(ctx, groupID, status)
}

func (s *Service) ListMembershipsByUser(ctx context.Context, userID string) ([]Membership, error) {
	return s.repo.ListMembershipsByUser(ctx, userID)
}

// RequestMembership records the actor's request to join a group.
func (s *Service) RequestMembership(ctx context.Context, actorID, groupID string) (*Membership, error) {
	if actorID == "" {
		return nil, ErrActorRequired
	}
	return s.createPending(ctx, groupID, actorID, StatusRequested, nil)
}

// InviteMember lets an active creator or admin invite another user.
func (s *Service) InviteMember(ctx context.Context, actorID, groupID, inviteeID string) (*Membership, error) {
	if actorID == "" {
		return nil, ErrActorRequired
	}
	inviteeID = strings.TrimSpace(inviteeID)
	if inviteeID == "" || inviteeID == actorID {
		return nil, ErrInvalidInvitee
	}

	return s.createPending(ctx, groupID, inviteeID, StatusInvited, func(tx Repository) error {
		inviter, err := tx.GetMembershipByUser(ctx, groupID, actorID)
		if err != nil {
			if errors.Is(err, ErrMembershipNotFound) {
				return ErrNotGroupAdmin
			}
			return err
		}
		if !inviter.IsActiveManager() {
			return ErrNotGroupAdmin
		}
		return nil
	})
}

func (s *Service) createPending(ctx context.Context, groupID, userID string, status Status, authorize func(Repository) error) (*Membership, error) {
	var result Membership
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetGroup(ctx, groupID); err != nil {
			return err
		}
		if authorize != nil {
			if err := authorize(tx); err != nil {
				return err
			}
		}

		existing, err := tx.GetMembershipByUser(ctx, groupID, userID)
		switch {
		case err == nil && existing.Status == StatusBanned:
			return ErrBanned
		case err == nil:
			return ErrAlreadyMember
		case !errors.Is(err, ErrMembershipNotFound):
			return err
		}

		result = Membership{
			ID:      uuid.NewString(),
			UserID:  userID,
			GroupID: groupID,
			Status:  status,
			Role:    RoleMember,
		}
		return tx.CreateMembership(ctx, &result)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Accept activates a membership. The invitee accepts its own invitation;
// join requests need the group's active creator.
func (s *Service) Accept(ctx context.Context, actorID, membershipID string) (*Membership, error) {
	return s.transition(ctx, membershipID, func(tx Repository, subject *Membership) error {
		if subject.Status == StatusInvited && subject.UserID == actorID {
			subject.Status = StatusActive
			return tx.UpdateMembership(ctx, subject)
		}
		if err := s.requireCreator(ctx, tx, subject.GroupID, actorID); err != nil {
			return err
		}
		if subject.Status != StatusRequested {
			return ErrNotPending
		}
		subject.Status = StatusActive
		return tx.UpdateMembership(ctx, subject)
	})
}

// Reject drops a pending join request, or lets the invitee decline.
func (s *Service) Reject(ctx context.Context, actorID, membershipID string) error {
	_, err := s.transition(ctx, membershipID, func(tx Repository, subject *Membership) error {
		if subject.Status == StatusInvited && subject.UserID == actorID {
			return tx.DeleteMembership(ctx, subject.ID)
		}
		if err := s.requireCreator(ctx, tx, subject.GroupID, actorID); err != nil {
			return err
		}
		if subject.Status != StatusRequested {
			return ErrNotPending
		}
		return tx.DeleteMembership(ctx, subject.ID)
	})
	return err
}

// DeleteMembership covers both leaving (actor owns the membership) and
// removal by the group creator. Only the creator can lift a ban by
// deleting the banned membership.
func (s *Service) DeleteMembership(ctx context.Context, actorID, membershipID string) error {
	_, err := s.transition(ctx, membershipID, func(tx Repository, subject *Membership) error {
		if subject.Status == StatusBanned && subject.UserID == actorID {
			return ErrBanned
		}
		if subject.UserID != actorID {
			if err := s.requireCreator(ctx, tx, subject.GroupID, actorID); err != nil {
				return err
			}
		}
		if subject.Role == RoleCreator {
			return ErrCreatorCannotLeave
		}
		return tx.DeleteMembership(ctx, subject.ID)
	})
	return err
}

// ChangeRole promotes or demotes an active member between ADMIN and MEMBER.
func (s *Service) ChangeRole(ctx context.Context, actorID, membershipID string, role Role) (*Membership, error) {
	if role != RoleAdmin && role != RoleMember {
		return nil, ErrInvalidRole
	}

	return s.transition(ctx, membershipID, func(tx Repository, subject *Membership) error {
		if err := s.requireCreator(ctx, tx, subject.GroupID, actorID); err != nil {
			return err
		}
		if subject.Role == RoleCreator {
			return ErrCreatorRoleFixed
		}
		if subject.Status != StatusActive {
			return ErrNotActive
		}
		if subject.Role == role {
			return nil
		}
		subject.Role = role
		return tx.UpdateMembership(ctx, subject)
	})
}

// Ban keeps the membership row with status BANNED so the user cannot
// request to join again.
func (s *Service) Ban(ctx context.Context, actorID, membershipID string) (*Membership, error) {
	return s.transition(ctx, membershipID, func(tx Repository, subject *Membership) error {
		if err := s.requireCreator(ctx, tx, subject.GroupID, actorID); err != nil {
			return err
		}
		if subject.Role == RoleCreator {
			return ErrCreatorRoleFixed
		}
		if subject.Status == StatusBanned {
			return nil
		}
		subject.Status = StatusBanned
		subject.Role = RoleMember
		return tx.UpdateMembership(ctx, subject)
	})
}

// transition locks the membership row, then runs apply against the locked
// state so preconditions are evaluated after the lock is held.
func (s *Service) transition(ctx context.Context, membershipID string, apply func(Repository, *Membership) error) (*Membership, error) {
	var result Membership
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		subject, err := tx.GetMembershipForUpdate(ctx, membershipID)
		if err != nil {
			return err
		}
		if err := apply(tx, subject); err != nil {
			return err
		}
		result = *subject
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *Service) requireCreator(ctx context.Context, tx Repository, groupID, actorID string) error {
	if actorID == "" {
		return ErrNotCreator
	}
	caller, err := tx.GetMembershipByUser(ctx, groupID, actorID)
	if err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			return ErrNotCreator
		}
		return err
	}
	if !caller.IsActiveCreator() {
		return ErrNotCreator
	}
	return nil
}
