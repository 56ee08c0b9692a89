package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"dogwalk-app-go/internal/domain/access"
	groupdomain "dogwalk-app-go/internal/domain/group"
)

const (
	membershipActionAccept  = "accept"
	membershipActionReject  = "reject"
	membershipActionPromote = "promote"
	membershipActionDemote  = "demote"
	membershipActionBan     = "ban"
)

type createMembershipRequest struct {
	WalkGroup string `json:"walk_group" validate:"required"`
	User      string `json:"user"`
}

type updateMembershipRequest struct {
	Action string `json:"action" validate:"required,oneof=accept reject promote demote ban"`
}

type membershipResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user"`
	GroupID   string    `json:"walk_group"`
	Status    string    `json:"status"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toMembershipResponse(m *groupdomain.Membership) membershipResponse {
	return membershipResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		GroupID:   m.GroupID,
		Status:    string(m.Status),
		Role:      string(m.Role),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// CreateMembership is a join request when user is empty or the caller, and an
// invitation otherwise.
func (h *Handlers) CreateMembership(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req createMembershipRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	groupID := strings.TrimSpace(req.WalkGroup)
	invitee := strings.TrimSpace(req.User)

	var (
		membership *groupdomain.Membership
		err        error
	)
	if invitee == "" || invitee == user.ID {
		membership, err = h.Groups.RequestMembership(r.Context(), user.ID, groupID)
	} else {
		membership, err = h.Groups.InviteMember(r.Context(), user.ID, groupID, invitee)
	}
	if err != nil {
		h.fail(w, r, "memberships.create", err, "group_id", groupID, "invitee", invitee)
		return
	}

	writeJSON(w, http.StatusCreated, toMembershipResponse(membership))
}

func (h *Handlers) UpdateMembership(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	membershipID := chi.URLParam(r, "id")

	var req updateMembershipRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	ctx := r.Context()

	switch req.Action {
	case membershipActionAccept:
		membership, err := h.Groups.Accept(ctx, user.ID, membershipID)
		if err != nil {
			h.fail(w, r, "memberships.accept", err, "membership_id", membershipID)
			return
		}
		writeJSON(w, http.StatusOK, toMembershipResponse(membership))
		return
	case membershipActionReject:
		if err := h.Groups.Reject(ctx, user.ID, membershipID); err != nil {
			h.fail(w, r, "memberships.reject", err, "membership_id", membershipID)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	current, err := h.Groups.GetMembership(ctx, membershipID)
	if err != nil {
		h.fail(w, r, "memberships."+req.Action, err, "membership_id", membershipID)
		return
	}
	if err := h.Access.Require(ctx, user.ID, access.MembershipEdit, access.Subject{Membership: current}); err != nil {
		h.fail(w, r, "memberships."+req.Action, err, "membership_id", membershipID)
		return
	}

	var membership *groupdomain.Membership
	switch req.Action {
	case membershipActionPromote:
		membership, err = h.Groups.ChangeRole(ctx, user.ID, membershipID, groupdomain.RoleAdmin)
	case membershipActionDemote:
		membership, err = h.Groups.ChangeRole(ctx, user.ID, membershipID, groupdomain.RoleMember)
	default:
		membership, err = h.Groups.Ban(ctx, user.ID, membershipID)
	}
	if err != nil {
		h.fail(w, r, "memberships."+req.Action, err, "membership_id", membershipID)
		return
	}

	writeJSON(w, http.StatusOK, toMembershipResponse(membership))
}

// DeleteMembership covers leaving a group and removal by the creator.
func (h *Handlers) DeleteMembership(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	membershipID := chi.URLParam(r, "id")

	current, err := h.Groups.GetMembership(r.Context(), membershipID)
	if err != nil {
		h.fail(w, r, "memberships.delete", err, "membership_id", membershipID)
		return
	}
	if err := h.Access.Require(r.Context(), user.ID, access.MembershipDelete, access.Subject{Membership: current}); err != nil {
		h.fail(w, r, "memberships.delete", err, "membership_id", membershipID)
		return
	}

	if err := h.Groups.DeleteMembership(r.Context(), user.ID, membershipID); err != nil {
		h.fail(w, r, "memberships.delete", err, "membership_id", membershipID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
