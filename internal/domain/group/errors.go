package group

import "errors"

var (
	ErrGroupNotFound      = errors.New("group not found")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrNameRequired       = errors.New("name is required")
	ErrActorRequired      = errors.New("authenticated user required")
	ErrAlreadyMember      = errors.New("membership already exists")
	ErrBanned             = errors.New("user is banned from group")
	ErrNotCreator         = errors.New("not group creator")
	ErrNotGroupAdmin      = errors.New("not group admin")
	ErrNotPending         = errors.New("membership is not pending")
	ErrNotActive          = errors.New("membership is not active")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidInvitee     = errors.New("invalid invitee")
	ErrCreatorRoleFixed   = errors.New("creator membership cannot change")
	ErrCreatorCannotLeave = errors.New("creator cannot leave group")
)
