package handler

import (
	"errors"
	"net/http"

	"dogwalk-app-go/internal/domain/access"
	dogdomain "dogwalk-app-go/internal/domain/dog"
	groupdomain "dogwalk-app-go/internal/domain/group"
	keyworddomain "dogwalk-app-go/internal/domain/keyword"
	matchdomain "dogwalk-app-go/internal/domain/match"
	statsdomain "dogwalk-app-go/internal/domain/stats"
	userdomain "dogwalk-app-go/internal/domain/user"
	walkdomain "dogwalk-app-go/internal/domain/walk"
	"dogwalk-app-go/internal/validation"
	"dogwalk-app-go/pkg/logger"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// errorMappings is checked in order with errors.Is.
var errorMappings = []errorMapping{
	{groupdomain.ErrGroupNotFound, http.StatusNotFound, "group_not_found"},
	{groupdomain.ErrMembershipNotFound, http.StatusNotFound, "membership_not_found"},
	{groupdomain.ErrNameRequired, http.StatusBadRequest, "invalid_request"},
	{groupdomain.ErrActorRequired, http.StatusForbidden, "actor_required"},
	{groupdomain.ErrAlreadyMember, http.StatusConflict, "already_member"},
	{groupdomain.ErrBanned, http.StatusForbidden, "banned"},
	{groupdomain.ErrNotCreator, http.StatusForbidden, "not_group_creator"},
	{groupdomain.ErrNotGroupAdmin, http.StatusForbidden, "not_group_admin"},
	{groupdomain.ErrNotPending, http.StatusConflict, "membership_not_pending"},
	{groupdomain.ErrNotActive, http.StatusConflict, "membership_not_active"},
	{groupdomain.ErrInvalidRole, http.StatusBadRequest, "invalid_role"},
	{groupdomain.ErrInvalidInvitee, http.StatusBadRequest, "invalid_invitee"},
	{groupdomain.ErrCreatorRoleFixed, http.StatusConflict, "creator_role_fixed"},
	{groupdomain.ErrCreatorCannotLeave, http.StatusConflict, "creator_cannot_leave"},

	{walkdomain.ErrWalkNotFound, http.StatusNotFound, "walk_not_found"},
	{walkdomain.ErrGroupNotFound, http.StatusNotFound, "group_not_found"},
	{walkdomain.ErrGroupRequired, http.StatusBadRequest, "invalid_request"},
	{walkdomain.ErrTitleRequired, http.StatusBadRequest, "invalid_request"},
	{walkdomain.ErrNotGroupMember, http.StatusForbidden, "not_group_member"},
	{walkdomain.ErrActorRequired, http.StatusForbidden, "actor_required"},

	{matchdomain.ErrMatchNotFound, http.StatusNotFound, "match_not_found"},
	{matchdomain.ErrInvalidAction, http.StatusBadRequest, "invalid_action"},
	{matchdomain.ErrSelfMatch, http.StatusBadRequest, "self_match"},
	{matchdomain.ErrTargetMissing, http.StatusBadRequest, "invalid_request"},
	{matchdomain.ErrActorRequired, http.StatusForbidden, "actor_required"},

	{dogdomain.ErrDogNotFound, http.StatusNotFound, "dog_not_found"},
	{dogdomain.ErrNotOwner, http.StatusForbidden, "not_dog_owner"},
	{dogdomain.ErrNameRequired, http.StatusBadRequest, "invalid_request"},
	{dogdomain.ErrOwnerRequired, http.StatusForbidden, "actor_required"},
	{dogdomain.ErrBirthInFuture, http.StatusBadRequest, "invalid_request"},

	{userdomain.ErrProfileNotFound, http.StatusNotFound, "profile_not_found"},
	{userdomain.ErrUserIDRequired, http.StatusForbidden, "actor_required"},

	{keyworddomain.ErrInvalidCategory, http.StatusBadRequest, "invalid_category"},
	{keyworddomain.ErrInvalidRef, http.StatusBadRequest, "invalid_request"},
	{keyworddomain.ErrInvalidKeyword, http.StatusBadRequest, "invalid_keyword"},

	{statsdomain.ErrInvalidGroupBy, http.StatusBadRequest, "invalid_request"},
	{statsdomain.ErrInvalidRange, http.StatusBadRequest, "invalid_request"},
	{statsdomain.ErrRangeTooLarge, http.StatusBadRequest, "invalid_request"},
}

// fail writes the response for err. Known domain errors are logged as
// business errors, everything else as internal errors with a generic body.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, op string, err error, args ...any) {
	log := logger.FromContext(r.Context(), h.log)

	var denial *access.Denial
	if errors.As(err, &denial) {
		log.BusinessError(op+": access denied", err, append(args, "action", denial.Action)...)
		writeError(w, http.StatusForbidden, "access_denied", denial.Message)
		return
	}

	var invalid *validation.Error
	if errors.As(err, &invalid) {
		log.BusinessError(op+": invalid request", err, args...)
		writeErrorDetails(w, http.StatusBadRequest, "validation_failed", "validation failed", invalid.Fields)
		return
	}

	for _, mapping := range errorMappings {
		if errors.Is(err, mapping.err) {
			log.BusinessError(op+": "+mapping.err.Error(), err, args...)
			writeError(w, mapping.status, mapping.code, mapping.err.Error())
			return
		}
	}

	log.InternalError(op+": failed", err, args...)
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
