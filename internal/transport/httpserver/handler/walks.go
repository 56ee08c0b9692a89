package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"dogwalk-app-go/internal/domain/access"
	walkdomain "dogwalk-app-go/internal/domain/walk"
)

type createWalkRequest struct {
	WalkGroup   string `json:"walk_group" validate:"required"`
	Title       string `json:"title" validate:"required,max=160"`
	Description string `json:"description" validate:"max=4000"`
	StartsAt    string `json:"starts_at"`
}

type walkResponse struct {
	ID          string    `json:"id"`
	GroupID     string    `json:"walk_group"`
	CreatorID   string    `json:"creator_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toWalkResponse(walk *walkdomain.Walk) walkResponse {
	return walkResponse{
		ID:          walk.ID,
		GroupID:     walk.GroupID,
		CreatorID:   walk.CreatorID,
		Title:       walk.Title,
		Description: walk.Description,
		StartsAt:    walk.StartsAt,
		CreatedAt:   walk.CreatedAt,
		UpdatedAt:   walk.UpdatedAt,
	}
}

func (h *Handlers) CreateWalk(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req createWalkRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	startsAt, err := parseTimeParam(req.StartsAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "starts_at must be RFC 3339")
		return
	}

	if err := h.Access.Require(r.Context(), user.ID, access.WalkCreate, access.Subject{}); err != nil {
		h.fail(w, r, "walks.create", err)
		return
	}

	input := walkdomain.CreateWalkInput{
		GroupID:     strings.TrimSpace(req.WalkGroup),
		Title:       req.Title,
		Description: req.Description,
	}
	if startsAt != nil {
		input.StartsAt = *startsAt
	}

	walk, err := h.Walks.CreateWalk(r.Context(), user.ID, input)
	if err != nil {
		h.fail(w, r, "walks.create", err, "group_id", input.GroupID)
		return
	}

	writeJSON(w, http.StatusCreated, toWalkResponse(walk))
}

func (h *Handlers) GetWalk(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	walkID := chi.URLParam(r, "id")

	walk, err := h.Walks.GetWalk(r.Context(), walkID)
	if err != nil {
		h.fail(w, r, "walks.get", err, "walk_id", walkID)
		return
	}
	if err := h.Access.Require(r.Context(), user.ID, access.WalkView, access.Subject{Walk: walk}); err != nil {
		h.fail(w, r, "walks.get", err, "walk_id", walkID)
		return
	}

	writeJSON(w, http.StatusOK, toWalkResponse(walk))
}

func (h *Handlers) ListGroupWalks(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	groupID := chi.URLParam(r, "id")
	query := r.URL.Query()

	page, err := parsePagination(query.Get("limit"), query.Get("offset"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	from, err := parseTimeParam(query.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "from must be RFC 3339")
		return
	}

	group, err := h.Groups.GetGroup(r.Context(), groupID)
	if err != nil {
		h.fail(w, r, "walks.list", err, "group_id", groupID)
		return
	}
	if err := h.Access.Require(r.Context(), user.ID, access.WalkView, access.Subject{Group: group}); err != nil {
		h.fail(w, r, "walks.list", err, "group_id", groupID)
		return
	}

	walks, total, err := h.Walks.ListGroupWalks(r.Context(), groupID, walkdomain.ListFilter{
		From:   from,
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		h.fail(w, r, "walks.list", err, "group_id", groupID)
		return
	}

	items := make([]walkResponse, 0, len(walks))
	for i := range walks {
		items = append(items, toWalkResponse(&walks[i]))
	}
	writeJSON(w, http.StatusOK, listResponse[walkResponse]{Items: items, Total: total})
}
