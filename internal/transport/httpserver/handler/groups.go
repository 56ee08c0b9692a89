package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dogwalk-app-go/internal/domain/access"
	groupdomain "dogwalk-app-go/internal/domain/group"
	keyworddomain "dogwalk-app-go/internal/domain/keyword"
)

type createGroupRequest struct {
	Name        string    `json:"name" validate:"required,max=120"`
	Description string    `json:"description" validate:"max=2000"`
	Keywords    *[]string `json:"keywords" validate:"omitempty,max=30,dive,max=64"`
}

type updateGroupRequest struct {
	Name        *string   `json:"name" validate:"omitempty,max=120"`
	Description *string   `json:"description" validate:"omitempty,max=2000"`
	Keywords    *[]string `json:"keywords" validate:"omitempty,max=30,dive,max=64"`
}

type groupResponse struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	CreatorID   string                 `json:"creator_id"`
	Keywords    []keywordResponse      `json:"keywords"`
	Permissions map[access.Action]bool `json:"permissions,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

func toGroupResponse(group *groupdomain.Group, keywords []keyworddomain.Keyword) groupResponse {
	return groupResponse{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		CreatorID:   group.CreatorID,
		Keywords:    toKeywordResponses(keywords),
		CreatedAt:   group.CreatedAt,
		UpdatedAt:   group.UpdatedAt,
	}
}

var groupPermissionActions = []access.Action{
	access.GroupEdit,
	access.GroupDelete,
	access.WalkView,
	access.WalkCreate,
}

func (h *Handlers) ListGroups(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.currentUser(w, r); !ok {
		return
	}
	page, err := parsePagination(r.URL.Query().Get("limit"), r.URL.Query().Get("offset"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	groups, total, err := h.Groups.ListGroups(r.Context(), groupdomain.ListFilter{Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		h.fail(w, r, "groups.list", err)
		return
	}

	items := make([]groupResponse, 0, len(groups))
	for i := range groups {
		keywords, err := h.Keywords.GetKeywords(r.Context(), keyworddomain.GroupRef(groups[i].ID))
		if err != nil {
			h.fail(w, r, "groups.list: keywords", err, "group_id", groups[i].ID)
			return
		}
		items = append(items, toGroupResponse(&groups[i], keywords))
	}
	writeJSON(w, http.StatusOK, listResponse[groupResponse]{Items: items, Total: total})
}

// CreateGroup stores the group and its creator membership, then tags the
// group once it has its id.
func (h *Handlers) CreateGroup(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req createGroupRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	group, err := h.Groups.CreateGroup(r.Context(), user.ID, groupdomain.CreateGroupInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.fail(w, r, "groups.create", err)
		return
	}

	keywords, err := h.applyKeywords(r.Context(), keyworddomain.GroupRef(group.ID), req.Keywords)
	if err != nil {
		h.fail(w, r, "groups.create: keywords", err, "group_id", group.ID)
		return
	}

	writeJSON(w, http.StatusCreated, toGroupResponse(group, keywords))
}

func (h *Handlers) GetGroup(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	groupID := chi.URLParam(r, "id")

	group, err := h.Groups.GetGroup(r.Context(), groupID)
	if err != nil {
		h.fail(w, r, "groups.get", err, "group_id", groupID)
		return
	}
	keywords, err := h.Keywords.GetKeywords(r.Context(), keyworddomain.GroupRef(group.ID))
	if err != nil {
		h.fail(w, r, "groups.get: keywords", err, "group_id", groupID)
		return
	}
	permissions, err := h.Access.Permissions(r.Context(), user.ID, access.Subject{Group: group}, groupPermissionActions...)
	if err != nil {
		h.fail(w, r, "groups.get: permissions", err, "group_id", groupID)
		return
	}

	response := toGroupResponse(group, keywords)
	response.Permissions = permissions
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) UpdateGroup(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	groupID := chi.URLParam(r, "id")

	var req updateGroupRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	group, err := h.Groups.GetGroup(r.Context(), groupID)
	if err != nil {
		h.fail(w, r, "groups.update", err, "group_id", groupID)
		return
	}
	if err := h.Access.Require(r.Context(), user.ID, access.GroupEdit, access.Subject{Group: group}); err != nil {
		h.fail(w, r, "groups.update", err, "group_id", groupID)
		return
	}

	group, err = h.Groups.UpdateGroup(r.Context(), user.ID, groupID, groupdomain.UpdateGroupInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.fail(w, r, "groups.update", err, "group_id", groupID)
		return
	}

	keywords, err := h.applyKeywords(r.Context(), keyworddomain.GroupRef(group.ID), req.Keywords)
	if err != nil {
		h.fail(w, r, "groups.update: keywords", err, "group_id", groupID)
		return
	}

	writeJSON(w, http.StatusOK, toGroupResponse(group, keywords))
}

func (h *Handlers) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	groupID := chi.URLParam(r, "id")

	group, err := h.Groups.GetGroup(r.Context(), groupID)
	if err != nil {
		h.fail(w, r, "groups.delete", err, "group_id", groupID)
		return
	}
	if err := h.Access.Require(r.Context(), user.ID, access.GroupDelete, access.Subject{Group: group}); err != nil {
		h.fail(w, r, "groups.delete", err, "group_id", groupID)
		return
	}

	if err := h.Groups.DeleteGroup(r.Context(), user.ID, groupID); err != nil {
		h.fail(w, r, "groups.delete", err, "group_id", groupID)
		return
	}
	if err := h.Keywords.DeleteAll(r.Context(), keyworddomain.GroupRef(groupID)); err != nil {
		h.fail(w, r, "groups.delete: keywords", err, "group_id", groupID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListGroupMemberships(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.currentUser(w, r); !ok {
		return
	}
	groupID := chi.URLParam(r, "id")

	var status *groupdomain.Status
	if value := r.URL.Query().Get("status"); value != "" {
		parsed := groupdomain.Status(value)
		if !parsed.Valid() {
			writeError(w, http.StatusBadRequest, "invalid_request", "unknown membership status")
			return
		}
		status = &parsed
	}

	memberships, err := h.Groups.ListMemberships(r.Context(), groupID, status)
	if err != nil {
		h.fail(w, r, "groups.list_memberships", err, "group_id", groupID)
		return
	}

	response := make([]membershipResponse, 0, len(memberships))
	for i := range memberships {
		response = append(response, toMembershipResponse(&memberships[i]))
	}
	writeJSON(w, http.StatusOK, response)
}
