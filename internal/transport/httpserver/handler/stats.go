package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"dogwalk-app-go/internal/domain/access"
	groupdomain "dogwalk-app-go/internal/domain/group"
	statsdomain "dogwalk-app-go/internal/domain/stats"
)

type groupStatsResponse struct {
	GroupID         string `json:"walk_group"`
	ActiveMembers   int64  `json:"active_members"`
	PendingRequests int64  `json:"pending_requests"`
	PendingInvites  int64  `json:"pending_invites"`
	Banned          int64  `json:"banned"`
	TotalWalks      int64  `json:"total_walks"`
	UpcomingWalks   int64  `json:"upcoming_walks"`
}

type timeseriesPointResponse struct {
	Period string `json:"period"`
	Count  int64  `json:"count"`
}

// GetGroupStats is visible to the members who can see the group's walks.
func (h *Handlers) GetGroupStats(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	if _, ok := h.requireGroupWalkView(w, r, "stats.summary", groupID); !ok {
		return
	}

	summary, err := h.Stats.Summary(r.Context(), groupID)
	if err != nil {
		h.fail(w, r, "stats.summary", err, "group_id", groupID)
		return
	}

	writeJSON(w, http.StatusOK, groupStatsResponse{
		GroupID:         summary.GroupID,
		ActiveMembers:   summary.ActiveMembers,
		PendingRequests: summary.PendingRequests,
		PendingInvites:  summary.PendingInvites,
		Banned:          summary.Banned,
		TotalWalks:      summary.TotalWalks,
		UpcomingWalks:   summary.UpcomingWalks,
	})
}

func (h *Handlers) GetGroupWalkTimeseries(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")
	query := r.URL.Query()

	from, err := parseDateParam(query.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "from must be YYYY-MM-DD")
		return
	}
	to, err := parseDateParam(query.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "to must be YYYY-MM-DD")
		return
	}
	filter := statsdomain.TimeseriesFilter{
		GroupBy: statsdomain.GroupBy(strings.ToLower(strings.TrimSpace(query.Get("group_by")))),
	}
	if from != nil {
		filter.From = *from
	}
	if to != nil {
		filter.To = *to
	}

	if _, ok := h.requireGroupWalkView(w, r, "stats.walks", groupID); !ok {
		return
	}

	points, err := h.Stats.WalkTimeseries(r.Context(), groupID, filter)
	if err != nil {
		h.fail(w, r, "stats.walks", err, "group_id", groupID)
		return
	}

	response := make([]timeseriesPointResponse, 0, len(points))
	for _, point := range points {
		response = append(response, timeseriesPointResponse{Period: point.Period, Count: point.Count})
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) requireGroupWalkView(w http.ResponseWriter, r *http.Request, op, groupID string) (*groupdomain.Group, bool) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return nil, false
	}

	group, err := h.Groups.GetGroup(r.Context(), groupID)
	if err != nil {
		h.fail(w, r, op, err, "group_id", groupID)
		return nil, false
	}
	if err := h.Access.Require(r.Context(), user.ID, access.WalkView, access.Subject{Group: group}); err != nil {
		h.fail(w, r, op, err, "group_id", groupID)
		return nil, false
	}
	return group, true
}
