package handler

import (
	"net/http"
	"time"

	matchdomain "dogwalk-app-go/internal/domain/match"
)

type recordMatchRequest struct {
	TargetUser string `json:"target_user" validate:"required"`
	Action     string `json:"action" validate:"required"`
}

type matchResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user"`
	TargetUser string    `json:"target_user"`
	Action     string    `json:"action"`
	MatchScore *string   `json:"match_score"`
	Mutual     bool      `json:"mutual"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (h *Handlers) RecordMatch(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req recordMatchRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	action, err := matchdomain.ParseAction(req.Action)
	if err != nil {
		h.fail(w, r, "matches.record", err, "action", req.Action)
		return
	}

	result, err := h.Matches.Record(r.Context(), user.ID, req.TargetUser, action)
	if err != nil {
		h.fail(w, r, "matches.record", err, "target_user", req.TargetUser)
		return
	}

	writeJSON(w, http.StatusOK, matchResponse{
		ID:         result.Match.ID,
		UserID:     result.Match.UserID,
		TargetUser: result.Match.TargetUserID,
		Action:     string(result.Match.Action),
		MatchScore: result.Match.MatchScore,
		Mutual:     result.Mutual,
		CreatedAt:  result.Match.CreatedAt,
		UpdatedAt:  result.Match.UpdatedAt,
	})
}

func (h *Handlers) ListMutualMatches(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	ids, err := h.Matches.ListMutual(r.Context(), user.ID)
	if err != nil {
		h.fail(w, r, "matches.list_mutual", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"users": ids})
}
