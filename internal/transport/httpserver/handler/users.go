package handler

import (
	"net/http"
	"time"

	keyworddomain "dogwalk-app-go/internal/domain/keyword"
	userdomain "dogwalk-app-go/internal/domain/user"
)

type updateProfileRequest struct {
	DisplayName optionalNullableString `json:"display_name"`
	Keywords    *[]string              `json:"keywords" validate:"omitempty,max=30,dive,max=64"`
}

type profileResponse struct {
	UserID      string            `json:"user_id"`
	Email       *string           `json:"email"`
	AvatarURL   *string           `json:"avatar_url"`
	DisplayName *string           `json:"display_name"`
	Keywords    []keywordResponse `json:"keywords"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func toProfileResponse(profile *userdomain.Profile, keywords []keyworddomain.Keyword) profileResponse {
	return profileResponse{
		UserID:      profile.UserID,
		Email:       profile.Email,
		AvatarURL:   profile.AvatarURL,
		DisplayName: profile.DisplayName,
		Keywords:    toKeywordResponses(keywords),
		CreatedAt:   profile.CreatedAt,
		UpdatedAt:   profile.UpdatedAt,
	}
}

func (h *Handlers) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	profile, err := h.Users.GetProfile(r.Context(), user.ID)
	if err != nil {
		h.fail(w, r, "users.get_me", err)
		return
	}
	keywords, err := h.Keywords.GetKeywords(r.Context(), keyworddomain.UserRef(user.ID))
	if err != nil {
		h.fail(w, r, "users.get_me: keywords", err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(profile, keywords))
}

func (h *Handlers) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req updateProfileRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	ctx := r.Context()
	profile, err := h.Users.GetProfile(ctx, user.ID)
	if err != nil {
		h.fail(w, r, "users.update_me", err)
		return
	}
	if req.DisplayName.Set {
		displayName := ""
		if req.DisplayName.Value != nil {
			displayName = *req.DisplayName.Value
		}
		if profile, err = h.Users.UpdateDisplayName(ctx, user.ID, displayName); err != nil {
			h.fail(w, r, "users.update_me", err)
			return
		}
	}

	keywords, err := h.applyKeywords(ctx, keyworddomain.UserRef(user.ID), req.Keywords)
	if err != nil {
		h.fail(w, r, "users.update_me: keywords", err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(profile, keywords))
}
