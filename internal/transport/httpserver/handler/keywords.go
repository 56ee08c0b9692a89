package handler

import (
	"context"
	"net/http"

	keyworddomain "dogwalk-app-go/internal/domain/keyword"
	"dogwalk-app-go/internal/transport/httpserver/middleware"
)

type keywordResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

func toKeywordResponses(keywords []keyworddomain.Keyword) []keywordResponse {
	response := make([]keywordResponse, 0, len(keywords))
	for _, keyword := range keywords {
		response = append(response, keywordResponse{
			ID:       keyword.ID,
			Name:     keyword.Name,
			Category: string(keyword.Category),
		})
	}
	return response
}

func (h *Handlers) ListKeywords(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	keywords, err := h.Keywords.ListKeywords(r.Context(), category)
	if err != nil {
		h.fail(w, r, "keywords.list", err, "category", category)
		return
	}
	writeJSON(w, http.StatusOK, toKeywordResponses(keywords))
}

// applyKeywords runs after the entity is stored. A nil names pointer means the
// payload had no keywords field and the current tags are returned unchanged.
func (h *Handlers) applyKeywords(ctx context.Context, ref keyworddomain.Ref, names *[]string) ([]keyworddomain.Keyword, error) {
	if names == nil {
		return h.Keywords.GetKeywords(ctx, ref)
	}
	return h.Keywords.SyncKeywordNames(ctx, ref, *names)
}

func (h *Handlers) currentUser(w http.ResponseWriter, r *http.Request) (middleware.User, bool) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return middleware.User{}, false
	}
	return user, true
}
