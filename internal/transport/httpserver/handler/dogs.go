package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	dogdomain "dogwalk-app-go/internal/domain/dog"
	keyworddomain "dogwalk-app-go/internal/domain/keyword"
)

type createDogRequest struct {
	Name      string    `json:"name" validate:"required,max=80"`
	Breed     *string   `json:"breed" validate:"omitempty,max=80"`
	BirthDate string    `json:"birth_date"`
	Keywords  *[]string `json:"keywords" validate:"omitempty,max=30,dive,max=64"`
}

type updateDogRequest struct {
	Name      *string                `json:"name" validate:"omitempty,max=80"`
	Breed     optionalNullableString `json:"breed"`
	BirthDate string                 `json:"birth_date"`
	Keywords  *[]string              `json:"keywords" validate:"omitempty,max=30,dive,max=64"`
}

type dogResponse struct {
	ID        string            `json:"id"`
	OwnerID   string            `json:"owner_id"`
	Name      string            `json:"name"`
	Breed     *string           `json:"breed"`
	BirthDate *string           `json:"birth_date"`
	Keywords  []keywordResponse `json:"keywords"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func toDogResponse(dog *dogdomain.Dog, keywords []keyworddomain.Keyword) dogResponse {
	var birthDate *string
	if dog.BirthDate != nil {
		formatted := dog.BirthDate.Format("2006-01-02")
		birthDate = &formatted
	}
	return dogResponse{
		ID:        dog.ID,
		OwnerID:   dog.OwnerID,
		Name:      dog.Name,
		Breed:     dog.Breed,
		BirthDate: birthDate,
		Keywords:  toKeywordResponses(keywords),
		CreatedAt: dog.CreatedAt,
		UpdatedAt: dog.UpdatedAt,
	}
}

func (h *Handlers) ListDogs(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	dogs, err := h.Dogs.ListDogs(r.Context(), user.ID)
	if err != nil {
		h.fail(w, r, "dogs.list", err)
		return
	}

	response := make([]dogResponse, 0, len(dogs))
	for i := range dogs {
		keywords, err := h.Keywords.GetKeywords(r.Context(), keyworddomain.DogRef(dogs[i].ID))
		if err != nil {
			h.fail(w, r, "dogs.list: keywords", err, "dog_id", dogs[i].ID)
			return
		}
		response = append(response, toDogResponse(&dogs[i], keywords))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) CreateDog(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}

	var req createDogRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	birthDate, err := parseDateParam(req.BirthDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "birth_date must be YYYY-MM-DD")
		return
	}

	dog, err := h.Dogs.CreateDog(r.Context(), dogdomain.CreateDogInput{
		OwnerID:   user.ID,
		Name:      req.Name,
		Breed:     req.Breed,
		BirthDate: birthDate,
	})
	if err != nil {
		h.fail(w, r, "dogs.create", err)
		return
	}

	keywords, err := h.applyKeywords(r.Context(), keyworddomain.DogRef(dog.ID), req.Keywords)
	if err != nil {
		h.fail(w, r, "dogs.create: keywords", err, "dog_id", dog.ID)
		return
	}

	writeJSON(w, http.StatusCreated, toDogResponse(dog, keywords))
}

func (h *Handlers) GetDog(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.currentUser(w, r); !ok {
		return
	}
	dogID := chi.URLParam(r, "id")

	dog, err := h.Dogs.GetDog(r.Context(), dogID)
	if err != nil {
		h.fail(w, r, "dogs.get", err, "dog_id", dogID)
		return
	}
	keywords, err := h.Keywords.GetKeywords(r.Context(), keyworddomain.DogRef(dog.ID))
	if err != nil {
		h.fail(w, r, "dogs.get: keywords", err, "dog_id", dogID)
		return
	}

	writeJSON(w, http.StatusOK, toDogResponse(dog, keywords))
}

func (h *Handlers) UpdateDog(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	dogID := chi.URLParam(r, "id")

	var req updateDogRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	birthDate, err := parseDateParam(req.BirthDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "birth_date must be YYYY-MM-DD")
		return
	}

	input := dogdomain.UpdateDogInput{
		OwnerID:   user.ID,
		DogID:     dogID,
		Name:      req.Name,
		BirthDate: birthDate,
	}
	if req.Breed.Set {
		empty := ""
		input.Breed = &empty
		if req.Breed.Value != nil {
			input.Breed = req.Breed.Value
		}
	}

	dog, err := h.Dogs.UpdateDog(r.Context(), input)
	if err != nil {
		h.fail(w, r, "dogs.update", err, "dog_id", dogID)
		return
	}

	keywords, err := h.applyKeywords(r.Context(), keyworddomain.DogRef(dog.ID), req.Keywords)
	if err != nil {
		h.fail(w, r, "dogs.update: keywords", err, "dog_id", dogID)
		return
	}

	writeJSON(w, http.StatusOK, toDogResponse(dog, keywords))
}

func (h *Handlers) DeleteDog(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	dogID := chi.URLParam(r, "id")

	if err := h.Dogs.DeleteDog(r.Context(), user.ID, dogID); err != nil {
		h.fail(w, r, "dogs.delete", err, "dog_id", dogID)
		return
	}
	if err := h.Keywords.DeleteAll(r.Context(), keyworddomain.DogRef(dogID)); err != nil {
		h.fail(w, r, "dogs.delete: keywords", err, "dog_id", dogID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
