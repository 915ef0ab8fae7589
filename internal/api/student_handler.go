package api

import (
	"net/http"
	"time"

	"github.com/msoledad/aula-api/internal/api/shared"
	"github.com/msoledad/aula-api/internal/domain"
	"github.com/msoledad/aula-api/internal/store"
)

// StudentHandler handles student profile API requests.
type StudentHandler struct {
	profileStore store.ProfileStore
}

// NewStudentHandler creates a StudentHandler.
func NewStudentHandler(profileStore store.ProfileStore) *StudentHandler {
	return &StudentHandler{profileStore: profileStore}
}

// CreateProfile handles POST /api/students/profile.
func (h *StudentHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	req, ok := decodeProfileRequest(w, r)
	if !ok {
		return
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid birth_date format, expected YYYY-MM-DD")
		return
	}

	profile, err := domain.NewProfile(
		userID,
		req.FirstName,
		req.LastName,
		birthDate,
		domain.LearningStyle(req.LearningStyle),
		req.EducationLevel,
	)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.profileStore.Create(r.Context(), profile); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, profile)
}

// GetProfile handles GET /api/students/profile.
func (h *StudentHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	profile, err := h.profileStore.GetByUserID(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/students/profile.
func (h *StudentHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	req, ok := decodeProfileRequest(w, r)
	if !ok {
		return
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid birth_date format, expected YYYY-MM-DD")
		return
	}

	profile, err := h.profileStore.GetByUserID(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	profile.FirstName = req.FirstName
	profile.LastName = req.LastName
	profile.BirthDate = birthDate
	profile.LearningStyle = domain.LearningStyle(req.LearningStyle)
	profile.EducationLevel = req.EducationLevel
	profile.UpdatedAt = time.Now().UTC()

	if err := profile.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.profileStore.Update(r.Context(), profile); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}

func decodeProfileRequest(w http.ResponseWriter, r *http.Request) (ProfileRequest, bool) {
	var req ProfileRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return req, false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return req, false
	}
	return req, true
}

func parseBirthDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
