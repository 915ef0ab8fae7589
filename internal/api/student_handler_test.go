package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msoledad/aula-api/internal/domain"
)

func TestCreateProfile(t *testing.T) {
	t.Parallel()

	profiles := newFakeProfileStore()
	h := NewStudentHandler(profiles)
	userID := uuid.New()

	r := newAuthedRequest(t, http.MethodPost, "/api/students/profile", userID, ProfileRequest{
		FirstName:      "Sofía",
		LastName:       "Martínez",
		BirthDate:      "2012-03-15",
		LearningStyle:  "visual",
		EducationLevel: "primaria",
	})
	w := httptest.NewRecorder()

	h.CreateProfile(w, r)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decodeBody[domain.Profile](t, w)
	assert.Equal(t, userID, resp.UserID)
	assert.Equal(t, "Sofía", resp.FirstName)
	assert.Equal(t, domain.LearningStyleVisual, resp.LearningStyle)
	require.NotNil(t, resp.BirthDate)
	assert.Equal(t, 2012, resp.BirthDate.Year())

	stored, err := profiles.GetByUserID(r.Context(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Martínez", stored.LastName)
}

func TestCreateProfileDuplicate(t *testing.T) {
	t.Parallel()

	profiles := newFakeProfileStore()
	h := NewStudentHandler(profiles)
	userID := uuid.New()

	existing, err := domain.NewProfile(userID, "Sofía", "Martínez", nil, "", "")
	require.NoError(t, err)
	require.NoError(t, profiles.Create(context.Background(), existing))

	r := newAuthedRequest(t, http.MethodPost, "/api/students/profile", userID, ProfileRequest{
		FirstName: "Sofía",
		LastName:  "Martínez",
	})
	w := httptest.NewRecorder()

	h.CreateProfile(w, r)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestCreateProfileValidation(t *testing.T) {
	t.Parallel()

	h := NewStudentHandler(newFakeProfileStore())
	userID := uuid.New()

	tests := []struct {
		name string
		req  ProfileRequest
	}{
		{"missing first name", ProfileRequest{LastName: "Martínez"}},
		{"missing last name", ProfileRequest{FirstName: "Sofía"}},
		{"bad birth date", ProfileRequest{FirstName: "Sofía", LastName: "Martínez", BirthDate: "15/03/2012"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := newAuthedRequest(t, http.MethodPost, "/api/students/profile", userID, tc.req)
			w := httptest.NewRecorder()

			h.CreateProfile(w, r)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetProfileNotFound(t *testing.T) {
	t.Parallel()

	h := NewStudentHandler(newFakeProfileStore())

	r := newAuthedRequest(t, http.MethodGet, "/api/students/profile", uuid.New(), nil)
	w := httptest.NewRecorder()

	h.GetProfile(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Student profile not found")
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	profiles := newFakeProfileStore()
	h := NewStudentHandler(profiles)
	userID := uuid.New()

	existing, err := domain.NewProfile(userID, "Sofía", "Martínez", nil, domain.LearningStyleVisual, "primaria")
	require.NoError(t, err)
	require.NoError(t, profiles.Create(context.Background(), existing))

	r := newAuthedRequest(t, http.MethodPut, "/api/students/profile", userID, ProfileRequest{
		FirstName:      "Sofía",
		LastName:       "Martínez García",
		LearningStyle:  "kinesthetic",
		EducationLevel: "secundaria",
	})
	w := httptest.NewRecorder()

	h.UpdateProfile(w, r)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stored, err := profiles.GetByUserID(r.Context(), userID)
	require.NoError(t, err)
	assert.Equal(t, "Martínez García", stored.LastName)
	assert.Equal(t, domain.LearningStyleKinesthetic, stored.LearningStyle)
	assert.Equal(t, "secundaria", stored.EducationLevel)
}

func TestUpdateProfileNotFound(t *testing.T) {
	t.Parallel()

	h := NewStudentHandler(newFakeProfileStore())

	r := newAuthedRequest(t, http.MethodPut, "/api/students/profile", uuid.New(), ProfileRequest{
		FirstName: "Sofía",
		LastName:  "Martínez",
	})
	w := httptest.NewRecorder()

	h.UpdateProfile(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
