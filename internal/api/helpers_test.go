package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/msoledad/aula-api/internal/api/shared"
	"github.com/msoledad/aula-api/internal/domain"
	"github.com/msoledad/aula-api/internal/service/auth"
	"github.com/msoledad/aula-api/internal/store"
	"github.com/msoledad/aula-api/internal/task"
)

// newAuthedRequest builds a JSON request with the user ID already in the
// context, as the auth middleware would leave it.
func newAuthedRequest(t *testing.T, method, target string, userID uuid.UUID, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, target, &buf)
	if userID != uuid.Nil {
		r = r.WithContext(context.WithValue(r.Context(), shared.UserIDContextKey, userID))
	}
	return r
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

// --- store fakes ---

type fakeUserStore struct {
	users     map[uuid.UUID]*domain.User
	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uuid.UUID]*domain.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, u := range f.users {
		if u.Username == user.Username {
			return store.ErrUsernameExists
		}
		if u.Email == user.Email {
			return store.ErrEmailExists
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (f *fakeUserStore) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	u, ok := f.users[id]
	if !ok {
		return store.ErrUserNotFound
	}
	u.HashedPassword = hashedPassword
	return nil
}

func (f *fakeUserStore) WithTx(tx *sql.Tx) store.UserStore { return f }

type fakeProfileStore struct {
	profiles map[uuid.UUID]*domain.Profile // keyed by user ID
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[uuid.UUID]*domain.Profile)}
}

func (f *fakeProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	if _, ok := f.profiles[profile.UserID]; ok {
		return store.ErrProfileExists
	}
	f.profiles[profile.UserID] = profile
	return nil
}

func (f *fakeProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, store.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileStore) Update(ctx context.Context, profile *domain.Profile) error {
	if _, ok := f.profiles[profile.UserID]; !ok {
		return store.ErrProfileNotFound
	}
	f.profiles[profile.UserID] = profile
	return nil
}

func (f *fakeProfileStore) WithTx(tx *sql.Tx) store.ProfileStore { return f }

type fakeSubjectStore struct {
	subjects []*domain.Subject
	listErr  error
}

func (f *fakeSubjectStore) Create(ctx context.Context, subject *domain.Subject) error {
	f.subjects = append(f.subjects, subject)
	return nil
}

func (f *fakeSubjectStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subject, error) {
	for _, s := range f.subjects {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, store.ErrSubjectNotFound
}

func (f *fakeSubjectStore) List(ctx context.Context) ([]*domain.Subject, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.subjects, nil
}

func (f *fakeSubjectStore) WithTx(tx *sql.Tx) store.SubjectStore { return f }

type fakeProgressStore struct {
	records   []*domain.Progress
	upsertErr error
}

func (f *fakeProgressStore) Upsert(ctx context.Context, progress *domain.Progress) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.records = append(f.records, progress)
	return nil
}

func (f *fakeProgressStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	subjectID *uuid.UUID,
) ([]*domain.Progress, error) {
	out := []*domain.Progress{}
	for _, p := range f.records {
		if p.UserID != userID {
			continue
		}
		if subjectID != nil && p.SubjectID != *subjectID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProgressStore) WithTx(tx *sql.Tx) store.ProgressStore { return f }

type fakeEvaluationStore struct {
	evals     []*domain.Evaluation
	createErr error
}

func (f *fakeEvaluationStore) Create(ctx context.Context, eval *domain.Evaluation) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.evals = append(f.evals, eval)
	return nil
}

func (f *fakeEvaluationStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	subjectID *uuid.UUID,
	limit int,
) ([]*domain.Evaluation, error) {
	out := []*domain.Evaluation{}
	for _, e := range f.evals {
		if e.UserID != userID {
			continue
		}
		if subjectID != nil && e.SubjectID != *subjectID {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeEvaluationStore) LatestLevel(ctx context.Context, userID, subjectID uuid.UUID) (int, error) {
	return 0, nil
}

func (f *fakeEvaluationStore) WithTx(tx *sql.Tx) store.EvaluationStore { return f }

type fakeResourceStore struct {
	resources []*domain.Resource
}

func (f *fakeResourceStore) Create(ctx context.Context, resource *domain.Resource) error {
	f.resources = append(f.resources, resource)
	return nil
}

func (f *fakeResourceStore) List(
	ctx context.Context,
	subjectID *uuid.UUID,
	level *int,
) ([]*domain.Resource, error) {
	out := []*domain.Resource{}
	for _, res := range f.resources {
		if subjectID != nil && res.SubjectID != *subjectID {
			continue
		}
		if level != nil && res.Level != *level {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

func (f *fakeResourceStore) WithTx(tx *sql.Tx) store.ResourceStore { return f }

type fakeInteractionStore struct {
	interactions []*domain.Interaction
}

func (f *fakeInteractionStore) Create(ctx context.Context, interaction *domain.Interaction) error {
	f.interactions = append(f.interactions, interaction)
	return nil
}

func (f *fakeInteractionStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.Interaction, error) {
	out := []*domain.Interaction{}
	for _, in := range f.interactions {
		if in.UserID != userID {
			continue
		}
		out = append(out, in)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeInteractionStore) WithTx(tx *sql.Tx) store.InteractionStore { return f }

// --- auth fakes ---

type fakeJWTService struct {
	accessToken  string
	refreshToken string
	refreshUser  uuid.UUID
	generateErr  error
	validateErr  error
}

func (f *fakeJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if f.generateErr != nil {
		return "", f.generateErr
	}
	return f.accessToken, nil
}

func (f *fakeJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if f.generateErr != nil {
		return "", f.generateErr
	}
	return f.refreshToken, nil
}

func (f *fakeJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if f.validateErr != nil {
		return nil, f.validateErr
	}
	return &auth.Claims{UserID: f.refreshUser, TokenType: "access"}, nil
}

func (f *fakeJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if f.validateErr != nil {
		return nil, f.validateErr
	}
	if tokenString != f.refreshToken {
		return nil, auth.ErrInvalidRefreshToken
	}
	return &auth.Claims{UserID: f.refreshUser, TokenType: "refresh"}, nil
}

// fakeHasher hashes by prefixing and compares accordingly.
type fakeHasher struct {
	hashErr error
}

func (f *fakeHasher) Hash(password string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "hashed:" + password, nil
}

type fakeVerifier struct{}

func (f *fakeVerifier) Compare(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return auth.ErrInvalidCredentials
	}
	return nil
}

// --- task fakes ---

type fakeTaskService struct {
	enqueueErr   error
	lastType     string
	lastData     map[string]any
	enqueuedID   uuid.UUID
	results      map[uuid.UUID]task.Result
	enqueueCalls int
}

func newFakeTaskService() *fakeTaskService {
	return &fakeTaskService{
		enqueuedID: uuid.New(),
		results:    make(map[uuid.UUID]task.Result),
	}
}

func (f *fakeTaskService) Enqueue(taskType string, data map[string]any) (uuid.UUID, error) {
	f.enqueueCalls++
	if f.enqueueErr != nil {
		return uuid.Nil, f.enqueueErr
	}
	f.lastType = taskType
	f.lastData = data
	return f.enqueuedID, nil
}

func (f *fakeTaskService) GetResult(id uuid.UUID) task.Result {
	result, ok := f.results[id]
	if !ok {
		return task.Result{Status: task.StatusNotFound}
	}
	return result
}
