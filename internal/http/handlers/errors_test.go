package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"catalog-api/internal/db"
	"catalog-api/internal/models"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"api error", BadRequest("Bad request, missing %s.", "name"), http.StatusBadRequest, `{"error":"Bad request, missing name."}`},
		{"wrapped api error", fmt.Errorf("ctx: %w", NotFound("gone")), http.StatusNotFound, `{"error":"gone"}`},
		{"store not found", fmt.Errorf("get: %w", db.ErrNotFound), http.StatusNotFound, `{"error":"Resource not found."}`},
		{"store conflict", fmt.Errorf("insert: %w", db.ErrConflict), http.StatusBadRequest, `{"error":"Resource already exists."}`},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError, `{"error":"Internal server error"}`},
		{"details", &APIError{Status: 400, Message: "nope", Details: map[string]any{"planets": []int{1}}}, http.StatusBadRequest, `{"error":"nope","planets":[1]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, httptest.NewRequest("GET", "/", nil), tt.err)
			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestDetailsCannotOverrideError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest("GET", "/", nil),
		&APIError{Status: 400, Message: "real", Details: map[string]any{"error": "fake"}})
	assert.JSONEq(t, `{"error":"real"}`, rec.Body.String())
}

// failingStore fails every call with err.
type failingStore struct {
	err error
}

func (s failingStore) CreateUser(context.Context, *models.User) error {
	return s.err
}

func (s failingStore) UsernameExists(context.Context, string) (bool, error) {
	return false, s.err
}

func (s failingStore) EmailExists(context.Context, string) (bool, error) {
	return false, s.err
}

func (s failingStore) GetUserByUsername(context.Context, string) (*models.User, error) {
	return nil, s.err
}

func (s failingStore) GetUserByID(context.Context, int) (*models.User, error) {
	return nil, s.err
}

func (s failingStore) ListUsers(context.Context) ([]*models.User, error) {
	return nil, s.err
}

func TestStoreFailureIsInternalError(t *testing.T) {
	h := NewUserHandler(failingStore{err: errors.New("connection refused")})

	rec := httptest.NewRecorder()
	h.GetUsers(rec, httptest.NewRequest("GET", "/api/users", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")

	rec = httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/users", strings.NewReader(`{"username":"a","email":"b","password":"c"}`))
	h.CreateUser(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// racingStore passes the uniqueness pre-checks but loses the insert.
type racingStore struct {
	failingStore
}

func (racingStore) UsernameExists(context.Context, string) (bool, error) { return false, nil }
func (racingStore) EmailExists(context.Context, string) (bool, error)    { return false, nil }

func TestCreateUserLostRace(t *testing.T) {
	h := NewUserHandler(racingStore{failingStore{err: fmt.Errorf("create user: %w", db.ErrConflict)}})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/users", strings.NewReader(`{"username":"a","email":"b","password":"c"}`))
	h.CreateUser(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Username a or email b already exists."}`, rec.Body.String())
}

func TestPathID(t *testing.T) {
	for raw, ok := range map[string]bool{"1": true, "42": true, "0": false, "-3": false, "x": false, "": false} {
		req := mux.SetURLVars(httptest.NewRequest("GET", "/", nil), map[string]string{"user_id": raw})
		id, err := pathID(req, "user_id")
		if ok {
			assert.NoError(t, err, raw)
			assert.Positive(t, id, raw)
			continue
		}
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr, raw)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	}
}

func TestRequireFields(t *testing.T) {
	assert.NoError(t, requireFields(field{"a", true}, field{"b", true}))

	err := requireFields(field{"a", true}, field{"b", false}, field{"c", false})
	assert.EqualError(t, err, "Bad request, missing b.")
}
