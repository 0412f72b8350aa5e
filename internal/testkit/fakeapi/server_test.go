package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, s *Server, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	s := New()
	u := s.SeedUser("alice", "alice@example.com", "secret123")

	rec, out := do(t, s, http.MethodPost, "/api/auth/login", "", `{"username":"alice","password":"secret123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	token, _ := out["token"].(string)
	id, err := s.userIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	rec, out = do(t, s, http.MethodPost, "/api/auth/login", "", `{"username":"alice","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", out["error"])
}

func TestAuthenticate(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	s := New(WithClock(func() time.Time { return now }))
	u := s.SeedUser("alice", "alice@example.com", "secret123")

	rec, out := do(t, s, http.MethodGet, "/api/hikes", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Access denied. No token provided.", out["error"])

	expired, err := s.IssueToken(u.ID, -time.Second)
	require.NoError(t, err)
	rec, _ = do(t, s, http.MethodGet, "/api/hikes", expired, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	valid, err := s.IssueToken(u.ID, time.Hour)
	require.NoError(t, err)
	rec, out = do(t, s, http.MethodGet, "/api/hikes", valid, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, out["count"])

	s.RotateSecret("other")
	rec, _ = do(t, s, http.MethodGet, "/api/hikes", valid, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHikeRoutes(t *testing.T) {
	s := New()
	u := s.SeedUser("alice", "alice@example.com", "secret123")
	token, err := s.IssueToken(u.ID, time.Hour)
	require.NoError(t, err)

	rec, out := do(t, s, http.MethodPost, "/api/hikes", token, `{"location":"Skye"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errs, _ := out["errors"].([]any)
	assert.NotEmpty(t, errs)

	rec, out = do(t, s, http.MethodPost, "/api/hikes", token,
		`{"name":"Sgurr Alasdair","location":"Skye","date":"2024-07-02","length":9,"difficulty":"hard"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.EqualValues(t, 1+u.ID, out["hikeId"])

	rec, _ = do(t, s, http.MethodGet, "/api/hikes/all?minLength=10", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, out = do(t, s, http.MethodGet, "/api/hikes/search/all/name", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name query parameter is required", out["error"])

	rec, _ = do(t, s, http.MethodGet, "/api/hikes/999/observations", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, s, http.MethodGet, "/api/hikes/observations/999", token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, s, http.MethodGet, "/api/hikes/abc", token, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Len(t, s.Requests(), 7)
}
