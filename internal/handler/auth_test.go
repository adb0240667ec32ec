package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barovia-dm/tracker/internal/auth"
	"github.com/barovia-dm/tracker/internal/domain"
	"github.com/barovia-dm/tracker/internal/handler"
)

type stubAuthService struct {
	authenticate func(name, password string) (*auth.Session, error)
}

func (s *stubAuthService) Authenticate(ctx context.Context, name, password string) (*auth.Session, error) {
	return s.authenticate(name, password)
}

func newTestSessions() *scs.SessionManager {
	sm := scs.New()
	sm.Cookie.Secure = false
	return sm
}

func TestLogin_Success(t *testing.T) {
	handler.InitValidator()

	sessions := newTestSessions()
	svc := &stubAuthService{
		authenticate: func(name, password string) (*auth.Session, error) {
			return &auth.Session{PlayerID: 1, Name: name, Level: 3}, nil
		},
	}
	h := handler.NewAuthHandler(svc, sessions)

	body, err := json.Marshal(map[string]string{"name": "dungeon-master", "password": "ravenloft"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	sessions.LoadAndSave(http.HandlerFunc(h.Login)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp handler.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Ok)
	assert.Equal(t, "dungeon-master", resp.Name)
	assert.Equal(t, 3, resp.Level)

	// A session cookie must be issued on success
	require.NotEmpty(t, rec.Result().Cookies())
}

func TestLogin_BadCredentials(t *testing.T) {
	handler.InitValidator()

	sessions := newTestSessions()
	svc := &stubAuthService{
		authenticate: func(name, password string) (*auth.Session, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := handler.NewAuthHandler(svc, sessions)

	body, err := json.Marshal(map[string]string{"name": "stranger", "password": "wrong"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	sessions.LoadAndSave(http.HandlerFunc(h.Login)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), handler.ErrMsgLoginFailed)
}

func TestLogin_MissingFields(t *testing.T) {
	handler.InitValidator()

	sessions := newTestSessions()
	svc := &stubAuthService{
		authenticate: func(name, password string) (*auth.Session, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}
	h := handler.NewAuthHandler(svc, sessions)

	body, err := json.Marshal(map[string]string{"name": "dungeon-master"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	sessions.LoadAndSave(http.HandlerFunc(h.Login)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequireAuth(t *testing.T) {
	sessions := newTestSessions()

	protected := handler.RequireAuth(sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// No session: 401
	req := httptest.NewRequest(http.MethodGet, "/api/v1/alchemy/elements", nil)
	rec := httptest.NewRecorder()
	sessions.LoadAndSave(protected).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Authenticated session: pass through
	authed := sessions.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessions.Put(r.Context(), handler.SessionAuthenticatedKey, true)
		protected.ServeHTTP(w, r)
	}))
	req = httptest.NewRequest(http.MethodGet, "/api/v1/alchemy/elements", nil)
	rec = httptest.NewRecorder()
	authed.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogout_DestroysSession(t *testing.T) {
	sessions := newTestSessions()
	svc := &stubAuthService{}
	h := handler.NewAuthHandler(svc, sessions)

	wrapped := sessions.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessions.Put(r.Context(), handler.SessionAuthenticatedKey, true)
		h.Logout(w, r)
	}))

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "true")
}
