package handler

import (
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/barovia-dm/tracker/internal/auth"
	"github.com/barovia-dm/tracker/internal/logger"
)

// Session keys shared by the login handler and the auth gate middleware
const (
	SessionAuthenticatedKey = "authenticated"
	SessionPlayerIDKey      = "player_id"
	SessionPlayerNameKey    = "player_name"
	SessionPlayerLevelKey   = "player_level"
)

// LoginRequest carries player credentials
type LoginRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse confirms a successful login
type LoginResponse struct {
	Ok    bool   `json:"ok"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// AuthHandler handles login and logout
type AuthHandler struct {
	svc      auth.Service
	sessions *scs.SessionManager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(svc auth.Service, sessions *scs.SessionManager) *AuthHandler {
	return &AuthHandler{svc: svc, sessions: sessions}
}

// Login handles POST /login. The session token is renewed on success so a
// pre-login session id never survives authentication.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req LoginRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Login"); err != nil {
		return
	}

	session, err := h.svc.Authenticate(r.Context(), req.Name, req.Password)
	if err != nil {
		respondServiceError(w, r, "Login", err)
		return
	}

	if err := h.sessions.RenewToken(r.Context()); err != nil {
		log.Error("Failed to renew session token", "error", err)
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	h.sessions.Put(r.Context(), SessionAuthenticatedKey, true)
	h.sessions.Put(r.Context(), SessionPlayerIDKey, session.PlayerID)
	h.sessions.Put(r.Context(), SessionPlayerNameKey, session.Name)
	h.sessions.Put(r.Context(), SessionPlayerLevelKey, session.Level)

	respondJSON(w, http.StatusOK, LoginResponse{Ok: true, Name: session.Name, Level: session.Level})
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		logger.FromContext(r.Context()).Error("Failed to destroy session", "error", err)
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	respondJSON(w, http.StatusOK, OkResponse{Ok: true})
}

// RequireAuth gates a route subtree behind the session authenticated flag
func RequireAuth(sessions *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sessions.GetBool(r.Context(), SessionAuthenticatedKey) {
				respondError(w, http.StatusUnauthorized, ErrMsgNotAuthenticated)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
