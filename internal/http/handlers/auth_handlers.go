package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/warehouse-inventory/internal/auth"
	"github.com/rogerio-castellano/warehouse-inventory/internal/logger"
	"github.com/rogerio-castellano/warehouse-inventory/internal/repo"
)

// LoginHandler godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "email and password"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := readJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid input")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		respondError(w, r, http.StatusBadRequest, "email and password are required")
		return
	}

	user, token, err := s.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			logger.Warn(r.Context()).Str("email", req.Email).Msg("failed login")
			respondError(w, r, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		respondInternal(w, r, err, "could not log in")
		return
	}

	respondData(w, r, http.StatusOK, LoginResult{User: user, Token: token})
}

// LogoutHandler godoc
// @Summary Logout current user
// @Tags auth
// @Produce json
// @Success 200 {object} Response
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/logout [post]
// @Security BearerAuth
func (s *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, "missing token")
		return
	}

	if err := s.Auth.Logout(r.Context(), claims); err != nil {
		respondInternal(w, r, err, "could not revoke token")
		return
	}
	respond(w, r, http.StatusOK, Response{Success: true, Message: "Logged out successfully"})
}

// MeHandler godoc
// @Summary Get current user profile
// @Tags auth
// @Produce json
// @Success 200 {object} Response
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/auth/me [get]
// @Security BearerAuth
func (s *Server) MeHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, "missing token")
		return
	}

	user, err := s.Auth.Me(r.Context(), claims)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			respondError(w, r, http.StatusNotFound, "User not found")
			return
		}
		respondInternal(w, r, err, "could not fetch user")
		return
	}
	respondData(w, r, http.StatusOK, user)
}

// RefreshHandler godoc
// @Summary Refresh JWT token
// @Description Issues a new token and revokes the one used for the call.
// @Tags auth
// @Produce json
// @Success 200 {object} Response
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/refresh [post]
// @Security BearerAuth
func (s *Server) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, r, http.StatusUnauthorized, "missing token")
		return
	}

	token, err := s.Auth.Refresh(r.Context(), claims)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			respondError(w, r, http.StatusUnauthorized, "User no longer exists")
			return
		}
		respondInternal(w, r, err, "could not refresh token")
		return
	}
	respondData(w, r, http.StatusOK, RefreshResult{Token: token})
}
