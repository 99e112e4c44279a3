package handlers

import (
	"net/http"

	"github.com/AnshRaj112/jurnal-backend/internal/middleware"
	"github.com/AnshRaj112/jurnal-backend/internal/models"
	"github.com/AnshRaj112/jurnal-backend/internal/services"
)

type SignupRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Locale      *string `json:"locale"`
}

// AuthResponse carries the account and, for signup/signin, the bearer token.
type AuthResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	User    *models.User    `json:"user,omitempty"`
	Profile *models.Profile `json:"profile,omitempty"`
	Token   string          `json:"token,omitempty"`
}

// Signup handles POST /api/auth/signup.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decode(w, r, &req) {
		return
	}
	s, err := h.Auth.Signup(r.Context(), services.SignupInput{
		Username:    req.Username,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	}, locale(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, AuthResponse{
		Success: true,
		Message: translator(r).T("auth.signedUp"),
		User:    s.User,
		Profile: s.Profile,
		Token:   s.Token,
	})
}

// Signin handles POST /api/auth/signin.
func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if !decode(w, r, &req) {
		return
	}
	s, err := h.Auth.Signin(r.Context(), req.Username, req.Password, locale(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse{
		Success: true,
		Message: translator(r).T("auth.signedIn"),
		User:    s.User,
		Profile: s.Profile,
		Token:   s.Token,
	})
}

// Signout handles POST /api/auth/signout.
func (h *Handler) Signout(w http.ResponseWriter, r *http.Request) {
	if err := h.Auth.Signout(r.Context(), middleware.SessionToken(r.Context()), locale(r)); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, Response{Success: true, Message: translator(r).T("auth.signedOut")})
}

// Me handles GET /api/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	acct, err := h.Auth.Me(r.Context(), userID(r), locale(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse{Success: true, User: acct.User, Profile: acct.Profile})
}

// UpdateProfile handles PUT /api/auth/profile.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if !decode(w, r, &req) {
		return
	}
	p, err := h.Auth.UpdateProfile(r.Context(), userID(r), services.ProfileUpdate{
		DisplayName: req.DisplayName,
		Locale:      req.Locale,
	}, locale(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse{Success: true, Message: translator(r).T("auth.profileUpdated"), Profile: p})
}
