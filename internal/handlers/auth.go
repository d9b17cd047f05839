// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"gogevgelija/internal/auth"
	"gogevgelija/internal/i18n"
	"gogevgelija/internal/middleware"
	"gogevgelija/internal/models"
	"gogevgelija/internal/session"
	"gogevgelija/internal/store"
)

// Auth groups registration, login, token refresh, profile, language
// preference, and guest session endpoints.
type Auth struct {
	users  *store.UserStore
	guests *session.Store
	tokens *auth.TokenManager
}

// NewAuth creates a new Auth handler group.
func NewAuth(users *store.UserStore, guests *session.Store, tokens *auth.TokenManager) *Auth {
	return &Auth{users: users, guests: guests, tokens: tokens}
}

type registerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	DisplayName string `json:"display_name" validate:"required,max=100"`
	Language    string `json:"language_preference" validate:"omitempty,oneof=en mk"`
}

// Register creates a member account and returns a token pair.
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	existing, err := a.users.FindByEmail(req.Email)
	if err != nil {
		slog.Error("register lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}

	user, err := a.users.Create(req.Email, req.Password, req.DisplayName, models.RoleMember, req.Language)
	if err != nil {
		slog.Error("register create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	pair, err := a.tokens.IssuePair(user, false)
	if err != nil {
		slog.Error("issue tokens failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"user": user, "tokens": pair})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login verifies credentials and returns a token pair. Admin tokens
// start without the 2FA flag; the back-office verify endpoint upgrades
// them after the TOTP challenge.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := a.users.FindByEmail(req.Email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if user == nil || !a.users.CheckPassword(user, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	pair, err := a.tokens.IssuePair(user, false)
	if err != nil {
		slog.Error("issue tokens failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := map[string]any{"user": user, "tokens": pair}
	if user.IsAdmin() {
		resp["needs_2fa_setup"] = user.Needs2FASetup()
	}
	writeJSON(w, http.StatusOK, resp)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Refresh exchanges a valid refresh token for a fresh pair. The 2FA
// flag is deliberately not carried over; admins re-verify after refresh.
func (a *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	claims, err := a.tokens.Verify(req.RefreshToken, auth.TokenTypeRefresh)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	user, err := a.users.FindByID(claims.UserID)
	if err != nil {
		slog.Error("refresh lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "account no longer exists")
		return
	}

	pair, err := a.tokens.IssuePair(user, false)
	if err != nil {
		slog.Error("issue tokens failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tokens": pair})
}

type guestRequest struct {
	Language string `json:"language_preference" validate:"omitempty,oneof=en mk"`
}

// Guest creates an anonymous session so unregistered users keep their
// language preference. The client stores the ID and sends it back via
// the X-Guest-ID header.
func (a *Auth) Guest(w http.ResponseWriter, r *http.Request) {
	var req guestRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Language == "" {
		req.Language = string(i18n.Default)
	}

	guest, err := a.guests.Create(r.Context(), req.Language)
	if err != nil {
		slog.Error("guest create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, guest)
}

// Me returns the authenticated user's profile.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := a.currentUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	DisplayName string `json:"display_name" validate:"required,max=100"`
}

// UpdateMe changes the authenticated user's display name.
func (a *Auth) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := a.currentUser(w, r)
	if !ok {
		return
	}
	var req updateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := a.users.UpdateProfile(user.ID, req.DisplayName); err != nil {
		slog.Error("update profile failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	user.DisplayName = req.DisplayName
	writeJSON(w, http.StatusOK, user)
}

// GetLanguage returns the authenticated user's stored language.
func (a *Auth) GetLanguage(w http.ResponseWriter, r *http.Request) {
	user, ok := a.currentUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"language_preference": user.Language})
}

type setLanguageRequest struct {
	Language string `json:"language_preference" validate:"required,oneof=en mk"`
}

// SetLanguage stores the authenticated user's language preference.
func (a *Auth) SetLanguage(w http.ResponseWriter, r *http.Request) {
	user, ok := a.currentUser(w, r)
	if !ok {
		return
	}
	var req setLanguageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := a.users.SetLanguage(user.ID, req.Language); err != nil {
		slog.Error("set language failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"language_preference": req.Language})
}

// currentUser loads the user behind the request's verified claims.
func (a *Auth) currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}
	user, err := a.users.FindByID(claims.UserID)
	if err != nil {
		slog.Error("current user lookup failed", "error", err, "user", claims.UserID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return nil, false
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "account no longer exists")
		return nil, false
	}
	return user, true
}
