// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"gogevgelija/internal/auth"
	"gogevgelija/internal/models"
)

func testTokens() *auth.TokenManager {
	return auth.NewTokenManager("test-secret", 15*time.Minute, time.Hour)
}

func issueToken(t *testing.T, tokens *auth.TokenManager, role models.Role, twoFADone bool) string {
	t.Helper()
	pair, err := tokens.IssuePair(&models.User{ID: uuid.New(), Role: role}, twoFADone)
	if err != nil {
		t.Fatalf("IssuePair: %v", err)
	}
	return pair.AccessToken
}

// echoHandler records whether claims were present.
func echoHandler(sawClaims *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*sawClaims = ClaimsFromCtx(r.Context()) != nil
		w.WriteHeader(http.StatusOK)
	})
}

func TestLoadTokenValid(t *testing.T) {
	tokens := testTokens()
	var sawClaims bool
	handler := LoadToken(tokens)(echoHandler(&sawClaims))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, models.RoleMember, false))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !sawClaims {
		t.Error("expected claims in context for valid token")
	}
}

func TestLoadTokenAnonymous(t *testing.T) {
	tokens := testTokens()
	var sawClaims bool
	handler := LoadToken(tokens)(echoHandler(&sawClaims))

	// No header.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if sawClaims {
		t.Error("expected no claims without token")
	}
	if w.Code != http.StatusOK {
		t.Errorf("anonymous request should pass through, got %d", w.Code)
	}

	// Garbage token is anonymous, not an error.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if sawClaims {
		t.Error("expected no claims for invalid token")
	}
	if w.Code != http.StatusOK {
		t.Errorf("invalid token should pass through as anonymous, got %d", w.Code)
	}
}

func TestRequireAuth(t *testing.T) {
	tokens := testTokens()
	var sawClaims bool
	handler := LoadToken(tokens)(RequireAuth(echoHandler(&sawClaims)))

	// Unauthenticated → 401.
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}

	// Authenticated → 200.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, models.RoleMember, false))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	tokens := testTokens()
	var sawClaims bool
	handler := LoadToken(tokens)(RequireAuth(RequireAdmin(echoHandler(&sawClaims))))

	// Member → 403.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, models.RoleMember, false))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("member status = %d, want 403", w.Code)
	}

	// Admin → 200.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, models.RoleAdmin, true))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("admin status = %d, want 200", w.Code)
	}
}

func TestRequire2FA(t *testing.T) {
	tokens := testTokens()
	var sawClaims bool
	handler := LoadToken(tokens)(RequireAuth(Require2FA(echoHandler(&sawClaims))))

	// Admin without completed TOTP challenge → 403.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, models.RoleAdmin, false))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("pre-2FA status = %d, want 403", w.Code)
	}

	// Completed → 200.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+issueToken(t, tokens, models.RoleAdmin, true))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("post-2FA status = %d, want 200", w.Code)
	}
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := bearerToken(req); got != "" {
		t.Errorf("no header: got %q", got)
	}

	req.Header.Set("Authorization", "Bearer abc123")
	if got := bearerToken(req); got != "abc123" {
		t.Errorf("got %q, want %q", got, "abc123")
	}

	req.Header.Set("Authorization", "bearer abc123")
	if got := bearerToken(req); got != "abc123" {
		t.Errorf("case-insensitive scheme: got %q", got)
	}

	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	if got := bearerToken(req); got != "" {
		t.Errorf("non-bearer scheme: got %q", got)
	}
}
