// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"gogevgelija/internal/auth"
	"gogevgelija/internal/i18n"
	"gogevgelija/internal/models"
)

// stubLookup serves a fixed language preference for every user.
type stubLookup struct {
	lang string
	ok   bool
}

func (s stubLookup) LanguagePreference(ctx context.Context, userID uuid.UUID) (string, bool) {
	return s.lang, s.ok
}

func languageProbe(got *i18n.Language) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = LanguageFromCtx(r.Context())
	})
}

func TestLanguageFromHeader(t *testing.T) {
	var got i18n.Language
	handler := Language(nil, nil)(languageProbe(&got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "mk-MK,mk;q=0.9,en;q=0.8")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != i18n.Macedonian {
		t.Errorf("language = %q, want mk", got)
	}
}

func TestLanguageFromUserPreference(t *testing.T) {
	var got i18n.Language
	handler := Language(stubLookup{lang: "mk", ok: true}, nil)(languageProbe(&got))

	// Authenticated request with no Accept-Language header falls through
	// to the stored preference.
	claims := &auth.Claims{UserID: uuid.New(), Role: models.RoleMember}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), ClaimsKey, claims))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != i18n.Macedonian {
		t.Errorf("language = %q, want mk from user preference", got)
	}
}

func TestLanguageHeaderBeatsPreference(t *testing.T) {
	var got i18n.Language
	handler := Language(stubLookup{lang: "mk", ok: true}, nil)(languageProbe(&got))

	claims := &auth.Claims{UserID: uuid.New(), Role: models.RoleMember}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "en-US")
	req = req.WithContext(context.WithValue(req.Context(), ClaimsKey, claims))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got != i18n.English {
		t.Errorf("language = %q, explicit header should win", got)
	}
}

func TestLanguageDefault(t *testing.T) {
	var got i18n.Language
	handler := Language(nil, nil)(languageProbe(&got))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got != i18n.English {
		t.Errorf("language = %q, want default en", got)
	}
}

func TestLanguageFromCtxWithoutMiddleware(t *testing.T) {
	if got := LanguageFromCtx(context.Background()); got != i18n.English {
		t.Errorf("LanguageFromCtx = %q, want default en", got)
	}
}
