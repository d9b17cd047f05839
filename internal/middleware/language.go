// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"gogevgelija/internal/i18n"
	"gogevgelija/internal/session"
)

const (
	// LanguageKey is the context key for the resolved request language.
	LanguageKey contextKey = "language"
)

// LanguageLookup resolves a stored language preference for an
// authenticated user. Implemented by the user store.
type LanguageLookup interface {
	LanguagePreference(ctx context.Context, userID uuid.UUID) (string, bool)
}

// Language resolves the content language for every request and stores it
// in the context. Resolution order: Accept-Language header, authenticated
// user's stored preference, guest session preference, then the default.
// users and guests may be nil; absent sources are skipped.
func Language(users LanguageLookup, guests *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := resolveLanguage(r, users, guests)
			ctx := context.WithValue(r.Context(), LanguageKey, lang)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveLanguage(r *http.Request, users LanguageLookup, guests *session.Store) i18n.Language {
	// Explicit header wins.
	if lang, ok := i18n.Negotiate(r.Header.Get("Accept-Language")); ok {
		return lang
	}

	// Authenticated user's stored preference.
	if users != nil {
		if claims := ClaimsFromCtx(r.Context()); claims != nil {
			if pref, ok := users.LanguagePreference(r.Context(), claims.UserID); ok {
				return i18n.Normalize(pref)
			}
		}
	}

	// Guest session preference.
	if guests != nil {
		if raw := r.Header.Get(session.HeaderName); raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				if guest, err := guests.Get(r.Context(), id); err == nil && guest != nil {
					return i18n.Normalize(guest.Language)
				}
			}
		}
	}

	return i18n.Default
}

// LanguageFromCtx extracts the resolved language from the request
// context, defaulting to English when the middleware did not run.
func LanguageFromCtx(ctx context.Context) i18n.Language {
	if lang, ok := ctx.Value(LanguageKey).(i18n.Language); ok {
		return lang
	}
	return i18n.Default
}
