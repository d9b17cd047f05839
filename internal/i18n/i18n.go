// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package i18n implements bilingual field resolution for API payloads.
// Every translatable column exists in an English and a Macedonian variant,
// plus a legacy untranslated base column kept as the final fallback. The
// resolution order is defined once here and used by every serializer.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is a supported content language code.
type Language string

const (
	// English is the primary language; untranslated base columns are
	// treated as English for fallback purposes.
	English Language = "en"

	// Macedonian is the secondary language.
	Macedonian Language = "mk"

	// Default is returned whenever a requested code is missing or unsupported.
	Default = English
)

// Supported lists all content languages, primary first.
var Supported = []Language{English, Macedonian}

// matcher negotiates Accept-Language headers against the supported set.
// Order matters: the first tag is the fallback for unmatchable headers.
var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Macedonian,
})

// IsSupported reports whether code is one of the supported languages.
func IsSupported(code Language) bool {
	for _, l := range Supported {
		if l == code {
			return true
		}
	}
	return false
}

// Normalize collapses a raw language value to a supported Language.
// It tolerates Accept-Language style lists ("mk,en;q=0.8") and regional
// subtags ("mk-MK"). Anything unrecognised becomes the default.
func Normalize(code string) Language {
	if code == "" {
		return Default
	}
	primary := strings.TrimSpace(strings.Split(code, ",")[0])
	if primary == "" {
		return Default
	}
	base := Language(strings.ToLower(strings.Split(primary, "-")[0]))
	if IsSupported(base) {
		return base
	}
	return Default
}

// Negotiate resolves an Accept-Language header against the supported
// languages. It returns the matched language and true, or the default
// and false when the header is empty or matches nothing.
func Negotiate(acceptLanguage string) (Language, bool) {
	if strings.TrimSpace(acceptLanguage) == "" {
		return Default, false
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default, false
	}
	_, index, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default, false
	}
	switch index {
	case 1:
		return Macedonian, true
	default:
		return English, true
	}
}

// Text holds one translatable string column set: the English variant,
// the Macedonian variant, and the legacy untranslated base value.
type Text struct {
	EN   string
	MK   string
	Base string
}

// Resolve returns the effective value of the field for the requested
// language. Macedonian falls through to English when empty, and English
// falls through to the base column. The result may be empty only when
// all three variants are empty.
func (t Text) Resolve(lang Language) string {
	if lang == Macedonian && t.MK != "" {
		return t.MK
	}
	if t.EN != "" {
		return t.EN
	}
	return t.Base
}

// ResolveList picks the language variant of a paired JSON list field.
// An empty collection counts as absent and falls through to the primary
// variant, mirroring Text resolution for scalar fields.
func ResolveList[T any](lang Language, en, mk []T) []T {
	if lang == Macedonian && len(mk) > 0 {
		return mk
	}
	return en
}

// ResolveMap picks the language variant of a paired JSON object field,
// treating empty maps as absent.
func ResolveMap[K comparable, V any](lang Language, en, mk map[K]V) map[K]V {
	if lang == Macedonian && len(mk) > 0 {
		return mk
	}
	return en
}
