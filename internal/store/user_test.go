// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"testing"

	"gogevgelija/internal/models"
)

func TestUserStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	email := "store-test-user@example.com"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	u, err := s.Create(email, "secret123", "Store Test", models.RoleMember, "mk")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.Email != email || u.Role != models.RoleMember || u.Language != "mk" {
		t.Errorf("unexpected user: %+v", u)
	}
	if u.PasswordHash == "secret123" {
		t.Error("password stored in plaintext")
	}

	found, err := s.FindByEmail(email)
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found == nil || found.ID != u.ID {
		t.Fatalf("FindByEmail returned %+v", found)
	}

	if !s.CheckPassword(found, "secret123") {
		t.Error("CheckPassword rejected correct password")
	}
	if s.CheckPassword(found, "wrong") {
		t.Error("CheckPassword accepted wrong password")
	}
}

func TestUserStoreFindMissing(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	u, err := s.FindByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if u != nil {
		t.Errorf("expected nil for missing user, got %+v", u)
	}
}

func TestUserStoreLanguagePreference(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	email := "store-test-lang@example.com"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	u, err := s.Create(email, "secret123", "Lang Test", models.RoleMember, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Empty input defaults to English.
	lang, ok := s.LanguagePreference(context.Background(), u.ID)
	if !ok || lang != "en" {
		t.Errorf("LanguagePreference = %q, %v; want en, true", lang, ok)
	}

	if err := s.SetLanguage(u.ID, "mk"); err != nil {
		t.Fatalf("SetLanguage: %v", err)
	}
	lang, ok = s.LanguagePreference(context.Background(), u.ID)
	if !ok || lang != "mk" {
		t.Errorf("LanguagePreference after update = %q, %v; want mk, true", lang, ok)
	}
}

func TestUserStoreTOTPLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	email := "store-test-totp@example.com"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	u, err := s.Create(email, "secret123", "TOTP Test", models.RoleAdmin, "en")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !u.Needs2FASetup() {
		t.Error("fresh admin should need 2FA setup")
	}

	if err := s.SetTOTPSecret(u.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("SetTOTPSecret: %v", err)
	}
	if err := s.EnableTOTP(u.ID); err != nil {
		t.Fatalf("EnableTOTP: %v", err)
	}

	u, err = s.FindByID(u.ID)
	if err != nil || u == nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !u.TOTPEnabled {
		t.Error("TOTP should be enabled")
	}

	if err := s.ResetTOTP(u.ID); err != nil {
		t.Fatalf("ResetTOTP: %v", err)
	}
	u, _ = s.FindByID(u.ID)
	if u.TOTPEnabled || u.TOTPSecret != nil {
		t.Errorf("TOTP not cleared: enabled=%v secret=%v", u.TOTPEnabled, u.TOTPSecret)
	}
}
