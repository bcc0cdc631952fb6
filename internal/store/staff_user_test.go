// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/google/uuid"
)

func TestStaffUserStoreCreate(t *testing.T) {
	db := testDB(t)
	s := NewStaffUserStore(db)

	email := "test-create@store-test.local"
	t.Cleanup(func() { cleanStaffUsers(t, db, email) })

	user, err := s.Create(email, "testpass123", "Test User")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if user.Email != email {
		t.Errorf("email: got %q, want %q", user.Email, email)
	}
	if user.TOTPEnabled {
		t.Error("expected totp_enabled=false for new user")
	}
	if user.PasswordHash == "" || user.PasswordHash == "testpass123" {
		t.Error("expected bcrypt hash, not empty or plaintext")
	}
	if !user.NeedsTwoFASetup() {
		t.Error("new user should need 2FA setup")
	}
}

func TestStaffUserStoreCheckPassword(t *testing.T) {
	db := testDB(t)
	s := NewStaffUserStore(db)

	email := "test-checkpass@store-test.local"
	t.Cleanup(func() { cleanStaffUsers(t, db, email) })

	user, err := s.Create(email, "correct-horse", "Check Pass")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if !s.CheckPassword(user, "correct-horse") {
		t.Error("correct password rejected")
	}
	if s.CheckPassword(user, "wrong-horse") {
		t.Error("wrong password accepted")
	}
}

func TestStaffUserStoreTOTPLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewStaffUserStore(db)

	email := "test-totp@store-test.local"
	t.Cleanup(func() { cleanStaffUsers(t, db, email) })

	user, err := s.Create(email, "pass", "TOTP User")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.SetTOTPSecret(user.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("SetTOTPSecret: %v", err)
	}
	if err := s.EnableTOTP(user.ID); err != nil {
		t.Fatalf("EnableTOTP: %v", err)
	}

	found, err := s.FindByID(user.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !found.TOTPEnabled {
		t.Error("expected totp_enabled=true")
	}
	if found.TOTPSecret == nil || *found.TOTPSecret != "JBSWY3DPEHPK3PXP" {
		t.Error("expected stored TOTP secret")
	}
	if found.NeedsTwoFASetup() {
		t.Error("enabled user should not need setup")
	}

	if err := s.ResetTOTP(user.ID); err != nil {
		t.Fatalf("ResetTOTP: %v", err)
	}
	found, err = s.FindByID(user.ID)
	if err != nil {
		t.Fatalf("FindByID (after reset): %v", err)
	}
	if found.TOTPEnabled || found.TOTPSecret != nil {
		t.Error("expected TOTP cleared after reset")
	}
}
