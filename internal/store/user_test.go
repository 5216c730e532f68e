package store

import "testing"

func TestUserStore_CreateAndAuthenticate(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)

	u, err := users.Create("auth@test.local", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = $1", u.ID) })

	if u.Email != "auth@test.local" {
		t.Errorf("Email = %q", u.Email)
	}
	if u.PasswordHash == "hunter2hunter2" {
		t.Error("password stored in plaintext")
	}
	if u.TOTPEnabled {
		t.Error("new user should not have 2FA enabled")
	}

	if !users.CheckPassword(u, "hunter2hunter2") {
		t.Error("correct password rejected")
	}
	if users.CheckPassword(u, "wrong") {
		t.Error("wrong password accepted")
	}
}

func TestUserStore_FindByEmail(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)

	u, err := users.Create("find@test.local", "pw")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = $1", u.ID) })

	found, err := users.FindByEmail("find@test.local")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found == nil || found.ID != u.ID {
		t.Errorf("FindByEmail = %+v", found)
	}

	missing, err := users.FindByEmail("nobody@test.local")
	if err != nil {
		t.Fatalf("FindByEmail(missing): %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing email, got %+v", missing)
	}
}

func TestUserStore_TOTPLifecycle(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)

	u, err := users.Create("totp@test.local", "pw")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = $1", u.ID) })

	if err := users.SetTOTPSecret(u.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("SetTOTPSecret: %v", err)
	}
	if err := users.EnableTOTP(u.ID); err != nil {
		t.Fatalf("EnableTOTP: %v", err)
	}

	loaded, err := users.FindByID(u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !loaded.TOTPEnabled || loaded.TOTPSecret == nil || *loaded.TOTPSecret != "JBSWY3DPEHPK3PXP" {
		t.Errorf("after enroll: %+v", loaded)
	}

	if err := users.ResetTOTP(u.ID); err != nil {
		t.Fatalf("ResetTOTP: %v", err)
	}
	loaded, err = users.FindByID(u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if loaded.TOTPEnabled || loaded.TOTPSecret != nil {
		t.Errorf("after reset: %+v", loaded)
	}
}
