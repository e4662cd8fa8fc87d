package services_test

import (
	"strings"
	"testing"

	"bazar/internal/apperr"
	"bazar/internal/domain"
	"bazar/internal/repos"
	"bazar/internal/services"
)

func TestAuthSignUpSignIn(t *testing.T) {
	db := memdb(t)
	svc := services.NewAuthService(repos.NewUserRepo(db))

	u, err := svc.SignUp("sid-1", "lucia@bazar.test", "Passw0rd!", "Lucia", "555-0200", domain.RoleBoth)
	if err != nil {
		t.Fatal(err)
	}
	if u.ID == "" || u.Role != domain.RoleBoth {
		t.Fatalf("bad signed-up user: %+v", u)
	}
	if strings.Contains(u.Hash, "Passw0rd!") || !strings.HasPrefix(u.Hash, "$2") {
		t.Fatal("password must be stored as a bcrypt hash")
	}

	// Session bound at sign-up.
	cur, err := svc.CurrentUser("sid-1")
	if err != nil {
		t.Fatal(err)
	}
	if cur.ID != u.ID {
		t.Fatal("session should resolve to the new user")
	}

	if _, err := svc.SignUp("sid-2", "lucia@bazar.test", "Passw0rd!", "Lucia", "555-0200", domain.RoleBuyer); err == nil {
		t.Fatal("want duplicate email rejected")
	} else if apperr.KindOf(err) != apperr.Conflict {
		t.Fatalf("want conflict, got %v", err)
	}

	if _, err := svc.SignIn("sid-3", "lucia@bazar.test", "wrong-pass"); err == nil {
		t.Fatal("want bad password rejected")
	} else if apperr.KindOf(err) != apperr.Auth {
		t.Fatalf("want auth error, got %v", err)
	}

	if _, err := svc.SignIn("sid-3", "lucia@bazar.test", "Passw0rd!"); err != nil {
		t.Fatal(err)
	}

	if err := svc.SignOut("sid-3"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CurrentUser("sid-3"); err == nil {
		t.Fatal("want no user after sign-out")
	}
}

// A signup that loses the check-then-insert race hits the unique email
// index; the raw violation must still read as a duplicate.
func TestUserCreate_DuplicateEmailIsConflict(t *testing.T) {
	db := memdb(t)
	users := repos.NewUserRepo(db)

	dup := &domain.User{
		ID:    "u-dup",
		Email: "MARIA@bazar.test", // seeded as maria@bazar.test
		Name:  "Impostor",
		Role:  domain.RoleBuyer,
		Hash:  "x",
	}
	err := users.Create(dup)
	if err == nil {
		t.Fatal("want duplicate email insert rejected")
	}
	if !repos.IsConflict(err) {
		t.Fatalf("want unique violation recognized as conflict, got %v", err)
	}
}

func TestAuthPasswordReset(t *testing.T) {
	db := memdb(t)
	svc := services.NewAuthService(repos.NewUserRepo(db))

	token, err := svc.SendPasswordReset("maria@bazar.test")
	if err != nil {
		t.Fatal(err)
	}
	if token == "" {
		t.Fatal("want a reset token for a known account")
	}
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM password_resets WHERE token=?`, token); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatal("token should be recorded")
	}

	// Unknown emails succeed silently without a token.
	token, err = svc.SendPasswordReset("nobody@bazar.test")
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		t.Fatal("unknown email must not produce a token")
	}
}

func TestAuthUpdateProfileImage(t *testing.T) {
	db := memdb(t)
	userRepo := repos.NewUserRepo(db)
	svc := services.NewAuthService(userRepo)

	if err := svc.UpdateProfileImage("u-ana", "https://img.example/ana.jpg"); err != nil {
		t.Fatal(err)
	}
	u, err := userRepo.ByID("u-ana")
	if err != nil {
		t.Fatal(err)
	}
	if u.ProfileImageURL != "https://img.example/ana.jpg" {
		t.Fatalf("want profile image updated, got %q", u.ProfileImageURL)
	}
}
