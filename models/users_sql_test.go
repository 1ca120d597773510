package models

import (
	"errors"
	"testing"
)

func TestUserRepo_CreateAndValidate(t *testing.T) {
	repo := NewSQLUserRepository(openTestDB(t))

	u := User{Email: "a@b.com", Password: "p@ssw0rd"}
	if err := repo.Create(&u); err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID <= 0 {
		t.Fatalf("want positive id, got %d", u.ID)
	}
	if u.Password == "p@ssw0rd" {
		t.Fatalf("password stored in plain text")
	}

	got, err := repo.ValidateCredentials("a@b.com", "p@ssw0rd")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("want id %d, got %d", u.ID, got.ID)
	}

	if _, err := repo.ValidateCredentials("a@b.com", "wrong"); err == nil {
		t.Fatalf("bad password accepted")
	}
	if _, err := repo.ValidateCredentials("nobody@b.com", "p@ssw0rd"); err == nil {
		t.Fatalf("unknown email accepted")
	}
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	repo := NewSQLUserRepository(openTestDB(t))

	u := User{Email: "a@b.com", Password: "secret1"}
	if err := repo.Create(&u); err != nil {
		t.Fatalf("create: %v", err)
	}
	dup := User{Email: "a@b.com", Password: "secret2"}
	if err := repo.Create(&dup); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("want ErrDuplicateEmail, got %v", err)
	}
}
