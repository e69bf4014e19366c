package service

import (
	"context"
	"errors"
	"testing"

	"github.com/smileksey/quotes-service/internal/apperror"
)

func TestRegister_Success(t *testing.T) {
	_, users := newTestServices(t)

	user, err := users.Register(context.Background(), "Alice", "alice@example.com", "password1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if user.ID == 0 {
		t.Error("expected user to have an ID")
	}
	if user.CreatedAt.IsZero() {
		t.Error("Register() did not stamp the registration time")
	}
	if user.Name != "Alice" {
		t.Errorf("Name = %q, want %q", user.Name, "Alice")
	}
}

func TestRegister_TrimsName(t *testing.T) {
	_, users := newTestServices(t)

	user, err := users.Register(context.Background(), "  Alice  ", "alice@example.com", "password1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Name != "Alice" {
		t.Errorf("Name = %q, want trimmed %q", user.Name, "Alice")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, users := newTestServices(t)

	if _, err := users.Register(context.Background(), "Alice", "alice@example.com", "password1"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := users.Register(context.Background(), "Imposter", "alice@example.com", "password2")
	if err == nil {
		t.Fatal("second Register() with the same email should fail")
	}
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}

	// First registration is intact.
	found, err := users.FindByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("FindByEmail() error = %v", err)
	}
	if found.Name != "Alice" {
		t.Errorf("Name = %q, want the original %q", found.Name, "Alice")
	}
}

func TestFindByEmail_NotFound(t *testing.T) {
	_, users := newTestServices(t)

	_, err := users.FindByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
