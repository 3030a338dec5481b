package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/tarcanfarm/farm-backend/internal/store"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewService(store.NewMemory())
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ayşe", "+905551234567", "gizli-sifre")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.PasswordHash == "gizli-sifre" {
		t.Fatal("password stored in the clear")
	}

	got, err := svc.Authenticate(ctx, "+905551234567", "gizli-sifre")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("authenticated as %s, registered as %s", got.ID, user.ID)
	}
}

func TestRegisterDuplicatePhone(t *testing.T) {
	svc := NewService(store.NewMemory())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Ayşe", "+905551234567", "gizli-sifre"); err != nil {
		t.Fatal(err)
	}
	_, err := svc.Register(ctx, "Mehmet", "+905551234567", "baska-sifre")
	if !errors.Is(err, ErrPhoneTaken) {
		t.Errorf("err = %v, want ErrPhoneTaken", err)
	}
}

// Unknown phone and wrong password must be indistinguishable to the caller.
func TestAuthenticateFailuresAreUniform(t *testing.T) {
	svc := NewService(store.NewMemory())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Ayşe", "+905551234567", "gizli-sifre"); err != nil {
		t.Fatal(err)
	}

	_, wrongPass := svc.Authenticate(ctx, "+905551234567", "yanlis")
	_, unknownPhone := svc.Authenticate(ctx, "+905559999999", "gizli-sifre")

	if !errors.Is(wrongPass, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v", wrongPass)
	}
	if !errors.Is(unknownPhone, ErrInvalidCredentials) {
		t.Errorf("unknown phone: err = %v", unknownPhone)
	}
}
