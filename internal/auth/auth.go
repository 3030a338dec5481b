// Package auth implements phone+password authentication over the user
// store. Credentials are stored as argon2id hashes; the original scheme of
// comparing raw passwords is deliberately not supported.
package auth

import (
	"context"
	"errors"

	"github.com/tarcanfarm/farm-backend/internal/models"
	"github.com/tarcanfarm/farm-backend/internal/store"
	"github.com/tarcanfarm/farm-backend/pkg/utils"
)

// ErrInvalidCredentials is returned for an unknown phone AND for a wrong
// password. Callers must not be able to tell the two apart, so account
// enumeration stays impossible.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrPhoneTaken is returned when registering a phone that already exists.
var ErrPhoneTaken = errors.New("phone already registered")

type Service struct {
	users store.UserStore
}

func NewService(users store.UserStore) *Service {
	return &Service{users: users}
}

// Authenticate verifies phone+password and returns the user record.
func (s *Service) Authenticate(ctx context.Context, phone, password string) (*models.User, error) {
	user, err := s.users.GetUserByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Burn a verification anyway so unknown-phone and wrong-password
		// take comparable time
		utils.VerifyPassword(password, utils.DummyHash)
		return nil, ErrInvalidCredentials
	}
	ok, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Register creates a new user. The phone number is a unique natural key;
// a duplicate fails with ErrPhoneTaken.
func (s *Service) Register(ctx context.Context, name, phone, password string) (*models.User, error) {
	existing, err := s.users.GetUserByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrPhoneTaken
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return s.users.CreateUser(ctx, store.NewUser{
		Name:         name,
		Phone:        phone,
		PasswordHash: hash,
	})
}
