package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	Name  string `json:"name"`
	Phone string `json:"phone"`

	// Argon2id hash, never the raw credential. Excluded from every JSON payload.
	PasswordHash string `json:"-"`
}
