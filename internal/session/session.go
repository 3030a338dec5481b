// Package session binds opaque client-held tokens to server-side user
// snapshots. The snapshot is the user record minus the password hash; the
// hash never enters the session store.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/tarcanfarm/farm-backend/internal/models"
)

const (
	// CookieName is the session cookie. HTTP-only and SameSite=Lax; the
	// token never appears in a response body.
	CookieName = "farm_session"

	// Duration is the session lifetime, 7 days like the cookie expiry.
	Duration = 7 * 24 * time.Hour
)

// Store is the session store. Resolve returns (nil, nil) for an absent,
// unknown or expired token; Destroy is idempotent.
type Store interface {
	Create(ctx context.Context, user *models.User) (string, error)
	Resolve(ctx context.Context, token string) (*models.User, error)
	Destroy(ctx context.Context, token string) error
}

// newToken returns a 32-byte random token, URL-safe base64 encoded. The
// token carries no semantic meaning.
func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
