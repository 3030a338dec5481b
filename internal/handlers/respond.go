// Package handlers holds the HTTP boundary: request decoding, input
// validation, ownership checks and response shaping. Persistence stays
// behind store.Backend and authentication behind session.Store, so every
// handler here can run against the in-memory backend in tests.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/tarcanfarm/farm-backend/internal/auth"
	"github.com/tarcanfarm/farm-backend/internal/services"
	"github.com/tarcanfarm/farm-backend/internal/session"
	"github.com/tarcanfarm/farm-backend/internal/store"
)

// storeTimeout bounds every store call issued from a handler.
const storeTimeout = 5 * time.Second

// API carries the wired dependencies for all handlers.
type API struct {
	Store    store.Backend
	Sessions session.Store
	Auth     *auth.Service

	// Uploads is nil when Cloudinary credentials are not configured; the
	// upload route then answers 503.
	Uploads *services.ImageService

	// SecureCookies marks the session cookie Secure in production.
	SecureCookies bool
}

func storeCtx(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), storeTimeout)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// decodeJSON parses the request body into dst. A malformed body is a
// client error, reported as 400 by the caller.
func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
