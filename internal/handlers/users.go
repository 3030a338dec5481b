package handlers

import (
	"net/http"
)

// GetUser returns a user's public profile by id. Any authenticated user
// may look up any profile; the password hash never serializes.
func (a *API) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	ctx, cancel := storeCtx(r)
	defer cancel()

	user, err := a.Store.Users.GetUser(ctx, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	respondJSON(w, http.StatusOK, user)
}
