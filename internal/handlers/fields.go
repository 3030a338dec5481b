package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tarcanfarm/farm-backend/internal/middleware"
	"github.com/tarcanfarm/farm-backend/internal/store"
)

// Field payloads deliberately have no userId: ownership always comes
// from the session, never from the client.

type createFieldRequest struct {
	Name          string          `json:"name"`
	Location      string          `json:"location"`
	Size          *float64        `json:"size"`
	Unit          string          `json:"unit"`
	Coordinates   json.RawMessage `json:"coordinates"`
	CurrentCropID *uuid.UUID      `json:"currentCropId"`
	Color         string          `json:"color"`
	Notes         string          `json:"notes"`
}

type updateFieldRequest struct {
	Name          *string         `json:"name"`
	Location      *string         `json:"location"`
	Size          *float64        `json:"size"`
	Unit          *string         `json:"unit"`
	Coordinates   json.RawMessage `json:"coordinates"`
	CurrentCropID *uuid.UUID      `json:"currentCropId"`
	Color         *string         `json:"color"`
	Notes         *string         `json:"notes"`
}

// ListFields returns the caller's fields only, oldest first.
func (a *API) ListFields(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	ctx, cancel := storeCtx(r)
	defer cancel()

	fields, err := a.Store.Fields.GetFieldsByUser(ctx, user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load fields")
		return
	}
	respondJSON(w, http.StatusOK, fields)
}

// GetField returns one field after the ownership check.
func (a *API) GetField(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	ctx, cancel := storeCtx(r)
	defer cancel()

	field := a.ownedField(ctx, w, id, user.ID)
	if field == nil {
		return
	}
	respondJSON(w, http.StatusOK, field)
}

// CreateField creates a field owned by the caller.
func (a *API) CreateField(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req createFieldRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Field name is required")
		return
	}
	if len(req.Coordinates) == 0 || !json.Valid(req.Coordinates) {
		respondError(w, http.StatusBadRequest, "Field coordinates are required")
		return
	}

	ctx, cancel := storeCtx(r)
	defer cancel()

	field, err := a.Store.Fields.CreateField(ctx, store.NewField{
		UserID:        user.ID,
		Name:          req.Name,
		Location:      req.Location,
		Size:          req.Size,
		Unit:          req.Unit,
		Coordinates:   req.Coordinates,
		CurrentCropID: req.CurrentCropID,
		Color:         req.Color,
		Notes:         req.Notes,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create field")
		return
	}
	respondJSON(w, http.StatusCreated, field)
}

// UpdateField applies a partial update to an owned field. Absent body
// keys leave their columns untouched.
func (a *API) UpdateField(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateFieldRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		respondError(w, http.StatusBadRequest, "Field name cannot be empty")
		return
	}
	if req.Coordinates != nil && !json.Valid(req.Coordinates) {
		respondError(w, http.StatusBadRequest, "Invalid coordinates")
		return
	}

	ctx, cancel := storeCtx(r)
	defer cancel()

	if a.ownedField(ctx, w, id, user.ID) == nil {
		return
	}

	field, err := a.Store.Fields.UpdateField(ctx, id, store.FieldUpdate{
		Name:          req.Name,
		Location:      req.Location,
		Size:          req.Size,
		Unit:          req.Unit,
		Coordinates:   req.Coordinates,
		CurrentCropID: req.CurrentCropID,
		Color:         req.Color,
		Notes:         req.Notes,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update field")
		return
	}
	if field == nil {
		// Deleted between the ownership check and the update.
		respondError(w, http.StatusNotFound, "Field not found")
		return
	}
	respondJSON(w, http.StatusOK, field)
}

// DeleteField removes an owned field. Tasks referencing it keep their
// rows with the reference cleared; health readings cascade away.
func (a *API) DeleteField(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	ctx, cancel := storeCtx(r)
	defer cancel()

	if a.ownedField(ctx, w, id, user.ID) == nil {
		return
	}
	if _, err := a.Store.Fields.DeleteField(ctx, id); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete field")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
