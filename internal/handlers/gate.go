package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tarcanfarm/farm-backend/internal/models"
)

// parseID reads the {id} URL parameter as a UUID. A malformed id answers
// 400 and reports false; it never reaches the store.
func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// ownedField loads a field and checks it belongs to the caller. A missing
// field answers 404 and someone else's field answers 403; the two cases
// stay distinguishable. Returns nil after writing the error response.
func (a *API) ownedField(ctx context.Context, w http.ResponseWriter, id uuid.UUID, userID uuid.UUID) *models.Field {
	field, err := a.Store.Fields.GetField(ctx, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load field")
		return nil
	}
	if field == nil {
		respondError(w, http.StatusNotFound, "Field not found")
		return nil
	}
	if field.UserID != userID {
		respondError(w, http.StatusForbidden, "Forbidden")
		return nil
	}
	return field
}

// ownedTask is the task counterpart of ownedField.
func (a *API) ownedTask(ctx context.Context, w http.ResponseWriter, id uuid.UUID, userID uuid.UUID) *models.Task {
	task, err := a.Store.Tasks.GetTask(ctx, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load task")
		return nil
	}
	if task == nil {
		respondError(w, http.StatusNotFound, "Task not found")
		return nil
	}
	if task.UserID != userID {
		respondError(w, http.StatusForbidden, "Forbidden")
		return nil
	}
	return task
}

// checkTaskField validates a field reference on a task create/update: the
// field must exist and belong to the same user. Both failures are 400
// because the reference itself is the invalid input.
func (a *API) checkTaskField(ctx context.Context, w http.ResponseWriter, fieldID uuid.UUID, userID uuid.UUID) bool {
	field, err := a.Store.Fields.GetField(ctx, fieldID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load field")
		return false
	}
	if field == nil || field.UserID != userID {
		respondError(w, http.StatusBadRequest, "Invalid field reference")
		return false
	}
	return true
}
