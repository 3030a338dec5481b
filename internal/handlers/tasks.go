package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tarcanfarm/farm-backend/internal/middleware"
	"github.com/tarcanfarm/farm-backend/internal/models"
	"github.com/tarcanfarm/farm-backend/internal/store"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type createTaskRequest struct {
	FieldID     *uuid.UUID `json:"fieldId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	TaskType    string     `json:"taskType"`
	StartDate   string     `json:"startDate"`
	EndDate     string     `json:"endDate"`
	StartTime   string     `json:"startTime"`
	EndTime     string     `json:"endTime"`
	Priority    string     `json:"priority"`
	Season      string     `json:"season"`
}

type updateTaskRequest struct {
	FieldID     *uuid.UUID `json:"fieldId"`
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	TaskType    *string    `json:"taskType"`
	StartDate   *string    `json:"startDate"`
	EndDate     *string    `json:"endDate"`
	StartTime   *string    `json:"startTime"`
	EndTime     *string    `json:"endTime"`
	Completed   *bool      `json:"completed"`
	Priority    *string    `json:"priority"`
	Season      *string    `json:"season"`
}

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

func validClock(s string) bool {
	t, err := time.Parse(timeLayout, s)
	return err == nil && t.Format(timeLayout) == s
}

// timesInverted reports whether a task starting and ending on the same
// day has its end time before its start time. Multi-day ranges carry no
// time ordering constraint.
func timesInverted(startDate, endDate, startTime, endTime string) bool {
	if startTime == "" || endTime == "" {
		return false
	}
	if endDate != "" && endDate != startDate {
		return false
	}
	return endTime < startTime
}

// ListTasks returns the caller's tasks across all fields.
func (a *API) ListTasks(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	ctx, cancel := storeCtx(r)
	defer cancel()

	tasks, err := a.Store.Tasks.GetTasksByUser(ctx, user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load tasks")
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

// ListFieldTasks returns the tasks linked to one owned field.
func (a *API) ListFieldTasks(w http.ResponseWriter, r *http.Request) {
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
	tasks, err := a.Store.Tasks.GetTasksByField(ctx, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load tasks")
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

func (a *API) GetTask(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	ctx, cancel := storeCtx(r)
	defer cancel()

	task := a.ownedTask(ctx, w, id, user.ID)
	if task == nil {
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// CreateTask creates a task for the caller. A field reference must point
// at one of the caller's own fields.
func (a *API) CreateTask(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "Task title is required")
		return
	}
	if !models.ValidTaskType(req.TaskType) {
		respondError(w, http.StatusBadRequest, "Invalid task type")
		return
	}
	if !validDate(req.StartDate) {
		respondError(w, http.StatusBadRequest, "Invalid start date")
		return
	}
	if req.EndDate != "" {
		if !validDate(req.EndDate) {
			respondError(w, http.StatusBadRequest, "Invalid end date")
			return
		}
		if req.EndDate < req.StartDate {
			respondError(w, http.StatusBadRequest, "End date cannot be before start date")
			return
		}
	}
	if req.StartTime != "" && !validClock(req.StartTime) {
		respondError(w, http.StatusBadRequest, "Invalid start time")
		return
	}
	if req.EndTime != "" && !validClock(req.EndTime) {
		respondError(w, http.StatusBadRequest, "Invalid end time")
		return
	}
	if timesInverted(req.StartDate, req.EndDate, req.StartTime, req.EndTime) {
		respondError(w, http.StatusBadRequest, "End time cannot be before start time")
		return
	}

	ctx, cancel := storeCtx(r)
	defer cancel()

	if req.FieldID != nil && !a.checkTaskField(ctx, w, *req.FieldID, user.ID) {
		return
	}

	task, err := a.Store.Tasks.CreateTask(ctx, store.NewTask{
		UserID:      user.ID,
		FieldID:     req.FieldID,
		Title:       req.Title,
		Description: req.Description,
		TaskType:    req.TaskType,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Priority:    req.Priority,
		Season:      req.Season,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create task")
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

// UpdateTask applies a partial update to an owned task.
func (a *API) UpdateTask(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		respondError(w, http.StatusBadRequest, "Task title cannot be empty")
		return
	}
	if req.TaskType != nil && !models.ValidTaskType(*req.TaskType) {
		respondError(w, http.StatusBadRequest, "Invalid task type")
		return
	}
	if req.StartDate != nil && !validDate(*req.StartDate) {
		respondError(w, http.StatusBadRequest, "Invalid start date")
		return
	}
	if req.EndDate != nil && *req.EndDate != "" && !validDate(*req.EndDate) {
		respondError(w, http.StatusBadRequest, "Invalid end date")
		return
	}
	if req.StartTime != nil && *req.StartTime != "" && !validClock(*req.StartTime) {
		respondError(w, http.StatusBadRequest, "Invalid start time")
		return
	}
	if req.EndTime != nil && *req.EndTime != "" && !validClock(*req.EndTime) {
		respondError(w, http.StatusBadRequest, "Invalid end time")
		return
	}

	ctx, cancel := storeCtx(r)
	defer cancel()

	existing := a.ownedTask(ctx, w, id, user.ID)
	if existing == nil {
		return
	}
	if req.FieldID != nil && !a.checkTaskField(ctx, w, *req.FieldID, user.ID) {
		return
	}

	// Range ordering is checked against the merged result, not just the
	// body, so a PATCH cannot invert an existing range.
	start := existing.StartDate
	if req.StartDate != nil {
		start = *req.StartDate
	}
	end := existing.EndDate
	if req.EndDate != nil {
		end = *req.EndDate
	}
	if end != "" && end < start {
		respondError(w, http.StatusBadRequest, "End date cannot be before start date")
		return
	}
	startTime := existing.StartTime
	if req.StartTime != nil {
		startTime = *req.StartTime
	}
	endTime := existing.EndTime
	if req.EndTime != nil {
		endTime = *req.EndTime
	}
	if timesInverted(start, end, startTime, endTime) {
		respondError(w, http.StatusBadRequest, "End time cannot be before start time")
		return
	}

	task, err := a.Store.Tasks.UpdateTask(ctx, id, store.TaskUpdate{
		FieldID:     req.FieldID,
		Title:       req.Title,
		Description: req.Description,
		TaskType:    req.TaskType,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Completed:   req.Completed,
		Priority:    req.Priority,
		Season:      req.Season,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update task")
		return
	}
	if task == nil {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}
	respondJSON(w, http.StatusOK, task)
}

// CompleteTask flips the completed flag on an owned task and returns the
// new state.
func (a *API) CompleteTask(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	ctx, cancel := storeCtx(r)
	defer cancel()

	existing := a.ownedTask(ctx, w, id, user.ID)
	if existing == nil {
		return
	}

	completed := !existing.Completed
	task, err := a.Store.Tasks.UpdateTask(ctx, id, store.TaskUpdate{Completed: &completed})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update task")
		return
	}
	if task == nil {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (a *API) DeleteTask(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	ctx, cancel := storeCtx(r)
	defer cancel()

	if a.ownedTask(ctx, w, id, user.ID) == nil {
		return
	}
	if _, err := a.Store.Tasks.DeleteTask(ctx, id); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
