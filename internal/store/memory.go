package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tarcanfarm/farm-backend/internal/models"
)

// Memory is the in-memory backend, used by tests and when
// STORAGE_BACKEND=memory. State is process-local and best-effort only;
// it is selected once at startup, never as a mid-request fallback.
type Memory struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]models.User
	fields  map[uuid.UUID]models.Field
	crops   map[uuid.UUID]models.Crop
	tasks   map[uuid.UUID]models.Task
	health  map[uuid.UUID]models.FieldHealth
	weather map[uuid.UUID]models.WeatherHistory
}

func NewMemory() *Memory {
	return &Memory{
		users:   make(map[uuid.UUID]models.User),
		fields:  make(map[uuid.UUID]models.Field),
		crops:   make(map[uuid.UUID]models.Crop),
		tasks:   make(map[uuid.UUID]models.Task),
		health:  make(map[uuid.UUID]models.FieldHealth),
		weather: make(map[uuid.UUID]models.WeatherHistory),
	}
}

// NewMemoryBackend returns a Backend with every store served from one
// in-memory instance.
func NewMemoryBackend() Backend {
	m := NewMemory()
	return Backend{Users: m, Fields: m, Crops: m, Tasks: m, Health: m, Weather: m}
}

// --- users ---

func (m *Memory) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (m *Memory) GetUserByPhone(_ context.Context, phone string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Phone == phone {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (m *Memory) CreateUser(_ context.Context, n NewUser) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := models.User{
		ID:           uuid.New(),
		CreatedAt:    time.Now().UTC(),
		Name:         n.Name,
		Phone:        n.Phone,
		PasswordHash: n.PasswordHash,
	}
	m.users[u.ID] = u
	return &u, nil
}

// --- fields ---

func (m *Memory) GetField(_ context.Context, id uuid.UUID) (*models.Field, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if f, ok := m.fields[id]; ok {
		return &f, nil
	}
	return nil, nil
}

func (m *Memory) GetFieldsByUser(_ context.Context, userID uuid.UUID) ([]models.Field, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Field{}
	for _, f := range m.fields {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sortByCreated(out, func(f models.Field) time.Time { return f.CreatedAt })
	return out, nil
}

func (m *Memory) CreateField(_ context.Context, n NewField) (*models.Field, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := models.Field{
		ID:            uuid.New(),
		UserID:        n.UserID,
		CreatedAt:     time.Now().UTC(),
		Name:          n.Name,
		Location:      n.Location,
		Size:          n.Size,
		Unit:          defaultStr(n.Unit, models.DefaultFieldUnit),
		Coordinates:   n.Coordinates,
		CurrentCropID: n.CurrentCropID,
		Color:         defaultStr(n.Color, models.DefaultFieldColor),
		Notes:         n.Notes,
	}
	m.fields[f.ID] = f
	return &f, nil
}

func (m *Memory) UpdateField(_ context.Context, id uuid.UUID, u FieldUpdate) (*models.Field, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.fields[id]
	if !ok {
		return nil, nil
	}
	if u.Name != nil {
		f.Name = *u.Name
	}
	if u.Location != nil {
		f.Location = *u.Location
	}
	if u.Size != nil {
		f.Size = u.Size
	}
	if u.Unit != nil {
		f.Unit = *u.Unit
	}
	if u.Coordinates != nil {
		f.Coordinates = u.Coordinates
	}
	if u.CurrentCropID != nil {
		f.CurrentCropID = u.CurrentCropID
	}
	if u.Color != nil {
		f.Color = *u.Color
	}
	if u.Notes != nil {
		f.Notes = *u.Notes
	}
	m.fields[id] = f
	return &f, nil
}

// DeleteField mirrors the SQL referential actions: linked tasks keep
// their rows with the field reference cleared, health readings go with
// the field.
func (m *Memory) DeleteField(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.fields[id]; !ok {
		return false, nil
	}
	delete(m.fields, id)
	for tid, t := range m.tasks {
		if t.FieldID != nil && *t.FieldID == id {
			t.FieldID = nil
			m.tasks[tid] = t
		}
	}
	for hid, h := range m.health {
		if h.FieldID == id {
			delete(m.health, hid)
		}
	}
	return true, nil
}

// --- crops ---

func (m *Memory) GetCrop(_ context.Context, id uuid.UUID) (*models.Crop, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.crops[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (m *Memory) GetAllCrops(_ context.Context) ([]models.Crop, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Crop{}
	for _, c := range m.crops {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (m *Memory) CreateCrop(_ context.Context, n NewCrop) (*models.Crop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := models.Crop{
		ID:                 uuid.New(),
		Name:               n.Name,
		ImageURL:           n.ImageURL,
		Description:        n.Description,
		GrowingPeriod:      n.GrowingPeriod,
		OptimalTemperature: n.OptimalTemperature,
		OptimalHumidity:    n.OptimalHumidity,
		PlantingSeason:     n.PlantingSeason,
		HarvestSeason:      n.HarvestSeason,
	}
	m.crops[c.ID] = c
	return &c, nil
}

// --- tasks ---

func (m *Memory) GetTask(_ context.Context, id uuid.UUID) (*models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.tasks[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (m *Memory) GetTasksByUser(_ context.Context, userID uuid.UUID) ([]models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Task{}
	for _, t := range m.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sortTasks(out)
	return out, nil
}

func (m *Memory) GetTasksByField(_ context.Context, fieldID uuid.UUID) ([]models.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Task{}
	for _, t := range m.tasks {
		if t.FieldID != nil && *t.FieldID == fieldID {
			out = append(out, t)
		}
	}
	sortTasks(out)
	return out, nil
}

func (m *Memory) CreateTask(_ context.Context, n NewTask) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := models.Task{
		ID:          uuid.New(),
		UserID:      n.UserID,
		CreatedAt:   time.Now().UTC(),
		FieldID:     n.FieldID,
		Title:       n.Title,
		Description: n.Description,
		TaskType:    n.TaskType,
		StartDate:   n.StartDate,
		EndDate:     n.EndDate,
		StartTime:   n.StartTime,
		EndTime:     n.EndTime,
		Completed:   n.Completed,
		Priority:    defaultStr(n.Priority, models.DefaultTaskPriority),
		Season:      n.Season,
	}
	m.tasks[t.ID] = t
	return &t, nil
}

func (m *Memory) UpdateTask(_ context.Context, id uuid.UUID, u TaskUpdate) (*models.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tasks[id]
	if !ok {
		return nil, nil
	}
	if u.FieldID != nil {
		t.FieldID = u.FieldID
	}
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.TaskType != nil {
		t.TaskType = *u.TaskType
	}
	if u.StartDate != nil {
		t.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		t.EndDate = *u.EndDate
	}
	if u.StartTime != nil {
		t.StartTime = *u.StartTime
	}
	if u.EndTime != nil {
		t.EndTime = *u.EndTime
	}
	if u.Completed != nil {
		t.Completed = *u.Completed
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.Season != nil {
		t.Season = *u.Season
	}
	m.tasks[id] = t
	return &t, nil
}

func (m *Memory) DeleteTask(_ context.Context, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tasks[id]; !ok {
		return false, nil
	}
	delete(m.tasks, id)
	return true, nil
}

// --- field health ---

func (m *Memory) CreateReading(_ context.Context, n NewReading) (*models.FieldHealth, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := models.FieldHealth{
		ID:           uuid.New(),
		FieldID:      n.FieldID,
		Timestamp:    time.Now().UTC(),
		Temperature:  n.Temperature,
		Humidity:     n.Humidity,
		SoilMoisture: n.SoilMoisture,
		PlantHealth:  n.PlantHealth,
		Notes:        n.Notes,
	}
	m.health[h.ID] = h
	return &h, nil
}

func (m *Memory) LatestReading(_ context.Context, fieldID uuid.UUID) (*models.FieldHealth, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest *models.FieldHealth
	for _, h := range m.health {
		if h.FieldID != fieldID {
			continue
		}
		h := h
		if latest == nil || h.Timestamp.After(latest.Timestamp) {
			latest = &h
		}
	}
	return latest, nil
}

func (m *Memory) LatestByField(_ context.Context, fieldIDs []uuid.UUID) (map[uuid.UUID]models.FieldHealth, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	wanted := make(map[uuid.UUID]bool, len(fieldIDs))
	for _, id := range fieldIDs {
		wanted[id] = true
	}
	out := make(map[uuid.UUID]models.FieldHealth)
	for _, h := range m.health {
		if !wanted[h.FieldID] {
			continue
		}
		if cur, ok := out[h.FieldID]; !ok || h.Timestamp.After(cur.Timestamp) {
			out[h.FieldID] = h
		}
	}
	return out, nil
}

// --- weather history ---

func (m *Memory) AppendWeather(_ context.Context, n NewWeather) (*models.WeatherHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w := models.WeatherHistory{
		ID:        uuid.New(),
		UserID:    n.UserID,
		Timestamp: time.Now().UTC(),
		Location:  n.Location,
		Data:      n.Data,
	}
	m.weather[w.ID] = w
	return &w, nil
}

func (m *Memory) WeatherByUser(_ context.Context, userID uuid.UUID) ([]models.WeatherHistory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.WeatherHistory{}
	for _, w := range m.weather {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func defaultStr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func sortByCreated[T any](s []T, at func(T) time.Time) {
	sort.Slice(s, func(i, j int) bool { return at(s[i]).Before(at(s[j])) })
}

// sortTasks orders by start date then creation time, matching the SQL
// listing order.
func sortTasks(s []models.Task) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].StartDate != s[j].StartDate {
			return s[i].StartDate < s[j].StartDate
		}
		return s[i].CreatedAt.Before(s[j].CreatedAt)
	})
}
