// Package store is the persistence-access layer. It carries no
// authorization logic: ownership checks live at the handler boundary so
// the two concerns stay orthogonal.
//
// Absence is not an error: GetX returns (nil, nil) when no row matches,
// list calls return empty slices, and Delete reports false for a missing
// row. Errors are reserved for infrastructure failures and surface as
// HTTP 500 at the boundary.
package store

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/tarcanfarm/farm-backend/internal/models"
)

// Backend bundles the per-entity stores. It is assembled once at process
// start (Postgres+Mongo in production, in-memory for tests and
// database-less development) and never swapped at runtime.
type Backend struct {
	Users   UserStore
	Fields  FieldStore
	Crops   CropStore
	Tasks   TaskStore
	Health  FieldHealthStore
	Weather WeatherStore
}

type UserStore interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)
	CreateUser(ctx context.Context, n NewUser) (*models.User, error)
}

type FieldStore interface {
	GetField(ctx context.Context, id uuid.UUID) (*models.Field, error)
	GetFieldsByUser(ctx context.Context, userID uuid.UUID) ([]models.Field, error)
	CreateField(ctx context.Context, n NewField) (*models.Field, error)
	UpdateField(ctx context.Context, id uuid.UUID, u FieldUpdate) (*models.Field, error)
	DeleteField(ctx context.Context, id uuid.UUID) (bool, error)
}

type CropStore interface {
	GetCrop(ctx context.Context, id uuid.UUID) (*models.Crop, error)
	GetAllCrops(ctx context.Context) ([]models.Crop, error)
	CreateCrop(ctx context.Context, n NewCrop) (*models.Crop, error)
}

type TaskStore interface {
	GetTask(ctx context.Context, id uuid.UUID) (*models.Task, error)
	GetTasksByUser(ctx context.Context, userID uuid.UUID) ([]models.Task, error)
	GetTasksByField(ctx context.Context, fieldID uuid.UUID) ([]models.Task, error)
	CreateTask(ctx context.Context, n NewTask) (*models.Task, error)
	UpdateTask(ctx context.Context, id uuid.UUID, u TaskUpdate) (*models.Task, error)
	DeleteTask(ctx context.Context, id uuid.UUID) (bool, error)
}

type FieldHealthStore interface {
	CreateReading(ctx context.Context, n NewReading) (*models.FieldHealth, error)
	// LatestReading returns the most recent reading for a field by
	// timestamp, or (nil, nil) when the field has none.
	LatestReading(ctx context.Context, fieldID uuid.UUID) (*models.FieldHealth, error)
	// LatestByField returns the most recent reading per field for the
	// given set. Fields with no readings are absent from the result.
	LatestByField(ctx context.Context, fieldIDs []uuid.UUID) (map[uuid.UUID]models.FieldHealth, error)
}

type WeatherStore interface {
	AppendWeather(ctx context.Context, n NewWeather) (*models.WeatherHistory, error)
	WeatherByUser(ctx context.Context, userID uuid.UUID) ([]models.WeatherHistory, error)
}

// Creation parameters. Identifiers and creation timestamps are assigned
// by the store; a caller-supplied id is never trusted.

type NewUser struct {
	Name         string
	Phone        string
	PasswordHash string
}

type NewField struct {
	UserID        uuid.UUID
	Name          string
	Location      string
	Size          *float64
	Unit          string
	Coordinates   json.RawMessage
	CurrentCropID *uuid.UUID
	Color         string
	Notes         string
}

type NewCrop struct {
	Name               string
	ImageURL           string
	Description        string
	GrowingPeriod      *int
	OptimalTemperature *models.Range
	OptimalHumidity    *models.Range
	PlantingSeason     string
	HarvestSeason      string
}

type NewTask struct {
	UserID      uuid.UUID
	FieldID     *uuid.UUID
	Title       string
	Description string
	TaskType    string
	StartDate   string
	EndDate     string
	StartTime   string
	EndTime     string
	Completed   bool
	Priority    string
	Season      string
}

type NewReading struct {
	FieldID      uuid.UUID
	Temperature  *float64
	Humidity     *float64
	SoilMoisture *float64
	PlantHealth  string
	Notes        string
}

type NewWeather struct {
	UserID   uuid.UUID
	Location string
	Data     json.RawMessage
}

// Partial updates. A nil pointer leaves the column untouched, so two
// concurrent updates to different columns both apply.

type FieldUpdate struct {
	Name          *string
	Location      *string
	Size          *float64
	Unit          *string
	Coordinates   json.RawMessage
	CurrentCropID *uuid.UUID
	Color         *string
	Notes         *string
}

type TaskUpdate struct {
	FieldID     *uuid.UUID
	Title       *string
	Description *string
	TaskType    *string
	StartDate   *string
	EndDate     *string
	StartTime   *string
	EndTime     *string
	Completed   *bool
	Priority    *string
	Season      *string
}
