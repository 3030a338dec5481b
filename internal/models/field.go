package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultFieldUnit  = "dönüm"
	DefaultFieldColor = "#4CAF50"
)

type Field struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`

	Name     string   `json:"name"`
	Location string   `json:"location,omitempty"`
	Size     *float64 `json:"size,omitempty"`
	Unit     string   `json:"unit"`

	// GeoJSON polygon boundary. Opaque to the backend; drawn on the map client-side.
	Coordinates json.RawMessage `json:"coordinates"`

	CurrentCropID *uuid.UUID `json:"currentCropId,omitempty"`
	Color         string     `json:"color"`
	Notes         string     `json:"notes,omitempty"`
}
