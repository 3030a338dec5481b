package models

import (
	"time"

	"github.com/google/uuid"
)

// Plant health categories.
const (
	PlantHealthGood   = "good"
	PlantHealthMedium = "medium"
	PlantHealthPoor   = "poor"
)

// ValidPlantHealth reports whether p is a recognized plant health tag.
func ValidPlantHealth(p string) bool {
	return p == PlantHealthGood || p == PlantHealthMedium || p == PlantHealthPoor
}

// FieldHealth is one sensor/observation reading for a field. A field
// accumulates historical rows; the dashboard consumes the latest per field.
// Ownership is inherited from the parent field.
type FieldHealth struct {
	ID        uuid.UUID `json:"id"`
	FieldID   uuid.UUID `json:"fieldId"`
	Timestamp time.Time `json:"timestamp"`

	Temperature  *float64 `json:"temperature,omitempty"`
	Humidity     *float64 `json:"humidity,omitempty"`
	SoilMoisture *float64 `json:"soilMoisture,omitempty"`
	PlantHealth  string   `json:"plantHealth,omitempty"`
	Notes        string   `json:"notes,omitempty"`
}
