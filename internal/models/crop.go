package models

import "github.com/google/uuid"

// Range is a min/max band, used for a crop's optimal temperature and humidity.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Crop is a global catalog entry. Crops are not owned by a user: any
// authenticated user may read or add to the catalog.
type Crop struct {
	ID uuid.UUID `json:"id"`

	Name        string `json:"name"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Description string `json:"description,omitempty"`

	// Days from planting to harvest.
	GrowingPeriod *int `json:"growingPeriod,omitempty"`

	OptimalTemperature *Range `json:"optimalTemperature,omitempty"`
	OptimalHumidity    *Range `json:"optimalHumidity,omitempty"`

	PlantingSeason string `json:"plantingSeason,omitempty"`
	HarvestSeason  string `json:"harvestSeason,omitempty"`
}
