package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tarcanfarm/farm-backend/internal/middleware"
	"github.com/tarcanfarm/farm-backend/internal/models"
	"github.com/tarcanfarm/farm-backend/internal/store"
)

// Dashboard placeholders for fields that have no readings yet.
const (
	placeholderSoilMoisture = 65.0
	placeholderPlantHealth  = models.PlantHealthGood
)

type createReadingRequest struct {
	Temperature  *float64 `json:"temperature"`
	Humidity     *float64 `json:"humidity"`
	SoilMoisture *float64 `json:"soilMoisture"`
	PlantHealth  string   `json:"plantHealth"`
	Notes        string   `json:"notes"`
}

// fieldHealthSummary is one dashboard row: the latest reading joined
// with the field's name.
type fieldHealthSummary struct {
	FieldID      uuid.UUID `json:"fieldId"`
	FieldName    string    `json:"fieldName"`
	SoilMoisture float64   `json:"soilMoisture"`
	PlantHealth  string    `json:"plantHealth"`
	Temperature  *float64  `json:"temperature,omitempty"`
	Humidity     *float64  `json:"humidity,omitempty"`
}

// HealthOverview returns one row per owned field with its latest health
// reading. Fields without readings get placeholder values so the
// dashboard can always render every field.
func (a *API) HealthOverview(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	ctx, cancel := storeCtx(r)
	defer cancel()

	fields, err := a.Store.Fields.GetFieldsByUser(ctx, user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load fields")
		return
	}

	ids := make([]uuid.UUID, len(fields))
	for i, f := range fields {
		ids[i] = f.ID
	}
	latest, err := a.Store.Health.LatestByField(ctx, ids)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load field health")
		return
	}

	summaries := make([]fieldHealthSummary, 0, len(fields))
	for _, f := range fields {
		s := fieldHealthSummary{
			FieldID:      f.ID,
			FieldName:    f.Name,
			SoilMoisture: placeholderSoilMoisture,
			PlantHealth:  placeholderPlantHealth,
		}
		if reading, ok := latest[f.ID]; ok {
			if reading.SoilMoisture != nil {
				s.SoilMoisture = *reading.SoilMoisture
			}
			if reading.PlantHealth != "" {
				s.PlantHealth = reading.PlantHealth
			}
			s.Temperature = reading.Temperature
			s.Humidity = reading.Humidity
		}
		summaries = append(summaries, s)
	}
	respondJSON(w, http.StatusOK, summaries)
}

// GetFieldHealth returns the latest reading for one owned field, or 404
// when the field has none.
func (a *API) GetFieldHealth(w http.ResponseWriter, r *http.Request) {
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
	reading, err := a.Store.Health.LatestReading(ctx, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load field health")
		return
	}
	if reading == nil {
		respondError(w, http.StatusNotFound, "No health data for field")
		return
	}
	respondJSON(w, http.StatusOK, reading)
}

// CreateFieldHealth appends a reading to an owned field's history.
func (a *API) CreateFieldHealth(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req createReadingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PlantHealth != "" && !models.ValidPlantHealth(req.PlantHealth) {
		respondError(w, http.StatusBadRequest, "Invalid plant health value")
		return
	}

	ctx, cancel := storeCtx(r)
	defer cancel()

	if a.ownedField(ctx, w, id, user.ID) == nil {
		return
	}
	reading, err := a.Store.Health.CreateReading(ctx, store.NewReading{
		FieldID:      id,
		Temperature:  req.Temperature,
		Humidity:     req.Humidity,
		SoilMoisture: req.SoilMoisture,
		PlantHealth:  req.PlantHealth,
		Notes:        req.Notes,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to record field health")
		return
	}
	respondJSON(w, http.StatusCreated, reading)
}
