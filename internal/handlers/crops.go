package handlers

import (
	"net/http"
	"strings"

	"github.com/tarcanfarm/farm-backend/internal/models"
	"github.com/tarcanfarm/farm-backend/internal/store"
)

type createCropRequest struct {
	Name               string        `json:"name"`
	ImageURL           string        `json:"imageUrl"`
	Description        string        `json:"description"`
	GrowingPeriod      *int          `json:"growingPeriod"`
	OptimalTemperature *models.Range `json:"optimalTemperature"`
	OptimalHumidity    *models.Range `json:"optimalHumidity"`
	PlantingSeason     string        `json:"plantingSeason"`
	HarvestSeason      string        `json:"harvestSeason"`
}

// ListCrops returns the whole crop catalog. The catalog is shared, so no
// ownership scoping applies.
func (a *API) ListCrops(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := storeCtx(r)
	defer cancel()

	crops, err := a.Store.Crops.GetAllCrops(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load crops")
		return
	}
	respondJSON(w, http.StatusOK, crops)
}

func (a *API) GetCrop(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	ctx, cancel := storeCtx(r)
	defer cancel()

	crop, err := a.Store.Crops.GetCrop(ctx, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load crop")
		return
	}
	if crop == nil {
		respondError(w, http.StatusNotFound, "Crop not found")
		return
	}
	respondJSON(w, http.StatusOK, crop)
}

// CreateCrop adds a catalog entry. Any authenticated user may extend the
// catalog.
func (a *API) CreateCrop(w http.ResponseWriter, r *http.Request) {
	var req createCropRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "Crop name is required")
		return
	}
	if req.GrowingPeriod != nil && *req.GrowingPeriod <= 0 {
		respondError(w, http.StatusBadRequest, "Growing period must be positive")
		return
	}

	ctx, cancel := storeCtx(r)
	defer cancel()

	crop, err := a.Store.Crops.CreateCrop(ctx, store.NewCrop{
		Name:               req.Name,
		ImageURL:           req.ImageURL,
		Description:        req.Description,
		GrowingPeriod:      req.GrowingPeriod,
		OptimalTemperature: req.OptimalTemperature,
		OptimalHumidity:    req.OptimalHumidity,
		PlantingSeason:     req.PlantingSeason,
		HarvestSeason:      req.HarvestSeason,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create crop")
		return
	}
	respondJSON(w, http.StatusCreated, crop)
}
