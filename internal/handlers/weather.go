package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/tarcanfarm/farm-backend/internal/middleware"
	"github.com/tarcanfarm/farm-backend/internal/store"
	"github.com/tarcanfarm/farm-backend/internal/weather"
)

// GetWeather serves the weather report for a coordinate pair and appends
// the served payload to the caller's weather history. History write
// failures do not fail the request; the report is what the client came for.
func (a *API) GetWeather(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		respondError(w, http.StatusBadRequest, "lat and lon query parameters are required")
		return
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		respondError(w, http.StatusBadRequest, "Coordinates out of range")
		return
	}

	report := weather.Mock(lat, lon)

	ctx, cancel := storeCtx(r)
	defer cancel()

	if data, err := json.Marshal(report); err == nil {
		a.Store.Weather.AppendWeather(ctx, store.NewWeather{
			UserID:   user.ID,
			Location: fmt.Sprintf("%.4f,%.4f", lat, lon),
			Data:     data,
		})
	}
	respondJSON(w, http.StatusOK, report)
}

// WeatherHistory lists the caller's past weather lookups, oldest first.
func (a *API) WeatherHistory(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	ctx, cancel := storeCtx(r)
	defer cancel()

	history, err := a.Store.Weather.WeatherByUser(ctx, user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load weather history")
		return
	}
	respondJSON(w, http.StatusOK, history)
}
