package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// WeatherHistory is an audit row written every time the weather proxy is
// called. The payload is stored opaquely and only read back by the
// history listing.
type WeatherHistory struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Timestamp time.Time `json:"timestamp"`

	// "lat,lon" pair or a named place.
	Location string `json:"location"`

	Data json.RawMessage `json:"data"`
}
