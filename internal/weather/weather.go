// Package weather produces the weather payload served by the weather
// proxy. There is no upstream provider wired in: the generator fabricates
// a plausible seasonal report, which is all the dashboard widget needs.
package weather

import (
	"fmt"
	"math/rand"
	"time"
)

var icons = []string{
	"clear-day",
	"clear-night",
	"partly-cloudy-day",
	"partly-cloudy-night",
	"cloudy",
	"rain",
	"showers",
	"fog",
	"snow",
	"thunderstorm",
	"wind",
}

type Current struct {
	Temperature int    `json:"temperature"`
	Icon        string `json:"icon"`
	Condition   string `json:"condition"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"windSpeed"`
}

type ForecastDay struct {
	Day         string `json:"day"`
	Icon        string `json:"icon"`
	Temperature int    `json:"temperature"`
	Condition   string `json:"condition"`
}

type Report struct {
	Location string        `json:"location"`
	Current  Current       `json:"current"`
	Forecast []ForecastDay `json:"forecast"`
}

// Mock builds a report for the given coordinates: a named location when
// the point falls in a known box, a temperature band for the current
// season, and a 4-day forecast.
func Mock(lat, lon float64) Report {
	return mockAt(lat, lon, time.Now())
}

func mockAt(lat, lon float64, now time.Time) Report {
	location := fmt.Sprintf("%.4f,%.4f", lat, lon)
	switch {
	case lat >= 37.8 && lat <= 38 && lon >= 32.4 && lon <= 32.6:
		location = "Konya, Merkez"
	case lat >= 39.9 && lat <= 40 && lon >= 32.8 && lon <= 32.9:
		location = "Ankara, Merkez"
	case lat >= 41 && lat <= 41.1 && lon >= 28.9 && lon <= 29:
		location = "İstanbul, Merkez"
	}

	tempMin, tempMax := seasonBand(now.Month())
	current := float64(tempMin) + rand.Float64()*float64(tempMax-tempMin)

	forecast := make([]ForecastDay, 0, 4)
	for i := 0; i < 4; i++ {
		variation := rand.Float64()*6 - 3
		forecast = append(forecast, ForecastDay{
			Day:         fmt.Sprintf("%d", int(now.AddDate(0, 0, i).Weekday())),
			Icon:        icons[rand.Intn(len(icons))],
			Temperature: int(current + variation),
			Condition:   "Partly cloudy",
		})
	}

	return Report{
		Location: location,
		Current: Current{
			Temperature: int(current),
			Icon:        "clear-day",
			Condition:   "Clear",
			Humidity:    40 + rand.Intn(41),
			WindSpeed:   5 + rand.Intn(21),
		},
		Forecast: forecast,
	}
}

// seasonBand returns the plausible min/max temperature for a month.
func seasonBand(m time.Month) (int, int) {
	switch {
	case m >= time.March && m <= time.May:
		return 15, 25
	case m >= time.June && m <= time.August:
		return 25, 35
	case m >= time.September && m <= time.November:
		return 15, 25
	default:
		return 0, 15
	}
}
