package weather

import (
	"testing"
	"time"
)

func TestMockKnownLocations(t *testing.T) {
	cases := []struct {
		lat, lon float64
		want     string
	}{
		{37.9, 32.5, "Konya, Merkez"},
		{39.95, 32.85, "Ankara, Merkez"},
		{41.05, 28.95, "İstanbul, Merkez"},
		{48.85, 2.35, "48.8500,2.3500"},
	}
	for _, tc := range cases {
		got := Mock(tc.lat, tc.lon)
		if got.Location != tc.want {
			t.Errorf("Mock(%v, %v).Location = %q, want %q", tc.lat, tc.lon, got.Location, tc.want)
		}
	}
}

func TestMockSeasonalTemperature(t *testing.T) {
	cases := []struct {
		month    time.Month
		min, max int
	}{
		{time.January, 0, 15},
		{time.April, 15, 25},
		{time.July, 25, 35},
		{time.October, 15, 25},
	}
	for _, tc := range cases {
		now := time.Date(2026, tc.month, 15, 12, 0, 0, 0, time.UTC)
		for i := 0; i < 20; i++ {
			r := mockAt(37.9, 32.5, now)
			if r.Current.Temperature < tc.min || r.Current.Temperature > tc.max {
				t.Fatalf("%s: temperature %d outside [%d, %d]", tc.month, r.Current.Temperature, tc.min, tc.max)
			}
		}
	}
}

func TestMockReportShape(t *testing.T) {
	r := Mock(37.9, 32.5)
	if len(r.Forecast) != 4 {
		t.Fatalf("forecast has %d days, want 4", len(r.Forecast))
	}
	if r.Current.Humidity < 40 || r.Current.Humidity > 80 {
		t.Errorf("humidity %d outside [40, 80]", r.Current.Humidity)
	}
	if r.Current.WindSpeed < 5 || r.Current.WindSpeed > 25 {
		t.Errorf("wind speed %d outside [5, 25]", r.Current.WindSpeed)
	}
	for _, day := range r.Forecast {
		valid := false
		for _, icon := range icons {
			if day.Icon == icon {
				valid = true
				break
			}
		}
		if !valid {
			t.Errorf("unknown forecast icon %q", day.Icon)
		}
	}
}
