package forecast

import (
	"fmt"
	"math"
	"time"
)

// Location is a named place the application tracks. Coordinates are given
// explicitly; the origin API has no notion of place names.
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Alt  *int    `json:"alt,omitempty"`
}

// Key returns a canonical cache key for the location. Coordinates are
// truncated to 4 decimal places, matching the client's normalization, so
// the same key always maps to the same upstream query.
func (l Location) Key() string {
	return fmt.Sprintf("%.4f:%.4f", trunc4(l.Lat), trunc4(l.Lon))
}

func trunc4(v float64) float64 {
	return math.Trunc(v*10000) / 10000
}

// DaySummary is the per-day aggregation of a forecast timeseries, the
// shape both the HTTP API and the CLI table render.
type DaySummary struct {
	Date          time.Time `json:"date"`
	SymbolCode    string    `json:"symbolCode,omitempty"`
	TempMin       *float64  `json:"tempMinC,omitempty"`
	TempMax       *float64  `json:"tempMaxC,omitempty"`
	Precipitation float64   `json:"precipitationMm"`
	MaxWindSpeed  float64   `json:"maxWindSpeedMs"`
}

// CurrentConditions is the instant view from the first timeseries entry.
type CurrentConditions struct {
	Time             time.Time `json:"time"`
	SymbolCode       string    `json:"symbolCode,omitempty"`
	AirTemperature   *float64  `json:"airTemperatureC,omitempty"`
	WindSpeed        *float64  `json:"windSpeedMs,omitempty"`
	RelativeHumidity *float64  `json:"relativeHumidityPct,omitempty"`
}
