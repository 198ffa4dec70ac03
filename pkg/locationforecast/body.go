package locationforecast

import "time"

// Body is the decoded forecast document, mirroring the origin's
// "complete" schema field for field. Measurement values are pointers:
// the origin omits individual values, and absence is distinct from zero.
type Body struct {
	Type       string      `json:"type"`
	Geometry   *Geometry   `json:"geometry"`
	Properties *Properties `json:"properties"`
}

type Geometry struct {
	Type        string      `json:"type"`
	Coordinates Coordinates `json:"coordinates"`
}

type Coordinates struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Altitude  float64 `json:"altitude"`
}

type Properties struct {
	Meta       Meta         `json:"meta"`
	Timeseries []TimeSeries `json:"timeseries"`
}

type Meta struct {
	UpdatedAt time.Time `json:"updated_at"`
	Units     Units     `json:"units"`
}

// Units maps measurement names to unit strings. Keys the origin omits
// decode to the empty string.
type Units struct {
	AirPressureAtSeaLevel    string `json:"air_pressure_at_sea_level,omitempty"`
	AirTemperature           string `json:"air_temperature,omitempty"`
	AirTemperatureMax        string `json:"air_temperature_max,omitempty"`
	AirTemperatureMin        string `json:"air_temperature_min,omitempty"`
	CloudAreaFraction        string `json:"cloud_area_fraction,omitempty"`
	CloudAreaFractionHigh    string `json:"cloud_area_fraction_high,omitempty"`
	CloudAreaFractionLow     string `json:"cloud_area_fraction_low,omitempty"`
	CloudAreaFractionMedium  string `json:"cloud_area_fraction_medium,omitempty"`
	DewPointTemperature      string `json:"dew_point_temperature,omitempty"`
	FogAreaFraction          string `json:"fog_area_fraction,omitempty"`
	PrecipitationAmount      string `json:"precipitation_amount,omitempty"`
	RelativeHumidity         string `json:"relative_humidity,omitempty"`
	UltravioletIndexClearSky string `json:"ultraviolet_index_clear_sky,omitempty"`
	WindFromDirection        string `json:"wind_from_direction,omitempty"`
	WindSpeed                string `json:"wind_speed,omitempty"`
}

type TimeSeries struct {
	Time time.Time `json:"time"`
	Data Data      `json:"data"`
}

type Data struct {
	Instant     Instant    `json:"instant"`
	Next1Hours  *NextHours `json:"next_1_hours,omitempty"`
	Next6Hours  *NextHours `json:"next_6_hours,omitempty"`
	Next12Hours *NextHours `json:"next_12_hours,omitempty"`
}

type Instant struct {
	Details InstantDetails `json:"details"`
}

type InstantDetails struct {
	AirPressureAtSeaLevel    *float64 `json:"air_pressure_at_sea_level,omitempty"`
	AirTemperature           *float64 `json:"air_temperature,omitempty"`
	CloudAreaFraction        *float64 `json:"cloud_area_fraction,omitempty"`
	CloudAreaFractionHigh    *float64 `json:"cloud_area_fraction_high,omitempty"`
	CloudAreaFractionLow     *float64 `json:"cloud_area_fraction_low,omitempty"`
	CloudAreaFractionMedium  *float64 `json:"cloud_area_fraction_medium,omitempty"`
	DewPointTemperature      *float64 `json:"dew_point_temperature,omitempty"`
	FogAreaFraction          *float64 `json:"fog_area_fraction,omitempty"`
	RelativeHumidity         *float64 `json:"relative_humidity,omitempty"`
	UltravioletIndexClearSky *float64 `json:"ultraviolet_index_clear_sky,omitempty"`
	WindFromDirection        *float64 `json:"wind_from_direction,omitempty"`
	WindSpeed                *float64 `json:"wind_speed,omitempty"`
}

type NextHours struct {
	Summary Summary `json:"summary"`
	// The docs declare details as required but the origin omits it in
	// some responses, so it stays optional here.
	Details *SummaryDetails `json:"details,omitempty"`
}

type Summary struct {
	SymbolCode string `json:"symbol_code"`
}

type SummaryDetails struct {
	AirTemperatureMax           *float64 `json:"air_temperature_max,omitempty"`
	AirTemperatureMin           *float64 `json:"air_temperature_min,omitempty"`
	PrecipitationAmount         *float64 `json:"precipitation_amount,omitempty"`
	PrecipitationAmountMax      *float64 `json:"precipitation_amount_max,omitempty"`
	PrecipitationAmountMin      *float64 `json:"precipitation_amount_min,omitempty"`
	ProbabilityOfPrecipitation  *float64 `json:"probability_of_precipitation,omitempty"`
	ProbabilityOfThunder        *float64 `json:"probability_of_thunder,omitempty"`
	UltravioletIndexClearSkyMax *float64 `json:"ultraviolet_index_clear_sky_max,omitempty"`
}

// validate checks the structural fields the schema requires. Decoding is
// total-or-nothing: a document missing any of these is rejected as a
// whole.
func (b *Body) validate() error {
	if b.Type == "" {
		return &MalformedResponseError{Reason: "body missing type"}
	}
	if b.Geometry == nil {
		return &MalformedResponseError{Reason: "body missing geometry"}
	}
	if b.Geometry.Type == "" {
		return &MalformedResponseError{Reason: "geometry missing type"}
	}
	if b.Properties == nil {
		return &MalformedResponseError{Reason: "body missing properties"}
	}
	return nil
}
