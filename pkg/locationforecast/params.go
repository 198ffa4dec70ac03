package locationforecast

import "math"

// Params identifies the point for which a forecast is requested. Instances
// are built through NewParams or NewParamsWithAltitude, which validate and
// normalize the coordinates, and are immutable afterwards.
type Params struct {
	lat float64
	lon float64
	alt *int

	lastResponse *Response
}

// NewParams validates lat/lon and returns normalized Params. Latitude and
// longitude are truncated to 4 decimal places, which is the precision the
// origin API expects and keeps cache keys stable.
func NewParams(lat, lon float64) (Params, error) {
	if !isFinite(lat) || math.Abs(lat) > 90 {
		return Params{}, &ParamError{Field: "latitude", Reason: "must be a finite value within [-90, 90]"}
	}
	if !isFinite(lon) || math.Abs(lon) > 180 {
		return Params{}, &ParamError{Field: "longitude", Reason: "must be a finite value within [-180, 180]"}
	}

	return Params{
		lat: truncateCoordinate(lat),
		lon: truncateCoordinate(lon),
	}, nil
}

// NewParamsWithAltitude is NewParams with an explicit altitude in meters
// above sea level.
func NewParamsWithAltitude(lat, lon float64, alt int) (Params, error) {
	if alt < -500 || alt > 9000 {
		return Params{}, &ParamError{Field: "altitude", Reason: "must be within [-500, 9000] meters"}
	}

	p, err := NewParams(lat, lon)
	if err != nil {
		return Params{}, err
	}
	p.alt = &alt
	return p, nil
}

// WithLastResponse returns a copy of p carrying a previously fetched
// response. The client uses it to skip the network entirely while the
// response is fresh, and to revalidate conditionally once it is not.
func (p Params) WithLastResponse(last *Response) Params {
	p.lastResponse = last
	return p
}

// Lat returns the normalized latitude.
func (p Params) Lat() float64 { return p.lat }

// Lon returns the normalized longitude.
func (p Params) Lon() float64 { return p.lon }

// Altitude returns the altitude in meters and whether one was set.
func (p Params) Altitude() (int, bool) {
	if p.alt == nil {
		return 0, false
	}
	return *p.alt, true
}

// LastResponse returns the prior response attached via WithLastResponse,
// or nil.
func (p Params) LastResponse() *Response { return p.lastResponse }

// truncateCoordinate cuts a coordinate to 4 decimal places. Truncation,
// not rounding: 14.1234567 becomes 14.1234.
func truncateCoordinate(v float64) float64 {
	return math.Trunc(v*10000) / 10000
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
