package forecast

import (
	"time"

	"nordcast/pkg/locationforecast"
)

// BuildDaily folds a forecast timeseries into at most days per-day
// summaries. Entries are grouped by calendar day in tz; within a day the
// minimum and maximum instant temperature, the summed precipitation, the
// maximum wind speed, and a representative symbol are collected.
func BuildDaily(body *locationforecast.Body, tz *time.Location, days int) []DaySummary {
	if days <= 0 || body.Properties == nil {
		return nil
	}

	var (
		summaries []DaySummary
		current   *DaySummary
		had1Hour  bool
	)

	flush := func() {
		if current != nil {
			summaries = append(summaries, *current)
			current = nil
		}
	}

	for _, entry := range body.Properties.Timeseries {
		local := entry.Time.In(tz)
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, tz)

		if current == nil || !current.Date.Equal(day) {
			flush()
			if len(summaries) >= days {
				break
			}
			current = &DaySummary{Date: day}
			had1Hour = false
		}

		details := entry.Data.Instant.Details
		if t := details.AirTemperature; t != nil {
			if current.TempMin == nil || *t < *current.TempMin {
				v := *t
				current.TempMin = &v
			}
			if current.TempMax == nil || *t > *current.TempMax {
				v := *t
				current.TempMax = &v
			}
		}
		if w := details.WindSpeed; w != nil && *w > current.MaxWindSpeed {
			current.MaxWindSpeed = *w
		}

		// Hourly precipitation sums are preferred; six-hour blocks at the
		// synoptic hours fill in once the hourly horizon runs out.
		if next := entry.Data.Next1Hours; next != nil && next.Details != nil && next.Details.PrecipitationAmount != nil {
			current.Precipitation += *next.Details.PrecipitationAmount
			had1Hour = true
		} else if next := entry.Data.Next6Hours; next != nil && !had1Hour && isSynopticHour(local.Hour()) {
			if next.Details != nil && next.Details.PrecipitationAmount != nil {
				current.Precipitation += *next.Details.PrecipitationAmount
			}
		}

		if next := entry.Data.Next6Hours; next != nil && next.Summary.SymbolCode != "" {
			// Midday gives the most representative symbol for the day.
			if current.SymbolCode == "" || local.Hour() == 12 {
				current.SymbolCode = next.Summary.SymbolCode
			}
		} else if next := entry.Data.Next1Hours; next != nil && current.SymbolCode == "" {
			current.SymbolCode = next.Summary.SymbolCode
		}
	}
	flush()

	if len(summaries) > days {
		summaries = summaries[:days]
	}
	return summaries
}

// isSynopticHour reports whether h is one of the 0/6/12/18 forecast hours
// that six-hour summaries are anchored to.
func isSynopticHour(h int) bool {
	return h == 0 || h == 6 || h == 12 || h == 18
}

// buildCurrent extracts the instant view from the first timeseries entry.
func buildCurrent(body *locationforecast.Body) *CurrentConditions {
	if body.Properties == nil || len(body.Properties.Timeseries) == 0 {
		return nil
	}

	first := body.Properties.Timeseries[0]
	current := &CurrentConditions{
		Time:             first.Time,
		AirTemperature:   first.Data.Instant.Details.AirTemperature,
		WindSpeed:        first.Data.Instant.Details.WindSpeed,
		RelativeHumidity: first.Data.Instant.Details.RelativeHumidity,
	}
	if next := first.Data.Next1Hours; next != nil {
		current.SymbolCode = next.Summary.SymbolCode
	}
	return current
}
