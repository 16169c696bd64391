package weather

import "errors"

var (
	// ErrForecastUnavailable means the forecast fetch failed with no cached
	// payload to fall back on.
	ErrForecastUnavailable = errors.New("weather fetch failed")

	// ErrDayOutOfRange means the requested day index exceeds the forecast range.
	ErrDayOutOfRange = errors.New("day index out of range")
)

// Payload is the raw Open-Meteo forecast document. Daily maps a field name
// (e.g. temperature_2m_min) to one value per forecast day, ordered
// chronologically starting today. Numeric fields decode as float64, the
// sunrise/sunset fields as string.
type Payload struct {
	Daily map[string][]any `json:"daily"`
}

// dayCountField is the field whose length is treated as the authoritative
// number of forecast days. Upstream sends all daily fields as parallel arrays
// of equal length, so any of them would do; this one is always requested.
const dayCountField = "temperature_2m_min"

// Days returns the number of forecast days in the payload.
func (p Payload) Days() int {
	return len(p.Daily[dayCountField])
}

// Warning is one active or imminent hazard advisory.
type Warning struct {
	// Color is the awareness level (yellow/orange/red).
	Color string `json:"color"`
	// Type is the phenomenon category (e.g. GLADHEID, SNEEUW, WIND).
	Type string `json:"type"`
}

// DailySummary is the served response shape: one day's selected forecast
// fields plus the current warnings. Fields absent from the upstream payload
// (or shorter than the requested day) render as null.
type DailySummary struct {
	MinTemp       *float64  `json:"min_temp"`
	MaxTemp       *float64  `json:"max_temp"`
	Rain          *float64  `json:"rain"`
	Showers       *float64  `json:"showers"`
	Snow          *float64  `json:"snow"`
	Sunrise       *string   `json:"sunrise"`
	Sunset        *string   `json:"sunset"`
	MinVisibility *float64  `json:"min_visibility"`
	MaxVisibility *float64  `json:"max_visibility"`
	WindSpeed     *float64  `json:"wind_speed"`
	WindGusts     *float64  `json:"wind_gusts"`
	Warnings      []Warning `json:"warnings"`
}
