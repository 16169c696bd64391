package weather

// BuildSummary projects one day's slot out of every tracked daily field and
// attaches the warnings list as-is. Pure: no I/O, no shared state.
//
// Per-field extraction is deliberately lenient: a field that is missing from
// the payload, or whose array is shorter than dayIndex+1, yields a null value
// rather than an error. Strict day bounds are the caller's job (see Service).
func BuildSummary(p Payload, dayIndex int, warnings []Warning) DailySummary {
	if warnings == nil {
		warnings = []Warning{}
	}

	return DailySummary{
		MinTemp:       floatAt(p.Daily, "temperature_2m_min", dayIndex),
		MaxTemp:       floatAt(p.Daily, "temperature_2m_max", dayIndex),
		Rain:          floatAt(p.Daily, "rain_sum", dayIndex),
		Showers:       floatAt(p.Daily, "showers_sum", dayIndex),
		Snow:          floatAt(p.Daily, "snowfall_sum", dayIndex),
		Sunrise:       stringAt(p.Daily, "sunrise", dayIndex),
		Sunset:        stringAt(p.Daily, "sunset", dayIndex),
		MinVisibility: floatAt(p.Daily, "visibility_min", dayIndex),
		MaxVisibility: floatAt(p.Daily, "visibility_max", dayIndex),
		WindSpeed:     floatAt(p.Daily, "wind_speed_10m_max", dayIndex),
		WindGusts:     floatAt(p.Daily, "wind_gusts_10m_max", dayIndex),
		Warnings:      warnings,
	}
}

func floatAt(daily map[string][]any, key string, i int) *float64 {
	vals := daily[key]
	if i < 0 || i >= len(vals) {
		return nil
	}
	v, ok := vals[i].(float64)
	if !ok {
		return nil
	}
	return &v
}

func stringAt(daily map[string][]any, key string, i int) *string {
	vals := daily[key]
	if i < 0 || i >= len(vals) {
		return nil
	}
	v, ok := vals[i].(string)
	if !ok {
		return nil
	}
	return &v
}
