package weather

import (
	"encoding/json"
	"strings"
	"testing"
)

func fullPayload() Payload {
	return Payload{
		Daily: map[string][]any{
			"temperature_2m_min": {2.1, 3.4},
			"temperature_2m_max": {8.0, 9.5},
			"rain_sum":           {0.0, 1.2},
			"showers_sum":        {0.3, 0.0},
			"snowfall_sum":       {0.0, 0.0},
			"sunrise":            {"2024-01-15T08:46", "2024-01-16T08:45"},
			"sunset":             {"2024-01-15T16:59", "2024-01-16T17:01"},
			"visibility_min":     {1200.0, 24140.0},
			"visibility_max":     {24140.0, 24140.0},
			"wind_speed_10m_max": {18.7, 22.3},
			"wind_gusts_10m_max": {33.1, 40.0},
		},
	}
}

func TestBuildSummarySelectsRequestedDay(t *testing.T) {
	summary := BuildSummary(fullPayload(), 1, nil)

	if summary.MinTemp == nil || *summary.MinTemp != 3.4 {
		t.Fatalf("expected min_temp 3.4, got %v", summary.MinTemp)
	}
	if summary.MaxTemp == nil || *summary.MaxTemp != 9.5 {
		t.Fatalf("expected max_temp 9.5, got %v", summary.MaxTemp)
	}
	if summary.Sunrise == nil || *summary.Sunrise != "2024-01-16T08:45" {
		t.Fatalf("expected sunrise for day 1, got %v", summary.Sunrise)
	}
	if summary.WindGusts == nil || *summary.WindGusts != 40.0 {
		t.Fatalf("expected wind_gusts 40.0, got %v", summary.WindGusts)
	}
}

func TestBuildSummaryAllFieldsPresentForValidDay(t *testing.T) {
	summary := BuildSummary(fullPayload(), 0, nil)

	data, err := json.Marshal(summary)
	if err != nil {
		t.Fatalf("marshal summary: %v", err)
	}
	if strings.Contains(string(data), "null") {
		t.Fatalf("expected no null fields for a fully populated day, got %s", data)
	}
}

func TestBuildSummaryShortFieldYieldsNull(t *testing.T) {
	p := fullPayload()
	p.Daily["wind_gusts_10m_max"] = []any{33.1} // one day short

	summary := BuildSummary(p, 1, nil)

	if summary.WindGusts != nil {
		t.Fatalf("expected nil wind_gusts for truncated field, got %v", *summary.WindGusts)
	}
	if summary.MinTemp == nil || *summary.MinTemp != 3.4 {
		t.Fatalf("other fields must still resolve, got min_temp %v", summary.MinTemp)
	}
}

func TestBuildSummaryMissingFieldYieldsNull(t *testing.T) {
	p := fullPayload()
	delete(p.Daily, "visibility_min")

	summary := BuildSummary(p, 0, nil)

	if summary.MinVisibility != nil {
		t.Fatalf("expected nil min_visibility for absent field, got %v", *summary.MinVisibility)
	}
}

func TestBuildSummaryEmptyWarningsMarshalsAsEmptyArray(t *testing.T) {
	summary := BuildSummary(fullPayload(), 0, nil)

	if summary.Warnings == nil {
		t.Fatal("warnings must never be nil")
	}

	data, err := json.Marshal(summary)
	if err != nil {
		t.Fatalf("marshal summary: %v", err)
	}
	if !strings.Contains(string(data), `"warnings":[]`) {
		t.Fatalf("expected warnings to marshal as [], got %s", data)
	}
}

func TestBuildSummaryCarriesWarningsUnmodified(t *testing.T) {
	warnings := []Warning{
		{Color: "orange", Type: "SNEEUW"},
		{Color: "yellow", Type: "WIND"},
	}

	summary := BuildSummary(fullPayload(), 0, warnings)

	if len(summary.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(summary.Warnings))
	}
	if summary.Warnings[0] != warnings[0] || summary.Warnings[1] != warnings[1] {
		t.Fatalf("warnings must pass through unmodified, got %+v", summary.Warnings)
	}
}

func TestPayloadDays(t *testing.T) {
	if got := fullPayload().Days(); got != 2 {
		t.Fatalf("expected 2 days, got %d", got)
	}
	if got := (Payload{}).Days(); got != 0 {
		t.Fatalf("expected 0 days for empty payload, got %d", got)
	}
}
