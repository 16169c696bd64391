package providers

import (
	"fmt"
	"testing"
	"time"
)

func bundleXML(warnings ...string) []byte {
	body := ""
	for _, w := range warnings {
		body += w
	}
	return []byte(`<?xml version="1.0" encoding="UTF-8"?>
<report>
  <issued>2024-01-15T06:00:00+00:00</issued>
  <warnings>` + body + `</warnings>
</report>`)
}

func warningXML(start, end time.Time, color, phenomenon string) string {
	return fmt.Sprintf(
		`<warning><startTime>%s</startTime><endTime>%s</endTime><awarenessLevel>%s</awarenessLevel><phenomenon>%s</phenomenon></warning>`,
		start.Format(time.RFC3339), end.Format(time.RFC3339), color, phenomenon,
	)
}

func TestParseWarningsKeepsCurrentlyActive(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	data := bundleXML(warningXML(now.Add(-time.Hour), now.Add(time.Hour), "yellow", "GLADHEID"))

	warnings, err := ParseWarnings(data, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings))
	}
	if warnings[0].Color != "yellow" || warnings[0].Type != "GLADHEID" {
		t.Fatalf("unexpected warning: %+v", warnings[0])
	}
}

func TestParseWarningsDropsExpired(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	data := bundleXML(warningXML(now.Add(-3*time.Hour), now.Add(-time.Minute), "orange", "WIND"))

	warnings, err := ParseWarnings(data, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected expired warning to be dropped, got %+v", warnings)
	}
}

func TestParseWarningsDropsFarFuture(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	data := bundleXML(warningXML(now.Add(72*time.Hour), now.Add(80*time.Hour), "red", "SNEEUW"))

	warnings, err := ParseWarnings(data, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected far-future warning to be dropped, got %+v", warnings)
	}
}

func TestParseWarningsEndOfTomorrowBoundaryIsInclusive(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	boundary := time.Date(2024, 1, 16, 23, 59, 59, 0, time.UTC)
	data := bundleXML(warningXML(boundary, boundary.Add(6*time.Hour), "orange", "SNEEUW"))

	warnings, err := ParseWarnings(data, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warning starting exactly at end of tomorrow must be kept, got %+v", warnings)
	}
}

func TestParseWarningsEndAtNowIsInclusive(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	data := bundleXML(warningXML(now.Add(-2*time.Hour), now, "yellow", "WIND"))

	warnings, err := ParseWarnings(data, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warning ending exactly now must be kept, got %+v", warnings)
	}
}

func TestParseWarningsHandlesOffsetTimestamps(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	// 14:00+01:00 == 13:00 UTC, one hour from now and still active.
	data := bundleXML(`<warning><startTime>2024-01-15T14:00:00+01:00</startTime><endTime>2024-01-15T20:00:00+01:00</endTime><awarenessLevel>yellow</awarenessLevel><phenomenon>WIND</phenomenon></warning>`)

	warnings, err := ParseWarnings(data, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected offset timestamps to parse, got %+v", warnings)
	}
}

func TestParseWarningsEmptyDocument(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	warnings, err := ParseWarnings(bundleXML(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if warnings == nil || len(warnings) != 0 {
		t.Fatalf("expected an empty non-nil slice, got %v", warnings)
	}
}

func TestParseWarningsRejectsMissingTimes(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	data := bundleXML(`<warning><awarenessLevel>yellow</awarenessLevel><phenomenon>WIND</phenomenon></warning>`)

	if _, err := ParseWarnings(data, now); err == nil {
		t.Fatal("expected an error for a warning without timestamps")
	}
}

func TestParseWarningsRejectsMalformedXML(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	if _, err := ParseWarnings([]byte("<report><warning>"), now); err == nil {
		t.Fatal("expected an error for truncated XML")
	}
}
