package providers

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/roadcast/roadcast/internal/weather"
)

type xmlWarning struct {
	StartTime      string `xml:"startTime"`
	EndTime        string `xml:"endTime"`
	AwarenessLevel string `xml:"awarenessLevel"`
	Phenomenon     string `xml:"phenomenon"`
}

// ParseWarnings extracts every warning element from the bundle XML, at any
// nesting depth, and keeps the ones that are active or upcoming: start at or
// before the end of tomorrow (23:59:59 UTC) and end at or after now. Both
// boundaries are inclusive.
func ParseWarnings(data []byte, now time.Time) ([]weather.Warning, error) {
	cutoff := endOfTomorrow(now)

	dec := xml.NewDecoder(bytes.NewReader(data))
	warnings := []weather.Warning{}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read warning xml: %w", err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "warning" {
			continue
		}

		var w xmlWarning
		if err := dec.DecodeElement(&w, &se); err != nil {
			return nil, fmt.Errorf("decode warning element: %w", err)
		}

		start, err := parseWarningTime(w.StartTime)
		if err != nil {
			return nil, fmt.Errorf("warning startTime: %w", err)
		}
		end, err := parseWarningTime(w.EndTime)
		if err != nil {
			return nil, fmt.Errorf("warning endTime: %w", err)
		}

		if !start.After(cutoff) && !end.Before(now) {
			warnings = append(warnings, weather.Warning{
				Color: w.AwarenessLevel,
				Type:  w.Phenomenon,
			})
		}
	}

	return warnings, nil
}

// endOfTomorrow is 23:59:59 UTC on the day after now.
func endOfTomorrow(now time.Time) time.Time {
	t := now.UTC().AddDate(0, 0, 1)
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.UTC)
}

// parseWarningTime accepts RFC3339 timestamps and the offset-less variant the
// bundle occasionally carries; the latter is taken as UTC.
func parseWarningTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("missing timestamp")
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", s)
}
