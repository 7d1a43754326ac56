// Package timecoord converts time strings and CF time coordinates to days
// since 1970-01-01T00:00:00Z, the time representation of generated cubes.
package timecoord

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

const secondsPerDay = 24 * 60 * 60

// Epoch is the reference time of all time values
var Epoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// Layouts tried before falling back to cast. Zone-less values are UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"20060102T150405Z",
	"20060102T150405",
	"02-Jan-2006 15:04:05.999999999", // SNAP, e.g. 15-APR-2017 10:01:39.000000
	"02-Jan-2006 15:04:05",
	"2006-01-02",
}

// Parse parses a time string, trying common ISO 8601 and SNAP forms
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	t, err := cast.ToTimeInDefaultLocationE(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse time %q: %w", s, err)
	}
	return t.UTC(), nil
}

// ToDaysSince1970 parses a time string into days since the epoch
func ToDaysSince1970(s string) (float64, error) {
	t, err := Parse(s)
	if err != nil {
		return 0, err
	}
	return DaysSince1970(t), nil
}

// DaysSince1970 converts a time into days since the epoch
func DaysSince1970(t time.Time) float64 {
	d := t.Sub(Epoch)
	return d.Seconds() / secondsPerDay
}

// Units is a parsed CF time unit string, e.g. "hours since 2019-01-01"
type Units struct {
	Step      time.Duration
	Reference time.Time
}

var unitSteps = map[string]time.Duration{
	"days":         24 * time.Hour,
	"day":          24 * time.Hour,
	"d":            24 * time.Hour,
	"hours":        time.Hour,
	"hour":         time.Hour,
	"h":            time.Hour,
	"minutes":      time.Minute,
	"minute":       time.Minute,
	"min":          time.Minute,
	"seconds":      time.Second,
	"second":       time.Second,
	"s":            time.Second,
	"milliseconds": time.Millisecond,
}

// ParseUnits parses a CF "<unit> since <reference>" string
func ParseUnits(units string) (Units, error) {
	parts := strings.SplitN(strings.TrimSpace(units), " since ", 2)
	if len(parts) != 2 {
		return Units{}, fmt.Errorf("not a CF time unit: %q", units)
	}
	step, ok := unitSteps[strings.ToLower(strings.TrimSpace(parts[0]))]
	if !ok {
		return Units{}, fmt.Errorf("unsupported CF time unit %q", parts[0])
	}
	ref, err := Parse(parts[1])
	if err != nil {
		return Units{}, err
	}
	return Units{Step: step, Reference: ref}, nil
}

// IsDaysSince1970 reports whether units already express days since the epoch
func (u Units) IsDaysSince1970() bool {
	return u.Step == 24*time.Hour && u.Reference.Equal(Epoch)
}

// DecodeCFTime converts values given in CF units into days since the epoch
func DecodeCFTime(values []float64, units string) ([]float64, error) {
	u, err := ParseUnits(units)
	if err != nil {
		return nil, err
	}
	offset := DaysSince1970(u.Reference)
	scale := u.Step.Seconds() / secondsPerDay
	days := make([]float64, len(values))
	for i, v := range values {
		days[i] = offset + v*scale
	}
	return days, nil
}

// FormatDays renders days since the epoch as an RFC 3339 string
func FormatDays(days float64) string {
	whole := math.Floor(days)
	frac := time.Duration((days - whole) * secondsPerDay * float64(time.Second))
	t := Epoch.AddDate(0, 0, int(whole)).Add(frac)
	return t.Format(time.RFC3339Nano)
}

// DaysUnits is the CF unit string of decoded time values
const DaysUnits = "days since 1970-01-01"
