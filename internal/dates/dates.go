// Package dates canonicalizes the heterogeneous date strings that reach the
// ledger into one stable local-time representation.
package dates

import (
	"math"
	"time"
)

// Canonical is the storage format for transaction dates: local wall-clock
// time at minute precision, no zone offset.
const Canonical = "2006-01-02T15:04"

const dateOnly = "2006-01-02"

// Fallback layouts tried when input is neither a bare date nor a canonical
// local datetime. Zone-less layouts are interpreted as local wall-clock time;
// zoned ones are converted to local.
var localLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.ANSIC,
}

var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
}

// Parse interprets a date string. Bare dates parse as local midnight, local
// datetimes as-is; anything else falls through the fallback layouts. The
// second return is false when nothing matched.
func Parse(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(dateOnly, value, time.Local); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(Canonical, value, time.Local); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", value, time.Local); err == nil {
		return t, true
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, true
		}
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Local(), true
		}
	}
	return time.Time{}, false
}

// Normalize returns the canonical form of value. Unparseable input yields the
// current local time rather than an error: every transaction must end up with
// a valid date.
func Normalize(value string) string {
	if t, ok := Parse(value); ok {
		return t.Format(Canonical)
	}
	return Now()
}

// Split breaks a value into its date and clock-time parts ("2026-02-17",
// "19:05"), normalizing first.
func Split(value string) (date, clock string) {
	n := Normalize(value)
	return n[:10], n[11:16]
}

// Timestamp returns a sortable key in milliseconds. Unparseable input sorts
// before everything else.
func Timestamp(value string) int64 {
	t, ok := Parse(value)
	if !ok {
		return math.MinInt64
	}
	return t.UnixMilli()
}

// Now returns the current local time in canonical form.
func Now() string {
	return time.Now().Format(Canonical)
}
