package domain

import (
	"fmt"
	"time"
)

// datumLayout is the wire format for calendar dates, e.g. "01.11.1912".
const datumLayout = "02.01.2006"

// ParseDatum converts a DD.MM.YYYY string from the HTTP boundary into the
// internal date representation (midnight UTC, time part discarded).
func ParseDatum(s string) (time.Time, error) {
	t, err := time.ParseInLocation(datumLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid datum %q, expected DD.MM.YYYY: %w", s, err)
	}
	return t, nil
}

// FormatDatum renders a date in the DD.MM.YYYY wire format.
func FormatDatum(t time.Time) string {
	return t.Format(datumLayout)
}

// SameDatum reports whether two timestamps fall on the same calendar date.
func SameDatum(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
