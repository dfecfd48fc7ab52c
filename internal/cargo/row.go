package cargo

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrMalformedField marks a row field that is missing or not parsable as
// the requested type. Aggregators treat any such failure as invalidating
// the whole snapshot under construction.
var ErrMalformedField = errors.New("malformed field")

// timeLayout is the wiki's DateTime_UTC column format.
const timeLayout = "2006-01-02 15:04:05"

// Row is one key-value record returned by a cargo query. Keys use the
// wiki's display form, with underscores rendered as spaces (e.g.
// "DateTime UTC", "Gamelength Number").
type Row map[string]string

// Get returns the raw field value, or "" when absent.
func (r Row) Get(key string) string { return r[key] }

// Float parses a numeric field.
func (r Row) Float(key string) (float64, error) {
	s, ok := r[key]
	if !ok || s == "" {
		return 0, fmt.Errorf("%w: %s is empty", ErrMalformedField, key)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrMalformedField, key, s)
	}
	return v, nil
}

// Time parses a DateTime_UTC-style field.
func (r Row) Time(key string) (time.Time, error) {
	s, ok := r[key]
	if !ok || s == "" {
		return time.Time{}, fmt.Errorf("%w: %s is empty", ErrMalformedField, key)
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s=%q", ErrMalformedField, key, s)
	}
	return t, nil
}

// FormatTime renders t in the wiki's DateTime_UTC format for use in
// where clauses.
func FormatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// ParseTime parses a timestamp in the wiki's DateTime_UTC format.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
