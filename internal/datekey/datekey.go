// Package datekey canonicalizes the heterogeneous date strings found in
// stored punch records into one comparable calendar-day key.
package datekey

import (
	"errors"
	"strings"
	"time"
)

// ErrUnparseable marks input that no known layout accepts. Callers drop
// the record from range filtering instead of failing the aggregate.
var ErrUnparseable = errors.New("unparseable_date")

// Layouts accepted by Normalize, most common first. Old records mixed
// ISO dates with pt-BR day-first dates.
var layouts = []string{
	time.DateOnly,
	"02/01/2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// Key is a calendar day, normalized to midnight UTC.
type Key struct {
	t time.Time
}

// Normalize parses a date string in dash (YYYY-MM-DD) or slash
// (DD/MM/YYYY) form, falling back to a few timestamp layouts.
func Normalize(value string) (Key, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Key{}, ErrUnparseable
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return FromTime(parsed), nil
		}
	}
	return Key{}, ErrUnparseable
}

// FromTime truncates a timestamp to its calendar day.
func FromTime(t time.Time) Key {
	year, month, day := t.Date()
	return Key{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (k Key) IsZero() bool      { return k.t.IsZero() }
func (k Key) Time() time.Time   { return k.t }
func (k Key) Equal(o Key) bool  { return k.t.Equal(o.t) }
func (k Key) Before(o Key) bool { return k.t.Before(o.t) }
func (k Key) After(o Key) bool  { return k.t.After(o.t) }
func (k Key) String() string    { return k.t.Format(time.DateOnly) }
func (k Key) AddDays(n int) Key { return FromTime(k.t.AddDate(0, 0, n)) }

// MonthBounds returns the first and last day of the month containing k.
func (k Key) MonthBounds() (Key, Key) {
	year, month, _ := k.t.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return Key{t: first}, Key{t: last}
}
