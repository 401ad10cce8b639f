// Package domain holds the hours aggregation engine: a pure transform
// from a loaded slice of day entries into a per-day series, summary
// statistics and a workload histogram.
package domain

import (
	"time"

	"github.com/HenryKun55/ponto/internal/datekey"
	entrydomain "github.com/HenryKun55/ponto/internal/timeentry/domain"
)

// Range bounds a report to an inclusive date window. A zero Key means
// unbounded on that side; a fully zero Range asks for the data-driven
// default (the calendar month of the latest valid record).
type Range struct {
	From datekey.Key
	To   datekey.Key
}

// IsZero reports whether neither bound was supplied.
func (r Range) IsZero() bool { return r.From.IsZero() && r.To.IsZero() }

// Contains reports whether the key falls inside the window. Absent
// bounds never exclude.
func (r Range) Contains(k datekey.Key) bool {
	if !r.From.IsZero() && k.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && k.After(r.To) {
		return false
	}
	return true
}

// DayRecord is one worked day in the report series.
type DayRecord struct {
	Date         datekey.Key          `json:"-"`
	DateKey      string               `json:"date"`
	Hours        float64              `json:"hours"`
	Worked       string               `json:"worked"`
	FirstClockIn *time.Time           `json:"first_clock_in,omitempty"`
	LastClockOut *time.Time           `json:"last_clock_out,omitempty"`
	Total        entrydomain.Duration `json:"-"`
}

// Stats summarizes the series.
type Stats struct {
	TotalHours   float64 `json:"total_hours"`
	AverageHours float64 `json:"average_hours"`
	Days         int     `json:"days"`
	MinHours     float64 `json:"min_hours"`
	MaxHours     float64 `json:"max_hours"`
}

// Histogram counts days by workload band.
type Histogram struct {
	UnderSixHours   int `json:"under_6h"`
	SixToEightHours int `json:"six_to_8h"`
	OverEightHours  int `json:"over_8h"`
}

// Report is the engine's output for one employee and window.
type Report struct {
	Employee  string      `json:"employee"`
	From      string      `json:"from"`
	To        string      `json:"to"`
	Series    []DayRecord `json:"series"`
	Stats     Stats       `json:"stats"`
	Histogram Histogram   `json:"histogram"`
}
