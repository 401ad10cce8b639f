package domain

import (
	"errors"
	"time"
)

// Punch validation failures. Business-rule rejections, never fatal.
var (
	ErrAlreadyClockedIn  = errors.New("already_clocked_in")
	ErrPeriodFinished    = errors.New("period_finished")
	ErrMustClockInFirst  = errors.New("must_clock_in_first")
	ErrAlreadyClockedOut = errors.New("already_clocked_out")
	ErrOutBeforeIn       = errors.New("out_before_in")
)

// Punch carries one clock event: the time the employee picked, the time
// the server processed it, and the best-effort location capture.
type Punch struct {
	Submitted time.Time
	Real      time.Time
	Location  *GeoSnapshot
}

// ApplyClockIn validates a clock-in against the day's entry and returns
// a new entry value with the punch recorded. The input is never
// mutated; the caller hands the result to the store's upsert.
func ApplyClockIn(entry Entry, period Period, punch Punch) (Entry, error) {
	if entry.Open(period) {
		return Entry{}, ErrAlreadyClockedIn
	}
	if entry.Complete(period) {
		return Entry{}, ErrPeriodFinished
	}

	next := entry
	submitted := punch.Submitted
	real := punch.Real
	switch period {
	case PeriodMorning:
		next.MorningIn = &submitted
		next.MorningInReal = &real
		next.MorningInLocation = punch.Location
		if punch.Location != nil {
			id := punch.Location.ID
			next.MorningInLocationID = &id
		}
	default:
		next.AfternoonIn = &submitted
		next.AfternoonInReal = &real
		next.AfternoonInLocation = punch.Location
		if punch.Location != nil {
			id := punch.Location.ID
			next.AfternoonInLocationID = &id
		}
	}
	next.UpdatedAt = punch.Real
	return next, nil
}

// ApplyClockOut validates a clock-out against the day's entry and
// returns a new entry value with the punch recorded. A submitted out
// earlier than the period's submitted in is rejected; the same policy
// zeroes inverted spans in duration math.
func ApplyClockOut(entry Entry, period Period, punch Punch) (Entry, error) {
	if entry.Complete(period) {
		return Entry{}, ErrAlreadyClockedOut
	}
	in := entry.SubmittedIn(period)
	if in == nil {
		return Entry{}, ErrMustClockInFirst
	}
	if punch.Submitted.Before(*in) {
		return Entry{}, ErrOutBeforeIn
	}

	next := entry
	submitted := punch.Submitted
	real := punch.Real
	switch period {
	case PeriodMorning:
		next.MorningOut = &submitted
		next.MorningOutReal = &real
		next.MorningOutLocation = punch.Location
		if punch.Location != nil {
			id := punch.Location.ID
			next.MorningOutLocationID = &id
		}
	default:
		next.AfternoonOut = &submitted
		next.AfternoonOutReal = &real
		next.AfternoonOutLocation = punch.Location
		if punch.Location != nil {
			id := punch.Location.ID
			next.AfternoonOutLocationID = &id
		}
	}
	next.UpdatedAt = punch.Real
	return next, nil
}
