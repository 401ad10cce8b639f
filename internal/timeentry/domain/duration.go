package domain

import (
	"fmt"
	"time"
)

// Duration is a worked span at minute resolution. One computation feeds
// both renderings: Hours for aggregation, String for detail views.
type Duration struct {
	minutes int64
}

// Minutes builds a Duration from a minute count. Negative input is
// treated as zero; inverted intervals never contribute time.
func Minutes(n int64) Duration {
	if n < 0 {
		return Duration{}
	}
	return Duration{minutes: n}
}

// Span computes the wall-clock delta between a clock-in and clock-out,
// floored to whole minutes. An out at or before in yields zero.
func Span(in, out time.Time) Duration {
	return Minutes(int64(out.Sub(in) / time.Minute))
}

// Add sums two durations.
func (d Duration) Add(o Duration) Duration {
	return Duration{minutes: d.minutes + o.minutes}
}

func (d Duration) IsZero() bool { return d.minutes == 0 }

// Minutes returns the whole-minute count.
func (d Duration) Minutes() int64 { return d.minutes }

// Hours returns the decimal-hours form (hours + minutes/60).
func (d Duration) Hours() float64 { return float64(d.minutes) / 60 }

// String renders the human-readable "8h 30m" form.
func (d Duration) String() string {
	return fmt.Sprintf("%dh %dm", d.minutes/60, d.minutes%60)
}

// DailyTotal sums the durations of the complete periods of an entry.
// Incomplete periods contribute zero; so do inverted ones. It never
// fails: bad data degrades to zero, it does not surface as an error.
func DailyTotal(e Entry) Duration {
	total := Duration{}
	if e.MorningIn != nil && e.MorningOut != nil {
		total = total.Add(Span(*e.MorningIn, *e.MorningOut))
	}
	if e.AfternoonIn != nil && e.AfternoonOut != nil {
		total = total.Add(Span(*e.AfternoonIn, *e.AfternoonOut))
	}
	return total
}
