// Package clock abstracts wall-clock access so that period resolution
// and real punch timestamps are testable.
package clock

import "time"

// Clock reads the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock delegates to time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Fixed is a Clock pinned to a single instant.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time { return f.At }
