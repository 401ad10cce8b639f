package domain

import (
	"context"
	"errors"
	"time"
)

// Request validation failures raised before the state machine runs.
var (
	ErrInvalidEmployee  = errors.New("invalid_employee")
	ErrInvalidSubmitted = errors.New("invalid_submitted_time")
)

// ClockRequest is one punch attempt. Period is optional; when nil the
// processor derives it from the current wall-clock hour.
type ClockRequest struct {
	Employee  string
	Submitted time.Time
	Period    *Period
}

// Result reports the outcome of a punch. Rejections carry a
// machine-distinguishable reason code plus a human-readable message;
// they are not errors.
type Result struct {
	Clocked bool   `json:"clocked"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message"`
	Entry   *Entry `json:"entry,omitempty"`
}

// Service is the clock event processor boundary exposed to callers.
type Service interface {
	ClockIn(ctx context.Context, req ClockRequest) (Result, error)
	ClockOut(ctx context.Context, req ClockRequest) (Result, error)
	Today(ctx context.Context, employee string) (*Entry, error)
	List(ctx context.Context, filter ListFilter) ([]Entry, error)
}

// ReasonFor maps a validation rejection to its wire reason code.
func ReasonFor(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyClockedIn):
		return "already_clocked_in"
	case errors.Is(err, ErrPeriodFinished):
		return "period_finished"
	case errors.Is(err, ErrMustClockInFirst):
		return "must_clock_in_first"
	case errors.Is(err, ErrAlreadyClockedOut):
		return "already_clocked_out"
	case errors.Is(err, ErrOutBeforeIn):
		return "out_before_in"
	default:
		return ""
	}
}

// MessageFor maps a validation rejection to the user-facing copy shown
// by the punch form.
func MessageFor(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyClockedIn):
		return "Já registrou entrada neste período."
	case errors.Is(err, ErrPeriodFinished):
		return "Este período já foi encerrado hoje."
	case errors.Is(err, ErrMustClockInFirst):
		return "Precisa registrar entrada primeiro."
	case errors.Is(err, ErrAlreadyClockedOut):
		return "Já registrou saída neste período."
	case errors.Is(err, ErrOutBeforeIn):
		return "A saída deve ser depois da entrada."
	default:
		return ""
	}
}
