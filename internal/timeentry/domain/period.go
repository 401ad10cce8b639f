package domain

import "errors"

// Period is the morning or afternoon half of a work day. It is a closed
// set; anything else fails ParsePeriod and never reaches the processor.
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
)

var ErrInvalidPeriod = errors.New("invalid_period")

// ParsePeriod validates a caller-supplied period tag.
func ParsePeriod(value string) (Period, error) {
	switch Period(value) {
	case PeriodMorning:
		return PeriodMorning, nil
	case PeriodAfternoon:
		return PeriodAfternoon, nil
	default:
		return "", ErrInvalidPeriod
	}
}

func (p Period) Valid() bool {
	return p == PeriodMorning || p == PeriodAfternoon
}

// PeriodForHour resolves the acting period from the current wall-clock
// hour. The submitted time never classifies; "now" does.
func PeriodForHour(hour int) Period {
	if hour < 13 {
		return PeriodMorning
	}
	return PeriodAfternoon
}
