// Package domain contains the punch-clock data model and the pure rules
// applied to it: period state transitions and duration math.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Entry is the per-employee, per-calendar-day record aggregating up to
// four punches. Date is the canonical YYYY-MM-DD key.
type Entry struct {
	ID       snowflake.ID `gorm:"primaryKey" json:"id"`
	Employee string       `gorm:"type:text;not null;uniqueIndex:idx_entries_employee_date" json:"employee"`
	Date     string       `gorm:"type:text;not null;uniqueIndex:idx_entries_employee_date" json:"date"`

	// Submitted times, as picked by the employee.
	MorningIn    *time.Time `gorm:"" json:"morning_clock_in"`
	MorningOut   *time.Time `gorm:"" json:"morning_clock_out"`
	AfternoonIn  *time.Time `gorm:"" json:"afternoon_clock_in"`
	AfternoonOut *time.Time `gorm:"" json:"afternoon_clock_out"`

	// Real times, captured by the server when the punch was processed.
	MorningInReal    *time.Time `gorm:"" json:"real_morning_clock_in"`
	MorningOutReal   *time.Time `gorm:"" json:"real_morning_clock_out"`
	AfternoonInReal  *time.Time `gorm:"" json:"real_afternoon_clock_in"`
	AfternoonOutReal *time.Time `gorm:"" json:"real_afternoon_clock_out"`

	MorningInLocationID    *snowflake.ID `gorm:"" json:"-"`
	MorningOutLocationID   *snowflake.ID `gorm:"" json:"-"`
	AfternoonInLocationID  *snowflake.ID `gorm:"" json:"-"`
	AfternoonOutLocationID *snowflake.ID `gorm:"" json:"-"`

	MorningInLocation    *GeoSnapshot `gorm:"foreignKey:MorningInLocationID" json:"morning_in_location,omitempty"`
	MorningOutLocation   *GeoSnapshot `gorm:"foreignKey:MorningOutLocationID" json:"morning_out_location,omitempty"`
	AfternoonInLocation  *GeoSnapshot `gorm:"foreignKey:AfternoonInLocationID" json:"afternoon_in_location,omitempty"`
	AfternoonOutLocation *GeoSnapshot `gorm:"foreignKey:AfternoonOutLocationID" json:"afternoon_out_location,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (Entry) TableName() string { return "time_entries" }

// GeoSnapshot is the immutable IP-derived location captured at the
// moment of a punch. Owned by the entry that references it; never
// mutated after insert.
type GeoSnapshot struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	IP          string            `gorm:"type:text" json:"ip"`
	City        string            `gorm:"type:text" json:"city"`
	Region      string            `gorm:"type:text" json:"region"`
	RegionCode  string            `gorm:"type:text" json:"region_code"`
	Country     string            `gorm:"type:text" json:"country"`
	CountryCode string            `gorm:"type:text" json:"country_code"`
	Postal      string            `gorm:"type:text" json:"postal"`
	Latitude    float64           `gorm:"" json:"latitude"`
	Longitude   float64           `gorm:"" json:"longitude"`
	Timezone    string            `gorm:"type:text" json:"timezone"`
	ISP         string            `gorm:"type:text" json:"isp"`
	Org         string            `gorm:"type:text" json:"org"`
	Raw         datatypes.JSONMap `gorm:"type:jsonb" json:"-"`
	CapturedAt  time.Time         `gorm:"not null" json:"captured_at"`
}

// TableName sets the database table name.
func (GeoSnapshot) TableName() string { return "geo_snapshots" }

// SubmittedIn returns the submitted clock-in of a period.
func (e Entry) SubmittedIn(p Period) *time.Time {
	if p == PeriodMorning {
		return e.MorningIn
	}
	return e.AfternoonIn
}

// SubmittedOut returns the submitted clock-out of a period.
func (e Entry) SubmittedOut(p Period) *time.Time {
	if p == PeriodMorning {
		return e.MorningOut
	}
	return e.AfternoonOut
}

// Open reports whether the period has a clock-in without a clock-out.
func (e Entry) Open(p Period) bool {
	return e.SubmittedIn(p) != nil && e.SubmittedOut(p) == nil
}

// Complete reports whether both punches of the period are set. A
// complete period is immutable for the rest of the day.
func (e Entry) Complete(p Period) bool {
	return e.SubmittedIn(p) != nil && e.SubmittedOut(p) != nil
}

// HasAnyClockIn reports whether either period was clocked in.
func (e Entry) HasAnyClockIn() bool {
	return e.MorningIn != nil || e.AfternoonIn != nil
}

// HasAnyClockOut reports whether either period was clocked out.
func (e Entry) HasAnyClockOut() bool {
	return e.MorningOut != nil || e.AfternoonOut != nil
}

// FirstClockIn is the opening bound of the work day: morning-in when
// present, otherwise afternoon-in.
func (e Entry) FirstClockIn() *time.Time {
	if e.MorningIn != nil {
		return e.MorningIn
	}
	return e.AfternoonIn
}

// LastClockOut is the closing bound of the work day: afternoon-out when
// present, otherwise morning-out.
func (e Entry) LastClockOut() *time.Time {
	if e.AfternoonOut != nil {
		return e.AfternoonOut
	}
	return e.MorningOut
}

// Snapshots lists the non-nil location snapshots attached to the entry.
func (e Entry) Snapshots() []*GeoSnapshot {
	var out []*GeoSnapshot
	for _, snap := range []*GeoSnapshot{
		e.MorningInLocation,
		e.MorningOutLocation,
		e.AfternoonInLocation,
		e.AfternoonOutLocation,
	} {
		if snap != nil {
			out = append(out, snap)
		}
	}
	return out
}
