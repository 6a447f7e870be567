// Package slots maps an event's calendar range onto a flat, zero-based slot index space
// Every slot index in the system is produced by Compose and read back by Decompose
package slots

import (
	"time"

	perr "meetgrid/internal/platform/errors"
)

const dateLayout = "2006-01-02"

// Date is a civil calendar date with no time zone semantics
// the zero value is the unset date
type Date struct{ t time.Time }

// NewDate builds a Date from its parts, normalizing overflow like time.Date does
func NewDate(y int, m time.Month, d int) Date {
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// DateOf drops the clock and zone from t and keeps its wall calendar date
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// ParseDate reads a YYYY-MM-DD string
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, perr.Newf(perr.ErrorCodeValidation, "invalid date %q, expected YYYY-MM-DD", s)
	}
	return Date{t: t}, nil
}

// IsZero reports whether d is unset
func (d Date) IsZero() bool { return d.t.IsZero() }

// AddDays returns d shifted by n calendar days
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

const secondsPerDay = 24 * 60 * 60

// DaysSince returns the number of calendar days from o to d (negative when d is earlier)
func (d Date) DaysSince(o Date) int {
	return int((d.t.Unix() - o.t.Unix()) / secondsPerDay)
}

// Before reports whether d is strictly earlier than o
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

// Time returns midnight UTC of d
func (d Date) Time() time.Time { return d.t }

// String renders YYYY-MM-DD, or an empty string for the zero Date
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

// MarshalText implements encoding.TextMarshaler
func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	v, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
