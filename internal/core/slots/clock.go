package slots

import (
	"fmt"

	perr "meetgrid/internal/platform/errors"
)

// Clock is a wall clock time of day in whole minutes after midnight
// 24:00 (EndOfDay) is valid and closes the last interval of a day
type Clock int

const (
	// Midnight is 00:00
	Midnight Clock = 0
	// EndOfDay is 24:00
	EndOfDay Clock = 24 * 60
)

// At builds a Clock from hours and minutes
func At(h, m int) Clock { return Clock(h*60 + m) }

// ParseClock reads HH:mm in the range 00:00 to 24:00
func ParseClock(s string) (Clock, error) {
	if len(s) != 5 || s[2] != ':' || !digits(s[:2]) || !digits(s[3:]) {
		return 0, perr.Newf(perr.ErrorCodeValidation, "invalid time %q, expected HH:mm", s)
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	c := At(h, m)
	if m > 59 || c > EndOfDay {
		return 0, perr.Newf(perr.ErrorCodeValidation, "time %q out of range", s)
	}
	return c, nil
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Hour returns the hour component
func (c Clock) Hour() int { return int(c) / 60 }

// Minute returns the minute component
func (c Clock) Minute() int { return int(c) % 60 }

// Add returns c shifted by n minutes
func (c Clock) Add(minutes int) Clock { return c + Clock(minutes) }

// String renders HH:mm
func (c Clock) String() string { return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute()) }

// MarshalText implements encoding.TextMarshaler
func (c Clock) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler
func (c *Clock) UnmarshalText(b []byte) error {
	v, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Span is a half-open clock interval [Start, End) with an optional label
type Span struct {
	Start Clock  `json:"start"`
	End   Clock  `json:"end"`
	Label string `json:"label,omitempty"`
}

// Minutes returns the span length
func (s Span) Minutes() int { return int(s.End - s.Start) }

// Overlaps reports whether two spans share any minute
func (s Span) Overlaps(o Span) bool { return s.Start < o.End && o.Start < s.End }
