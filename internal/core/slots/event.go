package slots

import (
	"fmt"

	perr "meetgrid/internal/platform/errors"
)

// Event is the immutable slot geometry of a scheduling event
// Start and End are inclusive calendar dates
type Event struct {
	Start              Date
	End                Date
	Scheme             Scheme
	MinDurationMinutes int
}

// Position locates a slot inside the event grid
type Position struct {
	Day  int `json:"day"`
	Slot int `json:"slot"`
}

// Instant is the calendar reading of a slot index
type Instant struct {
	Index int    `json:"index"`
	Date  Date   `json:"date"`
	Start Clock  `json:"start"`
	End   Clock  `json:"end"`
	Label string `json:"label,omitempty"`
}

// Compose is the single formula turning a (day, slot) pair into a slot index
func Compose(perDay, day, slot int) int { return day*perDay + slot }

// Validate rejects geometries that cannot address any slot
func (e Event) Validate() error {
	if e.Start.IsZero() {
		return perr.WithField(perr.New(perr.ErrorCodeValidation, "start date is required"), "start_date")
	}
	if e.End.IsZero() {
		return perr.WithField(perr.New(perr.ErrorCodeValidation, "end date is required"), "end_date")
	}
	if e.End.Before(e.Start) {
		return perr.WithField(
			perr.Newf(perr.ErrorCodeValidation, "end date %s is before start date %s", e.End, e.Start),
			"end_date",
		)
	}
	if e.Scheme == nil {
		return perr.WithField(perr.New(perr.ErrorCodeValidation, "slot scheme is required"), "mode")
	}
	if err := e.Scheme.validate(); err != nil {
		return err
	}
	if e.Scheme.SlotsPerDay() == 0 {
		return perr.WithField(perr.New(perr.ErrorCodeValidation, "scheme yields no slots per day"), "mode")
	}
	if e.MinDurationMinutes < 0 {
		return perr.WithField(perr.New(perr.ErrorCodeValidation, "minimum duration cannot be negative"), "min_duration_minutes")
	}
	return nil
}

// Days is the inclusive number of calendar days in the range, 0 when End precedes Start
func (e Event) Days() int {
	n := e.End.DaysSince(e.Start) + 1
	if n < 0 {
		return 0
	}
	return n
}

// SlotsPerDay delegates to the scheme, 0 without one
func (e Event) SlotsPerDay() int {
	if e.Scheme == nil {
		return 0
	}
	return e.Scheme.SlotsPerDay()
}

// TotalSlots is Days * SlotsPerDay, the exclusive upper bound of valid indices
func (e Event) TotalSlots() int { return e.Days() * e.SlotsPerDay() }

// Contains reports whether idx addresses a slot of this event
func (e Event) Contains(idx int) bool { return idx >= 0 && idx < e.TotalSlots() }

// Index composes a slot index for this event
func (e Event) Index(day, slot int) int { return Compose(e.SlotsPerDay(), day, slot) }

// Decompose splits idx into its day offset and slot-in-day
func (e Event) Decompose(idx int) Position {
	e.mustContain(idx)
	per := e.SlotsPerDay()
	return Position{Day: idx / per, Slot: idx % per}
}

// Instant maps idx to its calendar date and clock bounds
func (e Event) Instant(idx int) Instant {
	pos := e.Decompose(idx)
	b := e.Scheme.Bounds(pos.Slot)
	return Instant{
		Index: idx,
		Date:  e.Start.AddDays(pos.Day),
		Start: b.Start,
		End:   b.End,
		Label: b.Label,
	}
}

// Catalogue lists every slot of the event in index order
func (e Event) Catalogue() []Instant {
	n := e.TotalSlots()
	out := make([]Instant, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, e.Instant(i))
	}
	return out
}

func (e Event) mustContain(idx int) {
	if !e.Contains(idx) {
		panic(fmt.Sprintf("slots: index %d out of range [0,%d)", idx, e.TotalSlots()))
	}
}
