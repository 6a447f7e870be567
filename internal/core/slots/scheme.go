package slots

import (
	"fmt"
	"sort"

	perr "meetgrid/internal/platform/errors"
)

// Kind names a discretization scheme on the wire
type Kind string

const (
	// KindStandard is fixed-length slots between two clock times
	KindStandard Kind = "standard"
	// KindPeriod is the fixed morning, afternoon, evening triple
	KindPeriod Kind = "period"
	// KindCustom is an organizer supplied list of intervals
	KindCustom Kind = "custom"
	// KindFullDay is one slot per calendar day
	KindFullDay Kind = "fullDay"
)

// Scheme turns a day into an ordered list of slots
// the set of implementations is closed, see Standard, Period, Custom and FullDay
type Scheme interface {
	Kind() Kind

	// SlotsPerDay is the number of addressable slots in one calendar day
	SlotsPerDay() int

	// Bounds returns the clock interval of slot i in a day, 0 <= i < SlotsPerDay()
	// out of range i is a programming error and panics
	Bounds(i int) Span

	// Window is how many consecutive slots make up a block of at least minDurationMinutes
	Window(minDurationMinutes int) int

	validate() error
}

// Standard splits [DayStart, DayEnd) into SlotMinutes-long slots
// a trailing remainder shorter than one slot is not addressable
type Standard struct {
	DayStart    Clock
	DayEnd      Clock
	SlotMinutes int
}

// Kind implements Scheme
func (Standard) Kind() Kind { return KindStandard }

// SlotsPerDay implements Scheme
func (s Standard) SlotsPerDay() int {
	if s.SlotMinutes <= 0 || s.DayEnd <= s.DayStart {
		return 0
	}
	return int(s.DayEnd-s.DayStart) / s.SlotMinutes
}

// Bounds implements Scheme
func (s Standard) Bounds(i int) Span {
	mustInDay(s, i)
	start := s.DayStart.Add(i * s.SlotMinutes)
	return Span{Start: start, End: start.Add(s.SlotMinutes)}
}

// Window implements Scheme
func (s Standard) Window(minDurationMinutes int) int {
	if s.SlotMinutes <= 0 || minDurationMinutes <= 0 {
		return 1
	}
	n := (minDurationMinutes + s.SlotMinutes - 1) / s.SlotMinutes
	if n < 1 {
		return 1
	}
	return n
}

func (s Standard) validate() error {
	if s.SlotMinutes <= 0 {
		return perr.WithField(perr.New(perr.ErrorCodeValidation, "slot length must be positive"), "slot_minutes")
	}
	if s.DayEnd <= s.DayStart {
		return perr.WithField(perr.New(perr.ErrorCodeValidation, "day start must be before day end"), "day_end")
	}
	if s.SlotsPerDay() == 0 {
		return perr.WithField(
			perr.Newf(perr.ErrorCodeValidation, "%s-%s cannot hold a single %d minute slot", s.DayStart, s.DayEnd, s.SlotMinutes),
			"slot_minutes",
		)
	}
	return nil
}

// PeriodMinutes is the wire sentinel stored as slot length for period events
const PeriodMinutes = 180

var periods = [...]Span{
	{Start: At(9, 0), End: At(12, 0), Label: "morning"},
	{Start: At(12, 0), End: At(18, 0), Label: "afternoon"},
	{Start: At(18, 0), End: At(22, 0), Label: "evening"},
}

// Period is three fixed slots a day: morning 09-12, afternoon 12-18, evening 18-22
type Period struct{}

// Kind implements Scheme
func (Period) Kind() Kind { return KindPeriod }

// SlotsPerDay implements Scheme
func (Period) SlotsPerDay() int { return len(periods) }

// Bounds implements Scheme
func (p Period) Bounds(i int) Span {
	mustInDay(p, i)
	return periods[i]
}

// Window implements Scheme, periods are never combined
func (Period) Window(int) int { return 1 }

func (Period) validate() error { return nil }

// Custom uses the organizer's intervals in their configured order
// intervals may leave gaps and need not cover the day
type Custom struct {
	Intervals []Span
}

// Kind implements Scheme
func (Custom) Kind() Kind { return KindCustom }

// SlotsPerDay implements Scheme
func (c Custom) SlotsPerDay() int { return len(c.Intervals) }

// Bounds implements Scheme
func (c Custom) Bounds(i int) Span {
	mustInDay(c, i)
	return c.Intervals[i]
}

// Window implements Scheme, custom slots are never combined
func (Custom) Window(int) int { return 1 }

func (c Custom) validate() error {
	if len(c.Intervals) == 0 {
		return perr.WithField(perr.New(perr.ErrorCodeValidation, "at least one custom slot is required"), "custom_slots")
	}
	sorted := make([]Span, len(c.Intervals))
	copy(sorted, c.Intervals)
	for i, iv := range sorted {
		if iv.Start < Midnight || iv.End > EndOfDay || iv.End <= iv.Start {
			return perr.WithField(
				perr.Newf(perr.ErrorCodeValidation, "custom slot %d has an empty or inverted range %s-%s", i, iv.Start, iv.End),
				"custom_slots",
			)
		}
	}
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].Start < sorted[b].Start })
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Overlaps(sorted[i]) {
			return perr.WithField(
				perr.Newf(perr.ErrorCodeValidation, "custom slots %s-%s and %s-%s overlap",
					sorted[i-1].Start, sorted[i-1].End, sorted[i].Start, sorted[i].End),
				"custom_slots",
			)
		}
	}
	return nil
}

// FullDay is a single slot covering the whole day
type FullDay struct{}

// Kind implements Scheme
func (FullDay) Kind() Kind { return KindFullDay }

// SlotsPerDay implements Scheme
func (FullDay) SlotsPerDay() int { return 1 }

// Bounds implements Scheme
func (f FullDay) Bounds(i int) Span {
	mustInDay(f, i)
	return Span{Start: Midnight, End: EndOfDay}
}

// Window implements Scheme
func (FullDay) Window(int) int { return 1 }

func (FullDay) validate() error { return nil }

func mustInDay(s Scheme, i int) {
	if i < 0 || i >= s.SlotsPerDay() {
		panic(fmt.Sprintf("slots: slot %d out of range for %s scheme with %d slots per day", i, s.Kind(), s.SlotsPerDay()))
	}
}
