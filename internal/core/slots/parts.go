package slots

import (
	perr "meetgrid/internal/platform/errors"
)

// Event modes as stored and sent on the wire
const (
	ModeTimeRange = "timeRange"
	ModeFullDay   = "fullDay"
)

// Interval is the string form of one custom slot
type Interval struct {
	Label string `json:"label,omitempty"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// Parts is the flat, string-typed form a scheme takes in requests and rows
type Parts struct {
	Mode        string
	TimeMode    string
	DayStart    string
	DayEnd      string
	SlotMinutes int
	Custom      []Interval
}

// Scheme parses p into its concrete Scheme
func (p Parts) Scheme() (Scheme, error) {
	switch p.Mode {
	case ModeFullDay:
		return FullDay{}, nil
	case ModeTimeRange:
	default:
		return nil, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "unknown mode %q", p.Mode), "mode")
	}

	switch Kind(p.TimeMode) {
	case KindPeriod:
		return Period{}, nil

	case KindCustom:
		out := Custom{Intervals: make([]Span, 0, len(p.Custom))}
		for _, iv := range p.Custom {
			start, err := ParseClock(iv.Start)
			if err != nil {
				return nil, perr.WithField(err, "custom_slots")
			}
			end, err := ParseClock(iv.End)
			if err != nil {
				return nil, perr.WithField(err, "custom_slots")
			}
			label := iv.Label
			if label == "" {
				label = start.String() + "-" + end.String()
			}
			out.Intervals = append(out.Intervals, Span{Start: start, End: end, Label: label})
		}
		return out, nil

	case KindStandard:
		start, err := ParseClock(p.DayStart)
		if err != nil {
			return nil, perr.WithField(err, "day_start")
		}
		end, err := ParseClock(p.DayEnd)
		if err != nil {
			return nil, perr.WithField(err, "day_end")
		}
		return Standard{DayStart: start, DayEnd: end, SlotMinutes: p.SlotMinutes}, nil
	}
	return nil, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "unknown time mode %q", p.TimeMode), "time_mode")
}

// PartsOf flattens s back into Parts
// period events carry the PeriodMinutes sentinel as their slot length
func PartsOf(s Scheme) Parts {
	switch v := s.(type) {
	case FullDay:
		return Parts{Mode: ModeFullDay}
	case Period:
		return Parts{Mode: ModeTimeRange, TimeMode: string(KindPeriod), SlotMinutes: PeriodMinutes}
	case Custom:
		ivs := make([]Interval, 0, len(v.Intervals))
		for _, sp := range v.Intervals {
			ivs = append(ivs, Interval{Label: sp.Label, Start: sp.Start.String(), End: sp.End.String()})
		}
		return Parts{Mode: ModeTimeRange, TimeMode: string(KindCustom), Custom: ivs}
	case Standard:
		return Parts{
			Mode:        ModeTimeRange,
			TimeMode:    string(KindStandard),
			DayStart:    v.DayStart.String(),
			DayEnd:      v.DayEnd.String(),
			SlotMinutes: v.SlotMinutes,
		}
	}
	return Parts{}
}
