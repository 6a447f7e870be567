// Package tally folds many participants' slot selections into counts, common slots and
// recommended windows. It does no I/O and holds no state between calls
package tally

import (
	"meetgrid/internal/core/slots"
	perr "meetgrid/internal/platform/errors"
)

// DefaultTopN is the number of recommendations returned when the caller does not ask for more
const DefaultTopN = 5

// ErrConfigurationMissing is returned when results are requested without an event geometry
var ErrConfigurationMissing = perr.New(perr.ErrorCodeNotFound, "event configuration missing")

// Aggregate counts, for each slot, how many selections include it
// indices outside [0,totalSlots) are ignored, repeats inside one selection count once
func Aggregate(totalSlots int, selections [][]int) []int {
	if totalSlots < 0 {
		totalSlots = 0
	}
	counts := make([]int, totalSlots)
	seen := make([]int, totalSlots) // last selection (1-based) that touched each slot
	for n, sel := range selections {
		mark := n + 1
		for _, idx := range sel {
			if idx < 0 || idx >= totalSlots || seen[idx] == mark {
				continue
			}
			seen[idx] = mark
			counts[idx]++
		}
	}
	return counts
}

// CommonSlots returns, ascending, the slots every participant selected
// with no participants there is nothing in common
func CommonSlots(counts []int, totalParticipants int) []int {
	out := []int{}
	if totalParticipants <= 0 {
		return out
	}
	for i, c := range counts {
		if c == totalParticipants {
			out = append(out, i)
		}
	}
	return out
}

// Results is the aggregate view of an event's responses
type Results struct {
	TotalSlots        int      `json:"total_slots"`
	TotalParticipants int      `json:"total_participants"`
	Counts            []int    `json:"counts"`
	CommonSlots       []int    `json:"common_slots"`
	Recommended       []Window `json:"recommended"`
}

// Compute runs aggregation, common-slot detection and recommendation in one pass
// the recommendation window comes from the event scheme and its minimum duration
func Compute(ev *slots.Event, selections [][]int, topN int) (Results, error) {
	if ev == nil || ev.Scheme == nil {
		return Results{}, ErrConfigurationMissing
	}
	total := ev.TotalSlots()
	counts := Aggregate(total, selections)
	return Results{
		TotalSlots:        total,
		TotalParticipants: len(selections),
		Counts:            counts,
		CommonSlots:       CommonSlots(counts, len(selections)),
		Recommended:       RecommendWindows(counts, ev.Scheme.Window(ev.MinDurationMinutes), topN),
	}, nil
}
