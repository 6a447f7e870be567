package tally

import "sort"

// Window is a run of Size consecutive slots starting at Start
// windows may cross day boundaries and may overlap each other
type Window struct {
	Start    int     `json:"start"`
	Size     int     `json:"size"`
	MinCount int     `json:"min_count"`
	Sum      int     `json:"sum"`
	AvgCount float64 `json:"avg_count"`
}

// End is the exclusive index after the window
func (w Window) End() int { return w.Start + w.Size }

// Slots lists the indices covered by the window
func (w Window) Slots() []int {
	out := make([]int, w.Size)
	for i := range out {
		out[i] = w.Start + i
	}
	return out
}

// WindowSize is the number of slotMinutes-long slots needed to cover minDurationMinutes
func WindowSize(slotMinutes, minDurationMinutes int) int {
	if slotMinutes <= 0 || minDurationMinutes <= 0 {
		return 1
	}
	n := (minDurationMinutes + slotMinutes - 1) / slotMinutes
	if n < 1 {
		return 1
	}
	return n
}

// Recommend ranks every contiguous block long enough for minDurationMinutes
// topN <= 0 means DefaultTopN
func Recommend(counts []int, slotMinutes, minDurationMinutes, topN int) []Window {
	return RecommendWindows(counts, WindowSize(slotMinutes, minDurationMinutes), topN)
}

// RecommendWindows slides a size-wide window over counts with step 1 and keeps the best topN
// ranking is by worst-case attendance then by average attendance, earlier windows first on ties
// windows containing a slot nobody can attend are dropped
func RecommendWindows(counts []int, size, topN int) []Window {
	if size < 1 {
		size = 1
	}
	if topN <= 0 {
		topN = DefaultTopN
	}
	out := []Window{}
	if len(counts) < size {
		return out
	}

	// deque holds indices with strictly increasing counts, front is the window minimum
	deque := make([]int, 0, size)
	sum := 0
	for i, c := range counts {
		sum += c
		for len(deque) > 0 && counts[deque[len(deque)-1]] >= c {
			deque = deque[:len(deque)-1]
		}
		deque = append(deque, i)

		start := i - size + 1
		if start < 0 {
			continue
		}
		if deque[0] < start {
			deque = deque[1:]
		}
		if minCount := counts[deque[0]]; minCount > 0 {
			out = append(out, Window{
				Start:    start,
				Size:     size,
				MinCount: minCount,
				Sum:      sum,
				AvgCount: float64(sum) / float64(size),
			})
		}
		sum -= counts[start]
	}

	// equal sizes make sum order identical to average order
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].MinCount != out[b].MinCount {
			return out[a].MinCount > out[b].MinCount
		}
		return out[a].Sum > out[b].Sum
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}
