package tally

import (
	"math/rand"
	"reflect"
	"testing"

	"meetgrid/internal/core/slots"
	perr "meetgrid/internal/platform/errors"
)

func twoDayEvent(t *testing.T) *slots.Event {
	t.Helper()
	start, err := slots.ParseDate("2025-01-01")
	if err != nil {
		t.Fatal(err)
	}
	return &slots.Event{
		Start:              start,
		End:                start.AddDays(1),
		Scheme:             slots.Standard{DayStart: slots.At(9, 0), DayEnd: slots.At(11, 0), SlotMinutes: 60},
		MinDurationMinutes: 60,
	}
}

func TestAggregate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name  string
		total int
		sels  [][]int
		want  []int
	}{
		{"empty", 3, nil, []int{0, 0, 0}},
		{"basic", 4, [][]int{{0, 1}, {1, 2}, {1}}, []int{1, 3, 1, 0}},
		{"out of range ignored", 2, [][]int{{-1, 0, 2, 99}}, []int{1, 0}},
		{"duplicates count once", 2, [][]int{{1, 1, 1}, {1}}, []int{0, 2}},
		{"no slots", 0, [][]int{{0}}, []int{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			got := Aggregate(c.total, c.sels)
			if !reflect.DeepEqual(got, c.want) {
				t.Fatalf("Aggregate = %v want %v", got, c.want)
			}
		})
	}
}

func TestAggregateSumMatchesValidSelections(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(7))
	const total = 40
	sels := make([][]int, 25)
	valid := 0
	for i := range sels {
		set := map[int]bool{}
		picks := rng.Intn(30)
		for j := 0; j < picks; j++ {
			idx := rng.Intn(total+10) - 5
			sels[i] = append(sels[i], idx)
			if idx >= 0 && idx < total {
				set[idx] = true
			}
		}
		valid += len(set)
	}
	sum := 0
	for _, c := range Aggregate(total, sels) {
		sum += c
	}
	if sum != valid {
		t.Fatalf("sum of counts %d != distinct valid picks %d", sum, valid)
	}
}

func TestCommonSlots(t *testing.T) {
	t.Parallel()
	if got := CommonSlots([]int{1, 3, 1, 0}, 3); !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("CommonSlots = %v", got)
	}
	if got := CommonSlots([]int{0, 0}, 0); got == nil || len(got) != 0 {
		t.Fatalf("zero participants should yield empty non nil slice, got %#v", got)
	}
	if got := CommonSlots([]int{2, 2, 1, 2}, 2); !reflect.DeepEqual(got, []int{0, 1, 3}) {
		t.Fatalf("CommonSlots ascending = %v", got)
	}
}

func TestComputeStandardScenario(t *testing.T) {
	t.Parallel()
	ev := twoDayEvent(t)
	res, err := Compute(ev, [][]int{{0, 1}, {1, 2}, {1}}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalSlots != 4 || res.TotalParticipants != 3 {
		t.Fatalf("totals = %d/%d", res.TotalSlots, res.TotalParticipants)
	}
	if !reflect.DeepEqual(res.Counts, []int{1, 3, 1, 0}) {
		t.Fatalf("counts = %v", res.Counts)
	}
	if !reflect.DeepEqual(res.CommonSlots, []int{1}) {
		t.Fatalf("common = %v", res.CommonSlots)
	}
	starts := make([]int, 0, len(res.Recommended))
	for _, w := range res.Recommended {
		starts = append(starts, w.Start)
	}
	if !reflect.DeepEqual(starts, []int{1, 0, 2}) {
		t.Fatalf("recommended order = %v", starts)
	}
}

func TestComputeFullDay(t *testing.T) {
	t.Parallel()
	start, _ := slots.ParseDate("2025-05-01")
	ev := &slots.Event{Start: start, End: start.AddDays(2), Scheme: slots.FullDay{}, MinDurationMinutes: 600}
	res, err := Compute(ev, [][]int{{0, 2}, {2}}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalSlots != 3 || !reflect.DeepEqual(res.Counts, []int{1, 0, 2}) {
		t.Fatalf("full day results = %+v", res)
	}
	if len(res.Recommended) != 2 || res.Recommended[0].Start != 2 || res.Recommended[0].Size != 1 {
		t.Fatalf("full day recommendations = %+v", res.Recommended)
	}
}

func TestComputeMissingConfiguration(t *testing.T) {
	t.Parallel()
	if _, err := Compute(nil, nil, 5); err != ErrConfigurationMissing {
		t.Fatalf("nil event err = %v", err)
	}
	_, err := Compute(&slots.Event{}, nil, 5)
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("missing scheme code = %v", perr.CodeOf(err))
	}
}

func TestComputeNoResponses(t *testing.T) {
	t.Parallel()
	res, err := Compute(twoDayEvent(t), nil, 5)
	if err != nil {
		t.Fatal(err)
	}
	if res.TotalParticipants != 0 || len(res.CommonSlots) != 0 || len(res.Recommended) != 0 {
		t.Fatalf("empty event results = %+v", res)
	}
	if len(res.Counts) != 4 {
		t.Fatalf("counts should still span the grid, got %v", res.Counts)
	}
}
