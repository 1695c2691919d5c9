package stats

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/jackpot/internal/model"
)

func sampleDraws() []model.Draw {
	return []model.Draw{
		{Date: "2024-01-02", Main: []int{1, 2, 3, 4, 5}, Stars: []int{1, 2}},
		{Date: "2024-01-05", Main: []int{1, 2, 3, 4, 6}, Stars: []int{1, 3}},
		{Date: "2024-01-09", Main: []int{7, 8, 9, 10, 11}, Stars: []int{4, 5}},
	}
}

func TestAggregateTotals(t *testing.T) {
	draws := sampleDraws()
	freq, err := Aggregate(draws)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if freq.Draws != len(draws) {
		t.Fatalf("expected %d draws, got %d", len(draws), freq.Draws)
	}
	if got, want := freq.Main.Total(), len(draws)*model.MainPerDraw; got != want {
		t.Fatalf("expected main total %d, got %d", want, got)
	}
	if got, want := freq.Stars.Total(), len(draws)*model.StarsPerDraw; got != want {
		t.Fatalf("expected star total %d, got %d", want, got)
	}
	if freq.Main.Count(1) != 2 || freq.Main.Count(6) != 1 || freq.Main.Count(50) != 0 {
		t.Fatalf("unexpected main counts: 1=%d 6=%d 50=%d", freq.Main.Count(1), freq.Main.Count(6), freq.Main.Count(50))
	}
	if freq.Stars.Count(1) != 2 {
		t.Fatalf("expected star 1 twice, got %d", freq.Stars.Count(1))
	}
}

func TestAggregateEmpty(t *testing.T) {
	freq, err := Aggregate(nil)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if freq.Main.Total() != 0 || freq.Stars.Total() != 0 || freq.Draws != 0 {
		t.Fatalf("expected empty frequencies, got %+v", freq)
	}
}

func TestAggregateDoesNotMutate(t *testing.T) {
	draws := sampleDraws()
	before := sampleDraws()
	if _, err := Aggregate(draws); err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if diff := cmp.Diff(before, draws); diff != "" {
		t.Fatalf("draws mutated (-want +got):\n%s", diff)
	}
}

func TestAggregateOutOfRange(t *testing.T) {
	cases := []model.Draw{
		{Date: "2024-01-02", Main: []int{0, 2, 3, 4, 5}, Stars: []int{1, 2}},
		{Date: "2024-01-02", Main: []int{1, 2, 3, 4, 51}, Stars: []int{1, 2}},
		{Date: "2024-01-02", Main: []int{1, 2, 3, 4, 5}, Stars: []int{1, 13}},
	}
	for _, d := range cases {
		if _, err := Aggregate([]model.Draw{d}); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("expected ErrOutOfRange for %+v, got %v", d, err)
		}
	}
}

func TestTableAddRejectsWithoutTouchingNeighbours(t *testing.T) {
	table := StarTable()
	if err := table.Add(13); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if table.Total() != 0 {
		t.Fatalf("expected untouched table, total %d", table.Total())
	}
	if table.Count(0) != 0 || table.Count(13) != 0 {
		t.Fatalf("out-of-range counts must read as zero")
	}
}

func TestNewTableRange(t *testing.T) {
	if _, err := NewTable(5, 1); err == nil {
		t.Fatalf("expected error for inverted range")
	}
	table, err := NewTable(1, 3)
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, table.Numbers()); diff != "" {
		t.Fatalf("unexpected numbers (-want +got):\n%s", diff)
	}
}
