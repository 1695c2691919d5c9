package stats

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/verte-zerg/jackpot/internal/model"
)

func TestGeneratePickAscending(t *testing.T) {
	draws := []model.Draw{
		{Date: "2024-01-02", Main: []int{50, 40, 30, 20, 10}, Stars: []int{12, 3}},
		{Date: "2024-01-09", Main: []int{50, 40, 30, 20, 9}, Stars: []int{12, 4}},
		{Date: "2024-01-16", Main: []int{50, 1, 2, 3, 4}, Stars: []int{12, 3}},
	}
	freq, err := Aggregate(draws)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	pick := GeneratePick(model.DayTuesday, freq)
	if diff := cmp.Diff([]int{1, 20, 30, 40, 50}, pick.Main); diff != "" {
		t.Fatalf("unexpected main pick (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{3, 12}, pick.Stars); diff != "" {
		t.Fatalf("unexpected star pick (-want +got):\n%s", diff)
	}
	if !sort.IntsAreSorted(pick.Main) || !sort.IntsAreSorted(pick.Stars) {
		t.Fatalf("pick not ascending: %+v", pick)
	}
}

func TestFormatPick(t *testing.T) {
	pick := model.Pick{Day: model.DayTuesday, Main: []int{1, 2, 3, 4, 5}, Stars: []int{1, 2}}
	if got := FormatPick(pick); got != "Remis tirsdagsforslag: 1, 2, 3, 4, 5 ★ 1, 2" {
		t.Fatalf("unexpected tuesday format: %q", got)
	}
	pick.Day = model.DayFriday
	if got := FormatPick(pick); got != "Remis fredagsforslag: 1, 2, 3, 4, 5 ★ 1, 2" {
		t.Fatalf("unexpected friday format: %q", got)
	}
}
