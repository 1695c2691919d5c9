package stats

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/verte-zerg/jackpot/internal/model"
)

// GeneratePick suggests the five most frequent main numbers and the two
// most frequent stars, each in ascending order.
func GeneratePick(day model.DayClass, freq Frequencies) model.Pick {
	main := TopK(freq.Main, model.MainPerDraw)
	stars := TopK(freq.Stars, model.StarsPerDraw)
	sort.Ints(main)
	sort.Ints(stars)
	return model.Pick{Day: day, Main: main, Stars: stars}
}

// FormatPick renders a pick as a suggestion line.
func FormatPick(p model.Pick) string {
	prefix := "fredags"
	if p.Day == model.DayTuesday {
		prefix = "tirsdags"
	}
	return fmt.Sprintf("Remis %sforslag: %s ★ %s", prefix, joinNumbers(p.Main), joinNumbers(p.Stars))
}

func joinNumbers(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
