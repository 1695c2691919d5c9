package stats

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/verte-zerg/jackpot/internal/model"
)

// SummaryTop is the number of entries in the "most drawn" summaries.
const SummaryTop = 5

// ErrNoDraws is returned when there are no draws to report on.
var ErrNoDraws = errors.New("no draws available")

// DrawSource provides the session's draws.
type DrawSource interface {
	ListYears(ctx context.Context) ([]string, error)
	ListDraws(ctx context.Context, filter model.Filter) ([]model.Draw, error)
}

// DaySummary holds the derived values for one day class.
type DaySummary struct {
	Day      model.DayClass
	Draws    []model.Draw
	Freq     Frequencies
	TopMain  []int
	TopStars []int
}

// Pick returns the suggested pick for the class.
func (s DaySummary) Pick() model.Pick {
	return GeneratePick(s.Day, s.Freq)
}

// Report contains precomputed data for one year/month selection.
type Report struct {
	Filter  model.Filter
	Years   []string
	Draws   []model.Draw
	All     Frequencies
	Tuesday DaySummary
	Friday  DaySummary
}

// Summary returns the summary of the given class.
func (r Report) Summary(day model.DayClass) DaySummary {
	if day == model.DayTuesday {
		return r.Tuesday
	}
	return r.Friday
}

// BuildReport loads the selected draws and derives every statistic shown.
// An empty year selects the most recent year; an empty month selects all months.
func BuildReport(ctx context.Context, src DrawSource, filter model.Filter) (Report, error) {
	years, err := src.ListYears(ctx)
	if err != nil {
		return Report{}, err
	}
	if len(years) == 0 {
		return Report{}, ErrNoDraws
	}
	if filter.Year == "" {
		filter.Year = years[0]
	}
	if filter.Month == "" {
		filter.Month = model.MonthAll
	}
	if err := ValidateFilter(filter); err != nil {
		return Report{}, err
	}

	draws, err := src.ListDraws(ctx, filter)
	if err != nil {
		return Report{}, err
	}
	return buildFromDraws(filter, years, draws)
}

func buildFromDraws(filter model.Filter, years []string, draws []model.Draw) (Report, error) {
	tuesdayDraws, fridayDraws, err := SplitByDay(draws)
	if err != nil {
		return Report{}, err
	}
	all, err := Aggregate(draws)
	if err != nil {
		return Report{}, err
	}
	tuesday, err := summarize(model.DayTuesday, tuesdayDraws)
	if err != nil {
		return Report{}, err
	}
	friday, err := summarize(model.DayFriday, fridayDraws)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Filter:  filter,
		Years:   years,
		Draws:   draws,
		All:     all,
		Tuesday: tuesday,
		Friday:  friday,
	}, nil
}

func summarize(day model.DayClass, draws []model.Draw) (DaySummary, error) {
	freq, err := Aggregate(draws)
	if err != nil {
		return DaySummary{}, err
	}
	return DaySummary{
		Day:      day,
		Draws:    draws,
		Freq:     freq,
		TopMain:  TopK(freq.Main, SummaryTop),
		TopStars: TopK(freq.Stars, SummaryTop),
	}, nil
}

// ValidateFilter checks the year and month format.
func ValidateFilter(filter model.Filter) error {
	if len(filter.Year) != 4 {
		return fmt.Errorf("invalid year %q (expected YYYY)", filter.Year)
	}
	if _, err := strconv.Atoi(filter.Year); err != nil {
		return fmt.Errorf("invalid year %q (expected YYYY)", filter.Year)
	}
	if filter.AllMonths() {
		return nil
	}
	month, err := strconv.Atoi(filter.Month)
	if err != nil || len(filter.Month) != 2 || month < 1 || month > 12 {
		return fmt.Errorf("invalid month %q (expected 01-12 or all)", filter.Month)
	}
	return nil
}

// DrawLine formats a draw as "<day> <date>: <main> ★ <stars>".
func DrawLine(d model.Draw) (string, error) {
	day, err := ClassifyDay(d.Date)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s: %s ★ %s", day.Label(), d.Date, joinNumbers(d.Main), joinNumbers(d.Stars)), nil
}

// RenderDrawList prints one line per draw.
func RenderDrawList(w io.Writer, draws []model.Draw) error {
	if len(draws) == 0 {
		_, err := fmt.Fprintln(w, "No draws found.")
		return err
	}
	for _, d := range draws {
		line, err := DrawLine(d)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderDaySummary prints the most drawn main numbers and stars of a class.
func RenderDaySummary(w io.Writer, s DaySummary) error {
	name := "fredag"
	if s.Day == model.DayTuesday {
		name = "tirsdag"
	}
	if _, err := fmt.Fprintf(w, "Mest trukket hovedtall (%s): %s\n", name, joinNumbers(s.TopMain)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Mest trukket stjernetall (%s): %s\n", name, joinNumbers(s.TopStars)); err != nil {
		return err
	}
	return nil
}

// RenderReport prints the full text report.
func RenderReport(w io.Writer, r Report, width int, useColor bool) error {
	month := r.Filter.Month
	if r.Filter.AllMonths() {
		month = "all months"
	}
	if _, err := fmt.Fprintf(w, "Eurojackpot %s (%s): %d draws\n\n", r.Filter.Year, month, len(r.Draws)); err != nil {
		return err
	}
	if err := RenderDrawList(w, r.Draws); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	headers := []string{"Day", "Draws", "Most drawn main", "Most drawn stars", "Pick"}
	rows := make([][]string, 0, 2)
	for _, s := range []DaySummary{r.Tuesday, r.Friday} {
		rows = append(rows, []string{
			s.Day.Label(),
			strconv.Itoa(s.Freq.Draws),
			joinNumbers(s.TopMain),
			joinNumbers(s.TopStars),
			FormatPick(s.Pick()),
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	for _, s := range []DaySummary{r.Tuesday, r.Friday} {
		if err := RenderDaySummary(w, s); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}

	charts := []struct {
		title string
		table *Table
	}{
		{"Frekvens (alle)", r.All.Main},
		{"Frekvens (tirsdag)", r.Tuesday.Freq.Main},
		{"Frekvens (fredag)", r.Friday.Freq.Main},
	}
	for _, c := range charts {
		if _, err := fmt.Fprintln(w, c.title); err != nil {
			return err
		}
		if err := RenderChart(w, c.table, width, useColor); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, ""); err != nil {
			return err
		}
	}
	return nil
}
