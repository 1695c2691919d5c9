package stats

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/jackpot/internal/model"
)

// Export formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ExportedReport is the machine-readable form of a Report.
type ExportedReport struct {
	Year    string             `json:"year" yaml:"year"`
	Month   string             `json:"month" yaml:"month"`
	Draws   []model.Draw       `json:"draws" yaml:"draws"`
	Main    map[int]int        `json:"main_frequencies" yaml:"main_frequencies"`
	Stars   map[int]int        `json:"star_frequencies" yaml:"star_frequencies"`
	Tuesday ExportedDaySummary `json:"tuesday" yaml:"tuesday"`
	Friday  ExportedDaySummary `json:"friday" yaml:"friday"`
}

// ExportedDaySummary is the machine-readable form of a DaySummary.
type ExportedDaySummary struct {
	Draws      int         `json:"draws" yaml:"draws"`
	TopMain    []int       `json:"top_main" yaml:"top_main"`
	TopStars   []int       `json:"top_stars" yaml:"top_stars"`
	Pick       model.Pick  `json:"pick" yaml:"pick"`
	Suggestion string      `json:"suggestion" yaml:"suggestion"`
	Main       map[int]int `json:"main_frequencies" yaml:"main_frequencies"`
	Stars      map[int]int `json:"star_frequencies" yaml:"star_frequencies"`
}

// Export converts a report for JSON/YAML output.
func Export(r Report) ExportedReport {
	return ExportedReport{
		Year:    r.Filter.Year,
		Month:   r.Filter.Month,
		Draws:   r.Draws,
		Main:    nonZeroCounts(r.All.Main),
		Stars:   nonZeroCounts(r.All.Stars),
		Tuesday: exportDay(r.Tuesday),
		Friday:  exportDay(r.Friday),
	}
}

func exportDay(s DaySummary) ExportedDaySummary {
	pick := s.Pick()
	return ExportedDaySummary{
		Draws:      s.Freq.Draws,
		TopMain:    s.TopMain,
		TopStars:   s.TopStars,
		Pick:       pick,
		Suggestion: FormatPick(pick),
		Main:       nonZeroCounts(s.Freq.Main),
		Stars:      nonZeroCounts(s.Freq.Stars),
	}
}

func nonZeroCounts(t *Table) map[int]int {
	out := map[int]int{}
	if t == nil {
		return out
	}
	for _, n := range t.Numbers() {
		if c := t.Count(n); c > 0 {
			out[n] = c
		}
	}
	return out
}

// WriteReport writes the report in the requested format.
func WriteReport(w io.Writer, r Report, format string, width int, useColor bool) error {
	switch format {
	case "", FormatText:
		return RenderReport(w, r, width, useColor)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Export(r))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Export(r)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (use text, json or yaml)", format)
	}
}
