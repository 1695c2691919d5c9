// Package charts renders draw frequencies as an interactive HTML page.
package charts

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/verte-zerg/jackpot/internal/stats"
)

// ChartConfig holds configuration for charts.
type ChartConfig struct {
	Width  string
	Height string
	Theme  string
	Colors []string
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:  "1100px",
		Height: "420px",
		Theme:  "light",
		Colors: []string{"#5470C6", "#91CC75", "#FAC858"},
	}
}

// RenderFrequencyPage writes an HTML page with main-number and star bar charts,
// one series each for all, Tuesday and Friday draws.
func RenderFrequencyPage(w io.Writer, r stats.Report, config ChartConfig) error {
	period := r.Filter.Year
	if !r.Filter.AllMonths() {
		period = fmt.Sprintf("%s-%s", r.Filter.Year, r.Filter.Month)
	}
	mainBar := frequencyBar(
		fmt.Sprintf("Hovedtall %s", period),
		fmt.Sprintf("%d draws", len(r.Draws)),
		config,
		[]*stats.Table{r.All.Main, r.Tuesday.Freq.Main, r.Friday.Freq.Main},
	)
	starBar := frequencyBar(
		fmt.Sprintf("Stjernetall %s", period),
		fmt.Sprintf("%d draws", len(r.Draws)),
		config,
		[]*stats.Table{r.All.Stars, r.Tuesday.Freq.Stars, r.Friday.Freq.Stars},
	)

	page := components.NewPage()
	page.AddCharts(mainBar, starBar)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render chart page: %w", err)
	}
	return nil
}

// WriteFrequencyPage renders the page into outputPath.
func WriteFrequencyPage(outputPath string, r stats.Report, config ChartConfig) (err error) {
	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close chart file: %w", cerr)
		}
	}()
	return RenderFrequencyPage(f, r, config)
}

var seriesNames = []string{"Alle", "Tirsdag", "Fredag"}

func frequencyBar(title, subtitle string, config ChartConfig, tables []*stats.Table) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
		charts.WithColorsOpts(opts.Colors(config.Colors)),
	)

	if len(tables) == 0 || tables[0] == nil {
		return bar
	}
	numbers := tables[0].Numbers()
	xLabels := make([]string, len(numbers))
	for i, n := range numbers {
		xLabels[i] = fmt.Sprintf("%02d", n)
	}
	bar.SetXAxis(xLabels)
	for i, table := range tables {
		if table == nil {
			continue
		}
		data := make([]opts.BarData, len(numbers))
		for j, n := range numbers {
			data[j] = opts.BarData{Value: table.Count(n), Name: strconv.Itoa(n)}
		}
		bar.AddSeries(seriesNames[i%len(seriesNames)], data)
	}
	return bar
}
