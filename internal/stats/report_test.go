package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/jackpot/internal/model"
	"github.com/verte-zerg/jackpot/internal/store"
)

func openStore(t *testing.T, draws []model.Draw) *store.Store {
	t.Helper()
	st, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	if err := st.ReplaceDraws(context.Background(), draws); err != nil {
		t.Fatalf("replace draws: %v", err)
	}
	return st
}

func TestBuildReport(t *testing.T) {
	draws := append(sampleDraws(), model.Draw{Date: "2023-12-29", Main: []int{45, 46, 47, 48, 49}, Stars: []int{11, 12}})
	st := openStore(t, draws)

	report, err := BuildReport(context.Background(), st, model.Filter{Year: "2024", Month: model.MonthAll})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if diff := cmp.Diff([]string{"2024", "2023"}, report.Years); diff != "" {
		t.Fatalf("unexpected years (-want +got):\n%s", diff)
	}
	if len(report.Draws) != 3 {
		t.Fatalf("expected 3 draws, got %d", len(report.Draws))
	}
	if len(report.Tuesday.Draws) != 2 || len(report.Friday.Draws) != 1 {
		t.Fatalf("expected 2 tuesday and 1 friday draws, got %d and %d", len(report.Tuesday.Draws), len(report.Friday.Draws))
	}
	if report.All.Main.Count(1) != 2 {
		t.Fatalf("expected number 1 twice, got %d", report.All.Main.Count(1))
	}
	if report.All.Main.Count(45) != 0 {
		t.Fatalf("draws of other years must be excluded")
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5}, report.Tuesday.TopMain); diff != "" {
		t.Fatalf("unexpected tuesday top main (-want +got):\n%s", diff)
	}
	if len(report.Tuesday.TopStars) != SummaryTop {
		t.Fatalf("expected %d top stars, got %v", SummaryTop, report.Tuesday.TopStars)
	}
	pick := report.Summary(model.DayFriday).Pick()
	if diff := cmp.Diff([]int{1, 2, 3, 4, 6}, pick.Main); diff != "" {
		t.Fatalf("unexpected friday pick (-want +got):\n%s", diff)
	}
}

func TestBuildReportDefaultsToLatestYear(t *testing.T) {
	draws := append(sampleDraws(), model.Draw{Date: "2023-12-29", Main: []int{45, 46, 47, 48, 49}, Stars: []int{11, 12}})
	st := openStore(t, draws)

	report, err := BuildReport(context.Background(), st, model.Filter{})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if report.Filter.Year != "2024" || report.Filter.Month != model.MonthAll {
		t.Fatalf("unexpected default filter: %+v", report.Filter)
	}
}

func TestBuildReportMonth(t *testing.T) {
	draws := append(sampleDraws(), model.Draw{Date: "2024-02-02", Main: []int{45, 46, 47, 48, 49}, Stars: []int{11, 12}})
	st := openStore(t, draws)

	report, err := BuildReport(context.Background(), st, model.Filter{Year: "2024", Month: "02"})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if len(report.Draws) != 1 || report.Draws[0].Date != "2024-02-02" {
		t.Fatalf("unexpected february draws: %+v", report.Draws)
	}
}

func TestBuildReportErrors(t *testing.T) {
	empty := openStore(t, nil)
	if _, err := BuildReport(context.Background(), empty, model.Filter{}); !errors.Is(err, ErrNoDraws) {
		t.Fatalf("expected ErrNoDraws, got %v", err)
	}
	st := openStore(t, sampleDraws())
	if _, err := BuildReport(context.Background(), st, model.Filter{Year: "2024", Month: "13"}); err == nil {
		t.Fatalf("expected invalid month error")
	}
}

func TestRenderReport(t *testing.T) {
	st := openStore(t, sampleDraws())
	report, err := BuildReport(context.Background(), st, model.Filter{Year: "2024"})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	var buf bytes.Buffer
	if err := RenderReport(&buf, report, 0, false); err != nil {
		t.Fatalf("render report: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Eurojackpot 2024 (all months): 3 draws",
		"Tirsdag 2024-01-02: 1, 2, 3, 4, 5 ★ 1, 2",
		"Fredag 2024-01-05: 1, 2, 3, 4, 6 ★ 1, 3",
		"Remis tirsdagsforslag:",
		"Mest trukket hovedtall (fredag):",
		"Frekvens (alle)",
		"01: ██ (2)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderDaySummary(t *testing.T) {
	var buf bytes.Buffer
	s := DaySummary{Day: model.DayTuesday, TopMain: []int{1, 2}, TopStars: []int{3}}
	if err := RenderDaySummary(&buf, s); err != nil {
		t.Fatalf("render summary: %v", err)
	}
	want := "Mest trukket hovedtall (tirsdag): 1, 2\nMest trukket stjernetall (tirsdag): 3\n"
	if buf.String() != want {
		t.Fatalf("unexpected summary %q", buf.String())
	}
}

func TestWriteReportFormats(t *testing.T) {
	st := openStore(t, sampleDraws())
	report, err := BuildReport(context.Background(), st, model.Filter{Year: "2024"})
	if err != nil {
		t.Fatalf("build report: %v", err)
	}

	var jsonBuf bytes.Buffer
	if err := WriteReport(&jsonBuf, report, FormatJSON, 0, false); err != nil {
		t.Fatalf("write json: %v", err)
	}
	var decoded ExportedReport
	if err := json.Unmarshal(jsonBuf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if decoded.Main[1] != 2 || decoded.Tuesday.Draws != 2 {
		t.Fatalf("unexpected json report: %+v", decoded)
	}

	var yamlBuf bytes.Buffer
	if err := WriteReport(&yamlBuf, report, FormatYAML, 0, false); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	var fromYAML ExportedReport
	if err := yaml.Unmarshal(yamlBuf.Bytes(), &fromYAML); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if fromYAML.Friday.Suggestion != FormatPick(report.Friday.Pick()) {
		t.Fatalf("unexpected yaml suggestion: %q", fromYAML.Friday.Suggestion)
	}

	if err := WriteReport(&bytes.Buffer{}, report, "xml", 0, false); err == nil {
		t.Fatalf("expected unknown format error")
	}
}
