// Package statsui provides the Bubble Tea draw statistics dashboard.
package statsui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/jackpot/internal/fetch"
	"github.com/verte-zerg/jackpot/internal/model"
	"github.com/verte-zerg/jackpot/internal/stats"
	"github.com/verte-zerg/jackpot/internal/store"
)

const (
	tabDraws = iota
	tabTuesday
	tabFriday
	tabChart
)

type loadState int

const (
	stateLoading loadState = iota
	stateFailed
	stateReady
)

var months = []string{model.MonthAll, "01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12"}

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pickStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	modalStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// Fetcher retrieves the draws for the session.
type Fetcher interface {
	FetchDraws(ctx context.Context) ([]model.Draw, error)
	Ready() bool
}

type drawsLoadedMsg struct {
	draws []model.Draw
}

type drawsFailedMsg struct {
	err error
}

// Model implements the Bubble Tea dashboard.
type Model struct {
	fetcher Fetcher
	store   *store.Store
	logger  *zap.Logger

	state   loadState
	spinner spinner.Model
	loadErr error

	filter model.Filter
	report stats.Report
	errMsg string
	pick   string

	tabs      []string
	activeTab int
	viewports []viewport.Model
	drawTable table.Model

	width    int
	height   int
	useColor bool
}

// NewModel constructs a dashboard model. The filter may leave the year empty
// to select the most recent year once draws arrive.
func NewModel(fetcher Fetcher, st *store.Store, filter model.Filter, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	if filter.Month == "" {
		filter.Month = model.MonthAll
	}
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	m := &Model{
		fetcher: fetcher,
		store:   st,
		logger:  logger,
		state:   stateLoading,
		spinner: sp,
		filter:  filter,
		tabs:    []string{"Draws", "Tuesday", "Friday", "Chart"},
		// The alt screen is always a terminal; only NO_COLOR opts out.
		useColor: os.Getenv("NO_COLOR") == "",
	}
	m.initViewports()
	m.drawTable = buildDrawTable(nil, 0, 1)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchCmd())
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case drawsLoadedMsg:
		m.handleLoaded(msg.draws)
		return m, nil
	case drawsFailedMsg:
		m.state = stateFailed
		m.loadErr = msg.err
		m.logger.Warn("draw fetch failed", zap.Error(msg.err))
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		switch m.state {
		case stateLoading:
			return m, nil
		case stateFailed:
			return m.updateFailed(msg)
		}
		return m.updateReady(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	switch m.state {
	case stateLoading:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Fetching draws...")
	case stateFailed:
		return fitLines(m.renderFailedModal(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) fetchCmd() tea.Cmd {
	fetcher := m.fetcher
	return func() tea.Msg {
		draws, err := fetcher.FetchDraws(context.Background())
		if err != nil {
			return drawsFailedMsg{err: err}
		}
		return drawsLoadedMsg{draws: draws}
	}
}

func (m *Model) handleLoaded(draws []model.Draw) {
	if err := m.store.ReplaceDraws(context.Background(), draws); err != nil {
		m.state = stateFailed
		m.loadErr = fmt.Errorf("%w: %w", fetch.ErrUnavailable, err)
		return
	}
	m.state = stateReady
	m.loadErr = nil
	m.logger.Debug("draws loaded", zap.Int("count", len(draws)))
	m.refreshReport()
}

func (m *Model) updateFailed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "r" {
		return m, nil
	}
	if !m.fetcher.Ready() {
		m.errMsg = "Retrying too fast; wait a moment."
		return m, nil
	}
	m.errMsg = ""
	m.state = stateLoading
	return m, tea.Batch(m.spinner.Tick, m.fetchCmd())
}

func (m *Model) updateReady(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.moveTab(-1)
		return m, tea.ClearScreen
	case "right", "l":
		m.moveTab(1)
		return m, tea.ClearScreen
	case "[":
		m.shiftYear(1)
		return m, nil
	case "]":
		m.shiftYear(-1)
		return m, nil
	case "m":
		m.shiftMonth(1)
		return m, nil
	case "M":
		m.shiftMonth(-1)
		return m, nil
	case "t":
		m.pick = stats.FormatPick(m.report.Tuesday.Pick())
		m.updateLayout()
		return m, nil
	case "f":
		m.pick = stats.FormatPick(m.report.Friday.Pick())
		m.updateLayout()
		return m, nil
	case "g", "home":
		if m.activeTab == tabDraws {
			m.drawTable.GotoTop()
		} else {
			m.viewports[m.activeTab].GotoTop()
		}
		return m, nil
	case "G", "end":
		if m.activeTab == tabDraws {
			m.drawTable.GotoBottom()
		} else {
			m.viewports[m.activeTab].GotoBottom()
		}
		return m, nil
	default:
		if m.activeTab == tabDraws {
			var cmd tea.Cmd
			m.drawTable, cmd = m.drawTable.Update(msg)
			return m, cmd
		}
		vp := m.viewports[m.activeTab]
		var cmd tea.Cmd
		vp, cmd = vp.Update(msg)
		m.viewports[m.activeTab] = vp
		return m, cmd
	}
}

// shiftYear moves through the descending year list; changing year resets the month.
func (m *Model) shiftYear(delta int) {
	years := m.report.Years
	if len(years) == 0 {
		return
	}
	idx := indexOf(years, m.filter.Year)
	next := idx + delta
	if next < 0 || next >= len(years) {
		return
	}
	m.filter.Year = years[next]
	m.filter.Month = model.MonthAll
	m.refreshReport()
}

func (m *Model) shiftMonth(delta int) {
	idx := indexOf(months, m.filter.Month)
	if idx < 0 {
		idx = 0
	}
	next := (idx + delta + len(months)) % len(months)
	m.filter.Month = months[next]
	m.refreshReport()
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.filter)
	if err != nil {
		m.errMsg = err.Error()
		if errors.Is(err, stats.ErrNoDraws) {
			m.errMsg = "No draws returned by the endpoint."
		}
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to load stats.")
		}
		m.drawTable.SetRows(nil)
		m.updateLayout()
		return
	}
	m.errMsg = ""
	m.pick = ""
	m.report = report
	m.filter = report.Filter
	m.drawTable.SetRows(drawRows(report.Draws))
	m.drawTable.GotoTop()
	m.updateLayout()
	m.renderTabContents()
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if m.pick != "" {
		footerHeight++
	}
	if m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.drawTable.SetWidth(m.width)
	m.drawTable.SetHeight(maxInt(1, bodyHeight-1))
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabDraws {
		m.drawTable.Focus()
	} else {
		m.drawTable.Blur()
	}
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 || m.state != stateReady {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabTuesday].SetContent(renderDayTab(m.report.Tuesday, width, m.useColor))
	m.viewports[tabFriday].SetContent(renderDayTab(m.report.Friday, width, m.useColor))
	m.viewports[tabChart].SetContent(renderChartTab(m.report, width, m.useColor))
}

func renderDayTab(s stats.DaySummary, width int, useColor bool) string {
	if len(s.Draws) == 0 {
		return fmt.Sprintf("No %s draws in this period.", strings.ToLower(s.Day.Label()))
	}
	var buf bytes.Buffer
	if err := stats.RenderDaySummary(&buf, s); err != nil {
		return fmt.Sprintf("Failed to render summary: %v", err)
	}
	buf.WriteString("\n")
	buf.WriteString(headerStyle.Render("Hovedtall") + "\n")
	if err := stats.RenderChart(&buf, s.Freq.Main, width, useColor); err != nil {
		return fmt.Sprintf("Failed to render chart: %v", err)
	}
	buf.WriteString("\n")
	buf.WriteString(headerStyle.Render("Stjernetall") + "\n")
	if err := stats.RenderChart(&buf, s.Freq.Stars, width, useColor); err != nil {
		return fmt.Sprintf("Failed to render chart: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderChartTab(r stats.Report, width int, useColor bool) string {
	if len(r.Draws) == 0 {
		return "No draws in this period."
	}
	var buf bytes.Buffer
	buf.WriteString(headerStyle.Render(fmt.Sprintf("Frekvens (alle, %d draws)", len(r.Draws))) + "\n")
	if err := stats.RenderChart(&buf, r.All.Main, width, useColor); err != nil {
		return fmt.Sprintf("Failed to render chart: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func buildDrawTable(draws []model.Draw, width, height int) table.Model {
	t := table.New(
		table.WithColumns(drawColumns()),
		table.WithRows(drawRows(draws)),
		table.WithHeight(maxInt(1, height-1)),
		table.WithFocused(true),
	)
	t.SetWidth(width)
	t.SetStyles(drawTableStyles())
	return t
}

func drawColumns() []table.Column {
	return []table.Column{
		{Title: "Day", Width: 8},
		{Title: "Date", Width: 10},
		{Title: "Main", Width: 20},
		{Title: "Stars", Width: 8},
	}
}

func drawRows(draws []model.Draw) []table.Row {
	rows := make([]table.Row, 0, len(draws))
	for _, d := range draws {
		day, err := stats.ClassifyDay(d.Date)
		label := day.Label()
		if err != nil {
			label = "?"
		}
		rows = append(rows, table.Row{
			label,
			d.Date,
			joinInts(d.Main),
			joinInts(d.Stars),
		})
	}
	return rows
}

func drawTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	filters := padLines(m.renderFilterSummary(), m.width)
	return tabs + "\n" + filters
}

func (m *Model) renderFilterSummary() string {
	summary := fmt.Sprintf("Year: %s  Month: %s  Draws: %d  (tirsdag %d, fredag %d)",
		m.filter.Year, m.filter.Month, len(m.report.Draws),
		len(m.report.Tuesday.Draws), len(m.report.Friday.Draws))
	summary = truncateLine(summary, m.width)
	return headerStyle.Render(summary)
}

func (m *Model) renderHelp() string {
	return headerStyle.Render("Nav: left/right  Year: [/]  Month: m/M  Pick: t/f  Scroll: up/down  Quit: q")
}

func (m *Model) renderFooter() string {
	lines := []string{}
	if m.pick != "" {
		lines = append(lines, pickStyle.Render(m.pick))
	}
	lines = append(lines, m.renderHelp())
	if m.errMsg != "" {
		lines = append(lines, errorStyle.Render(m.errMsg))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.activeTab == tabDraws {
		if len(m.report.Draws) == 0 {
			return fitLines("No draws found.", m.width, height)
		}
		return fitLines(tableMutedStyle.Render(m.drawTable.View()), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) renderFailedModal() string {
	reason := "unknown error"
	if m.loadErr != nil {
		reason = m.loadErr.Error()
	}
	body := []string{
		errorStyle.Render("Draw data unavailable"),
		truncateLine(reason, modalInnerWidth(m.width)),
		"",
		headerStyle.Render("r: retry  q: quit"),
	}
	if m.errMsg != "" {
		body = append(body, errorStyle.Render(m.errMsg))
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
