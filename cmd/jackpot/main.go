// Package main provides the CLI entrypoint for jackpot.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/verte-zerg/jackpot/internal/charts"
	"github.com/verte-zerg/jackpot/internal/config"
	"github.com/verte-zerg/jackpot/internal/fetch"
	"github.com/verte-zerg/jackpot/internal/model"
	"github.com/verte-zerg/jackpot/internal/stats"
	"github.com/verte-zerg/jackpot/internal/statsui"
	"github.com/verte-zerg/jackpot/internal/store"
)

const (
	defaultExportPath = "jackpot.html"
	defaultFormat     = stats.FormatText
)

var (
	fetchEndpoint string
	fetchLimit    int
	fetchTimeout  time.Duration
	verbose       bool

	filterYear  string
	filterMonth string

	reportFormat string
	reportWidth  int

	pickDay string

	exportOut string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "jackpot",
		Short:         "Eurojackpot draw statistics",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runDashboardCmd,
	}

	rootCmd.PersistentFlags().StringVar(&fetchEndpoint, "endpoint", fetch.DefaultEndpoint, "draw results endpoint")
	rootCmd.PersistentFlags().IntVar(&fetchLimit, "limit", fetch.DefaultLimit, "number of draws to request")
	rootCmd.PersistentFlags().DurationVar(&fetchTimeout, "timeout", fetch.DefaultTimeout, "request timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&filterYear, "year", "", "year filter (default: most recent year)")
	rootCmd.PersistentFlags().StringVar(&filterMonth, "month", model.MonthAll, "month filter (01-12 or all)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newPickCmd())
	rootCmd.AddCommand(newExportCmd())

	return rootCmd
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	fetchCfg, err := resolveFetchConfig(cmd, fileCfg)
	if err != nil {
		return err
	}
	filter, err := resolveFilter()
	if err != nil {
		return err
	}

	logger, closeLog, err := newDashboardLogger(fileCfg.Report.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	client := fetch.NewClient(fetchCfg, logger)
	defer client.Close()

	st, err := store.OpenMemory()
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close session store: %v\n", cerr)
		}
	}()

	m := statsui.NewModel(client, st, filter, logger)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the draw list, summaries and frequency charts",
		Args:  cobra.NoArgs,
		RunE:  runReportCmd,
	}
	cmd.Flags().StringVar(&reportFormat, "format", defaultFormat, "output format (text, json, yaml)")
	cmd.Flags().IntVar(&reportWidth, "width", 0, "chart width in cells (default: terminal width)")
	return cmd
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "format", &reportFormat, fileCfg.Report.Format)
	applyIntConfig(cmd, "width", &reportWidth, fileCfg.Report.Width)

	filter, err := resolveFilter()
	if err != nil {
		return err
	}
	cfg := model.ReportConfig{
		Filter: filter,
		Format: strings.ToLower(strings.TrimSpace(reportFormat)),
		Width:  reportWidth,
	}
	if err := validateReportConfig(cfg); err != nil {
		return err
	}
	if cfg.Width == 0 {
		cfg.Width = stats.TerminalWidth()
	}

	report, err := loadReport(cmd, fileCfg, cfg.Filter)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	useColor := cfg.Format == stats.FormatText && stats.ShouldUseColor(out)
	if err := stats.WriteReport(out, report, cfg.Format, cfg.Width, useColor); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func newPickCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Suggest a line from the most drawn numbers",
		Args:  cobra.NoArgs,
		RunE:  runPickCmd,
	}
	cmd.Flags().StringVar(&pickDay, "day", "", "draw day (tuesday or friday)")
	_ = cmd.MarkFlagRequired("day")
	return cmd
}

func runPickCmd(cmd *cobra.Command, _ []string) error {
	day, err := parseDay(pickDay)
	if err != nil {
		return err
	}
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	filter, err := resolveFilter()
	if err != nil {
		return err
	}
	report, err := loadReport(cmd, fileCfg, filter)
	if err != nil {
		return err
	}
	summary := report.Summary(day)
	if len(summary.Draws) == 0 {
		logErrf("no %s draws in %s; the pick falls back to the lowest numbers\n", day.Key(), periodLabel(report.Filter))
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), stats.FormatPick(summary.Pick())); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write frequency charts as an HTML page",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVarP(&exportOut, "out", "o", defaultExportPath, "output HTML file")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	if strings.TrimSpace(exportOut) == "" {
		return fmt.Errorf("--out must not be empty")
	}
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	filter, err := resolveFilter()
	if err != nil {
		return err
	}
	report, err := loadReport(cmd, fileCfg, filter)
	if err != nil {
		return err
	}
	if err := charts.WriteFrequencyPage(exportOut, report, charts.DefaultChartConfig()); err != nil {
		return err
	}
	logErrf("Wrote %s\n", exportOut)
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeDefaultConfig(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeDefaultConfig creates the config file from the template unless it exists.
func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func loadFileConfig() (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return fileCfg, nil
}

func resolveFetchConfig(cmd *cobra.Command, fileCfg config.FileConfig) (model.FetchConfig, error) {
	applyStringConfig(cmd, "endpoint", &fetchEndpoint, fileCfg.Fetch.Endpoint)
	applyIntConfig(cmd, "limit", &fetchLimit, fileCfg.Fetch.Limit)
	if err := applyDurationConfig(cmd, "timeout", &fetchTimeout, fileCfg.Fetch.Timeout); err != nil {
		return model.FetchConfig{}, err
	}
	cfg := model.FetchConfig{
		Endpoint: strings.TrimSpace(fetchEndpoint),
		Limit:    fetchLimit,
		Timeout:  fetchTimeout,
	}
	if err := validateFetchConfig(cfg); err != nil {
		return model.FetchConfig{}, err
	}
	return cfg, nil
}

func resolveFilter() (model.Filter, error) {
	filter := model.Filter{
		Year:  strings.TrimSpace(filterYear),
		Month: strings.ToLower(strings.TrimSpace(filterMonth)),
	}
	if filter.Month == "" {
		filter.Month = model.MonthAll
	}
	if len(filter.Month) == 1 {
		filter.Month = "0" + filter.Month
	}
	if filter.Year == "" {
		return filter, nil
	}
	if err := stats.ValidateFilter(filter); err != nil {
		return model.Filter{}, err
	}
	return filter, nil
}

// loadReport fetches the draws into a session store and builds the report.
func loadReport(cmd *cobra.Command, fileCfg config.FileConfig, filter model.Filter) (stats.Report, error) {
	fetchCfg, err := resolveFetchConfig(cmd, fileCfg)
	if err != nil {
		return stats.Report{}, err
	}
	logger, err := newLogger(verbose)
	if err != nil {
		return stats.Report{}, err
	}
	defer func() {
		// Best-effort flush of buffered log entries.
		_ = logger.Sync()
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client := fetch.NewClient(fetchCfg, logger)
	defer client.Close()
	draws, err := client.FetchDraws(ctx)
	if err != nil {
		return stats.Report{}, err
	}

	st, err := store.OpenMemory()
	if err != nil {
		return stats.Report{}, fmt.Errorf("failed to open session store: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close session store: %v\n", cerr)
		}
	}()
	if err := st.ReplaceDraws(ctx, draws); err != nil {
		return stats.Report{}, fmt.Errorf("failed to load draws: %w", err)
	}

	report, err := stats.BuildReport(ctx, st, filter)
	if err != nil {
		if errors.Is(err, stats.ErrNoDraws) {
			return stats.Report{}, fmt.Errorf("no draws returned by %s", fetchCfg.Endpoint)
		}
		return stats.Report{}, fmt.Errorf("failed to build report: %w", err)
	}
	for _, d := range report.Draws {
		if !stats.IsScheduledDrawDay(d.Date) {
			logger.Warn("draw outside the Tuesday/Friday schedule is reported as Fredag", zap.String("date", d.Date))
		}
	}
	logger.Debug("report built",
		zap.String("year", report.Filter.Year),
		zap.String("month", report.Filter.Month),
		zap.Int("draws", len(report.Draws)),
	)
	return report, nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// newDashboardLogger keeps logs off the terminal while the dashboard owns it.
// A configured log file wins; --verbose without one logs to the state directory.
func newDashboardLogger(logFile *string) (*zap.Logger, func(), error) {
	path := ""
	if logFile != nil {
		path = strings.TrimSpace(*logFile)
	} else if verbose {
		path = config.DefaultLogPath()
	}
	if path == "" {
		return zap.NewNop(), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, func() {
		// Best-effort flush of buffered log entries.
		_ = logger.Sync()
	}, nil
}

func parseDay(value string) (model.DayClass, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "tuesday", "tirsdag", "tue":
		return model.DayTuesday, nil
	case "friday", "fredag", "fri":
		return model.DayFriday, nil
	default:
		return model.DayFriday, fmt.Errorf("--day must be tuesday or friday")
	}
}

func periodLabel(filter model.Filter) string {
	if filter.AllMonths() {
		return filter.Year
	}
	return filter.Year + "-" + filter.Month
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *string) error {
	if value == nil {
		return nil
	}
	if cmd.Flags().Changed(name) {
		return nil
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(*value))
	if err != nil {
		return fmt.Errorf("invalid %s in config: %w", name, err)
	}
	*target = parsed
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# jackpot configuration
# Uncomment a value to enable it. CLI flags override config values.

[fetch]
# endpoint = %q   # Draw results endpoint
# limit = %d                 # Number of draws to request
# timeout = %q              # Request timeout

[report]
# format = %q             # Report format: text, json or yaml
# width = 80                 # Chart width in cells (default: terminal width)
# log-file = %q   # Dashboard log file
`,
		fetch.DefaultEndpoint,
		fetch.DefaultLimit,
		fetch.DefaultTimeout.String(),
		defaultFormat,
		config.DefaultLogPath(),
	)
}

func validateFetchConfig(cfg model.FetchConfig) error {
	if cfg.Endpoint == "" {
		return fmt.Errorf("--endpoint must not be empty")
	}
	if !strings.HasPrefix(cfg.Endpoint, "http://") && !strings.HasPrefix(cfg.Endpoint, "https://") {
		return fmt.Errorf("--endpoint must be an http(s) URL")
	}
	if cfg.Limit <= 0 {
		return fmt.Errorf("--limit must be > 0")
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("--timeout must be > 0")
	}
	return nil
}

func validateReportConfig(cfg model.ReportConfig) error {
	switch cfg.Format {
	case stats.FormatText, stats.FormatJSON, stats.FormatYAML:
	default:
		return fmt.Errorf("--format must be text, json or yaml")
	}
	if cfg.Width < 0 {
		return fmt.Errorf("--width must be >= 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
