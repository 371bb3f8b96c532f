// Package main provides the CLI entrypoint for ttstat.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/amacleod/ttstat/internal/config"
	"github.com/amacleod/ttstat/internal/interval"
	"github.com/amacleod/ttstat/internal/model"
	"github.com/amacleod/ttstat/internal/stats"
	"github.com/amacleod/ttstat/internal/store"
	"github.com/amacleod/ttstat/internal/timelog"
	"github.com/amacleod/ttstat/internal/tui"
)

const (
	defaultOffLabel  = "Off"
	defaultWindow    = 1
	defaultFilterOff = true
	defaultCutoff    = 5.0
)

var (
	logDir    string
	offLabel  string
	filterOff bool

	pickerLongDefs bool

	weeklySummary bool

	trendWindow        int
	trendChartActivity string

	activityChart bool

	exportDBPath string
	exportWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ttstat",
		Short:         "Track and analyze where work time goes",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPickerCmd,
	}

	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", config.DefaultLogDir(), "directory holding the per-day log files")
	rootCmd.PersistentFlags().StringVar(&offLabel, "off-label", defaultOffLabel, "activity label meaning off duty")
	rootCmd.PersistentFlags().BoolVar(&filterOff, "filter-off", defaultFilterOff, "drop off-duty intervals from the analysis")
	rootCmd.Flags().BoolVar(&pickerLongDefs, "long-defs", false, "show category descriptions in the picker")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newWeeklyCmd())
	rootCmd.AddCommand(newTrendCmd())
	rootCmd.AddCommand(newDailyCmd())
	rootCmd.AddCommand(newActivityCmd())
	rootCmd.AddCommand(newExportCmd())

	return rootCmd
}

// resolveSettings merges the config file into flags the user did not set
// and returns the immutable analysis configuration.
func resolveSettings(cmd *cobra.Command) (model.AnalysisConfig, config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.AnalysisConfig{}, config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "log-dir", &logDir, fileCfg.Log.Dir)
	applyStringConfig(cmd, "off-label", &offLabel, fileCfg.Analysis.OffLabel)
	applyBoolConfig(cmd, "filter-off", &filterOff, fileCfg.Analysis.FilterOff)

	cfg := model.AnalysisConfig{
		LogDir:    logDir,
		OffLabel:  offLabel,
		FilterOff: filterOff,
		Window:    defaultWindow,
		Cutoff:    defaultCutoff,
	}
	if fileCfg.Analysis.Window != nil {
		cfg.Window = *fileCfg.Analysis.Window
	}
	if fileCfg.Analysis.Cutoff != nil {
		cfg.Cutoff = *fileCfg.Analysis.Cutoff
	}
	if cfg.Window < 1 {
		return model.AnalysisConfig{}, config.FileConfig{}, fmt.Errorf("window must be >= 1")
	}
	return cfg, fileCfg, nil
}

// loadIntervals reads the full event history and reconstructs intervals.
func loadIntervals(cfg model.AnalysisConfig) ([]model.Interval, error) {
	events, err := timelog.Load(cfg.LogDir)
	if err != nil {
		return nil, err
	}
	return interval.Reconstruct(events, interval.Options{
		FilterOff: cfg.FilterOff,
		OffLabel:  cfg.OffLabel,
	}), nil
}

func runPickerCmd(cmd *cobra.Command, _ []string) error {
	cfg, fileCfg, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	categories := fileCfg.Categories
	if len(categories) == 0 {
		categories = config.DefaultCategories()
	}
	defaultCategory := cfg.OffLabel
	if fileCfg.Log.DefaultCategory != nil {
		defaultCategory = *fileCfg.Log.DefaultCategory
	}
	applyBoolConfig(cmd, "long-defs", &pickerLongDefs, fileCfg.Log.LongDefinitions)

	picker := tui.NewModel(categories, defaultCategory, cfg.LogDir, pickerLongDefs)
	program := tea.NewProgram(picker, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run picker: %w", err)
	}
	return nil
}

func newWeeklyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Show per-week activity counts and times",
		Args:  cobra.NoArgs,
		RunE:  runWeeklyCmd,
	}
	cmd.Flags().BoolVar(&weeklySummary, "summary", false, "one totals line per week")
	return cmd
}

func runWeeklyCmd(cmd *cobra.Command, _ []string) error {
	cfg, _, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	intervals, err := loadIntervals(cfg)
	if err != nil {
		return err
	}
	tally := stats.Weekly(intervals)
	if weeklySummary {
		return stats.RenderWeeklySummary(cmd.OutOrStdout(), tally)
	}
	return stats.RenderWeekly(cmd.OutOrStdout(), tally)
}

func newTrendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Show week-over-week changes against a rolling average",
		Args:  cobra.NoArgs,
		RunE:  runTrendCmd,
	}
	cmd.Flags().IntVar(&trendWindow, "window", defaultWindow, "number of preceding weeks in the rolling average")
	cmd.Flags().StringVar(&trendChartActivity, "chart", "", "plot the trend of one activity instead of the table")
	return cmd
}

func runTrendCmd(cmd *cobra.Command, _ []string) error {
	cfg, fileCfg, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "window", &trendWindow, fileCfg.Analysis.Window)
	if trendWindow < 1 {
		return fmt.Errorf("--window must be >= 1")
	}
	intervals, err := loadIntervals(cfg)
	if err != nil {
		return err
	}
	record := stats.Trend(stats.Weekly(intervals), trendWindow)
	if trendChartActivity != "" {
		return stats.RenderTrendChart(cmd.OutOrStdout(), record, trendChartActivity)
	}
	return stats.RenderTrend(cmd.OutOrStdout(), record)
}

func newDailyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Show per-day-of-week statistics",
		Args:  cobra.NoArgs,
		RunE:  runDailyCmd,
	}
}

func runDailyCmd(cmd *cobra.Command, _ []string) error {
	cfg, _, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	intervals, err := loadIntervals(cfg)
	if err != nil {
		return err
	}
	return stats.RenderDaily(cmd.OutOrStdout(), stats.Daily(intervals))
}

func newActivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show whole-history activity statistics",
		Args:  cobra.NoArgs,
		RunE:  runActivityCmd,
	}
	cmd.Flags().BoolVar(&activityChart, "chart", false, "show share-of-total bars instead of the table")
	return cmd
}

func runActivityCmd(cmd *cobra.Command, _ []string) error {
	cfg, _, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	intervals, err := loadIntervals(cfg)
	if err != nil {
		return err
	}
	report := stats.Overall(intervals)
	if activityChart {
		return stats.RenderShareBars(cmd.OutOrStdout(), report, cfg.Cutoff)
	}
	return stats.RenderActivity(cmd.OutOrStdout(), report)
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all aggregates to a SQLite database",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportDBPath, "db", config.DefaultDBPath(), "SQLite database path")
	cmd.Flags().IntVar(&exportWindow, "window", defaultWindow, "number of preceding weeks in the rolling average")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	cfg, fileCfg, err := resolveSettings(cmd)
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "window", &exportWindow, fileCfg.Analysis.Window)
	if exportWindow < 1 {
		return fmt.Errorf("--window must be >= 1")
	}
	intervals, err := loadIntervals(cfg)
	if err != nil {
		return err
	}
	snapshot := stats.BuildSnapshot(intervals, exportWindow)

	st, err := store.Open(exportDBPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := context.Background()
	if err := st.ExportSnapshot(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to export snapshot: %w", err)
	}
	counts, err := st.Counts(ctx)
	if err != nil {
		return fmt.Errorf("failed to count exported rows: %w", err)
	}
	for _, table := range []string{"weekly_stats", "trend_stats", "daily_stats", "daily_activity_stats", "activity_summary"} {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows\n", table, counts[table]); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
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

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# ttstat configuration
# Uncomment a value to enable it. CLI flags override config values.

[log]
# dir = %q
# default-category = %q
# long-definitions = false

[analysis]
# off-label = %q          # Activity label meaning off duty
# window = %d             # Preceding weeks in the rolling average
# filter-off = %t         # Drop off-duty intervals from the analysis
# cutoff = %.1f           # Hide activities below this %% share in charts

# [categories]
# Coding = "Coding, testing and debugging activities."
# Off = "Out of the office."
`,
		config.DefaultLogDir(),
		defaultOffLabel,
		defaultOffLabel,
		defaultWindow,
		defaultFilterOff,
		defaultCutoff,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
