// Package main provides the CLI entrypoint for dictate.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/dictate/internal/config"
	"github.com/verte-zerg/dictate/internal/items"
	"github.com/verte-zerg/dictate/internal/model"
	"github.com/verte-zerg/dictate/internal/picker"
	"github.com/verte-zerg/dictate/internal/stats"
	"github.com/verte-zerg/dictate/internal/store"
	"github.com/verte-zerg/dictate/internal/tui"
)

const (
	defaultSet         = "starter"
	defaultLevel       = "all"
	defaultFlash       = 3 * time.Second
	defaultWeakTop     = 8
	defaultWeakFactor  = 2.0
	defaultWeakWindow  = 20
	defaultStatsWindow = 20
	defaultStatsTop    = 10
)

var (
	practiceSet        string
	practiceLevel      string
	practiceFlash      time.Duration
	practiceHints      bool
	practiceFocusWeak  bool
	practiceWeakTop    int
	practiceWeakFactor float64
	practiceWeakWindow int

	statsSet    string
	statsSince  string
	statsLast   int
	statsWindow int
	statsTop    int
	statsColor  bool

	checkFormat string
	checkHints  bool

	setsInitName  string
	setsInitForce bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dictate",
		Short:         "TUI dictation trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceSet, "set", defaultSet, "practice set name")
	rootCmd.Flags().StringVar(&practiceLevel, "level", defaultLevel, "sentence length filter (all, short, long)")
	rootCmd.Flags().DurationVar(&practiceFlash, "flash", defaultFlash, "how long the sentence stays visible (0 waits for a key)")
	rootCmd.Flags().BoolVar(&practiceHints, "hints", false, "suggest likely misspellings after each attempt")
	rootCmd.Flags().BoolVar(&practiceFocusWeak, "focus-weak", false, "bias practice toward frequently missed words")
	rootCmd.Flags().IntVar(&practiceWeakTop, "weak-top", defaultWeakTop, "number of weak words to focus on")
	rootCmd.Flags().Float64Var(&practiceWeakFactor, "weak-factor", defaultWeakFactor, "weight factor for sentences with weak words")
	rootCmd.Flags().IntVar(&practiceWeakWindow, "weak-window", defaultWeakWindow, "number of recent attempts to compute weak words")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSetsCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := applyPracticeConfig(cmd, fileCfg.Practice); err != nil {
		return err
	}

	cfg := model.Config{
		Set:        practiceSet,
		Level:      practiceLevel,
		Flash:      practiceFlash,
		Hints:      practiceHints,
		FocusWeak:  practiceFocusWeak,
		WeakTop:    practiceWeakTop,
		WeakFactor: practiceWeakFactor,
		WeakWindow: practiceWeakWindow,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	setPath := config.DefaultSetPath(cfg.Set)
	set, err := loadPracticeSet(cfg, setPath)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	weakSet := map[string]struct{}{}
	weakNoticePrinted := false
	if cfg.FocusWeak {
		aggs, err := st.GetWeakWords(context.Background(), cfg.WeakWindow, cfg.Set)
		if err != nil {
			logErrf("failed to load weak words: %v\n", err)
		} else {
			weakSet = stats.SelectWeakWords(aggs, cfg.WeakTop)
			if len(weakSet) == 0 {
				logErrln("no missed words recorded yet; picking sentences uniformly")
				weakNoticePrinted = true
			}
		}
	}

	m := tui.NewModel(cfg, st, picker.New(), set, uuid.NewString(), weakSet, weakNoticePrinted)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func applyPracticeConfig(cmd *cobra.Command, p config.PracticeConfig) error {
	applyStringConfig(cmd, "set", &practiceSet, p.Set)
	applyStringConfig(cmd, "level", &practiceLevel, p.Level)
	flash, err := p.FlashDuration()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyDurationConfig(cmd, "flash", &practiceFlash, flash)
	applyBoolConfig(cmd, "hints", &practiceHints, p.Hints)
	applyBoolConfig(cmd, "focus-weak", &practiceFocusWeak, p.FocusWeak)
	applyIntConfig(cmd, "weak-top", &practiceWeakTop, p.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &practiceWeakFactor, p.WeakFactor)
	applyIntConfig(cmd, "weak-window", &practiceWeakWindow, p.WeakWindow)
	return nil
}

func loadPracticeSet(cfg model.Config, path string) ([]items.Item, error) {
	if cfg.Set == defaultSet {
		if err := seedStarterSet(path); err != nil {
			return nil, err
		}
	}
	set, err := items.LoadSet(path)
	if err != nil {
		return nil, setLoadError(cfg.Set, path, err)
	}
	keep, err := items.FilterForLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	filtered := items.Filter(set, keep)
	if len(filtered) == 0 {
		return nil, fmt.Errorf("no sentences in set %q match level %q", cfg.Set, cfg.Level)
	}
	return filtered, nil
}

// seedStarterSet writes the starter set on first run.
func seedStarterSet(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat practice set: %w", err)
	}
	if err := items.WriteSet(path, items.StarterSet); err != nil {
		return fmt.Errorf("failed to write starter set: %w", err)
	}
	logErrf("Wrote starter set to %s\n", path)
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

func newSetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sets",
		Short: "List practice sets",
		Args:  cobra.NoArgs,
		RunE:  runSetsCmd,
	}
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the starter practice set",
		Args:  cobra.NoArgs,
		RunE:  runSetsInitCmd,
	}
	initCmd.Flags().StringVar(&setsInitName, "name", defaultSet, "set name")
	initCmd.Flags().BoolVar(&setsInitForce, "force", false, "overwrite an existing set")
	cmd.AddCommand(initCmd)
	return cmd
}

func runSetsCmd(cmd *cobra.Command, _ []string) error {
	names, err := items.ListSets(config.DefaultSetDir())
	if err != nil {
		return fmt.Errorf("failed to list sets: %w", err)
	}
	if len(names) == 0 {
		logErrln("No practice sets found. Create one with: dictate sets init")
		return fmt.Errorf("no practice sets found")
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func runSetsInitCmd(_ *cobra.Command, _ []string) error {
	name := strings.TrimSpace(setsInitName)
	if name == "" {
		return fmt.Errorf("--name must not be empty")
	}
	path := config.DefaultSetPath(name)
	if !setsInitForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("practice set already exists: %s (use --force to overwrite)", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat practice set: %w", err)
		}
	}
	if err := items.WriteSet(path, items.StarterSet); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logErrf("Wrote %s\n", path)
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSet, "set", "", "practice set filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N attempts")
	cmd.Flags().IntVar(&statsWindow, "window", defaultStatsWindow, "moving average and word table window")
	cmd.Flags().IntVar(&statsTop, "top", defaultStatsTop, "number of words in the missed-words table")
	cmd.Flags().BoolVar(&statsColor, "color", false, "force colored output")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildStatsConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build stats: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := report.Render(out, cfg, stats.TerminalWidth(), stats.ShouldUseColor(out, statsColor)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func buildStatsConfig() (model.StatsConfig, error) {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if statsLast < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if statsWindow < 0 {
		return model.StatsConfig{}, fmt.Errorf("--window must be >= 0")
	}
	if statsTop < 0 {
		return model.StatsConfig{}, fmt.Errorf("--top must be >= 0")
	}
	return model.StatsConfig{
		Set:    statsSet,
		Since:  sinceTime,
		Last:   statsLast,
		Window: statsWindow,
		Top:    statsTop,
	}, nil
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

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
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

func applyDurationConfig(cmd *cobra.Command, name string, target, value *time.Duration) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# dictate configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# set = %q           # Practice set name
# level = %q             # Sentence length filter: all, short, long
# flash = %q              # How long the sentence stays visible
# hints = false            # Suggest likely misspellings
# focus-weak = false       # Bias practice toward frequently missed words
# weak-top = %d            # Number of weak words to focus on
# weak-factor = %.1f       # Weight factor for sentences with weak words
# weak-window = %d        # Number of recent attempts to compute weak words
`,
		defaultSet,
		defaultLevel,
		defaultFlash.String(),
		defaultWeakTop,
		defaultWeakFactor,
		defaultWeakWindow,
	)
}

func validateConfig(cfg model.Config) error {
	if strings.TrimSpace(cfg.Set) == "" {
		return fmt.Errorf("--set must not be empty")
	}
	if strings.ContainsAny(cfg.Set, `/\`) {
		return fmt.Errorf("--set must be a name, not a path")
	}
	if _, err := items.FilterForLevel(cfg.Level); err != nil {
		return err
	}
	if cfg.Flash < 0 {
		return fmt.Errorf("--flash must be >= 0")
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if cfg.WeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0")
	}
	return nil
}

func setLoadError(name, path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load practice set: %v", err),
		fmt.Sprintf("expected practice set at: %s", path),
		fmt.Sprintf("set %q not found", name),
		"Run: dictate sets",
		"Create the starter set: dictate sets init",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
