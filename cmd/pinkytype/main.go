// Package main provides the CLI entrypoint for pinkytype.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/pinkytype/internal/config"
	"github.com/verte-zerg/pinkytype/internal/leaderboard"
	"github.com/verte-zerg/pinkytype/internal/logging"
	"github.com/verte-zerg/pinkytype/internal/model"
	"github.com/verte-zerg/pinkytype/internal/names"
	"github.com/verte-zerg/pinkytype/internal/store"
	"github.com/verte-zerg/pinkytype/internal/tui"
	"github.com/verte-zerg/pinkytype/internal/wordlist"
)

const (
	defaultMode        = "words"
	defaultBackend     = "local"
	defaultTimeout     = 5 * time.Second
	defaultCurveWindow = 10
)

var (
	playMode     string
	playValue    int
	playWordlist string

	lbBackend string
	lbURL     string
	lbTimeout time.Duration

	boardMode  string
	boardValue int

	historyLast     int
	historyCategory string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pinkytype",
		Short:         "TUI typing speed trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playMode, "mode", defaultMode, "game mode: words, time or zen")
	rootCmd.Flags().IntVar(&playValue, "value", 0, "word count or seconds (default: mode default)")
	rootCmd.Flags().StringVar(&playWordlist, "wordlist", "", "custom word list file (default: embedded list)")

	rootCmd.PersistentFlags().StringVar(&lbBackend, "leaderboard", defaultBackend, "leaderboard backend: local, remote or off")
	rootCmd.PersistentFlags().StringVar(&lbURL, "leaderboard-url", "", "remote leaderboard base URL")
	rootCmd.PersistentFlags().DurationVar(&lbTimeout, "leaderboard-timeout", defaultTimeout, "remote leaderboard request timeout")

	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newNameCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "mode", &playMode, fileCfg.Practice.Mode)
	applyIntConfig(cmd, "value", &playValue, fileCfg.Practice.Value)
	applyStringConfig(cmd, "wordlist", &playWordlist, fileCfg.Practice.Wordlist)

	gameCfg, err := resolveGameConfig(playMode, playValue)
	if err != nil {
		return err
	}
	words, err := wordlist.Resolve(playWordlist)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.OpenFile(config.DefaultLogPath(), slog.LevelInfo)
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	gw, err := openGateway(st)
	if err != nil {
		return err
	}
	logger.Info("starting session", "category", gameCfg.CategoryKey(), "leaderboard", lbBackend)

	m := tui.NewModel(tui.Options{
		Config:  gameCfg,
		Words:   words,
		Gateway: gw,
		History: st,
		Names:   names.NewRegistry(config.DefaultNamePath()),
		Logger:  logger,
		Timeout: lbTimeout,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// loadFileConfig reads the config file and applies leaderboard settings
// that were not given as flags.
func loadFileConfig(cmd *cobra.Command) (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "leaderboard", &lbBackend, fileCfg.Leaderboard.Backend)
	applyStringConfig(cmd, "leaderboard-url", &lbURL, fileCfg.Leaderboard.URL)
	applyDurationConfig(cmd, "leaderboard-timeout", &lbTimeout, fileCfg.Leaderboard.Timeout)
	if lbTimeout <= 0 {
		return config.FileConfig{}, fmt.Errorf("--leaderboard-timeout must be > 0")
	}
	return fileCfg, nil
}

func openGateway(local *store.Store) (leaderboard.Gateway, error) {
	backend, err := leaderboard.ParseBackend(lbBackend)
	if err != nil {
		return nil, err
	}
	if backend == leaderboard.BackendRemote && lbURL == "" {
		logErrln("remote leaderboard selected without --leaderboard-url; scores will not be saved")
	}
	var localGW leaderboard.Gateway
	if local != nil {
		localGW = local
	}
	return leaderboard.Open(leaderboard.Options{
		Backend: backend,
		URL:     lbURL,
		Timeout: lbTimeout,
	}, localGW), nil
}

// resolveGameConfig parses a mode and fills in its default value when value
// is zero.
func resolveGameConfig(mode string, value int) (model.GameConfig, error) {
	m, err := model.ParseGameMode(mode)
	if err != nil {
		return model.GameConfig{}, err
	}
	if value == 0 {
		value = m.DefaultValue()
	}
	cfg := model.GameConfig{Mode: m, Value: value}.Normalized()
	if err := cfg.Validate(); err != nil {
		return model.GameConfig{}, err
	}
	return cfg, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
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

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *config.Duration) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = value.Duration
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
