package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/pinkytype/internal/config"
	"github.com/verte-zerg/pinkytype/internal/model"
	"github.com/verte-zerg/pinkytype/internal/names"
	"github.com/verte-zerg/pinkytype/internal/stats"
	"github.com/verte-zerg/pinkytype/internal/store"
)

func newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the top scores for a category",
		Args:  cobra.NoArgs,
		RunE:  runLeaderboardCmd,
	}
	cmd.Flags().StringVar(&boardMode, "mode", defaultMode, "game mode: words, time or zen")
	cmd.Flags().IntVar(&boardValue, "value", 0, "word count or seconds (default: mode default)")
	return cmd
}

func runLeaderboardCmd(cmd *cobra.Command, _ []string) error {
	if _, err := loadFileConfig(cmd); err != nil {
		return err
	}
	gameCfg, err := resolveGameConfig(boardMode, boardValue)
	if err != nil {
		return err
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)
	gw, err := openGateway(st)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), lbTimeout)
	defer cancel()
	entries, err := gw.Scores(ctx, gameCfg.CategoryKey())
	if err != nil {
		return err
	}
	return stats.RenderLeaderboard(cmd.OutOrStdout(), gameCfg.CategoryKey(), entries)
}

func newNameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "name [new-name]",
		Short: "Show or set the display name used on leaderboards",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runNameCmd,
	}
}

func runNameCmd(cmd *cobra.Command, args []string) error {
	registry := names.NewRegistry(config.DefaultNamePath())
	current, ok, err := registry.Get()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		if !ok {
			_, err := fmt.Fprintln(out, "No name set. Run: pinkytype name <name>")
			return err
		}
		_, err := fmt.Fprintln(out, current)
		return err
	}

	if _, err := loadFileConfig(cmd); err != nil {
		return err
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)
	gw, err := openGateway(st)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), lbTimeout)
	defer cancel()
	name, err := names.Claim(ctx, gw, current, args[0])
	if err != nil {
		var verr *names.ValidationError
		if errors.As(err, &verr) {
			return errors.New(verr.Message)
		}
		return err
	}
	if err := registry.Set(name); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "Name set to %s\n", name)
	return err
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Summarize local session history",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N sessions")
	cmd.Flags().StringVar(&historyCategory, "category", "", "category filter, e.g. time-30")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st)

	records, err := st.ListSessions(cmd.Context(), strings.TrimSpace(historyCategory), historyLast)
	if err != nil {
		return fmt.Errorf("failed to load sessions: %w", err)
	}
	return stats.RenderSummary(cmd.OutOrStdout(), records, defaultCurveWindow)
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

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# pinkytype configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# mode = %q          # words, time or zen
# value = %d            # Words: %s; time: %s
# wordlist = ""          # Custom word list file (default: embedded list)

[leaderboard]
# backend = %q       # local, remote or off
# url = "http://localhost:8080"
# timeout = %q
`,
		defaultMode,
		model.DefaultWords,
		joinOptions(model.ModeWords),
		joinOptions(model.ModeTime),
		defaultBackend,
		defaultTimeout.String(),
	)
}

func joinOptions(mode model.GameMode) string {
	opts := mode.Options()
	parts := make([]string, len(opts))
	for i, v := range opts {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}
