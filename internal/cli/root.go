// Package cli implements the eternal-quest CLI commands.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rcliao/eternal-quest/internal/config"
	"github.com/rcliao/eternal-quest/internal/goalfile"
	"github.com/rcliao/eternal-quest/internal/logger"
	"github.com/rcliao/eternal-quest/internal/store"
	"github.com/rcliao/eternal-quest/internal/tracker"
	"github.com/spf13/cobra"
)

var (
	cfg *config.Config

	dbPath     string
	goalsPath  string
	username   string
	formatFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "eternal-quest",
	Short: "Goal scoring and quest tracking",
	Long:  "Track simple, eternal, checklist and penalty goals in a plain text file, and level up by completing quests.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		logger.Init(logger.Options{
			Level:  cfg.LogLevel,
			Format: cfg.LogFormat,
			File:   cfg.LogFile,
		})
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $EQ_DB or ~/.eternal-quest/quest.db)")
	RootCmd.PersistentFlags().StringVarP(&goalsPath, "goals", "g", "", "Goal file path (default: $EQ_GOALS or ~/.eternal-quest/goals.txt)")
	RootCmd.PersistentFlags().StringVarP(&username, "user", "u", "", "Username (default: $EQ_USER or $USER)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return cfg.DBPath
}

func getGoalsPath() string {
	if goalsPath != "" {
		return goalsPath
	}
	return cfg.GoalsPath
}

func getUsername() string {
	if username != "" {
		return username
	}
	return cfg.Username
}

func textOutput() bool {
	return formatFlag == "text"
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

// loadTracker reads the goal file. A missing file starts an empty ledger.
func loadTracker() *tracker.Tracker {
	t := tracker.New(
		tracker.WithChecklistProgress(cfg.ChecklistProgress),
		tracker.WithLogger(logger.Log),
	)
	if _, err := t.LoadGoals(getGoalsPath()); err != nil && !errors.Is(err, goalfile.ErrNotFound) {
		exitErr("load goals", err)
	}
	return t
}

func saveTracker(t *tracker.Tracker) {
	path := getGoalsPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		exitErr("create goals dir", err)
	}
	if err := t.SaveGoals(path); err != nil {
		exitErr("save goals", err)
	}
}

func printJSON(cmd *cobra.Command, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
