package cli

import (
	"github.com/rcliao/eternal-quest/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show goal and database statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	t := loadTracker()

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stats, err := s.Stats(cmd.Context(), getDBPath(), getUsername())
	if err != nil {
		exitErr("stats", err)
	}

	printJSON(cmd, struct {
		*store.Stats
		GoalsPath  string `json:"goals_path"`
		Goals      int    `json:"goals"`
		TotalScore int    `json:"total_score"`
	}{stats, getGoalsPath(), len(t.Goals()), t.TotalScore()})
}
