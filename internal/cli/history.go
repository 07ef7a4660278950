package cli

import (
	"fmt"

	"github.com/rcliao/eternal-quest/internal/model"
	"github.com/rcliao/eternal-quest/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded goal events",
		Long:  "List recorded goal events, newest first. Filter by goal name substring with --goal or by variant with --kind.",
		Run:   runHistory,
	}

	cmd.Flags().String("goal", "", "Filter by goal name substring")
	cmd.Flags().StringP("kind", "k", "", "Filter by kind (e.g. EternalGoal)")
	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	goalName, _ := cmd.Flags().GetString("goal")
	kind, _ := cmd.Flags().GetString("kind")
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	events, err := s.History(cmd.Context(), store.HistoryParams{
		Username: getUsername(),
		Goal:     goalName,
		Kind:     kind,
		Limit:    limit,
	})
	if err != nil {
		exitErr("history", err)
	}
	if events == nil {
		events = []model.Event{}
	}

	if textOutput() {
		for _, e := range events {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-14s %+6d  %s\n",
				e.RecordedAt.Local().Format("2006-01-02 15:04"), e.Kind, e.Delta, e.GoalName)
		}
		return
	}
	printJSON(cmd, events)
}
