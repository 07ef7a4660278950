package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rcliao/eternal-quest/internal/goal"
	"github.com/rcliao/eternal-quest/internal/goalfile"
	"github.com/rcliao/eternal-quest/internal/logger"
	"github.com/rcliao/eternal-quest/internal/store"
	"github.com/rcliao/eternal-quest/internal/tracker"
	"github.com/spf13/cobra"
)

// goalView is the JSON form of a goal.
type goalView struct {
	Index     int    `json:"index"`
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	Points    int    `json:"points"`
	Complete  bool   `json:"complete"`
	Completed int    `json:"completed,omitempty"`
	Target    int    `json:"target,omitempty"`
	Status    string `json:"status"`
}

func viewGoal(i int, g *goal.Goal) goalView {
	return goalView{
		Index:     i,
		Kind:      g.Kind().Short(),
		Name:      g.Name(),
		Points:    g.Points(),
		Complete:  g.IsComplete(),
		Completed: g.Completed(),
		Target:    g.Target(),
		Status:    g.DisplayStatus(),
	}
}

func init() {
	goalCmd := &cobra.Command{
		Use:   "goal",
		Short: "Goal management",
	}

	createCmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a goal",
		Args:  cobra.MinimumNArgs(1),
		Run:   runGoalCreate,
	}
	createCmd.Flags().StringP("kind", "k", "simple", "Kind: simple, eternal, checklist, penalty")
	createCmd.Flags().IntP("points", "p", 0, "Initial points")
	createCmd.Flags().IntP("target", "t", 0, "Checklist target count (default 10)")

	penaltyCmd := &cobra.Command{
		Use:   "penalty [name]",
		Short: "Create a penalty goal",
		Args:  cobra.MinimumNArgs(1),
		Run:   runGoalPenalty,
	}

	recordCmd := &cobra.Command{
		Use:   "record [index]",
		Short: "Record an event for a goal",
		Args:  cobra.ExactArgs(1),
		Run:   runGoalRecord,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Display goals",
		Run:   runGoalList,
	}

	scoreCmd := &cobra.Command{
		Use:   "score",
		Short: "Display total score",
		Run:   runGoalScore,
	}

	saveCmd := &cobra.Command{
		Use:   "save [path]",
		Short: "Write the goals to another file",
		Args:  cobra.ExactArgs(1),
		Run:   runGoalSave,
	}

	loadCmd := &cobra.Command{
		Use:   "load [path]",
		Short: "Replace the goals with those read from a file",
		Args:  cobra.ExactArgs(1),
		Run:   runGoalLoad,
	}

	goalCmd.AddCommand(createCmd, penaltyCmd, recordCmd, listCmd, scoreCmd, saveCmd, loadCmd)
	RootCmd.AddCommand(goalCmd)
}

func runGoalCreate(cmd *cobra.Command, args []string) {
	kindStr, _ := cmd.Flags().GetString("kind")
	points, _ := cmd.Flags().GetInt("points")
	target, _ := cmd.Flags().GetInt("target")

	kind, err := goal.ParseKindName(kindStr)
	if err != nil {
		exitErr("create goal", err)
	}
	createGoal(cmd, kind, strings.Join(args, " "), points, target)
}

func runGoalPenalty(cmd *cobra.Command, args []string) {
	createGoal(cmd, goal.Penalty, strings.Join(args, " "), 0, 0)
}

func createGoal(cmd *cobra.Command, kind goal.Kind, name string, points, target int) {
	t := loadTracker()
	g, err := t.CreateGoal(kind, name, points, target)
	if err != nil {
		exitErr("create goal", err)
	}
	saveTracker(t)

	if textOutput() {
		fmt.Fprintf(cmd.OutOrStdout(), "New goal '%s' created successfully.\n", g.Name())
		return
	}
	printJSON(cmd, viewGoal(len(t.Goals()), g))
}

func runGoalRecord(cmd *cobra.Command, args []string) {
	index, err := strconv.Atoi(args[0])
	if err != nil {
		exitErr("record event", fmt.Errorf("%w: invalid goal number %q", goal.ErrValidation, args[0]))
	}

	t := loadTracker()
	out, err := t.RecordEvent(index)
	if err != nil {
		exitErr("record event", err)
	}
	saveTracker(t)

	recordHistory(cmd, out)

	if textOutput() {
		fmt.Fprintf(cmd.OutOrStdout(), "Event recorded successfully. %+d points (%s now has %d).\n", out.Delta, out.Name, out.Points)
		return
	}
	printJSON(cmd, struct {
		goal.Outcome
		Total int `json:"total"`
	}{out, t.TotalScore()})
}

// recordHistory appends the event to the profile store. The goal file is
// already saved, so a store failure is logged rather than fatal.
func recordHistory(cmd *cobra.Command, out goal.Outcome) {
	s, err := openStore()
	if err != nil {
		logger.Log.Warn("event not added to history", "error", err)
		return
	}
	defer s.Close()

	_, err = s.AppendEvent(cmd.Context(), store.EventParams{
		Username:  getUsername(),
		GoalIndex: out.Index,
		GoalName:  out.Name,
		Kind:      out.Kind,
		Delta:     out.Delta,
		Points:    out.Points,
		Completed: out.Completed,
	})
	if err != nil {
		logger.Log.Warn("event not added to history", "error", err)
	}
}

func runGoalList(cmd *cobra.Command, args []string) {
	t := loadTracker()

	if textOutput() {
		fmt.Fprintln(cmd.OutOrStdout(), "===== Your Goals =====")
		for _, line := range t.DisplayGoals() {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return
	}
	printJSON(cmd, goalViews(t))
}

func goalViews(t *tracker.Tracker) []goalView {
	views := []goalView{}
	for i, g := range t.Goals() {
		views = append(views, viewGoal(i+1, g))
	}
	return views
}

func runGoalScore(cmd *cobra.Command, args []string) {
	t := loadTracker()

	if textOutput() {
		fmt.Fprintf(cmd.OutOrStdout(), "Total Score: %d\n", t.TotalScore())
		return
	}
	printJSON(cmd, struct {
		Total int `json:"total"`
		Goals int `json:"goals"`
	}{t.TotalScore(), len(t.Goals())})
}

func runGoalSave(cmd *cobra.Command, args []string) {
	t := loadTracker()
	if err := t.SaveGoals(args[0]); err != nil {
		exitErr("save goals", err)
	}

	if textOutput() {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %d goals to %s.\n", len(t.Goals()), args[0])
		return
	}
	printJSON(cmd, struct {
		OK    bool   `json:"ok"`
		Path  string `json:"path"`
		Goals int    `json:"goals"`
	}{true, args[0], len(t.Goals())})
}

// runGoalLoad replaces the goal file with the goals read from args[0]. A
// missing source is reported as a warning and leaves the goal file alone.
func runGoalLoad(cmd *cobra.Command, args []string) {
	t := loadTracker()
	res, err := t.LoadGoals(args[0])
	notFound := errors.Is(err, goalfile.ErrNotFound)
	if err != nil && !notFound {
		exitErr("load goals", err)
	}
	if notFound {
		logger.Log.Warn("no saved goals found", "path", args[0])
		res = &goalfile.LoadResult{}
	} else {
		saveTracker(t)
	}

	if textOutput() {
		w := cmd.OutOrStdout()
		if notFound {
			fmt.Fprintf(w, "No saved goals found at %s.\n", args[0])
		}
		fmt.Fprintf(w, "Loaded %d goals.\n", len(res.Goals))
		for _, sk := range res.Skipped {
			fmt.Fprintf(w, "Skipped line %d: %s\n", sk.Line, sk.Reason)
		}
		return
	}
	printJSON(cmd, struct {
		OK       bool            `json:"ok"`
		Goals    int             `json:"goals"`
		NotFound bool            `json:"not_found,omitempty"`
		Skipped  []goalfile.Skip `json:"skipped,omitempty"`
	}{true, len(res.Goals), notFound, res.Skipped})
}
