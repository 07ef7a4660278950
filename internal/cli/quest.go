package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rcliao/eternal-quest/internal/logger"
	"github.com/rcliao/eternal-quest/internal/quest"
	"github.com/rcliao/eternal-quest/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	questCmd := &cobra.Command{
		Use:   "quest",
		Short: "Quests and experience",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available quests",
		Run:   runQuestList,
	}

	startCmd := &cobra.Command{
		Use:   "start [number|key]",
		Short: "Start a quest from the catalog, or a custom one with --name",
		Args:  cobra.MaximumNArgs(1),
		Run:   runQuestStart,
	}
	startCmd.Flags().String("name", "", "Custom quest name")
	startCmd.Flags().String("description", "", "Custom quest description")
	startCmd.Flags().Int("reward", 0, "Custom quest reward points")

	activeCmd := &cobra.Command{
		Use:   "active",
		Short: "List active quests",
		Run:   runQuestActive,
	}

	completeCmd := &cobra.Command{
		Use:   "complete [number]",
		Short: "Complete an active quest",
		Args:  cobra.ExactArgs(1),
		Run:   runQuestComplete,
	}

	completedCmd := &cobra.Command{
		Use:   "completed",
		Short: "List finished quests",
		Run:   runQuestCompleted,
	}

	questCmd.AddCommand(listCmd, startCmd, activeCmd, completeCmd, completedCmd)
	RootCmd.AddCommand(questCmd)
}

func runQuestList(cmd *cobra.Command, args []string) {
	quests := quest.Catalog()
	if textOutput() {
		for i, q := range quests {
			fmt.Fprintf(cmd.OutOrStdout(), "%d. %s (%d XP) [%s]\n", i+1, q.Name, q.RewardPoints, q.Key)
		}
		return
	}
	printJSON(cmd, quests)
}

// pickQuest resolves a 1-based catalog number or a catalog key.
func pickQuest(arg string) (*quest.Quest, error) {
	if n, err := strconv.Atoi(arg); err == nil {
		quests := quest.Catalog()
		if n < 1 || n > len(quests) {
			return nil, fmt.Errorf("quest number %d out of range 1..%d", n, len(quests))
		}
		return quests[n-1], nil
	}
	q, ok := quest.Lookup(strings.ToLower(arg))
	if !ok {
		return nil, fmt.Errorf("unknown quest %q", arg)
	}
	return q, nil
}

func runQuestStart(cmd *cobra.Command, args []string) {
	name, _ := cmd.Flags().GetString("name")
	desc, _ := cmd.Flags().GetString("description")
	reward, _ := cmd.Flags().GetInt("reward")

	var (
		q   *quest.Quest
		err error
	)
	switch {
	case len(args) == 1:
		q, err = pickQuest(args[0])
	case name != "":
		q, err = quest.New(name, desc, reward)
	default:
		err = fmt.Errorf("give a catalog quest or --name")
	}
	if err != nil {
		exitErr("start quest", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	u, err := s.LoadUser(cmd.Context(), getUsername())
	if err != nil {
		exitErr("load user", err)
	}
	u.StartQuest(q)
	if err := s.SaveUser(cmd.Context(), store.SaveUserParams{User: u}); err != nil {
		exitErr("save user", err)
	}

	if textOutput() {
		fmt.Fprintf(cmd.OutOrStdout(), "Quest '%s' started.\n", q.Name)
		return
	}
	printJSON(cmd, q)
}

func runQuestActive(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	u, err := s.LoadUser(cmd.Context(), getUsername())
	if err != nil {
		exitErr("load user", err)
	}

	if textOutput() {
		for i, q := range u.ActiveQuests {
			fmt.Fprintf(cmd.OutOrStdout(), "%d. %s (%d XP)\n", i+1, q.Name, q.RewardPoints)
		}
		return
	}
	printJSON(cmd, u.ActiveQuests)
}

func runQuestComplete(cmd *cobra.Command, args []string) {
	n, err := strconv.Atoi(args[0])
	if err != nil {
		exitErr("complete quest", fmt.Errorf("invalid quest number %q", args[0]))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	u, err := s.LoadUser(cmd.Context(), getUsername())
	if err != nil {
		exitErr("load user", err)
	}
	if n < 1 || n > len(u.ActiveQuests) {
		exitErr("complete quest", fmt.Errorf("quest number %d out of range 1..%d", n, len(u.ActiveQuests)))
	}

	q := u.ActiveQuests[n-1]
	award, err := u.CompleteQuest(q)
	if err != nil {
		exitErr("complete quest", err)
	}
	if err := s.SaveUser(cmd.Context(), store.SaveUserParams{User: u, Completed: []*quest.Quest{q}}); err != nil {
		exitErr("save user", err)
	}
	if award.LevelsUp > 0 {
		logger.Log.Info("level up", "user", u.Username, "level", award.Level, "levels", award.LevelsUp)
	}

	if textOutput() {
		fmt.Fprintf(cmd.OutOrStdout(), "Quest '%s' completed! +%d XP. Level %d, %d XP.\n",
			award.Quest, award.Points, award.Level, award.XP)
		return
	}
	printJSON(cmd, award)
}

func runQuestCompleted(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	quests, err := s.CompletedQuests(cmd.Context(), getUsername())
	if err != nil {
		exitErr("completed quests", err)
	}
	if quests == nil {
		quests = []*quest.Quest{}
	}

	if textOutput() {
		for _, q := range quests {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s (%d XP)\n", q.CompletedAt.Format("2006-01-02"), q.Name, q.RewardPoints)
		}
		return
	}
	printJSON(cmd, quests)
}
