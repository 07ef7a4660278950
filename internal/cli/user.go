package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rcliao/eternal-quest/internal/quest"
	"github.com/rcliao/eternal-quest/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User profile",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show level, experience, badges and avatar",
		Run:   runUserShow,
	}

	xpCmd := &cobra.Command{
		Use:   "xp [points]",
		Short: "Award experience points directly",
		Args:  cobra.ExactArgs(1),
		Run:   runUserXP,
	}

	badgeCmd := &cobra.Command{
		Use:   "badge [name]",
		Short: "Award an achievement badge",
		Args:  cobra.MinimumNArgs(1),
		Run:   runUserBadge,
	}

	userCmd.AddCommand(showCmd, xpCmd, badgeCmd)
	RootCmd.AddCommand(userCmd)
}

// withUser loads the current user, applies fn and saves the result.
func withUser(cmd *cobra.Command, op string, fn func(u *quest.User) error) *quest.User {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	u, err := s.LoadUser(cmd.Context(), getUsername())
	if err != nil {
		exitErr("load user", err)
	}
	if fn == nil {
		return u
	}
	if err := fn(u); err != nil {
		exitErr(op, err)
	}
	if err := s.SaveUser(cmd.Context(), store.SaveUserParams{User: u}); err != nil {
		exitErr("save user", err)
	}
	return u
}

func printUser(cmd *cobra.Command, u *quest.User) {
	if !textOutput() {
		printJSON(cmd, u)
		return
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%s: level %d, %d XP\n", u.Username, u.Level, u.ExperiencePoints)
	fmt.Fprintf(w, "Active quests: %d\n", len(u.ActiveQuests))
	if len(u.Badges) > 0 {
		fmt.Fprintf(w, "Badges: %s\n", strings.Join(u.Badges, ", "))
	}
	fmt.Fprintf(w, "Avatar: %s", u.Avatar.Appearance)
	if len(u.Avatar.Accessories) > 0 {
		fmt.Fprintf(w, " with %s", strings.Join(u.Avatar.Accessories, ", "))
	}
	fmt.Fprintln(w)
}

func runUserShow(cmd *cobra.Command, args []string) {
	printUser(cmd, withUser(cmd, "show user", nil))
}

func runUserXP(cmd *cobra.Command, args []string) {
	points, err := strconv.Atoi(args[0])
	if err != nil {
		exitErr("earn xp", fmt.Errorf("%w: %q", quest.ErrInvalidPoints, args[0]))
	}
	u := withUser(cmd, "earn xp", func(u *quest.User) error {
		_, err := u.EarnExperiencePoints(points)
		return err
	})
	printUser(cmd, u)
}

func runUserBadge(cmd *cobra.Command, args []string) {
	name := strings.Join(args, " ")
	u := withUser(cmd, "award badge", func(u *quest.User) error {
		return u.AwardBadge(name)
	})
	printUser(cmd, u)
}
