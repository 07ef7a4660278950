package cli

import (
	"strings"

	"github.com/rcliao/eternal-quest/internal/quest"
	"github.com/spf13/cobra"
)

func init() {
	avatarCmd := &cobra.Command{
		Use:   "avatar",
		Short: "Avatar customization",
	}

	setCmd := &cobra.Command{
		Use:   "set [appearance]",
		Short: "Change the avatar's appearance",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			appearance := strings.Join(args, " ")
			u := withUser(cmd, "customize avatar", func(u *quest.User) error {
				return u.Avatar.Customize(appearance)
			})
			printUser(cmd, u)
		},
	}

	accessoryCmd := &cobra.Command{
		Use:   "accessory [name]",
		Short: "Add an accessory to the avatar",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			name := strings.Join(args, " ")
			u := withUser(cmd, "add accessory", func(u *quest.User) error {
				return u.Avatar.AddAccessory(name)
			})
			printUser(cmd, u)
		},
	}

	avatarCmd.AddCommand(setCmd, accessoryCmd)
	RootCmd.AddCommand(avatarCmd)
}
