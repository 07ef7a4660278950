package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the profile and event history as JSON",
		Long:  "Export the user's profile, finished quests and full event history as JSON. The output can be read back with import.",
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	exp, err := s.ExportAll(cmd.Context(), getUsername())
	if err != nil {
		exitErr("export", err)
	}

	printJSON(cmd, exp)
}
