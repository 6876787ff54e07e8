package cli_cmds

import (
	"fmt"

	"github.com/ZanzyTHEbar/atm-go/internal"
	"github.com/ZanzyTHEbar/atm-go/internal/cli"

	"github.com/spf13/cobra"
)

// NewVersion creates a version command
func NewVersion(params *cli.CmdParams) *cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version of the ATM",
		Long:  `Print the version information for the ATM including build details.`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ATM")
			fmt.Fprintln(out, "===")
			fmt.Fprintf(out, "%s\n", internal.VersionInfo())
		},
	}

	return versionCmd
}
