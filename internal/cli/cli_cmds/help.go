package cli_cmds

import (
	"fmt"

	"github.com/ZanzyTHEbar/atm-go/internal"
	"github.com/ZanzyTHEbar/atm-go/internal/cli"

	"github.com/spf13/cobra"
)

// NewHelp creates a detailed help command
func NewHelp(params *cli.CmdParams) *cobra.Command {
	var showAll bool

	helpCmd := &cobra.Command{
		Use:     "detailed_help",
		Aliases: []string{"h"},
		Short:   "Display detailed help for the ATM",
		Long:    `Display detailed help information for the ATM including command hierarchy and usage examples.`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			name := internal.DefaultAppCMDShortCut

			if showAll {
				// Display all available commands and their details
				fmt.Fprintln(out, "ATM - Complete Command Reference")
				fmt.Fprintln(out, "================================")
				fmt.Fprintln(out, "\nAvailable Commands:")

				for _, c := range params.Palette {
					fmt.Fprintf(out, "- %s: %s\n", c.Use, c.Short)
				}
				return
			}

			// Display basic help
			fmt.Fprintln(out, "ATM")
			fmt.Fprintln(out, "===")
			fmt.Fprintln(out, "\nMain Commands:")
			fmt.Fprintln(out, "  serve       Serve the ATM page and JSON API")
			fmt.Fprintln(out, "  terminal    Use the ATM from this console")
			fmt.Fprintln(out, "  status      Check a running server")
			fmt.Fprintln(out, "  config      Manage configuration")
			fmt.Fprintf(out, "\nUse '%s [command] --help' for more information about a command.\n", name)
			fmt.Fprintf(out, "Use '%s detailed_help --all' to see all available commands.\n", name)
		},
	}

	helpCmd.Flags().BoolVarP(&showAll, "all", "a", false, "Show all commands")

	return helpCmd
}
