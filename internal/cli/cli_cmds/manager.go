package cli_cmds

import (
	"github.com/ZanzyTHEbar/atm-go/internal/cli"

	"github.com/spf13/cobra"
)

func GeneratePalette(params *cli.CmdParams) []*cobra.Command {

	// Global commands
	helpCmd := NewHelp(params)
	versionCmd := NewVersion(params)

	// ATM surfaces
	serveCmd := NewServe(params)
	terminalCmd := NewTerminal(params)

	// Utility commands
	configCmd := NewConfig(params)
	statusCmd := NewStatus(params)
	eventsCmd := NewEvents(params)

	// Return all commands
	return []*cobra.Command{
		helpCmd,
		versionCmd,
		serveCmd,
		terminalCmd,
		configCmd,
		statusCmd,
		eventsCmd,
	}
}
