package cli_cmds

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZanzyTHEbar/atm-go/interfaces"
	"github.com/ZanzyTHEbar/atm-go/internal/cli"
	"github.com/ZanzyTHEbar/atm-go/internal/nats_common"
	"github.com/spf13/cobra"
)

// NewEvents creates a command that prints session events from NATS
func NewEvents(params *cli.CmdParams) *cobra.Command {
	return &cobra.Command{
		Use:   "events [pattern]",
		Short: "Watch session events published to NATS",
		Long: `Subscribe to the event subjects of a running server and print every event as JSON.
The optional pattern narrows the subjects, e.g. "atm.events.transaction.*". Needs nats.url.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			natsConfig := nats_common.ConfigFrom(params.Config)
			if !natsConfig.Enabled() {
				return fmt.Errorf("nats.url is not configured")
			}

			var pattern string
			if len(args) == 1 {
				pattern = args[0]
			}

			adapter, err := nats_common.Connect(natsConfig, params.Logger)
			if err != nil {
				return err
			}
			defer adapter.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			return adapter.Watch(ctx, pattern, func(event *interfaces.Event) {
				fmt.Fprintln(out, event.String())
			})
		},
	}
}
