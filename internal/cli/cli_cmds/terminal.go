package cli_cmds

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/ZanzyTHEbar/atm-go/internal/cli"
	"github.com/ZanzyTHEbar/atm-go/internal/terminal"
	"github.com/ZanzyTHEbar/atm-go/services"
	"github.com/spf13/cobra"
)

// NewTerminal creates the command that runs the ATM on the console
func NewTerminal(params *cli.CmdParams) *cobra.Command {
	return &cobra.Command{
		Use:     "terminal",
		Aliases: []string{"term"},
		Short:   "Use the ATM from this console",
		Long:    `Run a line-oriented ATM on stdin/stdout. Type q at any prompt to quit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := newATMApp(params)
			if err != nil {
				return err
			}
			defer app.Close()

			manager := services.NewServiceManager(params.Logger)
			manager.Register("terminal", terminal.New(app.actors.Session(), cmd.InOrStdin(), cmd.OutOrStdout(), terminal.Options{
				CurrencySymbol: params.Config.Currency.Symbol,
				Logger:         params.Logger,
			}))
			return manager.Run(ctx)
		},
	}
}
