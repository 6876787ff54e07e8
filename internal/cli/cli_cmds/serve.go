package cli_cmds

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/ZanzyTHEbar/atm-go/internal"
	"github.com/ZanzyTHEbar/atm-go/internal/cli"
	"github.com/ZanzyTHEbar/atm-go/internal/terminal"
	"github.com/ZanzyTHEbar/atm-go/internal/web"
	"github.com/ZanzyTHEbar/atm-go/services"
	"github.com/spf13/cobra"
)

// NewServe creates the command that serves the ATM over HTTP
func NewServe(params *cli.CmdParams) *cobra.Command {
	var (
		addr        string
		pidFile     string
		withConsole bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the ATM page and JSON API",
		Long: `Start the HTTP server with the ATM page on / and the JSON API under /api/v1.
With --terminal the same session can also be driven from this console.
SIGINT or SIGTERM shut the server down gracefully.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				params.Config.Server.Addr = addr
			}

			if pidFile != "" {
				if err := cli.ClaimPIDFile(pidFile); err != nil {
					return err
				}
				defer cli.RemovePIDFile(pidFile)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := newATMApp(params)
			if err != nil {
				return err
			}
			defer app.Close()

			router, err := web.NewRouter(app.actors.Session(), web.Options{
				CurrencySymbol: params.Config.Currency.Symbol,
				Logger:         params.Logger,
			})
			if err != nil {
				return err
			}

			manager := services.NewServiceManager(params.Logger)
			manager.Register("http", web.NewServer(params.Config.Server.Addr, router, app.shutdownTimeout(), params.Logger))
			if withConsole {
				manager.Register("terminal", terminal.New(app.actors.Session(), cmd.InOrStdin(), cmd.OutOrStdout(), terminal.Options{
					CurrencySymbol: params.Config.Currency.Symbol,
					Logger:         params.Logger,
				}))
			}

			params.Logger.Info(internal.ComponentCLI, "ATM %s starting on %s", internal.Version, params.Config.Server.Addr)
			return manager.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().StringVar(&pidFile, "pid-file", cli.DefaultPIDFile(), "PID file guarding against a second server; empty disables it")
	cmd.Flags().BoolVar(&withConsole, "terminal", false, "also run the console ATM on stdin/stdout")

	return cmd
}
