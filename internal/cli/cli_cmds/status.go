package cli_cmds

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/atm-go/interfaces"
	"github.com/ZanzyTHEbar/atm-go/internal/cli"
	"github.com/spf13/cobra"
)

type healthStatus struct {
	Status  string                  `json:"status"`
	Version string                  `json:"version"`
	Session *interfaces.ServiceInfo `json:"session"`
}

// NewStatus creates a command that asks a running server for its health
func NewStatus(params *cli.CmdParams) *cobra.Command {
	var (
		url     string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check a running server",
		Long:  `Query the /health endpoint of a running ATM server and print the session actor status.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				url = baseURL(params.Config.Server.Addr)
			}

			client := &http.Client{Timeout: timeout}
			resp, err := client.Get(strings.TrimSuffix(url, "/") + "/health")
			if err != nil {
				return fmt.Errorf("server not reachable at %s: %w", url, err)
			}
			defer resp.Body.Close()

			var health healthStatus
			if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
				return fmt.Errorf("unexpected health response: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Server: %s (%s, version %s)\n", url, health.Status, health.Version)
			if s := health.Session; s != nil {
				fmt.Fprintf(out, "- %s: %s (Started: %s)\n", s.Name, s.Status, s.StartTime.Format("2006-01-02 15:04:05"))
				fmt.Fprintf(out, "  Requests handled: %d, rejected: %d\n", s.EventsHandled, s.ErrorCount)
				if s.LastError != "" {
					fmt.Fprintf(out, "  Last Error: %s\n", s.LastError)
				}
			}

			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("server unhealthy: %s", resp.Status)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "server base URL (default derived from server.addr)")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "request timeout")
	return cmd
}

// baseURL turns a listen address such as ":8080" into a URL a client can dial
func baseURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "127.0.0.1" + addr
	}
	return "http://" + addr
}
