package cli_cmds

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/atm-go/internal"
	"github.com/ZanzyTHEbar/atm-go/internal/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewConfig creates a command to manage configuration
func NewConfig(params *cli.CmdParams) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `View and modify the ATM configuration settings.`,
	}

	// Add subcommands for different config operations
	configCmd.AddCommand(newConfigGet(params))
	configCmd.AddCommand(newConfigSet(params))
	configCmd.AddCommand(newConfigList(params))

	return configCmd
}

// newConfigGet creates a subcommand to get a specific config value
func newConfigGet(params *cli.CmdParams) *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Get a configuration value",
		Long:  `Retrieve a specific configuration value by key, e.g. "server.addr".`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(args[0])

			value, ok := params.Config.Settings()[key]
			if !ok {
				return fmt.Errorf("config key '%s' not found", key)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", key, value)
			return nil
		},
	}
}

// newConfigSet creates a subcommand to set a config value
func newConfigSet(params *cli.CmdParams) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set a configuration value",
		Long: `Set or update a configuration value by key and write it to the config file.
fast_cash and log.components take comma separated lists.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(args[0])
			if _, ok := params.Config.Settings()[key]; !ok {
				return fmt.Errorf("config key '%s' not found", key)
			}

			value, err := parseConfigValue(key, args[1])
			if err != nil {
				return err
			}

			if file == "" {
				file = params.ConfigFile
			}
			if file == "" {
				file = "config.yaml"
			}

			v := viper.New()
			v.SetConfigFile(file)
			if err := v.ReadInConfig(); err != nil {
				// a missing file is created below
				var notFound viper.ConfigFileNotFoundError
				if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("failed to read %s: %w", file, err)
				}
			}
			v.Set(key, value)
			if err := v.WriteConfigAs(file); err != nil {
				return fmt.Errorf("failed to write %s: %w", file, err)
			}

			params.Logger.Info(internal.ComponentConfig, "Set %s in %s", key, file)
			fmt.Fprintf(cmd.OutOrStdout(), "Setting %s = %v\n", key, value)
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration updated")
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "config file to write (default is --config or ./config.yaml)")
	return cmd
}

// parseConfigValue types a command line value for the given key
func parseConfigValue(key, raw string) (interface{}, error) {
	switch key {
	case "fast_cash":
		var amounts []float64
		for _, part := range strings.Split(raw, ",") {
			amount, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil || amount <= 0 {
				return nil, fmt.Errorf("fast_cash: %q is not a positive amount", part)
			}
			amounts = append(amounts, amount)
		}
		return amounts, nil
	case "account.opening_balance":
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil || amount < 0 {
			return nil, fmt.Errorf("%s: %q is not a valid balance", key, raw)
		}
		return amount, nil
	case "log.components":
		var names []string
		for _, part := range strings.Split(raw, ",") {
			component, err := internal.ParseComponent(part)
			if err != nil {
				return nil, err
			}
			names = append(names, string(component))
		}
		return names, nil
	case "debug":
		return strconv.ParseBool(raw)
	case "log.level":
		if _, err := internal.ParseLogLevel(raw); err != nil {
			return nil, err
		}
		return raw, nil
	default:
		return raw, nil
	}
}

// newConfigList creates a subcommand to list all config values
func newConfigList(params *cli.CmdParams) *cobra.Command {
	var format string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		Long:  `Display all current configuration values. Secrets are masked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configItems := params.Config.Settings()
			out := cmd.OutOrStdout()

			switch strings.ToLower(format) {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(configItems)

			case "text", "":
				keys := make([]string, 0, len(configItems))
				for k := range configItems {
					keys = append(keys, k)
				}
				sort.Strings(keys)

				fmt.Fprintln(out, "Current Configuration:")
				fmt.Fprintln(out, "======================")
				for _, k := range keys {
					fmt.Fprintf(out, "%s = %v\n", k, configItems[k])
				}
				return nil

			default:
				return fmt.Errorf("unknown format %q (want text or json)", format)
			}
		},
	}

	// Add flags
	listCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text or json)")

	return listCmd
}
