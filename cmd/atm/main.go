package main

import (
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/atm-go/internal"
	"github.com/ZanzyTHEbar/atm-go/internal/cli"
	"github.com/ZanzyTHEbar/atm-go/internal/cli/cli_cmds"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Config and logger are set up by the root command once flags are parsed
	rootParams := &cli.CmdParams{
		Palette: nil,
		Use:     internal.DefaultAppName,
		Alias:   internal.DefaultAppCMDShortCut,
		Short:   "BANK AL-BADAR ATM",
		Long:    "BANK AL-BADAR ATM - Your Complete Internet Banking Solution",
	}

	// Generate command palette
	palette := cli_cmds.GeneratePalette(rootParams)
	rootParams.Palette = palette

	// Create root command
	rootCmd := cli.NewRootCMD(rootParams)

	// Execute root command; errors are printed once, by main
	if err := rootCmd.Root.Execute(); err != nil {
		return fmt.Errorf("error executing root command: %v", err)
	}

	return nil
}
