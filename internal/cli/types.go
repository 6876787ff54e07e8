package cli

import (
	"fmt"
	"io"

	"github.com/ZanzyTHEbar/atm-go/internal"
	"github.com/spf13/cobra"
)

// CmdParams holds all dependencies needed by command handlers
type CmdParams struct {
	Config     *internal.Config
	ConfigFile string
	Logger     *internal.Logger
	Palette    []*cobra.Command
	Use        string
	Alias      string
	Short      string
	Long       string
}

// Init loads the configuration and sets up logging before any command runs.
// A Config or Logger that is already set is kept, which lets tests inject them.
func (p *CmdParams) Init(cfgFile, logLevel string, logOut io.Writer) error {
	if p.Config == nil || cfgFile != "" {
		cfg, err := internal.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		p.Config = cfg
		p.ConfigFile = cfgFile
	}

	if logLevel != "" {
		p.Config.Log.Level = logLevel
	}
	level, err := internal.ParseLogLevel(p.Config.Log.Level)
	if err != nil {
		return err
	}
	if p.Config.Debug {
		level = internal.LogLevelDebug
	}

	components, err := p.Config.LogComponents()
	if err != nil {
		return err
	}

	if p.Logger == nil {
		internal.InitGlobalLogger(internal.ConsoleWriter(logOut), level, internal.AllComponents)
		p.Logger = internal.GetLogger()
	}
	p.Logger.SetLevel(level)
	p.Logger.EnableOnly(components)
	p.Logger.Debug(internal.ComponentConfig, "Configuration loaded (file=%q)", p.ConfigFile)
	return nil
}
