package internal

import (
	"os"
	"path/filepath"
)

var (
	DefaultAppName          = "atm"
	DefaultAppCMDShortCut   = "atm"
	DefaultEnvPrefix        = "ATM"
	DefaultConfigFolderName = DefaultAppName
	DefaultConfigPath       = filepath.Join(os.Getenv("HOME"), ".config", DefaultConfigFolderName)
)
