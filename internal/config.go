package internal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the ATM configuration
type Config struct {
	// HTTP surface
	Server struct {
		Addr            string `mapstructure:"addr"`             // e.g. ":8080"
		ShutdownTimeout string `mapstructure:"shutdown_timeout"` // e.g. "5s"
	} `mapstructure:"server"`

	// The sample account the session operates on
	Account struct {
		PIN            string  `mapstructure:"pin"`
		OpeningBalance float64 `mapstructure:"opening_balance"`
	} `mapstructure:"account"`

	Currency struct {
		Symbol string `mapstructure:"symbol"`
	} `mapstructure:"currency"`

	// Preset fast cash amounts
	FastCash []float64 `mapstructure:"fast_cash"`

	// Optional outcome event publishing; disabled when URL is empty
	NATS struct {
		URL           string `mapstructure:"url"`
		SubjectPrefix string `mapstructure:"subject_prefix"`
		User          string `mapstructure:"user"`
		Password      string `mapstructure:"password"`
		Token         string `mapstructure:"token"`
	} `mapstructure:"nats"`

	Log struct {
		Level string `mapstructure:"level"`
		// Components to log; empty logs all of them
		Components []string `mapstructure:"components"`
	} `mapstructure:"log"`

	// Debug mode
	Debug bool `mapstructure:"debug"`
}

// LoadConfig loads the configuration from defaults, an optional config file
// and ATM_ prefixed environment variables, in increasing priority.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	setDefaultConfig(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(DefaultConfigPath)
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		// It's okay if the config file doesn't exist
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix(DefaultEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the loaded configuration
func (c *Config) Validate() error {
	if c.Account.PIN == "" {
		return fmt.Errorf("account.pin must not be empty")
	}
	if c.Account.OpeningBalance < 0 {
		return fmt.Errorf("account.opening_balance must not be negative")
	}
	for _, amount := range c.FastCash {
		if amount <= 0 {
			return fmt.Errorf("fast_cash amounts must be positive, got %v", amount)
		}
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	if _, err := c.LogComponents(); err != nil {
		return err
	}
	return nil
}

// LogComponents resolves log.components, falling back to every component
func (c *Config) LogComponents() ([]Component, error) {
	if len(c.Log.Components) == 0 {
		return AllComponents, nil
	}
	components := make([]Component, 0, len(c.Log.Components))
	for _, name := range c.Log.Components {
		component, err := ParseComponent(name)
		if err != nil {
			return nil, err
		}
		components = append(components, component)
	}
	return components, nil
}

// setDefaultConfig sets default configuration values
func setDefaultConfig(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", "5s")

	v.SetDefault("account.pin", "12345")
	v.SetDefault("account.opening_balance", 100000)

	v.SetDefault("currency.symbol", "₨")
	v.SetDefault("fast_cash", []float64{1000, 2000, 5000, 10000, 20000, 25000})

	v.SetDefault("nats.url", "")
	v.SetDefault("nats.subject_prefix", "atm.events")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.components", []string{})

	v.SetDefault("debug", false)
}

// Settings flattens the configuration into dotted keys, hiding secrets
func (c *Config) Settings() map[string]interface{} {
	mask := func(s string) string {
		if s == "" {
			return ""
		}
		return "********"
	}
	return map[string]interface{}{
		"server.addr":             c.Server.Addr,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
		"account.pin":             mask(c.Account.PIN),
		"account.opening_balance": c.Account.OpeningBalance,
		"currency.symbol":         c.Currency.Symbol,
		"fast_cash":               c.FastCash,
		"nats.url":                c.NATS.URL,
		"nats.subject_prefix":     c.NATS.SubjectPrefix,
		"nats.user":               c.NATS.User,
		"nats.password":           mask(c.NATS.Password),
		"nats.token":              mask(c.NATS.Token),
		"log.level":               c.Log.Level,
		"log.components":          c.Log.Components,
		"debug":                   c.Debug,
	}
}
