package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Unknown command policies
const (
	PolicyIgnore = "ignore"
	PolicyReject = "reject"
)

// Config holds all configuration for the application
type Config struct {
	Log        LogConfig        `mapstructure:"log"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Events     EventsConfig     `mapstructure:"events"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SimulationConfig holds mower replay settings
type SimulationConfig struct {
	Parallel        bool   `mapstructure:"parallel"`
	Workers         int    `mapstructure:"workers"`
	UnknownCommands string `mapstructure:"unknown_commands"`
}

// EventsConfig controls the event logging subscriber
type EventsConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Level   string   `mapstructure:"level"`
	Filter  []string `mapstructure:"filter"`
	DevMode bool     `mapstructure:"dev_mode"`
}

// StrictCommands reports whether unknown commands abort the run
func (s SimulationConfig) StrictCommands() bool {
	return s.UnknownCommands == PolicyReject
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
	mu  sync.RWMutex
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")

	v.SetDefault("simulation.parallel", false)
	v.SetDefault("simulation.workers", 4)
	v.SetDefault("simulation.unknown_commands", PolicyIgnore)

	v.SetDefault("events.enabled", false)
	v.SetDefault("events.level", "debug")
	v.SetDefault("events.filter", []string{})
	v.SetDefault("events.dev_mode", false)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("mowitnow")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/mowitnow")
	}

	v.SetEnvPrefix("MOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// An explicitly requested file must exist; default locations are optional
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configPath != "" {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(next); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	mu.Lock()
	cfg = next
	mu.Unlock()
	return nil
}

// Get returns the current config. The returned value is never modified;
// reloads and Set replace it.
func Get() *Config {
	mu.RLock()
	c := cfg
	mu.RUnlock()
	if c == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
		return Get()
	}
	return c
}

// Set allows runtime config updates, e.g. from command line flags
func Set(key string, value interface{}) error {
	v.Set(key, value)
	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(next); err != nil {
		return err
	}
	mu.Lock()
	cfg = next
	mu.Unlock()
	return nil
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file. Invalid edits are
// reported through onError and the previous config stays active.
func WatchConfig(onChange func(*Config), onError func(error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		err := v.Unmarshal(next)
		if err == nil {
			err = Validate(next)
		}
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("reloading %s: %w", e.Name, err))
			}
			return
		}
		mu.Lock()
		cfg = next
		mu.Unlock()
		if onChange != nil {
			onChange(next)
		}
	})
	v.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json")
	}

	if c.Simulation.Workers <= 0 {
		return fmt.Errorf("simulation.workers must be positive")
	}
	switch c.Simulation.UnknownCommands {
	case PolicyIgnore, PolicyReject:
	default:
		return fmt.Errorf("simulation.unknown_commands must be %s or %s", PolicyIgnore, PolicyReject)
	}

	switch c.Events.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("events.level must be one of debug, info, warn, error")
	}

	return nil
}
