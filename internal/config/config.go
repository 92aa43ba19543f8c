package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Episode EpisodeConfig `mapstructure:"episode"`
	Replay  ReplayConfig  `mapstructure:"replay"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EpisodeConfig holds the defaults for simulated episodes
type EpisodeConfig struct {
	Env        string `mapstructure:"env"`
	Seed       int64  `mapstructure:"seed"`
	NumPlayers int    `mapstructure:"num_players"`
}

// ReplayConfig holds trajectory buffering and persistence settings
type ReplayConfig struct {
	BufferCapacity int    `mapstructure:"buffer_capacity"`
	BatchSize      int    `mapstructure:"batch_size"`
	Dir            string `mapstructure:"dir"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	// Episode defaults
	v.SetDefault("episode.env", "leduc-holdem")
	v.SetDefault("episode.seed", 42)
	v.SetDefault("episode.num_players", 2)

	// Replay defaults
	v.SetDefault("replay.buffer_capacity", 10000)
	v.SetDefault("replay.batch_size", 256)
	v.SetDefault("replay.dir", "trajectories")
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	// Set defaults before loading any config
	setViperDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/cardgym")
	}

	// Set environment variable prefix
	v.SetEnvPrefix("CARDGYM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if configPath != "" {
			// Specific file requested but not found - that's ok, use defaults
		} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// For default locations, only ignore ConfigFileNotFoundError
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; use defaults
	}

	// Unmarshal into config struct
	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// Validate configuration
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	// Re-unmarshal to update struct
	v.Unmarshal(cfg)
}

// GetString gets a string value from config
func GetString(key string) string {
	return v.GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return v.GetInt(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file
func WatchConfig(onChange func()) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		// Re-unmarshal on change
		v.Unmarshal(cfg)
		if onChange != nil {
			onChange()
		}
	})
}

// Validate validates the configuration values
func Validate(c *Config) error {
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of trace, debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json")
	}

	if c.Episode.Env == "" {
		return fmt.Errorf("episode.env must not be empty")
	}
	if c.Episode.NumPlayers < 1 {
		return fmt.Errorf("episode.num_players must be positive")
	}

	if c.Replay.BufferCapacity <= 0 {
		return fmt.Errorf("replay.buffer_capacity must be positive")
	}
	if c.Replay.BatchSize <= 0 {
		return fmt.Errorf("replay.batch_size must be positive")
	}
	if c.Replay.Dir == "" {
		return fmt.Errorf("replay.dir must not be empty")
	}

	return nil
}
