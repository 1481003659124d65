// Package config loads studytrack configuration from files and the
// environment.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format"`
	Quiet   bool   `mapstructure:"quiet"`
	Verbose bool   `mapstructure:"verbose"`

	// Default values for commands
	Defaults DefaultsConfig `mapstructure:"defaults"`
}

// DefaultsConfig holds default values for various commands
type DefaultsConfig struct {
	// Subject used by `start` when none is given
	Subject string `mapstructure:"subject"`
	// IANA timezone name sessions are stamped in
	TimeZone string `mapstructure:"time_zone"`
	// Directory holding the active-session state file and the totals db
	DataDir string `mapstructure:"data_dir"`
	// Directory holding the monthly CSV journal
	CSVDir string `mapstructure:"csv_dir"`
	// Totals database file name inside DataDir
	DBFile string `mapstructure:"db_file"`
}

// Default returns a Config with default values
func Default() *Config {
	dataDir := ".studytrack"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".studytrack")
	}
	return &Config{
		Format: "text",
		Defaults: DefaultsConfig{
			TimeZone: "Local",
			DataDir:  dataDir,
			CSVDir:   filepath.Join(dataDir, "journal"),
			DBFile:   "totals.db",
		},
	}
}

// DBPath returns the full path of the totals database.
func (c *Config) DBPath() string {
	return filepath.Join(c.Defaults.DataDir, c.Defaults.DBFile)
}

// StatePath returns the full path of the active-session state file.
func (c *Config) StatePath() string {
	return filepath.Join(c.Defaults.DataDir, "active.json")
}

// Load loads configuration from files and environment
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("studytrack")
	v.SetConfigType("yaml")

	// Config paths in order of precedence, lowest first
	v.AddConfigPath("/etc/studytrack/")
	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "studytrack"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.SetConfigName(".studytrack")
	}
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("STUDYTRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.BindEnv("format", "STUDYTRACK_FORMAT")
	v.BindEnv("quiet", "STUDYTRACK_QUIET")
	v.BindEnv("verbose", "STUDYTRACK_VERBOSE")
	v.BindEnv("defaults.subject", "STUDYTRACK_SUBJECT")
	v.BindEnv("defaults.time_zone", "STUDYTRACK_TIME_ZONE")
	v.BindEnv("defaults.data_dir", "STUDYTRACK_DATA_DIR")

	// Set defaults
	cfg := Default()
	v.SetDefault("format", cfg.Format)
	v.SetDefault("quiet", cfg.Quiet)
	v.SetDefault("verbose", cfg.Verbose)
	v.SetDefault("defaults.time_zone", cfg.Defaults.TimeZone)
	v.SetDefault("defaults.data_dir", cfg.Defaults.DataDir)
	v.SetDefault("defaults.csv_dir", cfg.Defaults.CSVDir)
	v.SetDefault("defaults.db_file", cfg.Defaults.DBFile)

	// Try to read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error occurred
			return nil, err
		}
		// Config file not found; use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFile returns the path to the config file that was loaded
func ConfigFile() string {
	v := viper.New()

	v.SetConfigName("studytrack")
	v.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err == nil {
		return v.ConfigFileUsed()
	}

	// Try the dotfile form
	v.SetConfigName(".studytrack")
	if err := v.ReadInConfig(); err == nil {
		return v.ConfigFileUsed()
	}

	return ""
}
