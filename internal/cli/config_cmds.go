package cli

import (
	"encoding/json"
	"fmt"

	"github.com/avahidi/studytrack/internal/config"
)

// ConfigCmd groups configuration inspection commands.
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" help:"Show the effective configuration"`
	Path     ConfigPathCmd     `cmd:"" help:"Show which config file is in use"`
	Generate ConfigGenerateCmd `cmd:"" help:"Print a sample configuration file"`
}

// ConfigShowCmd prints the effective configuration.
type ConfigShowCmd struct{}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config
	if globals.Format == "ndjson" {
		return json.NewEncoder(globals.Stdout).Encode(map[string]interface{}{
			"type":   "config",
			"format": cfg.Format,
			"quiet":  cfg.Quiet,
			"defaults": map[string]interface{}{
				"subject":   cfg.Defaults.Subject,
				"time_zone": cfg.Defaults.TimeZone,
				"data_dir":  cfg.Defaults.DataDir,
				"csv_dir":   cfg.Defaults.CSVDir,
				"db_file":   cfg.Defaults.DBFile,
			},
		})
	}

	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	fmt.Fprintf(globals.Stdout, "  format: %s\n", cfg.Format)
	fmt.Fprintf(globals.Stdout, "  quiet: %v\n", cfg.Quiet)
	fmt.Fprintf(globals.Stdout, "  verbose: %v\n", cfg.Verbose)
	fmt.Fprintln(globals.Stdout, "  Defaults:")
	fmt.Fprintf(globals.Stdout, "    subject: %s\n", cfg.Defaults.Subject)
	fmt.Fprintf(globals.Stdout, "    time_zone: %s\n", cfg.Defaults.TimeZone)
	fmt.Fprintf(globals.Stdout, "    data_dir: %s\n", cfg.Defaults.DataDir)
	fmt.Fprintf(globals.Stdout, "    csv_dir: %s\n", cfg.Defaults.CSVDir)
	fmt.Fprintf(globals.Stdout, "    db_file: %s\n", cfg.Defaults.DBFile)
	return nil
}

// ConfigPathCmd reports the config file in use.
type ConfigPathCmd struct{}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := config.ConfigFile()
	if globals.Format == "ndjson" {
		return json.NewEncoder(globals.Stdout).Encode(map[string]interface{}{
			"type": "config_path",
			"path": path,
		})
	}
	if path == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found (using defaults)")
		return nil
	}
	fmt.Fprintf(globals.Stdout, "Config file: %s\n", path)
	return nil
}

// ConfigGenerateCmd prints a sample configuration file.
type ConfigGenerateCmd struct{}

// Run executes the config generate command
func (c *ConfigGenerateCmd) Run(globals *Globals) error {
	cfg := config.Default()
	sample := fmt.Sprintf(`# studytrack configuration file
# Place at ~/.studytrack.yaml or ./studytrack.yaml

# Output format: text or ndjson
format: %s

# Suppress non-essential output
quiet: false

# Enable verbose debug logging
verbose: false

defaults:
  # Subject used by 'start' when none is given
  subject: ""
  # IANA timezone sessions are stamped in
  time_zone: %s
  # Directory holding the state file and totals database
  data_dir: %s
  # Directory holding the monthly CSV journal
  csv_dir: %s
  # Totals database file name inside data_dir
  db_file: %s
`, cfg.Format, cfg.Defaults.TimeZone, cfg.Defaults.DataDir, cfg.Defaults.CSVDir, cfg.Defaults.DBFile)
	_, err := fmt.Fprint(globals.Stdout, sample)
	return err
}
