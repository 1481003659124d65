package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/avahidi/studytrack/internal/cli"
	"github.com/avahidi/studytrack/internal/config"
)

const quickStart = `studytrack - study session tracking from the command line

Quick start:
  studytrack start "Math"               Start tracking a subject
  studytrack pause                      Pause the running session
  studytrack resume                     Pick it back up
  studytrack stop                       Stop and record the session
  studytrack report                     Accumulated totals per subject

For help:
  studytrack --help                     All commands and flags
`

func main() {
	// Show quick start if no args provided
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	// Load configuration from files/environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Apply config defaults before parsing
	// These will be overridden by CLI flags if specified
	vars := kong.Vars{
		"config_format": cfg.Format,
	}

	ctx := kong.Parse(&c,
		kong.Name("studytrack"),
		kong.Description("Track study sessions with pause/resume bookkeeping and per-subject totals"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	// Create globals with config fallbacks
	globals := cli.NewGlobalsWithConfig(&c, cfg)
	err = ctx.Run(globals)
	if err != nil {
		os.Exit(1)
	}
}
