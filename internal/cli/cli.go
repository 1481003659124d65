// Package cli implements the studytrack command tree.
package cli

import (
	"io"
	"os"

	"github.com/avahidi/studytrack/internal/config"
)

// CLI is the top-level kong command tree.
type CLI struct {
	Format  string `help:"Output format: text or ndjson" enum:"text,ndjson" default:"${config_format}"`
	Quiet   bool   `help:"Suppress non-essential output"`
	Verbose bool   `help:"Enable verbose debug logging"`

	Start   StartCmd   `cmd:"" help:"Start tracking a study session"`
	Pause   PauseCmd   `cmd:"" help:"Pause the active session"`
	Resume  ResumeCmd  `cmd:"" help:"Resume the paused session"`
	Stop    StopCmd    `cmd:"" help:"Stop the active session and record it"`
	Discard DiscardCmd `cmd:"" help:"Abandon the active session without recording it"`
	Reset   ResetCmd   `cmd:"" help:"Clear a stopped session that was kept with --no-save"`
	Status  StatusCmd  `cmd:"" help:"Show the active session and its durations"`
	Report  ReportCmd  `cmd:"" help:"Show accumulated totals per subject"`
	Rename  RenameCmd  `cmd:"" help:"Rename a subject in the totals database"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a subject from the totals database"`
	Clear   ClearCmd   `cmd:"" help:"Delete every subject from the totals database"`
	UI      UICmd      `cmd:"" name:"ui" help:"Live timer for the active session"`
	Config  ConfigCmd  `cmd:"" help:"Inspect or generate configuration"`
}

// Globals carries resolved global options into command Run methods.
type Globals struct {
	Format  string
	Quiet   bool
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config

	logger *debugLogger
}

// NewGlobalsWithConfig builds Globals from parsed flags, falling back
// to configuration values where no flag was given.
func NewGlobalsWithConfig(c *CLI, cfg *config.Config) *Globals {
	g := &Globals{
		Format:  c.Format,
		Quiet:   c.Quiet || cfg.Quiet,
		Verbose: c.Verbose || cfg.Verbose,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Config:  cfg,
	}
	if g.Format == "" {
		g.Format = cfg.Format
	}
	g.logger = newDebugLogger(g)
	return g
}

// Debug logs a verbose diagnostic line.
func (g *Globals) Debug(format string, args ...interface{}) {
	if g.logger != nil {
		g.logger.Debug(format, args...)
	}
}
