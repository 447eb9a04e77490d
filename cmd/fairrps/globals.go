package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/lox/fairrps/internal/config"
)

// Globals are flags shared by every command.
type Globals struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Config  string           `help:"HCL config file" type:"path" default:"fairrps.hcl" env:"FAIRRPS_CONFIG"`
	Debug   bool             `help:"Enable debug logging"`
	LogFile string           `help:"Write logs to this file instead of stderr"`
	NoColor bool             `help:"Disable colours"`
}

// setup loads the config file and builds the logger. The returned func
// closes any log file.
func (g *Globals) setup(streams *Streams) (*config.Config, *log.Logger, func(), error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, nil, err
	}

	if g.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, nil, err
	}
	if g.Debug {
		level = log.DebugLevel
	}

	file := cfg.Log.File
	if g.LogFile != "" {
		file = g.LogFile
	}

	var w io.Writer = streams.Err
	cleanup := func() {}
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		cleanup = func() {
			if err := f.Close(); err != nil {
				fmt.Fprintf(streams.Err, "failed to close log file: %v\n", err)
			}
		}
	}

	return cfg, newLogger(w, level), cleanup, nil
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
		Prefix:          "fairrps",
	})
}
