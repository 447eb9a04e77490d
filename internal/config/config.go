// Package config loads fairrps settings from an optional HCL file.
//
//	game {
//	  key_bits      = 256
//	  input_timeout = "30s"
//	}
//
//	log {
//	  level = "warn"
//	  file  = "fairrps.log"
//	}
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/fairrps/internal/commit"
)

// Config is the complete configuration.
type Config struct {
	Game GameSettings
	Log  LogSettings
}

// fileConfig mirrors Config with optional blocks.
type fileConfig struct {
	Game *GameSettings `hcl:"game,block"`
	Log  *LogSettings  `hcl:"log,block"`
}

// GameSettings controls the commitment protocol and prompt.
type GameSettings struct {
	KeyBits      int    `hcl:"key_bits,optional"`
	InputTimeout string `hcl:"input_timeout,optional"`
	Seed         int64  `hcl:"seed,optional"`
}

// LogSettings controls diagnostic logging. Game output is never logged.
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Game: GameSettings{
			KeyBits: commit.DefaultKeyBits,
		},
		Log: LogSettings{
			Level: "warn",
		},
	}
}

// Load reads filename. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	var cfg Config
	if fc.Game != nil {
		cfg.Game = *fc.Game
	}
	if fc.Log != nil {
		cfg.Log = *fc.Log
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Game.KeyBits == 0 {
		c.Game.KeyBits = commit.DefaultKeyBits
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if err := commit.ValidateKeyBits(c.Game.KeyBits); err != nil {
		return fmt.Errorf("invalid key_bits: %w", err)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return nil
}

// Timeout parses the input timeout. Zero means wait forever.
func (c *Config) Timeout() (time.Duration, error) {
	if c.Game.InputTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Game.InputTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid input_timeout %q: %w", c.Game.InputTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid input_timeout %q: must not be negative", c.Game.InputTimeout)
	}
	return d, nil
}
