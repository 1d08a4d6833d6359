// Package config loads the application configuration from an HCL file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete application configuration.
type Config struct {
	SavePath   string              `hcl:"save_path,optional"`
	LogLevel   string              `hcl:"log_level,optional"`
	Commentary *CommentarySettings `hcl:"commentary,block"`
}

// CommentarySettings tunes the table-talk observer.
type CommentarySettings struct {
	Enabled     bool  `hcl:"enabled,optional"`
	LeadMargins []int `hcl:"lead_margins,optional"`
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(baseDir(), "config.hcl")
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".barbu"
	}
	return filepath.Join(home, ".barbu")
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		SavePath: filepath.Join(baseDir(), "game.json"),
		LogLevel: "info",
		Commentary: &CommentarySettings{
			Enabled:     true,
			LeadMargins: []int{100, 200, 300},
		},
	}
}

// Load reads configuration from an HCL file, falling back to defaults when
// the file does not exist. Missing fields are filled with defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	def := Default()
	if cfg.SavePath == "" {
		cfg.SavePath = def.SavePath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = def.LogLevel
	}
	if cfg.Commentary == nil {
		cfg.Commentary = def.Commentary
	} else if len(cfg.Commentary.LeadMargins) == 0 {
		cfg.Commentary.LeadMargins = def.Commentary.LeadMargins
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for nonsensical values.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	for _, m := range c.Commentary.LeadMargins {
		if m <= 0 {
			return fmt.Errorf("lead margins must be positive, got %d", m)
		}
	}
	return nil
}
