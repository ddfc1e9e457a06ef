// Package config loads optional defaults from a legible.toml file. Values
// from the file sit below command-line flags: a flag set explicitly always
// wins.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/legible/internal/colour"
	"github.com/jmylchreest/legible/internal/report"
)

// FileName is the configuration file looked up in the working directory
// and in the user config directory.
const FileName = "legible.toml"

// Config carries the tool defaults.
type Config struct {
	// Mode is the perceptual-change policy: strict, default or relaxed.
	Mode string `toml:"mode"`
	// Premium targets WCAG AAA instead of AA.
	Premium bool `toml:"premium"`
	// LargeText applies the WCAG large-text thresholds.
	LargeText bool `toml:"large-text"`
	// Format is the report format: text, json or html.
	Format string `toml:"format"`
	// Background is assumed for stylesheet rules that declare a text
	// colour but no background-color.
	Background string `toml:"background"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{Background: "#ffffff"}
}

// Load reads configuration from path. When path is empty the working
// directory and the user config directory are searched; a missing file is
// not an error and yields the defaults. An explicit path must exist.
func Load(path string) (Config, error) {
	if path != "" {
		return loadFile(path)
	}

	for _, candidate := range searchPaths() {
		cfg, err := loadFile(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return cfg, err
	}
	return Default(), nil
}

func searchPaths() []string {
	paths := []string{FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "legible", FileName))
	}
	return paths
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), err
	}

	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if _, err := colour.ParseMode(c.Mode); err != nil {
		return err
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		return err
	}
	if c.Background != "" {
		if _, _, err := colour.Parse(c.Background); err != nil {
			return fmt.Errorf("background: %w", err)
		}
	}
	return nil
}

// TuneOptions converts the configured defaults into engine options.
func (c Config) TuneOptions() colour.Options {
	// validate ran at load time, so the mode parses.
	mode, _ := colour.ParseMode(c.Mode)
	return colour.Options{
		LargeText: c.LargeText,
		Premium:   c.Premium,
		Mode:      mode,
	}
}

// ReportFormat converts the configured format name.
func (c Config) ReportFormat() report.Format {
	f, _ := report.ParseFormat(c.Format)
	return f
}
