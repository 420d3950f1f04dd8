// Package config loads the YAML settings of the variants CLI.
package config

import (
	"errors"
	"fmt"
	"os"

	"japanesevariants/charform"
	"japanesevariants/logger"
	"japanesevariants/script"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration.
type Config struct {
	Language          string            `yaml:"language"`
	Dictionary        string            `yaml:"dictionary"`
	Workers           int               `yaml:"workers"`
	LogLevel          string            `yaml:"log_level"`
	LogFormat         string            `yaml:"log_format"`
	LogsDir           string            `yaml:"logs_dir"`
	HistoryDB         string            `yaml:"history_db"`
	SuggestionInPlace bool              `yaml:"suggestion_in_place"`
	Alternatives      []string          `yaml:"alternatives"`
	Forms             map[string]string `yaml:"forms"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Language:   "en",
		Dictionary: "ipa",
		Workers:    4,
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// Load reads path over the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	switch c.Dictionary {
	case "ipa", "uni":
	default:
		errs = append(errs, fmt.Errorf("dictionary must be ipa or uni, got %q", c.Dictionary))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}
	if _, err := c.AlternativeCategories(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Baseline(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// AlternativeCategories parses Alternatives.
func (c Config) AlternativeCategories() ([]script.Category, error) {
	out := make([]script.Category, 0, len(c.Alternatives))
	for _, name := range c.Alternatives {
		cat, err := variantCategory(name)
		if err != nil {
			return nil, fmt.Errorf("alternatives: %w", err)
		}
		out = append(out, cat)
	}
	return out, nil
}

// Baseline parses Forms into baseline overrides for the preference store.
func (c Config) Baseline() (charform.Forms, error) {
	out := charform.Forms{}
	for name, value := range c.Forms {
		cat, err := variantCategory(name)
		if err != nil {
			return nil, fmt.Errorf("forms: %w", err)
		}
		form, err := script.ParseForm(value)
		if err != nil {
			return nil, fmt.Errorf("forms.%s: %w", name, err)
		}
		out[cat] = form
	}
	return out, nil
}

func variantCategory(name string) (script.Category, error) {
	cat, err := script.ParseCategory(name)
	if err != nil {
		return cat, err
	}
	if !cat.HasVariants() {
		return cat, fmt.Errorf("category %s has no width variants", cat)
	}
	return cat, nil
}
