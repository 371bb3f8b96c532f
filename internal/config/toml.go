// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Log        LogConfig         `toml:"log"`
	Analysis   AnalysisConfig    `toml:"analysis"`
	Categories map[string]string `toml:"categories"`
}

// LogConfig maps event-capture settings.
type LogConfig struct {
	Dir             *string `toml:"dir"`
	DefaultCategory *string `toml:"default-category"`
	LongDefinitions *bool   `toml:"long-definitions"`
}

// AnalysisConfig maps analysis settings.
type AnalysisConfig struct {
	OffLabel  *string  `toml:"off-label"`
	Window    *int     `toml:"window"`
	FilterOff *bool    `toml:"filter-off"`
	Cutoff    *float64 `toml:"cutoff"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// DefaultCategories returns the built-in activity categories, used when
// the config file does not define any.
func DefaultCategories() map[string]string {
	return map[string]string{
		"Coding":   "Coding, testing and debugging activities.",
		"Email":    "Reading and responding to email.",
		"Learning": "Learning activities like on-line courses, wiki pages, etc.",
		"LinkedIn": "Browsing or using LinkedIn.",
		"Meetings": "Attending a meeting in person or via video.",
		"Off":      "Out of the office.",
		"Other":    "Non-work related activities like lunch, Facebook, etc.",
		"Reviews":  "Code or design review activities.",
		"Slack":    "Using slack.",
		"Support":  "Working on tickets or directly with users.",
	}
}
