// Copyright 2026 cloudygreybeard
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration loading and management.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the full configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store"`
	Import ImportConfig `yaml:"import"`
	Titles TitlesConfig `yaml:"titles"`
}

// StoreConfig configures the record store.
type StoreConfig struct {
	// Path is the CSV file holding all records.
	Path string `yaml:"path"`
}

// ImportConfig configures bookmark imports.
type ImportConfig struct {
	// StartColumn is the default column the widget round-robin starts
	// at when importing.
	StartColumn int `yaml:"start_column"`
}

// TitlesConfig configures the page-title resolver.
type TitlesConfig struct {
	// Fetch enables fetching titles over HTTP for bookmarks added
	// without a name.
	Fetch bool `yaml:"fetch"`

	// TimeoutSeconds bounds each title fetch.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"user_agent"`
}

// Default returns a configuration with sensible defaults.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Path: "bookmarks.csv",
		},
		Import: ImportConfig{
			StartColumn: 1,
		},
		Titles: TitlesConfig{
			Fetch:          true,
			TimeoutSeconds: 5,
		},
	}
}

// Load reads configuration from a file, merging with defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".startpage", "config.yaml")
}

// LocalPath returns a local config file path if it exists.
func LocalPath() string {
	paths := []string{
		"startpage.yaml",
		"startpage.yml",
		".startpage.yaml",
		".startpage.yml",
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
