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

// Package cmd implements the startpage CLI commands.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/startpage/pkg/config"
	"github.com/cloudygreybeard/startpage/pkg/service"
	"github.com/cloudygreybeard/startpage/pkg/store"
	"github.com/cloudygreybeard/startpage/pkg/titles"

	// Import sources to trigger init() registration
	_ "github.com/cloudygreybeard/startpage/pkg/imports/chromium"
	_ "github.com/cloudygreybeard/startpage/pkg/imports/firefox"
	_ "github.com/cloudygreybeard/startpage/pkg/imports/netscape"
	_ "github.com/cloudygreybeard/startpage/pkg/imports/safari"
)

var (
	cfgFile   string
	storePath string
	verbose   bool
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "startpage",
	Short: "Manage a start-page dashboard of bookmark widgets",
	Long: `startpage manages the record store behind a personal start-page
dashboard: pages of widgets holding bookmarks and notes, kept in one
CSV file.

Widgets and bookmarks are deduplicated after every mutation that can
introduce duplicates: widgets merge by name within a page, bookmarks
by canonical URL within a widget.

Examples:
  startpage list-pages
  startpage list-widgets --page home
  startpage add-widget --page home --name News --column 2
  startpage add-bookmark --widget <id> --url example.com
  startpage import --source html --file bookmarks.html --new-page "From Chrome"
  startpage import --source firefox
  startpage dedupe
  startpage duplicates --page home`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ./startpage.yaml or ~/.startpage/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&storePath, "store", "s", "", "record store CSV file (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output to stderr")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("startpage %s (commit: %s, built: %s)\n", Version, Commit, Date))
}

// loadConfig resolves the config file path and loads it.
func loadConfig() (config.Config, error) {
	path := cfgFile
	if path == "" {
		path = config.LocalPath()
	}
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

// newService loads the config and wires the store and title resolver.
func newService() (*service.Service, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return newServiceWith(cfg)
}

// newServiceWith wires the store and title resolver from an
// already-loaded config and the persistent flags.
func newServiceWith(cfg config.Config) (*service.Service, error) {
	path := storePath
	if path == "" {
		path = cfg.Store.Path
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	logVerbose("Store: %s", st.Path())

	var resolver *titles.Resolver
	if cfg.Titles.Fetch {
		resolver = titles.New(time.Duration(cfg.Titles.TimeoutSeconds)*time.Second, cfg.Titles.UserAgent)
	}
	return service.New(st, resolver), nil
}

// logVerbose prints to stderr when --verbose is set.
func logVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
