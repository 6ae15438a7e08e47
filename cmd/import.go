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

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/startpage/pkg/imports"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import bookmarks from a file or browser",
	Long: `Imports bookmarks from a registered source onto a page.

Sources:
  html       Netscape bookmarks.html export (requires --file)
  chrome, edge, chromium, brave
             Browser's Bookmarks JSON (default profile, or --file)
  firefox    places.sqlite (first profile found, or --file)
  safari     Bookmarks.plist (macOS, or --file)

Folders become widgets, round-robining across columns from
--column-start. Links outside any folder go to an "Imported Links"
widget. Without --page a new page is created, named --new-page, the
document title, or "Imported". A full dedupe pass runs after every
import.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		source, _ := cmd.Flags().GetString("source")
		file, _ := cmd.Flags().GetString("file")
		pageID, _ := cmd.Flags().GetString("page")
		newPage, _ := cmd.Flags().GetString("new-page")
		columnStart, _ := cmd.Flags().GetInt("column-start")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("column-start") && cfg.Import.StartColumn > 0 {
			columnStart = cfg.Import.StartColumn
		}

		svc, err := newServiceWith(cfg)
		if err != nil {
			return err
		}
		res, rep, err := svc.Import(cmd.Context(), source, file, imports.Options{
			PageID:      pageID,
			PageName:    newPage,
			StartColumn: columnStart,
		})
		if err != nil {
			return err
		}
		if res.Title != "" {
			logVerbose("Document title: %s", res.Title)
		}
		fmt.Printf("Imported page=%s widgets=%d bookmarks=%d | dedupe_widgets=%d dedupe_bookmarks=%d\n",
			res.PageID, res.WidgetsCreated, res.BookmarksCreated, rep.WidgetsRemoved, rep.BookmarksRemoved)
		return nil
	},
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List registered import sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range imports.List() {
			src, _ := imports.Get(name)
			status := "requires --file"
			if src.Available() {
				status = "available: " + src.Path()
			}
			fmt.Printf("  %-10s %-22s [%s]\n", name, src.DisplayName(), status)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().String("source", "html", "import source (see 'startpage sources')")
	importCmd.Flags().String("file", "", "path to the source file (default: source's own location)")
	importCmd.Flags().String("page", "", "existing page ID (if omitted, creates a new page)")
	importCmd.Flags().String("new-page", "", "name for the new page (if creating)")
	importCmd.Flags().Int("column-start", 1, "column the widget round-robin starts at (1-6)")

	rootCmd.AddCommand(importCmd, sourcesCmd)
}
