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
	"regexp"

	"github.com/spf13/cobra"
)

// bulkSplitRE separates bulk URL input on newlines and commas.
var bulkSplitRE = regexp.MustCompile(`[\n,]+`)

var addBookmarkCmd = &cobra.Command{
	Use:   "add-bookmark",
	Short: "Add bookmarks to a widget",
	Long: `Adds one bookmark (--url, optional --name), or many at once
(--urls with newline- or comma-separated URLs). Unnamed bookmarks get
their page title fetched when --auto-titles is set and title fetching
is enabled in config; otherwise the URL's host is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		widgetID, _ := cmd.Flags().GetString("widget")
		url, _ := cmd.Flags().GetString("url")
		name, _ := cmd.Flags().GetString("name")
		bulk, _ := cmd.Flags().GetString("urls")
		autoTitles, _ := cmd.Flags().GetBool("auto-titles")

		svc, err := newService()
		if err != nil {
			return err
		}

		if url != "" {
			removed, err := svc.AddBookmark(cmd.Context(), widgetID, url, name)
			if err != nil {
				return err
			}
			fmt.Printf("dedupe_bookmarks=%d\n", removed)
		}

		if bulk != "" {
			var urls []string
			for _, part := range bulkSplitRE.Split(bulk, -1) {
				if part != "" {
					urls = append(urls, part)
				}
			}
			created, removed, err := svc.AddBookmarks(cmd.Context(), widgetID, urls, autoTitles)
			if err != nil {
				return err
			}
			fmt.Printf("created=%d dedupe_bookmarks=%d\n", created, removed)
		}

		if url == "" && bulk == "" {
			return fmt.Errorf("either --url or --urls is required")
		}
		return nil
	},
}

var addNoteCmd = &cobra.Command{
	Use:   "add-note",
	Short: "Add a note to a widget",
	RunE: func(cmd *cobra.Command, args []string) error {
		widgetID, _ := cmd.Flags().GetString("widget")
		text, _ := cmd.Flags().GetString("text")
		color, _ := cmd.Flags().GetString("color")
		svc, err := newService()
		if err != nil {
			return err
		}
		id, err := svc.AddNote(widgetID, text, color)
		if err != nil {
			return err
		}
		fmt.Printf("note=%s\n", id)
		return nil
	},
}

var deleteItemCmd = &cobra.Command{
	Use:   "delete-item",
	Short: "Delete a bookmark or note by ID",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		svc, err := newService()
		if err != nil {
			return err
		}
		return svc.DeleteItem(id)
	},
}

func init() {
	addBookmarkCmd.Flags().String("widget", "", "widget ID")
	addBookmarkCmd.Flags().String("url", "", "bookmark URL")
	addBookmarkCmd.Flags().String("name", "", "bookmark name (default: fetched or guessed title)")
	addBookmarkCmd.Flags().String("urls", "", "bulk URLs, separated by newlines or commas")
	addBookmarkCmd.Flags().Bool("auto-titles", false, "fetch page titles for bulk URLs")
	_ = addBookmarkCmd.MarkFlagRequired("widget")

	addNoteCmd.Flags().String("widget", "", "widget ID")
	addNoteCmd.Flags().String("text", "", "note text")
	addNoteCmd.Flags().String("color", "", "note color (e.g. #FEF3C7)")
	_ = addNoteCmd.MarkFlagRequired("widget")
	_ = addNoteCmd.MarkFlagRequired("text")

	deleteItemCmd.Flags().String("id", "", "item ID")
	_ = deleteItemCmd.MarkFlagRequired("id")

	rootCmd.AddCommand(addBookmarkCmd, addNoteCmd, deleteItemCmd)
}
