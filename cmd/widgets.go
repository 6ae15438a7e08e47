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

	"github.com/cloudygreybeard/startpage/pkg/dedupe"
)

var listWidgetsCmd = &cobra.Command{
	Use:   "list-widgets",
	Short: "List widgets for a page",
	RunE: func(cmd *cobra.Command, args []string) error {
		pageID, _ := cmd.Flags().GetString("page")
		svc, err := newService()
		if err != nil {
			return err
		}
		widgets, err := svc.Widgets(pageID)
		if err != nil {
			return err
		}
		for _, w := range widgets {
			fmt.Printf("%s\tcol %d\t%s\t(%d bookmarks)\n", w.ID, w.Column, w.Name, w.BookmarkCount)
		}
		return nil
	},
}

var addWidgetCmd = &cobra.Command{
	Use:   "add-widget",
	Short: "Add a widget",
	RunE: func(cmd *cobra.Command, args []string) error {
		pageID, _ := cmd.Flags().GetString("page")
		name, _ := cmd.Flags().GetString("name")
		column, _ := cmd.Flags().GetInt("column")
		svc, err := newService()
		if err != nil {
			return err
		}
		id, rep, err := svc.AddWidget(pageID, name, column)
		if err != nil {
			return err
		}
		fmt.Printf("widget=%s %s\n", id, formatReport(rep))
		return nil
	},
}

var renameWidgetCmd = &cobra.Command{
	Use:   "rename-widget",
	Short: "Rename a widget",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		name, _ := cmd.Flags().GetString("name")
		svc, err := newService()
		if err != nil {
			return err
		}
		rep, err := svc.RenameWidget(id, name)
		if err != nil {
			return err
		}
		fmt.Println(formatReport(rep))
		return nil
	},
}

var deleteWidgetCmd = &cobra.Command{
	Use:   "delete-widget",
	Short: "Delete a widget and its items",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		svc, err := newService()
		if err != nil {
			return err
		}
		return svc.DeleteWidget(id)
	},
}

var moveWidgetCmd = &cobra.Command{
	Use:   "move-widget",
	Short: "Move a widget to another page or column",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		pageID, _ := cmd.Flags().GetString("page")
		column, _ := cmd.Flags().GetInt("column")
		svc, err := newService()
		if err != nil {
			return err
		}
		rep, err := svc.MoveWidget(id, pageID, column)
		if err != nil {
			return err
		}
		fmt.Println(formatReport(rep))
		return nil
	},
}

var copyWidgetCmd = &cobra.Command{
	Use:   "copy-widget",
	Short: "Copy a widget and its items to another page or column",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		pageID, _ := cmd.Flags().GetString("page")
		column, _ := cmd.Flags().GetInt("column")
		svc, err := newService()
		if err != nil {
			return err
		}
		newID, rep, err := svc.CopyWidget(id, pageID, column)
		if err != nil {
			return err
		}
		fmt.Printf("widget=%s %s\n", newID, formatReport(rep))
		return nil
	},
}

func formatReport(rep dedupe.Report) string {
	return fmt.Sprintf("dedupe_widgets=%d dedupe_bookmarks=%d", rep.WidgetsRemoved, rep.BookmarksRemoved)
}

func init() {
	listWidgetsCmd.Flags().String("page", "", "page ID")
	_ = listWidgetsCmd.MarkFlagRequired("page")

	addWidgetCmd.Flags().String("page", "", "page ID")
	addWidgetCmd.Flags().String("name", "", "widget name")
	addWidgetCmd.Flags().Int("column", 1, "column (1-6)")
	_ = addWidgetCmd.MarkFlagRequired("page")
	_ = addWidgetCmd.MarkFlagRequired("name")

	renameWidgetCmd.Flags().String("id", "", "widget ID")
	renameWidgetCmd.Flags().String("name", "", "new name")
	_ = renameWidgetCmd.MarkFlagRequired("id")
	_ = renameWidgetCmd.MarkFlagRequired("name")

	deleteWidgetCmd.Flags().String("id", "", "widget ID")
	_ = deleteWidgetCmd.MarkFlagRequired("id")

	moveWidgetCmd.Flags().String("id", "", "widget ID")
	moveWidgetCmd.Flags().String("page", "", "target page ID")
	moveWidgetCmd.Flags().Int("column", 1, "target column (1-6)")
	_ = moveWidgetCmd.MarkFlagRequired("id")
	_ = moveWidgetCmd.MarkFlagRequired("page")

	copyWidgetCmd.Flags().String("id", "", "widget ID")
	copyWidgetCmd.Flags().String("page", "", "target page ID")
	copyWidgetCmd.Flags().Int("column", 1, "target column (1-6)")
	_ = copyWidgetCmd.MarkFlagRequired("id")
	_ = copyWidgetCmd.MarkFlagRequired("page")

	rootCmd.AddCommand(listWidgetsCmd, addWidgetCmd, renameWidgetCmd, deleteWidgetCmd, moveWidgetCmd, copyWidgetCmd)
}
