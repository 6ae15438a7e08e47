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
)

var listPagesCmd = &cobra.Command{
	Use:   "list-pages",
	Short: "List pages",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		pages, err := svc.Pages()
		if err != nil {
			return err
		}
		for _, p := range pages {
			fmt.Printf("%s\t%s\n", p.ID, p.Name)
		}
		return nil
	},
}

var addPageCmd = &cobra.Command{
	Use:   "add-page",
	Short: "Add a page",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		svc, err := newService()
		if err != nil {
			return err
		}
		id, err := svc.AddPage(name)
		if err != nil {
			return err
		}
		fmt.Printf("page=%s\n", id)
		return nil
	},
}

var renamePageCmd = &cobra.Command{
	Use:   "rename-page",
	Short: "Rename a page",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		name, _ := cmd.Flags().GetString("name")
		svc, err := newService()
		if err != nil {
			return err
		}
		return svc.RenamePage(id, name)
	},
}

var deletePageCmd = &cobra.Command{
	Use:   "delete-page",
	Short: "Delete a page and everything on it",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		svc, err := newService()
		if err != nil {
			return err
		}
		return svc.DeletePage(id)
	},
}

func init() {
	addPageCmd.Flags().String("name", "", "page name")
	_ = addPageCmd.MarkFlagRequired("name")

	renamePageCmd.Flags().String("id", "", "page ID")
	renamePageCmd.Flags().String("name", "", "new name")
	_ = renamePageCmd.MarkFlagRequired("id")
	_ = renamePageCmd.MarkFlagRequired("name")

	deletePageCmd.Flags().String("id", "", "page ID")
	_ = deletePageCmd.MarkFlagRequired("id")

	rootCmd.AddCommand(listPagesCmd, addPageCmd, renamePageCmd, deletePageCmd)
}
