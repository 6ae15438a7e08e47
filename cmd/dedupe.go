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

var dedupeCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Merge duplicate widgets and remove duplicate bookmarks",
	Long: `Runs both dedupe passes and saves the result.

Widgets merge when they share a page and a name (ignoring case and
surrounding whitespace); the merged widget keeps all items. Bookmarks
are duplicates within one widget when their URLs canonicalize to the
same key (ignoring case of scheme/host, default ports, trailing
slashes, and fragments); the first by order survives.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		rep, err := svc.Dedupe()
		if err != nil {
			return err
		}
		fmt.Println(formatReport(rep))
		return nil
	},
}

var duplicatesCmd = &cobra.Command{
	Use:   "duplicates",
	Short: "Report duplicate bookmarks across a page's widgets",
	RunE: func(cmd *cobra.Command, args []string) error {
		pageID, _ := cmd.Flags().GetString("page")
		svc, err := newService()
		if err != nil {
			return err
		}
		groups, err := svc.Duplicates(pageID)
		if err != nil {
			return err
		}
		if len(groups) == 0 {
			fmt.Println("No duplicates found.")
			return nil
		}
		for _, g := range groups {
			fmt.Printf("%s (%d entries)\n", g.Display, len(g.Entries))
			for _, e := range g.Entries {
				fmt.Printf("  %s\t[%s]\t%s\n", e.ID, e.Widget, e.URL)
			}
		}
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Add starter widgets when the store is empty",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		seeded, err := svc.Seed()
		if err != nil {
			return err
		}
		if seeded {
			fmt.Println("Seeded starter widgets.")
		} else {
			fmt.Println("Store already has widgets; nothing to do.")
		}
		return nil
	},
}

func init() {
	duplicatesCmd.Flags().String("page", "", "page ID")
	_ = duplicatesCmd.MarkFlagRequired("page")

	rootCmd.AddCommand(dedupeCmd, duplicatesCmd, seedCmd)
}
