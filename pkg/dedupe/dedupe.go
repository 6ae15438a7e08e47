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

// Package dedupe merges duplicate widgets and duplicate bookmarks.
//
// Both passes are idempotent transforms over the in-memory collection;
// they never touch storage. Run applies the widget pass before the
// bookmark pass because merging widgets can bring fresh bookmark
// duplicates together.
package dedupe

import (
	"sort"
	"strings"

	"github.com/cloudygreybeard/startpage/pkg/record"
	"github.com/cloudygreybeard/startpage/pkg/urlutil"
)

// Report counts what a dedupe run removed.
type Report struct {
	WidgetsRemoved   int
	BookmarksRemoved int
}

// Run applies the widget merge, then the bookmark merge.
func Run(c *record.Collection) Report {
	return Report{
		WidgetsRemoved:   Widgets(c),
		BookmarksRemoved: Bookmarks(c),
	}
}

// Widgets merges widgets sharing a page and a trimmed, lower-cased
// name. The first member by (page, column, order) survives; items of
// the others move to it, renumbered after its current maximum order.
// Returns the number of widgets removed.
func Widgets(c *record.Collection) int {
	widgets := append([]*record.Widget(nil), allWidgets(c)...)
	sort.SliceStable(widgets, func(i, j int) bool {
		a, b := widgets[i], widgets[j]
		if a.PageID != b.PageID {
			return a.PageID < b.PageID
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.Order < b.Order
	})

	type key struct {
		pageID string
		name   string
	}
	primary := make(map[key]string)
	merged := make(map[string]string) // removed widget id -> primary id
	for _, w := range widgets {
		k := key{w.PageID, strings.ToLower(strings.TrimSpace(w.Name))}
		if id, ok := primary[k]; ok {
			if w.ID != id {
				merged[w.ID] = id
			}
			continue
		}
		primary[k] = w.ID
	}
	if len(merged) == 0 {
		return 0
	}

	// Reassign items in collection order so moved items keep their
	// relative order behind the primary's existing items.
	for _, r := range c.Records {
		switch item := r.(type) {
		case *record.Bookmark:
			if to, ok := merged[item.WidgetID]; ok {
				next := c.NextItemOrder(to)
				item.WidgetID = to
				item.Order = next
			}
		case *record.Note:
			if to, ok := merged[item.WidgetID]; ok {
				next := c.NextItemOrder(to)
				item.WidgetID = to
				item.Order = next
			}
		}
	}

	return c.RemoveIf(func(r record.Record) bool {
		w, ok := r.(*record.Widget)
		if !ok {
			return false
		}
		_, gone := merged[w.ID]
		return gone
	})
}

// Bookmarks removes, within each widget, bookmarks whose canonical URL
// key repeats. The first bookmark by order survives; a later duplicate
// donates its name when the survivor's is blank. Returns the number of
// bookmarks removed.
func Bookmarks(c *record.Collection) int {
	byWidget := make(map[string][]*record.Bookmark)
	var widgetIDs []string
	for _, r := range c.Records {
		if b, ok := r.(*record.Bookmark); ok {
			if _, seen := byWidget[b.WidgetID]; !seen {
				widgetIDs = append(widgetIDs, b.WidgetID)
			}
			byWidget[b.WidgetID] = append(byWidget[b.WidgetID], b)
		}
	}

	doomed := make(map[string]bool)
	for _, wid := range widgetIDs {
		list := byWidget[wid]
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Order < list[j].Order
		})
		seen := make(map[string]*record.Bookmark)
		for _, b := range list {
			k := ComparisonKey(b.URL)
			first, ok := seen[k]
			if !ok {
				seen[k] = b
				continue
			}
			if strings.TrimSpace(first.Name) == "" && strings.TrimSpace(b.Name) != "" {
				first.Name = b.Name
			}
			doomed[b.ID] = true
		}
	}
	if len(doomed) == 0 {
		return 0
	}

	return c.RemoveIf(func(r record.Record) bool {
		b, ok := r.(*record.Bookmark)
		return ok && doomed[b.ID]
	})
}

// ComparisonKey computes the duplicate-comparison key for a bookmark
// URL: its canonical form, or the trimmed lower-cased raw URL when
// canonicalization yields nothing.
func ComparisonKey(rawURL string) string {
	if k := urlutil.Canonicalize(rawURL); k != "" {
		return k
	}
	return strings.ToLower(strings.TrimSpace(rawURL))
}

func allWidgets(c *record.Collection) []*record.Widget {
	var out []*record.Widget
	for _, r := range c.Records {
		if w, ok := r.(*record.Widget); ok {
			out = append(out, w)
		}
	}
	return out
}
