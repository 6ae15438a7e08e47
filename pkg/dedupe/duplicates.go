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

package dedupe

import (
	"sort"
	"strings"

	"github.com/cloudygreybeard/startpage/pkg/record"
)

// Entry is one bookmark inside a duplicate group.
type Entry struct {
	ID       string
	WidgetID string
	Widget   string // owning widget's name
	Name     string // bookmark name, or its URL when unnamed
	URL      string
}

// Group is a set of bookmarks on one page sharing a comparison key.
type Group struct {
	Key     string
	Display string
	Entries []Entry
}

// FindDuplicates reports the cross-widget duplicate bookmarks of a
// page: groups of two or more bookmarks whose URLs share a comparison
// key. The collection is not modified; deleting an entry is the
// caller's move, after which it re-queries.
//
// A group's display name is its first non-blank bookmark name, falling
// back to the key. Entries sort by widget name then bookmark name,
// groups by display name, all case-insensitive.
func FindDuplicates(c *record.Collection, pageID string) []Group {
	widgetName := make(map[string]string)
	for _, w := range c.WidgetsOn(pageID) {
		widgetName[w.ID] = w.Name
	}

	buckets := make(map[string][]Entry)
	var keys []string
	for _, r := range c.Records {
		b, ok := r.(*record.Bookmark)
		if !ok {
			continue
		}
		name, onPage := widgetName[b.WidgetID]
		if !onPage {
			continue
		}
		k := ComparisonKey(b.URL)
		if k == "" {
			continue
		}
		display := b.Name
		if display == "" {
			display = b.URL
		}
		if _, seen := buckets[k]; !seen {
			keys = append(keys, k)
		}
		buckets[k] = append(buckets[k], Entry{
			ID:       b.ID,
			WidgetID: b.WidgetID,
			Widget:   name,
			Name:     display,
			URL:      b.URL,
		})
	}

	var out []Group
	for _, k := range keys {
		entries := buckets[k]
		if len(entries) < 2 {
			continue
		}
		display := ""
		for _, e := range entries {
			if strings.TrimSpace(e.Name) != "" {
				display = e.Name
				break
			}
		}
		if display == "" {
			display = k
		}
		sort.SliceStable(entries, func(i, j int) bool {
			a, b := entries[i], entries[j]
			aw, bw := strings.ToLower(a.Widget), strings.ToLower(b.Widget)
			if aw != bw {
				return aw < bw
			}
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		})
		out = append(out, Group{Key: k, Display: display, Entries: entries})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Display) < strings.ToLower(out[j].Display)
	})
	return out
}
