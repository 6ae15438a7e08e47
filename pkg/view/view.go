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

// Package view projects the flat record collection into the page and
// widget hierarchy the dashboard displays.
//
// The projection is pure: it copies what it needs, mutates nothing, and
// is recomputed on every read; there is no cached denormalized state.
// Sorts are stable, so records with equal sort keys keep their relative
// collection order.
package view

import (
	"sort"

	"github.com/cloudygreybeard/startpage/pkg/record"
)

// Widget is a widget with its items attached, ready for display.
type Widget struct {
	ID            string
	Name          string
	Column        int
	Order         int
	Items         []record.Record // *record.Bookmark or *record.Note, sorted by order
	BookmarkCount int
}

// Pages returns all pages sorted by order. When no record carries the
// default page id, the default page is synthesized and placed first.
func Pages(c *record.Collection) []record.Page {
	var pages []record.Page
	hasDefault := false
	for _, p := range c.Pages() {
		if p.ID == record.DefaultPageID {
			hasDefault = true
		}
		pages = append(pages, *p)
	}
	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].Order < pages[j].Order
	})
	if !hasDefault {
		pages = append([]record.Page{{ID: record.DefaultPageID, Name: record.DefaultPageName, Order: 0}}, pages...)
	}
	return pages
}

// PageName returns the display name for a page id, falling back to the
// default page name when the page is unknown or unnamed.
func PageName(c *record.Collection, pageID string) string {
	if p := c.FindPage(pageID); p != nil && p.Name != "" {
		return p.Name
	}
	return record.DefaultPageName
}

// Widgets returns the widgets of a page with their items attached,
// sorted by (column, order); items within a widget are sorted by order.
func Widgets(c *record.Collection, pageID string) []Widget {
	byID := make(map[string]*Widget)
	var out []*Widget
	for _, w := range c.WidgetsOn(pageID) {
		v := &Widget{ID: w.ID, Name: w.Name, Column: w.Column, Order: w.Order}
		byID[w.ID] = v
		out = append(out, v)
	}

	for _, r := range c.Records {
		switch item := r.(type) {
		case *record.Bookmark:
			if v, ok := byID[item.WidgetID]; ok {
				v.Items = append(v.Items, item)
				v.BookmarkCount++
			}
		case *record.Note:
			if v, ok := byID[item.WidgetID]; ok {
				v.Items = append(v.Items, item)
			}
		}
	}

	for _, v := range out {
		items := v.Items
		sort.SliceStable(items, func(i, j int) bool {
			return itemOrder(items[i]) < itemOrder(items[j])
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Column != out[j].Column {
			return out[i].Column < out[j].Column
		}
		return out[i].Order < out[j].Order
	})

	result := make([]Widget, len(out))
	for i, v := range out {
		result[i] = *v
	}
	return result
}

func itemOrder(r record.Record) int {
	switch v := r.(type) {
	case *record.Bookmark:
		return v.Order
	case *record.Note:
		return v.Order
	}
	return 0
}
