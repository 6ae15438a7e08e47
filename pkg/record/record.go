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

// Package record defines the core record model of the start page.
//
// Everything the dashboard persists (pages, widgets, bookmarks, notes)
// lives in one flat, ordered Collection of records. Each record kind is a
// distinct type behind the sealed Record interface; code that needs to
// discriminate uses a type switch. The flat shape is deliberate: the
// storage layer projects the collection to a single table, and ordering
// within the collection is the tie-breaker for equal sort keys.
//
// # Hierarchy
//
// A Page owns Widgets (via Widget.PageID); a Widget owns items (Bookmark
// or Note, via WidgetID). Deleting a page cascades to its widgets and
// their items; deleting a widget cascades to its items. One page with the
// well-known id "home" is the implicit default: it always logically
// exists, and readers synthesize it when it is absent from storage.
package record

import (
	"strings"

	"github.com/google/uuid"
)

// Kind discriminates record types at the storage boundary.
type Kind string

// Record kinds as persisted in the rowtype column.
const (
	KindPage     Kind = "page"
	KindWidget   Kind = "widget"
	KindBookmark Kind = "bookmark"
	KindNote     Kind = "note"
)

// The default page: synthesized by readers when absent, never required
// on disk.
const (
	DefaultPageID   = "home"
	DefaultPageName = "My Start Page"
)

// MaxColumns is the number of widget columns on a page.
const MaxColumns = 6

// Record is the sealed union of all persisted record types.
// Only *Page, *Widget, *Bookmark, and *Note implement it.
type Record interface {
	record()
}

// Page is a top-level named collection of widgets.
type Page struct {
	ID    string
	Name  string
	Order int // sort key among pages
}

// Widget is a named group of items at a page/column/order position.
type Widget struct {
	ID     string
	PageID string
	Column int // 1..MaxColumns
	Order  int // sort key within (page, column)
	Name   string
}

// Bookmark is a titled link belonging to a widget.
type Bookmark struct {
	ID       string
	WidgetID string
	Order    int // sort key among the widget's items
	Name     string
	URL      string
}

// Note is a free-text item belonging to a widget.
type Note struct {
	ID       string
	WidgetID string
	Order    int
	Notes    string
	Color    string
}

func (*Page) record()     {}
func (*Widget) record()   {}
func (*Bookmark) record() {}
func (*Note) record()     {}

// KindOf returns the kind tag for a record.
func KindOf(r Record) Kind {
	switch r.(type) {
	case *Page:
		return KindPage
	case *Widget:
		return KindWidget
	case *Bookmark:
		return KindBookmark
	case *Note:
		return KindNote
	}
	return ""
}

// IDOf returns the identifier of any record.
func IDOf(r Record) string {
	switch v := r.(type) {
	case *Page:
		return v.ID
	case *Widget:
		return v.ID
	case *Bookmark:
		return v.ID
	case *Note:
		return v.ID
	}
	return ""
}

// NewID generates a globally unique record identifier.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ClampColumn clamps a column index to [1, MaxColumns].
func ClampColumn(col int) int {
	if col < 1 {
		return 1
	}
	if col > MaxColumns {
		return MaxColumns
	}
	return col
}

// Collection is the in-memory set of all records, in storage order.
// The zero value is an empty collection ready for use.
type Collection struct {
	Records []Record
}

// Append adds a record at the end of the collection.
func (c *Collection) Append(r Record) {
	c.Records = append(c.Records, r)
}

// Len returns the number of records.
func (c *Collection) Len() int {
	return len(c.Records)
}

// FindPage returns the page with the given id, or nil.
func (c *Collection) FindPage(id string) *Page {
	for _, r := range c.Records {
		if p, ok := r.(*Page); ok && p.ID == id {
			return p
		}
	}
	return nil
}

// FindWidget returns the widget with the given id, or nil.
func (c *Collection) FindWidget(id string) *Widget {
	for _, r := range c.Records {
		if w, ok := r.(*Widget); ok && w.ID == id {
			return w
		}
	}
	return nil
}

// FindItem returns the bookmark or note with the given id, or nil.
func (c *Collection) FindItem(id string) Record {
	for _, r := range c.Records {
		switch v := r.(type) {
		case *Bookmark:
			if v.ID == id {
				return v
			}
		case *Note:
			if v.ID == id {
				return v
			}
		}
	}
	return nil
}

// Pages returns all page records in collection order.
func (c *Collection) Pages() []*Page {
	var out []*Page
	for _, r := range c.Records {
		if p, ok := r.(*Page); ok {
			out = append(out, p)
		}
	}
	return out
}

// WidgetsOn returns all widget records for a page, in collection order.
func (c *Collection) WidgetsOn(pageID string) []*Widget {
	var out []*Widget
	for _, r := range c.Records {
		if w, ok := r.(*Widget); ok && w.PageID == pageID {
			out = append(out, w)
		}
	}
	return out
}

// ItemsIn returns all items of a widget, in collection order.
func (c *Collection) ItemsIn(widgetID string) []Record {
	var out []Record
	for _, r := range c.Records {
		switch v := r.(type) {
		case *Bookmark:
			if v.WidgetID == widgetID {
				out = append(out, v)
			}
		case *Note:
			if v.WidgetID == widgetID {
				out = append(out, v)
			}
		}
	}
	return out
}

// RemoveIf deletes every record the predicate matches and reports how
// many were removed. Relative order of the survivors is preserved.
func (c *Collection) RemoveIf(match func(Record) bool) int {
	kept := c.Records[:0]
	removed := 0
	for _, r := range c.Records {
		if match(r) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	c.Records = kept
	return removed
}

// NextPageOrder returns the next free sort key among pages.
func (c *Collection) NextPageOrder() int {
	next := 0
	for _, r := range c.Records {
		if p, ok := r.(*Page); ok && p.Order >= next {
			next = p.Order + 1
		}
	}
	return next
}

// NextWidgetOrder returns the next free sort key among the widgets
// sharing a page and column.
func (c *Collection) NextWidgetOrder(pageID string, column int) int {
	next := 0
	for _, r := range c.Records {
		if w, ok := r.(*Widget); ok && w.PageID == pageID && w.Column == column && w.Order >= next {
			next = w.Order + 1
		}
	}
	return next
}

// NextItemOrder returns the next free sort key among a widget's items.
func (c *Collection) NextItemOrder(widgetID string) int {
	next := 0
	for _, r := range c.Records {
		switch v := r.(type) {
		case *Bookmark:
			if v.WidgetID == widgetID && v.Order >= next {
				next = v.Order + 1
			}
		case *Note:
			if v.WidgetID == widgetID && v.Order >= next {
				next = v.Order + 1
			}
		}
	}
	return next
}
