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

// Package service orchestrates dashboard operations over the store.
//
// Every write runs as one load-mutate-save sequence inside the store
// lock, with a dedupe pass appended to any mutation that can introduce
// duplicates (widget create/rename/move/copy, bookmark adds, import).
// Title resolution is network I/O and happens before the lock is
// taken, never inside it.
//
// Deleting something that is already gone is an inert success, not an
// error. Storage I/O failures are the only errors a mutation cannot
// absorb; they always propagate.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudygreybeard/startpage/pkg/dedupe"
	"github.com/cloudygreybeard/startpage/pkg/imports"
	"github.com/cloudygreybeard/startpage/pkg/record"
	"github.com/cloudygreybeard/startpage/pkg/store"
	"github.com/cloudygreybeard/startpage/pkg/titles"
	"github.com/cloudygreybeard/startpage/pkg/urlutil"
	"github.com/cloudygreybeard/startpage/pkg/view"
)

// Service exposes the dashboard's operations.
type Service struct {
	store  *store.Store
	titles *titles.Resolver // nil disables title fetching
}

// New creates a service over a store. resolver may be nil, in which
// case bookmark titles fall back to host-derived guesses.
func New(st *store.Store, resolver *titles.Resolver) *Service {
	return &Service{store: st, titles: resolver}
}

// Pages lists all pages, default page first when synthesized.
func (s *Service) Pages() ([]record.Page, error) {
	var pages []record.Page
	err := s.store.View(func(c *record.Collection) error {
		pages = view.Pages(c)
		return nil
	})
	return pages, err
}

// Widgets lists a page's widgets with their items.
func (s *Service) Widgets(pageID string) ([]view.Widget, error) {
	var widgets []view.Widget
	err := s.store.View(func(c *record.Collection) error {
		widgets = view.Widgets(c, pageID)
		return nil
	})
	return widgets, err
}

// Duplicates reports cross-widget duplicate bookmarks on a page.
func (s *Service) Duplicates(pageID string) ([]dedupe.Group, error) {
	var groups []dedupe.Group
	err := s.store.View(func(c *record.Collection) error {
		groups = dedupe.FindDuplicates(c, pageID)
		return nil
	})
	return groups, err
}

// AddPage creates a page and returns its id. Creating a page under the
// default page's name claims the default id when it is still free.
func (s *Service) AddPage(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("page name required")
	}
	var id string
	err := s.store.Update(func(c *record.Collection) error {
		id = record.NewID()
		if name == record.DefaultPageName && c.FindPage(record.DefaultPageID) == nil {
			id = record.DefaultPageID
		}
		c.Append(&record.Page{ID: id, Name: name, Order: c.NextPageOrder()})
		return nil
	})
	return id, err
}

// RenamePage renames a page. Unknown ids and blank names are inert.
func (s *Service) RenamePage(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return s.store.Update(func(c *record.Collection) error {
		if p := c.FindPage(id); p != nil {
			p.Name = name
		}
		return nil
	})
}

// DeletePage removes a page, its widgets, and their items. When the
// last page goes, the default page is restored so one always exists.
func (s *Service) DeletePage(id string) error {
	return s.store.Update(func(c *record.Collection) error {
		doomed := make(map[string]bool)
		for _, w := range c.WidgetsOn(id) {
			doomed[w.ID] = true
		}
		c.RemoveIf(func(r record.Record) bool {
			switch v := r.(type) {
			case *record.Page:
				return v.ID == id
			case *record.Widget:
				return doomed[v.ID]
			case *record.Bookmark:
				return doomed[v.WidgetID]
			case *record.Note:
				return doomed[v.WidgetID]
			}
			return false
		})
		if len(c.Pages()) == 0 {
			c.Append(&record.Page{ID: record.DefaultPageID, Name: record.DefaultPageName, Order: 0})
		}
		return nil
	})
}

// AddWidget creates a widget on a page and runs the dedupe pass.
func (s *Service) AddWidget(pageID, name string, column int) (string, dedupe.Report, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", dedupe.Report{}, fmt.Errorf("widget name required")
	}
	var (
		id  string
		rep dedupe.Report
	)
	err := s.store.Update(func(c *record.Collection) error {
		if c.FindPage(pageID) == nil {
			return fmt.Errorf("page %q not found", pageID)
		}
		col := record.ClampColumn(column)
		id = record.NewID()
		c.Append(&record.Widget{
			ID:     id,
			PageID: pageID,
			Column: col,
			Order:  c.NextWidgetOrder(pageID, col),
			Name:   name,
		})
		rep = dedupe.Run(c)
		return nil
	})
	return id, rep, err
}

// RenameWidget renames a widget and runs the dedupe pass. Unknown ids
// and blank names are inert.
func (s *Service) RenameWidget(id, name string) (dedupe.Report, error) {
	name = strings.TrimSpace(name)
	var rep dedupe.Report
	if name == "" {
		return rep, nil
	}
	err := s.store.Update(func(c *record.Collection) error {
		w := c.FindWidget(id)
		if w == nil {
			return nil
		}
		w.Name = name
		rep = dedupe.Run(c)
		return nil
	})
	return rep, err
}

// DeleteWidget removes a widget and its items. Unknown ids are inert.
func (s *Service) DeleteWidget(id string) error {
	return s.store.Update(func(c *record.Collection) error {
		c.RemoveIf(func(r record.Record) bool {
			switch v := r.(type) {
			case *record.Widget:
				return v.ID == id
			case *record.Bookmark:
				return v.WidgetID == id
			case *record.Note:
				return v.WidgetID == id
			}
			return false
		})
		return nil
	})
}

// MoveWidget moves a widget to a page and column, then runs the dedupe
// pass. Unknown widget or page ids are inert.
func (s *Service) MoveWidget(id, pageID string, column int) (dedupe.Report, error) {
	var rep dedupe.Report
	err := s.store.Update(func(c *record.Collection) error {
		w := c.FindWidget(id)
		if w == nil || c.FindPage(pageID) == nil {
			return nil
		}
		w.PageID = pageID
		w.Column = record.ClampColumn(column)
		w.Order = c.NextWidgetOrder(pageID, w.Column)
		rep = dedupe.Run(c)
		return nil
	})
	return rep, err
}

// CopyWidget duplicates a widget and its items onto a page and column,
// then runs the dedupe pass. Returns the id of the copy.
func (s *Service) CopyWidget(id, pageID string, column int) (string, dedupe.Report, error) {
	var (
		newID string
		rep   dedupe.Report
	)
	err := s.store.Update(func(c *record.Collection) error {
		w := c.FindWidget(id)
		if w == nil {
			return fmt.Errorf("widget %q not found", id)
		}
		if c.FindPage(pageID) == nil {
			return fmt.Errorf("page %q not found", pageID)
		}
		col := record.ClampColumn(column)
		newID = record.NewID()
		c.Append(&record.Widget{
			ID:     newID,
			PageID: pageID,
			Column: col,
			Order:  c.NextWidgetOrder(pageID, col),
			Name:   w.Name,
		})
		for _, item := range c.ItemsIn(id) {
			switch v := item.(type) {
			case *record.Bookmark:
				dup := *v
				dup.ID = record.NewID()
				dup.WidgetID = newID
				c.Append(&dup)
			case *record.Note:
				dup := *v
				dup.ID = record.NewID()
				dup.WidgetID = newID
				c.Append(&dup)
			}
		}
		rep = dedupe.Run(c)
		return nil
	})
	return newID, rep, err
}

// AddBookmark adds one bookmark to a widget and runs the bookmark
// dedupe pass. A blank name resolves to the fetched page title when a
// resolver is configured, else to a host-derived guess. Returns the
// number of duplicates removed.
func (s *Service) AddBookmark(ctx context.Context, widgetID, rawURL, name string) (int, error) {
	created, removed, err := s.addBookmarks(ctx, widgetID, []bulkEntry{{url: rawURL, name: name}}, s.titles != nil)
	if err != nil {
		return 0, err
	}
	if created == 0 {
		return 0, fmt.Errorf("no valid URL provided")
	}
	return removed, nil
}

// AddBookmarks adds bookmarks in bulk. With autoTitles, unnamed
// bookmarks get fetched page titles; otherwise host-derived guesses.
// Returns how many were created and how many duplicates the dedupe
// pass removed.
func (s *Service) AddBookmarks(ctx context.Context, widgetID string, urls []string, autoTitles bool) (int, int, error) {
	entries := make([]bulkEntry, 0, len(urls))
	for _, u := range urls {
		entries = append(entries, bulkEntry{url: u})
	}
	return s.addBookmarks(ctx, widgetID, entries, autoTitles && s.titles != nil)
}

type bulkEntry struct {
	url  string
	name string
}

func (s *Service) addBookmarks(ctx context.Context, widgetID string, entries []bulkEntry, fetchTitles bool) (int, int, error) {
	// Resolve URLs and titles before taking the store lock: title
	// fetching is network I/O with its own timeout.
	type resolved struct {
		url  string
		name string
	}
	var pending []resolved
	for _, e := range entries {
		u := urlutil.Normalize(e.url)
		if u == "" {
			continue
		}
		name := strings.TrimSpace(e.name)
		if name == "" {
			if fetchTitles {
				name = s.titles.Resolve(ctx, u)
			} else {
				name = urlutil.GuessTitle(u)
			}
		}
		pending = append(pending, resolved{url: u, name: name})
	}
	if len(pending) == 0 {
		return 0, 0, nil
	}

	var removed int
	err := s.store.Update(func(c *record.Collection) error {
		if c.FindWidget(widgetID) == nil {
			return fmt.Errorf("widget %q not found", widgetID)
		}
		for _, p := range pending {
			c.Append(&record.Bookmark{
				ID:       record.NewID(),
				WidgetID: widgetID,
				Order:    c.NextItemOrder(widgetID),
				Name:     p.name,
				URL:      p.url,
			})
		}
		removed = dedupe.Bookmarks(c)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return len(pending), removed, nil
}

// AddNote adds a note to a widget and returns its id.
func (s *Service) AddNote(widgetID, text, color string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("note text required")
	}
	var id string
	err := s.store.Update(func(c *record.Collection) error {
		if c.FindWidget(widgetID) == nil {
			return fmt.Errorf("widget %q not found", widgetID)
		}
		id = record.NewID()
		c.Append(&record.Note{
			ID:       id,
			WidgetID: widgetID,
			Order:    c.NextItemOrder(widgetID),
			Notes:    text,
			Color:    strings.TrimSpace(color),
		})
		return nil
	})
	return id, err
}

// ItemEdit describes an item edit; nil fields keep their value. A
// non-empty WidgetID moves the item to that widget, appending it after
// the widget's current items.
type ItemEdit struct {
	Name     *string // bookmarks
	URL      *string // bookmarks
	Notes    *string // notes
	Color    *string // notes
	WidgetID string
}

// EditItem applies an edit to a bookmark or note. Editing a bookmark
// runs the bookmark dedupe pass afterwards.
func (s *Service) EditItem(id string, edit ItemEdit) error {
	return s.store.Update(func(c *record.Collection) error {
		item := c.FindItem(id)
		if item == nil {
			return fmt.Errorf("item %q not found", id)
		}
		switch v := item.(type) {
		case *record.Bookmark:
			if edit.Name != nil {
				v.Name = *edit.Name
			}
			if edit.URL != nil {
				v.URL = *edit.URL
			}
			if edit.WidgetID != "" && edit.WidgetID != v.WidgetID {
				v.WidgetID = edit.WidgetID
				v.Order = c.NextItemOrder(edit.WidgetID)
			}
			dedupe.Bookmarks(c)
		case *record.Note:
			if edit.Notes != nil {
				v.Notes = *edit.Notes
			}
			if edit.Color != nil {
				v.Color = *edit.Color
			}
			if edit.WidgetID != "" && edit.WidgetID != v.WidgetID {
				v.WidgetID = edit.WidgetID
				v.Order = c.NextItemOrder(edit.WidgetID)
			}
		}
		return nil
	})
}

// DeleteItem removes a bookmark or note. Unknown ids are inert.
func (s *Service) DeleteItem(id string) error {
	return s.store.Update(func(c *record.Collection) error {
		c.RemoveIf(func(r record.Record) bool {
			switch r.(type) {
			case *record.Bookmark, *record.Note:
				return record.IDOf(r) == id
			}
			return false
		})
		return nil
	})
}

// WidgetPlacement positions a widget after a drag reorder.
type WidgetPlacement struct {
	ID     string
	Column int
	Order  int
}

// ItemPlacement positions an item after a drag reorder.
type ItemPlacement struct {
	ID       string
	WidgetID string // empty keeps the current widget
	Order    int
}

// Reorder persists drag-and-drop placements. Unknown ids are skipped.
func (s *Service) Reorder(widgets []WidgetPlacement, items []ItemPlacement) error {
	return s.store.Update(func(c *record.Collection) error {
		for _, p := range widgets {
			if w := c.FindWidget(p.ID); w != nil {
				w.Column = record.ClampColumn(p.Column)
				w.Order = p.Order
			}
		}
		for _, p := range items {
			item := c.FindItem(p.ID)
			if item == nil {
				continue
			}
			switch v := item.(type) {
			case *record.Bookmark:
				if p.WidgetID != "" {
					v.WidgetID = p.WidgetID
				}
				v.Order = p.Order
			case *record.Note:
				if p.WidgetID != "" {
					v.WidgetID = p.WidgetID
				}
				v.Order = p.Order
			}
		}
		return nil
	})
}

// Import runs a registered import source, follows it with the full
// dedupe pass, and saves once.
func (s *Service) Import(ctx context.Context, sourceName, path string, opts imports.Options) (imports.Result, dedupe.Report, error) {
	src, ok := imports.Get(sourceName)
	if !ok {
		return imports.Result{}, dedupe.Report{}, fmt.Errorf("unknown import source %q (known: %s)", sourceName, strings.Join(imports.List(), ", "))
	}

	var (
		res imports.Result
		rep dedupe.Report
	)
	err := s.store.Update(func(c *record.Collection) error {
		if opts.PageID != "" && c.FindPage(opts.PageID) == nil {
			return fmt.Errorf("page %q not found", opts.PageID)
		}
		var err error
		res, err = src.Import(ctx, path, c, opts)
		if err != nil {
			return err
		}
		rep = dedupe.Run(c)
		return nil
	})
	return res, rep, err
}

// Dedupe runs both dedupe passes and saves.
func (s *Service) Dedupe() (dedupe.Report, error) {
	var rep dedupe.Report
	err := s.store.Update(func(c *record.Collection) error {
		rep = dedupe.Run(c)
		return nil
	})
	return rep, err
}

// Seed adds starter widgets and items when the store holds no widgets
// yet. Returns true when something was seeded.
func (s *Service) Seed() (bool, error) {
	seeded := false
	err := s.store.Update(func(c *record.Collection) error {
		for _, r := range c.Records {
			if _, ok := r.(*record.Widget); ok {
				return nil
			}
		}
		seeded = true
		news := record.NewID()
		dev := record.NewID()
		c.Append(&record.Widget{ID: news, PageID: record.DefaultPageID, Column: 1, Order: 0, Name: "News"})
		c.Append(&record.Widget{ID: dev, PageID: record.DefaultPageID, Column: 2, Order: 0, Name: "Dev Tools"})
		c.Append(&record.Bookmark{ID: record.NewID(), WidgetID: news, Order: 0, Name: "Hacker News", URL: "https://news.ycombinator.com"})
		c.Append(&record.Bookmark{ID: record.NewID(), WidgetID: dev, Order: 0, Name: "GitHub", URL: "https://github.com"})
		c.Append(&record.Note{ID: record.NewID(), WidgetID: news, Order: 1, Notes: "Sticky notes go here.", Color: "#FEF3C7"})
		dedupe.Run(c)
		return nil
	})
	return seeded, err
}
