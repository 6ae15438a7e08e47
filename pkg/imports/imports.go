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

// Package imports turns external bookmark sources into start-page
// records.
//
// A Source reads one kind of external data, such as a Netscape
// bookmarks.html file or a browser's own database, and appends new pages,
// widgets, and bookmarks to the collection it is given. Sources are
// registered by name via init() in their own packages and discovered
// through the registry here; import them for side effects to include
// them in a build:
//
//	import _ "github.com/cloudygreybeard/startpage/pkg/imports/netscape"
//
// The shared Builder implements the record-creation rules every source
// follows: target-page resolution, the 1..6 column round-robin for new
// widgets, and the lazy "Imported Links" fallback widget for links that
// arrive before any folder.
//
// Sources only mutate the in-memory collection. Persisting the result,
// and running the dedupe pass first, is the caller's job.
package imports

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cloudygreybeard/startpage/pkg/record"
	"github.com/cloudygreybeard/startpage/pkg/urlutil"
)

// FallbackWidgetName names the widget that collects links appearing
// before any folder heading.
const FallbackWidgetName = "Imported Links"

// Options configures a single import run.
type Options struct {
	// PageID is the existing page to import onto. Empty means create a
	// new page.
	PageID string

	// PageName names the new page when one is created. When empty the
	// document's own title is used, then "Imported".
	PageName string

	// StartColumn is where the widget column round-robin starts,
	// clamped to [1,6].
	StartColumn int
}

// Result reports what an import created.
type Result struct {
	PagesCreated     int
	WidgetsCreated   int
	BookmarksCreated int

	// PageID is the page the records went to, whether supplied or
	// newly created.
	PageID string

	// Title is the document title detected by the source, if any.
	Title string
}

// Source reads bookmarks from one external format or location.
type Source interface {
	// Name is the identifier used on the command line.
	Name() string

	// DisplayName is the human-friendly source name.
	DisplayName() string

	// Available reports whether the source's default data location
	// exists. Sources that always need an explicit path return false.
	Available() bool

	// Path describes the default data location, for display.
	Path() string

	// Import reads the source at path (empty means the default
	// location) and appends the created records to c.
	Import(ctx context.Context, path string, c *record.Collection, opts Options) (Result, error)
}

var (
	sourcesMu sync.RWMutex
	sources   = make(map[string]Source)
)

// Register adds a source to the registry. Called from init().
func Register(s Source) {
	sourcesMu.Lock()
	defer sourcesMu.Unlock()
	sources[s.Name()] = s
}

// Get returns a registered source by name.
func Get(name string) (Source, bool) {
	sourcesMu.RLock()
	defer sourcesMu.RUnlock()
	s, ok := sources[name]
	return s, ok
}

// List returns all registered source names, sorted.
func List() []string {
	sourcesMu.RLock()
	defer sourcesMu.RUnlock()
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builder appends import records to a collection, applying the shared
// creation rules. One Builder serves one import run.
type Builder struct {
	c        *record.Collection
	opts     Options
	pageID   string
	col      int
	fallback string
	res      Result
}

// NewBuilder prepares a builder for one run. The target page is not
// resolved until EnsurePage is called.
func NewBuilder(c *record.Collection, opts Options) *Builder {
	return &Builder{
		c:    c,
		opts: opts,
		col:  record.ClampColumn(opts.StartColumn),
	}
}

// EnsurePage resolves the target page, creating one on first use when
// no page id was supplied. A created page is named from the caller's
// option, else detectedTitle, else "Imported".
func (b *Builder) EnsurePage(detectedTitle string) string {
	if b.pageID != "" {
		return b.pageID
	}
	if b.opts.PageID != "" {
		b.pageID = b.opts.PageID
		return b.pageID
	}

	name := strings.TrimSpace(b.opts.PageName)
	if name == "" {
		name = strings.TrimSpace(detectedTitle)
	}
	if name == "" {
		name = "Imported"
	}
	b.pageID = record.NewID()
	b.c.Append(&record.Page{
		ID:    b.pageID,
		Name:  name,
		Order: b.c.NextPageOrder(),
	})
	b.res.PagesCreated++
	return b.pageID
}

// OpenWidget creates a widget on the target page in the next
// round-robin column and returns its id. A blank name becomes
// "Unnamed".
func (b *Builder) OpenWidget(name string) string {
	pageID := b.EnsurePage("")
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Unnamed"
	}
	id := record.NewID()
	b.c.Append(&record.Widget{
		ID:     id,
		PageID: pageID,
		Column: b.col,
		Order:  b.c.NextWidgetOrder(pageID, b.col),
		Name:   name,
	})
	b.res.WidgetsCreated++
	b.col = b.col%record.MaxColumns + 1
	return id
}

// AddLink appends a bookmark to the given widget, or to the lazily
// created fallback widget when widgetID is empty. Blank hrefs are
// dropped; a blank title falls back to a host-derived guess.
func (b *Builder) AddLink(widgetID, href, title string) {
	href = urlutil.Normalize(href)
	if href == "" {
		return
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = urlutil.GuessTitle(href)
	}
	if widgetID == "" {
		if b.fallback == "" {
			b.fallback = b.OpenWidget(FallbackWidgetName)
		}
		widgetID = b.fallback
	}
	b.c.Append(&record.Bookmark{
		ID:       record.NewID(),
		WidgetID: widgetID,
		Order:    b.c.NextItemOrder(widgetID),
		Name:     title,
		URL:      href,
	})
	b.res.BookmarksCreated++
}

// SetTitle records the detected document title for the result.
func (b *Builder) SetTitle(title string) {
	if t := strings.TrimSpace(title); t != "" && b.res.Title == "" {
		b.res.Title = t
	}
}

// Result finalizes and returns the run's result.
func (b *Builder) Result() Result {
	b.res.PageID = b.EnsurePage(b.res.Title)
	return b.res
}
