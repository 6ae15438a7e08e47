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

package netscape

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudygreybeard/startpage/pkg/imports"
	"github.com/cloudygreybeard/startpage/pkg/record"
)

// exportDoc is a small export in the shape browsers actually produce:
// unclosed <DT> and <p> tags, nested folder lists.
const exportDoc = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<META HTTP-EQUIV="Content-Type" CONTENT="text/html; charset=UTF-8">
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><H3 ADD_DATE="1712000000">Folder A</H3>
    <DL><p>
        <DT><A HREF="https://one.example/" ADD_DATE="1712000001">Link One</A>
        <DT><H3>Sub</H3>
        <DL><p>
            <DT><A HREF="https://sub.example/">Sub Link</A>
        </DL><p>
        <DT><A HREF="https://two.example/">Link Two</A>
    </DL><p>
</DL><p>
`

func widgetByName(c *record.Collection, pageID, name string) *record.Widget {
	for _, w := range c.WidgetsOn(pageID) {
		if w.Name == name {
			return w
		}
	}
	return nil
}

func bookmarkNames(c *record.Collection, widgetID string) []string {
	var out []string
	for _, r := range c.ItemsIn(widgetID) {
		if b, ok := r.(*record.Bookmark); ok {
			out = append(out, b.Name)
		}
	}
	return out
}

func TestImportFoldersBecomeWidgets(t *testing.T) {
	c := &record.Collection{}
	res := Import([]byte(exportDoc), c, imports.Options{StartColumn: 3})

	assert.Equal(t, 1, res.PagesCreated)
	assert.Equal(t, 2, res.WidgetsCreated)
	assert.Equal(t, 3, res.BookmarksCreated)
	assert.Equal(t, "Bookmarks", res.Title)

	page := c.FindPage(res.PageID)
	require.NotNil(t, page)
	assert.Equal(t, "Bookmarks", page.Name, "new page named after the document title")

	a := widgetByName(c, res.PageID, "Folder A")
	require.NotNil(t, a)
	assert.Equal(t, 3, a.Column, "round-robin starts at the requested column")

	sub := widgetByName(c, res.PageID, "Sub")
	require.NotNil(t, sub)
	assert.Equal(t, 4, sub.Column)

	// Link Two appears after Sub's list closes, so it belongs to Folder A.
	assert.Equal(t, []string{"Link One", "Link Two"}, bookmarkNames(c, a.ID))
	assert.Equal(t, []string{"Sub Link"}, bookmarkNames(c, sub.ID))
}

func TestImportOntoExistingPage(t *testing.T) {
	c := &record.Collection{}
	c.Append(&record.Page{ID: "home", Name: "My Start Page", Order: 0})

	res := Import([]byte(exportDoc), c, imports.Options{PageID: "home", StartColumn: 1})
	assert.Equal(t, 0, res.PagesCreated)
	assert.Equal(t, "home", res.PageID)
	assert.Len(t, c.WidgetsOn("home"), 2)
}

func TestImportOrphanLinksShareFallbackWidget(t *testing.T) {
	doc := `<DL><p>
    <DT><A HREF="https://one.example/">One</A>
    <DT><A HREF="https://two.example/">Two</A>
</DL><p>`
	c := &record.Collection{}
	res := Import([]byte(doc), c, imports.Options{})

	assert.Equal(t, 1, res.WidgetsCreated)
	assert.Equal(t, 2, res.BookmarksCreated)

	fb := widgetByName(c, res.PageID, imports.FallbackWidgetName)
	require.NotNil(t, fb)
	assert.Equal(t, []string{"One", "Two"}, bookmarkNames(c, fb.ID))
}

func TestImportDropsBlankHrefs(t *testing.T) {
	doc := `<DL><p>
    <DT><A HREF="">Empty</A>
    <DT><A>No href at all</A>
    <DT><A HREF="https://keep.example/">Keep</A>
</DL><p>`
	c := &record.Collection{}
	res := Import([]byte(doc), c, imports.Options{})

	assert.Equal(t, 1, res.BookmarksCreated)
	assert.Equal(t, 1, res.WidgetsCreated, "blank links never force the fallback widget")
}

func TestImportDefaultsForBlankNames(t *testing.T) {
	doc := `<DL><p>
    <DT><H3>  </H3>
    <DL><p>
        <DT><A HREF="https://nameless.example/path"></A>
    </DL><p>
</DL><p>`
	c := &record.Collection{}
	res := Import([]byte(doc), c, imports.Options{})

	w := widgetByName(c, res.PageID, "Unnamed")
	require.NotNil(t, w)
	assert.Equal(t, []string{"nameless.example"}, bookmarkNames(c, w.ID), "unnamed links get a host-derived title")
}

func TestImportSchemelessHrefsNormalized(t *testing.T) {
	doc := `<DL><p><DT><A HREF="example.com/page">Plain</A></DL><p>`
	c := &record.Collection{}
	res := Import([]byte(doc), c, imports.Options{})

	fb := widgetByName(c, res.PageID, imports.FallbackWidgetName)
	require.NotNil(t, fb)
	b := c.ItemsIn(fb.ID)[0].(*record.Bookmark)
	assert.Equal(t, "https://example.com/page", b.URL)
}

func TestImportGarbageCreatesOnlyThePage(t *testing.T) {
	c := &record.Collection{}
	res := Import([]byte("not html at all, just text"), c, imports.Options{})

	assert.Equal(t, 1, res.PagesCreated)
	assert.Equal(t, 0, res.WidgetsCreated)
	assert.Equal(t, 0, res.BookmarksCreated)

	page := c.FindPage(res.PageID)
	require.NotNil(t, page)
	assert.Equal(t, "Imported", page.Name)
}

func TestImportPageNameOptionWinsOverTitle(t *testing.T) {
	c := &record.Collection{}
	res := Import([]byte(exportDoc), c, imports.Options{PageName: "From Firefox"})

	page := c.FindPage(res.PageID)
	require.NotNil(t, page)
	assert.Equal(t, "From Firefox", page.Name)
	assert.Equal(t, "Bookmarks", res.Title, "detected title is still reported")
}

func TestImportToleratesInvalidUTF8(t *testing.T) {
	doc := []byte("<DL><p><DT><H3>Caf\xe9</H3><DL><p><DT><A HREF=\"https://cafe.example/\">Caf\xe9 Link</A></DL><p></DL><p>")
	c := &record.Collection{}
	res := Import(doc, c, imports.Options{})

	assert.Equal(t, 1, res.WidgetsCreated)
	assert.Equal(t, 1, res.BookmarksCreated)
	for _, w := range c.WidgetsOn(res.PageID) {
		assert.True(t, len(w.Name) > 0)
	}
}

func TestSniffTitle(t *testing.T) {
	assert.Equal(t, "Bookmarks", sniffTitle([]byte(exportDoc)))
	assert.Equal(t, "A & B", sniffTitle([]byte("<title>A &amp; B</title>")))
	assert.Equal(t, "", sniffTitle([]byte("<h1>no title</h1>")))
}

func TestDecodeWindows1252(t *testing.T) {
	assert.Equal(t, "Café", decodeWindows1252([]byte("Caf\xe9")))
	assert.Equal(t, "€10", decodeWindows1252([]byte("\x8010")))
}

func TestSourceImportReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.html")
	require.NoError(t, os.WriteFile(path, []byte(exportDoc), 0o644))

	c := &record.Collection{}
	src := &Source{}
	res, err := src.Import(context.Background(), path, c, imports.Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.WidgetsCreated)

	_, err = src.Import(context.Background(), "", c, imports.Options{})
	assert.Error(t, err, "html source requires an explicit file")
}
