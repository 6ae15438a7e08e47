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

package firefox

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudygreybeard/startpage/pkg/imports"
	"github.com/cloudygreybeard/startpage/pkg/record"
)

// seedPlaces builds a minimal places.sqlite matching the Firefox schema
// slices the importer reads.
func seedPlaces(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "places.sqlite")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	stmts := []string{
		`CREATE TABLE moz_places (id INTEGER PRIMARY KEY, url TEXT)`,
		`CREATE TABLE moz_bookmarks (
			id INTEGER PRIMARY KEY, type INTEGER, fk INTEGER,
			parent INTEGER, position INTEGER, title TEXT)`,
		// Roots: menu (2), toolbar (3), tags (4).
		`INSERT INTO moz_bookmarks VALUES (1, 2, NULL, 0, 0, '')`,
		`INSERT INTO moz_bookmarks VALUES (2, 2, NULL, 1, 0, 'menu')`,
		`INSERT INTO moz_bookmarks VALUES (3, 2, NULL, 1, 1, 'toolbar')`,
		`INSERT INTO moz_bookmarks VALUES (4, 2, NULL, 1, 2, 'tags')`,
		`INSERT INTO moz_bookmarks VALUES (10, 2, NULL, 3, 0, 'Work')`,
		`INSERT INTO moz_bookmarks VALUES (11, 2, NULL, 4, 0, 'a-tag')`,
		`INSERT INTO moz_places VALUES (100, 'https://mail.example/')`,
		`INSERT INTO moz_places VALUES (101, 'https://docs.example/')`,
		`INSERT INTO moz_places VALUES (102, 'place:sort=8&maxResults=10')`,
		`INSERT INTO moz_places VALUES (103, 'https://tagged.example/')`,
		`INSERT INTO moz_bookmarks VALUES (20, 1, 100, 10, 0, 'Mail')`,
		`INSERT INTO moz_bookmarks VALUES (21, 1, 101, 10, 1, 'Docs')`,
		// Loose bookmark directly under the toolbar root (blank title).
		`INSERT INTO moz_bookmarks VALUES (22, 1, 100, 1, 0, 'Loose')`,
		// place: query and tagged rows must both be skipped.
		`INSERT INTO moz_bookmarks VALUES (23, 1, 102, 3, 1, 'Recent')`,
		`INSERT INTO moz_bookmarks VALUES (24, 1, 103, 11, 0, 'Tagged')`,
	}
	for _, s := range stmts {
		_, err := db.Exec(s)
		require.NoError(t, err)
	}
	return path
}

func TestImportPlacesDatabase(t *testing.T) {
	path := seedPlaces(t)

	c := &record.Collection{}
	c.Append(&record.Page{ID: "home", Name: "My Start Page", Order: 0})

	src := &Source{}
	res, err := src.Import(context.Background(), path, c, imports.Options{PageID: "home"})
	require.NoError(t, err)

	assert.Equal(t, 2, res.WidgetsCreated, "fallback plus the Work folder")
	assert.Equal(t, 3, res.BookmarksCreated)

	widgets := c.WidgetsOn("home")
	require.Len(t, widgets, 2)
	assert.Equal(t, imports.FallbackWidgetName, widgets[0].Name)
	assert.Equal(t, "Work", widgets[1].Name)

	work := c.ItemsIn(widgets[1].ID)
	require.Len(t, work, 2)
	assert.Equal(t, "Mail", work[0].(*record.Bookmark).Name)
	assert.Equal(t, "Docs", work[1].(*record.Bookmark).Name)
}

func TestImportMissingDatabase(t *testing.T) {
	c := &record.Collection{}
	_, err := (&Source{}).Import(context.Background(), filepath.Join(t.TempDir(), "nope.sqlite"), c, imports.Options{})
	assert.Error(t, err)
}

func TestUnderTagsRoot(t *testing.T) {
	folders := map[int64]folderInfo{
		4:  {parent: 1},
		11: {parent: 4, title: "a-tag"},
		12: {parent: 11, title: "nested"},
		10: {parent: 3, title: "Work"},
	}
	assert.True(t, underTagsRoot(4, folders))
	assert.True(t, underTagsRoot(11, folders))
	assert.True(t, underTagsRoot(12, folders))
	assert.False(t, underTagsRoot(10, folders))
	assert.False(t, underTagsRoot(99, folders))
}
