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

// Package firefox imports bookmarks from Firefox's places.sqlite.
//
// Firefox holds the profile database locked while running, so the file
// is copied to a temp location and opened read-only from there. Each
// Firefox folder that holds bookmarks becomes a widget; rows under the
// tags root and place: queries are skipped.
package firefox

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cloudygreybeard/startpage/pkg/imports"
	"github.com/cloudygreybeard/startpage/pkg/record"
)

// profilePaths maps platform to the Firefox profiles directory.
var profilePaths = map[string]string{
	"linux":   ".mozilla/firefox",
	"darwin":  "Library/Application Support/Firefox/Profiles",
	"windows": "Mozilla/Firefox/Profiles",
}

// tagsRootID is the fixed moz_bookmarks id of the tags root.
const tagsRootID = 4

func init() {
	imports.Register(&Source{})
}

// Source imports from the first Firefox profile that has a
// places.sqlite, or from an explicit database path.
type Source struct{}

// Name returns the source identifier.
func (s *Source) Name() string { return "firefox" }

// DisplayName returns a human-friendly name.
func (s *Source) DisplayName() string { return "Mozilla Firefox" }

// Available returns true when a profile database was found.
func (s *Source) Available() bool {
	return s.findDatabase() != ""
}

// Path returns the discovered database path.
func (s *Source) Path() string { return s.findDatabase() }

// Import reads the places database at path (auto-discovered when
// empty) and appends the created records to c.
func (s *Source) Import(ctx context.Context, path string, c *record.Collection, opts imports.Options) (imports.Result, error) {
	if path == "" {
		path = s.findDatabase()
	}
	if path == "" {
		return imports.Result{}, fmt.Errorf("no firefox profile with places.sqlite found")
	}

	// Copy first: Firefox keeps the live database locked.
	tmp, err := copyDatabase(path)
	if err != nil {
		return imports.Result{}, err
	}
	defer os.Remove(tmp)

	db, err := sql.Open("sqlite3", tmp+"?mode=ro")
	if err != nil {
		return imports.Result{}, fmt.Errorf("opening places database: %w", err)
	}
	defer db.Close()

	folders, links, err := readTree(ctx, db)
	if err != nil {
		return imports.Result{}, err
	}

	b := imports.NewBuilder(c, opts)
	b.EnsurePage("")
	b.AddTree(folders, links)
	return b.Result(), nil
}

func (s *Source) findDatabase() string {
	rel, ok := profilePaths[runtime.GOOS]
	if !ok {
		return ""
	}

	var base string
	if runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
	} else {
		base, _ = os.UserHomeDir()
	}
	if base == "" {
		return ""
	}

	profilesDir := filepath.Join(base, rel)
	entries, err := os.ReadDir(profilesDir)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		places := filepath.Join(profilesDir, entry.Name(), "places.sqlite")
		if _, err := os.Stat(places); err == nil {
			return places
		}
	}
	return ""
}

func copyDatabase(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening places database: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "places-*.sqlite")
	if err != nil {
		return "", fmt.Errorf("copying places database: %w", err)
	}
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("copying places database: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("copying places database: %w", err)
	}
	return tmp.Name(), nil
}

type folderInfo struct {
	parent int64
	title  string
}

// readTree groups Firefox bookmarks by their immediate folder. Folder
// nesting is not preserved beyond that: every bookmark-holding folder
// becomes one top-level group, in first-bookmark order.
func readTree(ctx context.Context, db *sql.DB) ([]imports.Folder, []imports.Link, error) {
	folders := make(map[int64]folderInfo)
	rows, err := db.QueryContext(ctx, "SELECT id, parent, title FROM moz_bookmarks WHERE type = 2")
	if err != nil {
		return nil, nil, fmt.Errorf("reading folders: %w", err)
	}
	for rows.Next() {
		var id, parent int64
		var title sql.NullString
		if err := rows.Scan(&id, &parent, &title); err != nil {
			continue
		}
		folders[id] = folderInfo{parent: parent, title: title.String}
	}
	rows.Close()

	rows, err = db.QueryContext(ctx, `
		SELECT b.title, p.url, b.parent
		FROM moz_bookmarks b
		JOIN moz_places p ON b.fk = p.id
		WHERE b.type = 1
		  AND p.url IS NOT NULL
		  AND p.url NOT LIKE 'place:%'
		ORDER BY b.parent, b.position`)
	if err != nil {
		return nil, nil, fmt.Errorf("reading bookmarks: %w", err)
	}
	defer rows.Close()

	grouped := make(map[int64]*imports.Folder)
	var groupOrder []int64
	var loose []imports.Link

	for rows.Next() {
		var title sql.NullString
		var url string
		var parent int64
		if err := rows.Scan(&title, &url, &parent); err != nil {
			continue
		}
		if underTagsRoot(parent, folders) {
			continue
		}

		link := imports.Link{Title: title.String, URL: url}
		info, ok := folders[parent]
		if !ok || info.title == "" {
			loose = append(loose, link)
			continue
		}
		g, ok := grouped[parent]
		if !ok {
			g = &imports.Folder{Name: info.title}
			grouped[parent] = g
			groupOrder = append(groupOrder, parent)
		}
		g.Links = append(g.Links, link)
	}

	out := make([]imports.Folder, 0, len(groupOrder))
	for _, id := range groupOrder {
		out = append(out, *grouped[id])
	}
	return out, loose, nil
}

func underTagsRoot(folderID int64, folders map[int64]folderInfo) bool {
	current := folderID
	for i := 0; i < 10; i++ {
		if current == tagsRootID {
			return true
		}
		info, ok := folders[current]
		if !ok {
			return false
		}
		current = info.parent
	}
	return false
}
