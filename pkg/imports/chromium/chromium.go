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

// Package chromium imports bookmarks directly from Chromium-based
// browsers (Chrome, Edge, Chromium, Brave).
//
// The browsers keep bookmarks in a JSON "Bookmarks" file per profile.
// Folders under the bookmark bar and "other bookmarks" roots become
// widgets; loose links directly under a root go to the fallback
// widget.
package chromium

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/cloudygreybeard/startpage/pkg/imports"
	"github.com/cloudygreybeard/startpage/pkg/record"
)

// configPaths maps browser names to their config directories per
// platform.
var configPaths = map[string]map[string]string{
	"chrome": {
		"linux":   ".config/google-chrome",
		"darwin":  "Library/Application Support/Google/Chrome",
		"windows": "Google/Chrome/User Data",
	},
	"edge": {
		"linux":   ".config/microsoft-edge",
		"darwin":  "Library/Application Support/Microsoft Edge",
		"windows": "Microsoft/Edge/User Data",
	},
	"chromium": {
		"linux":   ".config/chromium",
		"darwin":  "Library/Application Support/Chromium",
		"windows": "Chromium/User Data",
	},
	"brave": {
		"linux":   ".config/BraveSoftware/Brave-Browser",
		"darwin":  "Library/Application Support/BraveSoftware/Brave-Browser",
		"windows": "BraveSoftware/Brave-Browser/User Data",
	},
}

var displayNames = map[string]string{
	"chrome":   "Google Chrome",
	"edge":     "Microsoft Edge",
	"chromium": "Chromium",
	"brave":    "Brave",
}

func init() {
	imports.Register(New("chrome"))
	imports.Register(New("edge"))
	imports.Register(New("chromium"))
	imports.Register(New("brave"))
}

// Source imports from one Chromium-based browser's default profile.
type Source struct {
	browser string
}

// New creates a source for the named browser.
func New(browser string) *Source {
	return &Source{browser: browser}
}

// Name returns the source identifier.
func (s *Source) Name() string { return s.browser }

// DisplayName returns a human-friendly name.
func (s *Source) DisplayName() string {
	if name, ok := displayNames[s.browser]; ok {
		return name
	}
	return s.browser
}

// Available returns true when a Bookmarks file exists at the default
// location.
func (s *Source) Available() bool {
	p := s.defaultPath()
	if p == "" {
		return false
	}
	_, err := os.Stat(p)
	return err == nil
}

// Path returns the default Bookmarks file location.
func (s *Source) Path() string { return s.defaultPath() }

// Import reads the Bookmarks file at path (default location when
// empty) and appends the created records to c.
func (s *Source) Import(ctx context.Context, path string, c *record.Collection, opts imports.Options) (imports.Result, error) {
	if path == "" {
		path = s.defaultPath()
	}
	if path == "" {
		return imports.Result{}, fmt.Errorf("%s bookmarks not found on this platform", s.browser)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return imports.Result{}, fmt.Errorf("reading %s bookmarks: %w", s.browser, err)
	}

	var file bookmarksFile
	if err := json.Unmarshal(data, &file); err != nil {
		return imports.Result{}, fmt.Errorf("parsing %s bookmarks: %w", s.browser, err)
	}

	b := imports.NewBuilder(c, opts)
	b.EnsurePage("")
	for _, root := range []bookmarkNode{file.Roots.BookmarkBar, file.Roots.Other, file.Roots.Synced} {
		folders, links := convert(root.Children)
		b.AddTree(folders, links)
	}
	return b.Result(), nil
}

func (s *Source) defaultPath() string {
	platform, ok := configPaths[s.browser]
	if !ok {
		return ""
	}
	rel, ok := platform[runtime.GOOS]
	if !ok {
		return ""
	}

	var base string
	if runtime.GOOS == "windows" {
		base = os.Getenv("LOCALAPPDATA")
	} else {
		base, _ = os.UserHomeDir()
	}
	if base == "" {
		return ""
	}
	return filepath.Join(base, rel, "Default", "Bookmarks")
}

type bookmarksFile struct {
	Roots struct {
		BookmarkBar bookmarkNode `json:"bookmark_bar"`
		Other       bookmarkNode `json:"other"`
		Synced      bookmarkNode `json:"synced"`
	} `json:"roots"`
}

type bookmarkNode struct {
	Type     string         `json:"type"`
	Name     string         `json:"name"`
	URL      string         `json:"url"`
	Children []bookmarkNode `json:"children"`
}

// convert maps a node list to the shared folder/link tree.
func convert(nodes []bookmarkNode) ([]imports.Folder, []imports.Link) {
	var folders []imports.Folder
	var links []imports.Link
	for _, n := range nodes {
		switch n.Type {
		case "url":
			if n.URL != "" {
				links = append(links, imports.Link{Title: n.Name, URL: n.URL})
			}
		case "folder":
			sub, own := convert(n.Children)
			folders = append(folders, imports.Folder{
				Name:    n.Name,
				Links:   own,
				Folders: sub,
			})
		}
	}
	return folders, links
}
