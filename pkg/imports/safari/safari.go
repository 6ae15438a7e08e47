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

// Package safari imports bookmarks from Safari's Bookmarks.plist
// (macOS only).
package safari

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"howett.net/plist"

	"github.com/cloudygreybeard/startpage/pkg/imports"
	"github.com/cloudygreybeard/startpage/pkg/record"
)

func init() {
	imports.Register(&Source{})
}

// Source imports from Safari's bookmark property list.
type Source struct{}

// Name returns the source identifier.
func (s *Source) Name() string { return "safari" }

// DisplayName returns a human-friendly name.
func (s *Source) DisplayName() string { return "Apple Safari" }

// Available returns true on macOS when the plist exists.
func (s *Source) Available() bool {
	p := s.defaultPath()
	if p == "" {
		return false
	}
	_, err := os.Stat(p)
	return err == nil
}

// Path returns the default plist location.
func (s *Source) Path() string { return s.defaultPath() }

// Import reads the plist at path (default location when empty) and
// appends the created records to c.
func (s *Source) Import(ctx context.Context, path string, c *record.Collection, opts imports.Options) (imports.Result, error) {
	if path == "" {
		path = s.defaultPath()
	}
	if path == "" {
		return imports.Result{}, fmt.Errorf("safari bookmarks are only available on macOS")
	}

	f, err := os.Open(path)
	if err != nil {
		return imports.Result{}, fmt.Errorf("opening safari bookmarks: %w", err)
	}
	defer f.Close()

	var root node
	if err := plist.NewDecoder(f).Decode(&root); err != nil {
		return imports.Result{}, fmt.Errorf("parsing safari bookmarks: %w", err)
	}

	b := imports.NewBuilder(c, opts)
	b.EnsurePage("")
	folders, links := convert(root.Children)
	b.AddTree(folders, links)
	return b.Result(), nil
}

func (s *Source) defaultPath() string {
	if runtime.GOOS != "darwin" {
		return ""
	}
	home, _ := os.UserHomeDir()
	if home == "" {
		return ""
	}
	return filepath.Join(home, "Library", "Safari", "Bookmarks.plist")
}

type node struct {
	WebBookmarkType string            `plist:"WebBookmarkType"`
	Title           string            `plist:"Title"`
	URLString       string            `plist:"URLString"`
	URIDictionary   map[string]string `plist:"URIDictionary"`
	Children        []node            `plist:"Children"`
}

// convert maps plist nodes to the shared folder/link tree. Untitled
// list nodes (Safari's top-level containers) contribute their children
// at the current level instead of becoming folders.
func convert(nodes []node) ([]imports.Folder, []imports.Link) {
	var folders []imports.Folder
	var links []imports.Link
	for _, n := range nodes {
		switch n.WebBookmarkType {
		case "WebBookmarkTypeLeaf":
			url := n.URLString
			if url == "" && n.URIDictionary != nil {
				url = n.URIDictionary[""]
			}
			if url == "" {
				continue
			}
			title := n.Title
			if title == "" && n.URIDictionary != nil {
				title = n.URIDictionary["title"]
			}
			links = append(links, imports.Link{Title: title, URL: url})
		case "WebBookmarkTypeList":
			sub, own := convert(n.Children)
			if n.Title == "" {
				folders = append(folders, sub...)
				links = append(links, own...)
				continue
			}
			folders = append(folders, imports.Folder{Name: n.Title, Links: own, Folders: sub})
		default:
			sub, own := convert(n.Children)
			folders = append(folders, sub...)
			links = append(links, own...)
		}
	}
	return folders, links
}
