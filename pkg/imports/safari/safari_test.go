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

package safari

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

const bookmarksPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>WebBookmarkType</key><string>WebBookmarkTypeList</string>
	<key>Children</key>
	<array>
		<dict>
			<key>WebBookmarkType</key><string>WebBookmarkTypeList</string>
			<key>Title</key><string>Reading</string>
			<key>Children</key>
			<array>
				<dict>
					<key>WebBookmarkType</key><string>WebBookmarkTypeLeaf</string>
					<key>URLString</key><string>https://article.example/</string>
					<key>URIDictionary</key>
					<dict>
						<key>title</key><string>Long Read</string>
					</dict>
				</dict>
				<dict>
					<key>WebBookmarkType</key><string>WebBookmarkTypeLeaf</string>
					<key>URIDictionary</key>
					<dict>
						<key></key><string>https://dict-only.example/</string>
						<key>title</key><string>Dict Only</string>
					</dict>
				</dict>
			</array>
		</dict>
		<dict>
			<key>WebBookmarkType</key><string>WebBookmarkTypeLeaf</string>
			<key>Title</key><string>Loose Leaf</string>
			<key>URLString</key><string>https://loose.example/</string>
		</dict>
		<dict>
			<key>WebBookmarkType</key><string>WebBookmarkTypeProxy</string>
			<key>Title</key><string>History</string>
		</dict>
	</array>
</dict>
</plist>
`

func TestImportPlist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Bookmarks.plist")
	require.NoError(t, os.WriteFile(path, []byte(bookmarksPlist), 0o644))

	c := &record.Collection{}
	c.Append(&record.Page{ID: "home", Name: "My Start Page", Order: 0})

	src := &Source{}
	res, err := src.Import(context.Background(), path, c, imports.Options{PageID: "home"})
	require.NoError(t, err)

	assert.Equal(t, 2, res.WidgetsCreated, "fallback plus the Reading folder")
	assert.Equal(t, 3, res.BookmarksCreated)

	widgets := c.WidgetsOn("home")
	require.Len(t, widgets, 2)
	assert.Equal(t, imports.FallbackWidgetName, widgets[0].Name)
	assert.Equal(t, "Reading", widgets[1].Name)

	reading := c.ItemsIn(widgets[1].ID)
	require.Len(t, reading, 2)
	assert.Equal(t, "Long Read", reading[0].(*record.Bookmark).Name)
	assert.Equal(t, "https://dict-only.example/", reading[1].(*record.Bookmark).URL)
	assert.Equal(t, "Dict Only", reading[1].(*record.Bookmark).Name)
}

func TestImportMalformedPlist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Bookmarks.plist")
	require.NoError(t, os.WriteFile(path, []byte("not a plist"), 0o644))

	c := &record.Collection{}
	_, err := (&Source{}).Import(context.Background(), path, c, imports.Options{})
	assert.Error(t, err)
}

func TestImportMissingFile(t *testing.T) {
	c := &record.Collection{}
	_, err := (&Source{}).Import(context.Background(), filepath.Join(t.TempDir(), "nope"), c, imports.Options{})
	assert.Error(t, err)
}

func TestConvertFlattensUntitledLists(t *testing.T) {
	folders, links := convert([]node{
		{
			WebBookmarkType: "WebBookmarkTypeList",
			Children: []node{
				{WebBookmarkType: "WebBookmarkTypeLeaf", Title: "Inner", URLString: "https://inner.example/"},
				{WebBookmarkType: "WebBookmarkTypeList", Title: "Named", Children: []node{
					{WebBookmarkType: "WebBookmarkTypeLeaf", Title: "Deep", URLString: "https://deep.example/"},
				}},
			},
		},
	})
	require.Len(t, links, 1)
	assert.Equal(t, "Inner", links[0].Title)
	require.Len(t, folders, 1)
	assert.Equal(t, "Named", folders[0].Name)
	require.Len(t, folders[0].Links, 1)
	assert.Equal(t, "Deep", folders[0].Links[0].Title)
}
