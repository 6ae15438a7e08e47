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

package imports

// Link is a titled URL read from a source.
type Link struct {
	Title string
	URL   string
}

// Folder is a named group of links read from a source, possibly with
// nested folders. Sources that see their data as a tree (browser
// bookmark databases) produce Folders and feed them through AddFolder.
type Folder struct {
	Name    string
	Links   []Link
	Folders []Folder
}

// AddFolder appends a folder and everything under it: the folder
// becomes a widget holding its links, and nested folders become
// widgets of their own, depth-first in source order.
func (b *Builder) AddFolder(f Folder) {
	id := b.OpenWidget(f.Name)
	for _, l := range f.Links {
		b.AddLink(id, l.URL, l.Title)
	}
	for _, child := range f.Folders {
		b.AddFolder(child)
	}
}

// AddTree appends a whole source tree: top-level links land in the
// fallback widget, folders become widgets via AddFolder.
func (b *Builder) AddTree(folders []Folder, links []Link) {
	for _, l := range links {
		b.AddLink("", l.URL, l.Title)
	}
	for _, f := range folders {
		b.AddFolder(f)
	}
}
