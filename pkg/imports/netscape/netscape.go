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

// Package netscape imports Netscape bookmark files (bookmarks.html).
//
// This is the format every browser's "export bookmarks" produces:
// <DL> lists nest folders, <H3> headings name them, <A HREF> anchors
// are the links. Real exports are sloppy (unclosed <DT> tags, stray
// text, mixed encodings), so the parser is a forward-only state
// machine over raw tokenizer events rather than a DOM walk, and it
// never fails: a document without usable structure imports as zero
// widgets and zero bookmarks.
//
// Folder scoping follows the list nesting. Each <DL> open bumps a
// depth counter; a closed <H3> creates a widget and pushes it with the
// current depth; each <DL> close pops every widget pushed at
// nested-or-equal depth, so a folder's links attach to it only while
// its own list is being consumed. Links that appear before any folder
// land in a single lazily created "Imported Links" widget.
//
// Bytes are decoded as permissive UTF-8 first; when that pass finds no
// folders and no links the same bytes are re-parsed as Windows-1252.
package netscape

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"

	"github.com/cloudygreybeard/startpage/pkg/imports"
	"github.com/cloudygreybeard/startpage/pkg/record"
)

// titleSniffLimit bounds how much of the document is scanned for a
// <title> before parsing starts.
const titleSniffLimit = 8192

var titleRE = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

func init() {
	imports.Register(&Source{})
}

// Source imports Netscape bookmark HTML files. It always needs an
// explicit file path.
type Source struct{}

// Name returns the source identifier.
func (s *Source) Name() string { return "html" }

// DisplayName returns a human-friendly name.
func (s *Source) DisplayName() string { return "Netscape bookmarks.html" }

// Available returns false: there is no default location for an export
// file.
func (s *Source) Available() bool { return false }

// Path returns an empty string; the caller supplies the file.
func (s *Source) Path() string { return "" }

// Import reads and imports the bookmark file at path.
func (s *Source) Import(ctx context.Context, path string, c *record.Collection, opts imports.Options) (imports.Result, error) {
	if path == "" {
		return imports.Result{}, fmt.Errorf("html source requires a file path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return imports.Result{}, fmt.Errorf("reading bookmarks file: %w", err)
	}
	return Import(data, c, opts), nil
}

// Import parses a bookmarks.html document and appends the created
// records to c. Document problems never surface as errors; at worst
// the result counts nothing beyond the target page.
func Import(data []byte, c *record.Collection, opts imports.Options) imports.Result {
	b := imports.NewBuilder(c, opts)

	sniffed := sniffTitle(data)
	b.EnsurePage(sniffed)

	p := newParser(b)
	p.run(strings.ToValidUTF8(string(data), ""))
	if p.seen == 0 {
		// Nothing recognizable: retry under a single-byte decoding.
		p = newParser(b)
		p.run(decodeWindows1252(data))
	}

	b.SetTitle(strings.TrimSpace(p.title.String()))
	b.SetTitle(sniffed)
	return b.Result()
}

// frame scopes an open folder widget to the list depth it was created
// at.
type frame struct {
	depth    int
	widgetID string
}

// parser is the tokenizer-driven import state machine. It holds the
// list depth, the open-folder stack, and the text accumulators for the
// heading, anchor, and title currently being read.
type parser struct {
	b     *imports.Builder
	depth int
	stack []frame

	inHeading bool
	heading   strings.Builder

	inAnchor bool
	anchor   strings.Builder
	href     string

	inTitle bool
	title   strings.Builder

	// seen counts folders and non-blank links; zero after a full pass
	// means the document had no usable structure.
	seen int
}

func newParser(b *imports.Builder) *parser {
	return &parser{b: b}
}

func (p *parser) run(doc string) {
	tz := html.NewTokenizer(strings.NewReader(doc))
	for {
		switch tz.Next() {
		case html.ErrorToken:
			// EOF or a malformed token: what parsed so far stands.
			return
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := tz.TagName()
			p.openTag(string(name), hasAttr, tz)
		case html.EndTagToken:
			name, _ := tz.TagName()
			p.closeTag(string(name))
		case html.TextToken:
			p.text(string(tz.Text()))
		}
	}
}

func (p *parser) openTag(name string, hasAttr bool, tz *html.Tokenizer) {
	switch name {
	case "dl":
		p.depth++
	case "h3":
		p.inHeading = true
		p.heading.Reset()
	case "a":
		p.inAnchor = true
		p.anchor.Reset()
		p.href = ""
		for hasAttr {
			key, val, more := tz.TagAttr()
			if string(key) == "href" {
				p.href = string(val)
			}
			hasAttr = more
		}
	case "title":
		p.inTitle = true
	}
}

func (p *parser) closeTag(name string) {
	switch name {
	case "h3":
		p.inHeading = false
		id := p.b.OpenWidget(p.heading.String())
		p.stack = append(p.stack, frame{depth: p.depth, widgetID: id})
		p.seen++
	case "a":
		p.inAnchor = false
		if strings.TrimSpace(p.href) != "" {
			p.seen++
		}
		p.b.AddLink(p.currentWidget(), p.href, p.anchor.String())
	case "dl":
		p.depth--
		for len(p.stack) > 0 && p.stack[len(p.stack)-1].depth >= p.depth {
			p.stack = p.stack[:len(p.stack)-1]
		}
	case "title":
		p.inTitle = false
	}
}

func (p *parser) text(s string) {
	if p.inHeading {
		p.heading.WriteString(s)
	}
	if p.inAnchor {
		p.anchor.WriteString(s)
	}
	if p.inTitle {
		p.title.WriteString(s)
	}
}

func (p *parser) currentWidget() string {
	if len(p.stack) == 0 {
		return ""
	}
	return p.stack[len(p.stack)-1].widgetID
}

// sniffTitle extracts the document <title> from the head of the raw
// bytes, before any decoding fallback decisions are made.
func sniffTitle(data []byte) string {
	head := data
	if len(head) > titleSniffLimit {
		head = head[:titleSniffLimit]
	}
	m := titleRE.FindSubmatch([]byte(strings.ToValidUTF8(string(head), "")))
	if m == nil {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(string(m[1])))
}

func decodeWindows1252(data []byte) string {
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "")
	}
	return string(out)
}
