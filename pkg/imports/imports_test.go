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

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudygreybeard/startpage/pkg/record"
)

func TestBuilderCreatesPageLazily(t *testing.T) {
	c := &record.Collection{}
	b := NewBuilder(c, Options{})
	assert.Equal(t, 0, c.Len(), "nothing created until first use")

	id := b.EnsurePage("Detected")
	assert.Equal(t, id, b.EnsurePage("Other"), "page resolved once per run")

	p := c.FindPage(id)
	require.NotNil(t, p)
	assert.Equal(t, "Detected", p.Name)
	assert.Equal(t, 1, b.Result().PagesCreated)
}

func TestBuilderPageNamePriority(t *testing.T) {
	c := &record.Collection{}
	b := NewBuilder(c, Options{PageName: "Chosen"})
	id := b.EnsurePage("Detected")
	assert.Equal(t, "Chosen", c.FindPage(id).Name)

	b = NewBuilder(c, Options{})
	id = b.EnsurePage("")
	assert.Equal(t, "Imported", c.FindPage(id).Name)
}

func TestBuilderUsesSuppliedPage(t *testing.T) {
	c := &record.Collection{}
	c.Append(&record.Page{ID: "home", Name: "My Start Page", Order: 0})

	b := NewBuilder(c, Options{PageID: "home"})
	assert.Equal(t, "home", b.EnsurePage("Detected"))
	assert.Equal(t, 0, b.Result().PagesCreated)
	assert.Len(t, c.Pages(), 1)
}

func TestOpenWidgetRoundRobin(t *testing.T) {
	c := &record.Collection{}
	b := NewBuilder(c, Options{PageID: "home", StartColumn: 5})

	var cols []int
	for i := 0; i < 4; i++ {
		id := b.OpenWidget("W")
		cols = append(cols, c.FindWidget(id).Column)
	}
	assert.Equal(t, []int{5, 6, 1, 2}, cols, "column wraps after the last one")
}

func TestOpenWidgetClampsStartColumn(t *testing.T) {
	c := &record.Collection{}
	b := NewBuilder(c, Options{PageID: "home", StartColumn: 99})
	id := b.OpenWidget("W")
	assert.Equal(t, record.MaxColumns, c.FindWidget(id).Column)

	b = NewBuilder(c, Options{PageID: "home"})
	id = b.OpenWidget("W")
	assert.Equal(t, 1, c.FindWidget(id).Column, "unset start column means column one")
}

func TestAddLinkFallbackWidget(t *testing.T) {
	c := &record.Collection{}
	b := NewBuilder(c, Options{PageID: "home"})

	b.AddLink("", "https://one.example", "One")
	b.AddLink("", "https://two.example", "Two")

	res := b.Result()
	assert.Equal(t, 1, res.WidgetsCreated, "orphan links share one fallback widget")
	assert.Equal(t, 2, res.BookmarksCreated)

	widgets := c.WidgetsOn("home")
	require.Len(t, widgets, 1)
	assert.Equal(t, FallbackWidgetName, widgets[0].Name)
	assert.Len(t, c.ItemsIn(widgets[0].ID), 2)
}

func TestAddLinkSkipsBlankAndTitles(t *testing.T) {
	c := &record.Collection{}
	b := NewBuilder(c, Options{PageID: "home"})
	wid := b.OpenWidget("Links")

	b.AddLink(wid, "   ", "Ignored")
	b.AddLink(wid, "https://host.example/page", "")

	items := c.ItemsIn(wid)
	require.Len(t, items, 1)
	bm := items[0].(*record.Bookmark)
	assert.Equal(t, "host.example", bm.Name)
	assert.Equal(t, "https://host.example/page", bm.URL)
}

func TestAddTree(t *testing.T) {
	c := &record.Collection{}
	b := NewBuilder(c, Options{PageID: "home"})

	b.AddTree([]Folder{
		{
			Name:  "Outer",
			Links: []Link{{Title: "O1", URL: "https://o1.example"}},
			Folders: []Folder{
				{Name: "Inner", Links: []Link{{Title: "I1", URL: "https://i1.example"}}},
			},
		},
	}, []Link{{Title: "Loose", URL: "https://loose.example"}})

	res := b.Result()
	assert.Equal(t, 3, res.WidgetsCreated, "fallback, Outer, Inner")
	assert.Equal(t, 3, res.BookmarksCreated)

	widgets := c.WidgetsOn("home")
	require.Len(t, widgets, 3)
	assert.Equal(t, FallbackWidgetName, widgets[0].Name)
	assert.Equal(t, "Outer", widgets[1].Name)
	assert.Equal(t, "Inner", widgets[2].Name)
}

func TestSetTitleFirstNonEmptyWins(t *testing.T) {
	c := &record.Collection{}
	b := NewBuilder(c, Options{PageID: "home"})
	b.SetTitle("  ")
	b.SetTitle("First")
	b.SetTitle("Second")
	assert.Equal(t, "First", b.Result().Title)
}

type fakeSource struct{ name string }

func (f *fakeSource) Name() string        { return f.name }
func (f *fakeSource) DisplayName() string { return f.name }
func (f *fakeSource) Available() bool     { return true }
func (f *fakeSource) Path() string        { return "" }
func (f *fakeSource) Import(context.Context, string, *record.Collection, Options) (Result, error) {
	return Result{}, nil
}

func TestRegistry(t *testing.T) {
	Register(&fakeSource{name: "zz-test"})
	Register(&fakeSource{name: "aa-test"})

	s, ok := Get("zz-test")
	require.True(t, ok)
	assert.Equal(t, "zz-test", s.Name())

	_, ok = Get("missing")
	assert.False(t, ok)

	names := List()
	assert.Contains(t, names, "aa-test")
	assert.Contains(t, names, "zz-test")
	assert.IsIncreasing(t, names)
}
