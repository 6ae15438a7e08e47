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

// Package store persists the record collection as a single CSV file.
//
// The file holds one header row and one row per record, in collection
// order, with the fixed column set
//
//	rowtype,id,page_id,widget_id,column,order,name,url,notes,color
//
// Records are projected to this flat schema only here; the rest of the
// program works with the typed collection from package record.
//
// Load is forgiving: missing columns and unparseable integers default
// to zero values so the file format can grow without migrations. Save
// is a full overwrite through a temp-file rename, so readers never
// observe a half-written file. A Store serializes every
// load-mutate-save sequence behind its mutex; use Update for writes
// and View for reads.
package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/cloudygreybeard/startpage/pkg/record"
)

// fields is the persisted column set, in file order.
var fields = []string{"rowtype", "id", "page_id", "widget_id", "column", "order", "name", "url", "notes", "color"}

// Store is a CSV-file-backed record store.
type Store struct {
	path string
	mu   sync.Mutex
}

// Open returns a store for the given path, creating the file with the
// default page when it does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		c := &record.Collection{}
		c.Append(&record.Page{ID: record.DefaultPageID, Name: record.DefaultPageName, Order: 0})
		if err := s.write(c); err != nil {
			return nil, fmt.Errorf("initializing store: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("checking store: %w", err)
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads every record from the file. Missing fields default to
// empty strings and zero integers.
func (s *Store) Load() (*record.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Save writes the full collection, replacing the file atomically.
func (s *Store) Save(c *record.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(c)
}

// Update runs fn over the loaded collection and saves the result,
// holding the store lock for the whole load-mutate-save sequence.
// When fn returns an error nothing is saved.
func (s *Store) Update(fn func(*record.Collection) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(c); err != nil {
		return err
	}
	return s.write(c)
}

// View runs fn over a freshly loaded collection without saving.
func (s *Store) View(fn func(*record.Collection) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.read()
	if err != nil {
		return err
	}
	return fn(c)
}

func (s *Store) read() (*record.Collection, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			c := &record.Collection{}
			c.Append(&record.Page{ID: record.DefaultPageID, Name: record.DefaultPageName, Order: 0})
			return c, nil
		}
		return nil, fmt.Errorf("opening store: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading store: %w", err)
	}
	if len(rows) == 0 {
		return &record.Collection{}, nil
	}

	// Map header names to positions so column order and growth on disk
	// stay non-breaking.
	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[name] = i
	}
	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}
	intField := func(row []string, name string) int {
		n, _ := strconv.Atoi(field(row, name))
		return n
	}

	c := &record.Collection{}
	for _, row := range rows[1:] {
		switch record.Kind(field(row, "rowtype")) {
		case record.KindPage:
			c.Append(&record.Page{
				ID:    field(row, "id"),
				Name:  field(row, "name"),
				Order: intField(row, "order"),
			})
		case record.KindWidget:
			col := intField(row, "column")
			if col == 0 {
				col = 1
			}
			c.Append(&record.Widget{
				ID:     field(row, "id"),
				PageID: field(row, "page_id"),
				Column: col,
				Order:  intField(row, "order"),
				Name:   field(row, "name"),
			})
		case record.KindBookmark:
			c.Append(&record.Bookmark{
				ID:       field(row, "id"),
				WidgetID: field(row, "widget_id"),
				Order:    intField(row, "order"),
				Name:     field(row, "name"),
				URL:      field(row, "url"),
			})
		case record.KindNote:
			c.Append(&record.Note{
				ID:       field(row, "id"),
				WidgetID: field(row, "widget_id"),
				Order:    intField(row, "order"),
				Notes:    field(row, "notes"),
				Color:    field(row, "color"),
			})
		}
	}
	return c, nil
}

func (s *Store) write(c *record.Collection) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	w := csv.NewWriter(tmp)
	if err := w.Write(fields); err != nil {
		tmp.Close()
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range c.Records {
		if err := w.Write(rowOf(r)); err != nil {
			tmp.Close()
			return fmt.Errorf("writing record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("writing store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing store: %w", err)
	}
	return nil
}

// rowOf projects a record to the flat column set. Fields the kind does
// not use stay empty.
func rowOf(r record.Record) []string {
	row := make([]string, len(fields))
	switch v := r.(type) {
	case *record.Page:
		row[0] = string(record.KindPage)
		row[1] = v.ID
		row[5] = strconv.Itoa(v.Order)
		row[6] = v.Name
	case *record.Widget:
		row[0] = string(record.KindWidget)
		row[1] = v.ID
		row[2] = v.PageID
		row[4] = strconv.Itoa(v.Column)
		row[5] = strconv.Itoa(v.Order)
		row[6] = v.Name
	case *record.Bookmark:
		row[0] = string(record.KindBookmark)
		row[1] = v.ID
		row[3] = v.WidgetID
		row[5] = strconv.Itoa(v.Order)
		row[6] = v.Name
		row[7] = v.URL
	case *record.Note:
		row[0] = string(record.KindNote)
		row[1] = v.ID
		row[3] = v.WidgetID
		row[5] = strconv.Itoa(v.Order)
		row[8] = v.Notes
		row[9] = v.Color
	}
	return row
}
