// seehuhn.de/go/pdfview - a PDF viewer with highlight overlays
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package uitest

import (
	"maps"
	"slices"

	"seehuhn.de/go/pdfview/ui"
)

// Element is a [ui.Element] which records all calls.
type Element struct {
	Name    string
	Focused int
	Scrolls []ui.ScrollOptions

	classes map[string]bool

	// Added and Removed count AddClass and RemoveClass calls per class.
	Added   map[string]int
	Removed map[string]int
}

var _ ui.Element = (*Element)(nil)

// NewElement returns a new element with the given ID.
func NewElement(id string) *Element {
	return &Element{
		Name:    id,
		classes: make(map[string]bool),
		Added:   make(map[string]int),
		Removed: make(map[string]int),
	}
}

// ID implements the [ui.Element] interface.
func (e *Element) ID() string { return e.Name }

// Focus implements the [ui.Element] interface.
func (e *Element) Focus() { e.Focused++ }

// ScrollIntoView implements the [ui.Element] interface.
func (e *Element) ScrollIntoView(opt ui.ScrollOptions) {
	e.Scrolls = append(e.Scrolls, opt)
}

// AddClass implements the [ui.Element] interface.
func (e *Element) AddClass(name string) {
	e.classes[name] = true
	e.Added[name]++
}

// RemoveClass implements the [ui.Element] interface.
func (e *Element) RemoveClass(name string) {
	delete(e.classes, name)
	e.Removed[name]++
}

// HasClass reports whether the class is currently set.
func (e *Element) HasClass(name string) bool {
	return e.classes[name]
}

// Classes returns the currently set classes in sorted order.
func (e *Element) Classes() []string {
	return slices.Sorted(maps.Keys(e.classes))
}

// Document is a [ui.Locator] backed by a map.
type Document struct {
	elems map[string]*Element
}

var _ ui.Locator = (*Document)(nil)

// NewDocument returns a document containing elements with the given IDs.
func NewDocument(ids ...string) *Document {
	d := &Document{elems: make(map[string]*Element)}
	for _, id := range ids {
		d.Add(id)
	}
	return d
}

// Add creates a new element and adds it to the document.
func (d *Document) Add(id string) *Element {
	e := NewElement(id)
	d.elems[id] = e
	return e
}

// Remove removes the element with the given ID.
func (d *Document) Remove(id string) {
	delete(d.elems, id)
}

// Get returns the element with the given ID, or nil.
func (d *Document) Get(id string) *Element {
	return d.elems[id]
}

// Lookup implements the [ui.Locator] interface.
func (d *Document) Lookup(id string) (ui.Element, bool) {
	e, ok := d.elems[id]
	if !ok {
		return nil, false
	}
	return e, true
}
