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

package focus

import (
	"maps"
	"slices"

	"seehuhn.de/go/pdfview/ui"
)

// Registry maps highlight IDs to the on-screen elements which show them.
//
// The rendering surface mounts an element when it draws a highlight and
// unmounts it when the highlight disappears.  The registry only holds
// references; it never owns the elements.
type Registry struct {
	elems map[string]ui.Element

	// OnChange, if set, is called after every change of the registry.
	OnChange func()
}

var _ ui.Locator = (*Registry)(nil)

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{elems: make(map[string]ui.Element)}
}

// Mount registers el under the given ID, replacing any previous element.
func (r *Registry) Mount(id string, el ui.Element) {
	if id == "" || el == nil {
		return
	}
	if r.elems == nil {
		r.elems = make(map[string]ui.Element)
	}
	r.elems[id] = el
	r.changed()
}

// Unmount removes the element registered under id.
func (r *Registry) Unmount(id string) {
	if _, ok := r.elems[id]; !ok {
		return
	}
	delete(r.elems, id)
	r.changed()
}

// Clear removes all elements.
func (r *Registry) Clear() {
	if len(r.elems) == 0 {
		return
	}
	clear(r.elems)
	r.changed()
}

// Lookup implements the [ui.Locator] interface.
func (r *Registry) Lookup(id string) (ui.Element, bool) {
	el, ok := r.elems[id]
	return el, ok
}

// IDs returns the IDs of all mounted elements, in sorted order.
func (r *Registry) IDs() []string {
	return slices.Sorted(maps.Keys(r.elems))
}

func (r *Registry) changed() {
	if r.OnChange != nil {
		r.OnChange()
	}
}
