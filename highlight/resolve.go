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

package highlight

import "seehuhn.de/go/pdfview/nav"

// Target is the result of a successful [Resolve] call.
type Target struct {
	Page        int
	HighlightID string
}

// Find returns the highlight with the given ID.
func Find(hh []Highlight, id string) (*Highlight, bool) {
	for i := range hh {
		if hh[i].ID == id {
			return &hh[i], true
		}
	}
	return nil, false
}

// Resolve decides whether the viewer can navigate to the highlight with
// the given ID, and which page needs to be shown for this.
//
// The second return value is false if the highlight is not found, if no
// document is loaded (pageCount is zero), or if the highlight refers to a
// page outside the document.
func Resolve(id string, hh []Highlight, pageCount int) (Target, bool) {
	h, ok := Find(hh, id)
	if !ok || pageCount <= 0 || h.Page < 1 || h.Page > pageCount {
		return Target{}, false
	}
	return Target{
		Page:        nav.ClampPage(h.Page, pageCount),
		HighlightID: h.ID,
	}, true
}
