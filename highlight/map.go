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

import (
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfview/viewport"
)

// Map computes the device space positions of the highlights on page pageNo.
//
// Highlights for other pages are omitted from the result, the relative
// order of the remaining highlights is kept.  The page geometry is taken
// from page, at the given scale.  If page is nil (for example because the
// page is not loaded yet), or if there are no highlights, the result is
// nil.
func Map(hh []Highlight, pageNo int, page viewport.Provider, scale float64) []Rendered {
	if len(hh) == 0 || page == nil {
		return nil
	}

	vp := page.Viewport(scale)
	vp.Scale = scale
	m := vp.PDFToDevice()

	var res []Rendered
	for _, h := range hh {
		if h.Page != pageNo {
			continue
		}

		r := Rendered{Highlight: h}
		switch h.CoordinateSpace() {
		case PDF:
			// The top-left corner in device space is the top-left corner
			// (x, y+height) in PDF space.
			topLeft := m.Apply(vec.Vec2{X: h.X, Y: h.Y + h.Height})
			r.Left, r.Top = topLeft.X, topLeft.Y
			r.WidthPx = h.Width * scale
			r.HeightPx = h.Height * scale
		default:
			r.Left = h.X * vp.Width
			r.Top = h.Y * vp.Height
			r.WidthPx = h.Width * vp.Width
			r.HeightPx = h.Height * vp.Height
		}
		res = append(res, r)
	}
	return res
}

// HitTest returns the topmost rendered highlight which contains the device
// space point (x, y).  Later highlights are painted on top of earlier ones.
func HitTest(rr []Rendered, x, y float64) (*Rendered, bool) {
	for i := len(rr) - 1; i >= 0; i-- {
		if rr[i].Box().Contains(x, y) {
			return &rr[i], true
		}
	}
	return nil, false
}
