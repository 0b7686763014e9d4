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

package engine

import (
	"fmt"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf"

	"seehuhn.de/go/pdfview/viewport"
)

// letter is used for pages without a valid MediaBox.
var letter = rect.Rect{URx: 612, URy: 792}

// Page describes the geometry of one page of a document.
type Page struct {
	// Number is the page number, starting at 1.
	Number int

	// Box is the visible region of the page, in PDF units.  This is the
	// CropBox if present, and the MediaBox otherwise.
	Box rect.Rect

	// Rotate is the clockwise rotation of the page when displayed, in
	// degrees.  This is one of 0, 90, 180 or 270.
	Rotate int
}

var _ viewport.Provider = (*Page)(nil)

// Viewport returns the size of the page in device pixels at the given
// scale.  For pages rotated by 90 or 270 degrees, width and height are
// swapped.
func (p *Page) Viewport(scale float64) viewport.Viewport {
	w := p.Box.Dx() * scale
	h := p.Box.Dy() * scale
	if p.Rotate == 90 || p.Rotate == 270 {
		w, h = h, w
	}
	return viewport.Viewport{Width: w, Height: h, Scale: scale}
}

func decodePage(r pdf.Getter, n int, dict pdf.Dict) (*Page, error) {
	p := &Page{Number: n}

	media, err := getBox(r, dict["MediaBox"])
	if err != nil {
		return nil, fmt.Errorf("MediaBox: %w", err)
	}
	if isEmpty(media) {
		media = letter
	}
	p.Box = media

	crop, err := getBox(r, dict["CropBox"])
	if err != nil {
		return nil, fmt.Errorf("CropBox: %w", err)
	}
	crop = intersect(crop, media)
	if !isEmpty(crop) {
		p.Box = crop
	}

	if _, ok := dict["Rotate"]; ok {
		rot, err := pdf.GetInteger(r, dict["Rotate"])
		if err != nil {
			return nil, fmt.Errorf("Rotate: %w", err)
		}
		p.Rotate = normalizeRotation(int(rot))
	}

	return p, nil
}

// getBox reads a rectangle.  A missing rectangle gives the zero value.
func getBox(r pdf.Getter, obj pdf.Object) (rect.Rect, error) {
	if obj == nil {
		return rect.Rect{}, nil
	}
	box, err := pdf.GetRectangle(r, obj)
	if err != nil || box == nil {
		return rect.Rect{}, err
	}
	res := rect.Rect{LLx: box.LLx, LLy: box.LLy, URx: box.URx, URy: box.URy}
	if res.LLx > res.URx {
		res.LLx, res.URx = res.URx, res.LLx
	}
	if res.LLy > res.URy {
		res.LLy, res.URy = res.URy, res.LLy
	}
	return res, nil
}

// normalizeRotation maps a /Rotate value to one of 0, 90, 180 and 270.
// Values which are not a multiple of 90 are treated as 0.
func normalizeRotation(deg int) int {
	if deg%90 != 0 {
		return 0
	}
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}

func isEmpty(r rect.Rect) bool {
	return r.URx <= r.LLx || r.URy <= r.LLy
}

func intersect(a, b rect.Rect) rect.Rect {
	return rect.Rect{
		LLx: max(a.LLx, b.LLx),
		LLy: max(a.LLy, b.LLy),
		URx: min(a.URx, b.URx),
		URy: min(a.URy, b.URy),
	}
}
