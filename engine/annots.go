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
	"math"

	"go.uber.org/zap"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"

	"seehuhn.de/go/pdfview/highlight"
)

// readHighlights collects the highlight annotations of all pages.
// Broken annotations are skipped.
func (d *Document) readHighlights() []highlight.Highlight {
	var res []highlight.Highlight
	for n := 1; n <= d.numPages; n++ {
		dict, err := pagetree.GetPage(d.r, n-1)
		if err != nil {
			d.log.Warn("cannot read page", zap.Int("page", n), zap.Error(err))
			continue
		}
		page, err := decodePage(d.r, n, dict)
		if err != nil {
			d.log.Warn("cannot decode page", zap.Int("page", n), zap.Error(err))
			continue
		}
		annots, err := pdf.GetArray(d.r, dict["Annots"])
		if err != nil {
			d.log.Warn("malformed /Annots", zap.Int("page", n), zap.Error(err))
			continue
		}
		for i, obj := range annots {
			h, ok := decodeHighlight(d.r, obj, page)
			if !ok {
				continue
			}
			if h.ID == "" {
				h.ID = fmt.Sprintf("p%d-a%d", n, i+1)
			}
			res = append(res, h)
		}
	}
	return res
}

func decodeHighlight(r pdf.Getter, obj pdf.Object, page *Page) (highlight.Highlight, bool) {
	var h highlight.Highlight

	dict, err := pdf.GetDict(r, obj)
	if err != nil || dict == nil {
		return h, false
	}
	subtype, err := pdf.GetName(r, dict["Subtype"])
	if err != nil || subtype != "Highlight" {
		return h, false
	}
	box, err := getBox(r, dict["Rect"])
	if err != nil || isEmpty(box) {
		return h, false
	}

	h.Page = page.Number
	h.Space = highlight.PDF
	h.X = box.LLx - page.Box.LLx
	h.Y = box.LLy - page.Box.LLy
	h.Width = box.Dx()
	h.Height = box.Dy()

	if nm, err := pdf.GetString(r, dict["NM"]); err == nil && len(nm) > 0 {
		h.ID = string(nm)
	}
	if c, err := pdf.GetArray(r, dict["C"]); err == nil && len(c) == 3 {
		var rgb [3]float64
		for i, x := range c {
			v, err := pdf.GetNumber(r, x)
			if err != nil {
				return h, false
			}
			rgb[i] = float64(v)
		}
		h.Color = hexColor(rgb)
	}
	if _, ok := dict["CA"]; ok {
		if ca, err := pdf.GetNumber(r, dict["CA"]); err == nil {
			op := math.Max(0, math.Min(1, float64(ca)))
			h.Opacity = &op
		}
	}

	return h, true
}

func hexColor(rgb [3]float64) string {
	var b [3]uint8
	for i, x := range rgb {
		b[i] = uint8(math.Round(math.Max(0, math.Min(1, x)) * 255))
	}
	return fmt.Sprintf("#%02x%02x%02x", b[0], b[1], b[2])
}
