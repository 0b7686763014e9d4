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

// Package viewport describes the pixel rectangle a page is rendered into.
//
// Device space has its origin in the top-left corner of the rendered page,
// with y increasing downwards.  PDF user space has its origin in the
// bottom-left corner, with y increasing upwards, and is measured in PDF
// points.  At scale 1 one point corresponds to one pixel.
package viewport

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Viewport is the size of a rendered page in device pixels.
type Viewport struct {
	Width  float64
	Height float64

	// Scale is the zoom factor the viewport was computed for.
	Scale float64
}

// Provider is implemented by pages which can compute their viewport for a
// given zoom factor.
type Provider interface {
	Viewport(scale float64) Viewport
}

// Bounds returns the viewport as a rectangle in device space.
func (v Viewport) Bounds() rect.Rect {
	return rect.Rect{URx: v.Width, URy: v.Height}
}

// IsEmpty reports whether the viewport has no area.
func (v Viewport) IsEmpty() bool {
	return !(v.Width > 0 && v.Height > 0)
}

// PDFToDevice returns the transformation which maps PDF user space
// coordinates of the page (relative to the lower left corner of the page
// box) to device space.
func (v Viewport) PDFToDevice() matrix.Matrix {
	return matrix.Matrix{v.Scale, 0, 0, -v.Scale, 0, v.Height}
}

// Box is an axis-aligned rectangle in device space.
type Box struct {
	Left, Top     float64
	Width, Height float64
}

// ToDevice maps a rectangle given in PDF user space to device space.
// The result is normalised so that Width and Height are not negative.
func (v Viewport) ToDevice(r rect.Rect) Box {
	m := v.PDFToDevice()
	a := m.Apply(vec.Vec2{X: r.LLx, Y: r.LLy})
	b := m.Apply(vec.Vec2{X: r.URx, Y: r.URy})
	return Box{
		Left:   min(a.X, b.X),
		Top:    min(a.Y, b.Y),
		Width:  max(a.X, b.X) - min(a.X, b.X),
		Height: max(a.Y, b.Y) - min(a.Y, b.Y),
	}
}

// Contains reports whether the device space point (x, y) lies inside b.
func (b Box) Contains(x, y float64) bool {
	return x >= b.Left && x < b.Left+b.Width && y >= b.Top && y < b.Top+b.Height
}
