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

// Package highlight describes rectangular regions of interest on PDF pages
// and maps them to device space.
//
// A highlight is given either as a fraction of the rendered page box
// ([Percent], the default) or in PDF user space units ([PDF]).  The
// function [Map] converts the highlights of one page into device space
// rectangles for a given zoom level, and [Resolve] decides whether and where
// the viewer can navigate to a highlight.
package highlight

import (
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfview/viewport"
)

// Space identifies the coordinate system of a highlight.
type Space string

// These are the supported coordinate spaces.
const (
	// Percent coordinates are fractions of the rendered page box, with the
	// origin in the top-left corner.  They stay valid for all zoom levels.
	Percent Space = "percent"

	// PDF coordinates are given in PDF points, with the origin in the
	// bottom-left corner of the page.
	PDF Space = "pdf"
)

// Default presentation attributes.
const (
	DefaultColor   = "#f97316"
	DefaultOpacity = 0.3
)

// Highlight is a rectangular region on a page.
//
// Highlights are supplied by the caller and are never modified by the
// viewer.
type Highlight struct {
	// ID identifies the highlight.  IDs must be unique within a set.
	ID string `yaml:"id"`

	// Page is the 1-based page number.
	Page int `yaml:"page"`

	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// Color is the fill colour, for example "#f97316".
	// If this is empty, DefaultColor is used.
	Color string `yaml:"color,omitempty"`

	// Opacity is in the range [0, 1].  If this is nil, DefaultOpacity is used.
	Opacity *float64 `yaml:"opacity,omitempty"`

	// Space is the coordinate space of X, Y, Width and Height.
	// The empty value means Percent.
	Space Space `yaml:"space,omitempty"`

	// LinkedFieldID optionally names a form field element which belongs to
	// this highlight.
	LinkedFieldID string `yaml:"linked_field,omitempty"`

	// Data is passed through unchanged.
	Data any `yaml:"data,omitempty"`
}

// CoordinateSpace returns the effective coordinate space of h.
func (h *Highlight) CoordinateSpace() Space {
	if h.Space == "" {
		return Percent
	}
	return h.Space
}

// FillColor returns the effective fill colour of h.
func (h *Highlight) FillColor() string {
	if h.Color == "" {
		return DefaultColor
	}
	return h.Color
}

// FillOpacity returns the effective opacity of h.
func (h *Highlight) FillOpacity() float64 {
	if h.Opacity == nil {
		return DefaultOpacity
	}
	return *h.Opacity
}

// PDFRect returns the highlight as a rectangle in PDF user space.
// This is only meaningful for highlights in the PDF coordinate space.
func (h *Highlight) PDFRect() rect.Rect {
	return rect.Rect{
		LLx: h.X,
		LLy: h.Y,
		URx: h.X + h.Width,
		URy: h.Y + h.Height,
	}
}

// Rendered is a highlight together with its position in device space.
type Rendered struct {
	Highlight

	Left     float64
	Top      float64
	WidthPx  float64
	HeightPx float64
}

// Box returns the device space rectangle of r.
func (r *Rendered) Box() viewport.Box {
	return viewport.Box{Left: r.Left, Top: r.Top, Width: r.WidthPx, Height: r.HeightPx}
}
