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

// Package zoom implements the zoom arithmetic of the viewer.
//
// Zoom levels are scale factors, where 1 shows a page at 72 pixels per
// inch (one pixel per PDF point).
package zoom

import (
	"math"

	"seehuhn.de/go/pdfview/internal/clamp"
)

// Wheel deltas are measured in pixels.  WheelUnit pixels of scrolling
// correspond to one zoom step, and a single update never applies more than
// WheelMaxSteps steps.
const (
	WheelUnit     = 80
	WheelMaxSteps = 4
)

// Clamp restricts z to the range [minZoom, maxZoom].
func Clamp(z, minZoom, maxZoom float64) float64 {
	return clamp.Clamp(z, minZoom, maxZoom)
}

// In increases the zoom level by step.  The result is never smaller than
// current and never larger than maxZoom.
func In(current, step, maxZoom float64) float64 {
	return clamp.Clamp(current+step, current, maxZoom)
}

// Out decreases the zoom level by step.  The result is never larger than
// current and never smaller than minZoom.
func Out(current, step, minZoom float64) float64 {
	return clamp.Clamp(current-step, minZoom, current)
}

// FromWheelDelta converts a vertical wheel movement into a new zoom level.
// Scrolling up (deltaY < 0) zooms in, scrolling down zooms out.  The step
// is scaled by the magnitude of the movement, see [WheelUnit].
func FromWheelDelta(current, deltaY, step, minZoom, maxZoom float64) float64 {
	var sign float64
	switch {
	case deltaY > 0:
		sign = 1
	case deltaY < 0:
		sign = -1
	default:
		// zero or NaN
		return clamp.Clamp(current, minZoom, maxZoom)
	}
	scaled := -step * sign * math.Min(math.Abs(deltaY)/WheelUnit, WheelMaxSteps)
	return clamp.Clamp(current+scaled, minZoom, maxZoom)
}
