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

package zoom

// Wheel accumulates wheel deltas which arrive faster than the display
// refresh rate.  The zero value is ready to use.
//
// The owner calls Add for every wheel event.  When Add returns true, the
// owner must schedule a frame callback, which calls Take and applies the
// accumulated delta once.
type Wheel struct {
	delta     float64
	scheduled bool
}

// Add records a wheel movement.  The return value reports whether a frame
// callback needs to be scheduled.
func (w *Wheel) Add(deltaY float64) bool {
	w.delta += deltaY
	if w.scheduled {
		return false
	}
	w.scheduled = true
	return true
}

// Take returns the accumulated delta and resets the accumulator.
func (w *Wheel) Take() float64 {
	d := w.delta
	w.delta = 0
	w.scheduled = false
	return d
}

// Pending reports whether a frame callback is outstanding.
func (w *Wheel) Pending() bool {
	return w.scheduled
}

// Reset discards any accumulated delta.
func (w *Wheel) Reset() {
	w.delta = 0
	w.scheduled = false
}
