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

// Package nav implements page navigation arithmetic for the viewer.
//
// All functions are pure and total over the int range.  Pages are numbered
// starting from 1.  A page count of zero means that no document is loaded.
package nav

import "seehuhn.de/go/pdfview/internal/clamp"

// ClampPage restricts page to the range of valid page numbers.
// If pageCount is not positive, the result is 1.
func ClampPage(page, pageCount int) int {
	if pageCount <= 0 {
		return 1
	}
	return clamp.Clamp(page, 1, pageCount)
}

// Prev returns the page before current, but never less than 1.
func Prev(current int) int {
	return max(current-1, 1)
}

// Next returns the page after current, but never more than pageCount.
//
// If pageCount is zero, the document length is unknown and the result is
// current+1.  Callers which keep a page number must clamp the result with
// [ClampPage] before storing it.
func Next(current, pageCount int) int {
	if pageCount == 0 {
		return current + 1
	}
	return min(current+1, pageCount)
}

// CanPrev reports whether there is a page before page.
func CanPrev(page int) bool {
	return page > 1
}

// CanNext reports whether there is a page after page.
func CanNext(page, pageCount int) bool {
	return pageCount > 0 && page < pageCount
}
