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

package tui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"seehuhn.de/go/pdfview/highlight"
)

var (
	styleBar      = tcell.StyleDefault.Reverse(true)
	styleDisabled = styleBar.Dim(true)
	stylePaper    = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	styleFrame    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleField    = tcell.StyleDefault
	styleMarked   = tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack)
)

const formWidth = 32

// Draw redraws the whole screen.
func (a *App) Draw() {
	a.dirty = false
	s := a.screen
	s.Clear()
	w, h := s.Size()

	formW := 0
	if len(a.form.Fields()) > 0 && w >= 2*formWidth {
		formW = formWidth
	}
	a.pageArea = area{x: 0, y: 1, w: w - formW, h: max(h-2, 0)}
	a.formArea = area{x: w - formW + 1, y: 2, w: max(formW-1, 0), h: max(h-3, 0)}
	a.form.visibleRows = a.formArea.h

	a.drawToolbar(w)
	a.drawPage()
	if formW > 0 {
		a.drawForm()
	}
	a.drawStatus(w, h-1)
	s.Show()

	a.syncElements()
}

func (a *App) drawToolbar(w int) {
	fill(a.screen, area{0, 0, w, 1}, styleBar)
	tb := a.v.Toolbar()

	x := 1
	prev, next := styleDisabled, styleDisabled
	if tb.CanPrev {
		prev = styleBar
	}
	if tb.CanNext {
		next = styleBar
	}
	x = drawText(a.screen, x, 0, prev, "<")
	switch {
	case tb.Loading:
		x = drawText(a.screen, x, 0, styleBar, " loading... ")
	case tb.PageCount == 0:
		x = drawText(a.screen, x, 0, styleBar, " no document ")
	default:
		x = drawText(a.screen, x, 0, styleBar, fmt.Sprintf(" Page %d/%d ", tb.Page, tb.PageCount))
	}
	x = drawText(a.screen, x, 0, next, ">")
	drawText(a.screen, x+2, 0, styleBar, fmt.Sprintf("Zoom %d%%", tb.ZoomPercent()))
}

func (a *App) drawPage() {
	page := a.v.Page()
	if page == nil {
		a.pageCols, a.pageRows = 0, 0
		return
	}
	vp := page.Viewport(a.v.State().Zoom)
	a.pageCols = int(math.Ceil(vp.Width / CellWidth))
	a.pageRows = int(math.Ceil(vp.Height / CellHeight))

	// keep the scroll position valid after zoom changes
	a.scrollX = min(max(a.scrollX, 0), max(0, a.pageCols-a.pageArea.w))
	a.scrollY = min(max(a.scrollY, 0), max(0, a.pageRows-a.pageArea.h))

	visible := area{
		x: a.pageArea.x,
		y: a.pageArea.y,
		w: min(a.pageArea.w, a.pageCols-a.scrollX),
		h: min(a.pageArea.h, a.pageRows-a.scrollY),
	}
	fill(a.screen, visible, stylePaper)
	if visible.w < a.pageArea.w {
		for y := visible.y; y < visible.y+visible.h; y++ {
			a.screen.SetContent(visible.x+visible.w, y, '│', nil, styleFrame)
		}
	}
	if visible.h < a.pageArea.h {
		for x := visible.x; x < visible.x+visible.w; x++ {
			a.screen.SetContent(x, visible.y+visible.h, '─', nil, styleFrame)
		}
	}

	focused := a.v.FocusedID()
	for _, r := range a.v.Rendered() {
		c0 := int(math.Floor(r.Left/CellWidth)) - a.scrollX
		r0 := int(math.Floor(r.Top/CellHeight)) - a.scrollY
		c1 := int(math.Ceil((r.Left+r.WidthPx)/CellWidth)) - a.scrollX
		r1 := int(math.Ceil((r.Top+r.HeightPx)/CellHeight)) - a.scrollY
		box := clip(area{x: visible.x + c0, y: visible.y + r0, w: c1 - c0, h: r1 - r0}, visible)
		if box.w <= 0 || box.h <= 0 {
			continue
		}

		style := stylePaper.Background(blend(r.FillColor(), r.FillOpacity()))
		if r.ID == a.selected {
			style = style.Underline(true)
		}
		if r.ID == focused {
			style = style.Reverse(true).Bold(true)
		}
		fill(a.screen, box, style)
		drawText(a.screen, box.x, box.y, style, truncate(r.ID, box.w))
	}
}

func (a *App) drawForm() {
	s := a.screen
	drawText(s, a.formArea.x, a.formArea.y-1, styleField.Bold(true), "Fields")
	for y := a.pageArea.y; y < a.pageArea.y+a.pageArea.h; y++ {
		s.SetContent(a.formArea.x-1, y, '│', nil, styleFrame)
	}

	fields := a.form.Fields()
	focused := a.form.Focused()
	for row := 0; row < a.formArea.h; row++ {
		i := row + a.form.scroll
		if i >= len(fields) {
			break
		}
		f := fields[i]
		style := styleField
		if len(f.classes) > 0 {
			style = styleMarked
		}
		marker := "  "
		if f == focused {
			marker = "> "
		}
		text := marker + f.Label + ": " + f.Value
		drawText(s, a.formArea.x, a.formArea.y+row, style, truncate(text, a.formArea.w))
	}
}

func (a *App) drawStatus(w, y int) {
	text := a.status
	if text == "" {
		text = "q quit  n/p page  +/-/0 zoom  Tab highlight  Enter open  f field  d download"
	}
	drawText(a.screen, 0, y, tcell.StyleDefault.Dim(true), truncate(text, w))
}

func fill(s tcell.Screen, r area, style tcell.Style) {
	for y := r.y; y < r.y+r.h; y++ {
		for x := r.x; x < r.x+r.w; x++ {
			s.SetContent(x, y, ' ', nil, style)
		}
	}
}

// drawText writes text starting at (x, y) and returns the column after
// the text.
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) int {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

func clip(r, bound area) area {
	x0 := max(r.x, bound.x)
	y0 := max(r.y, bound.y)
	x1 := min(r.x+r.w, bound.x+bound.w)
	y1 := min(r.y+r.h, bound.y+bound.h)
	return area{x: x0, y: y0, w: x1 - x0, h: y1 - y0}
}

// blend mixes a highlight colour with the white paper colour.
func blend(color string, opacity float64) tcell.Color {
	c := tcell.GetColor(color)
	if c == tcell.ColorDefault {
		c = tcell.GetColor(highlight.DefaultColor)
	}
	r, g, b := c.RGB()
	mix := func(v int32) int32 {
		return int32(math.Round(255*(1-opacity) + float64(v)*opacity))
	}
	return tcell.NewRGBColor(mix(r), mix(g), mix(b))
}
