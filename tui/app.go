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

// Package tui shows a PDF viewer with highlight overlays in a terminal.
//
// The page is drawn as a block of terminal cells, with the highlights of
// the current page painted on top.  Linked form fields are shown in a
// panel to the right of the page.
package tui

import (
	"context"
	"errors"
	"math"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"seehuhn.de/go/pdfview/highlight"
	"seehuhn.de/go/pdfview/ui"
	"seehuhn.de/go/pdfview/viewer"
)

// Size of a terminal cell in device pixels.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// wheelNotch is the wheel delta reported for one notch of the mouse wheel.
const wheelNotch = 80

// App is the terminal user interface.
// All methods must be called on the UI loop.
type App struct {
	screen tcell.Screen
	sched  ui.Scheduler
	log    *zap.Logger

	v    *viewer.Viewer
	form *Form

	// mounted highlight elements, by highlight ID
	elems map[string]*hlElement

	// ID of the highlight selected with Tab
	selected string

	// scroll position of the page, in cells
	scrollX, scrollY int

	// layout of the last frame
	pageArea  area
	formArea  area
	pageCols  int
	pageRows  int
	lastMouse tcell.ButtonMask

	status string
	dirty  bool
}

type area struct {
	x, y, w, h int
}

func (a area) contains(x, y int) bool {
	return x >= a.x && x < a.x+a.w && y >= a.y && y < a.y+a.h
}

// New creates a terminal user interface on screen.  The screen must have
// been initialised.  The viewer is created using opt, with form as the
// source of linked fields.
func New(screen tcell.Screen, sched ui.Scheduler, form *Form, opt *viewer.Options) *App {
	if form == nil {
		form = &Form{}
	}
	a := &App{
		screen: screen,
		sched:  sched,
		form:   form,
		elems:  make(map[string]*hlElement),
	}

	var o viewer.Options
	if opt != nil {
		o = *opt
	} else {
		o = *viewer.DefaultOptions()
	}
	a.log = o.Logger
	if a.log == nil {
		a.log = zap.NewNop()
	}
	next := o.OnChange
	o.OnChange = func() {
		a.Invalidate()
		if next != nil {
			next()
		}
	}
	a.v = viewer.New(sched, form, &o)
	form.onChange = a.Invalidate
	return a
}

// Viewer returns the viewer shown by the application.
func (a *App) Viewer() *viewer.Viewer {
	return a.v
}

// Form returns the form shown next to the page.
func (a *App) Form() *Form {
	return a.form
}

// Invalidate schedules a redraw for the next frame.
func (a *App) Invalidate() {
	if a.dirty {
		return
	}
	a.dirty = true
	a.sched.RequestFrame(a.Draw)
}

// Run shows the application until the user quits or ctx is cancelled.
// Run returns when loop has stopped.
func (a *App) Run(ctx context.Context, loop *ui.Loop) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.screen.EnableMouse()
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			loop.Post(func() {
				if !a.HandleEvent(ev) {
					cancel()
				}
			})
		}
	}()

	a.Invalidate()
	err := loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return err
}

// HandleEvent processes one terminal event.  The return value is false if
// the user asked to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.screen.Sync()
		a.Invalidate()
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	if f := a.form.Focused(); f != nil {
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyEnter:
			a.form.Blur()
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if r := []rune(f.Value); len(r) > 0 {
				f.Value = string(r[:len(r)-1])
				a.Invalidate()
			}
		case tcell.KeyRune:
			f.Value += string(ev.Rune())
			a.Invalidate()
		}
		return true
	}

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyPgDn:
		a.v.GoNext()
	case tcell.KeyPgUp:
		a.v.GoPrev()
	case tcell.KeyTab:
		a.selectHighlight(1)
	case tcell.KeyBacktab:
		a.selectHighlight(-1)
	case tcell.KeyEnter:
		if a.selected != "" {
			a.v.ClickHighlight(a.selected)
		}
	case tcell.KeyUp:
		a.scrollBy(0, -1)
	case tcell.KeyDown:
		a.scrollBy(0, 1)
	case tcell.KeyLeft:
		a.scrollBy(-1, 0)
	case tcell.KeyRight:
		a.scrollBy(1, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'n', ' ':
			a.v.GoNext()
		case 'p':
			a.v.GoPrev()
		case '+', '=':
			a.v.ZoomIn()
		case '-':
			a.v.ZoomOut()
		case '0':
			a.v.ResetZoom()
		case 'f':
			a.goToField()
		case 'd':
			a.showDownload()
		}
	}
	return true
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	btn := ev.Buttons()
	pressed := btn & ^a.lastMouse
	a.lastMouse = btn & (tcell.Button1 | tcell.Button2 | tcell.Button3)

	switch {
	case btn&tcell.WheelUp != 0, btn&tcell.WheelDown != 0:
		delta := float64(wheelNotch)
		if btn&tcell.WheelUp != 0 {
			delta = -delta
		}
		if a.v.Wheel(delta, ev.Modifiers()&tcell.ModCtrl != 0) {
			return
		}
		if delta < 0 {
			a.scrollBy(0, -3)
		} else {
			a.scrollBy(0, 3)
		}

	case pressed&tcell.Button1 != 0:
		if a.formArea.contains(x, y) {
			row := y - a.formArea.y + a.form.scroll
			if fields := a.form.Fields(); row >= 0 && row < len(fields) {
				fields[row].Focus()
			}
			return
		}
		if id, ok := a.highlightAt(x, y); ok {
			a.selected = id
			a.v.ClickHighlight(id)
			a.Invalidate()
		}
	}
}

// highlightAt returns the topmost highlight drawn at the given cell.
func (a *App) highlightAt(x, y int) (string, bool) {
	if !a.pageArea.contains(x, y) {
		return "", false
	}
	px := (float64(x-a.pageArea.x+a.scrollX) + 0.5) * CellWidth
	py := (float64(y-a.pageArea.y+a.scrollY) + 0.5) * CellHeight
	r, ok := highlight.HitTest(a.v.Rendered(), px, py)
	if !ok {
		return "", false
	}
	return r.ID, true
}

// selectHighlight moves the selection by dir steps through all
// highlights, in document order, and navigates to the selected one.
func (a *App) selectHighlight(dir int) {
	hh := a.v.Highlights()
	if len(hh) == 0 {
		return
	}
	idx := -1
	for i := range hh {
		if hh[i].ID == a.selected {
			idx = i
			break
		}
	}
	for range hh {
		switch {
		case idx < 0 && dir < 0:
			idx = len(hh) - 1
		case idx < 0:
			idx = 0
		default:
			idx = (idx + dir + len(hh)) % len(hh)
		}
		if a.v.GoToHighlight(hh[idx].ID) {
			a.selected = hh[idx].ID
			a.Invalidate()
			return
		}
	}
}

func (a *App) goToField() {
	id := a.selected
	if id == "" {
		id = a.v.FocusedID()
	}
	if id == "" {
		return
	}
	if _, ok := a.v.GoToLinkedField(id); !ok {
		a.status = "no linked field"
		a.Invalidate()
	}
}

func (a *App) showDownload() {
	tb := a.v.Toolbar()
	if tb.Download == "" {
		a.status = "nothing to download"
	} else {
		a.status = "download: " + tb.Download
	}
	a.Invalidate()
}

func (a *App) scrollBy(dx, dy int) {
	a.scrollTo(a.scrollX+dx, a.scrollY+dy)
}

func (a *App) scrollTo(x, y int) {
	maxX := max(0, a.pageCols-a.pageArea.w)
	maxY := max(0, a.pageRows-a.pageArea.h)
	x = min(max(x, 0), maxX)
	y = min(max(y, 0), maxY)
	if x == a.scrollX && y == a.scrollY {
		return
	}
	a.scrollX, a.scrollY = x, y
	a.Invalidate()
}

// scrollToBox scrolls the page so that the given box, in device pixels,
// is centred in the page area.
func (a *App) scrollToBox(left, top, width, height float64) {
	cx := int(math.Floor((left + width/2) / CellWidth))
	cy := int(math.Floor((top + height/2) / CellHeight))
	a.scrollTo(cx-a.pageArea.w/2, cy-a.pageArea.h/2)
}

// syncElements mounts the elements for the rendered highlights and
// unmounts elements which are no longer drawn.
func (a *App) syncElements() {
	reg := a.v.Registry()
	rendered := a.v.Rendered()
	seen := make(map[string]bool, len(rendered))
	for i := range rendered {
		id := rendered[i].ID
		seen[id] = true
		if _, ok := a.elems[id]; ok {
			continue
		}
		el := &hlElement{app: a, id: id}
		a.elems[id] = el
		reg.Mount(id, el)
	}
	for id := range a.elems {
		if !seen[id] {
			delete(a.elems, id)
			reg.Unmount(id)
		}
	}
}

// hlElement is the on-screen element of a rendered highlight.
type hlElement struct {
	app     *App
	id      string
	classes map[string]bool
}

func (e *hlElement) ID() string { return e.id }

func (e *hlElement) Focus() {
	e.app.selected = e.id
	e.app.Invalidate()
}

func (e *hlElement) ScrollIntoView(ui.ScrollOptions) {
	for _, r := range e.app.v.Rendered() {
		if r.ID == e.id {
			e.app.scrollToBox(r.Left, r.Top, r.WidthPx, r.HeightPx)
			return
		}
	}
}

func (e *hlElement) AddClass(name string) {
	if e.classes == nil {
		e.classes = make(map[string]bool)
	}
	e.classes[name] = true
	e.app.Invalidate()
}

func (e *hlElement) RemoveClass(name string) {
	delete(e.classes, name)
	e.app.Invalidate()
}
