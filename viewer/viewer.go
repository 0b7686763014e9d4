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

// Package viewer holds the state of a PDF viewer with highlight overlays.
//
// A [Viewer] combines a document, the current page and zoom factor, a set
// of highlights, and the focus state of these highlights.  It does not
// draw anything itself.  A rendering surface reads the state using
// [Viewer.State], [Viewer.Toolbar] and [Viewer.Rendered], mounts the
// elements for the rendered highlights in [Viewer.Registry], and forwards
// user input to the viewer.
//
// All methods must be called on the UI loop which runs the scheduler
// passed to [New].
package viewer

import (
	"context"
	"math"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"seehuhn.de/go/pdfview/engine"
	"seehuhn.de/go/pdfview/focus"
	"seehuhn.de/go/pdfview/highlight"
	"seehuhn.de/go/pdfview/linkedfield"
	"seehuhn.de/go/pdfview/nav"
	"seehuhn.de/go/pdfview/ui"
	"seehuhn.de/go/pdfview/zoom"
)

// Document is a loaded PDF document.
// This is implemented by [*engine.Document].
type Document interface {
	NumPages() int
	Page(ctx context.Context, n int) (*engine.Page, error)
	Highlights() []highlight.Highlight
	Close() error
}

var _ Document = (*engine.Document)(nil)

// State is the navigation state of a viewer.
type State struct {
	Page      int
	PageCount int
	Zoom      float64
}

// Toolbar is the information shown in the viewer's toolbar.
type Toolbar struct {
	Page      int
	PageCount int
	CanPrev   bool
	CanNext   bool
	Zoom      float64
	Loading   bool

	// Download is the location from which the document can be saved,
	// or the empty string if no document is loaded.
	Download string
}

// ZoomPercent returns the zoom factor in percent, rounded to an integer.
func (t Toolbar) ZoomPercent() int {
	return int(math.Round(t.Zoom * 100))
}

// Viewer is the state of a PDF viewer.
type Viewer struct {
	opt   Options
	sched ui.Scheduler
	log   *zap.Logger

	doc     Document
	target  *engine.Target
	docGen  uint64
	loading bool

	page    *engine.Page
	pageGen uint64

	state State

	// highlights set by the caller; nil selects the document's own
	userHighlights []highlight.Highlight
	highlights     []highlight.Highlight
	rendered       []highlight.Rendered

	registry *focus.Registry
	tracker  *focus.Tracker
	fields   *linkedfield.Navigator
	wheel    zoom.Wheel

	closed bool
}

// New creates a new viewer.  Linked form fields are looked up using
// fields, which may be nil.  If opt is nil, [DefaultOptions] is used.
func New(sched ui.Scheduler, fields ui.Locator, opt *Options) *Viewer {
	o := opt.withDefaults()
	v := &Viewer{
		opt:      o,
		sched:    sched,
		log:      o.Logger,
		registry: focus.NewRegistry(),
		fields:   linkedfield.New(fields, sched),
	}
	v.state = State{
		Page: 1,
		Zoom: zoom.Clamp(o.InitialZoom, o.MinZoom, o.MaxZoom),
	}
	v.tracker = focus.NewTracker(v.registry, sched)
	v.tracker.Behavior = o.HighlightScrollBehavior
	v.tracker.OnChange = v.changed
	v.registry.OnChange = v.tryResolve
	return v
}

// Open starts loading the document described by src.  The document
// replaces the current document once it has been loaded.  If Open is
// called again before loading completes, the earlier load is discarded.
func (v *Viewer) Open(ctx context.Context, src engine.Source) {
	if v.closed {
		return
	}
	v.docGen++
	gen := v.docGen
	v.loading = true
	v.changed()

	open := v.opt.Open
	log := v.log
	v.sched.Go(func() func() {
		doc, err := open(ctx, src)
		var target *engine.Target
		if err == nil {
			var dlErr error
			target, dlErr = engine.Download(ctx, src)
			if dlErr != nil {
				log.Warn("no download target", zap.Stringer("source", src), zap.Error(dlErr))
			}
		}

		return func() {
			if gen != v.docGen || v.closed {
				if doc != nil {
					err := multierr.Append(doc.Close(), target.Release())
					if err != nil {
						log.Warn("discarding stale document", zap.Error(err))
					}
				}
				return
			}
			v.loading = false
			if err != nil {
				log.Error("cannot load document", zap.Stringer("source", src), zap.Error(err))
				v.install(nil, nil)
				return
			}
			v.install(doc, target)
		}
	})
}

// SetDocument installs an already loaded document.  Ownership of doc and
// target passes to the viewer.  Both may be nil.
func (v *Viewer) SetDocument(doc Document, target *engine.Target) {
	if v.closed {
		return
	}
	v.docGen++
	v.loading = false
	v.install(doc, target)
}

func (v *Viewer) install(doc Document, target *engine.Target) {
	if err := v.releaseDocument(); err != nil {
		v.log.Warn("closing previous document", zap.Error(err))
	}

	v.doc = doc
	v.target = target

	count := 0
	if doc != nil {
		count = doc.NumPages()
	}
	requested := v.state.Page
	if v.state.PageCount == 0 {
		requested = v.opt.InitialPage
	}
	v.state.PageCount = count
	v.state.Page = nav.ClampPage(requested, count)

	v.updateHighlights()
	v.loadPage()
	v.changed()
}

func (v *Viewer) releaseDocument() error {
	var err error
	if v.doc != nil {
		err = multierr.Append(err, v.doc.Close())
		v.doc = nil
	}
	if v.target != nil {
		err = multierr.Append(err, v.target.Release())
		v.target = nil
	}
	return err
}

// loadPage fetches the page handle for the current page.
func (v *Viewer) loadPage() {
	v.pageGen++
	gen := v.pageGen
	v.page = nil
	v.rendered = nil

	doc := v.doc
	if doc == nil {
		return
	}
	n := v.state.Page
	log := v.log
	v.sched.Go(func() func() {
		p, err := doc.Page(context.Background(), n)
		return func() {
			if gen != v.pageGen || v.closed {
				return
			}
			if err != nil {
				log.Error("cannot load page", zap.Int("page", n), zap.Error(err))
				return
			}
			v.page = p
			v.remap()
			v.tryResolve()
			v.changed()
		}
	})
}

func (v *Viewer) remap() {
	if v.page == nil {
		v.rendered = nil
		return
	}
	v.rendered = highlight.Map(v.highlights, v.state.Page, v.page, v.state.Zoom)
}

// tryResolve completes a pending focus request, if possible.
func (v *Viewer) tryResolve() {
	if v.closed || v.page == nil || v.page.Number != v.state.Page {
		return
	}
	if v.tracker.Resolve(v.highlights, v.state.Page, v.state.PageCount) {
		v.changed()
	}
}

func (v *Viewer) changed() {
	if v.opt.OnChange != nil {
		v.opt.OnChange()
	}
}

func (v *Viewer) setPage(n int) {
	n = nav.ClampPage(n, v.state.PageCount)
	if n == v.state.Page {
		return
	}
	v.state.Page = n
	v.loadPage()
	v.changed()
}

func (v *Viewer) setZoom(z float64) {
	if math.IsNaN(z) {
		return
	}
	z = zoom.Clamp(z, v.opt.MinZoom, v.opt.MaxZoom)
	if z == v.state.Zoom {
		return
	}
	v.state.Zoom = z
	v.remap()
	v.tryResolve()
	v.changed()
}

// GoToPage shows the given page.  Out of range page numbers are clamped.
func (v *Viewer) GoToPage(n int) {
	v.setPage(n)
}

// GoPrev shows the previous page.
func (v *Viewer) GoPrev() {
	v.setPage(nav.Prev(v.state.Page))
}

// GoNext shows the next page.
func (v *Viewer) GoNext() {
	v.setPage(nav.Next(v.state.Page, v.state.PageCount))
}

// ZoomIn increases the zoom factor by one step.
func (v *Viewer) ZoomIn() {
	v.setZoom(zoom.In(v.state.Zoom, v.opt.ZoomStep, v.opt.MaxZoom))
}

// ZoomOut decreases the zoom factor by one step.
func (v *Viewer) ZoomOut() {
	v.setZoom(zoom.Out(v.state.Zoom, v.opt.ZoomStep, v.opt.MinZoom))
}

// ResetZoom restores the initial zoom factor.
func (v *Viewer) ResetZoom() {
	v.setZoom(v.opt.InitialZoom)
}

// SetZoom sets the zoom factor.  The value is clamped to the allowed
// range.
func (v *Viewer) SetZoom(z float64) {
	v.setZoom(z)
}

// Wheel handles a mouse wheel event.  The return value reports whether the
// event was used for zooming; in this case the surface should not scroll.
//
// Wheel deltas are collected and applied once per frame.
func (v *Viewer) Wheel(deltaY float64, ctrl bool) bool {
	if v.closed || !v.opt.EnableCtrlWheelZoom || !ctrl {
		return false
	}
	if v.wheel.Add(deltaY) {
		v.sched.RequestFrame(v.applyWheel)
	}
	return true
}

func (v *Viewer) applyWheel() {
	d := v.wheel.Take()
	if v.closed || d == 0 {
		return
	}
	v.setZoom(zoom.FromWheelDelta(v.state.Zoom, d, v.opt.ZoomStep, v.opt.MinZoom, v.opt.MaxZoom))
}

// GoToHighlight shows the page of the given highlight and focuses the
// highlight once it has been drawn.  The return value is false, and
// nothing happens, if the highlight does not exist or lies outside the
// document.
func (v *Viewer) GoToHighlight(id string) bool {
	target, ok := highlight.Resolve(id, v.highlights, v.state.PageCount)
	if !ok {
		return false
	}

	v.tracker.Request(target.HighlightID)
	if z := v.opt.HighlightFocusZoom; z != nil {
		v.setZoom(*z)
	}
	if target.Page != v.state.Page {
		v.setPage(target.Page)
	}
	v.tryResolve()
	v.changed()
	return true
}

// GoToLinkedField moves the input focus to the form field linked to the
// given highlight.  Unless the highlight is unknown or has no linked field,
// OnLinkedFieldFocus is called, with a nil element if the field does not
// exist.
func (v *Viewer) GoToLinkedField(id string) (ui.Element, bool) {
	h, ok := highlight.Find(v.highlights, id)
	if !ok || h.LinkedFieldID == "" {
		return nil, false
	}
	return v.focusLinkedField(h)
}

func (v *Viewer) focusLinkedField(h *highlight.Highlight) (ui.Element, bool) {
	el, found := v.fields.Navigate(h, v.fieldOptions())
	if v.opt.OnLinkedFieldFocus != nil {
		v.opt.OnLinkedFieldFocus(*h, el)
	}
	return el, found
}

// ClickHighlight handles a click on a highlight.
func (v *Viewer) ClickHighlight(id string) {
	h, ok := highlight.Find(v.highlights, id)
	if !ok {
		return
	}
	if v.opt.OnHighlightClick != nil {
		v.opt.OnHighlightClick(*h)
	}

	if v.opt.EnableFieldNavigation && h.LinkedFieldID != "" {
		if _, found := v.focusLinkedField(h); found {
			return
		}
	}

	if v.opt.EnableHighlightNavigation {
		v.GoToHighlight(id)
	}
}

func (v *Viewer) fieldOptions() *linkedfield.Options {
	return &linkedfield.Options{
		FocusClass:    v.opt.LinkedFieldFocusClass,
		FocusDuration: v.opt.LinkedFieldFocusDuration,
	}
}

// SetHighlights replaces the highlights shown on the document.  If hh is
// nil, the highlight annotations of the document are shown.
func (v *Viewer) SetHighlights(hh []highlight.Highlight) {
	v.userHighlights = hh
	v.updateHighlights()
	v.changed()
}

func (v *Viewer) updateHighlights() {
	switch {
	case v.userHighlights != nil:
		v.highlights = v.userHighlights
	case v.doc != nil:
		v.highlights = v.doc.Highlights()
	default:
		v.highlights = nil
	}
	v.remap()
	v.tryResolve()
}

// State returns the navigation state.
func (v *Viewer) State() State {
	return v.state
}

// Toolbar returns the information shown in the toolbar.
func (v *Viewer) Toolbar() Toolbar {
	return Toolbar{
		Page:      v.state.Page,
		PageCount: v.state.PageCount,
		CanPrev:   nav.CanPrev(v.state.Page),
		CanNext:   nav.CanNext(v.state.Page, v.state.PageCount),
		Zoom:      v.state.Zoom,
		Loading:   v.loading,
		Download:  v.target.String(),
	}
}

// Rendered returns the highlights on the current page, in device
// coordinates.  The result must not be modified.
func (v *Viewer) Rendered() []highlight.Rendered {
	return v.rendered
}

// Highlights returns all highlights.  The result must not be modified.
func (v *Viewer) Highlights() []highlight.Highlight {
	return v.highlights
}

// FocusedID returns the ID of the focused highlight, or the empty string.
func (v *Viewer) FocusedID() string {
	return v.tracker.FocusedID()
}

// FocusState returns the state of the highlight focus.
func (v *Viewer) FocusState() focus.State {
	return v.tracker.State()
}

// Registry returns the registry in which the rendering surface mounts the
// elements of the rendered highlights.
func (v *Viewer) Registry() *focus.Registry {
	return v.registry
}

// Page returns the current page, or nil if the page has not been loaded
// yet.
func (v *Viewer) Page() *engine.Page {
	return v.page
}

// Loading reports whether a document is being loaded.
func (v *Viewer) Loading() bool {
	return v.loading
}

// Close releases the document and all pending timers.  The viewer cannot
// be used afterwards.
func (v *Viewer) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true
	v.docGen++
	v.pageGen++
	v.loading = false
	v.tracker.Reset()
	v.fields.Reset()
	v.wheel.Reset()
	v.registry.OnChange = nil
	v.page = nil
	v.rendered = nil
	return v.releaseDocument()
}
