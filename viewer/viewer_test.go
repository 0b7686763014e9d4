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

package viewer

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfview/engine"
	"seehuhn.de/go/pdfview/focus"
	"seehuhn.de/go/pdfview/highlight"
	"seehuhn.de/go/pdfview/ui"
	"seehuhn.de/go/pdfview/ui/uitest"
)

type fakeDoc struct {
	pages  []*engine.Page
	hh     []highlight.Highlight
	calls  []int
	closed int
}

func newFakeDoc(n int) *fakeDoc {
	d := &fakeDoc{}
	for i := range n {
		d.pages = append(d.pages, &engine.Page{
			Number: i + 1,
			Box:    rect.Rect{URx: 600, URy: 800},
		})
	}
	return d
}

func (d *fakeDoc) NumPages() int { return len(d.pages) }

func (d *fakeDoc) Page(_ context.Context, n int) (*engine.Page, error) {
	d.calls = append(d.calls, n)
	if n < 1 || n > len(d.pages) {
		return nil, engine.ErrPageRange
	}
	return d.pages[n-1], nil
}

func (d *fakeDoc) Highlights() []highlight.Highlight { return d.hh }

func (d *fakeDoc) Close() error {
	d.closed++
	return nil
}

var testURL = engine.URL("https://example.com/form.pdf")

var testHighlights = []highlight.Highlight{
	{ID: "h1", Page: 1, X: 0.1, Y: 0.1, Width: 0.5, Height: 0.05, LinkedFieldID: "name"},
	{ID: "h2", Page: 3, X: 0.2, Y: 0.5, Width: 0.3, Height: 0.1},
	{ID: "h3", Page: 2, X: 0, Y: 0, Width: 1, Height: 1, LinkedFieldID: "missing"},
	{ID: "far", Page: 10, X: 0, Y: 0, Width: 1, Height: 1},
}

type env struct {
	s      *uitest.Scheduler
	fields *uitest.Document
	v      *Viewer
	doc    *fakeDoc
}

// setup returns a viewer showing a five page document.
func setup(t *testing.T, modify func(*Options)) *env {
	t.Helper()
	e := &env{
		s:      &uitest.Scheduler{},
		fields: uitest.NewDocument("name"),
		doc:    newFakeDoc(5),
	}
	opt := DefaultOptions()
	opt.Open = func(context.Context, engine.Source) (Document, error) {
		return e.doc, nil
	}
	if modify != nil {
		modify(opt)
	}
	e.v = New(e.s, e.fields, opt)
	e.v.Open(context.Background(), testURL)
	e.s.Flush()
	t.Cleanup(func() { e.v.Close() })
	return e
}

func TestOpen(t *testing.T) {
	e := setup(t, nil)

	want := State{Page: 1, PageCount: 5, Zoom: 1}
	if got := e.v.State(); got != want {
		t.Errorf("state %v, want %v", got, want)
	}
	if p := e.v.Page(); p == nil || p.Number != 1 {
		t.Errorf("page %v", p)
	}
	tb := e.v.Toolbar()
	wantTB := Toolbar{Page: 1, PageCount: 5, CanNext: true, Zoom: 1, Download: testURL.URL()}
	if tb != wantTB {
		t.Errorf("toolbar %v, want %v", tb, wantTB)
	}
	if tb.ZoomPercent() != 100 {
		t.Errorf("zoom %d%%", tb.ZoomPercent())
	}
}

func TestNavigation(t *testing.T) {
	e := setup(t, nil)
	v := e.v

	steps := []struct {
		action func()
		page   int
	}{
		{v.GoPrev, 1},
		{v.GoNext, 2},
		{func() { v.GoToPage(99) }, 5},
		{v.GoNext, 5},
		{v.GoPrev, 4},
		{func() { v.GoToPage(-3) }, 1},
	}
	for i, step := range steps {
		step.action()
		e.s.Flush()
		if got := v.State().Page; got != step.page {
			t.Errorf("step %d: page %d, want %d", i, got, step.page)
		}
		if p := v.Page(); p == nil || p.Number != step.page {
			t.Errorf("step %d: page handle %v", i, p)
		}
	}

	tb := v.Toolbar()
	if tb.CanPrev || !tb.CanNext {
		t.Errorf("toolbar %v on first page", tb)
	}
}

func TestInitialPage(t *testing.T) {
	e := setup(t, func(o *Options) { o.InitialPage = 7 })
	if got := e.v.State().Page; got != 5 {
		t.Errorf("page %d, want 5", got)
	}
}

func TestStalePageDiscarded(t *testing.T) {
	e := setup(t, nil)
	e.v.GoNext()
	e.v.GoNext()
	e.s.Flush()

	if p := e.v.Page(); p == nil || p.Number != 3 {
		t.Errorf("page handle %v, want page 3", p)
	}
	if d := cmp.Diff([]int{1, 2, 3}, e.doc.calls); d != "" {
		t.Errorf("page loads (-want +got):\n%s", d)
	}
}

func TestStaleDocumentDiscarded(t *testing.T) {
	s := &uitest.Scheduler{}
	first, second := newFakeDoc(2), newFakeDoc(7)
	docs := []*fakeDoc{first, second}
	opt := DefaultOptions()
	opt.Open = func(context.Context, engine.Source) (Document, error) {
		d := docs[0]
		docs = docs[1:]
		return d, nil
	}
	v := New(s, nil, opt)
	defer v.Close()

	v.Open(context.Background(), engine.URL("a.pdf"))
	v.Open(context.Background(), engine.URL("b.pdf"))
	if !v.Loading() {
		t.Error("not loading")
	}
	s.Flush()

	if first.closed != 1 {
		t.Errorf("stale document closed %d times", first.closed)
	}
	if second.closed != 0 {
		t.Error("current document closed")
	}
	if got := v.State().PageCount; got != 7 {
		t.Errorf("page count %d, want 7", got)
	}
	if v.Loading() {
		t.Error("still loading")
	}
}

func TestStaleDownloadReleased(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TMPDIR", dir)
	tempFiles := func() []string {
		t.Helper()
		names, err := filepath.Glob(filepath.Join(dir, "pdfview-*.pdf"))
		if err != nil {
			t.Fatal(err)
		}
		return names
	}

	s := &uitest.Scheduler{}
	first, second := newFakeDoc(2), newFakeDoc(3)
	docs := []*fakeDoc{first, second}
	opt := DefaultOptions()
	opt.Open = func(context.Context, engine.Source) (Document, error) {
		d := docs[0]
		docs = docs[1:]
		return d, nil
	}
	v := New(s, nil, opt)
	defer v.Close()

	v.Open(context.Background(), engine.Data([]byte("%PDF-1.7 first")))
	stale := tempFiles()
	if len(stale) != 1 {
		t.Fatalf("temporary files after first load: %v", stale)
	}
	v.Open(context.Background(), engine.Data([]byte("%PDF-1.7 second")))
	if n := len(tempFiles()); n != 2 {
		t.Fatalf("%d temporary files after second load, want 2", n)
	}
	s.Flush()

	if _, err := os.Stat(stale[0]); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("stale download target not released: %v", err)
	}
	current := v.Toolbar().Download
	if _, err := os.Stat(current); err != nil {
		t.Errorf("current download target: %v", err)
	}
	if d := cmp.Diff([]string{current}, tempFiles()); d != "" {
		t.Errorf("temporary files (-want +got):\n%s", d)
	}
	if first.closed != 1 || second.closed != 0 {
		t.Errorf("closed: first %d, second %d", first.closed, second.closed)
	}
}

func TestReplaceDocument(t *testing.T) {
	e := setup(t, nil)
	e.v.GoToPage(4)
	e.s.Flush()

	next := newFakeDoc(2)
	e.v.SetDocument(next, nil)
	e.s.Flush()
	if e.doc.closed != 1 {
		t.Errorf("old document closed %d times", e.doc.closed)
	}
	if got := e.v.State(); got.Page != 2 || got.PageCount != 2 {
		t.Errorf("state %v", got)
	}
}

func TestLoadFailure(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	s := &uitest.Scheduler{}
	opt := DefaultOptions()
	opt.Logger = zap.New(core)
	opt.Open = func(context.Context, engine.Source) (Document, error) {
		return nil, engine.ErrNotPDF
	}
	v := New(s, nil, opt)
	defer v.Close()

	v.Open(context.Background(), engine.Data([]byte("hello")))
	s.Flush()

	if got := v.State(); got != (State{Page: 1, Zoom: 1}) {
		t.Errorf("state %v", got)
	}
	if v.Page() != nil || v.Loading() {
		t.Error("document state not empty")
	}
	entries := logs.FilterMessage("cannot load document").All()
	if len(entries) != 1 {
		t.Fatalf("%d log entries", len(entries))
	}
	if err, _ := entries[0].ContextMap()["error"].(string); err != engine.ErrNotPDF.Error() {
		t.Errorf("logged error %q", err)
	}

	v.GoNext()
	v.ZoomIn()
	if v.State().Page != 1 {
		t.Error("navigated without a document")
	}
}

func TestZoom(t *testing.T) {
	e := setup(t, nil)
	v := e.v
	approx := cmpopts.EquateApprox(0, 1e-9)

	steps := []struct {
		action func()
		zoom   float64
	}{
		{v.ZoomIn, 1.2},
		{v.ZoomIn, 1.4},
		{v.ResetZoom, 1},
		{v.ZoomOut, 0.8},
		{v.ZoomOut, 0.6},
		{v.ZoomOut, 0.5},
		{v.ZoomOut, 0.5},
		{func() { v.SetZoom(10) }, 3},
		{v.ZoomIn, 3},
		{func() { v.SetZoom(math.NaN()) }, 3},
		{func() { v.SetZoom(2) }, 2},
	}
	for i, step := range steps {
		step.action()
		if got := v.State().Zoom; !cmp.Equal(got, step.zoom, approx) {
			t.Errorf("step %d: zoom %g, want %g", i, got, step.zoom)
		}
	}
}

func TestRenderedFollowsZoom(t *testing.T) {
	e := setup(t, nil)
	e.v.SetHighlights(testHighlights)

	rr := e.v.Rendered()
	if len(rr) != 1 || rr[0].ID != "h1" {
		t.Fatalf("rendered %v", rr)
	}
	approx := cmpopts.EquateApprox(0, 1e-9)
	want := []float64{60, 80, 300, 40}
	got := []float64{rr[0].Left, rr[0].Top, rr[0].WidthPx, rr[0].HeightPx}
	if d := cmp.Diff(want, got, approx); d != "" {
		t.Errorf("zoom 1 (-want +got):\n%s", d)
	}

	e.v.SetZoom(2)
	rr = e.v.Rendered()
	got = []float64{rr[0].Left, rr[0].Top, rr[0].WidthPx, rr[0].HeightPx}
	want = []float64{120, 160, 600, 80}
	if d := cmp.Diff(want, got, approx); d != "" {
		t.Errorf("zoom 2 (-want +got):\n%s", d)
	}
}

func TestWheel(t *testing.T) {
	e := setup(t, nil)
	v := e.v

	if v.Wheel(-80, false) {
		t.Error("wheel without ctrl used for zoom")
	}
	for range 3 {
		if !v.Wheel(-80, true) {
			t.Fatal("ctrl-wheel not used for zoom")
		}
	}
	if n := e.s.PendingFrames(); n != 1 {
		t.Errorf("%d frames requested, want 1", n)
	}
	if v.State().Zoom != 1 {
		t.Error("zoom changed before the frame")
	}
	e.s.Frame()
	if got := v.State().Zoom; math.Abs(got-1.6) > 1e-9 {
		t.Errorf("zoom %g after one frame, want 1.6", got)
	}

	v.Wheel(800, true)
	e.s.Frame()
	if got := v.State().Zoom; math.Abs(got-0.8) > 1e-9 {
		t.Errorf("zoom %g, want 0.8", got)
	}

	v.Wheel(math.NaN(), true)
	e.s.Frame()
	if got := v.State().Zoom; math.Abs(got-0.8) > 1e-9 {
		t.Errorf("zoom %g after NaN delta, want 0.8", got)
	}
	v.Wheel(math.NaN(), true)
	v.Wheel(-80, true)
	e.s.Frame()
	if got := v.State().Zoom; math.Abs(got-0.8) > 1e-9 {
		t.Errorf("zoom %g after poisoned frame, want 0.8", got)
	}
}

func TestWheelDisabled(t *testing.T) {
	e := setup(t, func(o *Options) { o.EnableCtrlWheelZoom = false })
	if e.v.Wheel(-80, true) {
		t.Error("wheel used while disabled")
	}
	if e.s.PendingFrames() != 0 {
		t.Error("frame requested")
	}
}

func TestGoToHighlight(t *testing.T) {
	e := setup(t, nil)
	e.v.SetHighlights(testHighlights)

	for _, id := range []string{"nope", "far", ""} {
		if e.v.GoToHighlight(id) {
			t.Errorf("GoToHighlight(%q) succeeded", id)
		}
	}
	if e.v.FocusState().Phase != focus.Idle {
		t.Fatal("invalid request changed the focus")
	}

	if !e.v.GoToHighlight("h2") {
		t.Fatal("GoToHighlight(h2) failed")
	}
	e.s.Flush()
	if got := e.v.State().Page; got != 3 {
		t.Errorf("page %d, want 3", got)
	}
	if got := e.v.FocusState(); got != (focus.State{Phase: focus.Pending, ID: "h2"}) {
		t.Errorf("focus %v before mount", got)
	}

	el := uitest.NewElement("h2")
	e.v.Registry().Mount("h2", el)
	if e.v.FocusedID() != "h2" {
		t.Errorf("focus %v after mount", e.v.FocusState())
	}
	want := []ui.ScrollOptions{ui.CenterScroll(ui.Smooth)}
	if d := cmp.Diff(want, el.Scrolls); d != "" {
		t.Errorf("scrolls (-want +got):\n%s", d)
	}

	e.s.Advance(focus.DefaultDuration)
	if e.v.FocusedID() != "" {
		t.Error("focus did not expire")
	}
}

func TestGoToHighlightZoom(t *testing.T) {
	z := 2.5
	e := setup(t, func(o *Options) { o.HighlightFocusZoom = &z })
	e.v.SetHighlights(testHighlights)
	e.v.GoToHighlight("h1")
	if got := e.v.State().Zoom; got != 2.5 {
		t.Errorf("zoom %g, want 2.5", got)
	}
}

func TestGoToHighlightSamePage(t *testing.T) {
	e := setup(t, nil)
	e.v.SetHighlights(testHighlights)
	el := uitest.NewElement("h1")
	e.v.Registry().Mount("h1", el)

	if !e.v.GoToHighlight("h1") {
		t.Fatal("GoToHighlight failed")
	}
	if e.v.FocusedID() != "h1" {
		t.Errorf("focus %v", e.v.FocusState())
	}
}

func TestClickHighlightFieldNavigation(t *testing.T) {
	var clicks []string
	type fieldCall struct {
		id    string
		found bool
	}
	var fieldCalls []fieldCall
	e := setup(t, func(o *Options) {
		o.EnableFieldNavigation = true
		o.OnHighlightClick = func(h highlight.Highlight) {
			clicks = append(clicks, h.ID)
		}
		o.OnLinkedFieldFocus = func(h highlight.Highlight, el ui.Element) {
			fieldCalls = append(fieldCalls, fieldCall{h.ID, el != nil})
		}
	})
	e.v.SetHighlights(testHighlights)

	e.v.ClickHighlight("h1")
	field := e.fields.Get("name")
	if field.Focused != 1 || !field.HasClass(DefaultOptions().LinkedFieldFocusClass) {
		t.Errorf("field not focused")
	}
	if e.v.FocusState().Phase != focus.Idle {
		t.Errorf("highlight navigation after field navigation: %v", e.v.FocusState())
	}

	// h3 is linked to a missing field, so highlight navigation takes over
	e.v.ClickHighlight("h3")
	e.s.Flush()
	if got := e.v.FocusState(); got != (focus.State{Phase: focus.Pending, ID: "h3"}) {
		t.Errorf("focus %v", got)
	}
	if e.v.State().Page != 2 {
		t.Errorf("page %d, want 2", e.v.State().Page)
	}

	e.v.ClickHighlight("nope")

	if d := cmp.Diff([]string{"h1", "h3"}, clicks); d != "" {
		t.Errorf("clicks (-want +got):\n%s", d)
	}
	wantCalls := []fieldCall{{"h1", true}, {"h3", false}}
	if d := cmp.Diff(wantCalls, fieldCalls, cmp.AllowUnexported(fieldCall{})); d != "" {
		t.Errorf("field callbacks (-want +got):\n%s", d)
	}

	e.s.Advance(2 * time.Second)
	if field.HasClass(DefaultOptions().LinkedFieldFocusClass) {
		t.Error("focus class not removed")
	}
}

func TestClickHighlightDefault(t *testing.T) {
	fieldCalls := 0
	e := setup(t, func(o *Options) {
		o.OnLinkedFieldFocus = func(highlight.Highlight, ui.Element) { fieldCalls++ }
	})
	e.v.SetHighlights(testHighlights)
	e.v.Registry().Mount("h1", uitest.NewElement("h1"))

	e.v.ClickHighlight("h1")
	if fieldCalls != 0 {
		t.Error("field navigation while disabled")
	}
	if e.v.FocusedID() != "h1" {
		t.Errorf("focus %v", e.v.FocusState())
	}
	if e.fields.Get("name").Focused != 0 {
		t.Error("field focused")
	}
}

func TestGoToLinkedField(t *testing.T) {
	type call struct {
		ID    string
		Found bool
	}
	var calls []call
	e := setup(t, func(o *Options) {
		o.OnLinkedFieldFocus = func(h highlight.Highlight, el ui.Element) {
			calls = append(calls, call{h.ID, el != nil})
		}
	})
	e.v.SetHighlights(testHighlights)

	if _, ok := e.v.GoToLinkedField("h2"); ok {
		t.Error("highlight without field")
	}
	if _, ok := e.v.GoToLinkedField("h3"); ok {
		t.Error("missing field found")
	}
	el, ok := e.v.GoToLinkedField("h1")
	if !ok || el.ID() != "name" {
		t.Errorf("GoToLinkedField(h1) = %v, %t", el, ok)
	}
	if _, ok := e.v.GoToLinkedField("unknown"); ok {
		t.Error("unknown highlight found")
	}

	want := []call{{"h3", false}, {"h1", true}}
	if d := cmp.Diff(want, calls); d != "" {
		t.Errorf("OnLinkedFieldFocus calls (-want +got):\n%s", d)
	}
}

func TestDocumentHighlights(t *testing.T) {
	s := &uitest.Scheduler{}
	doc := newFakeDoc(2)
	doc.hh = []highlight.Highlight{
		{ID: "a", Page: 1, X: 100, Y: 700, Width: 50, Height: 20, Space: highlight.PDF},
	}
	v := New(s, nil, nil)
	defer v.Close()
	v.SetDocument(doc, nil)
	s.Flush()

	if d := cmp.Diff(doc.hh, v.Highlights()); d != "" {
		t.Errorf("highlights (-want +got):\n%s", d)
	}
	rr := v.Rendered()
	if len(rr) != 1 || rr[0].Left != 100 || rr[0].Top != 80 {
		t.Errorf("rendered %v", rr)
	}

	v.SetHighlights(testHighlights)
	if len(v.Highlights()) != len(testHighlights) {
		t.Error("highlights not replaced")
	}
	v.SetHighlights(nil)
	if d := cmp.Diff(doc.hh, v.Highlights()); d != "" {
		t.Errorf("highlights after reset (-want +got):\n%s", d)
	}
}

func TestClose(t *testing.T) {
	s := &uitest.Scheduler{}
	doc := newFakeDoc(3)
	opt := DefaultOptions()
	opt.Open = func(context.Context, engine.Source) (Document, error) {
		return doc, nil
	}
	v := New(s, nil, opt)
	v.Open(context.Background(), engine.Data([]byte("%PDF-1.7")))
	s.Flush()

	target := v.Toolbar().Download
	if target == "" {
		t.Fatal("no download target")
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatal(err)
	}

	v.SetHighlights(testHighlights)
	v.Registry().Mount("h1", uitest.NewElement("h1"))
	v.GoToHighlight("h1")
	v.Wheel(-80, true)

	if err := v.Close(); err != nil {
		t.Fatal(err)
	}
	if err := v.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if doc.closed != 1 {
		t.Errorf("document closed %d times", doc.closed)
	}
	if _, err := os.Stat(target); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("download target not released: %v", err)
	}
	if s.ActiveTimers() != 0 {
		t.Errorf("%d timers after Close", s.ActiveTimers())
	}
	s.Frame()
	if v.State().Zoom != 1 {
		t.Error("wheel applied after Close")
	}

	// a load which completes after Close is discarded
	late := newFakeDoc(1)
	v2 := New(s, nil, &Options{Open: func(context.Context, engine.Source) (Document, error) { return late, nil }})
	v2.Open(context.Background(), testURL)
	v2.Close()
	s.Flush()
	if late.closed != 1 {
		t.Errorf("late document closed %d times", late.closed)
	}
}
