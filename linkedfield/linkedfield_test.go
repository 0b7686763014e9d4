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

package linkedfield

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pdfview/highlight"
	"seehuhn.de/go/pdfview/ui"
	"seehuhn.de/go/pdfview/ui/uitest"
)

func TestNavigateNotFound(t *testing.T) {
	doc := uitest.NewDocument("field")
	n := New(doc, &uitest.Scheduler{})

	cases := []struct {
		name string
		h    *highlight.Highlight
	}{
		{"nil highlight", nil},
		{"no linked field", &highlight.Highlight{ID: "h", Page: 1}},
		{"empty linked field", &highlight.Highlight{ID: "h", Page: 1, LinkedFieldID: ""}},
		{"missing element", &highlight.Highlight{ID: "h", Page: 1, LinkedFieldID: "other"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			el, ok := n.Navigate(c.h, nil)
			if ok || el != nil {
				t.Errorf("Navigate = %v, %t", el, ok)
			}
		})
	}

	f := doc.Get("field")
	if f.Focused != 0 || len(f.Scrolls) != 0 || len(f.Classes()) != 0 {
		t.Error("unrelated field was touched")
	}
}

func TestNavigateWithoutDocument(t *testing.T) {
	n := New(nil, &uitest.Scheduler{})
	h := &highlight.Highlight{ID: "h", Page: 1, LinkedFieldID: "field"}
	if _, ok := n.Navigate(h, nil); ok {
		t.Error("field found without a document")
	}
}

func TestNavigate(t *testing.T) {
	doc := uitest.NewDocument("field")
	s := &uitest.Scheduler{}
	n := New(doc, s)

	h := &highlight.Highlight{ID: "h", Page: 1, LinkedFieldID: "field"}
	el, ok := n.Navigate(h, nil)
	if !ok {
		t.Fatal("field not found")
	}
	f := doc.Get("field")
	if el != ui.Element(f) {
		t.Errorf("wrong element returned")
	}
	want := []ui.ScrollOptions{{Behavior: ui.Smooth, Block: ui.Center, Inline: ui.Center}}
	if d := cmp.Diff(want, f.Scrolls); d != "" {
		t.Errorf("scrolls (-want +got):\n%s", d)
	}
	if f.Focused != 1 {
		t.Errorf("focused %d times", f.Focused)
	}
	if !f.HasClass(DefaultFocusClass) {
		t.Error("focus class not set")
	}

	s.Advance(DefaultFocusDuration - time.Millisecond)
	if !f.HasClass(DefaultFocusClass) {
		t.Error("focus class removed early")
	}
	s.Advance(time.Millisecond)
	if f.HasClass(DefaultFocusClass) {
		t.Error("focus class not removed")
	}
}

func TestNavigateOptions(t *testing.T) {
	doc := uitest.NewDocument("field")
	s := &uitest.Scheduler{}
	n := New(doc, s)

	h := &highlight.Highlight{ID: "h", Page: 1, LinkedFieldID: "field"}
	opt := &Options{
		ScrollBehavior: ui.Auto,
		Block:          ui.Start,
		FocusClass:     "glow",
		FocusDuration:  500 * time.Millisecond,
	}
	if _, ok := n.Navigate(h, opt); !ok {
		t.Fatal("field not found")
	}
	f := doc.Get("field")
	want := ui.ScrollOptions{Behavior: ui.Auto, Block: ui.Start, Inline: ui.Center}
	if f.Scrolls[0] != want {
		t.Errorf("scroll options %v, want %v", f.Scrolls[0], want)
	}
	if !f.HasClass("glow") {
		t.Error("custom class not set")
	}
	s.Advance(500 * time.Millisecond)
	if f.HasClass("glow") {
		t.Error("custom class not removed")
	}
}

func TestFocusEffectRearm(t *testing.T) {
	doc := uitest.NewDocument("field")
	s := &uitest.Scheduler{}
	n := New(doc, s)
	f := doc.Get("field")

	n.ApplyFocusEffect(f, "c", 2*time.Second)
	s.Advance(1500 * time.Millisecond)
	n.ApplyFocusEffect(f, "c", 2*time.Second)
	if s.ActiveTimers() != 1 {
		t.Errorf("%d active timers, want 1", s.ActiveTimers())
	}

	// the first timer would have fired here
	s.Advance(time.Second)
	if !f.HasClass("c") {
		t.Error("class removed by the superseded timer")
	}

	s.Advance(time.Second)
	if f.HasClass("c") {
		t.Error("class not removed")
	}
	if f.Removed["c"] != 1 {
		t.Errorf("class removed %d times, want 1", f.Removed["c"])
	}
	if f.Focused != 2 {
		t.Errorf("focused %d times, want 2", f.Focused)
	}
}

func TestFocusEffectClassChange(t *testing.T) {
	doc := uitest.NewDocument("field")
	s := &uitest.Scheduler{}
	n := New(doc, s)
	f := doc.Get("field")

	n.ApplyFocusEffect(f, "a", time.Second)
	n.ApplyFocusEffect(f, "b", time.Second)
	if d := cmp.Diff([]string{"b"}, f.Classes()); d != "" {
		t.Errorf("classes (-want +got):\n%s", d)
	}
	s.Advance(time.Second)
	if len(f.Classes()) != 0 {
		t.Errorf("leaked classes %v", f.Classes())
	}
}

func TestReset(t *testing.T) {
	doc := uitest.NewDocument("a", "b")
	s := &uitest.Scheduler{}
	n := New(doc, s)
	n.ApplyFocusEffect(doc.Get("a"), "", 0)
	n.ApplyFocusEffect(doc.Get("b"), "", 0)
	n.Reset()
	if s.ActiveTimers() != 0 {
		t.Errorf("%d timers left", s.ActiveTimers())
	}
	for _, id := range []string{"a", "b"} {
		if doc.Get(id).HasClass(DefaultFocusClass) {
			t.Errorf("class left on %s", id)
		}
	}
}
