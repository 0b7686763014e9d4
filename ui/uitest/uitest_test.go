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

package uitest

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSchedulerTimers(t *testing.T) {
	s := &Scheduler{}
	var got []string
	s.AfterFunc(2*time.Second, func() { got = append(got, "b") })
	s.AfterFunc(time.Second, func() { got = append(got, "a") })
	stopped := s.AfterFunc(1500*time.Millisecond, func() { got = append(got, "x") })
	if !stopped.Stop() {
		t.Error("Stop of a pending timer returned false")
	}
	if stopped.Stop() {
		t.Error("second Stop returned true")
	}
	if s.ActiveTimers() != 2 {
		t.Errorf("%d active timers", s.ActiveTimers())
	}

	s.Advance(1500 * time.Millisecond)
	if d := cmp.Diff([]string{"a"}, got); d != "" {
		t.Errorf("after 1.5s (-want +got):\n%s", d)
	}
	s.Advance(time.Second)
	if d := cmp.Diff([]string{"a", "b"}, got); d != "" {
		t.Errorf("after 2.5s (-want +got):\n%s", d)
	}
	if s.ActiveTimers() != 0 {
		t.Errorf("%d active timers", s.ActiveTimers())
	}
}

func TestSchedulerGoAndFrames(t *testing.T) {
	s := &Scheduler{}
	var got []string
	s.Go(func() func() {
		got = append(got, "work")
		return func() { got = append(got, "cont") }
	})
	s.RequestFrame(func() { got = append(got, "frame") })
	if d := cmp.Diff([]string{"work"}, got); d != "" {
		t.Errorf("before flush (-want +got):\n%s", d)
	}
	s.Flush()
	if n := s.Frame(); n != 1 {
		t.Errorf("Frame ran %d callbacks", n)
	}
	if d := cmp.Diff([]string{"work", "cont", "frame"}, got); d != "" {
		t.Errorf("after frame (-want +got):\n%s", d)
	}
}

func TestElement(t *testing.T) {
	doc := NewDocument("a")
	el, ok := doc.Lookup("a")
	if !ok {
		t.Fatal("element not found")
	}
	el.AddClass("x")
	el.AddClass("y")
	el.RemoveClass("x")
	e := doc.Get("a")
	if d := cmp.Diff([]string{"y"}, e.Classes()); d != "" {
		t.Errorf("classes (-want +got):\n%s", d)
	}
	if _, ok := doc.Lookup("b"); ok {
		t.Error("missing element found")
	}
}
