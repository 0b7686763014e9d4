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

// Package focus keeps track of which highlight is focused.
//
// A focus request names a highlight.  The request stays pending until the
// page showing the highlight is displayed and the highlight's element has
// been mounted.  At this point the element is scrolled into view and the
// highlight is focused for [DefaultDuration].
package focus

import (
	"fmt"
	"time"

	"seehuhn.de/go/pdfview/highlight"
	"seehuhn.de/go/pdfview/ui"
)

// DefaultDuration is the time a highlight stays focused.
const DefaultDuration = 2 * time.Second

// Phase is the state of a [Tracker].
type Phase int

// These are the phases of a [Tracker].
const (
	Idle Phase = iota
	Pending
	Focused
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Focused:
		return "focused"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is the externally visible state of a [Tracker].
// ID is empty if and only if Phase is Idle.
type State struct {
	Phase Phase
	ID    string
}

// Tracker is the state machine for highlight focus requests.
//
// The states are Idle, Pending(id) and Focused(id).  A request moves the
// tracker to Pending from any state, a successful [Tracker.Resolve] moves
// it from Pending to Focused, and the expiry timer moves it from Focused
// back to Idle.
type Tracker struct {
	loc   ui.Locator
	sched ui.Scheduler

	// Behavior is used when scrolling a focused element into view.
	Behavior ui.Behavior

	// Duration is the time a highlight stays focused.  If this is zero,
	// DefaultDuration is used.
	Duration time.Duration

	// OnChange, if set, is called when the focus expires.
	OnChange func()

	state State
	timer ui.Timer
	gen   uint64
}

// NewTracker returns a tracker which finds highlight elements using loc.
func NewTracker(loc ui.Locator, sched ui.Scheduler) *Tracker {
	return &Tracker{
		loc:      loc,
		sched:    sched,
		Behavior: ui.Smooth,
	}
}

// State returns the current state.
func (t *Tracker) State() State {
	return t.state
}

// FocusedID returns the ID of the focused highlight, or the empty string.
func (t *Tracker) FocusedID() string {
	if t.state.Phase != Focused {
		return ""
	}
	return t.state.ID
}

// PendingID returns the ID of the pending request, or the empty string.
func (t *Tracker) PendingID() string {
	if t.state.Phase != Pending {
		return ""
	}
	return t.state.ID
}

// Request asks for the highlight with the given ID to be focused.
// Any earlier request, and any current focus, is superseded.
func (t *Tracker) Request(id string) {
	t.stopTimer()
	if id == "" {
		t.state = State{}
		return
	}
	t.state = State{Phase: Pending, ID: id}
}

// Resolve tries to complete a pending request.
//
// The request completes if the highlight exists, lies on the given page,
// and its element is mounted.  Otherwise the request stays pending.
// The return value reports whether the request was completed.
func (t *Tracker) Resolve(hh []highlight.Highlight, page, pageCount int) bool {
	if t.state.Phase != Pending || pageCount <= 0 {
		return false
	}
	id := t.state.ID
	h, ok := highlight.Find(hh, id)
	if !ok || h.Page != page {
		return false
	}
	if t.loc == nil {
		return false
	}
	el, ok := t.loc.Lookup(id)
	if !ok {
		return false
	}

	el.ScrollIntoView(ui.CenterScroll(t.Behavior))
	t.state = State{Phase: Focused, ID: id}
	t.startTimer()
	return true
}

// Reset returns the tracker to the idle state and stops the expiry timer.
func (t *Tracker) Reset() {
	t.stopTimer()
	t.state = State{}
}

func (t *Tracker) startTimer() {
	t.stopTimer()
	d := t.Duration
	if d <= 0 {
		d = DefaultDuration
	}
	gen := t.gen
	t.timer = t.sched.AfterFunc(d, func() {
		if gen != t.gen || t.state.Phase != Focused {
			return
		}
		t.timer = nil
		t.state = State{}
		if t.OnChange != nil {
			t.OnChange()
		}
	})
}

func (t *Tracker) stopTimer() {
	t.gen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
