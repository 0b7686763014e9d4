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

// Package uitest provides deterministic implementations of the ui
// interfaces for use in tests.
package uitest

import (
	"slices"
	"sort"
	"time"

	"seehuhn.de/go/pdfview/ui"
)

// Scheduler is a manually driven [ui.Scheduler].
//
// Posted functions and continuations of Go are queued until Flush is
// called.  Work passed to Go runs synchronously.  Time only moves forward
// when Advance is called, and frames only run when Frame is called.
type Scheduler struct {
	now    time.Duration
	queue  []func()
	timers []*timer
	frames []func()
	seq    int
}

var _ ui.Scheduler = (*Scheduler)(nil)

// Post implements the [ui.Scheduler] interface.
func (s *Scheduler) Post(f func()) {
	s.queue = append(s.queue, f)
}

// Go implements the [ui.Scheduler] interface.
func (s *Scheduler) Go(work func() func()) {
	if cont := work(); cont != nil {
		s.Post(cont)
	}
}

// AfterFunc implements the [ui.Scheduler] interface.
func (s *Scheduler) AfterFunc(d time.Duration, f func()) ui.Timer {
	s.seq++
	t := &timer{when: s.now + d, f: f, seq: s.seq, owner: s}
	s.timers = append(s.timers, t)
	return t
}

// RequestFrame implements the [ui.Scheduler] interface.
func (s *Scheduler) RequestFrame(f func()) {
	s.frames = append(s.frames, f)
}

// Flush runs all queued functions, including functions queued while
// flushing.
func (s *Scheduler) Flush() {
	for len(s.queue) > 0 {
		f := s.queue[0]
		s.queue = s.queue[1:]
		f()
	}
}

// Queued returns the number of queued functions.
func (s *Scheduler) Queued() int {
	return len(s.queue)
}

// Frame runs the callbacks requested for the next frame, then flushes the
// queue.  It returns the number of frame callbacks run.
func (s *Scheduler) Frame() int {
	frames := s.frames
	s.frames = nil
	for _, f := range frames {
		f()
	}
	s.Flush()
	return len(frames)
}

// PendingFrames returns the number of callbacks waiting for the next frame.
func (s *Scheduler) PendingFrames() int {
	return len(s.frames)
}

// Advance moves the clock forward by d.  Timers which become due are run in
// order of their due time, and the queue is flushed after each of them.
func (s *Scheduler) Advance(d time.Duration) {
	end := s.now + d
	for {
		due := s.due(end)
		if due == nil {
			break
		}
		s.now = due.when
		due.stopped = true
		s.timers = slices.DeleteFunc(s.timers, func(t *timer) bool { return t == due })
		due.f()
		s.Flush()
	}
	s.now = end
	s.Flush()
}

// Now returns the current time, relative to the creation of s.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// ActiveTimers returns the number of timers which have neither fired nor
// been stopped.
func (s *Scheduler) ActiveTimers() int {
	return len(s.timers)
}

func (s *Scheduler) due(end time.Duration) *timer {
	var cand []*timer
	for _, t := range s.timers {
		if t.when <= end {
			cand = append(cand, t)
		}
	}
	if len(cand) == 0 {
		return nil
	}
	sort.Slice(cand, func(i, j int) bool {
		if cand[i].when != cand[j].when {
			return cand[i].when < cand[j].when
		}
		return cand[i].seq < cand[j].seq
	})
	return cand[0]
}

type timer struct {
	when    time.Duration
	f       func()
	seq     int
	stopped bool
	owner   *Scheduler
}

func (t *timer) Stop() bool {
	if t.stopped {
		return false
	}
	t.stopped = true
	if t.owner != nil {
		t.owner.timers = slices.DeleteFunc(t.owner.timers, func(u *timer) bool { return u == t })
	}
	return true
}
