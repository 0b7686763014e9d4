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

package ui

import (
	"context"
	"time"
)

// FrameInterval is the time between two frames of a [Loop].
const FrameInterval = time.Second / 60

// Loop is a single-goroutine event loop implementing [Scheduler].
//
// Functions are queued by the Scheduler methods, which may be called from
// any goroutine, and are executed by [Loop.Run].
type Loop struct {
	queue chan func()
	done  chan struct{}

	// only accessed on the loop goroutine
	frames     []func()
	frameArmed bool
}

// NewLoop creates a new event loop.  The loop does nothing until Run is
// called.
func NewLoop() *Loop {
	return &Loop{
		queue: make(chan func(), 256),
		done:  make(chan struct{}),
	}
}

// Run executes queued functions until ctx is cancelled.
// After Run returns, newly posted functions are discarded.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case f := <-l.queue:
			f()
		}
	}
}

// Post implements the [Scheduler] interface.
func (l *Loop) Post(f func()) {
	select {
	case l.queue <- f:
	case <-l.done:
	}
}

// Go implements the [Scheduler] interface.
func (l *Loop) Go(work func() func()) {
	go func() {
		if cont := work(); cont != nil {
			l.Post(cont)
		}
	}()
}

// AfterFunc implements the [Scheduler] interface.
//
// The returned Timer must only be stopped from the loop goroutine.  A timer
// which has fired but whose callback is still queued is cancelled by Stop,
// too.
func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	t := &loopTimer{}
	t.t = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.stopped {
				return
			}
			t.stopped = true
			f()
		})
	})
	return t
}

// RequestFrame implements the [Scheduler] interface.
// RequestFrame must be called from the loop goroutine.
func (l *Loop) RequestFrame(f func()) {
	l.frames = append(l.frames, f)
	if l.frameArmed {
		return
	}
	l.frameArmed = true
	time.AfterFunc(FrameInterval, func() {
		l.Post(l.runFrame)
	})
}

func (l *Loop) runFrame() {
	frames := l.frames
	l.frames = nil
	l.frameArmed = false
	for _, f := range frames {
		f()
	}
}

type loopTimer struct {
	t       *time.Timer
	stopped bool
}

func (t *loopTimer) Stop() bool {
	t.t.Stop()
	if t.stopped {
		return false
	}
	t.stopped = true
	return true
}
