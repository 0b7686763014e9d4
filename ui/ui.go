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

// Package ui defines the interfaces between the viewer core and the user
// interface it is embedded in.
//
// The viewer never talks to a concrete toolkit.  Screen elements (rendered
// highlights, form fields) are reached through [Element] and [Locator], and
// all deferred work goes through a [Scheduler].  All callbacks are run on
// a single goroutine, the UI loop; see [Loop] for an implementation.
package ui

import "time"

// Behavior selects how an element is scrolled into view.
type Behavior string

// These are the supported scroll behaviours.
const (
	Smooth Behavior = "smooth"
	Auto   Behavior = "auto"
)

// Position selects where a scrolled element ends up, along one axis.
type Position string

// These are the supported positions.
const (
	Start   Position = "start"
	Center  Position = "center"
	End     Position = "end"
	Nearest Position = "nearest"
)

// ScrollOptions describes a scroll-into-view request.
type ScrollOptions struct {
	Behavior Behavior
	Block    Position
	Inline   Position
}

// CenterScroll returns options which center an element along both axes.
func CenterScroll(b Behavior) ScrollOptions {
	if b == "" {
		b = Smooth
	}
	return ScrollOptions{Behavior: b, Block: Center, Inline: Center}
}

// Element is an on-screen element.
//
// Elements are owned by the user interface; the viewer only keeps
// references while they are mounted.
type Element interface {
	// ID returns the identifier the element was registered under.
	ID() string

	// Focus moves the input focus to the element.
	Focus()

	// ScrollIntoView scrolls the element's container so that the element
	// becomes visible.
	ScrollIntoView(opt ScrollOptions)

	// AddClass and RemoveClass set and clear a named visual marker.
	AddClass(name string)
	RemoveClass(name string)
}

// Locator finds elements by ID.
type Locator interface {
	Lookup(id string) (Element, bool)
}

// Timer is a pending call created by [Scheduler.AfterFunc].
type Timer interface {
	// Stop prevents the call from running.  It reports whether the call was
	// still pending.
	Stop() bool
}

// Scheduler defers work to the UI loop.
//
// Implementations run all callbacks on the UI loop goroutine, one at a
// time.
type Scheduler interface {
	// Post runs f on the UI loop.
	Post(f func())

	// Go runs work outside the UI loop.  If work returns a non-nil
	// function, this function is then run on the UI loop.
	Go(work func() func())

	// AfterFunc runs f on the UI loop after the duration d has passed.
	AfterFunc(d time.Duration, f func()) Timer

	// RequestFrame runs f on the UI loop before the next frame is drawn.
	// All functions requested during one frame interval run together.
	RequestFrame(f func())
}
