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

// Package linkedfield connects highlights to form fields outside the PDF
// view.
//
// A highlight may name a linked field.  Navigating to the linked field
// scrolls the field into view, gives it the input focus, and marks it with
// a class for a short time, so that the user can see where the field is.
// All failures are silent: a missing field is not an error.
package linkedfield

import (
	"time"

	"seehuhn.de/go/pdfview/highlight"
	"seehuhn.de/go/pdfview/ui"
)

// Defaults for the focus effect.
const (
	DefaultFocusClass    = "pdfview-linked-field-focus"
	DefaultFocusDuration = 2 * time.Second
)

// Options control [Navigator.Navigate].  The zero value selects the
// defaults.
type Options struct {
	ScrollBehavior ui.Behavior
	Block          ui.Position
	Inline         ui.Position
	FocusClass     string
	FocusDuration  time.Duration
}

func (o *Options) withDefaults() Options {
	var res Options
	if o != nil {
		res = *o
	}
	if res.ScrollBehavior == "" {
		res.ScrollBehavior = ui.Smooth
	}
	if res.Block == "" {
		res.Block = ui.Center
	}
	if res.Inline == "" {
		res.Inline = ui.Center
	}
	if res.FocusClass == "" {
		res.FocusClass = DefaultFocusClass
	}
	if res.FocusDuration <= 0 {
		res.FocusDuration = DefaultFocusDuration
	}
	return res
}

// Navigator moves the focus to linked fields.
type Navigator struct {
	loc   ui.Locator
	sched ui.Scheduler

	// active focus effects, by element ID
	active map[string]*effect
}

type effect struct {
	el    ui.Element
	class string
	timer ui.Timer
}

// New returns a navigator which finds fields using loc.  If loc is nil, no
// fields are ever found.  The scheduler is used to end focus effects.
func New(loc ui.Locator, sched ui.Scheduler) *Navigator {
	return &Navigator{
		loc:    loc,
		sched:  sched,
		active: make(map[string]*effect),
	}
}

// Find returns the field element with the given ID.
func (n *Navigator) Find(id string) (ui.Element, bool) {
	if n.loc == nil || id == "" {
		return nil, false
	}
	return n.loc.Lookup(id)
}

// Scroll scrolls el into view.  Empty positions default to [ui.Center].
func (n *Navigator) Scroll(el ui.Element, opt ui.ScrollOptions) {
	if opt.Behavior == "" {
		opt.Behavior = ui.Smooth
	}
	if opt.Block == "" {
		opt.Block = ui.Center
	}
	if opt.Inline == "" {
		opt.Inline = ui.Center
	}
	el.ScrollIntoView(opt)
}

// ApplyFocusEffect focuses el and sets the given class for the duration d.
//
// If an effect is already active on el, its timer is restarted instead of
// starting a second one, and the class is removed only once, when the last
// effect ends.
func (n *Navigator) ApplyFocusEffect(el ui.Element, class string, d time.Duration) {
	if class == "" {
		class = DefaultFocusClass
	}
	if d <= 0 {
		d = DefaultFocusDuration
	}

	el.Focus()

	id := el.ID()
	if prev, ok := n.active[id]; ok {
		prev.timer.Stop()
		if prev.class != class || prev.el != el {
			prev.el.RemoveClass(prev.class)
		}
		delete(n.active, id)
	}

	el.AddClass(class)
	e := &effect{el: el, class: class}
	e.timer = n.sched.AfterFunc(d, func() {
		if n.active[id] != e {
			return
		}
		delete(n.active, id)
		el.RemoveClass(class)
	})
	n.active[id] = e
}

// Navigate scrolls to the field linked to h and applies the focus effect.
//
// The second return value is false, and no action is taken, if h has no
// linked field or if the field cannot be found.
func (n *Navigator) Navigate(h *highlight.Highlight, opt *Options) (ui.Element, bool) {
	if h == nil || h.LinkedFieldID == "" {
		return nil, false
	}
	el, ok := n.Find(h.LinkedFieldID)
	if !ok {
		return nil, false
	}

	o := opt.withDefaults()
	n.Scroll(el, ui.ScrollOptions{Behavior: o.ScrollBehavior, Block: o.Block, Inline: o.Inline})
	n.ApplyFocusEffect(el, o.FocusClass, o.FocusDuration)
	return el, true
}

// Reset ends all active focus effects immediately.
func (n *Navigator) Reset() {
	for id, e := range n.active {
		e.timer.Stop()
		e.el.RemoveClass(e.class)
		delete(n.active, id)
	}
}
