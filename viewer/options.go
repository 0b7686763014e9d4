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
	"time"

	"go.uber.org/zap"

	"seehuhn.de/go/pdfview/engine"
	"seehuhn.de/go/pdfview/highlight"
	"seehuhn.de/go/pdfview/linkedfield"
	"seehuhn.de/go/pdfview/ui"
)

// Default values for [Options].
const (
	DefaultZoomStep    = 0.2
	DefaultMinZoom     = 0.5
	DefaultMaxZoom     = 3.0
	DefaultInitialZoom = 1.0
)

// Options control the behaviour of a [Viewer].
//
// Numeric fields which are zero, and the empty scroll behaviour, are
// replaced by their defaults.  Boolean fields are used as given; start
// from [DefaultOptions] to get the default settings.
type Options struct {
	InitialPage int
	InitialZoom float64
	ZoomStep    float64
	MinZoom     float64
	MaxZoom     float64

	// EnableHighlightNavigation makes a click on a highlight focus it.
	EnableHighlightNavigation bool

	// HighlightScrollBehavior is used when a focused highlight is
	// scrolled into view.
	HighlightScrollBehavior ui.Behavior

	// HighlightFocusZoom, if set, is the zoom factor used when navigating
	// to a highlight.
	HighlightFocusZoom *float64

	// EnableCtrlWheelZoom makes the mouse wheel zoom while Ctrl is held.
	EnableCtrlWheelZoom bool

	// EnableFieldNavigation makes a click on a highlight move to its
	// linked form field.
	EnableFieldNavigation bool

	LinkedFieldFocusClass    string
	LinkedFieldFocusDuration time.Duration

	// OnHighlightClick is called when the user clicks a highlight.
	OnHighlightClick func(h highlight.Highlight)

	// OnLinkedFieldFocus is called after a click on a highlight with a
	// linked field.  el is nil if the field could not be found.
	OnLinkedFieldFocus func(h highlight.Highlight, el ui.Element)

	// OnChange is called whenever the visible state of the viewer
	// changes.
	OnChange func()

	// Password is used to open encrypted documents.
	Password string

	Logger *zap.Logger

	// Open loads documents.  If this is nil, [engine.Load] is used.
	Open func(ctx context.Context, src engine.Source) (Document, error)
}

// DefaultOptions returns the default viewer settings.
func DefaultOptions() *Options {
	return &Options{
		InitialPage:               1,
		InitialZoom:               DefaultInitialZoom,
		ZoomStep:                  DefaultZoomStep,
		MinZoom:                   DefaultMinZoom,
		MaxZoom:                   DefaultMaxZoom,
		EnableHighlightNavigation: true,
		HighlightScrollBehavior:   ui.Smooth,
		EnableCtrlWheelZoom:       true,
		LinkedFieldFocusClass:     linkedfield.DefaultFocusClass,
		LinkedFieldFocusDuration:  linkedfield.DefaultFocusDuration,
	}
}

func (o *Options) withDefaults() Options {
	if o == nil {
		o = DefaultOptions()
	}
	res := *o
	if res.InitialPage < 1 {
		res.InitialPage = 1
	}
	if res.ZoomStep <= 0 {
		res.ZoomStep = DefaultZoomStep
	}
	if res.MinZoom <= 0 {
		res.MinZoom = DefaultMinZoom
	}
	if res.MaxZoom <= 0 {
		res.MaxZoom = DefaultMaxZoom
	}
	if res.MaxZoom < res.MinZoom {
		res.MinZoom, res.MaxZoom = res.MaxZoom, res.MinZoom
	}
	if res.InitialZoom <= 0 {
		res.InitialZoom = DefaultInitialZoom
	}
	if res.HighlightScrollBehavior == "" {
		res.HighlightScrollBehavior = ui.Smooth
	}
	if res.LinkedFieldFocusClass == "" {
		res.LinkedFieldFocusClass = linkedfield.DefaultFocusClass
	}
	if res.LinkedFieldFocusDuration <= 0 {
		res.LinkedFieldFocusDuration = linkedfield.DefaultFocusDuration
	}
	if res.Logger == nil {
		res.Logger = zap.NewNop()
	}
	if res.Open == nil {
		log, passwd := res.Logger, res.Password
		res.Open = func(ctx context.Context, src engine.Source) (Document, error) {
			doc, err := engine.Load(ctx, src, &engine.LoadOptions{Password: passwd, Logger: log})
			if err != nil {
				return nil, err
			}
			return doc, nil
		}
	}
	return res
}
