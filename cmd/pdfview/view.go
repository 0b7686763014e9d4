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

package main

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"seehuhn.de/go/pdfview/highlight"
	"seehuhn.de/go/pdfview/tui"
	"seehuhn.de/go/pdfview/ui"
)

func runView(ctx context.Context, cmd *cli.Command) (err error) {
	env := envFromContext(ctx)

	src, err := sourceFromArgs(cmd)
	if err != nil {
		return err
	}
	hh, err := highlightsFromFlags(cmd)
	if err != nil {
		return err
	}

	opt := env.Cfg.Viewer.Options()
	opt.Logger = env.Log
	opt.Password = cmd.String("password")
	if cmd.IsSet("page") || cmd.IsSet("zoom") {
		opt.InitialPage, opt.InitialZoom = pageAndZoom(ctx, cmd)
	}
	opt.OnLinkedFieldFocus = func(h highlight.Highlight, _ ui.Element) {
		env.Log.Debug("Linked field focused", zap.String("highlight", h.ID), zap.String("field", h.LinkedFieldID))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("unable to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("unable to initialise terminal: %w", err)
	}
	defer screen.Fini()

	loop := ui.NewLoop()
	app := tui.New(screen, loop, tui.FormFor(hh), opt)
	v := app.Viewer()
	defer func() { err = multierr.Append(err, v.Close()) }()

	loop.Post(func() {
		if hh != nil {
			v.SetHighlights(hh)
		}
		v.Open(ctx, src)
	})

	env.Log.Info("Viewing document", zap.Stringer("source", src), zap.Int("highlights", len(hh)))
	return app.Run(ctx, loop)
}
