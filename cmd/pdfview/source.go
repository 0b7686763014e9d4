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
	"errors"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"seehuhn.de/go/pdfview/engine"
	"seehuhn.de/go/pdfview/highlight"
)

var errNoSource = errors.New("no document given")

// sourceFromArgs returns the document named on the command line.  With
// --base64 the argument names a file holding the base64 encoded document,
// or is the encoded document itself.
func sourceFromArgs(cmd *cli.Command) (engine.Source, error) {
	arg := cmd.Args().First()
	if arg == "" {
		return engine.Source{}, errNoSource
	}
	if !cmd.Bool("base64") {
		return engine.URL(arg), nil
	}
	data, err := os.ReadFile(arg)
	switch {
	case err == nil:
		return engine.Base64(string(data)), nil
	case errors.Is(err, os.ErrNotExist):
		return engine.Base64(arg), nil
	default:
		return engine.Source{}, err
	}
}

// highlightsFromFlags reads the highlights named by --highlights.  The
// result is nil if the flag is not given.
func highlightsFromFlags(cmd *cli.Command) ([]highlight.Highlight, error) {
	fname := cmd.String("highlights")
	if fname == "" {
		return nil, nil
	}
	hh, err := highlight.ReadFile(fname)
	if err != nil {
		return nil, fmt.Errorf("unable to read highlights: %w", err)
	}
	return hh, nil
}

// pageAndZoom returns the page number and zoom factor given on the command
// line, falling back to the configured initial values.
func pageAndZoom(ctx context.Context, cmd *cli.Command) (int, float64) {
	env := envFromContext(ctx)
	page := int(cmd.Int("page"))
	if page < 1 {
		page = max(env.Cfg.Viewer.InitialPage, 1)
	}
	zoom := cmd.Float("zoom")
	if !(zoom > 0) {
		zoom = env.Cfg.Viewer.InitialZoom
	}
	return page, zoom
}

// openDocument loads the document and the highlights given on the command
// line.  If no highlights file is given, the highlight annotations of the
// document are used.
func openDocument(ctx context.Context, cmd *cli.Command) (*engine.Document, []highlight.Highlight, error) {
	env := envFromContext(ctx)

	src, err := sourceFromArgs(cmd)
	if err != nil {
		return nil, nil, err
	}
	hh, err := highlightsFromFlags(cmd)
	if err != nil {
		return nil, nil, err
	}

	env.Log.Debug("Loading document", zap.Stringer("source", src))
	doc, err := engine.Load(ctx, src, &engine.LoadOptions{
		Password: cmd.String("password"),
		Logger:   env.Log,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("unable to load %s: %w", src, err)
	}
	if hh == nil {
		hh = doc.Highlights()
	}
	return doc, hh, nil
}
