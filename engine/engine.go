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

// Package engine opens PDF documents for the viewer.
//
// The engine reads the page tree of a document, determines the geometry of
// every page, and imports existing highlight annotations.  Documents can be
// loaded from URLs, file names, raw bytes or base64-encoded bytes.
package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/h2non/filetype"
	"github.com/xdg-go/stringprep"
	"go.uber.org/zap"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"

	"seehuhn.de/go/pdfview/highlight"
)

// These errors are returned by the engine.
var (
	ErrNotPDF    = errors.New("not a PDF file")
	ErrNoSource  = errors.New("no document source")
	ErrPageRange = errors.New("page number out of range")
)

// LoadOptions control [Load].  A nil value selects the defaults.
type LoadOptions struct {
	// Password is used to open encrypted documents.
	Password string

	Logger *zap.Logger
}

// Document is an open PDF document.
//
// The methods of Document can be called concurrently.
type Document struct {
	log *zap.Logger

	mu       sync.Mutex
	r        *pdf.Reader
	numPages int
	annots   []highlight.Highlight
	closed   bool
}

// Load reads the document described by src.
func Load(ctx context.Context, src Source, opt *LoadOptions) (*Document, error) {
	if opt == nil {
		opt = &LoadOptions{}
	}
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}

	data, err := src.Bytes(ctx)
	if err != nil {
		return nil, err
	}
	if !filetype.Is(data, "pdf") {
		return nil, fmt.Errorf("%s: %w", src, ErrNotPDF)
	}

	ropt := &pdf.ReaderOptions{}
	if opt.Password != "" {
		passwd, err := stringprep.SASLprep.Prepare(opt.Password)
		if err != nil {
			return nil, fmt.Errorf("password: %w", err)
		}
		ropt.ReadPassword = func(_ []byte, try int) string {
			if try > 0 {
				return ""
			}
			return passwd
		}
	}

	r, err := pdf.NewReader(bytes.NewReader(data), ropt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}

	n, err := pagetree.NumPages(r)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("%s: %w", src, err)
	}

	doc := &Document{
		log:      log,
		r:        r,
		numPages: n,
	}
	doc.annots = doc.readHighlights()
	log.Debug("document loaded",
		zap.Stringer("source", src),
		zap.Int("pages", n),
		zap.Int("highlights", len(doc.annots)))
	return doc, nil
}

// NumPages returns the number of pages in the document.
func (d *Document) NumPages() int {
	return d.numPages
}

// Page returns the page with the given number.  Pages are numbered
// starting at 1.
func (d *Document) Page(ctx context.Context, n int) (*Page, error) {
	if n < 1 || n > d.numPages {
		return nil, fmt.Errorf("page %d of %d: %w", n, d.numPages, ErrPageRange)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, errClosed
	}
	dict, err := pagetree.GetPage(d.r, n-1)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", n, err)
	}
	return decodePage(d.r, n, dict)
}

// Highlights returns the highlight annotations found in the document, in
// PDF coordinates.
func (d *Document) Highlights() []highlight.Highlight {
	return d.annots
}

// Close releases the resources held by the document.
func (d *Document) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	return d.r.Close()
}

var errClosed = errors.New("document closed")
