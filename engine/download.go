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

package engine

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
)

// Target is the location from which the user can save a document.
//
// For URL sources this is the URL itself.  For in-memory sources, the
// document is written to a temporary file, which is removed by
// [Target.Release].
type Target struct {
	url  string
	path string
}

// Download returns the download target for src.
func Download(ctx context.Context, src Source) (*Target, error) {
	switch src.Kind() {
	case KindURL:
		return &Target{url: src.URL()}, nil
	case KindData, KindBase64:
		data, err := src.Bytes(ctx)
		if err != nil {
			return nil, err
		}
		f, err := os.CreateTemp("", "pdfview-*.pdf")
		if err != nil {
			return nil, err
		}
		_, err = f.Write(data)
		err = multierr.Append(err, f.Close())
		if err != nil {
			os.Remove(f.Name())
			return nil, err
		}
		return &Target{path: f.Name()}, nil
	default:
		return nil, ErrNoSource
	}
}

// String returns the URL, or the temporary file name, of the target.
func (t *Target) String() string {
	if t == nil {
		return ""
	}
	if t.url != "" {
		return t.url
	}
	return t.path
}

// IsTemp reports whether the target is a temporary file.
func (t *Target) IsTemp() bool {
	return t != nil && t.path != ""
}

// FileName returns a suggested file name for saving the document.
func (t *Target) FileName() string {
	switch {
	case t == nil:
		return ""
	case t.url != "":
		name := t.url
		if u, err := url.Parse(t.url); err == nil && u.Path != "" {
			name = u.Path
		}
		base := filepath.Base(name)
		if base == "." || base == "/" || base == "" {
			return "document.pdf"
		}
		return base
	default:
		return "document.pdf"
	}
}

// Release removes the temporary file, if any.  Release can be called
// more than once.
func (t *Target) Release() error {
	if t == nil || t.path == "" {
		return nil
	}
	path := t.path
	t.path = ""
	err := os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
