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

package highlight

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	yaml "gopkg.in/yaml.v3"
)

// ErrInvalid is returned (wrapped) when a highlight set fails validation.
var ErrInvalid = errors.New("invalid highlight")

// File is the on-disk representation of a highlight set.
type File struct {
	Highlights []Highlight `yaml:"highlights"`
}

// Decode reads a YAML highlight set from r.
//
// Highlights without an ID are assigned a random one.  IDs and linked field
// IDs are converted to Unicode normalisation form C, so that visually equal
// IDs compare equal.  The result is validated using [Validate].
func Decode(r io.Reader) ([]Highlight, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var f File
	if len(bytes.TrimSpace(data)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to decode highlights: %w", err)
		}
	}

	for i := range f.Highlights {
		h := &f.Highlights[i]
		if h.ID == "" {
			h.ID = uuid.NewString()
		}
		h.ID = norm.NFC.String(h.ID)
		h.LinkedFieldID = norm.NFC.String(h.LinkedFieldID)
	}

	if err := Validate(f.Highlights); err != nil {
		return nil, err
	}
	return f.Highlights, nil
}

// ReadFile reads a YAML highlight set from the named file.
func ReadFile(name string) ([]Highlight, error) {
	fd, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return Decode(fd)
}

// Encode writes hh as a YAML highlight set.
func Encode(w io.Writer, hh []Highlight) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&File{Highlights: hh}); err != nil {
		return err
	}
	return enc.Close()
}

// Validate checks that all highlights in hh are well-formed and that their
// IDs are unique.
func Validate(hh []Highlight) error {
	seen := make(map[string]bool, len(hh))
	for i := range hh {
		h := &hh[i]
		if err := h.check(); err != nil {
			return fmt.Errorf("highlight %d (%q): %w", i, h.ID, err)
		}
		if seen[h.ID] {
			return fmt.Errorf("highlight %d: %w: duplicate id %q", i, ErrInvalid, h.ID)
		}
		seen[h.ID] = true
	}
	return nil
}

func (h *Highlight) check() error {
	switch {
	case h.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalid)
	case h.Page < 1:
		return fmt.Errorf("%w: page %d", ErrInvalid, h.Page)
	case h.Width < 0 || h.Height < 0:
		return fmt.Errorf("%w: negative size %gx%g", ErrInvalid, h.Width, h.Height)
	case h.Opacity != nil && (*h.Opacity < 0 || *h.Opacity > 1):
		return fmt.Errorf("%w: opacity %g", ErrInvalid, *h.Opacity)
	}
	switch h.Space {
	case "", Percent, PDF:
	default:
		return fmt.Errorf("%w: unknown coordinate space %q", ErrInvalid, h.Space)
	}
	return nil
}
