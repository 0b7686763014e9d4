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
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/viant/afs"
)

// Kind says how a [Source] describes its document.
type Kind int

// These are the supported kinds of sources.
const (
	NoSource Kind = iota
	KindURL
	KindData
	KindBase64
)

func (k Kind) String() string {
	switch k {
	case NoSource:
		return "none"
	case KindURL:
		return "url"
	case KindData:
		return "data"
	case KindBase64:
		return "base64"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Source describes where a document comes from.
// The zero value describes no document.
type Source struct {
	kind Kind
	url  string
	data []byte
	b64  string
}

// URL returns a source for the document at the given URL.  URLs with the
// schemes supported by github.com/viant/afs are fetched using afs,
// anything else is treated as a file name.
func URL(u string) Source {
	if u == "" {
		return Source{}
	}
	return Source{kind: KindURL, url: u}
}

// Data returns a source for a document held in memory.
// The caller must not modify b afterwards.
func Data(b []byte) Source {
	if len(b) == 0 {
		return Source{}
	}
	return Source{kind: KindData, data: b}
}

// Base64 returns a source for a base64-encoded document.
func Base64(s string) Source {
	s = strings.TrimSpace(s)
	if s == "" {
		return Source{}
	}
	return Source{kind: KindBase64, b64: s}
}

// Kind returns the kind of the source.
func (s Source) Kind() Kind {
	return s.kind
}

// URL returns the URL of a KindURL source, and the empty string otherwise.
func (s Source) URL() string {
	return s.url
}

func (s Source) String() string {
	switch s.kind {
	case KindURL:
		return s.url
	case KindData:
		return fmt.Sprintf("<%d bytes>", len(s.data))
	case KindBase64:
		return fmt.Sprintf("<%d base64 characters>", len(s.b64))
	default:
		return "<none>"
	}
}

// Bytes returns the contents of the document.
func (s Source) Bytes(ctx context.Context) ([]byte, error) {
	switch s.kind {
	case KindURL:
		if !hasScheme(s.url) {
			data, err := os.ReadFile(s.url)
			if err != nil {
				return nil, err
			}
			return data, nil
		}
		fs := afs.New()
		data, err := fs.DownloadWithURL(ctx, s.url)
		if err != nil {
			return nil, fmt.Errorf("download %s: %w", s.url, err)
		}
		return data, nil
	case KindData:
		return s.data, nil
	case KindBase64:
		data, err := decodeBase64(s.b64)
		if err != nil {
			return nil, fmt.Errorf("base64 source: %w", err)
		}
		return data, nil
	default:
		return nil, ErrNoSource
	}
}

// decodeBase64 accepts standard and URL-safe encodings, with or without
// padding, and an optional "data:" URL prefix.
func decodeBase64(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)

	encodings := []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	}
	var firstErr error
	for _, enc := range encodings {
		data, err := enc.DecodeString(s)
		if err == nil {
			return data, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

// hasScheme reports whether u starts with a URL scheme.  Single letter
// schemes are taken to be Windows drive letters.
func hasScheme(u string) bool {
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	return len(parsed.Scheme) > 1
}
