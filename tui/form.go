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

package tui

import (
	"slices"

	"seehuhn.de/go/pdfview/highlight"
	"seehuhn.de/go/pdfview/ui"
)

// Field is one input field of a [Form].
type Field struct {
	Name  string
	Label string
	Value string

	form    *Form
	classes map[string]bool
}

var _ ui.Element = (*Field)(nil)

// ID implements the [ui.Element] interface.
func (f *Field) ID() string { return f.Name }

// Focus implements the [ui.Element] interface.
func (f *Field) Focus() {
	f.form.focused = f.Name
	f.form.changed()
}

// ScrollIntoView implements the [ui.Element] interface.
// Form rows are always scrolled so that the field is centred if
// possible; the scroll options are ignored.
func (f *Field) ScrollIntoView(ui.ScrollOptions) {
	idx := slices.Index(f.form.fields, f)
	if idx < 0 {
		return
	}
	f.form.scroll = max(0, idx-f.form.visibleRows/2)
	f.form.changed()
}

// AddClass implements the [ui.Element] interface.
func (f *Field) AddClass(name string) {
	if f.classes == nil {
		f.classes = make(map[string]bool)
	}
	f.classes[name] = true
	f.form.changed()
}

// RemoveClass implements the [ui.Element] interface.
func (f *Field) RemoveClass(name string) {
	delete(f.classes, name)
	f.form.changed()
}

// HasClass reports whether the given class is set on the field.
func (f *Field) HasClass(name string) bool {
	return f.classes[name]
}

// Form is a list of input fields shown next to the document.
// Highlights refer to fields by name.
type Form struct {
	fields  []*Field
	focused string
	scroll  int

	// set by the layout
	visibleRows int

	onChange func()
}

var _ ui.Locator = (*Form)(nil)

// NewForm returns a form with one field for every name.
func NewForm(names ...string) *Form {
	form := &Form{}
	for _, name := range names {
		form.Add(name, name)
	}
	return form
}

// FormFor returns a form with one field for every linked field named by
// the highlights, in order of first appearance.
func FormFor(hh []highlight.Highlight) *Form {
	form := &Form{}
	for _, h := range hh {
		if h.LinkedFieldID == "" {
			continue
		}
		if _, ok := form.Lookup(h.LinkedFieldID); ok {
			continue
		}
		form.Add(h.LinkedFieldID, h.LinkedFieldID)
	}
	return form
}

// Add appends a field to the form.
func (form *Form) Add(name, label string) *Field {
	f := &Field{Name: name, Label: label, form: form}
	form.fields = append(form.fields, f)
	form.changed()
	return f
}

// Lookup implements the [ui.Locator] interface.
func (form *Form) Lookup(id string) (ui.Element, bool) {
	f := form.Field(id)
	if f == nil {
		return nil, false
	}
	return f, true
}

// Field returns the field with the given name, or nil.
func (form *Form) Field(name string) *Field {
	for _, f := range form.fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Fields returns all fields, in display order.
func (form *Form) Fields() []*Field {
	return form.fields
}

// Focused returns the field which has the input focus, or nil.
func (form *Form) Focused() *Field {
	if form.focused == "" {
		return nil
	}
	return form.Field(form.focused)
}

// Blur removes the input focus from the form.
func (form *Form) Blur() {
	form.focused = ""
	form.changed()
}

func (form *Form) changed() {
	if form.onChange != nil {
		form.onChange()
	}
}
