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

// Package config holds the program configuration of pdfview.
//
// The configuration is read from a YAML file on top of an embedded
// template which provides the defaults.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/rupor-github/gencfg"
	yaml "gopkg.in/yaml.v3"

	"seehuhn.de/go/pdfview/ui"
	"seehuhn.de/go/pdfview/viewer"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	ViewerConfig struct {
		InitialPage         int           `yaml:"initial_page" validate:"gte=1"`
		InitialZoom         float64       `yaml:"initial_zoom" validate:"gt=0"`
		ZoomStep            float64       `yaml:"zoom_step" validate:"gt=0"`
		MinZoom             float64       `yaml:"min_zoom" validate:"gt=0"`
		MaxZoom             float64       `yaml:"max_zoom" validate:"gtefield=MinZoom"`
		HighlightNavigation bool          `yaml:"highlight_navigation"`
		HighlightScroll     string        `yaml:"highlight_scroll" validate:"oneof=smooth auto"`
		HighlightFocusZoom  float64       `yaml:"highlight_focus_zoom" validate:"gte=0"`
		CtrlWheelZoom       bool          `yaml:"ctrl_wheel_zoom"`
		FieldNavigation     bool          `yaml:"field_navigation"`
		FieldFocusClass     string        `yaml:"field_focus_class" validate:"required"`
		FieldFocusDuration  time.Duration `yaml:"field_focus_duration"`
	}

	Config struct {
		Version int           `yaml:"version" validate:"eq=1"`
		Viewer  ViewerConfig  `yaml:"viewer"`
		Logging LoggingConfig `yaml:"logging"`
	}
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// only fields we defined are allowed, so yaml.Unmarshal cannot be used
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given
// path, on top of the expanded configuration template, and validates the
// result.  If path is empty, the defaults are returned.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, true)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare expands the configuration template and returns the default
// configuration file.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

// Dump returns cfg in YAML format.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}

// Options returns the viewer options described by the configuration.
// Callbacks, the logger and the document loader are left unset.
func (c *ViewerConfig) Options() *viewer.Options {
	opt := viewer.DefaultOptions()
	opt.InitialPage = c.InitialPage
	opt.InitialZoom = c.InitialZoom
	opt.ZoomStep = c.ZoomStep
	opt.MinZoom = c.MinZoom
	opt.MaxZoom = c.MaxZoom
	opt.EnableHighlightNavigation = c.HighlightNavigation
	opt.HighlightScrollBehavior = ui.Behavior(c.HighlightScroll)
	if c.HighlightFocusZoom > 0 {
		z := c.HighlightFocusZoom
		opt.HighlightFocusZoom = &z
	}
	opt.EnableCtrlWheelZoom = c.CtrlWheelZoom
	opt.EnableFieldNavigation = c.FieldNavigation
	opt.LinkedFieldFocusClass = c.FieldFocusClass
	if c.FieldFocusDuration > 0 {
		opt.LinkedFieldFocusDuration = c.FieldFocusDuration
	}
	return opt
}
