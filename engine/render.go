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
	"image"
	"image/color"
	"math"
	"sync"

	"golang.org/x/image/draw"

	"seehuhn.de/go/pdfview/viewport"
)

// Colours used when painting a page.
var (
	PaperColor = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	FrameColor = color.RGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff}
)

// RenderTask is a render operation in progress.
type RenderTask struct {
	cancel context.CancelFunc
	done   chan struct{}

	once sync.Once
	err  error
}

// Cancel stops the render operation.  Wait then returns
// [context.Canceled], unless the operation had already completed.
func (t *RenderTask) Cancel() {
	t.cancel()
}

// Wait waits for the render operation to finish.
func (t *RenderTask) Wait() error {
	<-t.done
	return t.err
}

// Render paints the page into dst, in the region given by vp.
//
// The page background and frame are painted row by row, so that
// cancellation takes effect quickly.  Page content is not rendered.
func (p *Page) Render(ctx context.Context, dst draw.Image, vp viewport.Viewport) *RenderTask {
	ctx, cancel := context.WithCancel(ctx)
	t := &RenderTask{
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go func() {
		defer close(t.done)
		defer cancel()
		t.err = paint(ctx, dst, vp)
	}()
	return t
}

func paint(ctx context.Context, dst draw.Image, vp viewport.Viewport) error {
	if vp.IsEmpty() {
		return ctx.Err()
	}
	w := int(math.Round(vp.Width))
	h := int(math.Round(vp.Height))
	area := image.Rect(0, 0, w, h).Add(dst.Bounds().Min).Intersect(dst.Bounds())
	if area.Empty() {
		return ctx.Err()
	}

	paper := image.NewUniform(PaperColor)
	for y := area.Min.Y; y < area.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		row := image.Rect(area.Min.X, y, area.Max.X, y+1)
		draw.Draw(dst, row, paper, image.Point{}, draw.Src)
	}

	frame := image.NewUniform(FrameColor)
	edges := []image.Rectangle{
		image.Rect(area.Min.X, area.Min.Y, area.Max.X, area.Min.Y+1),
		image.Rect(area.Min.X, area.Max.Y-1, area.Max.X, area.Max.Y),
		image.Rect(area.Min.X, area.Min.Y, area.Min.X+1, area.Max.Y),
		image.Rect(area.Max.X-1, area.Min.Y, area.Max.X, area.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(area), frame, image.Point{}, draw.Src)
	}
	return ctx.Err()
}
