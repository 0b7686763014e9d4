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
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/gdamore/tcell/v2"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"seehuhn.de/go/pdfview/highlight"
)

func runInfo(ctx context.Context, cmd *cli.Command) (err error) {
	doc, hh, err := openDocument(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, doc.Close()) }()

	fmt.Printf("pages: %d\n", doc.NumPages())
	fmt.Printf("highlights: %d\n", len(hh))
	for n := 1; n <= doc.NumPages(); n++ {
		page, err := doc.Page(ctx, n)
		if err != nil {
			return err
		}
		vp := page.Viewport(1)
		fmt.Printf("page %d: %gx%g rotate=%d\n", n, vp.Width, vp.Height, page.Rotate)
	}
	return nil
}

func runMap(ctx context.Context, cmd *cli.Command) (err error) {
	pageNo, zoom := pageAndZoom(ctx, cmd)

	doc, hh, err := openDocument(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, doc.Close()) }()

	page, err := doc.Page(ctx, pageNo)
	if err != nil {
		return err
	}
	vp := page.Viewport(zoom)
	fmt.Printf("page %d/%d at %g%%: %gx%g\n", pageNo, doc.NumPages(), zoom*100, vp.Width, vp.Height)
	for _, r := range highlight.Map(hh, pageNo, page, zoom) {
		fmt.Printf("%s\t%.1f\t%.1f\t%.1f\t%.1f\t%s\n",
			r.ID, r.Left, r.Top, r.WidthPx, r.HeightPx, r.FillColor())
	}
	return nil
}

func runRender(ctx context.Context, cmd *cli.Command) (err error) {
	env := envFromContext(ctx)
	pageNo, zoom := pageAndZoom(ctx, cmd)

	fname := cmd.Args().Get(1)
	if fname == "" {
		return fmt.Errorf("no destination given")
	}

	doc, hh, err := openDocument(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, doc.Close()) }()

	page, err := doc.Page(ctx, pageNo)
	if err != nil {
		return err
	}
	vp := page.Viewport(zoom)
	img := image.NewRGBA(image.Rect(0, 0, int(vp.Width+0.5), int(vp.Height+0.5)))
	if err := page.Render(ctx, img, vp).Wait(); err != nil {
		return err
	}

	rr := highlight.Map(hh, pageNo, page, zoom)
	for _, r := range rr {
		paintHighlight(img, &r)
	}

	out, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, out.Close()) }()
	if err := png.Encode(out, img); err != nil {
		return err
	}
	env.Log.Debug("Page rendered",
		zap.Int("page", pageNo), zap.Int("highlights", len(rr)), zap.String("file", fname))
	return nil
}

// paintHighlight blends a highlight into img.
func paintHighlight(img draw.Image, r *highlight.Rendered) {
	c := tcell.GetColor(r.FillColor())
	if c == tcell.ColorDefault {
		c = tcell.GetColor(highlight.DefaultColor)
	}
	red, green, blue := c.RGB()
	src := image.NewUniform(color.NRGBA{R: uint8(red), G: uint8(green), B: uint8(blue), A: 0xff})
	opacity := min(max(r.FillOpacity(), 0), 1)
	mask := image.NewUniform(color.Alpha{A: uint8(opacity*255 + 0.5)})

	box := image.Rect(
		int(r.Left), int(r.Top),
		int(r.Left+r.WidthPx+0.5), int(r.Top+r.HeightPx+0.5))
	draw.DrawMask(img, box.Intersect(img.Bounds()), src, image.Point{}, mask, image.Point{}, draw.Over)
}
