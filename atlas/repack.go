// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package atlas

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/gazed/bmfont/minify"
)

// Repack runs the tight-bounds scanner (section 4.2) against every
// character cell of source in ascending code-point order, then copies
// the non-empty glyphs contiguously into a new image allocated by
// factory. charset must already be sorted ascending; this ordering is
// load-bearing for determinism and must match the builder that
// produced the minified metrics.
//
// The dx/dy formulas below are part of the public contract: any
// implementation must reproduce them pixel for pixel (section 4.3).
func Repack(source image.Image, charset []rune, metrics *minify.FontMetrics, factory ImageFactory) (image.Image, Positioning, error) {
	if len(charset) == 0 {
		return nil, nil, fmt.Errorf("atlas: empty character set")
	}

	type cell struct {
		r                   rune
		cx, cw, ch          int
		bounds              TightBounds
		ok                  bool
		aBBL, pixelDensity  float64
		cellHeight          int
	}
	cells := make([]cell, len(charset))
	cellX := 0
	for i, r := range charset {
		cm, ok := metrics.Character(r)
		if !ok {
			return nil, nil, fmt.Errorf("atlas: character %q missing from font metrics", r)
		}
		cw := int(math.Ceil((cm.ActualBoundingBoxLeft + cm.ActualBoundingBoxRight) * cm.PixelDensity))
		ch := int(math.Ceil((cm.FontBoundingBoxAscent + cm.FontBoundingBoxDescent) * cm.PixelDensity))
		bounds, ok := scanCell(source, cellX, 0, cw, ch)
		cells[i] = cell{r: r, cx: cellX, cw: cw, ch: ch, bounds: bounds, ok: ok, aBBL: cm.ActualBoundingBoxLeft, pixelDensity: cm.PixelDensity, cellHeight: ch}
		cellX += cw
	}

	sourceWidth := source.Bounds().Dx()
	if sourceWidth != cellX {
		return nil, nil, fmt.Errorf("atlas: source atlas width %d disagrees with sum of cell widths %d", sourceWidth, cellX)
	}

	totalWidth, maxHeight := 0, 0
	for _, c := range cells {
		if !c.ok {
			continue
		}
		totalWidth += c.bounds.Width
		if c.bounds.Height > maxHeight {
			maxHeight = c.bounds.Height
		}
	}

	dst := factory.NewImage(totalWidth, maxHeight)
	positioning := Positioning{}
	xInTight := 0
	for _, c := range cells {
		if !c.ok {
			continue
		}
		srcRect := image.Rect(c.cx+c.bounds.Left, c.bounds.Top, c.cx+c.bounds.Left+c.bounds.Width, c.bounds.Top+c.bounds.Height)
		dstRect := image.Rect(xInTight, 0, xInTight+c.bounds.Width, c.bounds.Height)
		draw.Draw(dst, dstRect, source, srcRect.Min, draw.Src)

		distBottom := float64(c.cellHeight-(c.bounds.Top+c.bounds.Height-1)) - 1
		dx := -math.Round(c.aBBL)*c.pixelDensity + float64(c.bounds.Left)
		dy := -float64(c.bounds.Height) - distBottom + 1*c.pixelDensity

		positioning[c.r] = Position{
			XInAtlas:  xInTight,
			YInAtlas:  0,
			Width:     c.bounds.Width,
			Height:    c.bounds.Height,
			DX:        int(math.Round(dx)),
			DY:        int(math.Round(dy)),
		}
		xInTight += c.bounds.Width
	}

	return dst, positioning, nil
}
