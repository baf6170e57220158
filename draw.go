// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package bmfont

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/gazed/bmfont/atlas"
	"github.com/gazed/bmfont/spec"
)

// Status is the result of a draw call (spec.md section 6).
type Status int

const (
	StatusSuccess        Status = iota // every character's atlas rectangle was blitted.
	StatusNoMetrics                    // identity has no installed metrics.
	StatusPartialMetrics               // some characters had no metrics entry.
	StatusNoAtlas                      // identity has no installed atlas; all characters placeholder-drawn.
	StatusPartialAtlas                 // some characters had no atlas position (placeholder-drawn), or an unapplied small-size advancement override is defined.
)

// AtlasData is the installed, reconstructed runtime representation of
// one identity's tight atlas: the image plus its per-character
// placement (section 3's AtlasImage/AtlasPositioning).
type AtlasData struct {
	Image       image.Image
	Positioning atlas.Positioning
}

// DrawTextFromAtlas blits text onto dst at the CSS-pixel pen position
// (x, y), per spec.md section 4.8. A nil fm draws nothing and returns
// StatusNoMetrics; ad may be nil, in which case every character is
// drawn as a hollow placeholder rectangle using its metrics width only.
// The "Advancement override for small sizes" correction is never
// applied (see baseAdvance): when sp defines one for this identity and
// size, non-space glyphs are drawn with their regular advance and the
// call reports StatusPartialAtlas.
func DrawTextFromAtlas(dst draw.Image, text string, x, y float64, identity FontIdentity, tp TextProperties, fm *FontMetrics, ad *AtlasData, sp *spec.Spec) Status {
	if fm == nil {
		return StatusNoMetrics
	}
	chars := []rune(text)
	if len(chars) == 0 {
		return StatusSuccess
	}

	pixelDensity := identity.PixelDensity()
	xPhys, yPhys := x*pixelDensity, y*pixelDensity

	missingMetrics := false
	missingAtlas := ad == nil || ad.Image == nil
	placeholder := missingAtlas

	hasAdvanceOverride, overrideSkipped := false, false
	if sp != nil {
		_, hasAdvanceOverride = sp.ScalarPerBracket(identity.FontFamily(), identity.FontStyle(), identity.FontWeight(), spec.AdvancementOverride, identity.FontSize(), pixelDensity)
	}

	for i, r := range chars {
		cm, ok := fm.Character(r)
		if !ok {
			missingMetrics = true
			continue
		}
		if hasAdvanceOverride && r != ' ' {
			overrideSkipped = true
		}

		var pos atlas.Position
		havePos := false
		if !missingAtlas {
			pos, havePos = ad.Positioning[r]
			if !havePos {
				placeholder = true
			}
		}

		if havePos {
			blitGlyph(dst, ad.Image, pos, xPhys, yPhys, tp.color)
		} else {
			drawPlaceholder(dst, cm, xPhys, yPhys, identity)
		}

		xPhys += kerningStep(i, chars, fm, identity, tp, sp) * pixelDensity
		xPhys += baseAdvance(r, cm, identity, sp) * pixelDensity
		xPhys = math.Round(xPhys)
	}

	switch {
	case missingAtlas:
		return StatusNoAtlas
	case placeholder || overrideSkipped:
		return StatusPartialAtlas
	case missingMetrics:
		return StatusPartialMetrics
	default:
		return StatusSuccess
	}
}

// blitGlyph copies one glyph's tight-atlas rectangle onto dst at the
// pen-relative offset encoded by pos.DX/pos.DY, per spec.md section
// 4.8 step 3. Black text copies the atlas pixels directly; any other
// color is applied by compositing a solid color through the atlas
// rectangle's alpha as a mask, so coverage (not color) is read from
// the pre-rasterized atlas.
func blitGlyph(dst draw.Image, src image.Image, pos atlas.Position, xPhys, yPhys float64, c RGB) {
	dstX := int(xPhys) + pos.DX
	dstY := int(yPhys) + pos.DY
	dstRect := image.Rect(dstX, dstY, dstX+pos.Width, dstY+pos.Height)
	srcPoint := image.Pt(pos.XInAtlas, pos.YInAtlas)

	if c == Black {
		draw.Draw(dst, dstRect, src, srcPoint, draw.Over)
		return
	}
	uniform := image.NewUniform(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
	draw.DrawMask(dst, dstRect, uniform, image.Point{}, src, srcPoint, draw.Over)
}

// drawPlaceholder draws a hollow rectangle sized from cm's metrics
// when no atlas rectangle is available for a character, per spec.md
// section 4.8 step 1.
func drawPlaceholder(dst draw.Image, cm CharacterMetrics, xPhys, yPhys float64, identity FontIdentity) {
	pixelDensity := identity.PixelDensity()
	w := int(math.Ceil(cm.Width * pixelDensity))
	h := int(math.Ceil((cm.FontBoundingBoxAscent + cm.FontBoundingBoxDescent) * pixelDensity))
	if w <= 0 || h <= 0 {
		return
	}
	x0, y0 := int(xPhys), int(yPhys)-h
	ink := color.NRGBA{R: 0, G: 0, B: 0, A: 0xff}
	for x := x0; x < x0+w; x++ {
		dst.Set(x, y0, ink)
		dst.Set(x, y0+h-1, ink)
	}
	for yy := y0; yy < y0+h; yy++ {
		dst.Set(x0, yy, ink)
		dst.Set(x0+w-1, yy, ink)
	}
}
