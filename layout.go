// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package bmfont

import (
	"math"

	"github.com/gazed/bmfont/spec"
)

// RGB is a text fill color. The atlas is pre-rasterized black; a
// non-black RGB is applied by tinting the blitted glyph alpha against
// it (see draw.go).
type RGB struct{ R, G, B uint8 }

// Black is the default, zero-cost fill color: no tinting pass runs.
var Black = RGB{0, 0, 0}

// TextProperties are the per-draw-call options recognized by
// MeasureText and DrawTextFromAtlas (spec.md section 6).
type TextProperties struct {
	isKerningEnabled bool
	textBaseline     string // only "bottom" is supported.
	textAlign        string // only "left" is supported.
	color            RGB
	fallback         *FontIdentity
}

var textPropertyDefaults = TextProperties{
	isKerningEnabled: true,
	textBaseline:     "bottom",
	textAlign:        "left",
	color:            Black,
}

// TextOption configures TextProperties. For use with NewTextProperties.
type TextOption func(*TextProperties)

// NewTextProperties builds TextProperties from options, defaulting to
// kerning enabled, bottom baseline, left align, and black fill.
func NewTextProperties(opts ...TextOption) TextProperties {
	tp := textPropertyDefaults
	for _, opt := range opts {
		opt(&tp)
	}
	return tp
}

// KerningEnabled toggles pair kerning. Default true.
func KerningEnabled(enabled bool) TextOption {
	return func(tp *TextProperties) { tp.isKerningEnabled = enabled }
}

// TextColor sets the fill color applied to blitted glyphs. Default
// black, which skips the tinting pass entirely.
func TextColor(c RGB) TextOption {
	return func(tp *TextProperties) { tp.color = c }
}

// FallbackIdentity names a font identity, e.g. a symbol font, to
// substitute a missing glyph from rather than reporting it missing
// (spec.md section 7.3).
func FallbackIdentity(id FontIdentity) TextOption {
	return func(tp *TextProperties) { f := id; tp.fallback = &f }
}

// TextMetrics is the measureText result shape (spec.md section 6).
type TextMetrics struct {
	Width                    float64
	ActualBoundingBoxLeft    float64
	ActualBoundingBoxRight   float64
	ActualBoundingBoxAscent  float64
	ActualBoundingBoxDescent float64
	FontBoundingBoxAscent    float64
	FontBoundingBoxDescent   float64
}

// MeasureText walks text accumulating per-character advances and pair
// kerning, per spec.md section 4.7. sp may be nil when no
// kerning/correction spec applies to this identity, in which case
// every character uses its raw metrics width and no kerning pair is
// applied beyond the font's own expanded kerning table.
func MeasureText(fm *FontMetrics, identity FontIdentity, text string, tp TextProperties, sp *spec.Spec) TextMetrics {
	chars := []rune(text)
	if len(chars) == 0 {
		return TextMetrics{}
	}

	// pen is the rounded pixel position of the current character's left
	// edge (section 4.7 step 4 rounds the pen between characters, the
	// position kerning and blit offsets key off). x is the reported
	// running width: pen plus the current character's own unrounded
	// advance, so a lone character's Width equals its raw metrics width
	// rather than that width rounded to the nearest pixel (section 8
	// scenario 2), while multi-character text still snaps to a pixel
	// grid between glyphs.
	var x, pen, lastAdvance float64
	var lastChar CharacterMetrics
	var haveLast bool
	for i, r := range chars {
		cm, ok := fm.Character(r)
		if !ok {
			continue
		}
		lastChar, haveLast = cm, true
		inc := baseAdvance(r, cm, identity, sp)
		inc += kerningStep(i, chars, fm, identity, tp, sp)
		x = pen + inc
		pen = math.Round(x)
		lastAdvance = inc
	}
	if !haveLast {
		return TextMetrics{}
	}

	first, _ := fm.Character(chars[0])
	return TextMetrics{
		Width:                    x,
		ActualBoundingBoxLeft:    first.ActualBoundingBoxLeft,
		ActualBoundingBoxRight:   x - lastAdvance + lastChar.ActualBoundingBoxRight,
		ActualBoundingBoxAscent:  lastChar.ActualBoundingBoxAscent,
		ActualBoundingBoxDescent: lastChar.ActualBoundingBoxDescent,
		FontBoundingBoxAscent:    lastChar.FontBoundingBoxAscent,
		FontBoundingBoxDescent:   lastChar.FontBoundingBoxDescent,
	}
}

// baseAdvance is step 1 of spec.md section 4.7. The "Advancement
// override for small sizes" branch is deliberately omitted per section
// 9's open question: the source flags it as "NOT USED AT THE MOMENT,
// I'M NOT SURE THIS IS CORRECT", so only the space-advancement
// override survives here; every other character always uses its raw
// metrics width.
func baseAdvance(r rune, cm CharacterMetrics, identity FontIdentity, sp *spec.Spec) float64 {
	if r == ' ' && sp != nil {
		fontSize, pixelDensity := identity.FontSize(), identity.PixelDensity()
		if v, ok := sp.ScalarPerBracket(identity.FontFamily(), identity.FontStyle(), identity.FontWeight(), spec.SpaceAdvancementOverride, fontSize, pixelDensity); ok {
			return v
		}
	}
	return cm.Width
}

// kerningStep is steps 2-4 of spec.md section 4.7: look up the pair
// adjustment, apply the small-size discretisation bracket if one
// matches, else the proportional fontSize*adjustment/1000 formula.
// Kerning is skipped when disabled, at the last character, or at/below
// the font's kerning cutoff. A spec-provided pair-kerning entry
// overrides the font's own expanded kerning table for the same pair,
// letting a correction spec veto or replace measured kerning.
func kerningStep(i int, chars []rune, fm *FontMetrics, identity FontIdentity, tp TextProperties, sp *spec.Spec) float64 {
	if !tp.isKerningEnabled || i >= len(chars)-1 {
		return 0
	}
	fontSize, pixelDensity := identity.FontSize(), identity.PixelDensity()
	family, style, weight := identity.FontFamily(), identity.FontStyle(), identity.FontWeight()
	if sp != nil && sp.KerningCutoffDisablesKerning(family, style, weight, fontSize) {
		return 0
	}

	left, right := chars[i], chars[i+1]
	adjustment := float64(fm.Kerning.Adjustment(left, right))
	if sp != nil {
		if v, ok := sp.PairKerning(family, style, weight, fontSize, pixelDensity, left, right); ok {
			adjustment = v
		}
	}
	if adjustment == 0 {
		return 0
	}
	if sp != nil {
		if v, ok := sp.DiscretisationBracket(family, style, weight, fontSize, pixelDensity, adjustment); ok {
			return v
		}
	}
	return fontSize * adjustment / 1000
}
