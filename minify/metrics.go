// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package minify implements the seven-tier metrics codec: fixed-point
// quantization, value-pool and tuplet-pool deduplication, tuplet length
// compression, kerning range expansion, and delta/zig-zag/varint/base64
// encoding of the integer streams. Expand and Minify are exact inverses
// up to the fixed-point rounding of codec.Quantize.
package minify

// CharacterMetrics holds the per-codepoint measurements for one
// character of one font, plus the font's common baseline group it
// inherited. This is the canonical data-model definition; package
// bmfont re-exports it as an alias since decode/encode of these values
// is exactly what this package does.
type CharacterMetrics struct {
	Width                    float64
	ActualBoundingBoxLeft    float64
	ActualBoundingBoxRight   float64
	ActualBoundingBoxAscent  float64
	ActualBoundingBoxDescent float64

	FontBoundingBoxAscent  float64
	FontBoundingBoxDescent float64
	HangingBaseline        float64
	AlphabeticBaseline     float64
	IdeographicBaseline    float64
	PixelDensity           float64
}

// CommonMetrics are the six baseline fields shared by every character
// of one font identity.
type CommonMetrics struct {
	FontBoundingBoxAscent  float64
	FontBoundingBoxDescent float64
	HangingBaseline        float64
	AlphabeticBaseline     float64
	IdeographicBaseline    float64
	PixelDensity           float64
}

func (c CommonMetrics) apply(cm *CharacterMetrics) {
	cm.FontBoundingBoxAscent = c.FontBoundingBoxAscent
	cm.FontBoundingBoxDescent = c.FontBoundingBoxDescent
	cm.HangingBaseline = c.HangingBaseline
	cm.AlphabeticBaseline = c.AlphabeticBaseline
	cm.IdeographicBaseline = c.IdeographicBaseline
	cm.PixelDensity = c.PixelDensity
}

// KerningTable maps a left character to a right character to a pair
// adjustment in 1/1000 em. A missing entry is equivalent to zero.
type KerningTable map[rune]map[rune]int32

// Adjustment returns the kerning value for the ordered pair (left,
// right), or 0 if no entry exists.
func (k KerningTable) Adjustment(left, right rune) int32 {
	if k == nil {
		return 0
	}
	if row, ok := k[left]; ok {
		return row[right]
	}
	return 0
}

// Set installs an adjustment for (left, right). A later Set for the
// same pair overwrites an earlier one.
func (k KerningTable) Set(left, right rune, adjustment int32) {
	row, ok := k[left]
	if !ok {
		row = make(map[rune]int32)
		k[left] = row
	}
	row[right] = adjustment
}

// FontMetrics is the fully expanded, in-memory representation of one
// font identity's metrics: per-character metrics, the kerning table,
// and the common baselines.
type FontMetrics struct {
	Common     CommonMetrics
	Characters map[rune]CharacterMetrics
	Kerning    KerningTable

	// SpaceAdvanceOverride is the small-size space-advancement override
	// in raw pixels (blob field "s"); nil when absent.
	SpaceAdvanceOverride *float64
}

// Character returns the metrics for r and whether they were present.
func (fm *FontMetrics) Character(r rune) (CharacterMetrics, bool) {
	cm, ok := fm.Characters[r]
	return cm, ok
}
