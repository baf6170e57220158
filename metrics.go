// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package bmfont

import (
	"sort"

	"github.com/gazed/bmfont/minify"
)

// CharacterMetrics, CommonMetrics, KerningTable, and FontMetrics are
// re-exported from package minify: decoding and encoding these values
// is exactly what that package does, so the canonical type definitions
// live there and this package is just the consumer-facing name.
type (
	CharacterMetrics = minify.CharacterMetrics
	CommonMetrics    = minify.CommonMetrics
	KerningTable     = minify.KerningTable
	FontMetrics      = minify.FontMetrics
)

// SortedCharset returns the characters present in fm, in ascending
// code-point order. This is the "sorted character set" spec.md
// sections 4.3 and 4.4 require the builder and the reconstructor to
// agree on; any reordering breaks atlas positioning and metrics
// expansion alike.
func SortedCharset(fm *FontMetrics) []rune {
	charset := make([]rune, 0, len(fm.Characters))
	for r := range fm.Characters {
		charset = append(charset, r)
	}
	sort.Slice(charset, func(i, j int) bool { return charset[i] < charset[j] })
	return charset
}
