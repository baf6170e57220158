// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package bmfont

import (
	"fmt"
	"strconv"
	"strings"
)

// FontIdentity is the immutable (pixelDensity, family, style, weight,
// size) key used throughout this package: atlas and metrics stores are
// keyed by it, and it is the unit that build-time tooling and run-time
// consumers exchange.
//
// FontIdentity equality is idString equality: two identities built
// from the same five fields always produce the same canonical string
// and compare equal with ==.
type FontIdentity struct {
	density int32 // FontSize, PixelDensity etc are fixed-point tenths.
	size    int32
	family  string
	style   string
	weight  string
}

// NewFontIdentity builds a FontIdentity. style and weight default to
// "normal" when empty, matching the host text-rendering convention.
func NewFontIdentity(pixelDensity float64, family string, style string, weight string, fontSize float64) FontIdentity {
	if style == "" {
		style = "normal"
	}
	if weight == "" {
		weight = "normal"
	}
	return FontIdentity{
		density: tenths(pixelDensity),
		size:    tenths(fontSize),
		family:  family,
		style:   style,
		weight:  weight,
	}
}

// tenths rounds a positive rational to one decimal digit, represented
// as value*10 so the idString formatting never touches floating point.
func tenths(v float64) int32 {
	return int32(v*10 + 0.5)
}

// PixelDensity returns the font's pixel density, e.g. 1.0, 1.5, 2.0.
func (id FontIdentity) PixelDensity() float64 { return float64(id.density) / 10 }

// FontSize returns the font's CSS pixel size.
func (id FontIdentity) FontSize() float64 { return float64(id.size) / 10 }

// FontFamily returns the font family name.
func (id FontIdentity) FontFamily() string { return id.family }

// FontStyle returns the font style, e.g. "normal" or "italic".
func (id FontIdentity) FontStyle() string { return id.style }

// FontWeight returns the font weight, e.g. "normal" or "bold".
func (id FontIdentity) FontWeight() string { return id.weight }

// intDec splits a tenths value into its integer and single-digit
// fractional parts, the shape the idString encodes both numerics with.
func intDec(tenths int32) (i int32, d int32) {
	return tenths / 10, tenths % 10
}

// String returns the canonical idString:
//
//	density-<di>-<df>-<family>-style-<style>-weight-<weight>-size-<si>-<sf>
//
// Both numerics are formatted as <int>-<dec>; a zero fractional part is
// written as 0, never dropped, since the parser relies on the field
// count staying fixed.
func (id FontIdentity) String() string {
	di, df := intDec(id.density)
	si, sf := intDec(id.size)
	return fmt.Sprintf("density-%d-%d-%s-style-%s-weight-%s-size-%d-%d",
		di, df, id.family, id.style, id.weight, si, sf)
}

// ParseFontIdentity parses the canonical idString produced by String.
// Parsing splits on "-" and reads density and size from their fixed
// positions (1,2 and 9,10), exactly as spec.md documents: the family,
// style, and weight fields are assumed not to themselves contain "-",
// since the split is positional rather than marker-delimited beyond
// the leading "density"/"style"/"weight"/"size" tags.
func ParseFontIdentity(s string) (FontIdentity, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 11 || parts[0] != "density" || parts[4] != "style" || parts[6] != "weight" || parts[8] != "size" {
		return FontIdentity{}, fmt.Errorf("bmfont: malformed identity string %q", s)
	}
	di, err1 := strconv.Atoi(parts[1])
	df, err2 := strconv.Atoi(parts[2])
	si, err3 := strconv.Atoi(parts[9])
	sf, err4 := strconv.Atoi(parts[10])
	if err1 != nil || err2 != nil {
		return FontIdentity{}, fmt.Errorf("bmfont: malformed density in %q", s)
	}
	if err3 != nil || err4 != nil {
		return FontIdentity{}, fmt.Errorf("bmfont: malformed size in %q", s)
	}
	return FontIdentity{
		density: int32(di*10 + df),
		size:    int32(si*10 + sf),
		family:  parts[3],
		style:   parts[5],
		weight:  parts[7],
	}, nil
}
