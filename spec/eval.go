// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package spec

import "strings"

// KerningCutoffDisablesKerning reports whether the "Kerning cutoff"
// scalar for (family, style, weight) is defined and fontSize falls at
// or below it, per section 4.6: when true, the caller must ignore the
// kerning table entirely for this identity and size.
func (s *Spec) KerningCutoffDisablesKerning(family, style, weight string, fontSize float64) bool {
	corr := s.Correction(family, style, weight, KerningCutoff)
	if corr == nil || !corr.HasCutoff {
		return false
	}
	return fontSize <= float64(corr.Cutoff)
}

// ScalarPerBracket resolves a scalar-per-bracket correction key (space
// advancement override, proportional corrections, and similar):
// return the value of the first bracket whose range contains
// fontSize/pixelDensity. Brackets are partitioned so the first match
// suffices.
func (s *Spec) ScalarPerBracket(family, style, weight string, key CorrectionKey, fontSize, pixelDensity float64) (float64, bool) {
	corr := s.Correction(family, style, weight, key)
	if corr == nil {
		return 0, false
	}
	for _, b := range corr.Brackets {
		if b.Contains(fontSize, pixelDensity) {
			return b.Value, true
		}
	}
	return 0, false
}

// CharIndexed resolves a character-indexed-per-bracket correction key
// (crop-left, bounding-box px corrections): scan every matching
// bracket in order, and within each return the first entry whose
// character set contains r. Matching brackets may overlap; earlier
// brackets take precedence.
func (s *Spec) CharIndexed(family, style, weight string, key CorrectionKey, fontSize, pixelDensity float64, r rune) (float64, bool) {
	corr := s.Correction(family, style, weight, key)
	if corr == nil {
		return 0, false
	}
	for _, b := range corr.Brackets {
		if !b.Contains(fontSize, pixelDensity) {
			continue
		}
		for _, ce := range b.CharEntries {
			if strings.ContainsRune(ce.Chars, r) {
				return ce.Value, true
			}
		}
	}
	return 0, false
}

// PairKerning resolves the "Kerning" key: the adjustment of the first
// (leftSet, rightSet) entry, in the first size bracket containing
// fontSize/pixelDensity, whose sets include the given pair. "*any*" in
// either set matches every character.
func (s *Spec) PairKerning(family, style, weight string, fontSize, pixelDensity float64, left, right rune) (float64, bool) {
	corr := s.Correction(family, style, weight, Kerning)
	if corr == nil {
		return 0, false
	}
	for _, b := range corr.Brackets {
		if !b.Contains(fontSize, pixelDensity) {
			continue
		}
		for _, ke := range b.KernEntries {
			if setIncludes(ke.LeftSet, left) && setIncludes(ke.RightSet, right) {
				return ke.Value, true
			}
		}
	}
	return 0, false
}

// DiscretisationBracket resolves the "Kerning discretisation for small
// sizes" key: the first bracket matching fontSize/pixelDensity with a
// "kernLE >= kern > kernG" line matching adjustment, returning that
// line's discrete correction.
func (s *Spec) DiscretisationBracket(family, style, weight string, fontSize, pixelDensity, adjustment float64) (float64, bool) {
	corr := s.Correction(family, style, weight, KerningDiscretisation)
	if corr == nil {
		return 0, false
	}
	for _, b := range corr.Brackets {
		if !b.Contains(fontSize, pixelDensity) {
			continue
		}
		for _, de := range b.DiscEntries {
			if adjustment <= de.KernLE && adjustment > de.KernG {
				return de.Value, true
			}
		}
	}
	return 0, false
}

func setIncludes(set string, r rune) bool {
	if set == WildcardSet {
		return true
	}
	return strings.ContainsRune(set, r)
}
