// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package bmfont

import "testing"

func charMetrics(width float64) CharacterMetrics {
	return CharacterMetrics{
		Width:                  width,
		ActualBoundingBoxRight: width,
		FontBoundingBoxAscent:  10,
		FontBoundingBoxDescent: 2,
	}
}

func simpleMetrics() *FontMetrics {
	return &FontMetrics{
		Characters: map[rune]CharacterMetrics{
			'A': charMetrics(8),
			'B': charMetrics(9),
			' ': charMetrics(4),
		},
		Kerning: KerningTable{},
	}
}

func TestMeasureTextNoKerning(t *testing.T) {
	fm := simpleMetrics()
	id := NewFontIdentity(1, "Arial", "", "", 16)
	tm := MeasureText(fm, id, "AB", NewTextProperties(KerningEnabled(false)), nil)
	if tm.Width != 17 {
		t.Errorf("Width = %v, want 17", tm.Width)
	}
}

func TestMeasureTextAppliesFontKerningTable(t *testing.T) {
	fm := simpleMetrics()
	fm.Kerning.Set('A', 'B', -1000) // -1 em unit in spec.md's 1/1000 em scale.
	id := NewFontIdentity(1, "Arial", "", "", 16)
	withKern := MeasureText(fm, id, "AB", NewTextProperties(), nil)
	withoutKern := MeasureText(fm, id, "AB", NewTextProperties(KerningEnabled(false)), nil)
	if withKern.Width >= withoutKern.Width {
		t.Errorf("expected kerning to reduce width: with=%v without=%v", withKern.Width, withoutKern.Width)
	}
}

func TestMeasureTextEmpty(t *testing.T) {
	fm := simpleMetrics()
	id := NewFontIdentity(1, "Arial", "", "", 16)
	tm := MeasureText(fm, id, "", NewTextProperties(), nil)
	if tm != (TextMetrics{}) {
		t.Errorf("expected zero-value TextMetrics for empty text, got %+v", tm)
	}
}

func TestMeasureTextSkipsMissingCharacters(t *testing.T) {
	fm := simpleMetrics()
	id := NewFontIdentity(1, "Arial", "", "", 16)
	tm := MeasureText(fm, id, "A☃B", NewTextProperties(KerningEnabled(false)), nil)
	if tm.Width != 17 {
		t.Errorf("Width = %v, want 17 (missing snowman contributes no advance)", tm.Width)
	}
}

func TestMeasureTextSingleCharacterWidthIsUnrounded(t *testing.T) {
	fm := &FontMetrics{
		Characters: map[rune]CharacterMetrics{'A': charMetrics(8.3)},
		Kerning:    KerningTable{},
	}
	id := NewFontIdentity(1, "Arial", "", "", 16)
	tm := MeasureText(fm, id, "A", NewTextProperties(), nil)
	if tm.Width != 8.3 {
		t.Errorf("Width = %v, want 8.3 (literal metrics width, not rounded to a pixel)", tm.Width)
	}
}

func TestNewTextPropertiesDefaults(t *testing.T) {
	tp := NewTextProperties()
	if !tp.isKerningEnabled {
		t.Errorf("expected kerning enabled by default")
	}
	if tp.color != Black {
		t.Errorf("expected black fill by default")
	}
	if tp.fallback != nil {
		t.Errorf("expected no fallback identity by default")
	}
}

func TestFallbackIdentityOption(t *testing.T) {
	fallback := NewFontIdentity(1, "Symbols", "", "", 16)
	tp := NewTextProperties(FallbackIdentity(fallback))
	if tp.fallback == nil || *tp.fallback != fallback {
		t.Errorf("expected fallback identity to be set to %v", fallback)
	}
}
