// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package atlas

import (
	"image"
	"image/color"
	"testing"

	"github.com/gazed/bmfont/minify"
)

func buildSourceMetrics() *minify.FontMetrics {
	cm := minify.CharacterMetrics{
		ActualBoundingBoxLeft:  1,
		ActualBoundingBoxRight: 1,
		FontBoundingBoxAscent:  2,
		FontBoundingBoxDescent: 0,
		PixelDensity:           1,
	}
	return &minify.FontMetrics{
		Characters: map[rune]minify.CharacterMetrics{'A': cm, 'B': cm},
	}
}

func TestRepackProducesPositioning(t *testing.T) {
	source := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	source.Set(0, 0, color.NRGBA{0, 0, 0, 255})
	source.Set(3, 1, color.NRGBA{0, 0, 0, 255})

	charset := []rune{'A', 'B'}
	dst, positioning, err := Repack(source, charset, buildSourceMetrics(), NRGBAFactory{})
	if err != nil {
		t.Fatalf("Repack: %s", err)
	}
	if dst.Bounds().Dx() != 2 || dst.Bounds().Dy() != 1 {
		t.Fatalf("tight atlas size = %v, want 2x1", dst.Bounds())
	}

	a, ok := positioning['A']
	if !ok {
		t.Fatal("missing position for A")
	}
	if a.XInAtlas != 0 || a.Width != 1 || a.Height != 1 || a.DX != -1 || a.DY != -1 {
		t.Errorf("A position = %+v, want {XInAtlas:0 Width:1 Height:1 DX:-1 DY:-1}", a)
	}

	b, ok := positioning['B']
	if !ok {
		t.Fatal("missing position for B")
	}
	if b.XInAtlas != 1 || b.Width != 1 || b.Height != 1 || b.DX != 0 || b.DY != 0 {
		t.Errorf("B position = %+v, want {XInAtlas:1 Width:1 Height:1 DX:0 DY:0}", b)
	}
}

func TestRepackEmptyCharsetIsHardError(t *testing.T) {
	source := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	if _, _, err := Repack(source, nil, buildSourceMetrics(), NRGBAFactory{}); err == nil {
		t.Fatal("expected error for empty character set")
	}
}

func TestRepackWidthMismatchIsHardError(t *testing.T) {
	source := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	if _, _, err := Repack(source, []rune{'A', 'B'}, buildSourceMetrics(), NRGBAFactory{}); err == nil {
		t.Fatal("expected error for source width mismatch")
	}
}

func TestRepackEmptyCellIsSilentlyOmitted(t *testing.T) {
	source := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	source.Set(3, 1, color.NRGBA{0, 0, 0, 255})
	charset := []rune{'A', 'B'}
	_, positioning, err := Repack(source, charset, buildSourceMetrics(), NRGBAFactory{})
	if err != nil {
		t.Fatalf("Repack: %s", err)
	}
	if _, ok := positioning['A']; ok {
		t.Error("empty cell should produce no position for A")
	}
	if _, ok := positioning['B']; !ok {
		t.Error("expected position for B")
	}
}
