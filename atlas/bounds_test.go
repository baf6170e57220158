// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package atlas

import (
	"image"
	"image/color"
	"testing"
)

func TestScanCellFindsTightBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	img.Set(3, 2, color.NRGBA{0, 0, 0, 255})
	img.Set(5, 4, color.NRGBA{0, 0, 0, 255})

	bounds, ok := scanCell(img, 0, 0, 10, 10)
	if !ok {
		t.Fatal("expected tight bounds to be found")
	}
	want := TightBounds{Left: 3, Top: 2, Width: 3, Height: 3}
	if bounds != want {
		t.Errorf("scanCell = %+v, want %+v", bounds, want)
	}
}

func TestScanCellEmpty(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 5, 5))
	if _, ok := scanCell(img, 0, 0, 5, 5); ok {
		t.Error("expected empty cell to report not-ok")
	}
}

func TestScanCellRelativeToCellOrigin(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 10))
	img.Set(12, 1, color.NRGBA{0, 0, 0, 255})
	bounds, ok := scanCell(img, 10, 0, 10, 10)
	if !ok {
		t.Fatal("expected bounds")
	}
	if bounds.Left != 2 || bounds.Top != 1 || bounds.Width != 1 || bounds.Height != 1 {
		t.Errorf("scanCell = %+v, want left=2 top=1 w=1 h=1", bounds)
	}
}
