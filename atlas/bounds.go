// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package atlas reconstructs a tight glyph atlas from a host-rasterized
// source atlas: scanning each character's cell for its minimal
// non-transparent bounding box, then repacking those bounds into a
// contiguous image with per-character placement offsets.
package atlas

import "image"

// TightBounds is one character's non-transparent extent within its
// source cell, relative to the cell's own top-left corner.
type TightBounds struct {
	Left, Top     int
	Width, Height int
}

// scanCell runs the four-pass tight-bounds scan described in section
// 4.2: bottom-up, then top-down bounded by bottom, then left-right and
// right-left both bounded by [top, bottom]. Each pass only ever
// narrows the search using the edge the previous pass found, so the
// result is independent of scan order or parallelism. ok is false when
// the cell contains no pixel with alpha > 0.
func scanCell(img image.Image, cx, cy, cw, ch int) (bounds TightBounds, ok bool) {
	bottom := -1
	for y := cy + ch - 1; y >= cy; y-- {
		if rowHasPixel(img, cx, cw, y) {
			bottom = y
			break
		}
	}
	if bottom < 0 {
		return TightBounds{}, false
	}

	top := bottom
	for y := cy; y <= bottom; y++ {
		if rowHasPixel(img, cx, cw, y) {
			top = y
			break
		}
	}

	left := cx
	for x := cx; x < cx+cw; x++ {
		if colHasPixel(img, x, top, bottom) {
			left = x
			break
		}
	}

	right := left
	for x := cx + cw - 1; x >= cx; x-- {
		if colHasPixel(img, x, top, bottom) {
			right = x
			break
		}
	}

	return TightBounds{
		Left:   left - cx,
		Top:    top - cy,
		Width:  right - left + 1,
		Height: bottom - top + 1,
	}, true
}

func rowHasPixel(img image.Image, cx, cw, y int) bool {
	for x := cx; x < cx+cw; x++ {
		if onPixel(img, x, y) {
			return true
		}
	}
	return false
}

func colHasPixel(img image.Image, x, top, bottom int) bool {
	for y := top; y <= bottom; y++ {
		if onPixel(img, x, y) {
			return true
		}
	}
	return false
}

func onPixel(img image.Image, x, y int) bool {
	_, _, _, a := img.At(x, y).RGBA()
	return a > 0
}
