// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package atlas

import (
	"image"

	"golang.org/x/image/draw"
)

// ImageFactory allocates destination bitmaps for the repacker, per
// spec.md section 9's "canvas factory abstraction" design note: the
// core depends on this trait, not on any particular GUI surface.
type ImageFactory interface {
	NewImage(width, height int) draw.Image
}

// NRGBAFactory is the default ImageFactory, backed by image.NRGBA.
type NRGBAFactory struct{}

func (NRGBAFactory) NewImage(width, height int) draw.Image {
	return image.NewNRGBA(image.Rect(0, 0, width, height))
}
