// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package load

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
)

// ImageDecoder decodes one registered atlas image format.
type ImageDecoder func(r io.Reader) (image.Image, error)

type imageFormat struct {
	name   string
	magic  string // prefix bytes identifying the format, '?' is a wildcard byte
	decode ImageDecoder
}

// imageFormats holds every registered atlas format, tried in
// registration order against a resource's leading bytes. PNG is
// registered by default; RegisterImageFormat lets a host add others
// (QOI, for example) without this package needing to import them, the
// same way the standard library's image package stays agnostic of
// the formats it doesn't ship.
var imageFormats []imageFormat

func init() {
	RegisterImageFormat("png", "\x89PNG\r\n\x1a\n", func(r io.Reader) (image.Image, error) { return png.Decode(r) })
}

// RegisterImageFormat adds the decoder used for an atlas image format
// identified by its magic prefix bytes. magic may contain '?' for a
// wildcard byte. Atlas transport codecs beyond PNG (QOI, WebP) are
// specified only at the byte-format level; a host wires in its own
// decoder for those by calling this before loading.
func RegisterImageFormat(name, magic string, decode ImageDecoder) {
	imageFormats = append(imageFormats, imageFormat{name: name, magic: magic, decode: decode})
}

// DecodeImage decodes raw atlas image bytes by matching them against
// every registered format's magic prefix, in registration order.
func DecodeImage(data []byte) (image.Image, error) {
	for _, f := range imageFormats {
		if magicMatch(f.magic, data) {
			img, err := f.decode(bytes.NewReader(data))
			if err != nil {
				return nil, fmt.Errorf("load: decode %s atlas image: %w", f.name, err)
			}
			return img, nil
		}
	}
	return nil, fmt.Errorf("load: unrecognized atlas image format")
}

func magicMatch(magic string, data []byte) bool {
	if len(data) < len(magic) {
		return false
	}
	for i := 0; i < len(magic); i++ {
		if magic[i] != '?' && magic[i] != data[i] {
			return false
		}
	}
	return true
}
