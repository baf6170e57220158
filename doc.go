// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package bmfont is a bitmap-font asset pipeline and runtime.
//
// Build time takes host-rendered glyph cells plus measured per-character
// metrics for a (family, style, weight, size, pixel-density) font
// identity and produces two artifacts: a tight atlas image (glyphs
// packed contiguously, see package atlas) and a minified metrics blob
// (see package minify). Run time loads those artifacts back and offers
// two operations to a drawing surface: MeasureText and
// DrawTextFromAtlas, both implemented against the reconstructed atlas
// positioning and the font's kerning/correction spec (package spec).
//
// Store (see store.go) is the process-wide cache that ties these
// together for a running application: RegisterMetrics/RegisterAtlas
// install artifacts as they arrive in either order, LoadFonts drives
// that from a declarative FontManifest (package load), and Store's own
// MeasureText/DrawText resolve an identity's installed state (and any
// configured fallback identity) before delegating to the package-level
// functions.
//
// Package bmfont is provided as part of the bmfont bitmap text engine.
package bmfont
