// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package load

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ManifestEntry lists one font identity an application wants preloaded
// plus where to find its resources. This generalizes the directory
// convention of Locator.Dir into a declarative, per-font listing: a
// production asset pipeline names exactly which identities to fetch
// rather than discovering them implicitly from a directory scan.
type ManifestEntry struct {
	Family       string  `yaml:"family"`
	Style        string  `yaml:"style,omitempty"`
	Weight       string  `yaml:"weight,omitempty"`
	FontSize     float64 `yaml:"size"`
	PixelDensity float64 `yaml:"pixelDensity"`

	// Charset lists, in any order, the characters this identity's
	// metrics blob and atlas were built against. Callers sort it to
	// ascending code-point order before use, per spec.md's
	// sorted-character-set invariant.
	Charset string `yaml:"charset"`

	MetricsResource string `yaml:"metrics"`
	AtlasResource   string `yaml:"atlas,omitempty"`
	SpecResource    string `yaml:"spec,omitempty"`

	// FallbackFamily/Style/Weight name a font identity (sharing this
	// entry's size and pixel density) to substitute missing glyphs
	// from, per spec.md section 7.3. They are decoded only: LoadFonts
	// does not read them, and substitution happens only through the
	// FallbackIdentity text option.
	FallbackFamily string `yaml:"fallbackFamily,omitempty"`
	FallbackStyle  string `yaml:"fallbackStyle,omitempty"`
	FallbackWeight string `yaml:"fallbackWeight,omitempty"`
}

// Manifest is the top-level YAML document: the set of font identities
// a host wants loaded via Store.LoadFonts.
type Manifest struct {
	Fonts []ManifestEntry `yaml:"fonts"`
}

// ParseManifest decodes a font manifest document.
func ParseManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("load: malformed font manifest: %w", err)
	}
	return &m, nil
}
