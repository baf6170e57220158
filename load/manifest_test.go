// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package load

import (
	"strings"
	"testing"
)

func TestParseManifest(t *testing.T) {
	doc := `
fonts:
  - family: Arial
    style: normal
    weight: bold
    size: 16
    pixelDensity: 1
    charset: "AB "
    metrics: arial-bold-16.json
    atlas: arial-bold-16.png
    spec: arial-bold.spec
  - family: Symbols
    size: 16
    pixelDensity: 1
    charset: "☃"
    metrics: symbols-16.json
`
	m, err := ParseManifest(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseManifest: %s", err)
	}
	if len(m.Fonts) != 2 {
		t.Fatalf("len(Fonts) = %d, want 2", len(m.Fonts))
	}
	first := m.Fonts[0]
	if first.Family != "Arial" || first.Weight != "bold" || first.FontSize != 16 {
		t.Errorf("first entry = %+v, want family Arial, weight bold, size 16", first)
	}
	if first.AtlasResource != "arial-bold-16.png" || first.SpecResource != "arial-bold.spec" {
		t.Errorf("first entry resources = %+v", first)
	}
	second := m.Fonts[1]
	if second.AtlasResource != "" || second.SpecResource != "" {
		t.Errorf("second entry should have no optional resources, got %+v", second)
	}
}

func TestParseManifestMalformed(t *testing.T) {
	if _, err := ParseManifest(strings.NewReader("fonts: [not a list of maps")); err == nil {
		t.Fatal("expected error for malformed manifest")
	}
}
