// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package bmfont

import "testing"

func TestFontIdentityString(t *testing.T) {
	cases := []struct {
		id   FontIdentity
		want string
	}{
		{NewFontIdentity(1, "Arial", "normal", "normal", 19), "density-1-0-Arial-style-normal-weight-normal-size-19-0"},
		{NewFontIdentity(1.5, "Arial", "", "", 19.5), "density-1-5-Arial-style-normal-weight-normal-size-19-5"},
		{NewFontIdentity(2, "Helvetica", "italic", "bold", 12.3), "density-2-0-Helvetica-style-italic-weight-bold-size-12-3"},
	}
	for _, c := range cases {
		if got := c.id.String(); got != c.want {
			t.Errorf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestFontIdentityParseRoundTrip(t *testing.T) {
	id := NewFontIdentity(1.5, "Arial", "italic", "bold", 19.5)
	s := id.String()
	got, err := ParseFontIdentity(s)
	if err != nil {
		t.Fatalf("ParseFontIdentity(%q): %s", s, err)
	}
	if got != id {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, id)
	}
	if got.String() != s {
		t.Errorf("re-stringified %q, want %q", got.String(), s)
	}
}

func TestFontIdentityEquality(t *testing.T) {
	a := NewFontIdentity(1, "Arial", "normal", "normal", 19)
	b := NewFontIdentity(1, "Arial", "normal", "normal", 19)
	c := NewFontIdentity(1, "Arial", "normal", "normal", 20)
	if a != b {
		t.Errorf("identical identities should compare equal")
	}
	if a == c {
		t.Errorf("different sizes should not compare equal")
	}
}

func TestParseFontIdentityMalformed(t *testing.T) {
	if _, err := ParseFontIdentity("not-an-identity"); err == nil {
		t.Errorf("expected error for malformed identity string")
	}
}
