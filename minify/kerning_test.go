// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package minify

import (
	"testing"

	"github.com/gazed/bmfont/codec"
)

func TestDecodeKerningEntriesOrderedPreservesOrder(t *testing.T) {
	raw := []byte(`{"A":{"V":1},"B":{"W":2},"A":{"X":3}}`)
	entries, err := decodeKerningEntriesOrdered(raw)
	if err != nil {
		t.Fatalf("decodeKerningEntriesOrdered: %s", err)
	}
	want := []KerningEntry{{"A", "V", 1}, {"B", "W", 2}, {"A", "X", 3}}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, e := range entries {
		if e != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, e, want[i])
		}
	}
}

func TestExpandLeftPass1Range(t *testing.T) {
	charset := []rune("ABCDE")
	idx := charsetIndex(charset)
	got := expandLeftPass1("B-D", charset, idx)
	want := []rune("BCD")
	if string(got) != string(want) {
		t.Errorf("expandLeftPass1 = %q, want %q", string(got), string(want))
	}
	if got := expandLeftPass1("Z-D", charset, idx); string(got) != "Z" {
		t.Errorf("out-of-charset range should fall back to literal, got %q", string(got))
	}
	if got := expandLeftPass1("AB", charset, idx); string(got) != "A" {
		t.Errorf("non-range key should be literal first rune, got %q", string(got))
	}
}

func TestExpandRightPass2CompactString(t *testing.T) {
	charset := []rune("ABCDEFG")
	idx := charsetIndex(charset)
	got := expandRightPass2("A-CE", charset, idx)
	want := []rune("ABCE")
	if string(got) != string(want) {
		t.Errorf("expandRightPass2 = %q, want %q", string(got), string(want))
	}
	if got := expandRightPass2("-AB", charset, idx); string(got) != "-AB" {
		t.Errorf("leading hyphen should be literal, got %q", string(got))
	}
}

func TestExpandKerningRangesLaterWins(t *testing.T) {
	charset := []rune("ABCDE")
	kv := []int32{codec.Quantize(-10), codec.Quantize(-20)}
	entries := []KerningEntry{
		{Left: "B-D", Right: "A-C", Value: 0},
		{Left: "C", Right: "B", Value: 1},
	}
	table, err := ExpandKerningRanges(entries, kv, charset)
	if err != nil {
		t.Fatalf("ExpandKerningRanges: %s", err)
	}
	if got := table.Adjustment('C', 'B'); got != -20 {
		t.Errorf("overlapping pair C,B = %d, want -20 (later entry should win)", got)
	}
	if got := table.Adjustment('B', 'A'); got != -10 {
		t.Errorf("non-overlapping pair B,A = %d, want -10", got)
	}
}

func TestExpandKerningRangesOutOfBoundsIndex(t *testing.T) {
	charset := []rune("AB")
	entries := []KerningEntry{{Left: "A", Right: "B", Value: 5}}
	if _, err := ExpandKerningRanges(entries, []int32{1}, charset); err == nil {
		t.Fatal("expected error for out-of-range kv index")
	}
}

func TestCompressExpandKerningRoundTrip(t *testing.T) {
	charset := []rune("ABC")
	table := KerningTable{}
	table.Set('A', 'B', -10)
	table.Set('A', 'C', -20)
	table.Set('B', 'A', -10)

	k, kv := CompressKerningRanges(table, charset)
	entries := []KerningEntry{}
	for _, left := range charset {
		inner, ok := k[string(left)]
		if !ok {
			continue
		}
		for _, right := range charset {
			if v, ok := inner[string(right)]; ok {
				entries = append(entries, KerningEntry{Left: string(left), Right: string(right), Value: v})
			}
		}
	}

	got, err := ExpandKerningRanges(entries, kv, charset)
	if err != nil {
		t.Fatalf("ExpandKerningRanges: %s", err)
	}
	for left, row := range table {
		for right, want := range row {
			if g := got.Adjustment(left, right); g != want {
				t.Errorf("Adjustment(%q,%q) = %d, want %d", left, right, g, want)
			}
		}
	}
}
