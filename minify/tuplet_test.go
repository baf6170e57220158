// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package minify

import "testing"

func TestTupletExpandShapes(t *testing.T) {
	l5, _ := NewTuplet([]int32{1, 2, 3, 4, 5})
	if w, l, r, a, d, err := l5.Expand(0, false); err != nil || (w != 1 || l != 2 || r != 3 || a != 4 || d != 5) {
		t.Fatalf("L5 Expand = %d %d %d %d %d, %v", w, l, r, a, d, err)
	}

	l4, _ := NewTuplet([]int32{1, 2, 3, 4})
	if w, l, r, a, d, err := l4.Expand(0, false); err != nil || (w != 1 || l != 2 || r != 1 || a != 3 || d != 4) {
		t.Fatalf("L4 Expand = %d %d %d %d %d, %v", w, l, r, a, d, err)
	}

	l3, _ := NewTuplet([]int32{1, 2, 3})
	if w, l, r, a, d, err := l3.Expand(0, false); err != nil || (w != 1 || l != 2 || r != 1 || a != 3 || d != 2) {
		t.Fatalf("L3 Expand = %d %d %d %d %d, %v", w, l, r, a, d, err)
	}

	l2, _ := NewTuplet([]int32{1, 4})
	if _, _, _, _, _, err := l2.Expand(0, false); err == nil {
		t.Fatal("L2 Expand without common-left should fail")
	}
	if w, l, r, a, d, err := l2.Expand(9, true); err != nil || (w != 1 || l != 9 || r != 1 || a != 4 || d != 9) {
		t.Fatalf("L2 Expand = %d %d %d %d %d, %v", w, l, r, a, d, err)
	}
}

func TestNewTupletCorruptedLength(t *testing.T) {
	if _, err := NewTuplet([]int32{1}); err == nil {
		t.Fatal("expected error for length-1 tuplet")
	}
	if _, err := NewTuplet([]int32{1, 2, 3, 4, 5, 6}); err == nil {
		t.Fatal("expected error for length-6 tuplet")
	}
}

func TestTupletForPicksSmallest(t *testing.T) {
	if tp := TupletFor(10, 9, 10, 3, 9, 9, true); len(tp.Values()) != 2 {
		t.Errorf("expected L2, got %T", tp)
	}
	if tp := TupletFor(10, 2, 10, 3, 2, 9, true); len(tp.Values()) != 3 {
		t.Errorf("expected L3, got %T", tp)
	}
	if tp := TupletFor(10, 2, 10, 3, 7, 9, true); len(tp.Values()) != 4 {
		t.Errorf("expected L4, got %T", tp)
	}
	if tp := TupletFor(10, 2, 11, 3, 7, 9, true); len(tp.Values()) != 5 {
		t.Errorf("expected L5, got %T", tp)
	}
}

func TestFlattenUnflattenTuplets(t *testing.T) {
	l5, _ := NewTuplet([]int32{1, 2, 3, 4, 5})
	l2, _ := NewTuplet([]int32{0, 9})
	want := []Tuplet{l5, l2}

	flat := flattenTuplets(want)
	got, err := unflattenTuplets(flat)
	if err != nil {
		t.Fatalf("unflattenTuplets: %s", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tuplets, want %d", len(got), len(want))
	}
	for i := range want {
		wv, gv := want[i].Values(), got[i].Values()
		if len(wv) != len(gv) {
			t.Fatalf("tuplet %d length mismatch: %v vs %v", i, wv, gv)
		}
		for j := range wv {
			if wv[j] != gv[j] {
				t.Errorf("tuplet %d[%d] = %d, want %d", i, j, gv[j], wv[j])
			}
		}
	}
}

func TestUnflattenTruncatedStream(t *testing.T) {
	if _, err := unflattenTuplets([]int32{2, 3}); err == nil {
		t.Fatal("expected error for truncated tuplet stream")
	}
}
