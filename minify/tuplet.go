// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package minify

import "fmt"

// Tuplet is one character's compressed metric record: 2, 3, 4, or 5
// fixed-point indices into the value pool. Rather than dispatching on
// a slice's length at expand time, each legal arity gets its own type
// with the expansion rule baked into its Expand method - once a Tuplet
// value exists it is guaranteed one of the four legal shapes, so the
// corrupted-length error class only needs checking once, in NewTuplet.
type Tuplet interface {
	// Expand returns the indices (w, l, r, a, d) into the value pool
	// for width, actualBoundingBoxLeft, actualBoundingBoxRight,
	// actualBoundingBoxAscent, actualBoundingBoxDescent. commonLeft and
	// haveCommonLeft supply the "cl" blob field, required only by the
	// length-2 shape.
	Expand(commonLeft int32, haveCommonLeft bool) (w, l, r, a, d int32, err error)

	// Values returns the tuplet's raw indices in on-wire order, for
	// re-encoding.
	Values() []int32
}

// TupletL5 is the uncompressed [w, l, r, a, d] shape: no expansion.
type TupletL5 [5]int32

func (t TupletL5) Expand(int32, bool) (int32, int32, int32, int32, int32, error) {
	return t[0], t[1], t[2], t[3], t[4], nil
}
func (t TupletL5) Values() []int32 { return t[:] }

// TupletL4 is [w, l, a, d], expanding to [w, l, w, a, d]: right equals
// width.
type TupletL4 [4]int32

func (t TupletL4) Expand(int32, bool) (int32, int32, int32, int32, int32, error) {
	w, l, a, d := t[0], t[1], t[2], t[3]
	return w, l, w, a, d, nil
}
func (t TupletL4) Values() []int32 { return t[:] }

// TupletL3 is [w, l, a], expanding to [w, l, w, a, l]: right equals
// width, descent equals left.
type TupletL3 [3]int32

func (t TupletL3) Expand(int32, bool) (int32, int32, int32, int32, int32, error) {
	w, l, a := t[0], t[1], t[2]
	return w, l, w, a, l, nil
}
func (t TupletL3) Values() []int32 { return t[:] }

// TupletL2 is [w, a], expanding to [w, cl, w, a, cl] using the blob's
// common-left index. Expand fails if no common-left index was carried.
type TupletL2 [2]int32

func (t TupletL2) Expand(commonLeft int32, haveCommonLeft bool) (int32, int32, int32, int32, int32, error) {
	if !haveCommonLeft {
		return 0, 0, 0, 0, 0, fmt.Errorf("minify: length-2 tuplet requires a common-left index")
	}
	w, a := t[0], t[1]
	return w, commonLeft, w, a, commonLeft, nil
}
func (t TupletL2) Values() []int32 { return t[:] }

// NewTuplet constructs the Tuplet variant matching len(values); it is
// the single place the corrupted-tuplet-length error is raised.
func NewTuplet(values []int32) (Tuplet, error) {
	switch len(values) {
	case 5:
		return TupletL5{values[0], values[1], values[2], values[3], values[4]}, nil
	case 4:
		return TupletL4{values[0], values[1], values[2], values[3]}, nil
	case 3:
		return TupletL3{values[0], values[1], values[2]}, nil
	case 2:
		return TupletL2{values[0], values[1]}, nil
	default:
		return nil, fmt.Errorf("minify: corrupted tuplet length %d", len(values))
	}
}

// TupletFor returns the smallest legal Tuplet that encodes
// (width, left, right, ascent, descent) without loss, using
// commonLeft/haveCommonLeft as the candidate length-2 fallback. It
// applies the same shape-selection rules as Minify's per-character step
// (which selects shapes inline rather than calling TupletFor) and is
// the inverse of Expand.
func TupletFor(w, l, r, a, d int32, commonLeft int32, haveCommonLeft bool) Tuplet {
	if haveCommonLeft && l == commonLeft && r == w && d == commonLeft {
		return TupletL2{w, a}
	}
	if r == w && d == l {
		return TupletL3{w, l, a}
	}
	if r == w {
		return TupletL4{w, l, a, d}
	}
	return TupletL5{w, l, r, a, d}
}

// flattenTuplets packs tuplets into the "t" field's flattened stream:
// every element shifted to 1-based (x+1), with the last element of
// each tuplet negated (-(x+1)) to mark the tuplet boundary.
func flattenTuplets(tuplets []Tuplet) []int32 {
	var flat []int32
	for _, t := range tuplets {
		values := t.Values()
		for i, v := range values {
			if i == len(values)-1 {
				flat = append(flat, -(v + 1))
			} else {
				flat = append(flat, v+1)
			}
		}
	}
	return flat
}

// unflattenTuplets is the inverse of flattenTuplets: split on negative
// values, mapping every positive entry x back to x-1 and the trailing
// negative y back to -y-1 (undoing the 1-based shift), then
// constructing the typed Tuplet for each group.
func unflattenTuplets(flat []int32) ([]Tuplet, error) {
	var tuplets []Tuplet
	var current []int32
	for _, v := range flat {
		if v < 0 {
			current = append(current, -v-1)
			t, err := NewTuplet(current)
			if err != nil {
				return nil, err
			}
			tuplets = append(tuplets, t)
			current = nil
		} else {
			current = append(current, v-1)
		}
	}
	if len(current) != 0 {
		return nil, fmt.Errorf("minify: truncated tuplet stream, %d dangling values", len(current))
	}
	return tuplets, nil
}
