// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package minify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/gazed/bmfont/codec"
)

// KerningEntry is one (compressed-left, compressed-right, kv-index)
// triple from the on-wire "k" field, in the document order it appeared
// in the JSON object. Document order matters: later entries overwrite
// earlier ones wherever their expansions overlap.
type KerningEntry struct {
	Left  string
	Right string
	Value int32 // index into the kv pool.
}

// decodeKerningEntriesOrdered walks raw (a JSON object of objects)
// token by token to recover the entries in their original document
// order. encoding/json's map decoding does not preserve key order, but
// the override semantics of the kerning wire format depend on it, so
// entries are read positionally with a streaming Decoder instead of
// unmarshalling into a map.
func decodeKerningEntriesOrdered(raw json.RawMessage) ([]KerningEntry, error) {
	if len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null" {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	var entries []KerningEntry
	for dec.More() {
		leftTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("minify: malformed kerning table: %w", err)
		}
		left, ok := leftTok.(string)
		if !ok {
			return nil, fmt.Errorf("minify: malformed kerning table: non-string key")
		}
		if err := expectDelim(dec, '{'); err != nil {
			return nil, err
		}
		for dec.More() {
			rightTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("minify: malformed kerning table: %w", err)
			}
			right, ok := rightTok.(string)
			if !ok {
				return nil, fmt.Errorf("minify: malformed kerning table: non-string key")
			}
			var value float64
			if err := dec.Decode(&value); err != nil {
				return nil, fmt.Errorf("minify: malformed kerning value: %w", err)
			}
			entries = append(entries, KerningEntry{Left: left, Right: right, Value: int32(value)})
		}
		if _, err := dec.Token(); err != nil { // closing '}'
			return nil, err
		}
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, err
	}
	return entries, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("minify: malformed kerning table: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("minify: malformed kerning table: expected %q", want)
	}
	return nil
}

// charsetIndex builds the position-in-sorted-order lookup the range
// expansion passes need.
func charsetIndex(charset []rune) map[rune]int {
	idx := make(map[rune]int, len(charset))
	for i, r := range charset {
		idx[r] = i
	}
	return idx
}

// expandLeftPass1 expands one compressed-left key into the concrete
// characters it denotes. A key is a range "X-Y" only when it is
// exactly three runes with '-' in the middle and both X and Y are
// present in the active character set; otherwise it is a literal
// single character.
func expandLeftPass1(key string, charset []rune, idx map[rune]int) []rune {
	runes := []rune(key)
	if len(runes) == 3 && runes[1] == '-' {
		if lo, ok1 := idx[runes[0]]; ok1 {
			if hi, ok2 := idx[runes[2]]; ok2 && lo <= hi {
				out := make([]rune, 0, hi-lo+1)
				for p := lo; p <= hi; p++ {
					out = append(out, charset[p])
				}
				return out
			}
		}
	}
	if len(runes) == 0 {
		return nil
	}
	return []rune{runes[0]}
}

// expandRightPass2 expands a compact character string into the set of
// characters it denotes, per spec.md section 4.5 pass 2.
func expandRightPass2(key string, charset []rune, idx map[rune]int) []rune {
	runes := []rune(key)
	var out []rune
	i := 0
	if len(runes) > 0 && runes[0] == '-' {
		out = append(out, '-')
		i = 1
	}
	for i < len(runes) {
		if i+2 < len(runes) && runes[i+1] == '-' {
			x, y := runes[i], runes[i+2]
			lo, okX := idx[x]
			hi, okY := idx[y]
			if okX && okY && lo < hi {
				for p := lo; p <= hi; p++ {
					out = append(out, charset[p])
				}
				i += 3
				continue
			}
		}
		out = append(out, runes[i])
		i++
	}
	return out
}

// ExpandKerningRanges runs the three-pass expansion described in
// spec.md section 4.5: left-range expansion, right compact-string
// expansion, and kv-pool dereference. entries must be in original
// document order since later entries overwrite earlier ones wherever
// their expansions overlap. charset must be in ascending code-point
// order.
func ExpandKerningRanges(entries []KerningEntry, kv []int32, charset []rune) (KerningTable, error) {
	idx := charsetIndex(charset)
	table := KerningTable{}
	for _, e := range entries {
		if e.Value < 0 || int(e.Value) >= len(kv) {
			return nil, fmt.Errorf("minify: kerning value index %d out of range [0,%d)", e.Value, len(kv))
		}
		adjustment := kv[e.Value] / codec.Scale
		lefts := expandLeftPass1(e.Left, charset, idx)
		rights := expandRightPass2(e.Right, charset, idx)
		for _, l := range lefts {
			for _, r := range rights {
				table.Set(l, r, adjustment)
			}
		}
	}
	return table, nil
}

// CompressKerningRanges is a conservative inverse of
// ExpandKerningRanges: it emits one literal single-character outer key
// per left character and one literal single-character inner key per
// right character, deduplicating adjustment values into a kv pool.
// Round-tripping this output through ExpandKerningRanges reproduces
// the original table exactly; it does not attempt to rediscover range
// notation, which spec.md explicitly allows ("any representation whose
// round-trip equals the original is valid").
func CompressKerningRanges(table KerningTable, charset []rune) (k map[string]map[string]int32, kv []int32) {
	k = map[string]map[string]int32{}
	pool := map[int32]int32{} // quantized value -> pool index
	for _, left := range charset {
		row, ok := table[left]
		if !ok || len(row) == 0 {
			continue
		}
		rights := make([]rune, 0, len(row))
		for r := range row {
			rights = append(rights, r)
		}
		sort.Slice(rights, func(i, j int) bool { return rights[i] < rights[j] })
		inner := make(map[string]int32, len(rights))
		for _, r := range rights {
			adjustment := row[r]
			quantized := adjustment * codec.Scale
			idx, ok := pool[quantized]
			if !ok {
				idx = int32(len(kv))
				kv = append(kv, quantized)
				pool[quantized] = idx
			}
			inner[string(r)] = idx
		}
		k[string(left)] = inner
	}
	return k, kv
}
