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

// Blob is the in-memory form of the minified metrics blob: the
// 8-element tuple [kv, k, b, v, t, g, s, cl] described in spec.md
// section 4.4, decoded into typed Go values.
type Blob struct {
	KV         []int32        // quantized kerning value pool.
	KEntries   []KerningEntry // decode-time ordered kerning entries; used by Expand.
	K          map[string]map[string]int32 // encode-time kerning table; used by Marshal.
	B          [6]int32       // quantized [fba, fbd, hb, ab, ib, pd].
	V          []int32        // quantized per-character value pool.
	TupletPool []Tuplet       // distinct per-character tuplets.
	Glyphs     []byte         // per character (sorted order): index into TupletPool.
	SpaceAdvanceOverride *float64
	CommonLeft *int32 // index into V; present only if any TupletL2 is used.
}

// ParseBlob decodes a minified metrics blob from its on-wire JSON
// array form.
func ParseBlob(data []byte) (Blob, error) {
	var arr []json.RawMessage
	if err := json.Unmarshal(data, &arr); err != nil {
		return Blob{}, fmt.Errorf("minify: malformed blob: %w", err)
	}
	if len(arr) != 7 && len(arr) != 8 {
		return Blob{}, fmt.Errorf("minify: blob has %d elements, want 7 or 8", len(arr))
	}

	var blob Blob
	if err := json.Unmarshal(arr[0], &blob.KV); err != nil {
		return Blob{}, fmt.Errorf("minify: malformed kv pool: %w", err)
	}
	entries, err := decodeKerningEntriesOrdered(arr[1])
	if err != nil {
		return Blob{}, err
	}
	blob.KEntries = entries
	if err := json.Unmarshal(arr[2], &blob.B); err != nil {
		return Blob{}, fmt.Errorf("minify: malformed common baselines: %w", err)
	}
	v, err := decodeValuePool(arr[3])
	if err != nil {
		return Blob{}, err
	}
	blob.V = v

	var tStr string
	if err := json.Unmarshal(arr[4], &tStr); err != nil {
		return Blob{}, fmt.Errorf("minify: malformed tuplet stream: %w", err)
	}
	tBytes, err := codec.FromBase64(tStr)
	if err != nil {
		return Blob{}, fmt.Errorf("minify: malformed tuplet stream base64: %w", err)
	}
	tFlat, err := codec.DecodeVarintStream(tBytes)
	if err != nil {
		return Blob{}, fmt.Errorf("minify: malformed tuplet varint stream: %w", err)
	}
	tuplets, err := unflattenTuplets(tFlat)
	if err != nil {
		return Blob{}, err
	}
	blob.TupletPool = tuplets

	var gStr string
	if err := json.Unmarshal(arr[5], &gStr); err != nil {
		return Blob{}, fmt.Errorf("minify: malformed glyph index stream: %w", err)
	}
	gBytes, err := codec.FromBase64(gStr)
	if err != nil {
		return Blob{}, fmt.Errorf("minify: malformed glyph index base64: %w", err)
	}
	blob.Glyphs = gBytes

	var s *float64
	if err := json.Unmarshal(arr[6], &s); err != nil {
		return Blob{}, fmt.Errorf("minify: malformed space override: %w", err)
	}
	blob.SpaceAdvanceOverride = s

	if len(arr) == 8 {
		var cl *int32
		if err := json.Unmarshal(arr[7], &cl); err != nil {
			return Blob{}, fmt.Errorf("minify: malformed common-left index: %w", err)
		}
		blob.CommonLeft = cl
	}
	return blob, nil
}

// decodeValuePool accepts both the legacy integer-array form and the
// newer base64-encoded-sorted-deltas form of the "v" blob field.
func decodeValuePool(raw json.RawMessage) ([]int32, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("minify: malformed value pool: %w", err)
		}
		data, err := codec.FromBase64(s)
		if err != nil {
			return nil, fmt.Errorf("minify: malformed value pool base64: %w", err)
		}
		values, err := codec.DecodeDeltas(data)
		if err != nil {
			return nil, fmt.Errorf("minify: malformed value pool deltas: %w", err)
		}
		return values, nil
	}
	var values []int32
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("minify: malformed value pool array: %w", err)
	}
	return values, nil
}

// Marshal re-encodes a Blob to its on-wire JSON array form. The value
// pool ("v") is always emitted in the newer base64-delta form,
// regardless of which form it was decoded from (spec.md section 9).
func Marshal(blob Blob) ([]byte, error) {
	kv := blob.KV
	if kv == nil {
		kv = []int32{}
	}
	kmap := blob.K
	if kmap == nil {
		kmap = buildKMap(blob.KEntries)
	}

	vBytes := codec.EncodeDeltas(blob.V)
	vB64 := codec.ToBase64(vBytes)

	tFlat := flattenTuplets(blob.TupletPool)
	tBytes := codec.EncodeVarintStream(tFlat)
	tB64 := codec.ToBase64(tBytes)

	gB64 := codec.ToBase64(blob.Glyphs)

	arr := []interface{}{kv, kmap, blob.B, vB64, tB64, gB64, blob.SpaceAdvanceOverride}
	if blob.CommonLeft != nil {
		arr = append(arr, *blob.CommonLeft)
	}
	return json.Marshal(arr)
}

func buildKMap(entries []KerningEntry) map[string]map[string]int32 {
	m := map[string]map[string]int32{}
	for _, e := range entries {
		inner, ok := m[e.Left]
		if !ok {
			inner = map[string]int32{}
			m[e.Left] = inner
		}
		inner[e.Right] = e.Value
	}
	return m
}

// Expand decodes a Blob into a fully expanded FontMetrics, per
// spec.md section 4.4. charset must be in ascending code-point order
// and is the same character set used to build the blob.
func Expand(blob Blob, charset []rune) (*FontMetrics, error) {
	common := CommonMetrics{
		FontBoundingBoxAscent:  codec.Dequantize(blob.B[0]),
		FontBoundingBoxDescent: codec.Dequantize(blob.B[1]),
		HangingBaseline:        codec.Dequantize(blob.B[2]),
		AlphabeticBaseline:     codec.Dequantize(blob.B[3]),
		IdeographicBaseline:    codec.Dequantize(blob.B[4]),
		PixelDensity:           codec.Dequantize(blob.B[5]),
	}

	kerning, err := ExpandKerningRanges(blob.KEntries, blob.KV, charset)
	if err != nil {
		return nil, err
	}

	if len(blob.Glyphs) < len(charset) {
		return nil, fmt.Errorf("minify: glyph index stream has %d entries, want %d", len(blob.Glyphs), len(charset))
	}

	haveCommonLeft := blob.CommonLeft != nil
	var commonLeft int32
	if haveCommonLeft {
		commonLeft = *blob.CommonLeft
	}

	lookup := func(idx int32) (float64, error) {
		if idx < 0 || int(idx) >= len(blob.V) {
			return 0, fmt.Errorf("minify: value pool index %d out of range [0,%d)", idx, len(blob.V))
		}
		return codec.Dequantize(blob.V[idx]), nil
	}

	characters := make(map[rune]CharacterMetrics, len(charset))
	for i, r := range charset {
		tupletIdx := int(blob.Glyphs[i])
		if tupletIdx >= len(blob.TupletPool) {
			return nil, fmt.Errorf("minify: character %q: tuplet index %d out of range [0,%d)", r, tupletIdx, len(blob.TupletPool))
		}
		tuplet := blob.TupletPool[tupletIdx]
		wI, lI, rI, aI, dI, err := tuplet.Expand(commonLeft, haveCommonLeft)
		if err != nil {
			return nil, fmt.Errorf("minify: character %q: %w", r, err)
		}
		w, err := lookup(wI)
		if err != nil {
			return nil, err
		}
		l, err := lookup(lI)
		if err != nil {
			return nil, err
		}
		rr, err := lookup(rI)
		if err != nil {
			return nil, err
		}
		a, err := lookup(aI)
		if err != nil {
			return nil, err
		}
		d, err := lookup(dI)
		if err != nil {
			return nil, err
		}
		cm := CharacterMetrics{
			Width:                    w,
			ActualBoundingBoxLeft:    l,
			ActualBoundingBoxRight:   rr,
			ActualBoundingBoxAscent:  a,
			ActualBoundingBoxDescent: d,
		}
		common.apply(&cm)
		characters[r] = cm
	}

	var spaceOverride *float64
	if blob.SpaceAdvanceOverride != nil {
		v := *blob.SpaceAdvanceOverride
		spaceOverride = &v
	}
	return &FontMetrics{Common: common, Characters: characters, Kerning: kerning, SpaceAdvanceOverride: spaceOverride}, nil
}

// Minify encodes a FontMetrics into the smallest legal Blob
// representation, per spec.md sections 4.4-4.5. charset must be in
// ascending code-point order and must match the key set of
// fm.Characters exactly.
func Minify(fm *FontMetrics, charset []rune) (Blob, error) {
	type quint struct{ w, l, r, a, d int32 }
	raw := make([]quint, len(charset))
	leftFreq := map[int32]int{}
	for i, r := range charset {
		cm, ok := fm.Characters[r]
		if !ok {
			return Blob{}, fmt.Errorf("minify: character %q missing from font metrics", r)
		}
		q := quint{
			w: codec.Quantize(cm.Width),
			l: codec.Quantize(cm.ActualBoundingBoxLeft),
			r: codec.Quantize(cm.ActualBoundingBoxRight),
			a: codec.Quantize(cm.ActualBoundingBoxAscent),
			d: codec.Quantize(cm.ActualBoundingBoxDescent),
		}
		raw[i] = q
		leftFreq[q.l]++
	}

	var commonLeft int32
	bestCount := -1
	for v, count := range leftFreq {
		if count > bestCount || (count == bestCount && v < commonLeft) {
			commonLeft, bestCount = v, count
		}
	}

	type fields struct {
		kind   string
		values []int32
	}
	perChar := make([]fields, len(charset))
	valueSet := map[int32]struct{}{}
	haveCommonLeft := false
	for i, q := range raw {
		var f fields
		switch {
		case q.l == commonLeft && q.r == q.w && q.d == commonLeft:
			f = fields{"L2", []int32{q.w, q.a}}
			haveCommonLeft = true
		case q.r == q.w && q.d == q.l:
			f = fields{"L3", []int32{q.w, q.l, q.a}}
		case q.r == q.w:
			f = fields{"L4", []int32{q.w, q.l, q.a, q.d}}
		default:
			f = fields{"L5", []int32{q.w, q.l, q.r, q.a, q.d}}
		}
		for _, v := range f.values {
			valueSet[v] = struct{}{}
		}
		perChar[i] = f
	}
	if haveCommonLeft {
		// An L2 tuplet never carries its own left/descent value (both are
		// implied by CommonLeft), so commonLeft can otherwise be absent
		// from the pool and CommonLeft would point at the wrong index.
		valueSet[commonLeft] = struct{}{}
	}

	pool := make([]int32, 0, len(valueSet))
	for v := range valueSet {
		pool = append(pool, v)
	}
	sort.Slice(pool, func(i, j int) bool { return pool[i] < pool[j] })
	poolIndex := make(map[int32]int32, len(pool))
	for i, v := range pool {
		poolIndex[v] = int32(i)
	}

	tuplets := make([]Tuplet, len(charset))
	tupletPool := []Tuplet{}
	tupletKey := map[string]int{}
	glyphs := make([]byte, len(charset))
	for i, f := range perChar {
		idxValues := make([]int32, len(f.values))
		for j, v := range f.values {
			idxValues[j] = poolIndex[v]
		}
		var t Tuplet
		var err error
		t, err = NewTuplet(idxValues)
		if err != nil {
			return Blob{}, err
		}
		tuplets[i] = t
		key := fmt.Sprintf("%s%v", f.kind, idxValues)
		pi, ok := tupletKey[key]
		if !ok {
			if len(tupletPool) >= 256 {
				return Blob{}, fmt.Errorf("minify: more than 256 distinct tuplets required")
			}
			pi = len(tupletPool)
			tupletPool = append(tupletPool, t)
			tupletKey[key] = pi
		}
		glyphs[i] = byte(pi)
	}

	blob := Blob{
		B: [6]int32{
			codec.Quantize(fm.Common.FontBoundingBoxAscent),
			codec.Quantize(fm.Common.FontBoundingBoxDescent),
			codec.Quantize(fm.Common.HangingBaseline),
			codec.Quantize(fm.Common.AlphabeticBaseline),
			codec.Quantize(fm.Common.IdeographicBaseline),
			codec.Quantize(fm.Common.PixelDensity),
		},
		V:                    pool,
		TupletPool:           tupletPool,
		Glyphs:               glyphs,
		SpaceAdvanceOverride: fm.SpaceAdvanceOverride,
	}
	if haveCommonLeft {
		cl := poolIndex[commonLeft]
		blob.CommonLeft = &cl
	}

	k, kv := CompressKerningRanges(fm.Kerning, charset)
	blob.K = k
	blob.KV = kv
	return blob, nil
}
