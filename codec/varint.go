// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package codec provides the fixed-point, zig-zag varint, delta, and
// base64 primitives shared by the metrics minifier/expander. Values
// are narrow range and repeat heavily, so deltas after a sort compress
// further under varint than a flat integer list would.
package codec

import "fmt"

// Scale is the fixed-point factor applied to every CSS-pixel metric
// value before it is stored as an integer: round(value * Scale).
const Scale = 10000

// Quantize converts a floating point metric to its fixed-point integer
// representation.
func Quantize(v float64) int32 {
	if v >= 0 {
		return int32(v*Scale + 0.5)
	}
	return -int32(-v*Scale + 0.5)
}

// Dequantize is the inverse of Quantize.
func Dequantize(v int32) float64 {
	return float64(v) / Scale
}

// zigzag maps a signed integer onto an unsigned one so that small
// magnitude values (positive or negative) encode to small varints.
func zigzag(n int32) uint32 {
	return uint32((n << 1) ^ (n >> 31))
}

func unzigzag(u uint32) int32 {
	return int32(u>>1) ^ -int32(u&1)
}

// EncodeVarint appends the zig-zag varint encoding of n to dst and
// returns the extended slice.
func EncodeVarint(dst []byte, n int32) []byte {
	u := zigzag(n)
	for u >= 0x80 {
		dst = append(dst, byte(u)|0x80)
		u >>= 7
	}
	return append(dst, byte(u))
}

// DecodeVarint reads one zig-zag varint from the front of src, returning
// the decoded value and the number of bytes consumed. An error is
// returned if src is exhausted before a terminating byte is found or if
// the decoded value does not fit in an int32 (the documented contract
// is round-trip for any signed integer in range ±2^31).
func DecodeVarint(src []byte) (n int32, consumed int, err error) {
	var u uint32
	var shift uint
	for i, b := range src {
		if shift >= 35 || (shift == 28 && b&0x70 != 0) {
			return 0, 0, fmt.Errorf("codec: varint overflow")
		}
		u |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return unzigzag(u), i + 1, nil
		}
		shift += 7
	}
	return 0, 0, fmt.Errorf("codec: truncated varint")
}

// EncodeVarintStream encodes a slice of signed integers as a
// concatenation of zig-zag varints, with no separators (callers know
// how many values to expect, or decode until the stream is exhausted).
func EncodeVarintStream(values []int32) []byte {
	buf := make([]byte, 0, len(values)*2)
	for _, v := range values {
		buf = EncodeVarint(buf, v)
	}
	return buf
}

// DecodeVarintStream decodes every varint in src, consuming the stream
// to completion. It is the inverse of EncodeVarintStream.
func DecodeVarintStream(src []byte) ([]int32, error) {
	values := make([]int32, 0, len(src))
	for len(src) > 0 {
		n, consumed, err := DecodeVarint(src)
		if err != nil {
			return nil, err
		}
		values = append(values, n)
		src = src[consumed:]
	}
	return values, nil
}

// EncodeDeltas emits the first element of sorted absolute, then each
// successive difference, varint encoded. sorted is expected to already
// be in ascending order; EncodeDeltas does not sort it.
func EncodeDeltas(sorted []int32) []byte {
	buf := make([]byte, 0, len(sorted)*2)
	var prev int32
	for i, v := range sorted {
		if i == 0 {
			buf = EncodeVarint(buf, v)
		} else {
			buf = EncodeVarint(buf, v-prev)
		}
		prev = v
	}
	return buf
}

// DecodeDeltas reconstructs the sorted integer list encoded by
// EncodeDeltas, via prefix sum.
func DecodeDeltas(src []byte) ([]int32, error) {
	deltas, err := DecodeVarintStream(src)
	if err != nil {
		return nil, err
	}
	out := make([]int32, len(deltas))
	var sum int32
	for i, d := range deltas {
		if i == 0 {
			sum = d
		} else {
			sum += d
		}
		out[i] = sum
	}
	return out, nil
}
