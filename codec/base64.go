// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package codec

import "encoding/base64"

// ToBase64 encodes bytes as standard (RFC 4648) base64 without line
// breaks or padding surprises - the standard encoding is used so the
// output matches what any other RFC 4648 decoder expects.
func ToBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// FromBase64 is the inverse of ToBase64.
func FromBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
