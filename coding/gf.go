// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "rsc.io/qr/gf256"

// Field is GF(256) with polynomial x⁸+x⁴+x³+x²+1 and generator 2.
var Field = gf256.NewField(0x11d, 2)

// Div returns x/y in Field.  Div panics if y is 0.
func Div(x, y byte) byte {
	if y == 0 {
		panic("roundcode: division by zero")
	}
	if x == 0 {
		return 0
	}
	return Field.Exp(Field.Log(x) - Field.Log(y) + 255)
}

// dot returns the inner product of a and b in Field.
// b is treated as zero-padded to the length of a.
func dot(a, b []byte) byte {
	var s byte
	for i, v := range b {
		if i >= len(a) {
			break
		}
		s = Field.Add(s, Field.Mul(a[i], v))
	}
	return s
}
