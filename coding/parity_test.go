// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"errors"
	"reflect"
	"testing"
)

func TestField(t *testing.T) {
	for x := 1; x < 256; x++ {
		for y := 1; y < 256; y += 7 {
			p := Field.Mul(byte(x), byte(y))
			if d := Div(p, byte(y)); d != byte(x) {
				t.Fatalf("%d*%d/%d = %d", x, y, y, d)
			}
		}
		if Field.Mul(byte(x), Field.Inv(byte(x))) != 1 {
			t.Fatalf("%d * inv(%d) != 1", x, x)
		}
	}
	if Div(0, 7) != 0 {
		t.Error("0/7 != 0")
	}
	if Field.Exp(8) != 0x1d {
		t.Errorf("α⁸ = %#x, want 0x1d", Field.Exp(8))
	}
}

func TestDivByZero(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Div(1, 0) did not panic")
		}
	}()
	Div(1, 0)
}

func TestCoefficients(t *testing.T) {
	c, err := NewConfiguration("0123456789",
		WithVersion(Version{[3]int{24, 20, 16}, 2}))
	if err != nil {
		t.Fatal(err)
	}
	m := c.Coefficients()
	if len(m) != 2 || len(m[0]) != 8 {
		t.Fatalf("matrix is %d×%d, want 2×8", len(m), len(m[0]))
	}
	for j, row := range m {
		for i, v := range row {
			if v == 0 || v != Field.Exp((j+1)*i%255) {
				t.Errorf("coefficient [%d][%d] = %#x", j, i, v)
			}
		}
	}
	m[0][0] = 0
	if c.Coefficients()[0][0] != 1 {
		t.Error("Coefficients returned internal state")
	}
}

func TestParity(t *testing.T) {
	c := Default()
	data, err := c.Encode("PARITY", newRand())
	if err != nil {
		t.Fatal(err)
	}
	p := c.Seal(data)
	if len(p) != c.Version().PayloadBits() {
		t.Fatalf("Seal: %d bits, want %d",
			len(p), c.Version().PayloadBits())
	}
	d, err := c.Open(p)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !reflect.DeepEqual(d, data) {
		t.Error("Open did not return the sealed data")
	}
	qb := c.Version().QuadrantBits()
	for i := range p {
		p[i] ^= 1
		err := c.Validate(p)
		if !errors.Is(err, ErrDecoding) {
			t.Errorf("bit %d flipped: Validate = %v", i, err)
		} else if q := QuadrantError(i / qb); err != q {
			t.Errorf("bit %d flipped: %v, want %v", i, err, q)
		}
		p[i] ^= 1
	}
	if err := c.Validate(p[1:]); err != ErrDecoding {
		t.Errorf("Validate(short) = %v", err)
	}
}
