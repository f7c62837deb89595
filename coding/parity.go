// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// parityMatrix returns the parity coefficients for v.
// Row j, column i holds α^((j+1)i).
func parityMatrix(v Version) [][]byte {
	n := (v.DataBits() + 7) / 8
	m := make([][]byte, v.ParityBytes)
	for j := range m {
		row := make([]byte, n)
		for i := range row {
			row[i] = Field.Exp((j + 1) * i % 255)
		}
		m[j] = row
	}
	return m
}

// Coefficients returns a copy of the parity coefficient matrix.
func (c *Configuration) Coefficients() [][]byte {
	m := make([][]byte, len(c.coef))
	for i, row := range c.coef {
		m[i] = append([]byte(nil), row...)
	}
	return m
}

// Parity returns the parity bits for a quadrant's data bits.
func (c *Configuration) Parity(data []Bit) []Bit {
	b := Pack(data)
	p := make([]byte, len(c.coef))
	for j, row := range c.coef {
		p[j] = dot(row, b)
	}
	return Unpack(p, c.version.ParityBits())
}

// Seal appends parity to each quadrant of data, which must hold
// 4*DataBits bits, and returns the payload.
func (c *Configuration) Seal(data []Bit) []Bit {
	v := c.version
	db := v.DataBits()
	if len(data) != 4*db {
		panic("roundcode: wrong data length")
	}
	p := make([]Bit, 0, v.PayloadBits())
	for q := 0; q < 4; q++ {
		d := data[q*db : (q+1)*db]
		p = append(p, d...)
		p = append(p, c.Parity(d)...)
	}
	return p
}

// Validate checks the parity of every quadrant in payload.
// The error wraps ErrDecoding.
func (c *Configuration) Validate(payload []Bit) error {
	v := c.version
	if len(payload) != v.PayloadBits() {
		return ErrDecoding
	}
	qb, db := v.QuadrantBits(), v.DataBits()
	for q := 0; q < 4; q++ {
		s := payload[q*qb : (q+1)*qb]
		p := c.Parity(s[:db])
		for i, b := range s[db:] {
			if b != p[i] {
				return QuadrantError(q)
			}
		}
	}
	return nil
}

// Open validates payload and returns its data bits.
func (c *Configuration) Open(payload []Bit) ([]Bit, error) {
	if err := c.Validate(payload); err != nil {
		return nil, err
	}
	v := c.version
	qb, db := v.QuadrantBits(), v.DataBits()
	d := make([]Bit, 0, 4*db)
	for q := 0; q < 4; q++ {
		d = append(d, payload[q*qb:q*qb+db]...)
	}
	return d, nil
}
