// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Rand is a source of random filler choices.
// *math/rand/v2.Rand implements Rand.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Indices returns the symbol indices for msg: the start marker,
// the message symbols and random fillers, MaxMessageLength()+1 in
// total.  If rnd is nil, the global source is used.
func (c *Configuration) Indices(msg string, rnd Rand) ([]int, error) {
	if rnd == nil {
		rnd = globalRand{}
	}
	n := c.MaxMessageLength() + 1
	x := make([]int, 1, n)
	x[0] = c.Marker()
	for _, r := range msg {
		if !c.Accepts(r) {
			return nil, &SymbolError{ErrInvalidCharacter, r, len(x) - 1}
		}
		if len(x) == n {
			return nil, fmt.Errorf("%w: over %d symbols",
				ErrMessageTooLong, n-1)
		}
		x = append(x, c.index[r])
	}
	for len(x) < n {
		x = append(x, c.Marker()+1+rnd.IntN(len(c.fillers)))
	}
	return x, nil
}

// Encode returns the data bits of all four quadrants for msg.
// Each quadrant holds Capacity() symbols followed by zero padding.
//
// Encode returns an error wrapping ErrInvalidCharacter if msg contains
// a rune outside the alphabet, or ErrMessageTooLong if msg is longer
// than MaxMessageLength().
func (c *Configuration) Encode(msg string, rnd Rand) ([]Bit, error) {
	x, err := c.Indices(msg, rnd)
	if err != nil {
		return nil, err
	}
	db := c.version.DataBits()
	b := NewBits(4 * db)
	for q := 0; q < 4; q++ {
		for _, v := range x[q*c.capacity : (q+1)*c.capacity] {
			b.Write(uint32(v), c.bps)
		}
		b.Pad((q + 1) * db)
	}
	return b.Bits(), nil
}

// symbolsAt returns the symbol indices of quadrant q of data.
func (c *Configuration) symbolsAt(data []Bit, q int) []int {
	db := c.version.DataBits()
	s := NewBitStream(data[q*db : (q+1)*db])
	x := make([]int, c.capacity)
	for i := range x {
		x[i] = int(s.Read(c.bps))
	}
	return x
}

// Quadrant returns the quadrant of data starting with the start
// marker, or -1 if there is none.
func (c *Configuration) Quadrant(data []Bit) int {
	if len(data) != 4*c.version.DataBits() {
		return -1
	}
	m := uint32(c.Marker())
	db := c.version.DataBits()
	for q := 0; q < 4; q++ {
		s := NewBitStream(data[q*db:])
		if s.Read(c.bps) == m {
			return q
		}
	}
	return -1
}

// Decode returns the message encoded in data, the data bits of four
// quadrants in any rotation.
//
// Decode returns ErrDecoding if no quadrant starts with the start
// marker, and an error wrapping ErrWrongConfiguration if a symbol index
// is out of range or a start marker appears elsewhere.
func (c *Configuration) Decode(data []Bit) (string, error) {
	q := c.Quadrant(data)
	if q < 0 {
		return "", ErrDecoding
	}
	var b strings.Builder
	first := true
	for i := 0; i < 4; i++ {
		for _, v := range c.symbolsAt(data, (q+i)&3) {
			switch {
			case first:
				first = false
			case v < len(c.alphabet):
				b.WriteRune(c.alphabet[v])
			case c.IsFiller(v):
			default:
				return "", fmt.Errorf("%w: symbol index %d",
					ErrWrongConfiguration, v)
			}
		}
	}
	return b.String(), nil
}
