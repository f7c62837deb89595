// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// A Bit is a single bit of a code, 0 or 1.
type Bit byte

// A BitGroup is a run of Count identical bits starting at Offset.
type BitGroup struct {
	Bit    Bit
	Offset int
	Count  int
}

// Groups splits b into runs of identical bits.
func Groups(b []Bit) []BitGroup {
	var g []BitGroup
	for i := 0; i < len(b); {
		start := i
		for i < len(b) && b[i] == b[start] {
			i++
		}
		g = append(g, BitGroup{b[start], start, i - start})
	}
	return g
}

// Pack packs bits into bytes, most significant bit first.
// The final byte is padded with zeros.
func Pack(b []Bit) []byte {
	p := make([]byte, (len(b)+7)/8)
	for i, v := range b {
		p[i>>3] |= byte(v&1) << (7 - i&7)
	}
	return p
}

// Unpack returns the first n bits of p, most significant bit first.
// Bits past the end of p are 0.
func Unpack(p []byte, n int) []Bit {
	b := make([]Bit, n)
	for i := range b {
		if i>>3 < len(p) {
			b[i] = Bit(p[i>>3] >> (7 - i&7) & 1)
		}
	}
	return b
}

// Bits is a bit string writer.
type Bits struct {
	b    []Bit
	nbit int
}

// NewBits returns Bits with capacity for n bits.
func NewBits(n int) *Bits {
	return &Bits{b: make([]Bit, 0, n)}
}

func (b *Bits) Reset() {
	b.b = b.b[:0]
	b.nbit = 0
}

// Len returns the number of bits written.
func (b *Bits) Len() int { return b.nbit }

// Bits returns the written bits.
func (b *Bits) Bits() []Bit { return b.b }

// Write appends the low nbit bits of v, most significant first.
func (b *Bits) Write(v uint32, nbit int) {
	for i := nbit - 1; i >= 0; i-- {
		b.b = append(b.b, Bit(v>>i&1))
	}
	b.nbit += nbit
}

// Pad appends zero bits until b holds n bits.
func (b *Bits) Pad(n int) {
	for b.nbit < n {
		b.b = append(b.b, 0)
		b.nbit++
	}
}

// A BitStream reads values from a bit string.
type BitStream struct {
	b   []Bit
	pos int
}

// NewBitStream returns a BitStream reading from b.
func NewBitStream(b []Bit) BitStream { return BitStream{b: b} }

// Next returns the next bit from s.
// Past the end Next returns 0.
func (s *BitStream) Next() Bit {
	if s.pos >= len(s.b) {
		return 0
	}
	v := s.b[s.pos] & 1
	s.pos++
	return v
}

// Read returns the next nbit bits as a big endian value.
func (s *BitStream) Read(nbit int) uint32 {
	var v uint32
	for i := 0; i < nbit; i++ {
		v = v<<1 | uint32(s.Next())
	}
	return v
}

// Left returns the number of unread bits.
func (s *BitStream) Left() int { return max(len(s.b)-s.pos, 0) }
