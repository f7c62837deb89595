// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"bytes"
	"reflect"
	"testing"
)

func bitString(s string) []Bit {
	b := make([]Bit, 0, len(s))
	for _, c := range s {
		if c == '0' || c == '1' {
			b = append(b, Bit(c-'0'))
		}
	}
	return b
}

func TestGroups(t *testing.T) {
	for _, tt := range []struct {
		in  string
		out []BitGroup
	}{
		{"", nil},
		{"0", []BitGroup{{0, 0, 1}}},
		{"111", []BitGroup{{1, 0, 3}}},
		{"1100010", []BitGroup{
			{1, 0, 2}, {0, 2, 3}, {1, 5, 1}, {0, 6, 1},
		}},
	} {
		if g := Groups(bitString(tt.in)); !reflect.DeepEqual(g, tt.out) {
			t.Errorf("Groups(%q) = %v, want %v", tt.in, g, tt.out)
		}
	}
}

func TestPack(t *testing.T) {
	for _, tt := range []struct {
		in  string
		out []byte
	}{
		{"", []byte{}},
		{"1", []byte{0x80}},
		{"1010 0101", []byte{0xa5}},
		{"1111 0000 1", []byte{0xf0, 0x80}},
	} {
		b := bitString(tt.in)
		p := Pack(b)
		if !bytes.Equal(p, tt.out) {
			t.Errorf("Pack(%q) = %x, want %x", tt.in, p, tt.out)
		}
		if u := Unpack(p, len(b)); !reflect.DeepEqual(u, b) &&
			len(b) != 0 {
			t.Errorf("Unpack(%x, %d) = %v, want %v",
				p, len(b), u, b)
		}
	}
}

func TestBitsWrite(t *testing.T) {
	b := NewBits(0)
	b.Write(5, 3)
	b.Write(0, 2)
	b.Write(0x1ff, 9)
	b.Pad(16)
	want := bitString("101 00 111111111 00")
	if !reflect.DeepEqual(b.Bits(), want) || b.Len() != 16 {
		t.Fatalf("Bits = %v (%d), want %v", b.Bits(), b.Len(), want)
	}
	s := NewBitStream(b.Bits())
	for _, tt := range []struct {
		n    int
		want uint32
	}{{3, 5}, {2, 0}, {9, 0x1ff}, {4, 0}} {
		if v := s.Read(tt.n); v != tt.want {
			t.Errorf("Read(%d) = %#x, want %#x", tt.n, v, tt.want)
		}
	}
	if s.Left() != 0 {
		t.Errorf("Left() = %d, want 0", s.Left())
	}
	b.Reset()
	if b.Len() != 0 || len(b.Bits()) != 0 {
		t.Errorf("Reset left %d bits", b.Len())
	}
}
