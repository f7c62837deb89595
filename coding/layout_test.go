// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"math"
	"testing"

	"github.com/unixdj/roundcode/transform"
)

func dist(a, b transform.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func TestLayout(t *testing.T) {
	v := DefaultVersion
	l := NewLayout(v)
	if len(l) != v.PayloadBits() {
		t.Fatalf("%d slots, want %d", len(l), v.PayloadBits())
	}
	if &NewLayout(v)[0] != &l[0] {
		t.Error("layout not cached")
	}
	qb := v.QuadrantBits()
	dots := Dots()
	for i, s := range l {
		if s.Quadrant != i/qb {
			t.Errorf("slot %d in quadrant %d", i, s.Quadrant)
		}
		p := s.Point
		if p.X <= 0 || p.X >= 1 || p.Y <= 0 || p.Y >= 1 {
			t.Errorf("slot %d at %v outside the unit square", i, p)
		}
		if d := dist(p, Centre); math.Abs(d-s.Radius) > 1e-9 {
			t.Errorf("slot %d at distance %g, want %g", i, d, s.Radius)
		}
		for j, c := range dots {
			if d := dist(p, c); d < DotSize {
				t.Errorf("slot %d %.3f from dot %d", i, d, j)
			}
		}
		// Quadrant q+1 is quadrant q turned clockwise.
		if s.Quadrant < 3 {
			n := l[i+qb].Point
			x, y := p.X-0.5, p.Y-0.5
			want := transform.Pt(0.5-y, 0.5+x)
			if dist(n, want) > 1e-9 {
				t.Errorf("slot %d at %v, want %v", i+qb, n, want)
			}
		}
	}
	// ring order and slot counts within a quadrant
	i := 0
	for k := range v.Rings {
		n := v.RingSlots(k)
		for j := 0; j < n; j++ {
			if l[i].Ring != k || l[i].Index != j {
				t.Errorf("slot %d is ring %d index %d, want %d %d",
					i, l[i].Ring, l[i].Index, k, j)
			}
			if j > 0 && l[i].Angle <= l[i-1].Angle {
				t.Errorf("slot %d not clockwise", i)
			}
			i++
		}
	}
	if i != qb {
		t.Errorf("quadrant has %d slots, want %d", i, qb)
	}
}

func TestRingRadius(t *testing.T) {
	for k, want := range []float64{
		0.5 - LineWidth/2,
		0.5 - LineWidth*5/2,
		0.5 - LineWidth*9/2,
	} {
		if r := RingRadius(k); math.Abs(r-want) > 1e-12 {
			t.Errorf("RingRadius(%d) = %g, want %g", k, r, want)
		}
	}
}

func TestDots(t *testing.T) {
	r := DotSize / 2
	for i, p := range Dots() {
		if d := dist(p, Centre); math.Abs(d-(0.5-r)) > 1e-12 {
			t.Errorf("dot %d %g from centre", i, d)
		}
		if p.X != 0.5 && p.Y != 0.5 {
			t.Errorf("dot %d at %v is off axis", i, p)
		}
	}
}
