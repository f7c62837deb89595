// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"math"
	"sync"

	"github.com/unixdj/roundcode/transform"
)

// Geometry of a round code in the canonical unit square, centred at
// (0.5, 0.5) with the y axis pointing down.
const (
	DotSize   = 0.08              // finder pattern diameter
	LineWidth = DotSize * 2 / 11 // ring line width
)

// Centre is the centre of the code.
var Centre = transform.Pt(0.5, 0.5)

// Sides, in the order used for finder patterns.
const (
	Left = iota
	Top
	Right
	Bottom
)

// RingRadius returns the radius of ring k, 0 being the outermost.
func RingRadius(k int) float64 {
	return 0.5 - LineWidth*(0.5+2*float64(k))
}

// Dots returns the centres of the finder patterns, one on each side,
// in Left, Top, Right, Bottom order.
func Dots() [4]transform.Point {
	const r = DotSize / 2
	return [4]transform.Point{
		{X: r, Y: 0.5},
		{X: 0.5, Y: r},
		{X: 1 - r, Y: 0.5},
		{X: 0.5, Y: 1 - r},
	}
}

// DotRings returns the diameters of the finder pattern discs,
// outermost first.  Odd-numbered discs are light.
func DotRings() [3]float64 {
	return [3]float64{DotSize, DotSize * 2 / 3, DotSize / 3}
}

// A Slot is the position of one bit.
type Slot struct {
	Quadrant int             // 0 to 3, clockwise from north
	Ring     int             // 0 to 2, outermost first
	Index    int             // position within the ring arc
	Angle    float64         // clockwise from north, radians
	Radius   float64         // distance from Centre
	Step     float64         // angular width of the slot
	Point    transform.Point // canonical position
}

// At returns the canonical position at angle a on ring radius r.
func At(a, r float64) transform.Point {
	s, c := math.Sincos(a)
	return transform.Pt(Centre.X+r*s, Centre.Y-r*c)
}

// A Layout lists the bit slots of a version in payload order:
// quadrant by quadrant, within a quadrant ring by ring from the
// outside, within a ring clockwise.
type Layout []Slot

// RingSlots returns the number of slots of ring k in a quadrant.
// Parity bits occupy the end of the inner ring.
func (v Version) RingSlots(k int) int {
	n := v.Rings[k]
	if k == len(v.Rings)-1 {
		n += v.ParityBits()
	}
	return n
}

func newLayout(v Version) Layout {
	l := make(Layout, 0, v.PayloadBits())
	for q := 0; q < 4; q++ {
		for k := range v.Rings {
			r := RingRadius(k)
			start := math.Asin(DotSize / r)
			n := v.RingSlots(k)
			step := (math.Pi/2 - 2*start) / float64(n)
			for i := 0; i < n; i++ {
				a := float64(q)*math.Pi/2 + start +
					(float64(i)+0.5)*step
				l = append(l, Slot{q, k, i, a, r, step, At(a, r)})
			}
		}
	}
	return l
}

var layouts sync.Map // Version -> *layoutEntry

type layoutEntry struct {
	once sync.Once
	l    Layout
}

// NewLayout returns the Layout for v.  Layouts are computed once
// and shared; callers must not modify them.
func NewLayout(v Version) Layout {
	e, _ := layouts.LoadOrStore(v, new(layoutEntry))
	le := e.(*layoutEntry)
	le.once.Do(func() { le.l = newLayout(v) })
	return le.l
}

// Layout returns the Layout of c.
func (c *Configuration) Layout() Layout { return NewLayout(c.version) }

// Points returns the canonical positions of l.
func (l Layout) Points() []transform.Point {
	p := make([]transform.Point, len(l))
	for i := range l {
		p[i] = l[i].Point
	}
	return p
}
