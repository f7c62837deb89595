// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package detect

import (
	"fmt"
	"math"

	"github.com/unixdj/roundcode/coding"
	"github.com/unixdj/roundcode/transform"
)

// Options control finder pattern detection and sampling.
type Options struct {
	// Pixels with values from DarkMin to DarkMax are dark and
	// read as 1.
	DarkMin, DarkMax byte

	// Probe is the reciprocal of the width of the strip along each
	// side searched for a finder pattern.
	Probe int

	// MinCenter is the minimum length in pixels of the middle run.
	MinCenter int

	// The middle run must be from MinRatio to MaxRatio times as
	// long as each of the other four.
	MinRatio, MaxRatio float64
}

// DefaultOptions are used when nil Options are passed.
var DefaultOptions = Options{
	DarkMin:   0,
	DarkMax:   127,
	Probe:     5,
	MinCenter: 10,
	MinRatio:  1.6,
	MaxRatio:  2.2,
}

func (o *Options) orDefault() *Options {
	if o == nil {
		return &DefaultOptions
	}
	return o
}

// IsDark reports whether pixel value v is dark.
func (o *Options) IsDark(v byte) bool {
	o = o.orDefault()
	return o.DarkMin <= v && v <= o.DarkMax
}

// Inverted returns o with the dark range complemented, for reading
// light codes on a dark background.  The range of o must start at 0
// or end at 255.
func (o Options) Inverted() Options {
	if o.DarkMin == 0 {
		o.DarkMin, o.DarkMax = o.DarkMax+1, 255
	} else {
		o.DarkMin, o.DarkMax = 0, o.DarkMin-1
	}
	return o
}

// bit returns v as a Bit, 1 for dark.
func (o *Options) bit(v byte) coding.Bit {
	if o.IsDark(v) {
		return 1
	}
	return 0
}

// ControlPoints are the centres of the finder patterns in image
// coordinates, in coding.Left, Top, Right, Bottom order.
type ControlPoints [4]transform.Point

var sideNames = [4]string{"left", "top", "right", "bottom"}

// A side describes the scan of one probe strip.  Scanlines run
// perpendicular to the side.
type side struct {
	columns bool // scan columns instead of rows
	far     bool // strip along the far edge
}

var sides = [4]side{
	coding.Left:   {false, false},
	coding.Top:    {true, false},
	coding.Right:  {false, true},
	coding.Bottom: {true, true},
}

// match reports whether the five runs form a finder pattern.
func (o *Options) match(g []coding.BitGroup) bool {
	if g[0].Bit != 1 || g[1].Bit != 0 || g[2].Bit != 1 ||
		g[3].Bit != 0 || g[4].Bit != 1 {
		return false
	}
	c := g[2].Count
	if c < o.MinCenter {
		return false
	}
	for _, i := range [4]int{0, 1, 3, 4} {
		r := float64(c) / float64(g[i].Count)
		if r < o.MinRatio || r > o.MaxRatio {
			return false
		}
	}
	return true
}

// A hit is a scanline window matching a finder pattern.
type hit struct {
	edge   int     // outer edge of the window
	centre float64 // middle of the centre run
	along  float64 // scanline centre
	span   float64 // window length
}

// scan returns the centre of the finder pattern in the probe strip of
// side s, as coordinates across and along the side.  The window with
// the outermost edge picks the pattern; the centre is the mean centre
// run midpoint of the windows near it.
func (o *Options) scan(b *Buffer, s side) (across, along float64, ok bool) {
	lines, size := b.Height, b.Width
	if s.columns {
		lines, size = size, lines
	}
	probe := size / o.Probe
	base := 0
	if s.far {
		base = size - probe
	}
	line := make([]coding.Bit, probe)
	var hits []hit
	seed := -1
	for l := 0; l < lines; l++ {
		for i := range line {
			x, y := base+i, l
			if s.columns {
				x, y = y, x
			}
			line[i] = o.bit(b.At(x, y))
		}
		g := coding.Groups(line)
		for i := 0; i+5 <= len(g); i++ {
			if !o.match(g[i : i+5]) {
				continue
			}
			first, last := g[i].Offset, g[i+4].Offset+g[i+4].Count
			h := hit{
				edge:   base + first,
				centre: float64(base+g[i+2].Offset) + float64(g[i+2].Count)/2,
				along:  float64(l) + 0.5,
				span:   float64(last - first),
			}
			if s.far {
				h.edge = base + last
			}
			if seed < 0 || !s.far && h.edge < hits[seed].edge ||
				s.far && h.edge > hits[seed].edge {
				seed = len(hits)
			}
			hits = append(hits, h)
		}
	}
	if seed < 0 {
		return 0, 0, false
	}
	c := hits[seed]
	n := 0
	for _, h := range hits {
		if math.Abs(h.centre-c.centre) <= c.span &&
			math.Abs(h.along-c.along) <= c.span {
			across += h.centre
			along += h.along
			n++
		}
	}
	return across / float64(n), along / float64(n), true
}

// Locate finds the finder patterns in b.  The returned error wraps
// coding.ErrDecoding if a pattern is missing.  A nil o means
// DefaultOptions.
func Locate(b *Buffer, o *Options) (ControlPoints, error) {
	o = o.orDefault()
	var p ControlPoints
	if o.Probe <= 0 {
		return p, fmt.Errorf("%w: bad probe size", coding.ErrDecoding)
	}
	for i, s := range sides {
		across, along, ok := o.scan(b, s)
		if !ok {
			return p, fmt.Errorf("%w: no finder pattern on %s side",
				coding.ErrDecoding, sideNames[i])
		}
		if s.columns {
			p[i] = transform.Pt(along, across)
		} else {
			p[i] = transform.Pt(across, along)
		}
	}
	return p, nil
}
