// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package roundcode

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"golang.org/x/image/vector"

	"github.com/unixdj/roundcode/coding"
	"github.com/unixdj/roundcode/transform"
)

// An Arc is a run of 1 bits on a ring, drawn as a line with round
// caps from angle Start to End.
type Arc struct {
	Quadrant int
	Ring     int
	Start    float64 // clockwise from north, radians
	End      float64
	Radius   float64
}

// Arcs returns the arcs of c.  Each covers whole slots.
func (c *Code) Arcs() []Arc {
	var arcs []Arc
	in := c.Instructions
	for start := 0; start < len(in); {
		end := start
		for end < len(in) && in[end].Quadrant == in[start].Quadrant &&
			in[end].Ring == in[start].Ring {
			end++
		}
		ring := in[start:end]
		bits := make([]coding.Bit, len(ring))
		for i := range ring {
			bits[i] = ring[i].Bit
		}
		for _, g := range coding.Groups(bits) {
			if g.Bit == 0 {
				continue
			}
			f, l := ring[g.Offset], ring[g.Offset+g.Count-1]
			arcs = append(arcs, Arc{
				Quadrant: f.Quadrant,
				Ring:     f.Ring,
				Start:    f.Angle - f.Step/2,
				End:      l.Angle + l.Step/2,
				Radius:   f.Radius,
			})
		}
		start = end
	}
	return arcs
}

// Pixels per segment of approximated curves.
const segLen = 2.0

// pen draws polygons in pixel coordinates.
type pen struct {
	z      *vector.Rasterizer
	scale  float64
	offset float64
}

func (p *pen) pt(q transform.Point) (float32, float32) {
	return float32(p.offset + q.X*p.scale),
		float32(p.offset + q.Y*p.scale)
}

func (p *pen) segments(a0, a1, r float64) int {
	return max(int(math.Abs(a1-a0)*r*p.scale/segLen), 8)
}

// disc adds a disc.  Negative discs subtract coverage.
func (p *pen) disc(c transform.Point, r float64, neg bool) {
	n := p.segments(0, 2*math.Pi, r)
	for i := 0; i <= n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		if neg {
			a = -a
		}
		s, co := math.Sincos(a)
		x, y := p.pt(transform.Pt(c.X+r*s, c.Y-r*co))
		if i == 0 {
			p.z.MoveTo(x, y)
		} else {
			p.z.LineTo(x, y)
		}
	}
	p.z.ClosePath()
}

// arc adds an arc of width coding.LineWidth with round caps.
func (p *pen) arc(a Arc) {
	const hw = coding.LineWidth / 2
	ro, ri := a.Radius+hw, a.Radius-hw
	n := p.segments(a.Start, a.End, ro)
	for i := 0; i <= n; i++ {
		t := a.Start + (a.End-a.Start)*float64(i)/float64(n)
		x, y := p.pt(coding.At(t, ro))
		if i == 0 {
			p.z.MoveTo(x, y)
		} else {
			p.z.LineTo(x, y)
		}
	}
	for i := n; i >= 0; i-- {
		t := a.Start + (a.End-a.Start)*float64(i)/float64(n)
		p.z.LineTo(p.pt(coding.At(t, ri)))
	}
	p.z.ClosePath()
	p.disc(coding.At(a.Start, a.Radius), hw, false)
	p.disc(coding.At(a.End, a.Radius), hw, false)
}

// Image returns an anti-aliased image of c, Size+2*Border pixels
// square.
func (c *Code) Image() *image.Gray {
	d := c.Size + 2*c.Border
	img := image.NewGray(image.Rect(0, 0, d, d))
	bg, fg := color.Gray{0xff}, color.Gray{0x00}
	if c.Reverse {
		bg, fg = fg, bg
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{},
		draw.Src)
	p := &pen{
		z:      vector.NewRasterizer(d, d),
		scale:  float64(c.Size),
		offset: float64(c.Border),
	}
	for _, a := range c.Arcs() {
		p.arc(a)
	}
	rings := coding.DotRings()
	for _, dot := range coding.Dots() {
		for i, dia := range rings {
			p.disc(dot, dia/2, i&1 != 0)
		}
	}
	p.z.Draw(img, img.Bounds(), image.NewUniform(fg), image.Point{})
	return img
}

// preview returns a small bitmap of c for text output.
func (c *Code) preview() (*image.Gray, func(x, y int) bool) {
	p := *c
	p.Size, p.Border, p.Reverse = 96, 2, false
	img := p.Image()
	return img, func(x, y int) bool {
		return img.GrayAt(x, y).Y < 0x80 != c.Reverse
	}
}

// String returns a preview of c drawn with Unicode half blocks.
func (c *Code) String() string {
	img, black := c.preview()
	r := img.Bounds()
	var b strings.Builder
	for y := r.Min.Y; y < r.Max.Y; y += 2 {
		for x := r.Min.X; x < r.Max.X; x++ {
			t, u := black(x, y), y+1 < r.Max.Y && black(x, y+1)
			switch {
			case t && u:
				b.WriteRune('█')
			case t:
				b.WriteRune('▀')
			case u:
				b.WriteRune('▄')
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ASCII returns a preview of c drawn with '#' characters.
func (c *Code) ASCII() string {
	img, black := c.preview()
	r := img.Bounds()
	var b strings.Builder
	for y := r.Min.Y; y < r.Max.Y; y += 2 {
		for x := r.Min.X; x < r.Max.X; x++ {
			if black(x, y) || black(x, y+1) {
				b.WriteByte('#')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
