// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package detect locates round codes in grayscale images and samples
their bits.

Locate finds the four finder patterns, one near each side of the
image.  A finder pattern is a bullseye of three concentric discs,
dark, light and dark, whose diameters are in the ratio 6:4:2.  Any
line through its centre crosses five runs of pixels, dark, light,
dark, light, dark, the middle one about twice as long as the others.
The outer edges of the four patterns are the control points from
which the perspective transform is computed.

Sample reads the bits at the canonical layout positions mapped into
the image.
*/
package detect // import "github.com/unixdj/roundcode/detect"

import (
	"errors"
	"image"

	"golang.org/x/image/draw"
)

// ErrWrongImageSize is returned for images that are not square.
var ErrWrongImageSize = errors.New("roundcode: image not square")

// White is the value of pixels outside a Buffer.
const White = 0xff

// A Buffer is a grayscale image, one byte per pixel, row major.
// Pixel (x, y) is at Pix[y*Stride+x].
type Buffer struct {
	Pix    []byte
	Width  int
	Height int
	Stride int
}

// NewBuffer returns a white Buffer of the given size.
func NewBuffer(w, h int) *Buffer {
	b := &Buffer{make([]byte, w*h), w, h, w}
	for i := range b.Pix {
		b.Pix[i] = White
	}
	return b
}

// FromImage returns a Buffer holding a grayscale copy of img.
// The Buffer origin is the minimum point of img's bounds.
func FromImage(img image.Image) *Buffer {
	r := img.Bounds()
	g := image.NewGray(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(g, g.Bounds(), img, r.Min, draw.Src)
	return &Buffer{g.Pix, g.Rect.Dx(), g.Rect.Dy(), g.Stride}
}

// Image returns an image sharing b's pixels.
func (b *Buffer) Image() *image.Gray {
	return &image.Gray{
		Pix:    b.Pix,
		Stride: b.Stride,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// In reports whether (x, y) lies within b.
func (b *Buffer) In(x, y int) bool {
	return 0 <= x && x < b.Width && 0 <= y && y < b.Height
}

// At returns the pixel at (x, y), or White if it lies outside b.
func (b *Buffer) At(x, y int) byte {
	if !b.In(x, y) {
		return White
	}
	return b.Pix[y*b.Stride+x]
}

// Set sets the pixel at (x, y).  Points outside b are ignored.
func (b *Buffer) Set(x, y int, v byte) {
	if b.In(x, y) {
		b.Pix[y*b.Stride+x] = v
	}
}

// Square reports whether b is square.
func (b *Buffer) Square() bool { return b.Width == b.Height }

// Rotate returns a copy of b turned clockwise by n quarter turns.
func (b *Buffer) Rotate(n int) *Buffer {
	n &= 3
	w, h := b.Width, b.Height
	if n&1 != 0 {
		w, h = h, w
	}
	r := NewBuffer(w, h)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			nx, ny := x, y
			switch n {
			case 1:
				nx, ny = b.Height-1-y, x
			case 2:
				nx, ny = b.Width-1-x, b.Height-1-y
			case 3:
				nx, ny = y, b.Width-1-x
			}
			r.Pix[ny*r.Stride+nx] = b.Pix[y*b.Stride+x]
		}
	}
	return r
}
