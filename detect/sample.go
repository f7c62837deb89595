// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package detect

import (
	"github.com/unixdj/roundcode/coding"
	"github.com/unixdj/roundcode/transform"
)

// Sample reads the bit at every slot of l mapped into b through h,
// which maps canonical coordinates to image coordinates.  Slots mapped
// outside b read as 0.  A nil o means DefaultOptions.
func Sample(b *Buffer, l coding.Layout, h transform.Homography, o *Options) []coding.Bit {
	o = o.orDefault()
	w, ht := float64(b.Width), float64(b.Height)
	bits := make([]coding.Bit, len(l))
	for i := range l {
		p, ok := h.MapIn(l[i].Point, w, ht)
		if ok {
			bits[i] = o.bit(b.At(int(p.X), int(p.Y)))
		}
	}
	return bits
}

// Rectify returns the transform mapping canonical coordinates to image
// coordinates, given the finder pattern centres p.
func Rectify(p ControlPoints) (transform.Homography, error) {
	h, err := transform.Compute(p, coding.Dots())
	if err != nil {
		return h, err
	}
	return h.Inverse()
}
