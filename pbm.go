// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package roundcode

import (
	"bufio"
	"image"
	"image/png"
	"io"
	"strconv"
)

// EncodePNG writes a PNG image of c to w.
func (c *Code) EncodePNG(w io.Writer) error {
	e := png.Encoder{CompressionLevel: png.BestCompression}
	return e.Encode(w, c.Image())
}

// EncodePBM writes a Portable Bit Map image of c to w, for use with
// netpbm.  Pixels darker than mid-gray are black.
func (c *Code) EncodePBM(w io.Writer) error {
	return encodePBM(w, c.Image())
}

func encodePBM(w io.Writer, img *image.Gray) error {
	b := bufio.NewWriter(w)
	r := img.Bounds()
	if _, err := b.WriteString("P4\n" + strconv.Itoa(r.Dx()) + " " +
		strconv.Itoa(r.Dy()) + "\n"); err != nil {
		return err
	}
	row := make([]byte, (r.Dx()+7)/8)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		pbmRow(row, img.Pix[img.PixOffset(r.Min.X, y):][:r.Dx()])
		if _, err := b.Write(row); err != nil {
			return err
		}
	}
	return b.Flush()
}

// pbmRow packs a row of gray pixels, 1 for black, padding the last
// byte with zeros.
func pbmRow(row, srow []byte) {
	var z byte
	j := 0
	for i, v := range srow {
		z = z<<1 | ^v>>7
		if i&7 == 7 {
			row[j] = z
			z = 0
			j++
		}
	}
	if n := len(srow) & 7; n != 0 {
		row[j] = z << (8 - n)
	}
}
