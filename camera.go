// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package roundcode

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF format
	_ "image/jpeg" // register JPEG format
	_ "image/png"  // register PNG format
	"io"
	"os"

	"golang.org/x/image/draw"

	"github.com/unixdj/roundcode/coding"

	_ "golang.org/x/image/bmp"  // register BMP format
	_ "golang.org/x/image/tiff" // register TIFF format
	_ "golang.org/x/image/webp" // register WebP format
)

// A Camera yields successive frames.  Frame returns io.EOF when no
// frames are left.
type Camera interface {
	Frame(ctx context.Context) (image.Image, error)
}

// Square returns the largest centred square of img, scaled to at most
// lim pixels a side if lim > 0.  Square images not needing scaling are
// returned as is.
func Square(img image.Image, lim int) image.Image {
	r := img.Bounds()
	d := min(r.Dx(), r.Dy())
	if r.Dx() == r.Dy() && (lim <= 0 || d <= lim) {
		return img
	}
	src := image.Rect(0, 0, d, d).Add(r.Min).
		Add(image.Pt((r.Dx()-d)/2, (r.Dy()-d)/2))
	n := d
	if lim > 0 {
		n = min(d, lim)
	}
	dst := image.NewGray(image.Rect(0, 0, n, n))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	return dst
}

// Scan decodes frames from cam until one decodes successfully.  Frames
// are cropped to squares.  Frames failing with ErrDecoding are skipped;
// Scan returns any other error, ctx.Err() if ctx is done, or the
// last decoding error if cam runs out of frames.
func (d *Decoder) Scan(ctx context.Context, cam Camera) (string, error) {
	last := error(ErrDecoding)
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		img, err := cam.Frame(ctx)
		if err == io.EOF {
			return "", last
		} else if err != nil {
			return "", err
		}
		s, err := d.Decode(Square(img, 0))
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, ErrDecoding) {
			return "", err
		}
		last = err
	}
}

// Scan decodes frames from cam using cfg.  A nil cfg means
// coding.Default().
func Scan(ctx context.Context, cam Camera, cfg *coding.Configuration) (string, error) {
	d := Decoder{Config: cfg}
	return d.Scan(ctx, cam)
}

// Files is a Camera reading frames from image files.
type Files []string

// Frame decodes the first file and removes it from f.
func (f *Files) Frame(ctx context.Context) (image.Image, error) {
	if len(*f) == 0 {
		return nil, io.EOF
	}
	fn := (*f)[0]
	*f = (*f)[1:]
	r, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	return img, nil
}

// Images is a Camera yielding images from a slice.
type Images []image.Image

// Frame returns the first image and removes it from f.
func (f *Images) Frame(ctx context.Context) (image.Image, error) {
	if len(*f) == 0 {
		return nil, io.EOF
	}
	img := (*f)[0]
	*f = (*f)[1:]
	return img, nil
}
