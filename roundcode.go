// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package roundcode encodes text as round codes and decodes them from
images.

A round code is a circle of three concentric rings of arcs with a
finder pattern on each side.  Each quadrant of the rings carries an
equal share of the message and a parity byte; the quadrant holding
the start marker tells the decoder how the code was rotated.

Encoding:

	c, err := roundcode.Encode("HELLO", nil)
	if err != nil {
		// ...
	}
	err = c.EncodePNG(w)

Decoding:

	s, err := roundcode.Decode(img, nil)

Package coding implements the symbol, parity and layout details,
package detect the finder pattern search and bit sampling.
*/
package roundcode // import "github.com/unixdj/roundcode"

import (
	"fmt"
	"image"

	"github.com/unixdj/roundcode/coding"
	"github.com/unixdj/roundcode/detect"
	"github.com/unixdj/roundcode/transform"
)

// Errors.  Errors returned by the package wrap one of these.
var (
	ErrInvalidCharacter   = coding.ErrInvalidCharacter
	ErrMessageTooLong     = coding.ErrMessageTooLong
	ErrDuplicateSymbol    = coding.ErrDuplicateSymbol
	ErrWrongConfiguration = coding.ErrWrongConfiguration
	ErrDecoding           = coding.ErrDecoding
	ErrWrongImageSize     = detect.ErrWrongImageSize
)

// Default image geometry.
const (
	DefaultSize   = 480 // code diameter in pixels
	DefaultBorder = 24  // quiet zone in pixels
)

// An Instruction is a bit and its position.
type Instruction struct {
	coding.Slot
	Bit coding.Bit
}

// A Code is an encoded round code, ready to be rendered.
type Code struct {
	Config       *coding.Configuration
	Instructions []Instruction // in payload order
	Size         int           // diameter in pixels
	Border       int           // quiet zone in pixels
	Reverse      bool          // light code on dark background; see detect.Options.Inverted
}

// Encode returns the round code for msg.  A nil cfg means
// coding.Default().  Filler symbols are chosen at random.
func Encode(msg string, cfg *coding.Configuration) (*Code, error) {
	return EncodeRand(msg, cfg, nil)
}

// EncodeRand is like Encode, but draws filler symbols from rnd.
func EncodeRand(msg string, cfg *coding.Configuration, rnd coding.Rand) (*Code, error) {
	if cfg == nil {
		cfg = coding.Default()
	}
	data, err := cfg.Encode(msg, rnd)
	if err != nil {
		return nil, err
	}
	return newCode(cfg, cfg.Seal(data)), nil
}

func newCode(cfg *coding.Configuration, payload []coding.Bit) *Code {
	l := cfg.Layout()
	c := &Code{
		Config:       cfg,
		Instructions: make([]Instruction, len(l)),
		Size:         DefaultSize,
		Border:       DefaultBorder,
	}
	for i := range l {
		c.Instructions[i] = Instruction{l[i], payload[i]}
	}
	return c
}

// Payload returns the bits of c.
func (c *Code) Payload() []coding.Bit {
	b := make([]coding.Bit, len(c.Instructions))
	for i := range c.Instructions {
		b[i] = c.Instructions[i].Bit
	}
	return b
}

// Rotate returns a copy of c turned clockwise by n quarter turns.
// The layout is symmetric, so turning the code moves each quadrant's
// bits to the next quadrant's slots.
func (c *Code) Rotate(n int) *Code {
	r := *c
	r.Instructions = append([]Instruction(nil), c.Instructions...)
	qb := c.Config.Version().QuadrantBits()
	for i := range r.Instructions {
		j := (i + (n&3)*qb) % len(r.Instructions)
		r.Instructions[j].Bit = c.Instructions[i].Bit
	}
	return &r
}

// A Tracer receives intermediate decoding results.
// Nil fields are ignored.
type Tracer struct {
	Points    func(detect.ControlPoints)
	Transform func(transform.Homography)
	Bits      func([]coding.Bit)
}

// A Decoder decodes round codes.  The zero Decoder uses
// coding.Default() and detect.DefaultOptions.
type Decoder struct {
	Config  *coding.Configuration
	Options *detect.Options
	Trace   *Tracer
}

// Decode decodes the round code in img.
func (d *Decoder) Decode(img image.Image) (string, error) {
	r := img.Bounds()
	if r.Dx() != r.Dy() {
		return "", fmt.Errorf("%w: %dx%d", ErrWrongImageSize, r.Dx(), r.Dy())
	}
	return d.DecodeBuffer(detect.FromImage(img))
}

// DecodeBuffer decodes the round code in b.
func (d *Decoder) DecodeBuffer(b *detect.Buffer) (string, error) {
	if !b.Square() {
		return "", fmt.Errorf("%w: %dx%d",
			ErrWrongImageSize, b.Width, b.Height)
	}
	cfg := d.Config
	if cfg == nil {
		cfg = coding.Default()
	}
	tr := d.Trace
	if tr == nil {
		tr = &Tracer{}
	}
	p, err := detect.Locate(b, d.Options)
	if err != nil {
		return "", err
	}
	if tr.Points != nil {
		tr.Points(p)
	}
	h, err := detect.Rectify(p)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecoding, err)
	}
	if tr.Transform != nil {
		tr.Transform(h)
	}
	bits := detect.Sample(b, cfg.Layout(), h, d.Options)
	if tr.Bits != nil {
		tr.Bits(bits)
	}
	data, err := cfg.Open(bits)
	if err != nil {
		return "", err
	}
	return cfg.Decode(data)
}

// Decode decodes the round code in img.  A nil cfg means
// coding.Default().
func Decode(img image.Image, cfg *coding.Configuration) (string, error) {
	d := Decoder{Config: cfg}
	return d.Decode(img)
}
