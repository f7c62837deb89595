// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level round code coding details:
// symbol alphabets, bit streams, parity and the bit layout.
package coding // import "github.com/unixdj/roundcode/coding"

import (
	"fmt"
	"math/bits"
	"sort"
	"strings"
)

// A Version describes the capacity of a round code.
//
// Rings lists the number of data bits per quadrant in the outer,
// middle and inner ring.  Each quadrant additionally carries
// ParityBytes bytes of parity at the end of the inner ring.
type Version struct {
	Rings       [3]int
	ParityBytes int
}

// DefaultVersion is the version used by the presets.
var DefaultVersion = Version{Rings: [3]int{24, 20, 16}, ParityBytes: 1}

// DataBits returns the number of data bits per quadrant.
func (v Version) DataBits() int {
	return v.Rings[0] + v.Rings[1] + v.Rings[2]
}

// ParityBits returns the number of parity bits per quadrant.
func (v Version) ParityBits() int { return 8 * v.ParityBytes }

// QuadrantBits returns the number of bits per quadrant.
func (v Version) QuadrantBits() int { return v.DataBits() + v.ParityBits() }

// PayloadBits returns the total number of bits in a code.
func (v Version) PayloadBits() int { return 4 * v.QuadrantBits() }

func (v Version) valid() bool {
	for _, n := range v.Rings {
		if n <= 0 {
			return false
		}
	}
	return v.ParityBytes > 0 && v.ParityBytes <= 255
}

func (v Version) String() string {
	return fmt.Sprintf("%d/%d/%d+%d",
		v.Rings[0], v.Rings[1], v.Rings[2], v.ParityBytes)
}

// Reserved symbols.
const (
	DefaultMarker = 'Ա' // start marker
	DefaultFiller = 'Հ' // filler
)

// A Configuration describes the alphabet and geometry of a round code.
// It is immutable and safe for concurrent use.
type Configuration struct {
	name     string
	alphabet []rune
	marker   rune
	fillers  []rune
	index    map[rune]int
	bps      int // bits per symbol
	capacity int // symbols per quadrant
	version  Version
	coef     [][]byte // parity coefficients, ParityBytes rows
}

// An Option modifies a Configuration under construction.
type Option func(*Configuration)

// WithVersion sets the version.
func WithVersion(v Version) Option {
	return func(c *Configuration) { c.version = v }
}

// WithMarker sets the start marker.
func WithMarker(r rune) Option {
	return func(c *Configuration) { c.marker = r }
}

// WithFillers sets the filler symbols.
func WithFillers(r ...rune) Option {
	return func(c *Configuration) { c.fillers = append([]rune(nil), r...) }
}

// WithName sets the name reported by Name.
func WithName(s string) Option {
	return func(c *Configuration) { c.name = s }
}

// NewConfiguration returns a Configuration for the given alphabet.
// Symbols are indexed in alphabet order, followed by the start marker
// and the fillers.
//
// NewConfiguration returns an error wrapping ErrDuplicateSymbol if a
// symbol appears twice, and ErrWrongConfiguration if the version
// cannot hold the marker and at least one symbol.
func NewConfiguration(alphabet string, opts ...Option) (*Configuration, error) {
	c := &Configuration{
		alphabet: []rune(alphabet),
		marker:   DefaultMarker,
		fillers:  []rune{DefaultFiller},
		version:  DefaultVersion,
	}
	for _, o := range opts {
		o(c)
	}
	if len(c.alphabet) == 0 || len(c.fillers) == 0 {
		return nil, fmt.Errorf("%w: empty alphabet", ErrWrongConfiguration)
	}
	if !c.version.valid() {
		return nil, fmt.Errorf("%w: version %v",
			ErrWrongConfiguration, c.version)
	}
	syms := c.symbols()
	c.index = make(map[rune]int, len(syms))
	for i, r := range syms {
		if _, ok := c.index[r]; ok {
			return nil, &SymbolError{ErrDuplicateSymbol, r, i}
		}
		c.index[r] = i
	}
	c.bps = bits.Len(uint(len(syms) - 1))
	c.capacity = c.version.DataBits() / c.bps
	if c.capacity < 1 || c.bps > 32 {
		return nil, fmt.Errorf("%w: %d bit symbols do not fit %v",
			ErrWrongConfiguration, c.bps, c.version)
	}
	if c.MaxMessageLength() < 1 {
		return nil, fmt.Errorf("%w: no room for message",
			ErrWrongConfiguration)
	}
	c.coef = parityMatrix(c.version)
	return c, nil
}

// symbols returns the symbol index space.
func (c *Configuration) symbols() []rune {
	s := make([]rune, 0, len(c.alphabet)+1+len(c.fillers))
	s = append(s, c.alphabet...)
	s = append(s, c.marker)
	return append(s, c.fillers...)
}

// Name returns the preset name, if any.
func (c *Configuration) Name() string { return c.name }

// Alphabet returns the user-visible symbols.
func (c *Configuration) Alphabet() string { return string(c.alphabet) }

// Version returns the code version.
func (c *Configuration) Version() Version { return c.version }

// BitsPerSymbol returns the width of an encoded symbol.
func (c *Configuration) BitsPerSymbol() int { return c.bps }

// Capacity returns the number of symbols per quadrant.
func (c *Configuration) Capacity() int { return c.capacity }

// MaxMessageLength returns the maximum message length in runes.
func (c *Configuration) MaxMessageLength() int { return 4*c.capacity - 1 }

// Marker returns the start marker index.
func (c *Configuration) Marker() int { return len(c.alphabet) }

// IsFiller reports whether i is a filler index.
func (c *Configuration) IsFiller(i int) bool {
	return i > len(c.alphabet) && i <= len(c.alphabet)+len(c.fillers)
}

// Accepts reports whether r is in the alphabet.
func (c *Configuration) Accepts(r rune) bool {
	i, ok := c.index[r]
	return ok && i < len(c.alphabet)
}

// Index returns the index of r, which may be reserved.
func (c *Configuration) Index(r rune) (int, bool) {
	i, ok := c.index[r]
	return i, ok
}

// Symbol returns the symbol with index i.
func (c *Configuration) Symbol(i int) (rune, bool) {
	switch {
	case i < 0:
	case i < len(c.alphabet):
		return c.alphabet[i], true
	case i == len(c.alphabet):
		return c.marker, true
	case c.IsFiller(i):
		return c.fillers[i-len(c.alphabet)-1], true
	}
	return 0, false
}

func (c *Configuration) String() string {
	if c.name != "" {
		return c.name
	}
	return fmt.Sprintf("%q", string(c.alphabet))
}

func seq(lo, hi rune) string {
	var b strings.Builder
	for r := lo; r <= hi; r++ {
		b.WriteRune(r)
	}
	return b.String()
}

// Preset alphabets.
var (
	UUIDAlphabet    = "-ABCDEF0123456789"
	NumericAlphabet = ".,_0123456789"
	ShortAlphabet   = " -" + seq('a', 'z') + seq('A', 'Z') + seq('0', '9')
	DefaultAlphabet = "! \"#$%&'()*+,-./" + seq('0', '9') + ":;<=>?@" +
		seq('A', 'Z') + "[\\]^_`" + seq('a', 'z') + "{|}~"
)

var presets = map[string]*Configuration{}

func mustPreset(name, alphabet string) *Configuration {
	c, err := NewConfiguration(alphabet, WithName(name))
	if err != nil {
		panic(err)
	}
	presets[name] = c
	return c
}

var (
	uuidPreset    = mustPreset("uuid", UUIDAlphabet)
	numericPreset = mustPreset("numeric", NumericAlphabet)
	shortPreset   = mustPreset("short", ShortAlphabet)
	defaultPreset = mustPreset("default", DefaultAlphabet)
)

// UUID returns the preset for upper case hexadecimal UUIDs.
func UUID() *Configuration { return uuidPreset }

// Numeric returns the preset for decimal numbers.
func Numeric() *Configuration { return numericPreset }

// Short returns the preset for letters, digits, space and hyphen.
func Short() *Configuration { return shortPreset }

// Default returns the preset for printable ASCII.
func Default() *Configuration { return defaultPreset }

// Preset returns the preset with the given name.
func Preset(name string) (*Configuration, bool) {
	c, ok := presets[name]
	return c, ok
}

// Presets returns the preset names in ascending order.
func Presets() []string {
	s := make([]string, 0, len(presets))
	for k := range presets {
		s = append(s, k)
	}
	sort.Strings(s)
	return s
}
