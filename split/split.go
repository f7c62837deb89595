// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package split prepares text for round codes.

Clean normalises text for an alphabet, Choose picks the most compact
configuration able to encode it, and Split cuts text too long for one
code into pieces, one per code.
*/
package split // import "github.com/unixdj/roundcode/split"

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"

	"github.com/unixdj/roundcode/coding"
)

var (
	ErrNotEncodable = errors.New("roundcode: text not encodable in given alphabets")
	ErrLongText     = errors.New("roundcode: text too long")
)

var upper = cases.Upper(language.Und)

// hasCase reports whether the alphabet has upper and lower case
// letters.
func hasCase(c *coding.Configuration) (up, low bool) {
	for _, r := range c.Alphabet() {
		up = up || unicode.IsUpper(r)
		low = low || unicode.IsLower(r)
	}
	return up, low
}

// Clean returns s in NFC with fullwidth and halfwidth forms folded to
// their canonical width.  If the alphabet of c has upper but no lower
// case letters, s is converted to upper case.  A nil c means
// coding.Default().
func Clean(s string, c *coding.Configuration) string {
	if c == nil {
		c = coding.Default()
	}
	s = width.Fold.String(norm.NFC.String(s))
	if up, low := hasCase(c); up && !low {
		s = upper.String(s)
	}
	return s
}

// Accepts reports whether c accepts every rune of s.
func Accepts(s string, c *coding.Configuration) bool {
	for _, r := range s {
		if !c.Accepts(r) {
			return false
		}
	}
	return true
}

// Compact lists the presets from the most to the least compact.
func Compact() []*coding.Configuration {
	return []*coding.Configuration{
		coding.Numeric(), coding.UUID(), coding.Short(), coding.Default(),
	}
}

// Choose returns the first of cc accepting every rune of s and with
// room for it, cleaning s for each.  If cc is empty, Compact() is
// used.  Choose returns the configuration and the cleaned text.
func Choose(s string, cc ...*coding.Configuration) (*coding.Configuration, string, error) {
	if len(cc) == 0 {
		cc = Compact()
	}
	err := ErrNotEncodable
	for _, c := range cc {
		t := Clean(s, c)
		if !Accepts(t, c) {
			continue
		}
		if len([]rune(t)) > c.MaxMessageLength() {
			err = ErrLongText
			continue
		}
		return c, t, nil
	}
	return nil, "", err
}

// Split cuts s into pieces of at most c.MaxMessageLength() runes,
// breaking after a space where possible.  A nil c means
// coding.Default().  Split returns ErrNotEncodable if c does not
// accept s.
func Split(s string, c *coding.Configuration) ([]string, error) {
	if c == nil {
		c = coding.Default()
	}
	if !Accepts(s, c) {
		return nil, ErrNotEncodable
	}
	r := []rune(s)
	lim := c.MaxMessageLength()
	var pp []string
	for len(r) > lim {
		n := lim
		if i := lastSpace(r[:lim]); i > 0 {
			n = i + 1
		}
		pp = append(pp, string(r[:n]))
		r = r[n:]
	}
	if len(r) != 0 || len(pp) == 0 {
		pp = append(pp, string(r))
	}
	return pp, nil
}

func lastSpace(r []rune) int {
	for i := len(r) - 1; i >= 0; i-- {
		if r[i] == ' ' {
			return i
		}
	}
	return -1
}

// Join reverses Split.
func Join(pp []string) string { return strings.Join(pp, "") }
