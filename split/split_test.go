// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package split

import (
	"reflect"
	"strings"
	"testing"

	"github.com/unixdj/roundcode/coding"
)

func TestSplit(t *testing.T) {
	x31 := strings.Repeat("x", 31)
	for _, tt := range []struct {
		in  string
		out []string
	}{
		{"", []string{""}},
		{"short", []string{"short"}},
		{x31, []string{x31}},
		{x31 + "y", []string{x31, "y"}},
		{x31 + x31 + "z", []string{x31, x31, "z"}},
		{" " + x31, []string{" " + strings.Repeat("x", 30), "x"}},
		{"ab " + x31, []string{"ab ", x31}},
	} {
		pp, err := Split(tt.in, nil)
		if err != nil || !reflect.DeepEqual(pp, tt.out) {
			t.Errorf("Split(%q) = %q, %v; want %q",
				tt.in, pp, err, tt.out)
		}
		if Join(pp) != tt.in {
			t.Errorf("Join(Split(%q)) = %q", tt.in, Join(pp))
		}
		for _, p := range pp {
			if n := len([]rune(p)); n > coding.Default().MaxMessageLength() {
				t.Errorf("Split(%q): piece of %d runes", tt.in, n)
			}
		}
	}
	if _, err := Split("tab\t", nil); err != ErrNotEncodable {
		t.Errorf("Split(tab) = %v, want %v", err, ErrNotEncodable)
	}
	pp, err := Split(strings.Repeat("1", 120), coding.Numeric())
	if err != nil || len(pp) != 3 || len(pp[0]) != 59 || len(pp[2]) != 2 {
		t.Errorf("Split(120 digits) = %q, %v", pp, err)
	}
}

func TestChoose(t *testing.T) {
	long := strings.Repeat("A", 50)
	if _, _, err := Choose(long); err != ErrLongText {
		t.Errorf("Choose(50 letters) = %v, want %v", err, ErrLongText)
	}
	c, s, err := Choose(long[:20], coding.Default(), coding.Short())
	if err != nil || c != coding.Default() || s != long[:20] {
		t.Errorf("Choose(default, short) = %v, %q, %v", c, s, err)
	}
	if _, _, err := Choose("€"); err != ErrNotEncodable {
		t.Errorf("Choose(€) = %v, want %v", err, ErrNotEncodable)
	}
}

func TestHasCase(t *testing.T) {
	for _, tt := range []struct {
		c        *coding.Configuration
		up, down bool
	}{
		{coding.Numeric(), false, false},
		{coding.UUID(), true, false},
		{coding.Short(), true, true},
		{coding.Default(), true, true},
	} {
		if up, down := hasCase(tt.c); up != tt.up || down != tt.down {
			t.Errorf("hasCase(%v) = %v, %v", tt.c, up, down)
		}
	}
}
