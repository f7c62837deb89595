// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrInvalidCharacter   = errors.New("roundcode: invalid character")
	ErrMessageTooLong     = errors.New("roundcode: message too long")
	ErrDuplicateSymbol    = errors.New("roundcode: duplicate symbol")
	ErrWrongConfiguration = errors.New("roundcode: wrong configuration")
	ErrDecoding           = errors.New("roundcode: decoding failed")
)

// A SymbolError records a rune rejected by a Configuration.
type SymbolError struct {
	Err  error // ErrInvalidCharacter or ErrDuplicateSymbol
	Rune rune  // offending rune
	Pos  int   // rune index in the message or alphabet
}

func (e *SymbolError) Error() string {
	return e.Err.Error() + " " + strconv.QuoteRune(e.Rune) +
		" at position " + strconv.Itoa(e.Pos)
}

func (e *SymbolError) Unwrap() error { return e.Err }

// A QuadrantError reports a parity mismatch in a quadrant.
type QuadrantError int

func (e QuadrantError) Error() string {
	return fmt.Sprintf("%v: parity mismatch in quadrant %d",
		ErrDecoding, int(e))
}

func (QuadrantError) Unwrap() error { return ErrDecoding }
