// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"errors"
	"fmt"
)

// Error classes.  Errors returned by this package and by package qr
// match one of these with errors.Is.
var (
	ErrPayloadTooLarge      = errors.New("qr: payload too large")
	ErrUnsupportedCharacter = errors.New("qr: unsupported character")
	ErrInvalidConfiguration = errors.New("qr: invalid configuration")
)

// A ConfigError reports a parameter outside its defined range.
type ConfigError struct {
	Param string // parameter name
	Value int    // rejected value
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("qr: invalid %s %d", e.Param, e.Value)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfiguration }

// A CharacterError reports text not representable in byte mode
// under the requested Charset.
type CharacterError struct {
	Rune    rune    // offending rune, utf8.RuneError for invalid UTF-8
	Offset  int     // byte offset in the text
	Charset Charset // character encoding in effect
}

func (e *CharacterError) Error() string {
	return fmt.Sprintf("qr: %U at offset %d not encodable as %s",
		e.Rune, e.Offset, e.Charset)
}

func (e *CharacterError) Unwrap() error { return ErrUnsupportedCharacter }

// A CapacityError reports a segment too long for any QR version at
// the requested level.
type CapacityError struct {
	Bits  int   // encoded segment length in bits at version 40
	Max   int   // data capacity in bits of version 40
	Level Level // error correction level
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("qr: cannot encode %d bits into %d-bit code "+
		"at level %s", e.Bits, e.Max, e.Level)
}

func (e *CapacityError) Unwrap() error { return ErrPayloadTooLarge }
