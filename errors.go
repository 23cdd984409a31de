// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"errors"

	"github.com/unixdj/qrpng/coding"
)

// Errors returned by Encode and the image writers match one of these
// with errors.Is.
var (
	// ErrPayloadTooLarge means the text does not fit a version 40
	// code at the requested level.
	ErrPayloadTooLarge = coding.ErrPayloadTooLarge

	// ErrUnsupportedCharacter means the text cannot be represented
	// in byte mode under the requested Charset.
	ErrUnsupportedCharacter = coding.ErrUnsupportedCharacter

	// ErrInvalidConfiguration means a level, mask, charset, version,
	// scale or border outside its defined range.
	ErrInvalidConfiguration = coding.ErrInvalidConfiguration

	// ErrLargeImage means the image side would exceed MaxImageSize.
	ErrLargeImage = errors.New("qr: image too large")
)

// Detailed errors.  Use errors.As to retrieve them.
type (
	ConfigError    = coding.ConfigError
	CharacterError = coding.CharacterError
	CapacityError  = coding.CapacityError
)
