// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements low-level QR coding details: segment
// encoding, error correction, symbol layout, masking and format
// information.
package coding // import "github.com/unixdj/qrpng/coding"

import (
	"strconv"

	"github.com/unixdj/qrpng/gf256"
)

// Field is the field for QR error correction.
var Field = gf256.NewField(0x11d, 2)

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 20% redundant
	M              // 38% redundant
	Q              // 55% redundant
	H              // 65% redundant
)

func (l Level) String() string {
	if l.IsValid() {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

// IsValid reports whether l is one of L, M, Q, H.
func (l Level) IsValid() bool { return L <= l && l <= H }

// formatBits returns the two bit level indicator of the format
// information: L=01, M=00, Q=11, H=10.
func (l Level) formatBits() uint32 { return uint32(l) ^ 1 }

// A Version represents a QR version.
// The version specifies the size of the QR code:
// a QR code with version v has 4v+17 modules on a side.
// Versions run from 1 to 40:
// the larger the version, the more information the code can store.
type Version int

// Version range.
const (
	MinVersion Version = 1  // Minimum QR version
	MaxVersion Version = 40 // Maximum QR version
)

func (v Version) String() string { return strconv.Itoa(int(v)) }

// IsValid reports whether v is in the range MinVersion to MaxVersion.
func (v Version) IsValid() bool { return MinVersion <= v && v <= MaxVersion }

// Size returns the number of modules on a side of a symbol of
// version v.
func (v Version) Size() int { return int(v)*4 + 17 }

// SizeClass returns the size class of v, which determines the length
// of character count indicators: 0 for versions 1 to 9, 1 for 10 to
// 26, 2 for 27 to 40.
func (v Version) SizeClass() int {
	switch {
	case v <= 9:
		return 0
	case v <= 26:
		return 1
	}
	return 2
}

// RawModules returns the number of modules available for data and
// error correction codewords, including remainder bits: the symbol
// area minus function patterns, format and version information.
func (v Version) RawModules() int {
	n := int(v)
	r := (16*n+128)*n + 64 // area minus finders, separators, timing, format
	if n >= 2 {
		na := n/7 + 2 // alignment patterns per row
		r -= (25*na-10)*na - 55
		if n >= 7 {
			r -= 36 // version information
		}
	}
	return r
}

// Codewords returns the total number of data and error correction
// codewords in a symbol of version v.
func (v Version) Codewords() int { return v.RawModules() / 8 }

// Blocks returns the number of error correction blocks and the
// number of error correction codewords per block for v and l.
func (v Version) Blocks(l Level) (nblock, check int) {
	return int(numBlocks[l][v]), int(checkBytes[l][v])
}

// DataBytes returns the number of data bytes that can be
// stored in a QR code with the given version and level.
func (v Version) DataBytes(l Level) int {
	nblock, check := v.Blocks(l)
	return v.Codewords() - nblock*check
}

// DataBits returns the number of data bits that can be
// stored in a QR code with the given version and level.
func (v Version) DataBits(l Level) int { return v.DataBytes(l) * 8 }

// AlignmentPositions returns the row and column coordinates of the
// alignment pattern centres, in ascending order.  Patterns are placed
// at every combination of coordinates except the three overlapping
// finder patterns.  Version 1 has none.
func (v Version) AlignmentPositions() []int {
	if v < 2 {
		return nil
	}
	n := int(v)/7 + 2
	// Spacing is even and uniform except between the first two
	// coordinates, which take up the slack.
	step := (int(v)*8 + n*3 + 5) / (n*4 - 4) * 2
	pos := make([]int, n)
	pos[0] = 6
	for i, p := n-1, v.Size()-7; i > 0; i, p = i-1, p-step {
		pos[i] = p
	}
	return pos
}

// Error correction codewords per block, by level and version,
// from ISO/IEC 18004:2015 Table 9.
var checkBytes = [4][MaxVersion + 1]int8{
	L: {0, 7, 10, 15, 20, 26, 18, 20, 24, 30, 18, 20, 24, 26, 30, 22, 24, 28, 30, 28, 28, 28, 28, 30, 30, 26, 28, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
	M: {0, 10, 16, 26, 18, 24, 16, 18, 22, 22, 26, 30, 22, 22, 24, 24, 28, 28, 26, 26, 26, 26, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28},
	Q: {0, 13, 22, 18, 26, 18, 24, 18, 22, 20, 24, 28, 26, 24, 20, 30, 24, 28, 28, 26, 30, 28, 30, 30, 30, 30, 28, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
	H: {0, 17, 28, 22, 16, 22, 28, 26, 26, 24, 28, 24, 28, 22, 24, 24, 30, 28, 28, 26, 28, 30, 24, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
}

// Error correction blocks, by level and version.
var numBlocks = [4][MaxVersion + 1]int8{
	L: {0, 1, 1, 1, 1, 1, 2, 2, 2, 2, 4, 4, 4, 4, 4, 6, 6, 6, 6, 7, 8, 8, 9, 9, 10, 12, 12, 12, 13, 14, 15, 16, 17, 18, 19, 19, 20, 21, 22, 24, 25},
	M: {0, 1, 1, 1, 2, 2, 4, 4, 4, 5, 5, 5, 8, 9, 9, 10, 10, 11, 13, 14, 16, 17, 17, 18, 20, 21, 23, 25, 26, 28, 29, 31, 33, 35, 37, 38, 40, 43, 45, 47, 49},
	Q: {0, 1, 1, 2, 2, 4, 4, 6, 6, 8, 8, 8, 10, 12, 16, 12, 17, 16, 18, 21, 20, 23, 23, 25, 27, 29, 34, 34, 35, 38, 40, 43, 45, 48, 51, 53, 56, 59, 62, 65, 68},
	H: {0, 1, 1, 2, 4, 4, 4, 5, 6, 8, 8, 11, 11, 16, 16, 18, 16, 19, 21, 25, 25, 25, 34, 30, 32, 35, 37, 40, 42, 45, 48, 51, 54, 57, 60, 63, 66, 70, 74, 77, 81},
}
