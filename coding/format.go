// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// BCH generator polynomials and format information mask.
const (
	formatPoly  = 0b101_0011_0111     // x¹⁰+x⁸+x⁵+x⁴+x²+x+1
	formatMask  = 0b101_0100_0001_0010 // no all-zero format information
	versionPoly = 0b1_1111_0010_0101  // x¹²+x¹¹+x¹⁰+x⁹+x⁸+x⁵+x²+1
)

// FormatBits returns the 15 bit format information for level l and
// mask k: 5 data bits, 10 BCH check bits, XORed with a fixed mask.
func FormatBits(l Level, k Mask) uint32 {
	data := l.formatBits()<<3 | uint32(k)
	rem := data
	for i := 0; i < 10; i++ {
		rem = rem<<1 ^ rem>>9*formatPoly
	}
	return (data<<10 | rem&0x3ff) ^ formatMask
}

// VersionBits returns the 18 bit version information for v: 6 data
// bits and 12 BCH check bits.  It is only used for versions 7 and up.
func VersionBits(v Version) uint32 {
	rem := uint32(v)
	for i := 0; i < 12; i++ {
		rem = rem<<1 ^ rem>>11*versionPoly
	}
	return uint32(v)<<12 | rem&0xfff
}

// WriteFormat writes both copies of the format information for level
// l and mask k to m.  Bit 0 is the least significant.
func (m *Matrix) WriteFormat(l Level, k Mask) {
	bits := FormatBits(l, k)
	bit := func(i int) bool { return bits>>i&1 != 0 }
	siz := m.Size

	// Around the top left finder pattern.
	for i := 0; i < 6; i++ {
		m.set(i, 8, bit(i))
	}
	m.set(7, 8, bit(6))
	m.set(8, 8, bit(7))
	m.set(8, 7, bit(8))
	for i := 9; i < 15; i++ {
		m.set(8, 14-i, bit(i))
	}

	// Split between the other two.
	for i := 0; i < 8; i++ {
		m.set(8, siz-1-i, bit(i))
	}
	for i := 8; i < 15; i++ {
		m.set(siz-15+i, 8, bit(i))
	}
}

// WriteVersion writes both copies of the version information for v to
// m.  Versions below 7 carry none.
func (m *Matrix) WriteVersion(v Version) {
	if v < 7 {
		return
	}
	bits := VersionBits(v)
	siz := m.Size
	for i := 0; i < 18; i++ {
		a, b := siz-11+i%3, i/3
		dark := bits>>i&1 != 0
		m.set(b, a, dark)
		m.set(a, b, dark)
	}
}
