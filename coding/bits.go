// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Bits is a bit stream written MSB first.  It only ever grows.
type Bits struct {
	b    []byte
	nbit int
}

// NewBits returns Bits with enough capacity for the codewords of a QR
// code of the given version.
func NewBits(v Version) *Bits {
	return &Bits{b: make([]byte, 0, v.Codewords())}
}

// Bits returns the number of bits written to b.
func (b *Bits) Bits() int { return b.nbit }

// Bytes returns the bytes written to b.  It panics if b does not
// end on a byte boundary.
func (b *Bits) Bytes() []byte {
	if b.nbit%8 != 0 {
		panic("qr: fractional byte")
	}
	return b.b
}

// Write appends the nbit low bits of v to b, most significant first.
func (b *Bits) Write(v uint32, nbit int) {
	for nbit > 0 {
		rem := -b.nbit & 7 // free bits in the last byte
		if rem == 0 {
			b.b = append(b.b, 0)
			rem = 8
		}
		n := min(rem, nbit)
		nbit -= n
		b.b[len(b.b)-1] |= byte(v>>nbit&(1<<n-1)) << (rem - n)
		b.nbit += n
	}
}

// Pad adds a terminator of up to 4 zero bits to b, zero bits up to a
// byte boundary, and alternating pad bytes 0xec, 0x11 up to n bits.
// n must be a multiple of 8.
func (b *Bits) Pad(n int) {
	if b.nbit > n {
		panic("qr: too much data")
	}
	b.Write(0, min(4, n-b.nbit))
	b.Write(0, -b.nbit&7)
	for pad := uint32(0xec); b.nbit < n; pad ^= 0xec ^ 0x11 {
		b.Write(pad, 8)
	}
}
