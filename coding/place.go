// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "github.com/unixdj/qrpng/gf256"

// AddCheckBytes pads b to the data capacity of version v at level l
// and appends the error correction codewords of each block.
// Blocks are stored one after another, data first.
func (b *Bits) AddCheckBytes(v Version, l Level) {
	nd := v.DataBytes(l)
	b.Pad(nd * 8)
	nblock, check := v.Blocks(l)
	db := nd / nblock
	short := nblock - nd%nblock // blocks of db data bytes, the rest db+1
	rs := gf256.NewRSEncoder(Field, check)
	dat := b.b[:nd:nd]
	ecc := make([]byte, nblock*check)
	for i, chk := 0, ecc; i < nblock; i, chk = i+1, chk[check:] {
		if i == short {
			db++
		}
		rs.ECC(dat[:db], chk)
		dat = dat[db:]
	}
	b.b = append(b.b, ecc...)
	b.nbit += len(ecc) * 8
}

// interleave interleaves nblock blocks from src to dst, which must be
// of equal length.  If the blocks differ in length, the longer ones
// come last and are one byte longer.
func interleave(dst, src []byte, nblock int) {
	db := len(src) / nblock
	extra := dst[db*nblock:]
	dst = dst[:db*nblock]
	normal := nblock - len(extra)
	for i := 0; i < nblock; i++ {
		for j, v := range src[:db] {
			dst[j*nblock+i] = v
		}
		src = src[db:]
		if i >= normal {
			extra[i-normal] = src[0]
			src = src[1:]
		}
	}
}

// Interleave returns the final codeword sequence of b, which must
// hold the output of AddCheckBytes for v and l: data codewords taken
// column-wise across blocks, then check codewords likewise.
func (b *Bits) Interleave(v Version, l Level) []byte {
	src := b.Bytes()
	if len(src) != v.Codewords() {
		panic("qr: wrong data length")
	}
	nblock, _ := v.Blocks(l)
	if nblock == 1 {
		return src
	}
	dst := make([]byte, len(src))
	nd := v.DataBytes(l)
	interleave(dst[:nd], src[:nd], nblock)
	interleave(dst[nd:], src[nd:], nblock)
	return dst
}

// BitStream reads bits from the underlying buffer.
type BitStream struct {
	b   []byte
	pos int
}

// NewBitStream returns a BitStream reading from b.
func NewBitStream(b []byte) BitStream { return BitStream{b: b} }

// Next returns the next bit from s.  Past end of buffer Next returns
// false.
func (s *BitStream) Next() bool {
	i := s.pos >> 3
	if i >= len(s.b) {
		return false
	}
	bit := s.b[i]>>(7&^s.pos)&1 != 0
	s.pos++
	return bit
}

// Place writes codewords into the non-function modules of m in zigzag
// order: two-column lanes from the right edge leftwards, skipping the
// vertical timing column, alternately upwards and downwards, right
// column before left.  Bits are taken most significant first.  Modules
// left over after the last bit are light.
func (m *Matrix) Place(codewords []byte) {
	s := NewBitStream(codewords)
	m.Zigzag(func(row, col int) { m.set(row, col, s.Next()) })
}

// Zigzag calls fn for every non-function module of m in data placement
// order.
func (m *Matrix) Zigzag(fn func(row, col int)) {
	siz := m.Size
	for right := siz - 1; right >= 1; right -= 2 {
		if right == 6 {
			right = 5
		}
		upward := (right+1)&2 == 0
		for vert := 0; vert < siz; vert++ {
			row := vert
			if upward {
				row = siz - 1 - vert
			}
			for col := right; col >= right-1; col-- {
				if !m.IsFunction(row, col) {
					fn(row, col)
				}
			}
		}
	}
}
