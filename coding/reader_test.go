// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"
	"strings"
)

// A decoded QR code.
type decoded struct {
	Level Level
	Mask  Mask
	Seg   Segment
}

// readModule returns the module at row, col of c.
func readModule(c *Code, row, col int) bool { return c.Black(col, row) }

// readFormat returns the level and mask from the format information
// of c.  Both copies must be intact.
func readFormat(c *Code) (Level, Mask, error) {
	siz := c.Size
	var a, b uint32
	for i := 0; i < 15; i++ {
		var ra, ca, rb, cb int
		switch {
		case i < 6:
			ra, ca = i, 8
		case i == 6:
			ra, ca = 7, 8
		case i == 7:
			ra, ca = 8, 8
		case i == 8:
			ra, ca = 8, 7
		default:
			ra, ca = 8, 14-i
		}
		if i < 8 {
			rb, cb = 8, siz-1-i
		} else {
			rb, cb = siz-15+i, 8
		}
		if readModule(c, ra, ca) {
			a |= 1 << i
		}
		if readModule(c, rb, cb) {
			b |= 1 << i
		}
	}
	if a != b {
		return 0, 0, fmt.Errorf("format copies differ: %#x %#x", a, b)
	}
	for l := L; l <= H; l++ {
		for k := Mask(0); k < NumMasks; k++ {
			if FormatBits(l, k) == a {
				return l, k, nil
			}
		}
	}
	return 0, 0, fmt.Errorf("bad format information %#x", a)
}

// readVersion checks both copies of the version information of c.
func readVersion(c *Code, v Version) error {
	if v < 7 {
		return nil
	}
	siz := c.Size
	var x, y uint32
	for i := 0; i < 18; i++ {
		a, b := siz-11+i%3, i/3
		if readModule(c, b, a) {
			x |= 1 << i
		}
		if readModule(c, a, b) {
			y |= 1 << i
		}
	}
	if want := VersionBits(v); x != want || y != want {
		return fmt.Errorf("version information %#x %#x, want %#x", x, y, want)
	}
	return nil
}

// bitReader reads bits MSB first.
type bitReader struct {
	b   []byte
	pos int
}

func (r *bitReader) read(n int) (uint32, error) {
	if r.pos+n > len(r.b)*8 {
		return 0, fmt.Errorf("read %d bits at %d past end", n, r.pos)
	}
	var v uint32
	for ; n > 0; n-- {
		v = v<<1 | uint32(r.b[r.pos>>3]>>(7&^r.pos)&1)
		r.pos++
	}
	return v, nil
}

// readCode decodes c as a QR code of version v: it reads the format
// information, unmasks and reads data modules in zigzag order,
// de-interleaves the blocks, checks their error correction codewords
// and parses the single segment.
func readCode(c *Code, v Version) (*decoded, error) {
	if c.Size != v.Size() {
		return nil, fmt.Errorf("size %d, want %d", c.Size, v.Size())
	}
	l, k, err := readFormat(c)
	if err != nil {
		return nil, err
	}
	if err := readVersion(c, v); err != nil {
		return nil, err
	}

	// Unmask and read codewords.
	raw := make([]byte, (v.RawModules()+7)/8)
	n := 0
	NewMatrix(v).Zigzag(func(row, col int) {
		if readModule(c, row, col) != k.Flip(row, col) {
			raw[n>>3] |= 0x80 >> (n & 7)
		}
		n++
	})
	if n != v.RawModules() {
		return nil, fmt.Errorf("%d data modules, want %d", n, v.RawModules())
	}
	raw = raw[:v.Codewords()]

	// De-interleave and check blocks.
	nblock, check := v.Blocks(l)
	nd := v.DataBytes(l)
	db := nd / nblock
	short := nblock - nd%nblock
	blocks := make([][]byte, nblock)
	for j := 0; j <= db; j++ {
		for i := range blocks {
			if j < db || i >= short {
				blocks[i] = append(blocks[i], raw[0])
				raw = raw[1:]
			}
		}
	}
	var data []byte
	for _, b := range blocks {
		data = append(data, b...)
	}
	for j := 0; j < check; j++ {
		for i := range blocks {
			blocks[i] = append(blocks[i], raw[0])
			raw = raw[1:]
		}
	}
	for i, b := range blocks {
		for _, s := range Field.Syndromes(b, check) {
			if s != 0 {
				return nil, fmt.Errorf("block %d: nonzero syndrome", i)
			}
		}
	}

	// Parse the segment.
	r := &bitReader{b: data}
	ind, err := r.read(4)
	if err != nil {
		return nil, err
	}
	var m Mode
	switch ind {
	case 0b0001:
		m = Numeric
	case 0b0010:
		m = Alphanumeric
	case 0b0100:
		m = Byte
	default:
		return nil, fmt.Errorf("mode indicator %04b", ind)
	}
	cnt, err := r.read(m.CountLength(v))
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"
	for left := int(cnt); left > 0; {
		switch m {
		case Numeric:
			nc := min(left, 3)
			x, err := r.read([4]int{0, 4, 7, 10}[nc])
			if err != nil {
				return nil, err
			}
			fmt.Fprintf(&sb, "%0*d", nc, x)
			left -= nc
		case Alphanumeric:
			if left >= 2 {
				x, err := r.read(11)
				if err != nil {
					return nil, err
				}
				sb.WriteByte(alphabet[x/45])
				sb.WriteByte(alphabet[x%45])
				left -= 2
			} else {
				x, err := r.read(6)
				if err != nil {
					return nil, err
				}
				sb.WriteByte(alphabet[x])
				left--
			}
		case Byte:
			x, err := r.read(8)
			if err != nil {
				return nil, err
			}
			sb.WriteByte(byte(x))
			left--
		}
	}

	// Terminator and padding.
	if t := min(4, len(data)*8-r.pos); t > 0 {
		if x, _ := r.read(t); x != 0 {
			return nil, fmt.Errorf("bad terminator %b", x)
		}
	}
	rest := r.b[(r.pos+7)>>3:]
	for i, b := range rest {
		if want := [2]byte{0xec, 0x11}[i&1]; b != want {
			return nil, fmt.Errorf("pad byte %d is %#x, want %#x", i, b, want)
		}
	}
	return &decoded{l, k, Segment{sb.String(), m}}, nil
}
