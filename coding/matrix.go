// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// A Module is the state of a QR code module.
type Module byte

// Module states.  All modules are Light or Dark once a symbol is
// complete.
const (
	Unset Module = iota
	Light
	Dark
)

func module(dark bool) Module {
	if dark {
		return Dark
	}
	return Light
}

// A Matrix is the module grid of a QR code under construction.
// Function modules (finder, separator, timing, alignment patterns,
// the dark module, format and version information) are marked at
// construction and never touched by data placement or masking.
type Matrix struct {
	Size int
	mod  []Module
	fn   []bool // function modules, shared between clones
}

// NewMatrix returns the matrix for version v with function patterns
// placed and format and version information areas reserved but unset.
func NewMatrix(v Version) *Matrix {
	if !v.IsValid() {
		panic("qr: invalid version " + v.String())
	}
	siz := v.Size()
	m := &Matrix{
		Size: siz,
		mod:  make([]Module, siz*siz),
		fn:   make([]bool, siz*siz),
	}

	// Finder patterns with separators.
	m.finder(0, 0)
	m.finder(0, siz-7)
	m.finder(siz-7, 0)
	for i := 0; i < 8; i++ {
		m.fixed(7, i, false) // top left
		m.fixed(i, 7, false)
		m.fixed(7, siz-1-i, false) // top right
		m.fixed(i, siz-8, false)
		m.fixed(siz-8, i, false) // bottom left
		m.fixed(siz-1-i, 7, false)
	}

	// Timing patterns.
	for i := 8; i < siz-8; i++ {
		m.fixed(6, i, i&1 == 0)
		m.fixed(i, 6, i&1 == 0)
	}

	// One lonely dark module.
	m.fixed(int(v)*4+9, 8, true)

	// Alignment patterns.
	pos := v.AlignmentPositions()
	last := len(pos) - 1
	for i, r := range pos {
		for j, c := range pos {
			if i == 0 && (j == 0 || j == last) || i == last && j == 0 {
				continue // finder pattern
			}
			m.alignment(r, c)
		}
	}

	// Format information.
	for i := 0; i < 9; i++ {
		m.reserve(8, i)
		m.reserve(i, 8)
	}
	for i := 0; i < 8; i++ {
		m.reserve(8, siz-1-i)
		m.reserve(siz-1-i, 8)
	}

	// Version information.
	if v >= 7 {
		for i := 0; i < 18; i++ {
			a, b := siz-11+i%3, i/3
			m.reserve(b, a)
			m.reserve(a, b)
		}
	}
	return m
}

// fixed sets a function module.  Setting a function module to a
// different colour is an internal error.
func (m *Matrix) fixed(row, col int, dark bool) {
	i := row*m.Size + col
	v := module(dark)
	if m.fn[i] && m.mod[i] != v {
		panic("qr: function pattern overlap")
	}
	m.fn[i] = true
	m.mod[i] = v
}

// reserve marks an unset module as a function module to be written
// later.  Modules already set are left alone.
func (m *Matrix) reserve(row, col int) {
	m.fn[row*m.Size+col] = true
}

// finder draws a 7×7 finder pattern with the top left corner at
// row, col.
func (m *Matrix) finder(row, col int) {
	for r := 0; r < 7; r++ {
		for c := 0; c < 7; c++ {
			ring := r == 0 || r == 6 || c == 0 || c == 6
			core := 2 <= r && r <= 4 && 2 <= c && c <= 4
			m.fixed(row+r, col+c, ring || core)
		}
	}
}

// alignment draws a 5×5 alignment pattern centred at row, col.
func (m *Matrix) alignment(row, col int) {
	for r := -2; r <= 2; r++ {
		for c := -2; c <= 2; c++ {
			m.fixed(row+r, col+c, max(r, -r, c, -c) != 1)
		}
	}
}

// At returns the module at row, col.
func (m *Matrix) At(row, col int) Module { return m.mod[row*m.Size+col] }

// IsFunction reports whether the module at row, col is a function
// module.
func (m *Matrix) IsFunction(row, col int) bool { return m.fn[row*m.Size+col] }

// Clone returns a copy of m.  The copy shares the function module map,
// which is read only after construction.
func (m *Matrix) Clone() *Matrix {
	c := *m
	c.mod = append([]Module(nil), m.mod...)
	return &c
}

// set writes a reserved or data module.
func (m *Matrix) set(row, col int, dark bool) {
	m.mod[row*m.Size+col] = module(dark)
}

// Code returns the completed matrix as a Code.  It panics if any
// module is unset.
func (m *Matrix) Code() *Code {
	siz := m.Size
	stride := (siz + 7) >> 3
	c := &Code{Size: siz, Stride: stride, Bitmap: make([]byte, siz*stride)}
	for y := 0; y < siz; y++ {
		for x := 0; x < siz; x++ {
			switch m.mod[y*siz+x] {
			case Dark:
				c.Bitmap[y*stride+x>>3] |= 0x80 >> (x & 7)
			case Unset:
				panic("qr: unset module")
			}
		}
	}
	return c
}

// A Code is a square pixel grid.
type Code struct {
	Bitmap []byte // 1 is black, 0 is white
	Size   int    // number of pixels on a side
	Stride int    // number of bytes per row

	Mask      Mask  // mask pattern applied
	Penalties []int // penalty of each mask, nil if the mask was forced
}

// Black reports whether the pixel at x, y is black.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Bitmap[y*c.Stride+x/8]&(1<<uint(7&^x)) != 0
}
