// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"strconv"
	"sync"
)

// A Mask is a QR data mask pattern, 0 to 7.
type Mask int

// AutoMask requests mask selection by penalty.
const AutoMask Mask = -1

// NumMasks is the number of mask patterns.
const NumMasks = 8

func (k Mask) String() string {
	if k == AutoMask {
		return "auto"
	}
	return strconv.Itoa(int(k))
}

// IsValid reports whether k is a mask pattern.
func (k Mask) IsValid() bool { return 0 <= k && k < NumMasks }

// Flip reports whether mask k inverts the data module at row, col.
func (k Mask) Flip(row, col int) bool {
	i, j := row, col
	switch k {
	case 0:
		return (i+j)%2 == 0
	case 1:
		return i%2 == 0
	case 2:
		return j%3 == 0
	case 3:
		return (i+j)%3 == 0
	case 4:
		return (i/2+j/3)%2 == 0
	case 5:
		return i*j%2+i*j%3 == 0
	case 6:
		return (i*j%2+i*j%3)%2 == 0
	case 7:
		return ((i+j)%2+i*j%3)%2 == 0
	}
	panic("qr: invalid mask " + k.String())
}

// ApplyMask inverts the data modules of m selected by mask k.
// Function modules are left alone.
func (m *Matrix) ApplyMask(k Mask) {
	siz := m.Size
	for row := 0; row < siz; row++ {
		for col := 0; col < siz; col++ {
			i := row*siz + col
			if m.fn[i] || !k.Flip(row, col) {
				continue
			}
			switch m.mod[i] {
			case Light:
				m.mod[i] = Dark
			case Dark:
				m.mod[i] = Light
			default:
				panic("qr: masking unset module")
			}
		}
	}
}

// Penalty values.
//
//   - RunP: for each run of n same-colour modules in a row or column,
//     n >= 5 -> n-2
//   - BoxP: for each, possibly overlapping, 2x2 box of one colour -> 3
//   - FindP: for each 1:1:3:1:1 finder-like pattern with four light
//     modules on either side in a row or column -> 40
//   - BalP: for every full 5% the share of dark modules deviates
//     from 50% -> 10
//
// https://www.nayuki.io/page/creating-a-qr-code-step-by-step
const (
	MinRun    = 5  // RunP:  minimum run length
	RunPDelta = -2 // RunP:  add to run length
	BoxPP     = 3  // BoxP:  points per box
	FindPP    = 40 // FindP: points per pattern
	BalPP     = 10 // BalP:  points per 5% band

	findLen = 11
	findB   = 0b0000_1011101 // light modules before
	findA   = 0b1011101_0000 // light modules after
)

// Penalty returns the penalty score of m.  All modules must be set.
func (m *Matrix) Penalty() int {
	siz := m.Size
	p := 0
	for i := 0; i < siz; i++ {
		p += m.linePenalty(func(k int) Module { return m.mod[i*siz+k] })
		p += m.linePenalty(func(k int) Module { return m.mod[k*siz+i] })
	}

	dark := 0
	for row := 0; row < siz; row++ {
		line := m.mod[row*siz : (row+1)*siz]
		for col, c := range line {
			if c == Unset {
				panic("qr: unset module")
			}
			if c == Dark {
				dark++
			}
			if row > 0 && col > 0 {
				prev := m.mod[(row-1)*siz:]
				if c == line[col-1] && c == prev[col] && c == prev[col-1] {
					p += BoxPP
				}
			}
		}
	}

	// |dark/total - 1/2| in units of 5%, rounded down.
	total := siz * siz
	d := 20*dark - 10*total
	if d < 0 {
		d = -d
	}
	return p + d/total*BalPP
}

// linePenalty returns RunP and FindP of a row or column of m.
// at returns the kth module of the line.
func (m *Matrix) linePenalty(at func(k int) Module) int {
	p := 0
	run := 0
	var prev Module
	var pat uint // last findLen modules, dark is 1
	for k := 0; k < m.Size; k++ {
		c := at(k)
		if k > 0 && c == prev {
			run++
		} else {
			if run >= MinRun {
				p += run + RunPDelta
			}
			run, prev = 1, c
		}
		pat = pat << 1 & (1<<findLen - 1)
		if c == Dark {
			pat |= 1
		}
		if k >= findLen-1 && (pat == findB || pat == findA) {
			p += FindPP
		}
	}
	if run >= MinRun {
		p += run + RunPDelta
	}
	return p
}

// A MaskPolicy selects a mask given the penalties of all eight.
type MaskPolicy int

const (
	// LowestPenalty selects the mask with the lowest penalty,
	// preferring the lowest index on ties.
	LowestPenalty MaskPolicy = iota

	// ScannerBias selects the lowest-penalty mask among
	// PreferredMasks if its penalty is within ScannerTolerance of
	// the lowest penalty, and falls back to LowestPenalty otherwise.
	// Masks 0 to 2 are simple stripe and checkerboard patterns that
	// some camera decoders handle more reliably.
	ScannerBias
)

// ScannerTolerance is the penalty margin accepted by ScannerBias.
const ScannerTolerance = 40

// PreferredMasks are the masks favoured by ScannerBias.
var PreferredMasks = [...]Mask{0, 1, 2}

func (p MaskPolicy) String() string {
	switch p {
	case LowestPenalty:
		return "lowest-penalty"
	case ScannerBias:
		return "scanner-bias"
	}
	return strconv.Itoa(int(p))
}

// IsValid reports whether p is a defined MaskPolicy.
func (p MaskPolicy) IsValid() bool { return p == LowestPenalty || p == ScannerBias }

// Choose returns the mask selected by p given the penalty of each
// mask.
func (p MaskPolicy) Choose(pen *[NumMasks]int) Mask {
	best := Mask(0)
	for k := Mask(1); k < NumMasks; k++ {
		if pen[k] < pen[best] {
			best = k
		}
	}
	if p == ScannerBias {
		pref := PreferredMasks[0]
		for _, k := range PreferredMasks[1:] {
			if pen[k] < pen[pref] {
				pref = k
			}
		}
		if pen[pref]-pen[best] <= ScannerTolerance {
			return pref
		}
	}
	return best
}

// SelectMask tries all eight masks on copies of m, which must have
// all data modules placed and the format information unset, and
// returns the copy chosen by policy with its mask and format
// information applied, the chosen mask and the penalty of each mask.
// The trials run concurrently and only read m.
func SelectMask(m *Matrix, l Level, policy MaskPolicy) (*Matrix, Mask, [NumMasks]int) {
	var (
		trials [NumMasks]*Matrix
		pen    [NumMasks]int
		wg     sync.WaitGroup
	)
	for k := range trials {
		wg.Add(1)
		go func(k Mask) {
			defer wg.Done()
			t := m.Clone()
			t.ApplyMask(k)
			t.WriteFormat(l, k)
			trials[k], pen[k] = t, t.Penalty()
		}(Mask(k))
	}
	wg.Wait()
	k := policy.Choose(&pen)
	return trials[k], k, pen
}
