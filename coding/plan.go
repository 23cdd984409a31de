// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "sync"

// A Plan describes how to construct a QR code
// with a specific version and level.
type Plan struct {
	Version Version // QR code version
	Level   Level   // QR error correction Level

	DataBits int // number of data bits
	Size     int // number of modules on a side

	base *Matrix // function patterns and version information
}

// Pre-allocated Plans.  A Plan is created the first time a
// combination of version and level is used and is read only after.
var plans [MaxVersion + 1][H + 1]struct {
	once sync.Once
	p    *Plan
}

// NewPlan returns a Plan for a QR code with the given version and level.
func NewPlan(version Version, level Level) (*Plan, error) {
	if !version.IsValid() {
		return nil, &ConfigError{"version", int(version)}
	}
	if !level.IsValid() {
		return nil, &ConfigError{"level", int(level)}
	}
	p := &plans[version][level]
	p.once.Do(func() {
		m := NewMatrix(version)
		m.WriteVersion(version)
		p.p = &Plan{
			Version:  version,
			Level:    level,
			DataBits: version.DataBits(level),
			Size:     version.Size(),
			base:     m,
		}
	})
	return p.p, nil
}

// Matrix returns a copy of the matrix of p with function patterns and
// version information placed and the rest unset.
func (p *Plan) Matrix() *Matrix { return p.base.Clone() }

// Codewords returns the interleaved data and error correction
// codewords of seg in a code built according to p.
func (p *Plan) Codewords(seg Segment) ([]byte, error) {
	if !seg.IsValid() {
		return nil, SegmentError(seg)
	}
	if n := seg.EncodedLength(p.Version); n > p.DataBits {
		return nil, &CapacityError{n, p.DataBits, p.Level}
	}
	b := NewBits(p.Version)
	if err := seg.Encode(b, p.Version); err != nil {
		return nil, err
	}
	b.AddCheckBytes(p.Version, p.Level)
	return b.Interleave(p.Version, p.Level), nil
}

// Encode returns a QR code encoding seg according to p.  If mask is
// AutoMask, the mask is chosen by policy; otherwise mask is applied.
func (p *Plan) Encode(seg Segment, mask Mask, policy MaskPolicy) (*Code, error) {
	if mask != AutoMask && !mask.IsValid() {
		return nil, &ConfigError{"mask", int(mask)}
	}
	if !policy.IsValid() {
		return nil, &ConfigError{"mask policy", int(policy)}
	}
	cw, err := p.Codewords(seg)
	if err != nil {
		return nil, err
	}
	m := p.Matrix()
	m.Place(cw)
	var pen []int
	if mask == AutoMask {
		var all [NumMasks]int
		m, mask, all = SelectMask(m, p.Level, policy)
		pen = all[:]
	} else {
		m.ApplyMask(mask)
		m.WriteFormat(p.Level, mask)
	}
	c := m.Code()
	c.Mask, c.Penalties = mask, pen
	return c, nil
}

// Encode encodes seg into a QR code with the given version and level,
// choosing the mask with the lowest penalty.
func Encode(version Version, level Level, seg Segment) (*Code, error) {
	p, err := NewPlan(version, level)
	if err != nil {
		return nil, err
	}
	return p.Encode(seg, AutoMask, LowestPenalty)
}
