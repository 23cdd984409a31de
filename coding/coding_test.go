// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestAnalyze(t *testing.T) {
	for _, tt := range []struct {
		text      string
		exactCase bool
		mode      Mode
	}{
		{"", false, Numeric},
		{"0123456789", false, Numeric},
		{"HELLO WORLD", false, Alphanumeric},
		{"hello world", false, Alphanumeric},
		{"hello world", true, Byte},
		{"HTTP://EXAMPLE.COM/$%*+-./:", true, Alphanumeric},
		{"12a", false, Alphanumeric},
		{"a_b", false, Byte},
		{"héllo", false, Byte},
		{"日本", false, Byte},
		{"\x00", false, Byte},
	} {
		if m := Analyze(tt.text, tt.exactCase); m != tt.mode {
			t.Errorf("Analyze(%q, %v) = %v, want %v",
				tt.text, tt.exactCase, m, tt.mode)
		}
	}
}

func TestNewSegment(t *testing.T) {
	for _, tt := range []struct {
		text      string
		cs        Charset
		exactCase bool
		seg       Segment
		err       error
	}{
		{"12345", Auto, false, Segment{"12345", Numeric}, nil},
		{"hello", Auto, false, Segment{"HELLO", Alphanumeric}, nil},
		{"hello", Auto, true, Segment{"hello", Byte}, nil},
		{"héllo", Auto, false, Segment{"h\xe9llo", Byte}, nil},
		{"héllo", Latin1, false, Segment{"h\xe9llo", Byte}, nil},
		{"héllo", UTF8, false, Segment{"héllo", Byte}, nil},
		{"http://é.example/", Auto, false, Segment{"http://é.example/", Byte}, nil},
		{"é <a@b.cd>", Auto, false, Segment{"é <a@b.cd>", Byte}, nil},
		{"日本", Auto, false, Segment{"日本", Byte}, nil},
		{"日本", Latin1, false, Segment{}, ErrUnsupportedCharacter},
		{"a\xffb", UTF8, false, Segment{}, ErrUnsupportedCharacter},
		{"a\xffb", Latin1, false, Segment{}, ErrUnsupportedCharacter},
		{"x", Charset(7), false, Segment{}, ErrInvalidConfiguration},
	} {
		seg, err := NewSegment(tt.text, tt.cs, tt.exactCase)
		if !errors.Is(err, tt.err) || err == nil && seg != tt.seg {
			t.Errorf("NewSegment(%q, %v, %v) = %q, %v; want %q, %v",
				tt.text, tt.cs, tt.exactCase, seg, err, tt.seg, tt.err)
		}
	}
}

func TestCharacterError(t *testing.T) {
	_, err := NewSegment("ab€", Latin1, true)
	var ce *CharacterError
	if !errors.As(err, &ce) {
		t.Fatalf("error %v is not a CharacterError", err)
	}
	if ce.Rune != '€' || ce.Offset != 2 || ce.Charset != Latin1 {
		t.Errorf("got %+v", *ce)
	}
}

func TestIsWebContent(t *testing.T) {
	for text, want := range map[string]bool{
		"https://example.com/": true,
		"HTTP://EXAMPLE.COM/":  true,
		"mailto:x@y.z":         true,
		"tel:+15555555":        true,
		"SMSTO:123:hi":         true,
		"write to a@b.org":     true,
		"a@b":                  false,
		"hello":                false,
		"ftp://x":              false,
	} {
		if got := IsWebContent(text); got != want {
			t.Errorf("IsWebContent(%q) = %v, want %v", text, got, want)
		}
	}
}

func TestBits(t *testing.T) {
	b := NewBits(1)
	b.Write(0b0001, 4)
	b.Write(8, 10)
	b.Write(12, 10)
	b.Write(345, 10)
	b.Write(67, 7)
	if n := b.Bits(); n != 41 {
		t.Fatalf("Bits() = %d, want 41", n)
	}
	b.Pad(Version(1).DataBits(M))
	want := []byte{0x10, 0x20, 0x0c, 0x56, 0x61, 0x80, 0xec, 0x11,
		0xec, 0x11, 0xec, 0x11, 0xec, 0x11, 0xec, 0x11}
	if got := b.Bytes(); !bytes.Equal(got, want) {
		t.Errorf("got  % x\nwant % x", got, want)
	}
}

func TestBitsPadShort(t *testing.T) {
	// Fewer than 4 bits of room: the terminator is truncated.
	b := &Bits{}
	b.Write(0x7ff, 14)
	b.Pad(16)
	if got := b.Bytes(); !bytes.Equal(got, []byte{0x1f, 0xfc}) {
		t.Errorf("got % x", got)
	}
}

func TestSegmentEncode(t *testing.T) {
	for _, tt := range []struct {
		seg  Segment
		v    Version
		bits int
		want string
	}{
		{Segment{"01234567", Numeric}, 1, 41, "10 20 0c 56 61 80"},
		{Segment{"HELLO WORLD", Alphanumeric}, 1, 74, "20 5b 0b 78 d1 72 dc 4d 43 40"},
		{Segment{"AB", Byte}, 1, 28, "40 24 14 20"},
		{Segment{"AB", Byte}, 10, 36, "40 00 24 14 20"},
		{Segment{"", Numeric}, 1, 14, "10 00"},
	} {
		b := &Bits{}
		if err := tt.seg.Encode(b, tt.v); err != nil {
			t.Errorf("%v: %v", tt.seg, err)
			continue
		}
		if n := tt.seg.EncodedLength(tt.v); n != b.Bits() || n != tt.bits {
			t.Errorf("%v: EncodedLength %d, wrote %d, want %d",
				tt.seg, n, b.Bits(), tt.bits)
		}
		b.Write(0, -b.Bits()&7)
		if got := fmt.Sprintf("% x", b.Bytes()); got != tt.want {
			t.Errorf("%v: got %s, want %s", tt.seg, got, tt.want)
		}
	}
	if err := (Segment{"12a", Numeric}).Encode(&Bits{}, 1); !errors.Is(err, ErrUnsupportedCharacter) {
		t.Errorf("invalid numeric segment: %v", err)
	}
	if err := (Segment{"hello", Alphanumeric}).Encode(&Bits{}, 1); !errors.Is(err, ErrUnsupportedCharacter) {
		t.Errorf("lower case alphanumeric segment: %v", err)
	}
}

func TestResolve(t *testing.T) {
	for _, tt := range []struct {
		seg Segment
		l   Level
		min Version
		v   Version
		err error
	}{
		{Segment{"12345", Numeric}, M, 0, 1, nil},
		{Segment{"", Numeric}, H, 0, 1, nil},
		{Segment{strings.Repeat("1", 41), Numeric}, L, 0, 1, nil},
		{Segment{strings.Repeat("1", 42), Numeric}, L, 0, 2, nil},
		{Segment{strings.Repeat("A", 25), Alphanumeric}, L, 0, 1, nil},
		{Segment{strings.Repeat("A", 26), Alphanumeric}, L, 0, 2, nil},
		{Segment{strings.Repeat("a", 17), Byte}, L, 0, 1, nil},
		{Segment{strings.Repeat("a", 18), Byte}, L, 0, 2, nil},
		{Segment{"12345", Numeric}, M, 5, 5, nil},
		{Segment{strings.Repeat("a", 2953), Byte}, L, 0, 40, nil},
		{Segment{strings.Repeat("a", 2954), Byte}, L, 0, 0, ErrPayloadTooLarge},
		{Segment{strings.Repeat("a", 1273), Byte}, H, 0, 40, nil},
		{Segment{strings.Repeat("a", 1274), Byte}, H, 0, 0, ErrPayloadTooLarge},
		{Segment{strings.Repeat("1", 7089), Numeric}, L, 0, 40, nil},
		{Segment{strings.Repeat("A", 4296), Alphanumeric}, L, 0, 40, nil},
		{Segment{"1", Numeric}, Level(4), 0, 0, ErrInvalidConfiguration},
		{Segment{"1", Numeric}, L, 41, 0, ErrInvalidConfiguration},
		{Segment{"x", Numeric}, L, 0, 0, ErrUnsupportedCharacter},
	} {
		v, err := Resolve(tt.seg, tt.l, tt.min)
		if v != tt.v || !errors.Is(err, tt.err) {
			t.Errorf("Resolve(%v, %v, %d) = %d, %v; want %d, %v",
				tt.seg, tt.l, tt.min, v, err, tt.v, tt.err)
		}
	}
}

func TestVersionCapacity(t *testing.T) {
	for _, tt := range []struct {
		v         Version
		raw       int
		codewords int
	}{
		{1, 208, 26},
		{2, 359, 44},
		{6, 1383, 172},
		{7, 1568, 196},
		{14, 4651, 581},
		{40, 29648, 3706},
	} {
		if r, c := tt.v.RawModules(), tt.v.Codewords(); r != tt.raw || c != tt.codewords {
			t.Errorf("version %d: %d modules %d codewords, want %d %d",
				tt.v, r, c, tt.raw, tt.codewords)
		}
	}
	for v := MinVersion; v <= MaxVersion; v++ {
		for l := L; l <= H; l++ {
			nblock, check := v.Blocks(l)
			if nblock < 1 || check < 7 || v.DataBytes(l) < nblock {
				t.Errorf("version %d level %v: %d blocks of %d check bytes",
					v, l, nblock, check)
			}
			if l > L && v.DataBytes(l) >= v.DataBytes(l-1) {
				t.Errorf("version %d: level %v holds no less than %v", v, l, l-1)
			}
		}
	}
	if n := Version(1).DataBytes(M); n != 16 {
		t.Errorf("1-M data bytes = %d, want 16", n)
	}
}

func TestAlignmentPositions(t *testing.T) {
	for _, tt := range []struct {
		v   Version
		pos []int
	}{
		{1, nil},
		{2, []int{6, 18}},
		{6, []int{6, 34}},
		{7, []int{6, 22, 38}},
		{14, []int{6, 26, 46, 66}},
		{32, []int{6, 34, 60, 86, 112, 138}},
		{36, []int{6, 24, 50, 76, 102, 128, 154}},
		{40, []int{6, 30, 58, 86, 114, 142, 170}},
	} {
		if pos := tt.v.AlignmentPositions(); !reflect.DeepEqual(pos, tt.pos) {
			t.Errorf("version %d: %v, want %v", tt.v, pos, tt.pos)
		}
	}
}

func TestFormatBits(t *testing.T) {
	for _, tt := range []struct {
		l    Level
		k    Mask
		bits uint32
	}{
		{L, 0, 0x77c4},
		{M, 0, 0x5412},
		{Q, 0, 0x355f},
		{H, 0, 0x1689},
		{L, 7, 0x6976},
		{H, 7, 0x083b},
	} {
		if bits := FormatBits(tt.l, tt.k); bits != tt.bits {
			t.Errorf("FormatBits(%v, %v) = %#x, want %#x", tt.l, tt.k, bits, tt.bits)
		}
	}
}

func TestVersionBits(t *testing.T) {
	for v, bits := range map[Version]uint32{
		7:  0x07c94,
		8:  0x085bc,
		21: 0x15683,
		40: 0x28c69,
	} {
		if got := VersionBits(v); got != bits {
			t.Errorf("VersionBits(%d) = %#x, want %#x", v, got, bits)
		}
	}
}

func TestMatrix(t *testing.T) {
	for v := MinVersion; v <= MaxVersion; v++ {
		m := NewMatrix(v)
		siz := v.Size()
		if m.Size != siz {
			t.Fatalf("version %d: size %d, want %d", v, m.Size, siz)
		}
		n := 0
		m.Zigzag(func(row, col int) {
			if m.At(row, col) != Unset {
				t.Fatalf("version %d: data module %d,%d is set", v, row, col)
			}
			n++
		})
		if n != v.RawModules() {
			t.Errorf("version %d: %d data modules, want %d", v, n, v.RawModules())
		}
		if m.At(siz-8, 8) != Dark {
			t.Errorf("version %d: no dark module", v)
		}
		for i := 8; i < siz-8; i++ {
			if want := module(i%2 == 0); m.At(6, i) != want || m.At(i, 6) != want {
				t.Errorf("version %d: bad timing module %d", v, i)
			}
		}
	}
}

func TestFinder(t *testing.T) {
	const want = "" +
		"#######.\n" +
		"#.....#.\n" +
		"#.###.#.\n" +
		"#.###.#.\n" +
		"#.###.#.\n" +
		"#.....#.\n" +
		"#######.\n" +
		"........\n"
	m := NewMatrix(1)
	var b strings.Builder
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			b.WriteByte(".#"[m.At(row, col)-Light])
		}
		b.WriteByte('\n')
	}
	if got := b.String(); got != want {
		t.Errorf("top left corner:\n%s\nwant:\n%s", got, want)
	}
}

func TestMaskFlip(t *testing.T) {
	// Flipped modules in the top left 6x6 corner, rows joined by '|'.
	for k, want := range [NumMasks]string{
		"#.#.#.|.#.#.#|#.#.#.|.#.#.#|#.#.#.|.#.#.#",
		"######|......|######|......|######|......",
		"#..#..|#..#..|#..#..|#..#..|#..#..|#..#..",
		"#..#..|..#..#|.#..#.|#..#..|..#..#|.#..#.",
		"###...|###...|...###|...###|###...|###...",
		"######|#.....|#..#..|#.#.#.|#..#..|#.....",
		"######|###...|##.##.|#.#.#.|#.##.#|#...##",
		"#.#.#.|...###|#...##|.#.#.#|###...|.###..",
	} {
		var rows []string
		for i := 0; i < 6; i++ {
			var b strings.Builder
			for j := 0; j < 6; j++ {
				if Mask(k).Flip(i, j) {
					b.WriteByte('#')
				} else {
					b.WriteByte('.')
				}
			}
			rows = append(rows, b.String())
		}
		if got := strings.Join(rows, "|"); got != want {
			t.Errorf("mask %d:\n got %s\nwant %s", k, got, want)
		}
	}
}

// lineMatrix returns a Matrix with the single row s of '#' and '.'.
func lineMatrix(s string) *Matrix {
	m := &Matrix{Size: len(s), mod: make([]Module, len(s))}
	for i := range s {
		m.mod[i] = module(s[i] == '#')
	}
	return m
}

func TestLinePenalty(t *testing.T) {
	for _, tt := range []struct {
		line string
		p    int
	}{
		{"#.#.", 0},
		{"....", 0},
		{".....", 3},
		{"#######", 5},
		{"...........", 9},
		{"#.###.#....", 40},
		{"....#.###.#", 40},
		{"....#.###.#....", 80},
		{".#.###.#....", 40},
		{"#.###.#...", 0},
		{"#.###.#.#..", 0},
	} {
		m := lineMatrix(tt.line)
		if p := m.linePenalty(func(k int) Module { return m.mod[k] }); p != tt.p {
			t.Errorf("%s: penalty %d, want %d", tt.line, p, tt.p)
		}
	}
}

func TestPenalty(t *testing.T) {
	for _, tt := range []struct {
		size int
		mod  Module
		p    int
	}{
		{2, Dark, 3 + 100},   // one box, 100% dark
		{3, Light, 4*3 + 100}, // four boxes, 0% dark
		{5, Dark, 10*3 + 16*3 + 100},
	} {
		n := tt.size * tt.size
		m := &Matrix{Size: tt.size, mod: make([]Module, n), fn: make([]bool, n)}
		for i := range m.mod {
			m.mod[i] = tt.mod
		}
		if p := m.Penalty(); p != tt.p {
			t.Errorf("%dx%d %v: penalty %d, want %d", tt.size, tt.size, tt.mod, p, tt.p)
		}
	}

	// Checkerboard: no runs, boxes or finder patterns, 13 of 25 dark.
	m := &Matrix{Size: 5, mod: make([]Module, 25), fn: make([]bool, 25)}
	for i := range m.mod {
		m.mod[i] = module((i/5+i%5)%2 == 0)
	}
	if p := m.Penalty(); p != 0 {
		t.Errorf("checkerboard: penalty %d, want 0", p)
	}
}

func TestChoose(t *testing.T) {
	for _, tt := range []struct {
		pen    [NumMasks]int
		policy MaskPolicy
		mask   Mask
	}{
		{[8]int{500, 400, 300, 200, 100, 100, 200, 300}, LowestPenalty, 4},
		{[8]int{500, 400, 300, 200, 100, 100, 200, 300}, ScannerBias, 4},
		{[8]int{500, 400, 140, 200, 100, 100, 200, 300}, ScannerBias, 2},
		{[8]int{500, 400, 141, 200, 100, 100, 200, 300}, ScannerBias, 4},
		{[8]int{120, 120, 120, 100, 100, 100, 100, 100}, ScannerBias, 0},
		{[8]int{7, 7, 7, 7, 7, 7, 7, 7}, LowestPenalty, 0},
		{[8]int{9, 8, 8, 7, 7, 7, 7, 7}, LowestPenalty, 3},
	} {
		if k := tt.policy.Choose(&tt.pen); k != tt.mask {
			t.Errorf("%v %v: chose %v, want %v", tt.policy, tt.pen, k, tt.mask)
		}
	}
}

func TestCodewords(t *testing.T) {
	for _, tt := range []struct {
		seg  Segment
		l    Level
		want string
	}{
		{Segment{"01234567", Numeric}, M,
			"10200c566180ec11ec11ec11ec11ec11" + "a524d4c1ed36c7872c55"},
		{Segment{"HELLO WORLD", Alphanumeric}, M,
			"205b0b78d172dc4d4340ec11ec11ec11" + "c4232777ebd7e7e25d17"},
		{Segment{"HELLO WORLD", Alphanumeric}, Q,
			"205b0b78d172dc4d4340ec11ec" + "a8481652d9369c002e0fb47a10"},
	} {
		p, err := NewPlan(1, tt.l)
		if err != nil {
			t.Fatal(err)
		}
		cw, err := p.Codewords(tt.seg)
		if err != nil {
			t.Fatal(err)
		}
		if got := fmt.Sprintf("%x", cw); got != tt.want {
			t.Errorf("%v %v:\n got %s\nwant %s", tt.seg, tt.l, got, tt.want)
		}
	}
}

func TestInterleave(t *testing.T) {
	// Version 5-Q: two blocks of 15 and two of 16 data bytes,
	// 18 check bytes each.
	b := NewBits(5)
	for i := 0; b.Bits() < Version(5).DataBits(Q); i++ {
		b.Write(uint32(i), 8)
	}
	b.AddCheckBytes(5, Q)
	src := b.Bytes()
	cw := b.Interleave(5, Q)
	if len(cw) != 134 {
		t.Fatalf("%d codewords, want 134", len(cw))
	}
	want := []byte{0, 15, 30, 46, 1, 16, 31, 47}
	if !bytes.Equal(cw[:8], want) {
		t.Errorf("first data codewords % x, want % x", cw[:8], want)
	}
	// The last two data codewords come from the long blocks.
	if cw[60] != 45 || cw[61] != 61 {
		t.Errorf("last data codewords %d %d, want 45 61", cw[60], cw[61])
	}
	// Check codewords start after the 62 data codewords.
	for i := 0; i < 4; i++ {
		if cw[62+i] != src[62+i*18] {
			t.Errorf("check codeword %d: %#x, want %#x", i, cw[62+i], src[62+i*18])
		}
	}
}

func TestEncode(t *testing.T) {
	for _, tt := range []struct {
		text string
		l    Level
		v    Version
		seg  Segment
	}{
		{"12345", M, 1, Segment{"12345", Numeric}},
		{"HELLO", M, 1, Segment{"HELLO", Alphanumeric}},
		{"hello world", Q, 1, Segment{"HELLO WORLD", Alphanumeric}},
		{"", L, 1, Segment{"", Numeric}},
		{"Hello, world!", H, 2, Segment{"Hello, world!", Byte}},
		{"https://example.com/ünïcödé", M, 3, Segment{"https://example.com/ünïcödé", Byte}},
		{strings.Repeat("0123456789", 20), Q, 7, Segment{strings.Repeat("0123456789", 20), Numeric}},
		{strings.Repeat("The quick brown fox, ", 20), L, 13, Segment{strings.Repeat("The quick brown fox, ", 20), Byte}},
		{strings.Repeat("A", 4296), L, 40, Segment{strings.Repeat("A", 4296), Alphanumeric}},
	} {
		seg, err := NewSegment(tt.text, Auto, false)
		if err != nil {
			t.Errorf("NewSegment(%.20q): %v", tt.text, err)
			continue
		}
		if seg != tt.seg {
			t.Errorf("NewSegment(%.20q) = %.20q, want %.20q", tt.text, seg, tt.seg)
			continue
		}
		v, err := Resolve(seg, tt.l, 0)
		if err != nil || v != tt.v {
			t.Errorf("Resolve(%v, %v) = %d, %v; want %d", seg, tt.l, v, err, tt.v)
			continue
		}
		c, err := Encode(v, tt.l, seg)
		if err != nil {
			t.Errorf("Encode(%v): %v", seg, err)
			continue
		}
		d, err := readCode(c, v)
		if err != nil {
			t.Errorf("%v %v: read: %v", seg, tt.l, err)
			continue
		}
		if d.Level != tt.l || d.Mask != c.Mask || d.Seg != seg {
			t.Errorf("%v %v mask %v: read %v %v %.20q", seg, tt.l, c.Mask,
				d.Level, d.Mask, d.Seg)
		}
	}
}

func TestEncodeMasks(t *testing.T) {
	seg := Segment{"HELLO WORLD", Alphanumeric}
	for _, v := range []Version{1, 7} {
		p, err := NewPlan(v, Q)
		if err != nil {
			t.Fatal(err)
		}
		for k := Mask(0); k < NumMasks; k++ {
			c, err := p.Encode(seg, k, LowestPenalty)
			if err != nil {
				t.Fatal(err)
			}
			if c.Mask != k || c.Penalties != nil {
				t.Errorf("version %d mask %v: got mask %v penalties %v",
					v, k, c.Mask, c.Penalties)
			}
			d, err := readCode(c, v)
			if err != nil {
				t.Errorf("version %d mask %v: read: %v", v, k, err)
				continue
			}
			if d.Mask != k || d.Level != Q || d.Seg != seg {
				t.Errorf("version %d mask %v: read %+v", v, k, *d)
			}
		}
	}
}

// TestMaskSelection checks the chosen mask against penalties computed
// one mask at a time.
func TestMaskSelection(t *testing.T) {
	for _, tt := range []struct {
		text string
		v    Version
		l    Level
	}{
		{"01234567", 1, M},
		{"HELLO WORLD", 2, H},
		{"mailto:someone@example.com", 4, L},
		{strings.Repeat("QR", 100), 10, Q},
	} {
		seg, err := NewSegment(tt.text, Auto, false)
		if err != nil {
			t.Fatal(err)
		}
		p, err := NewPlan(tt.v, tt.l)
		if err != nil {
			t.Fatal(err)
		}
		c, err := p.Encode(seg, AutoMask, LowestPenalty)
		if err != nil {
			t.Fatal(err)
		}
		best := Mask(0)
		var pen [NumMasks]int
		for k := Mask(0); k < NumMasks; k++ {
			one, err := p.Encode(seg, k, LowestPenalty)
			if err != nil {
				t.Fatal(err)
			}
			m := p.Matrix()
			for row := 0; row < m.Size; row++ {
				for col := 0; col < m.Size; col++ {
					m.set(row, col, one.Black(col, row))
				}
			}
			if pen[k] = m.Penalty(); pen[k] < pen[best] {
				best = k
			}
		}
		if c.Mask != best || !reflect.DeepEqual(c.Penalties, pen[:]) {
			t.Errorf("%.20q: mask %v penalties %v; want %v %v",
				tt.text, c.Mask, c.Penalties, best, pen)
		}
		b, err := p.Encode(seg, AutoMask, ScannerBias)
		if err != nil {
			t.Fatal(err)
		}
		if want := ScannerBias.Choose(&pen); b.Mask != want {
			t.Errorf("%.20q: scanner bias chose %v, want %v", tt.text, b.Mask, want)
		}
	}
}

func TestPlanErrors(t *testing.T) {
	if _, err := NewPlan(0, L); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("version 0: %v", err)
	}
	if _, err := NewPlan(41, L); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("version 41: %v", err)
	}
	if _, err := NewPlan(1, Level(-1)); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("level -1: %v", err)
	}
	p, err := NewPlan(1, H)
	if err != nil {
		t.Fatal(err)
	}
	if q, _ := NewPlan(1, H); q != p {
		t.Error("plans are not cached")
	}
	seg := Segment{strings.Repeat("1", 18), Numeric}
	if _, err := p.Encode(seg, AutoMask, LowestPenalty); !errors.Is(err, ErrPayloadTooLarge) {
		t.Errorf("18 digits at 1-H: %v", err)
	}
	var ce *CapacityError
	if _, err := p.Encode(seg, AutoMask, LowestPenalty); !errors.As(err, &ce) ||
		ce.Bits != 4+10+60 || ce.Max != 72 {
		t.Errorf("18 digits at 1-H: %v", err)
	}
	for _, k := range []Mask{-2, 8} {
		if _, err := p.Encode(Segment{"1", Numeric}, k, LowestPenalty); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("mask %d: %v", k, err)
		}
	}
	if _, err := p.Encode(Segment{"1", Numeric}, AutoMask, MaskPolicy(9)); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("policy 9: %v", err)
	}
}

func BenchmarkEncode(b *testing.B) {
	seg := Segment{strings.Repeat("0123456789", 50), Numeric}
	for i := 0; i < b.N; i++ {
		if _, err := Encode(12, M, seg); err != nil {
			b.Fatal(err)
		}
	}
}
