// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qr encodes QR codes and writes them as PNG images.

Text is encoded as a single segment in the narrowest mode able to hold
it: numeric, alphanumeric or byte.  The smallest version (1 to 40)
holding the segment at the requested error correction level is used,
and the mask is chosen by penalty score.
*/
package qr // import "github.com/unixdj/qrpng"

import (
	"image"
	"image/color"
	"log/slog"
	"strings"

	"github.com/unixdj/qrpng/coding"
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 20% redundant
	M              // 38% redundant
	Q              // 55% redundant
	H              // 65% redundant
)

func (l Level) String() string { return coding.Level(l).String() }

type (
	// A Mode is a segment encoding mode.
	Mode = coding.Mode

	// A Charset selects the byte mode character encoding.
	Charset = coding.Charset

	// A MaskPolicy selects a mask given the penalties of all eight.
	MaskPolicy = coding.MaskPolicy
)

// Encoding modes.
const (
	Numeric      = coding.Numeric
	Alphanumeric = coding.Alphanumeric
	Byte         = coding.Byte
)

// Byte mode character encodings.
const (
	Auto   = coding.Auto   // UTF-8 for web content or non-Latin-1 text
	Latin1 = coding.Latin1 // ISO 8859-1
	UTF8   = coding.UTF8   // UTF-8
)

// Mask policies.
const (
	LowestPenalty = coding.LowestPenalty
	ScannerBias   = coding.ScannerBias
)

// Options configures EncodeOptions.
type Options struct {
	Level      Level      // error correction level
	FixedMask  bool       // apply Mask instead of choosing one
	Mask       int        // mask pattern, 0 to 7, if FixedMask is set
	Policy     MaskPolicy // mask selection policy
	Charset    Charset    // byte mode character encoding
	ExactCase  bool       // do not fold lower case into alphanumeric mode
	MinVersion int        // smallest version to use; 0 means 1
}

// DefaultOptions are the options used by Encode, apart from Level.
var DefaultOptions = Options{Level: M}

// Image defaults.
const (
	DefaultScale  = 8 // image pixels per module
	DefaultBorder = 4 // quiet zone modules
)

// Encode returns an encoding of text at the given error correction level.
func Encode(text string, level Level) (*Code, error) {
	opt := DefaultOptions
	opt.Level = level
	return EncodeOptions(text, opt)
}

// EncodeOptions returns an encoding of text according to opt.
// Invalid options are rejected with an error matching
// ErrInvalidConfiguration before any encoding is done.
func EncodeOptions(text string, opt Options) (*Code, error) {
	l := coding.Level(opt.Level)
	if !l.IsValid() {
		return nil, &ConfigError{Param: "level", Value: int(opt.Level)}
	}
	mask := coding.AutoMask
	if opt.FixedMask {
		if mask = coding.Mask(opt.Mask); !mask.IsValid() {
			return nil, &ConfigError{Param: "mask", Value: opt.Mask}
		}
	}
	if !opt.Policy.IsValid() {
		return nil, &ConfigError{Param: "mask policy", Value: int(opt.Policy)}
	}
	minv := coding.Version(opt.MinVersion)
	if minv != 0 && !minv.IsValid() {
		return nil, &ConfigError{Param: "version", Value: opt.MinVersion}
	}

	seg, err := coding.NewSegment(text, opt.Charset, opt.ExactCase)
	if err != nil {
		return nil, err
	}
	v, err := coding.Resolve(seg, l, minv)
	if err != nil {
		return nil, err
	}
	p, err := coding.NewPlan(v, l)
	if err != nil {
		return nil, err
	}
	log := Logger()
	log.Debug("qr: segment", "mode", seg.Mode, "length", len(seg.Text),
		"bits", seg.EncodedLength(v), "capacity", p.DataBits,
		"version", int(v), "level", l)
	cc, err := p.Encode(seg, mask, opt.Policy)
	if err != nil {
		return nil, err
	}
	if cc.Penalties != nil {
		log.Debug("qr: mask", "mask", int(cc.Mask),
			"policy", opt.Policy, "penalties", cc.Penalties)
	}

	return &Code{
		Bitmap:  cc.Bitmap,
		Size:    cc.Size,
		Stride:  cc.Stride,
		Scale:   DefaultScale,
		Border:  DefaultBorder,
		Version: int(v),
		Level:   opt.Level,
		Mode:    seg.Mode,
		Mask:    int(cc.Mask),
	}, nil
}

// A Code is a square pixel grid.
// It implements image.Image and direct PNG encoding.
type Code struct {
	Bitmap []byte // 1 is black, 0 is white
	Size   int    // number of pixels on a side
	Stride int    // number of bytes per row
	Scale  int    // number of image pixels per QR pixel
	Border int    // quiet zone width in QR pixels

	// Palette holds background and foreground colours, white and
	// black if nil.  Reverse swaps them.
	Palette *[2]color.Color
	Reverse bool

	Version int   // QR version
	Level   Level // error correction level
	Mode    Mode  // segment encoding mode
	Mask    int   // mask pattern
}

// Black returns true if the pixel at (x,y) is black.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Bitmap[y*c.Stride+x/8]&(1<<uint(7&^x)) != 0
}

// isValid reports whether c holds a bitmap of its size.
func (c *Code) isValid() bool {
	return c != nil && c.Size > 0 && c.Stride >= (c.Size+7)>>3 &&
		len(c.Bitmap) >= c.Size*c.Stride
}

// colors returns the background and foreground colours of c.
func (c *Code) colors() [2]color.RGBA {
	pal := [2]color.RGBA{{0xff, 0xff, 0xff, 0xff}, {0x00, 0x00, 0x00, 0xff}}
	if c.Palette != nil {
		for i, v := range c.Palette {
			if v != nil {
				pal[i] = color.RGBAModel.Convert(v).(color.RGBA)
			}
		}
	}
	if c.Reverse {
		pal[0], pal[1] = pal[1], pal[0]
	}
	return pal
}

// Image returns an Image displaying the code at c.Scale with a quiet
// zone of c.Border.
func (c *Code) Image() image.Image {
	pal := c.colors()
	return &codeImage{c, max(c.Scale, 1), c.Border, [2]color.Color{pal[0], pal[1]}}
}

// codeImage implements image.Image
type codeImage struct {
	*Code
	scale  int
	border int
	pal    [2]color.Color
}

func (c *codeImage) Bounds() image.Rectangle {
	d := (c.Size + 2*c.border) * c.scale
	return image.Rect(0, 0, d, d)
}

func (c *codeImage) At(x, y int) color.Color {
	if x >= 0 && y >= 0 && c.Black(x/c.scale-c.border, y/c.scale-c.border) {
		return c.pal[1]
	}
	return c.pal[0]
}

func (c *codeImage) ColorModel() color.Model {
	return color.RGBAModel
}

// String returns the code with its quiet zone as text for a terminal,
// two QR pixels per character cell.  White pixels are drawn with block
// elements, so that on a dark background the code reads right; with
// c.Reverse black pixels are drawn instead.
func (c *Code) String() string {
	bord := c.Border
	draw := func(x, y int) bool {
		return y < c.Size+bord && c.Black(x, y) == c.Reverse
	}
	var b strings.Builder
	for y := -bord; y < c.Size+bord; y += 2 {
		for x := -bord; x < c.Size+bord; x++ {
			switch top, bot := draw(x, y), draw(x, y+1); {
			case top && bot:
				b.WriteString("█")
			case top:
				b.WriteString("▀")
			case bot:
				b.WriteString("▄")
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// LogValue implements slog.LogValuer.
func (c *Code) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("version", c.Version),
		slog.String("level", c.Level.String()),
		slog.String("mode", c.Mode.String()),
		slog.Int("mask", c.Mask),
		slog.Int("size", c.Size))
}
