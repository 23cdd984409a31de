// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

/*
Minimal PNG Encoder

The image is an 8-bit RGBA raster, one filter-less scanline per pixel
row, wrapped in a zlib stream of stored (uncompressed) DEFLATE blocks
in a single IDAT chunk.  Output size is about 4 bytes per pixel; in
exchange the encoder is trivial and the output byte-for-byte
predictable.
*/

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"image"
	"io"

	"golang.org/x/image/draw"
)

// MaxImageSize is the largest image side in pixels Render accepts.
const MaxImageSize = 1 << 14

// PNG returns a PNG image displaying the code at c.Scale with a quiet
// zone of c.Border QR pixels.  PNG returns nil if Render fails.
func (c *Code) PNG() []byte {
	b, err := Render(c, c.Scale, c.Border)
	if err != nil {
		return nil
	}
	return b
}

// EncodePNG writes a PNG image displaying the code to w.
func (c *Code) EncodePNG(w io.Writer) error {
	b, err := Render(c, c.Scale, c.Border)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// Render returns a PNG image of c with every QR pixel drawn as a
// scale×scale square and a quiet zone of border QR pixels on each
// side.  The colours are those of c.Palette and c.Reverse.
func Render(c *Code, scale, border int) ([]byte, error) {
	img, err := c.raster(scale, border)
	if err != nil {
		return nil, err
	}
	side := img.Rect.Dx()
	var w pngWriter
	w.buf.Grow(side*(side*4+1) + side*(side*4+1)/maxStored*5 + 128)

	// Header
	w.buf.WriteString(pngHeader)

	// Header block
	binary.BigEndian.PutUint32(w.tmp[0:4], uint32(side))
	binary.BigEndian.PutUint32(w.tmp[4:8], uint32(side))
	w.tmp[8] = 8  // 8-bit
	w.tmp[9] = 6  // RGBA
	w.tmp[10] = 0 // deflate
	w.tmp[11] = 0 // adaptive filtering
	w.tmp[12] = 0 // no interlace
	w.writeChunk("IHDR", w.tmp[:13])

	// Data
	w.startChunk("IDAT")
	w.writeImage(img)
	w.endChunk()

	// End
	w.writeChunk("IEND", nil)

	Logger().Debug("qr: png", "code", c, "scale", scale,
		"border", border, "side", side, "bytes", w.buf.Len())
	return w.buf.Bytes(), nil
}

// check reports whether c can be drawn at scale with border.
func (c *Code) check(scale, border int) error {
	switch {
	case !c.isValid():
		return fmt.Errorf("%w: malformed code", ErrInvalidConfiguration)
	case scale < 1:
		return &ConfigError{Param: "scale", Value: scale}
	case border < 0:
		return &ConfigError{Param: "border", Value: border}
	case border > MaxImageSize || (c.Size+2*border) > MaxImageSize/scale:
		return ErrLargeImage
	}
	return nil
}

// raster returns an image of c with every QR pixel drawn as a
// scale×scale square and a quiet zone of border QR pixels.
func (c *Code) raster(scale, border int) (*image.RGBA, error) {
	if err := c.check(scale, border); err != nil {
		return nil, err
	}
	pal := c.colors()
	n := c.Size + 2*border
	mod := image.NewRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			v := pal[0]
			if c.Black(x-border, y-border) {
				v = pal[1]
			}
			mod.SetRGBA(x, y, v)
		}
	}
	if scale == 1 {
		return mod, nil
	}
	// Nearest neighbour is exact at integer scales.
	img := image.NewRGBA(image.Rect(0, 0, n*scale, n*scale))
	draw.NearestNeighbor.Scale(img, img.Rect, mod, mod.Rect, draw.Src, nil)
	return img, nil
}

// A pngWriter is a writer for PNG and zlib.
type pngWriter struct {
	buf     bytes.Buffer
	tmp     [16]byte
	adler32 adigest
	start   int
}

const pngHeader = "\x89PNG\r\n\x1a\n"

// zlib stream parameters.
const (
	zlibHeader = "\x78\x01" // deflate, 32K window, no dictionary, fastest
	maxStored  = 0xffff     // maximum stored block length
)

func (w *pngWriter) writeChunk(name string, data []byte) {
	w.startChunk(name)
	w.buf.Write(data)
	w.endChunk()
}

// startChunk starts a chunk.  The name is written twice, the first
// copy is overwritten by the length.
func (w *pngWriter) startChunk(name string) {
	w.start = w.buf.Len()
	w.buf.WriteString(name)
	w.buf.WriteString(name)
}

func (w *pngWriter) endChunk() {
	b := w.buf.Bytes()[w.start:]
	binary.BigEndian.PutUint32(b, uint32(len(b)-8))
	binary.BigEndian.PutUint32(w.tmp[0:4], crc32.ChecksumIEEE(b[4:]))
	w.buf.Write(w.tmp[0:4])
}

// writeImage writes the zlib stream of img: the header, scanlines
// with filter type 0 in stored blocks, and the Adler-32 checksum of
// the scanlines.
func (w *pngWriter) writeImage(img *image.RGBA) {
	side := img.Rect.Dx()
	rowLen := 1 + side*4
	raw := make([]byte, side*rowLen)
	for y := 0; y < side; y++ {
		row := raw[y*rowLen : (y+1)*rowLen]
		row[0] = 0 // filter: none
		unpremultiply(row[1:], img.Pix[y*img.Stride:])
	}
	w.adler32.Reset()
	w.adler32.Write(raw)

	w.buf.WriteString(zlibHeader)
	for {
		n := min(len(raw), maxStored)
		w.tmp[0] = 0 // BFINAL=0, BTYPE=00
		if n == len(raw) {
			w.tmp[0] = 1
		}
		binary.LittleEndian.PutUint16(w.tmp[1:3], uint16(n))
		binary.LittleEndian.PutUint16(w.tmp[3:5], ^uint16(n))
		w.buf.Write(w.tmp[:5])
		w.buf.Write(raw[:n])
		if raw = raw[n:]; len(raw) == 0 {
			break
		}
	}
	binary.BigEndian.PutUint32(w.tmp[0:4], w.adler32.Sum32())
	w.buf.Write(w.tmp[0:4])
}

// unpremultiply converts premultiplied RGBA pixels from src to
// non-premultiplied in dst, as PNG requires.
func unpremultiply(dst, src []byte) {
	copy(dst, src)
	for i := 0; i+3 < len(dst); i += 4 {
		switch a := uint32(dst[i+3]); a {
		case 0xff:
		case 0:
			dst[i], dst[i+1], dst[i+2] = 0, 0, 0
		default:
			for j := i; j < i+3; j++ {
				dst[j] = byte(uint32(dst[j]) * 0xff / a)
			}
		}
	}
}

// adigest is an Adler-32 digest.
type adigest struct {
	a, b uint32
}

func (d *adigest) Reset() { d.a, d.b = 1, 0 }

const (
	amod = 65521 // largest prime below 65536
	nmax = 5552  // bytes summed before b overflows 32 bits
)

func (d *adigest) Write(p []byte) {
	// invariant: a, b < amod between blocks
	for len(p) > 0 {
		n := min(len(p), nmax)
		for _, pi := range p[:n] {
			d.a += uint32(pi)
			d.b += d.a
		}
		d.a %= amod
		d.b %= amod
		p = p[n:]
	}
}

func (d *adigest) Sum32() uint32 { return d.b<<16 | d.a }
