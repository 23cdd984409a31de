// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"fmt"
	"regexp"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// A Mode is a QR segment encoding mode.
type Mode int

// Encoding modes.
const (
	Numeric      Mode = iota // digits, 3 per 10 bits
	Alphanumeric             // 45 character set, 2 per 11 bits
	Byte                     // any data, 8 bits per byte
	Kanji                    // not implemented, encoded as Byte
)

func (m Mode) String() string {
	switch m {
	case Numeric:
		return "numeric"
	case Alphanumeric:
		return "alphanumeric"
	case Byte:
		return "byte"
	case Kanji:
		return "kanji"
	}
	return strconv.Itoa(int(m))
}

// encoding returns the mode used to encode a segment of mode m.
// Kanji falls through to Byte.
func (m Mode) encoding() Mode {
	if m == Kanji {
		return Byte
	}
	return m
}

// Indicator returns the 4 bit mode indicator.
func (m Mode) Indicator() uint32 {
	switch m.encoding() {
	case Numeric:
		return 0b0001
	case Alphanumeric:
		return 0b0010
	case Byte:
		return 0b0100
	}
	panic("qr: invalid mode " + m.String())
}

// CountLength returns the length in bits of the character count
// indicator for mode m at version v.
func (m Mode) CountLength(v Version) int {
	class := v.SizeClass()
	switch m.encoding() {
	case Numeric:
		return [3]int{10, 12, 14}[class]
	case Alphanumeric:
		return [3]int{9, 11, 13}[class]
	case Byte:
		return [3]int{8, 16, 16}[class]
	}
	panic("qr: invalid mode " + m.String())
}

// payloadLength returns the length in bits of n characters encoded
// in mode m, excluding the header.
func (m Mode) payloadLength(n int) int {
	switch m.encoding() {
	case Numeric:
		return n/3*10 + [3]int{0, 4, 7}[n%3]
	case Alphanumeric:
		return n/2*11 + n%2*6
	}
	return n * 8
}

const alphamask uint64 = 0x07fffffe_07ffec31 // SPACE $% *+ -./ [0-9] : [A-Z]

// Alphanumeric encoding table.  Used after validation.
// "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"
var alpha = [64]byte{
	00, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, // 0x40
	25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 00, 00, 00, 00, 00, // 0x50
	36, 00, 00, 00, 37, 38, 00, 00, 00, 00, 39, 40, 00, 41, 42, 43, // 0x20
	00, 01, 02, 03, 04, 05, 06, 07, 010, 9, 44, 00, 00, 00, 00, 00, // 0x30
}

func isDigit(c byte) bool { return c-'0' < 10 }

func isAlpha(c byte) bool {
	return c >= ' ' && c < ' '+64 && alphamask>>(c-' ')&1 != 0
}

// toUpper folds ASCII lower case letters to upper case.
func toUpper(c byte) byte {
	if c-'a' < 26 {
		c -= 'a' - 'A'
	}
	return c
}

// Analyze returns the narrowest mode able to encode text: Numeric if
// every character is a digit, Alphanumeric if every character belongs
// to the 45 character set, otherwise Byte.  Unless exactCase is set,
// letters are matched against the alphanumeric set case-insensitively.
// The empty string is Numeric.
func Analyze(text string, exactCase bool) Mode {
	m := Numeric
	for i := 0; i < len(text); i++ {
		c := text[i]
		if isDigit(c) {
			continue
		}
		if !exactCase {
			c = toUpper(c)
		}
		if !isAlpha(c) {
			return Byte
		}
		m = Alphanumeric
	}
	return m
}

// A Charset selects the byte mode character encoding.
type Charset int

const (
	// Auto encodes text as UTF-8 if it contains code points above
	// U+00FF or looks like web content (URL, mailto:, tel:, sms:
	// prefix or an e-mail address), otherwise as ISO 8859-1.
	Auto Charset = iota

	// Latin1 encodes text as ISO 8859-1, rejecting code points above
	// U+00FF.
	Latin1

	// UTF8 encodes text as UTF-8.
	UTF8
)

func (c Charset) String() string {
	switch c {
	case Auto:
		return "auto"
	case Latin1:
		return "latin-1"
	case UTF8:
		return "utf-8"
	}
	return strconv.Itoa(int(c))
}

// IsValid reports whether c is a defined Charset.
func (c Charset) IsValid() bool { return Auto <= c && c <= UTF8 }

var webContent = regexp.MustCompile(
	`(?i)^(?:https?://|mailto:|tel:|smsto:|sms:)|[^\s@]+@[^\s@.]+\.[^\s@]`)

// IsWebContent reports whether text looks like a URL, a mailto:,
// tel: or sms: link, or contains an e-mail address.
func IsWebContent(text string) bool { return webContent.MatchString(text) }

// encodeBytes returns text encoded for byte mode according to c.
func (c Charset) encodeBytes(text string) (string, error) {
	if c == Auto {
		c = Latin1
		if IsWebContent(text) {
			c = UTF8
		} else {
			for _, r := range text {
				if r > 0xff {
					c = UTF8
					break
				}
			}
		}
	}
	switch c {
	case Latin1:
		for i, r := range text {
			// Invalid UTF-8 decodes as U+FFFD.
			if r > 0xff {
				return "", &CharacterError{r, i, c}
			}
		}
		s, err := charmap.ISO8859_1.NewEncoder().String(text)
		if err != nil {
			return "", &CharacterError{utf8.RuneError, 0, c}
		}
		return s, nil
	case UTF8:
		if !utf8.ValidString(text) {
			i := 0
			for i < len(text) {
				r, sz := utf8.DecodeRuneInString(text[i:])
				if r == utf8.RuneError && sz == 1 {
					break
				}
				i += sz
			}
			return "", &CharacterError{utf8.RuneError, i, c}
		}
		return text, nil
	}
	return "", &ConfigError{"charset", int(c)}
}

// A Segment describes a QR code segment: data ready for encoding in
// the given mode.  Numeric text consists of digits, Alphanumeric text
// of the 45 character set in upper case, Byte text of arbitrary bytes.
type Segment struct {
	Text string // data to encode
	Mode Mode   // encoding mode
}

// NewSegment analyzes text and returns a segment encoding it in the
// narrowest mode.  Byte mode text is encoded according to cs.
func NewSegment(text string, cs Charset, exactCase bool) (Segment, error) {
	if !cs.IsValid() {
		return Segment{}, &ConfigError{"charset", int(cs)}
	}
	switch m := Analyze(text, exactCase); m {
	case Alphanumeric:
		if !exactCase {
			b := []byte(text)
			for i, c := range b {
				b[i] = toUpper(c)
			}
			text = string(b)
		}
		return Segment{text, m}, nil
	case Byte:
		s, err := cs.encodeBytes(text)
		if err != nil {
			return Segment{}, err
		}
		return Segment{s, m}, nil
	default:
		return Segment{text, m}, nil
	}
}

// SegmentError represents an invalid Segment.
type SegmentError Segment

func (e SegmentError) Error() string {
	return "qr: non-" + e.Mode.String() + " string " + strconv.Quote(e.Text)
}

func (e SegmentError) Unwrap() error { return ErrUnsupportedCharacter }

// IsValid reports whether seg is encodable.
func (seg Segment) IsValid() bool {
	var is func(byte) bool
	switch seg.Mode.encoding() {
	case Numeric:
		is = isDigit
	case Alphanumeric:
		is = isAlpha
	case Byte:
		return true
	default:
		return false
	}
	for i := 0; i < len(seg.Text); i++ {
		if !is(seg.Text[i]) {
			return false
		}
	}
	return true
}

// EncodedLength returns the encoded length in bits of seg at version
// v, including mode indicator and character count.
func (seg Segment) EncodedLength(v Version) int {
	return 4 + seg.Mode.CountLength(v) + seg.Mode.payloadLength(len(seg.Text))
}

// fits reports whether the character count of seg fits its count
// indicator at version v.
func (seg Segment) fits(v Version) bool {
	return len(seg.Text) < 1<<seg.Mode.CountLength(v)
}

// Encode writes seg encoded for version v to b.
func (seg Segment) Encode(b *Bits, v Version) error {
	if !seg.IsValid() {
		return SegmentError(seg)
	}
	if !seg.fits(v) {
		return fmt.Errorf("%w: %d characters overflow %s count "+
			"indicator at version %d", ErrPayloadTooLarge,
			len(seg.Text), seg.Mode, v)
	}
	m := seg.Mode
	s := seg.Text
	b.Write(m.Indicator(), 4)
	b.Write(uint32(len(s)), m.CountLength(v))
	switch m.encoding() {
	case Numeric:
		for ; len(s) >= 3; s = s[3:] {
			b.Write(uint32(s[0]-'0')*100+uint32(s[1]-'0')*10+
				uint32(s[2]-'0'), 10)
		}
		switch len(s) {
		case 2:
			b.Write(uint32(s[0]-'0')*10+uint32(s[1]-'0'), 7)
		case 1:
			b.Write(uint32(s[0]-'0'), 4)
		}
	case Alphanumeric:
		for ; len(s) >= 2; s = s[2:] {
			b.Write(uint32(alpha[s[0]&0x3f])*45+
				uint32(alpha[s[1]&0x3f]), 11)
		}
		if len(s) == 1 {
			b.Write(uint32(alpha[s[0]&0x3f]), 6)
		}
	default:
		for i := 0; i < len(s); i++ {
			b.Write(uint32(s[i]), 8)
		}
	}
	return nil
}

// Resolve returns the smallest version, not below min, whose data
// capacity at level l holds seg.
func Resolve(seg Segment, l Level, min Version) (Version, error) {
	if !l.IsValid() {
		return 0, &ConfigError{"level", int(l)}
	}
	if !seg.IsValid() {
		return 0, SegmentError(seg)
	}
	if min == 0 {
		min = MinVersion
	} else if !min.IsValid() {
		return 0, &ConfigError{"version", int(min)}
	}
	for v := min; v <= MaxVersion; v++ {
		if seg.fits(v) && seg.EncodedLength(v) <= v.DataBits(l) {
			return v, nil
		}
	}
	return 0, &CapacityError{seg.EncodedLength(MaxVersion),
		MaxVersion.DataBits(l), l}
}

// String returns a short description of seg, for logging.
func (seg Segment) String() string {
	return seg.Mode.String() + "[" + strconv.Itoa(len(seg.Text)) + "]"
}
