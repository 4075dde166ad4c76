package base64

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
)

const (
	StdPadding = base64.StdPadding // standard padding '='
	NoPadding  = base64.NoPadding  // no padding
)

var (
	// ErrCorrupt is returned by the canonical codec when the
	// Base64-encoded input is incorrect.
	ErrCorrupt = errors.New("base64: input is corrupt")

	// ErrInvalidArg is returned by Encode when a required buffer
	// is absent.
	ErrInvalidArg = errors.New("base64: missing required argument")

	// ErrOverflow is returned by Encode when the output buffer
	// cannot hold the encoded text and its sentinel.
	ErrOverflow = errors.New("base64: output buffer too small")
)

// Mode selects the decoding policy applied to bytes outside the
// Base64 alphabet.
//
// The set is closed and the values are stable: callers on the far
// side of a language boundary pass them as plain integers.
type Mode int

const (
	// ModeRFC2045 skips any byte outside the alphabet and keeps
	// decoding from the next byte, per RFC 2045 section 6.8. Padding
	// is validated loosely. For example:
	//
	//	"Zm9vYmFy"      -> "foobar"
	//	"Zm 9v Ym Fy"   -> "foobar"   spaces are ignored
	//	"Zm$9vYm.Fy"    -> "foobar"   as is any other junk
	ModeRFC2045 Mode = iota

	// ModeStrict rejects the whole input if any character outside
	// the canonical alphabet appears or the padding is irregular.
	ModeStrict

	// ModeRFC4648 stops at the first byte outside the alphabet and
	// keeps what was decoded up to that point. For example:
	//
	//	"Zm9vYmFy"      -> "foobar"
	//	"Zm 9v Ym Fy"   -> "f"        decoding stops at the space
	//	"Zm$9vYm.Fy"    -> "f"        likewise at the '$'
	ModeRFC4648

	// ModeNoPad is ModeStrict with the padding character excluded
	// from the alphabet entirely; input not a multiple of four
	// characters is accepted.
	ModeNoPad

	// ModePadOpt is ModeStrict with trailing padding optional:
	// canonically padded and fully unpadded input are both accepted.
	// Decode only.
	ModePadOpt
)

func (m Mode) String() string {
	switch m {
	case ModeRFC2045:
		return "rfc2045"
	case ModeStrict:
		return "strict"
	case ModeRFC4648:
		return "rfc4648"
	case ModeNoPad:
		return "nopad"
	case ModePadOpt:
		return "padopt"
	}
	return "unknown"
}

// Decode decodes src into dst according to mode and returns the
// number of bytes written.
//
// Decode never fails loudly: malformed input is reported as a short
// (possibly zero) byte count covering whatever was decoded before the
// stopping point. dst should be at least DecodeBufferSize(len(src))
// bytes long; whatever its size, Decode never writes past len(dst).
func Decode(dst, src []byte, mode Mode) int {
	if len(src) == 0 {
		return 0
	}
	var n int
	switch mode {
	case ModeRFC2045:
		n = decodeRFC2045(dst, src)
	case ModeRFC4648:
		n = decodeRFC4648(dst, src)
	case ModeStrict:
		n = decodeStrict(dst, src, StdPadding)
	case ModeNoPad:
		n = decodeStrict(dst, src, NoPadding)
	case ModePadOpt:
		// Canonically padded input ends in '='; everything else
		// must decode cleanly without padding.
		if src[len(src)-1] == byte(StdPadding) {
			n = decodeStrict(dst, src, StdPadding)
		} else {
			n = decodeStrict(dst, src, NoPadding)
		}
	}
	// Decoding strictly shrinks, so the count can never reach the
	// input length. Reaching it means the accounting above is wrong,
	// which is a memory-safety bug, not a data error.
	if n >= len(src) {
		panic("base64: decoded count not below input length")
	}
	return n
}

// decodeStrict runs the canonical all-or-nothing decoder, collapsing
// its error to a zero count.
func decodeStrict(dst, src []byte, padChar rune) int {
	n, err := decodeCanonical(dst, src, padChar)
	if err != nil {
		return 0
	}
	return n
}

// Encode encodes src into dst using the canonical alphabet, padded
// unless mode is ModeNoPad, and appends a single NUL sentinel byte
// after the encoded text.
//
// It returns the encoded length excluding the sentinel. If dst cannot
// hold the text plus the sentinel, Encode returns ErrOverflow and
// writes nothing.
func Encode(dst, src []byte, mode Mode) (int, error) {
	if dst == nil {
		return 0, ErrInvalidArg
	}
	padChar := rune(StdPadding)
	if mode == ModeNoPad {
		padChar = NoPadding
	}
	n := encodedLen(len(src), padChar)
	if n+1 > len(dst) {
		return 0, ErrOverflow
	}
	encodeCanonical(dst, src, padChar)
	dst[n] = 0
	return n, nil
}

// DecodeBufferSize returns an output capacity sufficient for decoding
// n input bytes under any mode: three bytes for every four input
// characters, rounded up. Skipped or rejected characters only shrink
// the output, so the bound never under-estimates.
func DecodeBufferSize(n uint32) uint32 {
	return uint32((uint64(n) + 3) / 4 * 3)
}

// EncodeBufferSize returns the capacity needed to encode n input
// bytes: four output bytes for every three input bytes, rounded up,
// plus one for the NUL sentinel.
func EncodeBufferSize(n uint64) uint64 {
	return (n+2)/3*4 + 1
}

func encodedLen(n int, padChar rune) int {
	if padChar == NoPadding {
		return (n*8 + 5) / 6
	}
	return (n + 2) / 3 * 4
}

func encodeCanonical(dst, src []byte, padChar rune) {
	for len(src) >= 3 {
		v := uint(src[0])<<16 | uint(src[1])<<8 | uint(src[2])
		dst[3] = lookup(v & 0x3f)
		dst[2] = lookup(v >> 6 & 0x3f)
		dst[1] = lookup(v >> 12 & 0x3f)
		dst[0] = lookup(v >> 18 & 0x3f)
		src = src[3:]
		dst = dst[4:]
	}

	switch len(src) {
	case 2:
		v := uint(src[0])<<16 | uint(src[1])<<8
		dst[2] = lookup(v >> 6 & 0x3f)
		dst[1] = lookup(v >> 12 & 0x3f)
		dst[0] = lookup(v >> 18 & 0x3f)
		if padChar != NoPadding {
			dst[3] = byte(padChar)
		}
	case 1:
		v := uint(src[0]) << 16
		dst[1] = lookup(v >> 12 & 0x3f)
		dst[0] = lookup(v >> 18 & 0x3f)
		if padChar != NoPadding {
			dst[3] = byte(padChar)
			dst[2] = byte(padChar)
		}
	}
}

// decodeCanonical decodes src into dst, writing at most
// DecodeBufferSize(len(src)) bytes.
//
// It returns the total number of bytes written to dst, even when src
// contains invalid Base64. If src contains invalid Base64 (or does
// not fit in dst), decodeCanonical returns ErrCorrupt.
func decodeCanonical(dst, src []byte, padChar rune) (n int, err error) {
	if len(src) == 0 {
		return 0, nil
	}
	switch len(src) % 4 {
	case 0:
		// OK
	case 2, 3:
		if padChar != NoPadding {
			// Padded base64 should be a multiple of 4.
			return 0, ErrCorrupt
		}
	default:
		// Even unpadded base64 only has a 2-3 character partial
		// block.
		return 0, ErrCorrupt
	}

	if padChar != NoPadding {
		var t int
		t += subtle.ConstantTimeByteEq(src[len(src)-1], byte(padChar))
		t += subtle.ConstantTimeByteEq(src[len(src)-2], byte(padChar))
		src = src[:len(src)-t]
	}

	var failed byte
	for len(src) >= 4 && len(dst)-n >= 3 {
		c0 := revLookup(uint(src[0]))
		c1 := revLookup(uint(src[1]))
		c2 := revLookup(uint(src[2]))
		c3 := revLookup(uint(src[3]))

		dst[n+0] = byte(c0<<2 | c1>>4)
		dst[n+1] = byte(c1<<4 | c2>>2)
		dst[n+2] = byte(c2<<6 | c3)

		failed |= c0 | c1 | c2 | c3

		src = src[4:]
		n += 3
	}

	switch len(src) {
	case 3:
		if len(dst)-n < 2 {
			failed |= 0xff
			break
		}
		c0 := revLookup(uint(src[0]))
		c1 := revLookup(uint(src[1]))
		c2 := revLookup(uint(src[2]))

		dst[n+0] = byte(c0<<2 | c1>>4)
		dst[n+1] = byte(c1<<4 | c2>>2)

		failed |= c0 | c1 | c2
		// Fail if any bits in [3:0] are non-zero: the input was not
		// canonically encoded.
		failed |= byte((0 - uint(c2&0x3)) >> 8)
		n += 2
	case 2:
		if len(dst)-n < 1 {
			failed |= 0xff
			break
		}
		c0 := revLookup(uint(src[0]))
		c1 := revLookup(uint(src[1]))

		dst[n+0] = byte(c0<<2 | c1>>4)

		failed |= c0 | c1
		// Fail if any bits in [4:0] are non-zero.
		failed |= byte((0 - uint(c1&0xf)) >> 8)
		n++
	case 0:
		// OK
	default:
		// Input left over: dst ran out before src did.
		failed |= 0xff
	}

	if failed&0xff == 0xff {
		err = ErrCorrupt
	}
	return
}

// lookup converts the 6-bit value c to its corresponding base64
// character.
//
// c must be in [0, 63].
//
// See http://0x80.pl/notesen/2016-01-12-sse-base64-encoding.html
func lookup(c uint) byte {
	// Start with an initial guess that c is in [0, 25], making the
	// shift 'A' (65), then adjust the shift for each higher range of
	// the alphabet. Each comparison is a borrow-propagating
	// subtraction whose sign bit selects the adjustment.
	s := uint('A')
	s += (26 - c - 1) >> 8 & 6
	s -= (52 - c - 1) >> 8 & 75
	s -= (62 - c - 1) >> 8 & 15
	s += (63 - c - 1) >> 8 & 3
	return byte(c + s)
}

// revLookup converts the base64 character c to its 6-bit binary
// value.
//
// If the character is invalid (the padding character included)
// revLookup returns 0xff.
func revLookup(c uint) (r byte) {
	// NB. This function is written like this so that the compiler
	// will inline it.

	// switch {
	// case c >= 'A' && c <= 'Z':
	//     s = -65
	// case c >= 'a' && c <= 'z'
	//     s = -71
	// case c >= '0' && c <= '9'
	//     s = 4
	// case c == '+':
	//     s = 19
	// case c == '/':
	//     s = 16
	// }
	s := ((((64 - c) & (c - 91)) >> 8) & 191) ^
		((((96 - c) & (c - 123)) >> 8) & 185) ^
		((((47 - c) & (c - 58)) >> 8) & 4) ^
		((((42 - c) & (c - 44)) >> 8) & 19) ^
		((((46 - c) & (c - 48)) >> 8) & 16)
	// If s == 0 then the input is corrupt.
	//
	// Since s is one of {0, 191, 185, 4, 19, 16}, shift off bits
	// [8:0] (which are allowed to be non-zero) and check [16:8].
	return byte((s+c)&0x3f | ((((0 - s) >> 8) & 0xff) ^ 0xff))
}
