package base64

// decoder accumulates Base64 symbols four at a time, emitting up to
// three decoded bytes per complete group. It lives on the stack for
// the duration of one Decode call.
type decoder struct {
	buf [4]byte // 6-bit symbol values
	n   int     // symbols buffered
}

// emit decodes the buffered group into dst and returns the number of
// bytes written. A full group yields three bytes; a partial group of
// k symbols is the tail of a padded or truncated block and yields
// k-1 bytes. The group is reset either way.
//
// If dst cannot hold the group, emit writes nothing and returns 0:
// dropping bytes beats writing past the caller's buffer.
func (d *decoder) emit(dst []byte) int {
	out := d.n - 1
	d.n = 0
	if out < 1 || out > len(dst) {
		d.buf = [4]byte{}
		return 0
	}

	v := uint(d.buf[0])<<18 |
		uint(d.buf[1])<<12 |
		uint(d.buf[2])<<6 |
		uint(d.buf[3])
	dst[0] = byte(v >> 16)
	if out > 1 {
		dst[1] = byte(v >> 8)
	}
	if out > 2 {
		dst[2] = byte(v)
	}

	d.buf = [4]byte{}
	return out
}

// decodeRFC2045 decodes src into dst, skipping every byte outside
// the alphabet. RFC 2045 section 6.8: all line breaks or other
// characters not found in the alphabet must be ignored by decoding
// software.
func decodeRFC2045(dst, src []byte) (n int) {
	var d decoder
	for _, c := range src {
		if c == byte(StdPadding) {
			// Loose padding: a pad mark closes the current group
			// once at least two symbols are buffered, and is
			// otherwise ignored.
			if d.n >= 2 {
				n += d.emit(dst[n:])
			}
			continue
		}
		v := revLookup(uint(c))
		if v == 0xff {
			continue
		}
		d.buf[d.n] = v
		d.n++
		if d.n == 4 {
			w := d.emit(dst[n:])
			if w == 0 {
				// Out of output space.
				return n
			}
			n += w
		}
	}
	// A trailing partial group decodes best effort.
	n += d.emit(dst[n:])
	return n
}

// decodeRFC4648 decodes src into dst until the first byte outside
// the alphabet. Padding legitimately ends the data; anything else
// outside the alphabet means the remainder cannot be trusted. Either
// way the buffered group is flushed and decoding stops, so the caller
// still gets every byte up to the stopping point.
func decodeRFC4648(dst, src []byte) (n int) {
	var d decoder
	for _, c := range src {
		v := revLookup(uint(c))
		if v == 0xff {
			n += d.emit(dst[n:])
			return n
		}
		d.buf[d.n] = v
		d.n++
		if d.n == 4 {
			w := d.emit(dst[n:])
			if w == 0 {
				return n
			}
			n += w
		}
	}
	n += d.emit(dst[n:])
	return n
}
