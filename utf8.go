package headlessterm

import "unicode/utf8"

// utf8Decoder incrementally decodes a UTF-8 byte stream one byte at a time,
// so a multi-byte sequence split across two Feed/Write calls still decodes
// correctly instead of producing a spurious replacement character at the
// chunk boundary.
//
// Lead bytes are classified by prefix among {0xxxxxxx, 110xxxxx, 1110xxxx,
// 11110xxx}; continuation bytes must match 10xxxxxx. Surrogate code points
// and overlong encodings are rejected. On any failure the decoder reports
// U+FFFD and resynchronizes by re-examining the unconsumed bytes, advancing
// by exactly the invalid prefix's length (size 1 for a bad lead byte).
type utf8Decoder struct {
	buf [utf8.UTFMax]byte
	n   int
}

// push appends one input byte and returns every code point that became
// decodable as a result (zero, one, or — after resynchronizing past
// invalid bytes — more than one).
func (d *utf8Decoder) push(b byte) []rune {
	if d.n >= len(d.buf) {
		// Defensive: should be unreachable since FullRune always resolves
		// within utf8.UTFMax bytes, but never grow past the buffer.
		d.n = 0
	}
	d.buf[d.n] = b
	d.n++

	var out []rune
	for d.n > 0 && utf8.FullRune(d.buf[:d.n]) {
		r, size := utf8.DecodeRune(d.buf[:d.n])
		out = append(out, r)
		copy(d.buf[:], d.buf[size:d.n])
		d.n -= size
	}
	return out
}

// decodeUTF8 decodes a single code point from the start of p, returning the
// code point and the number of bytes consumed. On invalid input it returns
// U+FFFD and a length of 1, per the codec's error-handling rule.
func decodeUTF8(p []byte) (rune, int) {
	if len(p) == 0 {
		return utf8.RuneError, 0
	}
	r, size := utf8.DecodeRune(p)
	return r, size
}

// encodeUTF8 returns the UTF-8 encoding of r. Surrogate code points, which
// have no valid encoding, produce the replacement character's encoding.
func encodeUTF8(r rune) []byte {
	return utf8.AppendRune(nil, r)
}
