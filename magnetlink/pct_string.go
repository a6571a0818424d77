package magnetlink

import (
	"bytes"
	"strings"
)

// PctString is a non-owning view of a percent-encoded string.
//
// Decoding is lazy: comparisons against literal strings decode on the fly,
// byte by byte, and never materialize the decoded content. The decoded form
// is only built when explicitly requested with Decode or DecodeInto.
//
// Only percent escapes are decoded; '+' is kept verbatim, it does not stand
// for a space in the components magnet links care about.
type PctString struct {
	raw string
}

// NewPctString creates a PctString viewing the given percent-encoded text.
func NewPctString(raw string) PctString {
	return PctString{raw: raw}
}

// Raw returns the percent-encoded text as-is.
func (s PctString) Raw() string {
	return s.raw
}

// IsEmpty reports whether the view contains no characters.
func (s PctString) IsEmpty() bool {
	return s.raw == ""
}

// EqualDecoded reports whether the decoded content equals lit.
//
// The comparison is lazy; it also holds when the underlying text spells the
// same content with percent escapes, e.g. "%78%74" equals "xt". A malformed
// escape never equals anything.
func (s PctString) EqualDecoded(lit string) bool {
	i, j := 0, 0

	for i < len(s.raw) {
		b, next, ok := nextDecodedByte(s.raw, i)
		if !ok {
			return false
		}

		if j >= len(lit) || b != lit[j] {
			return false
		}

		i, j = next, j+1
	}

	return j == len(lit)
}

// Decode returns the decoded content.
// Returns ErrInvalidPctEncoding if the text contains a malformed escape.
func (s PctString) Decode() (string, error) {
	if !strings.ContainsRune(s.raw, '%') {
		return s.raw, nil
	}

	var b strings.Builder
	b.Grow(len(s.raw))

	for i := 0; i < len(s.raw); {
		c, next, ok := nextDecodedByte(s.raw, i)
		if !ok {
			return "", ErrInvalidPctEncoding
		}

		b.WriteByte(c)
		i = next
	}

	return b.String(), nil
}

// DecodeInto resets buf and writes the decoded content into it.
// Returns ErrInvalidPctEncoding if the text contains a malformed escape;
// buf may then hold a partial decode. Callers must treat buf's prior
// contents as invalidated by every call.
func (s PctString) DecodeInto(buf *bytes.Buffer) error {
	buf.Reset()
	buf.Grow(len(s.raw))

	for i := 0; i < len(s.raw); {
		c, next, ok := nextDecodedByte(s.raw, i)
		if !ok {
			return ErrInvalidPctEncoding
		}

		buf.WriteByte(c)
		i = next
	}

	return nil
}

// String returns the decoded content, or the raw text when it contains a
// malformed escape. It implements fmt.Stringer for printing.
func (s PctString) String() string {
	decoded, err := s.Decode()
	if err != nil {
		return s.raw
	}

	return decoded
}

// trimDecodedPrefix consumes prefix from the decoded content and returns a
// view of the remaining raw text. The second return value is false when the
// decoded content does not start with prefix.
func (s PctString) trimDecodedPrefix(prefix string) (PctString, bool) {
	i := 0

	for j := 0; j < len(prefix); j++ {
		if i >= len(s.raw) {
			return PctString{}, false
		}

		b, next, ok := nextDecodedByte(s.raw, i)
		if !ok || b != prefix[j] {
			return PctString{}, false
		}

		i = next
	}

	return PctString{raw: s.raw[i:]}, true
}

// isDecodedDigits reports whether the decoded content is one or more ASCII
// decimal digits and nothing else.
func (s PctString) isDecodedDigits() bool {
	if s.raw == "" {
		return false
	}

	for i := 0; i < len(s.raw); {
		b, next, ok := nextDecodedByte(s.raw, i)
		if !ok || b < '0' || b > '9' {
			return false
		}

		i = next
	}

	return true
}

// nextDecodedByte decodes the byte of raw starting at offset i and returns
// it together with the offset of the following encoded byte.
// ok is false when a percent escape is truncated or not hexadecimal.
func nextDecodedByte(raw string, i int) (b byte, next int, ok bool) {
	c := raw[i]
	if c != '%' {
		return c, i + 1, true
	}

	if i+2 >= len(raw) {
		return 0, 0, false
	}

	hi, okHi := unhex(raw[i+1])
	lo, okLo := unhex(raw[i+2])
	if !okHi || !okLo {
		return 0, 0, false
	}

	return hi<<4 | lo, i + 3, true
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
