/*
Package cursor implements sequential reading and writing of the primitive
values used by the OCIF format: raw bytes, big-endian 16-bit integers,
fixed-length strings and self-delimiting UTF-8 codepoints.
*/
package cursor

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding"
)

// Fallback is returned by Reader.Rune for malformed or truncated input.
const Fallback = '?'

// ErrShortBuffer is returned when a read runs past the end of the buffer.
var ErrShortBuffer = errors.New("cursor: short buffer")

// Reader reads values sequentially from a byte slice.
type Reader struct {
	b   []byte
	off int
}

// NewReader returns a Reader positioned at the start of b.
func NewReader(b []byte) *Reader {
	return &Reader{b: b}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.off
}

// More reports whether any bytes remain.
func (r *Reader) More() bool {
	return r.off < len(r.b)
}

func (r *Reader) next(n int) ([]byte, error) {
	if r.off+n > len(r.b) {
		r.off = len(r.b)
		return nil, ErrShortBuffer
	}
	p := r.b[r.off : r.off+n]
	r.off += n
	return p, nil
}

// U8 reads a single byte.
func (r *Reader) U8() (uint8, error) {
	p, err := r.next(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

// U16 reads a big-endian 16-bit value.
func (r *Reader) U16() (uint16, error) {
	p, err := r.next(2)
	if err != nil {
		return 0, err
	}
	return uint16(p[0])<<8 | uint16(p[1]), nil
}

// String reads n bytes and decodes them with enc. A nil enc returns the
// bytes unchanged, which is correct for both ASCII and UTF-8.
func (r *Reader) String(n int, enc encoding.Encoding) (string, error) {
	p, err := r.next(n)
	if err != nil {
		return "", err
	}
	if enc == nil {
		return string(p), nil
	}
	d, err := enc.NewDecoder().Bytes(p)
	if err != nil {
		return "", err
	}
	return string(d), nil
}

func sequenceLength(b byte) int {
	switch {
	case b&0x80 == 0:
		return 1
	case b&0xe0 == 0xc0:
		return 2
	case b&0xf0 == 0xe0:
		return 3
	case b&0xf8 == 0xf0:
		return 4
	}
	return 0
}

// Rune reads one UTF-8 encoded codepoint, the length being taken from the
// lead byte. Malformed input never fails; it yields Fallback instead. An
// invalid lead byte consumes one byte, a sequence running past the end
// consumes the rest of the buffer and a bad continuation consumes the
// length announced by the lead byte.
func (r *Reader) Rune() rune {
	if !r.More() {
		return Fallback
	}

	n := sequenceLength(r.b[r.off])
	if n == 0 {
		r.off++
		return Fallback
	}

	p, err := r.next(n)
	if err != nil {
		return Fallback
	}

	c, size := utf8.DecodeRune(p)
	if c == utf8.RuneError && size != n {
		return Fallback
	}
	return c
}

// Writer accumulates values into a growing byte slice.
type Writer struct {
	b []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the bytes written so far.
func (w *Writer) Bytes() []byte {
	return w.b
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.b)
}

// U8 writes a single byte.
func (w *Writer) U8(v uint8) {
	w.b = append(w.b, v)
}

// U16 writes v as a big-endian 16-bit value.
func (w *Writer) U16(v uint16) {
	w.b = append(w.b, byte(v>>8), byte(v))
}

// String writes s encoded with enc, or as UTF-8 if enc is nil.
func (w *Writer) String(s string, enc encoding.Encoding) error {
	if enc == nil {
		w.b = append(w.b, s...)
		return nil
	}
	p, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return err
	}
	w.b = append(w.b, p...)
	return nil
}

// Rune writes c as UTF-8 with no length prefix.
func (w *Writer) Rune(c rune) {
	w.b = utf8.AppendRune(w.b, c)
}
