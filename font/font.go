/*
Package font implements the fixed height bitmap font used to rasterize OCIF
cells.

Glyphs are 16 rows tall and either 8 or 16 columns wide. Each glyph is
stored as a run of bytes packed row-major, most significant bit first, so a
narrow glyph is 16 bytes and a wide glyph is 32 bytes. Font tables are read
from a text format of one glyph per line, the codepoint and the glyph bytes
both written in hexadecimal and separated by a colon:

	0041:0000000000384444447C7C4444444400
*/
package font

import (
	"bufio"
	"encoding/hex"
	"image"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/bodgit/ocif/palette"
)

const (
	// Width is the width of a narrow glyph
	Width = 8
	// Height is the height of every glyph
	Height = 16

	narrowBytes = Width * Height / 8
)

// Glyph is a single 1-bit bitmap.
type Glyph struct {
	data []byte
}

// NewGlyph returns a Glyph backed by data. Anything longer than 16 bytes is
// treated as a wide glyph.
func NewGlyph(data []byte) Glyph {
	return Glyph{data: data}
}

// Wide reports whether the glyph is 16 columns wide.
func (g Glyph) Wide() bool {
	return len(g.data) > narrowBytes
}

// Width returns the width of the glyph in pixels.
func (g Glyph) Width() int {
	if g.Wide() {
		return Width * 2
	}
	return Width
}

// Len returns the number of bytes backing the glyph.
func (g Glyph) Len() int {
	return len(g.data)
}

// Pixel reports whether the bit at (x, y) is set. Coordinates outside the
// glyph, or past the end of short glyph data, are never set.
func (g Glyph) Pixel(x, y int) bool {
	w := g.Width()
	if x < 0 || x >= w || y < 0 || y >= Height {
		return false
	}
	bit := y*w + x
	i := bit >> 3
	if i >= len(g.data) {
		return false
	}
	return g.data[i]>>(7-uint(bit&7))&1 == 1
}

// Font maps codepoints to glyphs.
type Font struct {
	glyphs map[rune]Glyph
}

// New returns an empty Font.
func New() *Font {
	return &Font{
		glyphs: make(map[rune]Glyph),
	}
}

// Parse reads a font table from r. Blank lines, lines that do not split
// into exactly one codepoint and one glyph, and lines with invalid
// hexadecimal are skipped.
func Parse(r io.Reader) (*Font, error) {
	f := New()
	s := bufio.NewScanner(r)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, ":")
		if len(parts) != 2 {
			continue
		}
		cp, err := strconv.ParseUint(parts[0], 16, 32)
		if err != nil {
			continue
		}
		data, err := hex.DecodeString(parts[1])
		if err != nil {
			continue
		}
		f.Set(rune(cp), NewGlyph(data))
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return f, nil
}

// Set stores g for codepoint c, replacing any existing glyph.
func (f *Font) Set(c rune, g Glyph) {
	f.glyphs[c] = g
}

// Len returns the number of glyphs in the font.
func (f *Font) Len() int {
	return len(f.glyphs)
}

// Glyph returns the glyph for c.
func (f *Font) Glyph(c rune) (Glyph, bool) {
	g, ok := f.glyphs[c]
	return g, ok
}

// Rasterize draws c as a Width or 2*Width by Height image. Set bits are
// drawn in fg, fully opaque. Unset bits are drawn in bg with an alpha of
// 1-alpha, so alpha is the transparency of the background. A codepoint with
// no glyph falls back to the space glyph, and a font without a space glyph
// draws a blank narrow cell.
func (f *Font) Rasterize(c rune, fg, bg palette.Color, alpha float64) *image.NRGBA {
	g, ok := f.Glyph(c)
	if !ok {
		g, _ = f.Glyph(' ')
	}

	fr, fg8, fb := palette.ToRGB(fg)
	br, bg8, bb := palette.ToRGB(bg)
	on := color.NRGBA{fr, fg8, fb, 0xff}
	off := color.NRGBA{br, bg8, bb, backgroundAlpha(alpha)}

	m := image.NewNRGBA(image.Rect(0, 0, g.Width(), Height))
	for y := 0; y < Height; y++ {
		for x := 0; x < g.Width(); x++ {
			if g.Pixel(x, y) {
				m.SetNRGBA(x, y, on)
			} else {
				m.SetNRGBA(x, y, off)
			}
		}
	}
	return m
}

func backgroundAlpha(alpha float64) uint8 {
	switch {
	case alpha <= 0 || math.IsNaN(alpha):
		return 0xff
	case alpha >= 1:
		return 0
	}
	return uint8(math.Round((1 - alpha) * 0xff))
}
