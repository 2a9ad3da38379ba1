/*
Package ocif implements an OCIF image decoder and encoder.

An OCIF image is a grid of terminal cells, each with a background color, a
foreground color, a background transparency and a single character. Colors
are stored as indices into the fixed 256 color palette from the palette
package.

Every file starts with the four bytes "OCIF" followed by a byte giving the
encoding method, one of 5, 6, 7 or 8.

Method 5 stores the width and height as big-endian 16-bit values and then
every cell in row-major order as a background index, a foreground index, an
alpha byte and a UTF-8 encoded character.

Methods 6 to 8 store the width and height as single bytes and then group the
cells by alpha, character, background, foreground and row, listing the
columns of each row last. Method 7 stores every count minus one, and method 8
additionally stores the width, height and coordinates minus one, which
allows 256 of each to fit in a byte.
*/
package ocif

import (
	"math"

	"github.com/bodgit/ocif/palette"
)

const (
	// Signature is the magic string every OCIF file starts with
	Signature = "OCIF"

	// MethodFlat stores every cell in row-major order
	MethodFlat = 5
	// MethodGrouped groups cells by their attributes
	MethodGrouped = 6
	// MethodGroupedCount is MethodGrouped with counts stored minus one
	MethodGroupedCount = 7
	// MethodGroupedCoord is MethodGroupedCount with sizes and coordinates
	// stored minus one
	MethodGroupedCoord = 8

	// DefaultMethod is the most compact encoding method
	DefaultMethod = MethodGroupedCoord
)

// Cell is a single character cell.
type Cell struct {
	Background palette.Color
	Foreground palette.Color
	// Alpha is the transparency of the background, 0 is opaque
	Alpha     float64
	Character rune
}

// DefaultCell is used to fill new images.
var DefaultCell = Cell{
	Background: 0x000000,
	Foreground: 0xffffff,
	Alpha:      1,
	Character:  ' ',
}

// Image is a Width by Height grid of cells stored in row-major order.
type Image struct {
	Width  int
	Height int
	Cells  []Cell
}

// New returns an image filled with DefaultCell.
func New(width, height int) *Image {
	return NewFilled(width, height, DefaultCell)
}

// NewFilled returns an image with every cell set to c.
func NewFilled(width, height int, c Cell) *Image {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m := &Image{
		Width:  width,
		Height: height,
		Cells:  make([]Cell, width*height),
	}
	for i := range m.Cells {
		m.Cells[i] = c
	}
	return m
}

// In reports whether (x, y) is inside the image.
func (m *Image) In(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// At returns the cell at (x, y) and whether it exists.
func (m *Image) At(x, y int) (Cell, bool) {
	if !m.In(x, y) {
		return Cell{}, false
	}
	return m.Cells[y*m.Width+x], true
}

// Set replaces the cell at (x, y). It does nothing if (x, y) is outside
// the image.
func (m *Image) Set(x, y int, c Cell) {
	if !m.In(x, y) {
		return
	}
	m.Cells[y*m.Width+x] = c
}

// MarshalBinary encodes the image using DefaultMethod.
func (m *Image) MarshalBinary() ([]byte, error) {
	return Marshal(m, nil)
}

// UnmarshalBinary replaces the image with the one decoded from b.
func (m *Image) UnmarshalBinary(b []byte) error {
	n, err := Unmarshal(b)
	if err != nil {
		return err
	}
	*m = *n
	return nil
}

func alphaByte(alpha float64) uint8 {
	switch {
	case alpha <= 0 || math.IsNaN(alpha):
		return 0
	case alpha >= 1:
		return 0xff
	}
	return uint8(math.Round(alpha * 0xff))
}

func byteAlpha(b uint8) float64 {
	return float64(b) / 0xff
}

// extensions are the range extensions implied by an encoding method.
type extensions struct {
	// count stores every count minus one
	count bool
	// coord stores the width, height and every coordinate minus one
	coord bool
}

func methodExtensions(method int) extensions {
	return extensions{
		count: method >= MethodGroupedCount,
		coord: method >= MethodGroupedCoord,
	}
}

func bias(b bool) int {
	if b {
		return 1
	}
	return 0
}

func validMethod(method int) bool {
	return method >= MethodFlat && method <= MethodGroupedCoord
}
