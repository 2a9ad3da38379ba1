/*
Package palette implements the fixed 256 color table used by the OCIF format.

Every color on the wire is an index into this table. The first 240 entries
form a color cube of 6 red, 8 green and 5 blue levels with red varying
slowest, and the remaining 16 entries are greys from 0x0F0F0F to 0xF0F0F0.
*/
package palette

import (
	"math"
)

const (
	redLevels   = 6
	greenLevels = 8
	blueLevels  = 5
	cubeSize    = redLevels * greenLevels * blueLevels
	greyLevels  = 16

	// Size is the number of entries in the palette
	Size = cubeSize + greyLevels
)

// Color is a 24-bit 0xRRGGBB value.
type Color uint32

// RGBA implements the color.Color interface. Colors are always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := ToRGB(c)
	r = uint32(r8)
	r |= r << 8
	g = uint32(g8)
	g |= g << 8
	b = uint32(b8)
	b |= b << 8
	return r, g, b, 0xffff
}

// ToRGB unpacks c into its components.
func ToRGB(c Color) (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// FromRGB packs the components into a Color.
func FromRGB(r, g, b uint8) Color {
	return Color(r)<<16 | Color(g)<<8 | Color(b)
}

func level(i, n int) uint8 {
	return uint8(math.Floor(float64(i)*255/float64(n-1) + 0.5))
}

var table = func() (p [Size]Color) {
	i := 0
	for r := 0; r < redLevels; r++ {
		for g := 0; g < greenLevels; g++ {
			for b := 0; b < blueLevels; b++ {
				p[i] = FromRGB(level(r, redLevels), level(g, greenLevels), level(b, blueLevels))
				i++
			}
		}
	}
	for k := 1; k <= greyLevels; k++ {
		v := uint8(0x0f * k)
		p[i] = FromRGB(v, v, v)
		i++
	}
	return
}()

// At returns the palette entry at index i.
func At(i uint8) Color {
	return table[i]
}

// Table returns a copy of the palette.
func Table() [Size]Color {
	return table
}

// Index returns the index of c if it is an exact palette entry.
func Index(c Color) (uint8, bool) {
	for i, p := range table {
		if p == c {
			return uint8(i), true
		}
	}
	return 0, false
}

// Closest returns the index of the palette entry nearest to c using
// SquaredRGB.
func Closest(c Color) uint8 {
	return ClosestWith(c, SquaredRGB)
}

// ClosestWith returns the index of the palette entry nearest to c under m.
// When two entries are equally distant the lower index wins.
func ClosestWith(c Color, m Metric) uint8 {
	if m == nil {
		m = SquaredRGB
	}
	best, bestDist := 0, math.Inf(1)
	for i, p := range table {
		d := m(c, p)
		if d < bestDist {
			best, bestDist = i, d
			if d == 0 {
				break
			}
		}
	}
	return uint8(best)
}
