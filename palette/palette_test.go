package palette

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRGB(t *testing.T) {
	r, g, b := ToRGB(0xff8000)
	assert.Equal(t, uint8(0xff), r)
	assert.Equal(t, uint8(0x80), g)
	assert.Equal(t, uint8(0x00), b)
	assert.Equal(t, Color(0xff8000), FromRGB(r, g, b))
}

func TestRGBRoundTrip(t *testing.T) {
	for r := 0; r < 256; r += 5 {
		for g := 0; g < 256; g += 3 {
			for b := 0; b < 256; b += 7 {
				r2, g2, b2 := ToRGB(FromRGB(uint8(r), uint8(g), uint8(b)))
				assert.Equal(t, [3]uint8{uint8(r), uint8(g), uint8(b)}, [3]uint8{r2, g2, b2})
			}
		}
	}
}

func TestTable(t *testing.T) {
	p := Table()
	assert.Len(t, p, 256)
	assert.Equal(t, Color(0x000000), p[0])
	assert.Equal(t, Color(0x000040), p[1])
	assert.Equal(t, Color(0x002400), p[5])
	assert.Equal(t, Color(0x330000), p[40])
	assert.Equal(t, Color(0xffffff), p[239])
	assert.Equal(t, Color(0x0f0f0f), p[240])
	assert.Equal(t, Color(0xf0f0f0), p[255])

	seen := make(map[Color]struct{})
	for _, c := range p {
		_, ok := seen[c]
		assert.False(t, ok, "duplicate entry %06x", uint32(c))
		seen[c] = struct{}{}
	}
}

func TestClosest(t *testing.T) {
	white, ok := Index(0xffffff)
	assert.True(t, ok)
	black, ok := Index(0x000000)
	assert.True(t, ok)

	assert.Equal(t, white, Closest(0xfefefe))
	assert.Equal(t, black, Closest(0x010101))
	assert.Equal(t, Closest(0x123456), Closest(0x123456))
}

func TestClosestFixedPoint(t *testing.T) {
	for _, m := range []Metric{SquaredRGB, Lab, nil} {
		for i, c := range Table() {
			assert.Equal(t, uint8(i), ClosestWith(c, m))
		}
	}
}

func TestClosestLab(t *testing.T) {
	assert.Equal(t, Closest(0x000000), ClosestWith(0x000000, Lab))
	assert.Equal(t, ClosestWith(0x7a3e9d, Lab), ClosestWith(0x7a3e9d, Lab))
}

func TestColorModel(t *testing.T) {
	r, g, b, a := Color(0xff8000).RGBA()
	assert.Equal(t, [4]uint32{0xffff, 0x8080, 0, 0xffff}, [4]uint32{r, g, b, a})

	c := color.NRGBAModel.Convert(Color(0x336699)).(color.NRGBA)
	assert.Equal(t, color.NRGBA{0x33, 0x66, 0x99, 0xff}, c)
}
