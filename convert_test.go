package ocif

import (
	"image"
	"image/color"
	"testing"

	"github.com/bodgit/ocif/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stripes(w, h int) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if y%2 == 0 {
				m.SetNRGBA(x, y, color.NRGBA{0xff, 0, 0, 0xff})
			} else {
				m.SetNRGBA(x, y, color.NRGBA{0, 0, 0xff, 0xff})
			}
		}
	}
	return m
}

func TestFromImage(t *testing.T) {
	m := FromImage(stripes(4, 6), nil)
	require.Equal(t, 4, m.Width)
	require.Equal(t, 3, m.Height)

	for _, c := range m.Cells {
		assert.Equal(t, Cell{
			Background: 0x0000ff,
			Foreground: 0xff0000,
			Alpha:      0,
			Character:  UpperHalfBlock,
		}, c)
	}
}

func TestFromImageOddHeight(t *testing.T) {
	m := FromImage(stripes(2, 3), nil)
	require.Equal(t, 2, m.Height)

	c, ok := m.At(0, 1)
	require.True(t, ok)
	assert.Equal(t, palette.Color(0xff0000), c.Foreground)
	assert.Equal(t, 1.0, c.Alpha)
}

func TestFromImageTransparent(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	src.SetNRGBA(0, 0, color.NRGBA{0xff, 0xff, 0xff, 0xff})

	m := FromImage(src, nil)
	c, _ := m.At(0, 0)
	assert.Equal(t, palette.Color(0xffffff), c.Foreground)
	assert.Equal(t, 1.0, c.Alpha)
}

func TestFromImageResize(t *testing.T) {
	tables := []struct {
		name          string
		options       ConvertOptions
		width, height int
	}{
		{"both", ConvertOptions{Width: 10, Height: 4}, 10, 4},
		{"width", ConvertOptions{Width: 20}, 20, 5},
		{"height", ConvertOptions{Height: 10}, 40, 10},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			m := FromImage(stripes(80, 40), &table.options)
			assert.Equal(t, table.width, m.Width)
			assert.Equal(t, table.height, m.Height)
			assert.Len(t, m.Cells, table.width*table.height)
		})
	}
}

func TestFromImageColors(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			src.SetNRGBA(x, y, color.NRGBA{uint8(x * 16), uint8(y * 16), 0x80, 0xff})
		}
	}

	m := FromImage(src, &ConvertOptions{Colors: 4})
	require.Equal(t, 16, m.Width)
	require.Equal(t, 8, m.Height)

	colors := make(map[palette.Color]struct{})
	for _, c := range m.Cells {
		colors[c.Foreground] = struct{}{}
		colors[c.Background] = struct{}{}
	}
	assert.LessOrEqual(t, len(colors), 4)

	b, err := Marshal(m, nil)
	require.NoError(t, err)
	_, err = Unmarshal(b)
	assert.NoError(t, err)
}

func TestFromImageEmpty(t *testing.T) {
	m := FromImage(image.NewNRGBA(image.Rectangle{}), nil)
	assert.Equal(t, 0, m.Width)
	assert.Empty(t, m.Cells)
}
