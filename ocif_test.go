package ocif

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	m := New(3, 2)
	assert.Equal(t, 3, m.Width)
	assert.Equal(t, 2, m.Height)
	assert.Len(t, m.Cells, 6)

	c, ok := m.At(0, 0)
	assert.True(t, ok)
	assert.Equal(t, DefaultCell, c)
	assert.Equal(t, ' ', c.Character)
	assert.Equal(t, 1.0, c.Alpha)
}

func TestAtSet(t *testing.T) {
	m := New(2, 2)
	c := Cell{Background: 0xff0000, Foreground: 0x00ff00, Alpha: 0.5, Character: 'x'}
	m.Set(1, 1, c)

	got, ok := m.At(1, 1)
	assert.True(t, ok)
	assert.Equal(t, c, got)
	assert.Equal(t, c, m.Cells[3])

	for _, p := range [][2]int{{-1, -1}, {-1, 0}, {0, -1}, {2, 0}, {0, 2}, {2, 2}} {
		got, ok := m.At(p[0], p[1])
		assert.False(t, ok, "point %v", p)
		assert.Equal(t, Cell{}, got)

		m.Set(p[0], p[1], Cell{Character: 'z'})
	}

	for _, cell := range m.Cells {
		assert.NotEqual(t, 'z', cell.Character)
	}
}

func TestNewFilledNegative(t *testing.T) {
	m := NewFilled(-1, 3, DefaultCell)
	assert.Equal(t, 0, m.Width)
	assert.Empty(t, m.Cells)

	_, ok := m.At(0, 0)
	assert.False(t, ok)
}

func TestBinaryMarshaler(t *testing.T) {
	m := New(2, 1)
	m.Set(0, 0, Cell{Background: 0xff0000, Foreground: 0x00ff00, Alpha: 1, Character: 'a'})

	b, err := m.MarshalBinary()
	assert.NoError(t, err)
	assert.Equal(t, byte(DefaultMethod), b[4])

	n := new(Image)
	assert.NoError(t, n.UnmarshalBinary(b))
	assert.Equal(t, m, n)

	assert.Equal(t, ErrInvalidSignature, n.UnmarshalBinary([]byte("nope")))
}

func TestAlphaByte(t *testing.T) {
	tables := []struct {
		alpha float64
		want  uint8
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 128},
		{1.0 / 255, 1},
		{1, 255},
		{1.5, 255},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, alphaByte(table.alpha), "alpha %v", table.alpha)
	}
}

func TestMethodExtensions(t *testing.T) {
	tables := []struct {
		method int
		want   extensions
	}{
		{MethodFlat, extensions{}},
		{MethodGrouped, extensions{}},
		{MethodGroupedCount, extensions{count: true}},
		{MethodGroupedCoord, extensions{count: true, coord: true}},
	}

	for _, table := range tables {
		assert.Equal(t, table.want, methodExtensions(table.method))
	}
}
