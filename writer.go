package ocif

import (
	"io"

	"github.com/bodgit/ocif/cursor"
	"github.com/bodgit/ocif/palette"
)

// EncodeOptions are the encoding parameters. The zero value selects
// DefaultMethod and palette.SquaredRGB.
type EncodeOptions struct {
	Method int
	Metric palette.Metric
}

type encoder struct {
	w *cursor.Writer

	method int
	ext    extensions
	metric palette.Metric

	// Memoized palette lookups
	colors map[palette.Color]uint8
}

func (e *encoder) closest(c palette.Color) uint8 {
	if i, ok := e.colors[c]; ok {
		return i
	}
	i := palette.ClosestWith(c, e.metric)
	e.colors[c] = i
	return i
}

func (e *encoder) checkSize(m *Image) error {
	if m.Width < 0 || m.Height < 0 || len(m.Cells) != m.Width*m.Height {
		return ErrCellCount
	}
	limit := 0xff
	switch {
	case e.method == MethodFlat:
		limit = 0xffff
	case e.ext.coord:
		limit = 0x100
	}
	if m.Width > limit || m.Height > limit {
		return ErrTooLarge
	}
	if e.ext.count && len(m.Cells) == 0 {
		return ErrEmpty
	}
	return nil
}

func (e *encoder) encodeFlat(m *Image) {
	e.w.U16(uint16(m.Width))
	e.w.U16(uint16(m.Height))
	for _, c := range m.Cells {
		e.w.U8(e.closest(c.Background))
		e.w.U8(e.closest(c.Foreground))
		e.w.U8(alphaByte(c.Alpha))
		e.w.Rune(c.Character)
	}
}

func (e *encoder) group(m *Image) *alphaGroup {
	g := newOrdered[uint8, *characterGroup]()
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			c := m.Cells[y*m.Width+x]
			columns := g.
				at(alphaByte(c.Alpha), newCharacterGroup).
				at(c.Character, newBackgroundGroup).
				at(e.closest(c.Background), newForegroundGroup).
				at(e.closest(c.Foreground), newRowGroup).
				at(y, newColumns)
			*columns = append(*columns, x)
		}
	}
	return g
}

func (e *encoder) count8(n int) error {
	n -= bias(e.ext.count)
	if n < 0 || n > 0xff {
		return ErrTooLarge
	}
	e.w.U8(uint8(n))
	return nil
}

func (e *encoder) count16(n int) error {
	n -= bias(e.ext.count)
	if n < 0 || n > 0xffff {
		return ErrTooLarge
	}
	e.w.U16(uint16(n))
	return nil
}

func (e *encoder) coord(n int) {
	e.w.U8(uint8(n + 1 - bias(e.ext.coord)))
}

func (e *encoder) encodeGrouped(m *Image) error {
	e.w.U8(uint8(m.Width - bias(e.ext.coord)))
	e.w.U8(uint8(m.Height - bias(e.ext.coord)))

	alphas := e.group(m)
	if err := e.count8(alphas.len()); err != nil {
		return err
	}
	for i, a := range alphas.keys {
		e.w.U8(a)
		chars := alphas.vals[i]
		if err := e.count16(chars.len()); err != nil {
			return err
		}
		for j, c := range chars.keys {
			e.w.Rune(c)
			if err := e.encodeBackgrounds(chars.vals[j]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *encoder) encodeBackgrounds(bgs *backgroundGroup) error {
	if err := e.count8(bgs.len()); err != nil {
		return err
	}
	for i, bg := range bgs.keys {
		e.w.U8(bg)
		fgs := bgs.vals[i]
		if err := e.count8(fgs.len()); err != nil {
			return err
		}
		for j, fg := range fgs.keys {
			e.w.U8(fg)
			if err := e.encodeRows(fgs.vals[j]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *encoder) encodeRows(rows *rowGroup) error {
	if err := e.count8(rows.len()); err != nil {
		return err
	}
	for i, y := range rows.keys {
		e.coord(y)
		columns := *rows.vals[i]
		if err := e.count8(len(columns)); err != nil {
			return err
		}
		for _, x := range columns {
			e.coord(x)
		}
	}
	return nil
}

func (e *encoder) encode(m *Image) error {
	if err := e.checkSize(m); err != nil {
		return err
	}

	if err := e.w.String(Signature, nil); err != nil {
		return err
	}
	e.w.U8(uint8(e.method))

	if e.method == MethodFlat {
		e.encodeFlat(m)
		return nil
	}
	return e.encodeGrouped(m)
}

// Marshal returns the OCIF encoding of m.
func Marshal(m *Image, o *EncodeOptions) ([]byte, error) {
	method := DefaultMethod
	var metric palette.Metric
	if o != nil {
		if o.Method != 0 {
			method = o.Method
		}
		metric = o.Metric
	}
	if !validMethod(method) {
		return nil, UnsupportedMethodError(method)
	}

	e := encoder{
		w:      cursor.NewWriter(),
		method: method,
		ext:    methodExtensions(method),
		metric: metric,
		colors: make(map[palette.Color]uint8),
	}
	if err := e.encode(m); err != nil {
		return nil, err
	}
	return e.w.Bytes(), nil
}

// Encode writes the Image m to w in OCIF format. If o is nil the default
// parameters are used.
func Encode(w io.Writer, m *Image, o *EncodeOptions) error {
	b, err := Marshal(m, o)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
