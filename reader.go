package ocif

import (
	"io"

	"github.com/bodgit/ocif/cursor"
	"github.com/bodgit/ocif/palette"
)

// Smallest possible encoding of a method 5 cell
const minFlatCell = 4

// Config holds the encoding method and dimensions of an image.
type Config struct {
	Method int
	Width  int
	Height int
}

func notEnough(err error) error {
	if err == cursor.ErrShortBuffer {
		return ErrNotEnough
	}
	return err
}

type decoder struct {
	r *cursor.Reader

	method int
	ext    extensions

	image *Image
}

func (d *decoder) readHeader() error {
	sig, err := d.r.String(len(Signature), nil)
	if err != nil || sig != Signature {
		return ErrInvalidSignature
	}

	method, err := d.r.U8()
	if err != nil {
		return err
	}
	if !validMethod(int(method)) {
		return UnsupportedMethodError(method)
	}
	d.method = int(method)
	d.ext = methodExtensions(d.method)
	return nil
}

func (d *decoder) readSize() (int, int, error) {
	if d.method == MethodFlat {
		w, err := d.r.U16()
		if err != nil {
			return 0, 0, err
		}
		h, err := d.r.U16()
		if err != nil {
			return 0, 0, err
		}
		return int(w), int(h), nil
	}

	w, err := d.r.U8()
	if err != nil {
		return 0, 0, err
	}
	h, err := d.r.U8()
	if err != nil {
		return 0, 0, err
	}
	return int(w) + bias(d.ext.coord), int(h) + bias(d.ext.coord), nil
}

func (d *decoder) readFlat() error {
	for i := range d.image.Cells {
		var idx [3]uint8
		for j := range idx {
			b, err := d.r.U8()
			if err != nil {
				return err
			}
			idx[j] = b
		}
		d.image.Cells[i] = Cell{
			Background: palette.At(idx[0]),
			Foreground: palette.At(idx[1]),
			Alpha:      byteAlpha(idx[2]),
			Character:  d.r.Rune(),
		}
	}
	return nil
}

func (d *decoder) count8() (int, error) {
	n, err := d.r.U8()
	if err != nil {
		return 0, err
	}
	return int(n) + bias(d.ext.count), nil
}

func (d *decoder) count16() (int, error) {
	n, err := d.r.U16()
	if err != nil {
		return 0, err
	}
	return int(n) + bias(d.ext.count), nil
}

func (d *decoder) coord() (int, error) {
	n, err := d.r.U8()
	if err != nil {
		return 0, err
	}
	return int(n) - 1 + bias(d.ext.coord), nil
}

// The grouped methods nest cells as alpha, character, background,
// foreground, row and finally the columns within that row.
func (d *decoder) readGrouped() error {
	alphas, err := d.count8()
	if err != nil {
		return err
	}
	for i := 0; i < alphas; i++ {
		a, err := d.r.U8()
		if err != nil {
			return err
		}
		c := Cell{Alpha: byteAlpha(a)}
		if err := d.readCharacters(c); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) readCharacters(c Cell) error {
	chars, err := d.count16()
	if err != nil {
		return err
	}
	for i := 0; i < chars; i++ {
		c.Character = d.r.Rune()
		if err := d.readBackgrounds(c); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) readBackgrounds(c Cell) error {
	backgrounds, err := d.count8()
	if err != nil {
		return err
	}
	for i := 0; i < backgrounds; i++ {
		bg, err := d.r.U8()
		if err != nil {
			return err
		}
		c.Background = palette.At(bg)
		if err := d.readForegrounds(c); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) readForegrounds(c Cell) error {
	foregrounds, err := d.count8()
	if err != nil {
		return err
	}
	for i := 0; i < foregrounds; i++ {
		fg, err := d.r.U8()
		if err != nil {
			return err
		}
		c.Foreground = palette.At(fg)
		if err := d.readRows(c); err != nil {
			return err
		}
	}
	return nil
}

func (d *decoder) readRows(c Cell) error {
	rows, err := d.count8()
	if err != nil {
		return err
	}
	for i := 0; i < rows; i++ {
		y, err := d.coord()
		if err != nil {
			return err
		}
		columns, err := d.count8()
		if err != nil {
			return err
		}
		for j := 0; j < columns; j++ {
			x, err := d.coord()
			if err != nil {
				return err
			}
			d.image.Set(x, y, c)
		}
	}
	return nil
}

func (d *decoder) decode(b []byte, configOnly bool) (Config, error) {
	d.r = cursor.NewReader(b)

	if err := d.readHeader(); err != nil {
		return Config{}, notEnough(err)
	}

	w, h, err := d.readSize()
	if err != nil {
		return Config{}, notEnough(err)
	}
	config := Config{
		Method: d.method,
		Width:  w,
		Height: h,
	}

	if configOnly {
		return config, nil
	}

	if d.method == MethodFlat && len(b)-d.r.Offset() < w*h*minFlatCell {
		return Config{}, ErrNotEnough
	}

	d.image = New(w, h)

	if d.method == MethodFlat {
		err = d.readFlat()
	} else {
		err = d.readGrouped()
	}
	if err != nil {
		return Config{}, notEnough(err)
	}

	return config, nil
}

// Unmarshal decodes an OCIF image from b.
func Unmarshal(b []byte) (*Image, error) {
	var d decoder
	if _, err := d.decode(b, false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// Decode reads an OCIF image from r.
func Decode(r io.Reader) (*Image, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(b)
}

// DecodeConfig returns the encoding method and dimensions of an OCIF image
// without decoding the cells.
func DecodeConfig(r io.Reader) (Config, error) {
	// Method 5 needs the most header bytes
	var b [len(Signature) + 5]byte
	n, err := io.ReadFull(r, b[:])
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return Config{}, err
	}
	var d decoder
	return d.decode(b[:n], true)
}
