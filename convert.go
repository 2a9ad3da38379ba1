package ocif

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/bodgit/ocif/palette"
	"github.com/disintegration/gift"
	"github.com/ericpauley/go-quantize/quantize"
)

// UpperHalfBlock is the character used to draw two pixels per cell.
const UpperHalfBlock = '▀'

// ConvertOptions control how a raster image is turned into cells.
type ConvertOptions struct {
	// Width and Height are the size of the result in cells. If both are
	// zero the image is not resized, if only one is zero it is derived from
	// the other preserving the aspect ratio.
	Width  int
	Height int
	// Colors, if non-zero, reduces the image to at most this many colors
	// using median cut quantization and Floyd-Steinberg dithering.
	Colors int
}

func (o *ConvertOptions) size(b image.Rectangle) (int, int) {
	dx, dy := b.Dx(), b.Dy()
	if o == nil || (o.Width <= 0 && o.Height <= 0) {
		return dx, (dy + 1) / 2
	}
	w, h := o.Width, o.Height
	switch {
	case w <= 0:
		w = int(math.Round(float64(dx*2*h) / float64(dy)))
	case h <= 0:
		h = int(math.Round(float64(dy*w) / float64(dx) / 2))
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func resize(m image.Image, w, h int) image.Image {
	if m.Bounds().Dx() == w && m.Bounds().Dy() == h {
		return m
	}
	g := gift.New(gift.Resize(w, h, gift.LanczosResampling))
	dst := image.NewNRGBA(g.Bounds(m.Bounds()))
	g.Draw(dst, m)
	return dst
}

func reduce(m image.Image, colors int) image.Image {
	q := quantize.MedianCutQuantizer{}
	b := m.Bounds()
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, colors), m))
	draw.FloydSteinberg.Draw(pm, b, m, b.Min)
	return pm
}

func pixel(m image.Image, x, y int) (palette.Color, uint8) {
	c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
	return palette.FromRGB(c.R, c.G, c.B), c.A
}

// FromImage converts m to an image of upper half block cells, each cell
// covering two vertically adjacent pixels. The top pixel becomes the
// foreground and the bottom pixel the background, the transparency of the
// bottom pixel becoming the cell alpha. If o is nil the image is converted
// at its original size.
func FromImage(m image.Image, o *ConvertOptions) *Image {
	if m.Bounds().Empty() {
		return New(0, 0)
	}

	w, h := o.size(m.Bounds())
	src := m
	if o != nil && (o.Width > 0 || o.Height > 0) {
		src = resize(m, w, h*2)
	}
	if o != nil && o.Colors > 0 {
		src = reduce(src, o.Colors)
	}

	b := src.Bounds()
	out := New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px, py := b.Min.X+x, b.Min.Y+y*2
			fg, _ := pixel(src, px, py)
			c := Cell{
				Foreground: fg,
				Alpha:      1,
				Character:  UpperHalfBlock,
			}
			if py+1 < b.Max.Y {
				bg, a := pixel(src, px, py+1)
				c.Background = bg
				c.Alpha = 1 - byteAlpha(a)
			}
			out.Set(x, y, c)
		}
	}
	return out
}
