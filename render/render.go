/*
Package render rasterizes OCIF images using a bitmap font.

Each cell is drawn as an 8 by 16 pixel block, magnified by an integer scale
factor using nearest neighbour sampling. A cell holding a wide glyph is
drawn 16 pixels wide and the cell to its right is treated as its
continuation. The character and colours of that continuation cell are not
drawn at all, its area being covered by the wide glyph.
*/
package render

import (
	"errors"
	"image"
	"strconv"

	"github.com/bodgit/ocif"
	"github.com/bodgit/ocif/font"
)

// ErrInvalidScale is returned for a scale factor that is not an integer
// greater than or equal to 1.
var ErrInvalidScale = errors.New("render: scale must be an integer greater than or equal to 1")

// Renderer draws images with a given font.
type Renderer struct {
	font *font.Font
}

// New returns a Renderer using f, or font.Default if f is nil.
func New(f *font.Font) *Renderer {
	if f == nil {
		f = font.Default()
	}
	return &Renderer{
		font: f,
	}
}

// ParseScale parses a scale factor, rejecting anything that isn't a base 10
// integer of at least 1.
func ParseScale(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, ErrInvalidScale
	}
	return n, nil
}

// Size returns the size in pixels of m rendered at scale.
func Size(m *ocif.Image, scale int) image.Rectangle {
	return image.Rect(0, 0, m.Width*font.Width*scale, m.Height*font.Height*scale)
}

// blit copies src magnified by scale into dst with its top left corner at
// p. Anything falling outside dst is clipped.
func blit(dst *image.NRGBA, p image.Point, src *image.NRGBA, scale int) {
	sb := src.Bounds()
	r := image.Rectangle{Min: p, Max: p.Add(image.Pt(sb.Dx()*scale, sb.Dy()*scale))}.Intersect(dst.Bounds())
	for py := r.Min.Y; py < r.Max.Y; py++ {
		sy := (py - p.Y) / scale
		if sy >= sb.Dy() {
			sy = sb.Dy() - 1
		}
		for px := r.Min.X; px < r.Max.X; px++ {
			sx := (px - p.X) / scale
			if sx >= sb.Dx() {
				sx = sb.Dx() - 1
			}
			dst.SetNRGBA(px, py, src.NRGBAAt(sb.Min.X+sx, sb.Min.Y+sy))
		}
	}
}

// Render draws m at the given scale.
func (r *Renderer) Render(m *ocif.Image, scale int) (*image.NRGBA, error) {
	if scale < 1 {
		return nil, ErrInvalidScale
	}

	dst := image.NewNRGBA(Size(m, scale))

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			c, ok := m.At(x, y)
			if !ok {
				continue
			}
			glyph := r.font.Rasterize(c.Character, c.Foreground, c.Background, c.Alpha)
			blit(dst, image.Pt(x*font.Width*scale, y*font.Height*scale), glyph, scale)
			if glyph.Bounds().Dx() > font.Width {
				// Skip the continuation cell
				x++
			}
		}
	}

	return dst, nil
}
