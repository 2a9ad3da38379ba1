package palette

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Metric returns the distance between two colors. It must return zero for
// identical colors and must be deterministic.
type Metric func(a, b Color) float64

// SquaredRGB is the sum of the squared per-channel differences.
func SquaredRGB(a, b Color) float64 {
	r1, g1, b1 := ToRGB(a)
	r2, g2, b2 := ToRGB(b)
	dr := int(r1) - int(r2)
	dg := int(g1) - int(g2)
	db := int(b1) - int(b2)
	return float64(dr*dr + dg*dg + db*db)
}

func toColorful(c Color) colorful.Color {
	r, g, b := ToRGB(c)
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Lab is the Euclidean distance in CIE L*a*b* space which tracks perceived
// difference more closely than SquaredRGB.
func Lab(a, b Color) float64 {
	if a == b {
		return 0
	}
	return toColorful(a).DistanceLab(toColorful(b))
}
