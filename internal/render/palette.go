package render

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"rps-ca/internal/combat"
)

const (
	maxHue     = 360.0
	saturation = 1.0
	brightness = 0.9
)

var breedPalette = buildBreedPalette()

// BreedPalette returns one color per breed, hues spaced evenly around the
// color wheel.
func BreedPalette() []color.RGBA {
	return breedPalette
}

// BreedColor returns the palette entry for b.
func BreedColor(b combat.Breed) color.RGBA {
	if !b.Valid() {
		return color.RGBA{A: 255}
	}
	return breedPalette[b]
}

func buildBreedPalette() []color.RGBA {
	palette := make([]color.RGBA, combat.Count)
	for i := range palette {
		palette[i] = hsb(float64(i)*maxHue/float64(combat.Count), saturation, brightness)
	}
	return palette
}

// hsb converts hue (degrees), saturation and brightness in [0,1] to RGBA.
func hsb(h, s, v float64) color.RGBA {
	h = math.Mod(h, maxHue)
	if h < 0 {
		h += maxHue
	}
	r, g, b := colorful.Hsv(h, s, v).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// FitCellSize returns the largest cell edge that fits rows x cols cells into
// a width x height area while keeping cells square.
func FitCellSize(width, height float64, rows, cols int) float64 {
	if rows <= 0 || cols <= 0 {
		return 0
	}
	return math.Min(height/float64(rows), width/float64(cols))
}
