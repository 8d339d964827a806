//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"rps-ca/internal/combat"
)

// TerrainPainter draws a square grid of breeds onto an ebiten image.
type TerrainPainter struct {
	size int
	img  *ebiten.Image
	buf  []byte
	dots bool
}

// NewTerrainPainter allocates a painter for a size x size grid. With dots set,
// every cell is drawn as a filled circle; otherwise cells are blitted as
// scaled pixels.
func NewTerrainPainter(size int, dots bool) *TerrainPainter {
	tp := &TerrainPainter{size: size, dots: dots, buf: make([]byte, 4*size*size)}
	tp.img = ebiten.NewImage(size, size)
	return tp
}

// Draw paints cells into dst, fitting the grid into a width x height area
// anchored at the origin.
func (tp *TerrainPainter) Draw(dst *ebiten.Image, cells [][]combat.Breed, width, height float64) {
	if len(cells) != tp.size {
		return
	}
	cell := FitCellSize(width, height, len(cells), len(cells[0]))
	if cell <= 0 {
		return
	}
	if tp.dots {
		tp.drawDots(dst, cells, cell)
		return
	}
	fillRowsRGBA(tp.buf, cells, BreedPalette())
	tp.img.WritePixels(tp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(cell, cell)
	op.Filter = ebiten.FilterNearest
	dst.DrawImage(tp.img, op)
}

func (tp *TerrainPainter) drawDots(dst *ebiten.Image, cells [][]combat.Breed, cell float64) {
	r := float32(cell / 2)
	palette := BreedPalette()
	for i, row := range cells {
		cy := float32(float64(i)*cell) + r
		for j, b := range row {
			cx := float32(float64(j)*cell) + r
			var c color.Color = color.Black
			if b.Valid() {
				c = palette[b]
			}
			vector.DrawFilledCircle(dst, cx, cy, r, c, true)
		}
	}
}
