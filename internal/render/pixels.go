package render

import (
	"image"
	"image/color"

	"rps-ca/internal/combat"
)

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []combat.Breed, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// fillRowsRGBA is fillPaletteRGBA for a grid handed out as rows.
func fillRowsRGBA(buf []byte, rows [][]combat.Breed, palette []color.RGBA) {
	offset := 0
	for _, row := range rows {
		fillPaletteRGBA(buf[offset*4:], row, palette)
		offset += len(row)
	}
}

// Frame renders a size x size row-major grid into an image with scale x scale
// pixels per cell.
func Frame(cells []combat.Breed, size, scale int) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size*scale, size*scale))
	FrameInto(img, cells, size, scale)
	return img
}

// FrameInto renders into an existing image of matching bounds.
func FrameInto(img *image.RGBA, cells []combat.Breed, size, scale int) {
	if scale <= 0 {
		scale = 1
	}
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			col := BreedColor(cells[r*size+c])
			for dy := 0; dy < scale; dy++ {
				base := img.PixOffset(c*scale, r*scale+dy)
				for dx := 0; dx < scale; dx++ {
					p := base + dx*4
					img.Pix[p+0] = col.R
					img.Pix[p+1] = col.G
					img.Pix[p+2] = col.B
					img.Pix[p+3] = col.A
				}
			}
		}
	}
}
