//go:build ebiten

package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"rps-ca/internal/combat"
	"rps-ca/internal/core"
	"rps-ca/internal/render"
)

// CensusSource reports the current population of every breed.
type CensusSource interface {
	Census() [combat.Count]int
}

// Overlay draws per-breed population bars on top of the terrain. Toggle with C.
type Overlay struct {
	src     CensusSource
	sampler *core.FixedStep
	visible bool
	counts  [combat.Count]int
	total   int
}

const overlaySampleRate = 10

// NewOverlay constructs an overlay reading from src.
func NewOverlay(src CensusSource) *Overlay {
	return &Overlay{src: src, sampler: core.NewFixedStep(overlaySampleRate)}
}

// Update toggles visibility and samples the census at a fixed rate.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		o.visible = !o.visible
	}
	if !o.visible || !o.sampler.ShouldStep() {
		return
	}
	o.counts = o.src.Census()
	o.total = 0
	for _, n := range o.counts {
		o.total += n
	}
}

// Draw renders the bars in the top-left corner.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.visible || o.total == 0 {
		return
	}
	const (
		left   = 8
		top    = 8
		barMax = 160
		barH   = 12
		gap    = 4
		labelW = 64
	)
	height := combat.Count*(barH+gap) + gap
	vector.DrawFilledRect(screen, left-4, top-4, labelW+barMax+56, float32(height+4), color.RGBA{A: 180}, false)
	face := basicfont.Face7x13
	for i, b := range combat.Breeds() {
		y := top + i*(barH+gap)
		text.Draw(screen, b.String(), face, left, y+barH-2, color.White)
		frac := float64(o.counts[b]) / float64(o.total)
		w := float32(frac * barMax)
		vector.DrawFilledRect(screen, left+labelW, float32(y), w, barH, render.BreedColor(b), false)
		text.Draw(screen, fmt.Sprintf("%4.1f%%", frac*100), face, left+labelW+barMax+4, y+barH-2, color.White)
	}
}
