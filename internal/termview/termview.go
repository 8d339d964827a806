// Package termview paints terrain snapshots onto a terminal screen.
package termview

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"rps-ca/internal/combat"
	"rps-ca/internal/render"
	"rps-ca/internal/sim"
)

// View draws each cell as two terminal columns so cells look roughly square.
// One status line at the bottom shows the iteration count and settings.
type View struct {
	screen tcell.Screen
	styles [combat.Count]tcell.Style
}

// New wraps an initialized screen.
func New(screen tcell.Screen) *View {
	v := &View{screen: screen}
	for _, b := range combat.Breeds() {
		c := render.BreedColor(b)
		v.styles[b] = tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	}
	return v
}

// Status is the text shown under the grid.
type Status struct {
	Running bool
	Speed   int
	Mixing  int
}

// Draw paints snap, clipped to the screen, and shows it.
func (v *View) Draw(snap *sim.Snapshot, status Status) {
	w, h := v.screen.Size()
	rows := snap.Size
	if rows > h-1 {
		rows = h - 1
	}
	cols := snap.Size
	if cols > w/2 {
		cols = w / 2
	}
	v.screen.Clear()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			style := v.styles[snap.At(r, c)]
			v.screen.SetContent(c*2, r, ' ', nil, style)
			v.screen.SetContent(c*2+1, r, ' ', nil, style)
		}
	}
	state := "stopped"
	if status.Running {
		state = "running"
	}
	line := fmt.Sprintf("Iterations: %d  speed %d  mixing %d  [%s]  space:start/stop r:reset +/-:speed [/]:mixing q:quit",
		snap.Iterations, status.Speed, status.Mixing, state)
	if rows < 0 {
		rows = 0
	}
	v.drawText(0, rows, line)
	v.screen.Show()
}

func (v *View) drawText(x, y int, s string) {
	w, _ := v.screen.Size()
	for i, r := range []rune(s) {
		if x+i >= w {
			return
		}
		v.screen.SetContent(x+i, y, r, nil, tcell.StyleDefault)
	}
}
