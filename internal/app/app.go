//go:build ebiten

package app

import (
	"context"
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"rps-ca/internal/combat"
	"rps-ca/internal/render"
	"rps-ca/internal/settings"
	"rps-ca/internal/sim"
	"rps-ca/internal/ui"
)

const hudWidth = 200

// Game adapts a simulation driver to the ebiten.Game interface. The driver
// runs on its own goroutine; Draw reads the terrain under the driver's lock.
type Game struct {
	driver  *sim.Driver
	painter *render.TerrainPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	prefs   *settings.Store

	ctx   context.Context
	scale int
	fit   bool
}

// New constructs a Game for the provided driver.
func New(ctx context.Context, driver *sim.Driver, prefs *settings.Store, scale int, fit, dots bool) *Game {
	g := &Game{
		driver:  driver,
		painter: render.NewTerrainPainter(driver.Size(), dots),
		overlay: ui.NewOverlay(driver),
		prefs:   prefs,
		ctx:     ctx,
		scale:   scale,
		fit:     fit,
	}
	g.hud = ui.NewHUD(driver, ui.Actions{
		Start: g.Start,
		Stop:  g.Stop,
		Reset: g.Reset,
		Fit:   g.toggleFit,
	}, hudWidth)
	return g
}

// Start launches the simulation loop.
func (g *Game) Start() {
	if err := g.driver.Start(g.ctx); err != nil && !errors.Is(err, sim.ErrRunning) {
		log.Printf("start: %v", err)
	}
}

// Stop halts the simulation loop.
func (g *Game) Stop() { g.driver.Stop() }

// Reset rerandomizes the terrain when stopped.
func (g *Game) Reset() {
	if err := g.driver.Reset(); err != nil {
		log.Printf("reset: %v", err)
	}
}

func (g *Game) toggleFit() {
	g.fit = !g.fit
	if g.fit {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
		return
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	w, h := g.defaultSize()
	ebiten.SetWindowSize(w, h)
}

// Close stops the loop and remembers the user's settings.
func (g *Game) Close() {
	g.driver.Stop()
	prefs := settings.Preferences{Speed: g.driver.Speed(), Mixing: g.driver.Mixing(), Fit: g.fit}
	if err := g.prefs.Save(prefs); err != nil {
		log.Printf("[settings] %v", err)
	}
}

// Update handles per-frame input.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.driver.Running() {
			g.Stop()
		} else {
			g.Start()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.toggleFit()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.driver.SetSpeed(g.driver.Speed() + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		g.driver.SetSpeed(g.driver.Speed() - 1)
	}

	w, _ := ebiten.WindowSize()
	offset := g.terrainWidth(w)
	g.hud.Update(offset)
	g.overlay.Update()
	return nil
}

// Draw renders the terrain, HUD and overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	panel := g.hud.Width()
	width := float64(b.Dx() - panel)
	height := float64(b.Dy())
	g.driver.View(func(cells [][]combat.Breed, it uint64) {
		g.painter.Draw(screen, cells, width, height)
		g.hud.SetIterations(it)
	})
	g.hud.Draw(screen, b.Dx()-panel, b.Dy())
	g.overlay.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.fit {
		return outsideWidth, outsideHeight
	}
	return g.defaultSize()
}

// WindowSize returns the unscaled window size: the terrain at the configured
// scale plus the HUD panel.
func (g *Game) WindowSize() (int, int) { return g.defaultSize() }

func (g *Game) defaultSize() (int, int) {
	side := g.driver.Size() * g.scale
	return side + g.hud.Width(), side
}

func (g *Game) terrainWidth(windowWidth int) int {
	if g.fit {
		return windowWidth - g.hud.Width()
	}
	return g.driver.Size() * g.scale
}
