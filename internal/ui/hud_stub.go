//go:build !ebiten

package ui

import "rps-ca/internal/core"

// Controller is the part of the simulation driver the HUD talks to.
type Controller interface {
	core.ParameterControlsProvider
	core.IntParameterSetter
	Parameters() core.ParameterSnapshot
}

// Actions are invoked when the lifecycle buttons are clicked.
type Actions struct {
	Start func()
	Stop  func()
	Reset func()
	Fit   func()
}

// HUD is a no-op placeholder for headless builds.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(Controller, Actions, int) *HUD { return nil }

// Width is zero in the headless build.
func (h *HUD) Width() int { return 0 }

// SetIterations is a no-op in the headless build.
func (h *HUD) SetIterations(uint64) {}

// Update is a no-op in the headless build.
func (h *HUD) Update(int) {}

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any, int, int) {}
