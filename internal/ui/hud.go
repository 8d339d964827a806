//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"rps-ca/internal/core"
)

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

// HUD renders the control panel to the right of the terrain view.
type HUD struct {
	ctl     Controller
	actions Actions
	width   int
	panel   *ebiten.Image

	snapshot   core.ParameterSnapshot
	running    bool
	iterations string

	controls     []hudControlState
	buttons      []hudButton
	panelOffsetX int
}

type hudControlState struct {
	control  core.ParameterControl
	value    int
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

type hudButton struct {
	label   string
	rect    image.Rectangle
	enabled func(running bool) bool
	action  func()
}

// NewHUD constructs a HUD for the provided controller and panel width.
func NewHUD(ctl Controller, actions Actions, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{ctl: ctl, actions: actions, width: width, iterations: "0"}
	controls := ctl.ParameterControls()
	h.controls = make([]hudControlState, len(controls))
	for i, c := range controls {
		h.controls[i] = hudControlState{control: c}
	}
	h.buttons = []hudButton{
		{label: "Start", enabled: func(running bool) bool { return !running }, action: actions.Start},
		{label: "Stop", enabled: func(running bool) bool { return running }, action: actions.Stop},
		{label: "Reset", enabled: func(running bool) bool { return !running }, action: actions.Reset},
		{label: "Fit", enabled: func(bool) bool { return true }, action: actions.Fit},
	}
	h.layout()
	return h
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// SetIterations sets the counter shown in the label. Callers pass the value
// read together with the grid that is being drawn.
func (h *HUD) SetIterations(n uint64) {
	if h == nil {
		return
	}
	h.iterations = strconv.FormatUint(n, 10)
}

// Update refreshes the cached parameters and handles clicks.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	h.snapshot = h.ctl.Parameters()
	h.refresh()
	h.handleInput()
}

// Draw paints the HUD panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawContents()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) refresh() {
	if p, ok := h.snapshot.Lookup("running"); ok {
		h.running, _ = strconv.ParseBool(p.Value)
	}
	for i := range h.controls {
		state := &h.controls[i]
		p, ok := h.snapshot.Lookup(state.control.Key)
		if !ok {
			state.hasValue = false
			continue
		}
		v, err := strconv.Atoi(p.Value)
		if err != nil {
			state.hasValue = false
			continue
		}
		state.value = v
		state.hasValue = true
	}
}

func (h *HUD) handleInput() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		if pointInRect(px, my, state.minusRect) {
			h.applyAdjustment(state, -1)
			return
		}
		if pointInRect(px, my, state.plusRect) {
			h.applyAdjustment(state, 1)
			return
		}
	}
	for _, b := range h.buttons {
		if pointInRect(px, my, b.rect) && b.enabled(h.running) && b.action != nil {
			b.action()
			return
		}
	}
}

func (h *HUD) applyAdjustment(state *hudControlState, direction int) {
	step := state.control.Step
	if step <= 0 {
		step = 1
	}
	target := state.control.Clamp(state.value + direction*step)
	if target == state.value {
		return
	}
	if h.ctl.SetIntParameter(state.control.Key, target) {
		state.value = target
	}
}

func (h *HUD) canAdjust(state *hudControlState, direction int) bool {
	if !state.hasValue {
		return false
	}
	step := state.control.Step
	if step <= 0 {
		step = 1
	}
	return state.control.Clamp(state.value+direction*step) != state.value
}

func (h *HUD) drawContents() {
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, "Controls", face, panelPadding, headerY, color.RGBA{R: 200, G: 200, B: 210, A: 255})

	for i := range h.controls {
		state := &h.controls[i]
		labelY := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, textColor)
		value := "--"
		valueColor := mutedColor
		if state.hasValue {
			value = strconv.Itoa(state.value)
			valueColor = textColor
		}
		bounds := text.BoundString(face, value)
		valueX := state.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.panel, value, face, valueX, labelY, valueColor)
		h.drawButton(state.minusRect, "-", h.canAdjust(state, -1))
		h.drawButton(state.plusRect, "+", h.canAdjust(state, 1))
	}

	for _, b := range h.buttons {
		h.drawButton(b.rect, b.label, b.enabled(h.running) && b.action != nil)
	}

	infoY := h.buttons[len(h.buttons)-1].rect.Max.Y + infoSpacing
	text.Draw(h.panel, fmt.Sprintf("Iterations: %s", h.iterations), face, panelPadding, infoY, textColor)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	vector.DrawFilledRect(h.panel, float32(rect.Min.X), float32(rect.Min.Y), float32(rect.Dx()), float32(rect.Dy()), bg, false)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layout() {
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minusRect
		h.controls[i].plusRect = plusRect
	}
	top := controlsTop + len(h.controls)*lineHeight + buttonGap
	for i := range h.buttons {
		y := top + i*(buttonSize+buttonGap)
		h.buttons[i].rect = image.Rect(panelPadding, y, h.width-panelPadding, y+buttonSize)
	}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

var (
	textColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	mutedColor = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 24
	controlsTop    = panelPadding + headerBaseline + 14
)
