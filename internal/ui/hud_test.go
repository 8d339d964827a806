//go:build ebiten

package ui

import (
	"testing"

	"rps-ca/internal/sim"
	"rps-ca/internal/terrain"
	"rps-ca/pkg/core"
)

func TestIterationLabelFollowsDrawnFrame(t *testing.T) {
	tr, err := terrain.New(4, core.NewRNG(3))
	if err != nil {
		t.Fatal(err)
	}
	d, err := sim.New(tr, sim.Options{BatchSteps: 10})
	if err != nil {
		t.Fatal(err)
	}
	h := &HUD{ctl: d}
	h.SetIterations(42)

	d.RunBatch()
	h.snapshot = d.Parameters()
	h.refresh()
	if h.iterations != "42" {
		t.Fatalf("label = %q, want the value set with the frame", h.iterations)
	}
}
