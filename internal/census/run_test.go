package census

import (
	"context"
	"errors"
	"testing"

	"rps-ca/internal/sim"
	"rps-ca/internal/terrain"
	"rps-ca/pkg/core"
)

func newDriver(t *testing.T, seed int64) *sim.Driver {
	t.Helper()
	tr, err := terrain.New(10, core.NewRNG(seed))
	if err != nil {
		t.Fatal(err)
	}
	d, err := sim.New(tr, sim.Options{BatchSteps: 50, Mixing: 5})
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestRunSamples(t *testing.T) {
	d := newDriver(t, 1)
	seen := 0
	h, err := Run(context.Background(), d, 25, 10, func(s *sim.Snapshot) error {
		seen++
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []uint64{0, 500, 1000, 1250}
	if len(h.Samples) != len(want) || seen != len(want) {
		t.Fatalf("got %d samples (%d callbacks), want %d", len(h.Samples), seen, len(want))
	}
	for i, s := range h.Samples {
		if s.Iterations != want[i] {
			t.Fatalf("sample %d at %d iterations, want %d", i, s.Iterations, want[i])
		}
		if s.Total() != 100 {
			t.Fatalf("sample %d covers %d cells", i, s.Total())
		}
	}
}

func TestRunIsDeterministic(t *testing.T) {
	a, err := Run(context.Background(), newDriver(t, 9), 40, 5, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Run(context.Background(), newDriver(t, 9), 40, 5, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Samples {
		if a.Samples[i] != b.Samples[i] {
			t.Fatalf("sample %d differs: %+v vs %+v", i, a.Samples[i], b.Samples[i])
		}
	}
}

func TestRunStopsOnCallbackError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Run(context.Background(), newDriver(t, 2), 10, 1, func(*sim.Snapshot) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want boom", err)
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h, err := Run(ctx, newDriver(t, 3), 10, 1, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if len(h.Samples) != 1 {
		t.Fatalf("got %d samples, want only the initial one", len(h.Samples))
	}
}
