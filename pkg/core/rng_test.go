package core

import (
	"math/rand/v2"
	"testing"
)

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 1000; i++ {
		x, y := a.IntN(97), b.IntN(97)
		if x != y {
			t.Fatalf("draw %d diverged: %d vs %d", i, x, y)
		}
		if x < 0 || x >= 97 {
			t.Fatalf("draw %d out of range: %d", i, x)
		}
	}
}

func TestRNGSatisfiesSource(t *testing.T) {
	var _ Source = NewRNG(1)
	var _ Source = rand.New(rand.NewPCG(1, 2))
}
