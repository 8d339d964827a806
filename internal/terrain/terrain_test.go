package terrain

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"rps-ca/internal/combat"
	"rps-ca/pkg/core"
)

func newTerrain(t *testing.T, size int, seed int64) *Terrain {
	t.Helper()
	tr, err := New(size, core.NewRNG(seed))
	if err != nil {
		t.Fatalf("New(%d): %v", size, err)
	}
	return tr
}

func snapshot(tr *Terrain) []combat.Breed {
	out := make([]combat.Breed, tr.Size()*tr.Size())
	tr.CopyTo(out)
	return out
}

func TestNewRejectsInvalidArguments(t *testing.T) {
	if _, err := New(0, core.NewRNG(1)); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("New(0) error = %v, want ErrInvalidSize", err)
	}
	if _, err := New(-3, core.NewRNG(1)); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("New(-3) error = %v, want ErrInvalidSize", err)
	}
	if _, err := New(4, nil); !errors.Is(err, ErrNilSource) {
		t.Fatalf("New(4, nil) error = %v, want ErrNilSource", err)
	}
	var rng *core.RNG
	if _, err := New(4, rng); !errors.Is(err, ErrNilSource) {
		t.Fatalf("New(4, (*core.RNG)(nil)) error = %v, want ErrNilSource", err)
	}
	var r *rand.Rand
	if _, err := New(4, r); !errors.Is(err, ErrNilSource) {
		t.Fatalf("New(4, (*rand.Rand)(nil)) error = %v, want ErrNilSource", err)
	}
}

func TestResetFillsValidBreeds(t *testing.T) {
	for _, size := range []int{1, 2, 7, 50} {
		tr := newTerrain(t, size, int64(size))
		cells := tr.Cells()
		if len(cells) != size {
			t.Fatalf("size %d: got %d rows", size, len(cells))
		}
		for r, row := range cells {
			if len(row) != size {
				t.Fatalf("size %d: row %d has %d cells", size, r, len(row))
			}
			for c, b := range row {
				if !b.Valid() {
					t.Fatalf("size %d: cell (%d,%d) holds invalid breed %d", size, r, c, b)
				}
			}
		}
		if tr.Iterations() != 0 {
			t.Fatalf("size %d: iterations = %d after construction", size, tr.Iterations())
		}

		tr.Iterate(100)
		tr.Reset()
		if tr.Iterations() != 0 {
			t.Fatalf("size %d: iterations = %d after reset", size, tr.Iterations())
		}
	}
}

func TestIterateAdvancesCounterByBatch(t *testing.T) {
	tr := newTerrain(t, 10, 3)
	var want uint64
	for _, steps := range []int{0, 1, 17, 6667} {
		tr.Iterate(steps)
		want += uint64(steps)
		if got := tr.Iterations(); got != want {
			t.Fatalf("after Iterate(%d) iterations = %d, want %d", steps, got, want)
		}
	}
}

func TestZeroCountsAreNoOps(t *testing.T) {
	tr := newTerrain(t, 8, 11)
	before := snapshot(tr)

	tr.Iterate(0)
	tr.Mix(0)
	tr.Iterate(-5)
	tr.Mix(-5)

	if !slices.Equal(before, snapshot(tr)) {
		t.Fatal("zero-count operations changed the grid")
	}
	if tr.Iterations() != 0 {
		t.Fatalf("iterations = %d, want 0", tr.Iterations())
	}
}

func TestMixPreservesCensus(t *testing.T) {
	tr := newTerrain(t, 20, 5)
	want := tr.Census()
	before := snapshot(tr)
	for i := 0; i < 50; i++ {
		tr.Mix(37)
	}
	if got := tr.Census(); got != want {
		t.Fatalf("census changed by Mix: got %v want %v", got, want)
	}
	if slices.Equal(before, snapshot(tr)) {
		t.Fatal("expected Mix to move at least some cells")
	}
	if tr.Iterations() != 0 {
		t.Fatal("Mix must not touch the iteration counter")
	}
}

func TestMixOnSingleCellGrid(t *testing.T) {
	tr := newTerrain(t, 1, 5)
	before := tr.Cells()[0][0]
	tr.Mix(10)
	if tr.Cells()[0][0] != before {
		t.Fatal("Mix on a 1x1 grid changed its only cell")
	}
}

func TestSingleStepFlipsAtMostOneCell(t *testing.T) {
	tr := newTerrain(t, 6, 21)
	for i := 0; i < 500; i++ {
		before := snapshot(tr)
		tr.Iterate(1)
		after := snapshot(tr)

		changed := -1
		for idx := range before {
			if before[idx] == after[idx] {
				continue
			}
			if changed >= 0 {
				t.Fatalf("step %d changed cells %d and %d", i, changed, idx)
			}
			changed = idx
		}
		if changed < 0 {
			continue
		}

		loc := Location{Row: changed / tr.Size(), Col: changed % tr.Size()}
		adopted := false
		for _, n := range tr.Neighbors(loc) {
			if before[n.Row*tr.Size()+n.Col] == after[changed] {
				adopted = true
			}
		}
		if !adopted {
			t.Fatalf("step %d: cell %v took breed %v not held by any neighbor", i, loc, after[changed])
		}
		if combat.Outcome(after[changed], before[changed]) != 1 {
			t.Fatalf("step %d: %v replaced %v without beating it", i, after[changed], before[changed])
		}
	}
}

func TestTiesNeverMutate(t *testing.T) {
	tr := newTerrain(t, 4, 2)
	for _, row := range tr.Cells() {
		for i := range row {
			row[i] = combat.Lizard
		}
	}
	tr.Iterate(1000)
	for _, row := range tr.Cells() {
		for _, b := range row {
			if b != combat.Lizard {
				t.Fatalf("uniform grid changed to %v", b)
			}
		}
	}
	if tr.Iterations() != 1000 {
		t.Fatalf("iterations = %d, want 1000", tr.Iterations())
	}
}

func TestToroidalNeighbors(t *testing.T) {
	tr := newTerrain(t, 5, 1)
	got := tr.Neighbors(Location{Row: 0, Col: 0})
	want := [4]Location{{Row: 4, Col: 0}, {Row: 0, Col: 4}, {Row: 0, Col: 1}, {Row: 1, Col: 0}}
	if got != want {
		t.Fatalf("Neighbors(0,0) = %v, want %v", got, want)
	}

	got = tr.Neighbors(Location{Row: 4, Col: 4})
	want = [4]Location{{Row: 3, Col: 4}, {Row: 4, Col: 3}, {Row: 4, Col: 0}, {Row: 0, Col: 4}}
	if got != want {
		t.Fatalf("Neighbors(4,4) = %v, want %v", got, want)
	}

	if w := tr.Wrap(Location{Row: -6, Col: 12}); w != (Location{Row: 4, Col: 2}) {
		t.Fatalf("Wrap(-6,12) = %v", w)
	}
}

func TestDeterministicReplay(t *testing.T) {
	a, err := New(30, rand.New(rand.NewPCG(99, 7)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(30, rand.New(rand.NewPCG(99, 7)))
	if err != nil {
		t.Fatal(err)
	}

	drive := func(tr *Terrain) {
		tr.Iterate(5000)
		tr.Mix(5)
		tr.Reset()
		tr.Iterate(12000)
		tr.Mix(40)
		tr.Iterate(3)
	}
	drive(a)
	drive(b)

	if !slices.Equal(snapshot(a), snapshot(b)) {
		t.Fatal("identical random streams produced different grids")
	}
	if a.Iterations() != b.Iterations() {
		t.Fatalf("iterations diverged: %d vs %d", a.Iterations(), b.Iterations())
	}
}

func TestCellsAliasBackingStore(t *testing.T) {
	tr := newTerrain(t, 3, 8)
	rows := tr.Cells()
	rows[1][2] = combat.Spock
	if tr.At(Location{Row: 1, Col: 2}) != combat.Spock {
		t.Fatal("Cells must expose live state")
	}
	tr.Iterate(100)
	tr.Reset()
	if &tr.Cells()[0][0] != &rows[0][0] {
		t.Fatal("grid storage was reallocated")
	}
}

func TestCensusTotals(t *testing.T) {
	tr := newTerrain(t, 13, 4)
	tr.Iterate(2000)
	total := 0
	for _, n := range tr.Census() {
		total += n
	}
	if total != 13*13 {
		t.Fatalf("census total = %d, want %d", total, 13*13)
	}
}
