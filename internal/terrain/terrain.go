// Package terrain implements the toroidal battlefield: a square grid of breeds
// that evolves through random neighbor combat and random pair swaps.
//
// A Terrain performs no locking. Callers that read Cells while another
// goroutine calls Iterate or Mix must hold a shared lock around both.
package terrain

import (
	"errors"
	"reflect"

	"rps-ca/internal/combat"
	"rps-ca/pkg/core"
)

// DefaultSize is the side length used when no size is configured.
const DefaultSize = 100

var (
	// ErrInvalidSize is returned when the requested side length is not positive.
	ErrInvalidSize = errors.New("terrain: size must be positive")
	// ErrNilSource is returned when no random source is supplied.
	ErrNilSource = errors.New("terrain: random source is nil")
)

// Location addresses a single cell.
type Location struct {
	Row, Col int
}

// offsets are the von Neumann neighbor displacements, in draw order.
var offsets = [4]Location{
	{Row: -1, Col: 0},
	{Row: 0, Col: -1}, {Row: 0, Col: 1},
	{Row: 1, Col: 0},
}

// Terrain stores a square grid of breeds in row-major order plus the number of
// combats resolved since construction or the last Reset.
type Terrain struct {
	size       int
	data       []combat.Breed
	rows       [][]combat.Breed
	rng        core.Source
	iterations uint64
}

// New allocates a size x size terrain and fills it with random breeds.
func New(size int, rng core.Source) (*Terrain, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	if isNil(rng) {
		return nil, ErrNilSource
	}
	data := make([]combat.Breed, size*size)
	rows := make([][]combat.Breed, size)
	for r := range rows {
		rows[r] = data[r*size : (r+1)*size : (r+1)*size]
	}
	t := &Terrain{size: size, data: data, rows: rows, rng: rng}
	t.Reset()
	return t, nil
}

// Size returns the side length of the grid.
func (t *Terrain) Size() int { return t.size }

// Cells exposes the live rows of the grid. The slices alias internal state.
func (t *Terrain) Cells() [][]combat.Breed { return t.rows }

// Iterations returns the number of combats resolved since the last reset.
func (t *Terrain) Iterations() uint64 { return t.iterations }

// At returns the breed stored at loc after toroidal wrapping.
func (t *Terrain) At(loc Location) combat.Breed {
	loc = t.Wrap(loc)
	return t.rows[loc.Row][loc.Col]
}

// Wrap applies toroidal wrapping to loc.
func (t *Terrain) Wrap(loc Location) Location {
	loc.Row = (loc.Row%t.size + t.size) % t.size
	loc.Col = (loc.Col%len(t.rows[loc.Row]) + len(t.rows[loc.Row])) % len(t.rows[loc.Row])
	return loc
}

// Neighbor returns the neighbor of loc in direction offset (0..3: up, left,
// right, down).
func (t *Terrain) Neighbor(loc Location, offset int) Location {
	d := offsets[offset]
	return t.Wrap(Location{Row: loc.Row + d.Row, Col: loc.Col + d.Col})
}

// Neighbors returns all four toroidal neighbors of loc.
func (t *Terrain) Neighbors(loc Location) [4]Location {
	var out [4]Location
	for i := range offsets {
		out[i] = t.Neighbor(loc, i)
	}
	return out
}

// Reset fills every cell with an independent random breed and zeroes the
// iteration counter.
func (t *Terrain) Reset() {
	for _, row := range t.rows {
		for i := range row {
			row[i] = combat.Random(t.rng)
		}
	}
	t.iterations = 0
}

// Iterate resolves steps random combats. Each picks a random cell and one of
// its four neighbors; the loser's cell takes the winner's breed. Identical
// breeds leave the grid untouched. The counter advances once, after the batch.
func (t *Terrain) Iterate(steps int) {
	if steps <= 0 {
		return
	}
	for i := 0; i < steps; i++ {
		player := t.randomLocation()
		opponent := t.Neighbor(player, t.rng.IntN(len(offsets)))
		p := t.rows[player.Row][player.Col]
		o := t.rows[opponent.Row][opponent.Col]
		if p == o {
			continue
		}
		if combat.Outcome(p, o) > 0 {
			t.rows[opponent.Row][opponent.Col] = p
		} else {
			t.rows[player.Row][player.Col] = o
		}
	}
	t.iterations += uint64(steps)
}

// Mix swaps the contents of pairs randomly chosen pairs of distinct cells.
// The number of cells holding each breed never changes.
func (t *Terrain) Mix(pairs int) {
	if pairs <= 0 || len(t.data) < 2 {
		return
	}
	for i := 0; i < pairs; i++ {
		a := t.randomLocation()
		b := t.randomLocation()
		for a == b {
			b = t.randomLocation()
		}
		t.rows[a.Row][a.Col], t.rows[b.Row][b.Col] = t.rows[b.Row][b.Col], t.rows[a.Row][a.Col]
	}
}

// Census counts the cells held by each breed.
func (t *Terrain) Census() [combat.Count]int {
	var counts [combat.Count]int
	for _, b := range t.data {
		counts[b]++
	}
	return counts
}

// CopyTo copies the grid into dst in row-major order and returns the number
// of cells written.
func (t *Terrain) CopyTo(dst []combat.Breed) int {
	return copy(dst, t.data)
}

// isNil also catches a nil pointer stored in a non-nil interface.
func isNil(src core.Source) bool {
	if src == nil {
		return true
	}
	v := reflect.ValueOf(src)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func (t *Terrain) randomLocation() Location {
	row := t.rng.IntN(len(t.rows))
	return Location{Row: row, Col: t.rng.IntN(len(t.rows[row]))}
}
