// Package sim drives a terrain in the background: it runs batches of combat on
// a cadence, mixes on a throttled schedule, and owns the lock that renderers
// share with the simulation loop.
package sim

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"rps-ca/internal/combat"
	"rps-ca/internal/core"
	"rps-ca/internal/terrain"
)

const (
	// DefaultBatchSteps is the number of combats resolved per batch.
	DefaultBatchSteps = 6667
	// DefaultMixPairs is the number of pairs swapped by a triggered mix.
	DefaultMixPairs = 5
	// DefaultMixThreshold is the accumulator level that triggers a mix.
	DefaultMixThreshold = 10

	MinSpeed  = 1
	MaxSpeed  = 10
	MinMixing = 0
	MaxMixing = 10

	// SleepUnit is the inter-batch delay granularity.
	SleepUnit = time.Millisecond
)

// ErrRunning is returned by operations that are not allowed while the loop runs.
var ErrRunning = errors.New("sim: simulation is running")

// ErrNilTerrain is returned by New when no terrain is supplied.
var ErrNilTerrain = errors.New("sim: terrain is nil")

// Options tunes a Driver. Zero values select the defaults.
type Options struct {
	BatchSteps   int
	MixPairs     int
	MixThreshold int
	Speed        int
	Mixing       int
}

func (o Options) withDefaults() Options {
	if o.BatchSteps <= 0 {
		o.BatchSteps = DefaultBatchSteps
	}
	if o.MixPairs <= 0 {
		o.MixPairs = DefaultMixPairs
	}
	if o.MixThreshold <= 0 {
		o.MixThreshold = DefaultMixThreshold
	}
	if o.Speed == 0 {
		o.Speed = MaxSpeed
	}
	return o
}

// Driver runs a terrain and guards it with a single mutex. Every batch and
// every View or Snapshot call holds that mutex for its whole duration.
type Driver struct {
	mu      sync.Mutex
	terrain *terrain.Terrain
	opts    Options
	mixAcc  int
	batches uint64

	speed   atomic.Int32
	mixing  atomic.Int32
	running atomic.Bool

	ctlMu  sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New wraps t in a Driver.
func New(t *terrain.Terrain, opts Options) (*Driver, error) {
	if t == nil {
		return nil, ErrNilTerrain
	}
	opts = opts.withDefaults()
	d := &Driver{terrain: t, opts: opts}
	d.SetSpeed(opts.Speed)
	d.SetMixing(opts.Mixing)
	return d, nil
}

// Speed returns the current speed setting.
func (d *Driver) Speed() int { return int(d.speed.Load()) }

// SetSpeed updates the speed setting, clamped to [MinSpeed, MaxSpeed].
func (d *Driver) SetSpeed(v int) int {
	v = clamp(v, MinSpeed, MaxSpeed)
	d.speed.Store(int32(v))
	return v
}

// Mixing returns the current mixing level.
func (d *Driver) Mixing() int { return int(d.mixing.Load()) }

// SetMixing updates the mixing level, clamped to [MinMixing, MaxMixing].
func (d *Driver) SetMixing(v int) int {
	v = clamp(v, MinMixing, MaxMixing)
	d.mixing.Store(int32(v))
	return v
}

// Delay returns the pause between batches for the current speed.
func (d *Driver) Delay() time.Duration {
	return time.Duration(1+MaxSpeed-d.Speed()) * SleepUnit
}

// Running reports whether the background loop is active.
func (d *Driver) Running() bool { return d.running.Load() }

// Batches returns the number of batches run since the driver was created.
func (d *Driver) Batches() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.batches
}

// RunBatch resolves one batch of combats and, when the mixing accumulator
// reaches the threshold, one mix.
func (d *Driver) RunBatch() {
	mixing := d.Mixing()
	d.mu.Lock()
	defer d.mu.Unlock()
	d.terrain.Iterate(d.opts.BatchSteps)
	d.mixAcc += mixing
	if d.mixAcc >= d.opts.MixThreshold {
		d.terrain.Mix(d.opts.MixPairs)
		d.mixAcc = 0
	}
	d.batches++
}

// Run executes batches until ctx is cancelled. Cancellation is observed
// between batches and interrupts the inter-batch sleep.
func (d *Driver) Run(ctx context.Context) error {
	if !d.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer d.running.Store(false)

	d.mu.Lock()
	d.mixAcc = 0
	d.mu.Unlock()

	for {
		if ctx.Err() != nil {
			return nil
		}
		d.RunBatch()

		timer := time.NewTimer(d.Delay())
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

// Start launches Run on a background goroutine.
func (d *Driver) Start(ctx context.Context) error {
	d.ctlMu.Lock()
	defer d.ctlMu.Unlock()
	if d.loopActive() {
		return ErrRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	d.cancel = cancel
	d.done = done
	go func() {
		defer close(done)
		_ = d.Run(ctx)
	}()
	return nil
}

// Stop cancels the background loop and waits for the in-flight batch to
// finish. It is a no-op when the loop is not running.
func (d *Driver) Stop() {
	d.ctlMu.Lock()
	defer d.ctlMu.Unlock()
	if d.done == nil {
		return
	}
	d.cancel()
	<-d.done
	d.cancel = nil
	d.done = nil
}

// loopActive reports whether a loop started by Start is still alive. A loop
// that ended because its parent context was cancelled is released here.
// ctlMu must be held.
func (d *Driver) loopActive() bool {
	if d.done == nil {
		return false
	}
	select {
	case <-d.done:
		d.cancel()
		d.cancel = nil
		d.done = nil
		return false
	default:
		return true
	}
}

// Reset rerandomizes the terrain. It fails with ErrRunning while the loop runs.
func (d *Driver) Reset() error {
	d.ctlMu.Lock()
	defer d.ctlMu.Unlock()
	if d.loopActive() || d.Running() {
		return ErrRunning
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.terrain.Reset()
	d.mixAcc = 0
	return nil
}

// View calls fn with the live grid and iteration count while holding the
// lock. fn must not retain cells after it returns.
func (d *Driver) View(fn func(cells [][]combat.Breed, iterations uint64)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.terrain.Cells(), d.terrain.Iterations())
}

// Census counts the cells held by each breed.
func (d *Driver) Census() [combat.Count]int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.terrain.Census()
}

// Size returns the terrain side length.
func (d *Driver) Size() int { return d.terrain.Size() }

// Snapshot is a detached copy of the terrain.
type Snapshot struct {
	Size       int
	Cells      []combat.Breed
	Iterations uint64
	Census     [combat.Count]int
}

// At returns the breed at row r, column c.
func (s *Snapshot) At(r, c int) combat.Breed { return s.Cells[r*s.Size+c] }

// Snapshot copies the terrain into dst, reusing its buffer when large enough.
func (d *Driver) Snapshot(dst *Snapshot) {
	d.mu.Lock()
	defer d.mu.Unlock()
	size := d.terrain.Size()
	total := size * size
	if cap(dst.Cells) < total {
		dst.Cells = make([]combat.Breed, total)
	}
	dst.Cells = dst.Cells[:total]
	dst.Size = size
	d.terrain.CopyTo(dst.Cells)
	dst.Iterations = d.terrain.Iterations()
	dst.Census = d.terrain.Census()
}

const (
	ParamSpeed  = "speed"
	ParamMixing = "mixing"
)

// ParameterControls lists the HUD-adjustable settings.
func (d *Driver) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: ParamSpeed, Label: "Speed", Step: 1, Min: MinSpeed, Max: MaxSpeed},
		{Key: ParamMixing, Label: "Mixing", Step: 1, Min: MinMixing, Max: MaxMixing},
	}
}

// SetIntParameter applies a HUD adjustment.
func (d *Driver) SetIntParameter(key string, value int) bool {
	switch key {
	case ParamSpeed:
		d.SetSpeed(value)
	case ParamMixing:
		d.SetMixing(value)
	default:
		return false
	}
	return true
}

// Parameters reports the driver settings and terrain counters.
func (d *Driver) Parameters() core.ParameterSnapshot {
	var iterations uint64
	d.View(func(_ [][]combat.Breed, it uint64) { iterations = it })
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Driver",
			Params: []core.Parameter{
				core.IntParam(ParamSpeed, "Speed", d.Speed()),
				core.IntParam(ParamMixing, "Mixing", d.Mixing()),
				core.BoolParam("running", "Running", d.Running()),
			},
		},
		{
			Name: "Terrain",
			Params: []core.Parameter{
				core.IntParam("size", "Size", d.Size()),
				core.Uint64Param("iterations", "Iterations", iterations),
			},
		},
	}}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
