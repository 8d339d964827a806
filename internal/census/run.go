package census

import (
	"context"

	"rps-ca/internal/sim"
)

// Run drives d synchronously for batches batches, sampling every sampleEvery
// batches (and once before the first). onSample, when non-nil, sees every
// sampled snapshot; an error from it stops the run. Cancelling ctx stops the
// run between batches and returns the history gathered so far.
func Run(ctx context.Context, d *sim.Driver, batches, sampleEvery int, onSample func(*sim.Snapshot) error) (*History, error) {
	if sampleEvery <= 0 {
		sampleEvery = 1
	}
	h := &History{}
	var snap sim.Snapshot
	sample := func() error {
		d.Snapshot(&snap)
		h.Record(snap.Iterations, snap.Census)
		if onSample != nil {
			return onSample(&snap)
		}
		return nil
	}
	if err := sample(); err != nil {
		return h, err
	}
	for i := 1; i <= batches; i++ {
		if err := ctx.Err(); err != nil {
			return h, err
		}
		d.RunBatch()
		if i%sampleEvery == 0 || i == batches {
			if err := sample(); err != nil {
				return h, err
			}
		}
	}
	return h, nil
}
