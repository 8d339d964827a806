package main

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"rps-ca/internal/census"
	"rps-ca/internal/combat"
	"rps-ca/internal/config"
	"rps-ca/internal/sim"
)

type sweepResult struct {
	mixing    int
	run       int
	survivors int
	extinct   bool
	extinctAt uint64
	dominant  combat.Breed
}

func runSweep(ctx context.Context, cfg *config.Config, opts options) error {
	levels := sim.MaxMixing - sim.MinMixing + 1
	results := make([]sweepResult, levels*opts.runs)
	fmt.Printf("Sweeping %d mixing levels x %d runs (%d workers, %d batches)\n", levels, opts.runs, opts.workers, opts.batches)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.workers, 1))
	for level := sim.MinMixing; level <= sim.MaxMixing; level++ {
		for run := 0; run < opts.runs; run++ {
			idx := (level-sim.MinMixing)*opts.runs + run
			seed := cfg.Seed + int64(level)*7919 + int64(run)
			g.Go(func() error {
				res, err := runScenario(ctx, cfg, seed, level, opts)
				if err != nil {
					return err
				}
				res.run = run
				results[idx] = res
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("%-7s %-4s %-9s %-14s %s\n", "mixing", "run", "survivors", "first-extinct", "dominant")
	for _, r := range results {
		at := "-"
		if r.extinct {
			at = fmt.Sprintf("%d", r.extinctAt)
		}
		fmt.Printf("%-7d %-4d %-9d %-14s %s\n", r.mixing, r.run, r.survivors, at, r.dominant)
	}
	return nil
}

func runScenario(ctx context.Context, cfg *config.Config, seed int64, mixing int, opts options) (sweepResult, error) {
	driver, err := newDriver(cfg, seed, mixing)
	if err != nil {
		return sweepResult{}, err
	}
	history, err := census.Run(ctx, driver, opts.batches, opts.sampleEvery, nil)
	if err != nil {
		return sweepResult{}, err
	}
	last, _ := history.Last()
	res := sweepResult{mixing: mixing, survivors: last.Survivors()}
	res.extinctAt, res.extinct = history.FirstExtinction()
	for _, b := range combat.Breeds() {
		if last.Counts[b] > last.Counts[res.dominant] {
			res.dominant = b
		}
	}
	return res, nil
}
