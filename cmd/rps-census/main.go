package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"

	"rps-ca/internal/census"
	"rps-ca/internal/combat"
	"rps-ca/internal/config"
	"rps-ca/internal/record"
	"rps-ca/internal/sim"
	"rps-ca/internal/terrain"
	"rps-ca/pkg/core"
)

type options struct {
	batches     int
	sampleEvery int
	csvPath     string
	chartPath   string
	videoPath   string
	videoScale  int
	fps         int
	sweep       bool
	runs        int
	workers     int
}

func (o *options) bind(fs *flag.FlagSet) {
	fs.IntVar(&o.batches, "batches", 3000, "batches to run")
	fs.IntVar(&o.sampleEvery, "sample", 10, "record a census every N batches")
	fs.StringVar(&o.csvPath, "csv", "", "write the census history to this CSV file")
	fs.StringVar(&o.chartPath, "chart", "", "write a population chart to this PNG file")
	fs.StringVar(&o.videoPath, "video", "", "write sampled frames to this MJPEG AVI file")
	fs.IntVar(&o.videoScale, "video-scale", 4, "pixels per cell in the video")
	fs.IntVar(&o.fps, "fps", 25, "video frame rate")
	fs.BoolVar(&o.sweep, "sweep", false, "sweep every mixing level instead of a single run")
	fs.IntVar(&o.runs, "runs", 4, "runs per mixing level when sweeping")
	fs.IntVar(&o.workers, "workers", runtime.NumCPU(), "number of worker goroutines when sweeping")
}

func main() {
	var opts options
	cfg, err := config.Parse(os.Args[0], os.Args[1:], opts.bind)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if opts.sweep {
		err = runSweep(ctx, cfg, opts)
	} else {
		err = runSingle(ctx, cfg, opts)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func newDriver(cfg *config.Config, seed int64, mixing int) (*sim.Driver, error) {
	tr, err := terrain.New(cfg.Size, core.NewRNG(seed))
	if err != nil {
		return nil, err
	}
	dopts := cfg.DriverOptions()
	dopts.Mixing = mixing
	return sim.New(tr, dopts)
}

func runSingle(ctx context.Context, cfg *config.Config, opts options) (err error) {
	driver, err := newDriver(cfg, cfg.Seed, cfg.Mixing)
	if err != nil {
		return err
	}

	var onSample func(*sim.Snapshot) error
	if opts.videoPath != "" {
		rec, rerr := record.New(opts.videoPath, cfg.Size, opts.videoScale, opts.fps)
		if rerr != nil {
			return rerr
		}
		defer func() {
			if cerr := rec.Close(); cerr != nil && err == nil {
				err = cerr
			}
			log.Printf("[census] wrote %d frames to %s", rec.Frames(), opts.videoPath)
		}()
		onSample = rec.AddFrame
	}

	history, err := census.Run(ctx, driver, opts.batches, opts.sampleEvery, onSample)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if opts.csvPath != "" {
		if err := writeFile(opts.csvPath, history.WriteCSV); err != nil {
			return err
		}
	}
	if opts.chartPath != "" {
		if err := writeFile(opts.chartPath, func(w io.Writer) error { return history.RenderChart(w, 1024, 480) }); err != nil {
			return err
		}
	}

	last, _ := history.Last()
	fmt.Printf("seed=%d size=%d mixing=%d iterations=%d survivors=%d\n", cfg.Seed, cfg.Size, cfg.Mixing, last.Iterations, last.Survivors())
	for i, n := range last.Counts {
		b := combat.Breed(i)
		fmt.Printf("  %-9s %6d (%5.1f%%)  beats %v\n", b, n, 100*float64(n)/float64(last.Total()), combat.Beats(b))
	}
	return nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
