package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"rps-ca/internal/config"
	"rps-ca/internal/sim"
	"rps-ca/internal/terrain"
	"rps-ca/internal/termview"
	"rps-ca/pkg/core"
)

func main() {
	var paused bool
	cfg, err := config.Parse(os.Args[0], os.Args[1:], func(fs *flag.FlagSet) {
		fs.BoolVar(&paused, "paused", false, "start with the simulation stopped")
	})
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	tr, err := terrain.New(cfg.Size, core.NewRNG(seed))
	if err != nil {
		log.Fatal(err)
	}
	driver, err := sim.New(tr, cfg.DriverOptions())
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("creating screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("initializing screen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)

	if !paused {
		if err := driver.Start(ctx); err != nil {
			screen.Fini()
			log.Fatal(err)
		}
	}

	view := termview.New(screen)
	g.Go(func() error {
		ticker := time.NewTicker(time.Second / time.Duration(cfg.TPS))
		defer ticker.Stop()
		var snap sim.Snapshot
		for {
			driver.Snapshot(&snap)
			view.Draw(&snap, termview.Status{Running: driver.Running(), Speed: driver.Speed(), Mixing: driver.Mixing()})
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	})

	g.Go(func() error {
		defer cancel()
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return nil
			}
			key, ok := ev.(*tcell.EventKey)
			if !ok {
				continue
			}
			switch {
			case key.Key() == tcell.KeyEscape || key.Key() == tcell.KeyCtrlC || key.Rune() == 'q':
				return nil
			case key.Rune() == ' ':
				if driver.Running() {
					driver.Stop()
				} else if err := driver.Start(ctx); err != nil {
					return err
				}
			case key.Rune() == 'r':
				// Refused while running, like the GUI's disabled reset button.
				_ = driver.Reset()
			case key.Rune() == '+' || key.Rune() == '=':
				driver.SetSpeed(driver.Speed() + 1)
			case key.Rune() == '-':
				driver.SetSpeed(driver.Speed() - 1)
			case key.Rune() == ']':
				driver.SetMixing(driver.Mixing() + 1)
			case key.Rune() == '[':
				driver.SetMixing(driver.Mixing() - 1)
			}
		}
	})

	err = g.Wait()
	driver.Stop()
	screen.Fini()
	if err != nil {
		log.Fatal(err)
	}
}
