//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"rps-ca/internal/app"
	"rps-ca/internal/config"
	"rps-ca/internal/settings"
	"rps-ca/internal/sim"
	"rps-ca/internal/terrain"
	"rps-ca/pkg/core"
)

const appName = "rps-ca"

func main() {
	var remember bool
	cfg, err := config.Parse(os.Args[0], os.Args[1:], func(fs *flag.FlagSet) {
		fs.BoolVar(&remember, "remember", true, "restore and save speed, mixing and fit preferences")
	})
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	store := settings.NewStore(nil)
	if remember {
		store = settings.Open(appName)
		prefs, err := store.Load(settings.Preferences{Speed: cfg.Speed, Mixing: cfg.Mixing, Fit: cfg.Fit})
		if err != nil {
			log.Printf("[settings] %v (using configured values)", err)
		}
		prefs.ApplyTo(cfg)
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	game := app.New(ctx, driver, store, cfg.Scale, cfg.Fit, cfg.Shape == config.ShapeDots)
	defer game.Close()

	w, h := game.WindowSize()
	ebiten.SetWindowTitle("Rock Paper Scissors Lizard Spock")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)
	if cfg.Fit {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Print(err)
	}
}
