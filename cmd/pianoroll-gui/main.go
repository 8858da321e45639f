package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-pianoroll/app"
	"go-pianoroll/config"
	"go-pianoroll/debug"
	"go-pianoroll/gui"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Print(err.Error()[len(flag.ErrHelp.Error()):])
			return
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	base, err := config.Load()
	if err != nil {
		return err
	}
	cfg, err := config.LoadArgs(base, "pianoroll-gui", os.Args[1:], os.Environ())
	if err != nil {
		return err
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	g, err := gui.NewGame(a.Canvas, a.Library, a.Keys())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.WatchOutputs(ctx, func(name string) {
		debug.Log("gui", "output: %q", name)
	})

	return gui.Run(g, "go-pianoroll", cfg.UI.Width, cfg.UI.Height)
}
