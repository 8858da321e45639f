package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-pianoroll/app"
	"go-pianoroll/config"
	"go-pianoroll/tui"
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
	cfg, err := config.LoadArgs(base, "go-pianoroll", os.Args[1:], os.Environ())
	if err != nil {
		return err
	}
	if cfg.Snapshot != "" {
		// no sound or keyboard needed to render
		cfg.Output.Enabled, cfg.Keyboard.Enabled = false, false
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if cfg.Snapshot != "" {
		if err := a.Canvas.Snapshot(cfg.Snapshot); err != nil {
			return err
		}
		fmt.Println("wrote", cfg.Snapshot)
		return nil
	}

	m := tui.NewModel(a.Canvas, a.Theme, a.Library)
	m.Keys = a.Keys()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())

	// Follow synth hot-plug in the background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if name := a.OutputName(); name != "" {
		go p.Send(tui.OutputMsg{Name: name})
	}
	go a.WatchOutputs(ctx, func(name string) {
		p.Send(tui.OutputMsg{Name: name})
	})

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
