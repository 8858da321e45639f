package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-pianoroll/midi"
	"go-pianoroll/score"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	var err error
	switch os.Args[1] {
	case "list":
		err = listPorts()
	case "watch":
		watchPorts()
	case "note":
		err = testNote(arg(2), arg(3))
	case "scale":
		err = testScale(arg(2))
	case "keys":
		err = echoKeys(arg(2))
	default:
		usage()
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func arg(i int) string {
	if i < len(os.Args) {
		return os.Args[i]
	}
	return ""
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list             - List all MIDI ports")
	fmt.Println("  watch            - Report port changes (hot-plug)")
	fmt.Println("  note [port] [n]  - Play note n (default 60) on an output")
	fmt.Println("  scale [port]     - Play a C major scale on an output")
	fmt.Println("  keys [port]      - Print notes from a MIDI keyboard")
}

func listPorts() error {
	fmt.Println("(waiting up to 3 seconds...)")
	ports, err := midi.ListPorts(midi.ScanTimeout)
	if errors.Is(err, midi.ErrScanTimeout) {
		fmt.Println("\nTIMEOUT! CoreMIDI is hung.")
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println("=== MIDI Input Ports ===")
	for i, name := range ports.In {
		fmt.Printf("  %d: %s\n", i, name)
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, name := range ports.Out {
		fmt.Printf("  %d: %s\n", i, name)
	}
	return nil
}

func watchPorts() {
	fmt.Println("Polling for device changes every 2 seconds. Ctrl+C to exit.")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	midi.Watch(ctx, 2*time.Second, func(p midi.Ports) {
		fmt.Printf("\n[%s] Ports changed\n", time.Now().Format("15:04:05"))
		fmt.Printf("  Inputs: %v\n", p.In)
		fmt.Printf("  Outputs: %v\n", p.Out)
	})
}

func testNote(port, note string) error {
	pitch := score.MiddleC
	if note != "" {
		n, err := strconv.Atoi(note)
		if err != nil || n < 0 || n > 127 {
			return fmt.Errorf("bad note %q", note)
		}
		pitch = n
	}
	out, err := midi.OpenOutput(port)
	if err != nil {
		return err
	}
	defer out.Close()

	fmt.Printf("Using output: %s\n", out.Name())
	fmt.Printf("Playing %s (%d)\n", score.PitchName(pitch), pitch)
	out.NoteOn(0, uint8(pitch), 100)
	time.Sleep(500 * time.Millisecond)
	out.NoteOff(0, uint8(pitch))
	return nil
}

func testScale(port string) error {
	out, err := midi.OpenOutput(port)
	if err != nil {
		return err
	}
	defer out.Close()

	fmt.Printf("Using output: %s\n", out.Name())
	var names []string
	for p := score.MiddleC; p <= score.MiddleC+12; p++ {
		if !score.CMajor.Allows(p) {
			continue
		}
		names = append(names, score.PitchName(p))
		out.NoteOn(0, uint8(p), 100)
		time.Sleep(200 * time.Millisecond)
		out.NoteOff(0, uint8(p))
	}
	fmt.Println(strings.Join(names, " "))
	return nil
}

func echoKeys(port string) error {
	kb, err := midi.OpenKeyboard(port)
	if err != nil {
		return err
	}
	defer kb.Close()

	fmt.Printf("Listening on %s. Ctrl+C to exit.\n", kb.Name())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-kb.Events():
			state := "off"
			if ev.On {
				state = "on "
			}
			fmt.Printf("  ch%-2d %s %-3s %3d vel %d\n", ev.Channel+1, state, score.PitchName(int(ev.Note)), ev.Note, ev.Velocity)
		}
	}
}
