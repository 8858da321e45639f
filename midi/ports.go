package midi

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// ScanTimeout bounds a port scan; CoreMIDI can hang
const ScanTimeout = 3 * time.Second

// ErrScanTimeout is returned when the driver did not answer in time.
// Restarting the MIDI services usually helps:
//
//	sudo killall coreaudiod midiserver
var ErrScanTimeout = errors.New("midi: port scan timed out")

// ErrNoPort is returned when no port matches the requested name
var ErrNoPort = errors.New("midi: no matching port")

// Ports is a snapshot of the port names the driver reports
type Ports struct {
	In  []string
	Out []string
}

func (p Ports) Equal(o Ports) bool {
	return slices.Equal(p.In, o.In) && slices.Equal(p.Out, o.Out)
}

type scan struct {
	ins  []drivers.In
	outs []drivers.Out
}

func scanPorts(timeout time.Duration) (scan, error) {
	ch := make(chan scan, 1)
	go func() {
		ch <- scan{ins: gomidi.GetInPorts(), outs: gomidi.GetOutPorts()}
	}()
	select {
	case r := <-ch:
		return r, nil
	case <-time.After(timeout):
		return scan{}, ErrScanTimeout
	}
}

// ListPorts returns the names of all input and output ports
func ListPorts(timeout time.Duration) (Ports, error) {
	r, err := scanPorts(timeout)
	if err != nil {
		return Ports{}, err
	}
	var p Ports
	for _, in := range r.ins {
		p.In = append(p.In, in.String())
	}
	for _, out := range r.outs {
		p.Out = append(p.Out, out.String())
	}
	return p, nil
}

// MatchPort returns the index of the first name containing want, case
// insensitively. An empty want matches the first port. -1 if none match.
func MatchPort(names []string, want string) int {
	if len(names) == 0 {
		return -1
	}
	want = strings.ToLower(strings.TrimSpace(want))
	if want == "" {
		return 0
	}
	for i, name := range names {
		if strings.Contains(strings.ToLower(name), want) {
			return i
		}
	}
	return -1
}

func findOut(name string, timeout time.Duration) (drivers.Out, error) {
	r, err := scanPorts(timeout)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(r.outs))
	for i, out := range r.outs {
		names[i] = out.String()
	}
	i := MatchPort(names, name)
	if i < 0 {
		return nil, ErrNoPort
	}
	return r.outs[i], nil
}

func findIn(name string, timeout time.Duration) (drivers.In, error) {
	r, err := scanPorts(timeout)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(r.ins))
	for i, in := range r.ins {
		names[i] = in.String()
	}
	i := MatchPort(names, name)
	if i < 0 {
		return nil, ErrNoPort
	}
	return r.ins[i], nil
}

// Watch polls the port list every interval and calls fn with the first
// snapshot and then on every change. Scans that time out are skipped.
// It blocks until ctx is done.
func Watch(ctx context.Context, interval time.Duration, fn func(Ports)) {
	watch(ctx, interval, func() (Ports, error) { return ListPorts(ScanTimeout) }, fn)
}

func watch(ctx context.Context, interval time.Duration, list func() (Ports, error), fn func(Ports)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last Ports
	first := true
	for {
		if p, err := list(); err == nil && (first || !p.Equal(last)) {
			first = false
			last = p
			fn(p)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
