package score

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Ext is the file extension of saved scores
const Ext = ".beatz"

// Encode writes one line per beat, each pitch's duration code followed by ';'
func (s *Score) Encode(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bw := bufio.NewWriter(w)
	for x := range s.cells {
		for _, d := range s.cells[x] {
			bw.WriteString(strconv.Itoa(int(d)))
			bw.WriteByte(';')
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Decode replaces the grid with the contents of r. Lines past the last beat
// and codes past the last pitch are ignored. On error the score is left
// untouched.
func (s *Score) Decode(r io.Reader) error {
	numBeats := s.NumBeats()
	cells := make([][]Duration, numBeats)
	for x := range cells {
		cells[x] = make([]Duration, NumPitches)
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	line := 0
	for sc.Scan() {
		line++
		x := line - 1
		fields := strings.Split(strings.TrimSpace(sc.Text()), ";")
		// "a;b;" splits with a trailing empty field
		if n := len(fields); n > 0 && fields[n-1] == "" {
			fields = fields[:n-1]
		}
		for i, f := range fields {
			code, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return fmt.Errorf("line %d, cell %d: %w", line, i+1, err)
			}
			if code < 0 {
				return fmt.Errorf("line %d, cell %d: negative duration %d", line, i+1, code)
			}
			if x < numBeats && i < NumPitches {
				cells[x][i] = Duration(code)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read score: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// the length may have changed while parsing
	for x := range s.cells {
		clear(s.cells[x])
		clear(s.flash[x])
		if x < len(cells) {
			copy(s.cells[x], cells[x])
		}
	}
	return nil
}

// Save writes the score to path, adding the .beatz extension if missing
func (s *Score) Save(path string) (string, error) {
	if !strings.HasSuffix(path, Ext) {
		path += Ext
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("save score: %w", err)
	}
	if err := s.Encode(f); err != nil {
		f.Close()
		return "", fmt.Errorf("save score %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("save score %s: %w", path, err)
	}
	return path, nil
}

// Load reads a score saved by Save
func (s *Score) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load score: %w", err)
	}
	defer f.Close()
	if err := s.Decode(f); err != nil {
		return fmt.Errorf("load score %s: %w", path, err)
	}
	return nil
}
