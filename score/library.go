package score

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

const timestampLayout = "2006-01-02_15-04-05"

// SaveInfo is a timestamped save in a Library
type SaveInfo struct {
	Filename  string
	Name      string // parsed from filename (empty if unnamed)
	Timestamp time.Time
}

// Library is a directory of timestamped .beatz saves
type Library struct {
	Dir string

	now func() time.Time
}

// DefaultLibraryDir returns ~/.config/go-pianoroll/scores
func DefaultLibraryDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-pianoroll", "scores"), nil
}

func NewLibrary(dir string) *Library {
	return &Library{Dir: dir, now: time.Now}
}

// List returns the saves, newest first. A missing directory is empty.
func (l *Library) List() ([]SaveInfo, error) {
	entries, err := os.ReadDir(l.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SaveInfo{}, nil
		}
		return nil, fmt.Errorf("list scores: %w", err)
	}

	var saves []SaveInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, ok := parseSaveName(entry.Name())
		if ok {
			saves = append(saves, info)
		}
	}
	sort.Slice(saves, func(i, j int) bool {
		if saves[i].Timestamp.Equal(saves[j].Timestamp) {
			return saves[i].Filename > saves[j].Filename
		}
		return saves[i].Timestamp.After(saves[j].Timestamp)
	})
	return saves, nil
}

// parseSaveName accepts 2024-01-15_14-30-00.beatz or 2024-01-15_14-30-00_name.beatz
func parseSaveName(filename string) (SaveInfo, bool) {
	if !strings.HasSuffix(filename, Ext) {
		return SaveInfo{}, false
	}
	base := strings.TrimSuffix(filename, Ext)
	if len(base) < len(timestampLayout) {
		return SaveInfo{}, false
	}
	ts, err := time.ParseInLocation(timestampLayout, base[:len(timestampLayout)], time.Local)
	if err != nil {
		return SaveInfo{}, false
	}
	info := SaveInfo{Filename: filename, Timestamp: ts}
	if rest := base[len(timestampLayout):]; len(rest) > 1 && rest[0] == '_' {
		info.Name = rest[1:]
	}
	return info, true
}

// Save writes s as a new timestamped file and returns its path
func (l *Library) Save(s *Score, name string) (string, error) {
	if err := os.MkdirAll(l.Dir, 0755); err != nil {
		return "", fmt.Errorf("save score: %w", err)
	}
	filename := l.now().Format(timestampLayout)
	if name = sanitizeFilename(name); name != "" {
		filename += "_" + name
	}
	return s.Save(filepath.Join(l.Dir, filename+Ext))
}

// Load reads a save into s; an empty filename loads the most recent one
func (l *Library) Load(s *Score, filename string) (string, error) {
	if filename == "" {
		latest, err := l.Latest()
		if err != nil {
			return "", err
		}
		filename = latest.Filename
	}
	path := filepath.Join(l.Dir, filename)
	if err := s.Load(path); err != nil {
		return "", err
	}
	return path, nil
}

// Latest returns the newest save
func (l *Library) Latest() (SaveInfo, error) {
	saves, err := l.List()
	if err != nil {
		return SaveInfo{}, err
	}
	if len(saves) == 0 {
		return SaveInfo{}, fmt.Errorf("no saves found in %s", l.Dir)
	}
	return saves[0], nil
}

// Find returns the saves whose name or filename fuzzy-matches query,
// newest first
func (l *Library) Find(query string) ([]SaveInfo, error) {
	saves, err := l.List()
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return saves, nil
	}
	names := make([]string, len(saves))
	for i, s := range saves {
		names[i] = strings.TrimSuffix(s.Filename, Ext)
	}
	matched := make(map[int]bool)
	for _, r := range fuzzy.RankFindNormalizedFold(query, names) {
		matched[r.OriginalIndex] = true
	}
	found := make([]SaveInfo, 0, len(matched))
	for i, s := range saves {
		if matched[i] {
			found = append(found, s)
		}
	}
	return found, nil
}

// Age says how long ago info was saved, e.g. "3 minutes ago"
func (l *Library) Age(info SaveInfo) string {
	return humanize.RelTime(info.Timestamp, l.now(), "ago", "from now")
}

func (l *Library) Delete(filename string) error {
	if err := os.Remove(filepath.Join(l.Dir, filename)); err != nil {
		return fmt.Errorf("delete score: %w", err)
	}
	return nil
}

// sanitizeFilename removes characters that are problematic in filenames
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	name = strings.NewReplacer(" ", "-", "/", "-", "\\", "-", ":", "-").Replace(name)
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(`*?"<>|`, r) {
			return -1
		}
		return r
	}, name)
}
