package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/pinball/parameter"
)

// LocalStore is the on-disk fallback: every run, best first, capped at LocalStoreCap
type LocalStore struct {
	path string
	mu   sync.Mutex
}

func NewLocalStore(path string) *LocalStore {
	return &LocalStore{path: path}
}

// DefaultLocalPath is the scores file under the user config directory
func DefaultLocalPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "pinball", "scores.msgpack")
}

func (s *LocalStore) Path() string {
	return s.path
}

func (s *LocalStore) Submit(_ context.Context, e Entry) error {
	e.Name = SanitizeName(e.Name)
	if err := ValidateScore(e.Score); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	entries = Normalize(append(entries, e))
	if len(entries) > parameter.LocalStoreCap {
		entries = entries[:parameter.LocalStoreCap]
	}
	return s.save(entries)
}

func (s *LocalStore) Top(_ context.Context, limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	entries = Normalize(entries)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// load returns nothing for a missing file; a corrupt file reads as empty
// and is replaced on the next save
func (s *LocalStore) load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read local scores: %w", err)
	}

	var entries []Entry
	if err := msgpack.Unmarshal(data, &entries); err != nil {
		return nil, nil
	}
	return entries, nil
}

// save writes a temp file and renames it over the store
func (s *LocalStore) save(entries []Entry) error {
	data, err := msgpack.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode local scores: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create score dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write local scores: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace local scores: %w", err)
	}
	return nil
}
