package leaderboard

import (
	"context"
	"sort"
	"sync"
)

// Store persists scores and answers top-N queries
type Store interface {
	Submit(ctx context.Context, e Entry) error
	Top(ctx context.Context, limit int) ([]Entry, error)
}

// MemoryStore keeps the best score per name in process memory
type MemoryStore struct {
	mu   sync.Mutex
	best map[string]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{best: make(map[string]int64)}
}

// Submit keeps the higher of the stored and submitted score
func (s *MemoryStore) Submit(_ context.Context, e Entry) error {
	if err := ValidateScore(e.Score); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.Score > s.best[e.Name] {
		s.best[e.Name] = e.Score
	}
	return nil
}

// Top orders by score, then name for a stable result
func (s *MemoryStore) Top(_ context.Context, limit int) ([]Entry, error) {
	s.mu.Lock()
	out := make([]Entry, 0, len(s.best))
	for name, score := range s.best {
		out = append(out, Entry{Name: name, Score: score})
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
