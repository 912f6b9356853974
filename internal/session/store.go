package session

import "sync"

// HighScoreStore persists the best score per game.
type HighScoreStore interface {
	// HighScore returns the stored best score, 0 if none.
	HighScore(gameID string) (int, error)

	// RecordScore stores a finished run and returns the high score after
	// the update, which is max(previous high, score).
	RecordScore(gameID string, score int) (int, error)

	// RaiseHighScore persists an improvement made during a run without
	// recording a run. Returns max(previous high, score).
	RaiseHighScore(gameID string, score int) (int, error)
}

// MemoryStore is a HighScoreStore that lives only as long as the process.
type MemoryStore struct {
	mu      sync.Mutex
	high    map[string]int
	history map[string][]int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		high:    make(map[string]int),
		history: make(map[string][]int),
	}
}

func (s *MemoryStore) HighScore(gameID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.high[gameID], nil
}

func (s *MemoryStore) RecordScore(gameID string, score int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history[gameID] = append(s.history[gameID], score)
	if score > s.high[gameID] {
		s.high[gameID] = score
	}
	return s.high[gameID], nil
}

func (s *MemoryStore) RaiseHighScore(gameID string, score int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.high[gameID] = max(s.high[gameID], score)
	return s.high[gameID], nil
}

// Runs returns the recorded scores of a game in order.
func (s *MemoryStore) Runs(gameID string) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.history[gameID]...)
}

var _ HighScoreStore = (*MemoryStore)(nil)
