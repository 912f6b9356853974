package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Parent directories are created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.RecordScore("flappy", score); err != nil {
			t.Fatalf("RecordScore() failed: %v", err)
		}
	}
	if _, err := store.RecordScore("ants", 20); err != nil {
		t.Fatalf("RecordScore() failed: %v", err)
	}

	scores, err := store.TopScores("flappy", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, w)
		}
		if scores[i].GameID != "flappy" {
			t.Errorf("scores[%d] belongs to %q", i, scores[i].GameID)
		}
	}

	limited, err := store.TopScores("flappy", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 scores with limit, got %d", len(limited))
	}

	all, err := store.AllScores("flappy")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	// Play order
	if len(all) != 3 || all[0].Score != 100 || all[2].Score != 200 {
		t.Errorf("AllScores() = %+v", all)
	}
}

func TestRecordScoreKeepsMax(t *testing.T) {
	store := openTestStore(t)

	tests := []struct {
		score    int
		wantHigh int
	}{
		{5, 5},
		{3, 5},
		{9, 9},
		{0, 9},
		{9, 9},
	}

	for _, tt := range tests {
		high, err := store.RecordScore("ants", tt.score)
		if err != nil {
			t.Fatalf("RecordScore(%d) failed: %v", tt.score, err)
		}
		if high != tt.wantHigh {
			t.Errorf("RecordScore(%d) = %d, expected %d", tt.score, high, tt.wantHigh)
		}
	}

	high, err := store.HighScore("ants")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 9 {
		t.Errorf("HighScore() = %d, expected 9", high)
	}

	// Every run is kept in the history
	all, _ := store.AllScores("ants")
	if len(all) != len(tests) {
		t.Errorf("history has %d runs, expected %d", len(all), len(tests))
	}
}

func TestRaiseHighScore(t *testing.T) {
	store := openTestStore(t)

	for _, tt := range []struct{ score, want int }{{7, 7}, {4, 7}, {9, 9}} {
		high, err := store.RaiseHighScore("flappy", tt.score)
		if err != nil {
			t.Fatalf("RaiseHighScore(%d) failed: %v", tt.score, err)
		}
		if high != tt.want {
			t.Errorf("RaiseHighScore(%d) = %d, expected %d", tt.score, high, tt.want)
		}
	}

	// The history is untouched
	all, err := store.AllScores("flappy")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("AllScores() = %v, expected none", all)
	}
}

func TestHighScoreNoData(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("nonexistent")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for nonexistent game, got %d", high)
	}
}

func TestHighScoreSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.RecordScore("flappy", 12); err != nil {
		t.Fatalf("RecordScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if high, _ := store.HighScore("flappy"); high != 12 {
		t.Errorf("HighScore() after reopen = %d, expected 12", high)
	}
}

func TestClearScores(t *testing.T) {
	store := openTestStore(t)

	store.RecordScore("flappy", 100)
	store.RecordScore("flappy", 200)
	store.RecordScore("ants", 7)

	if err := store.ClearScores("flappy"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("flappy", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if high, _ := store.HighScore("flappy"); high != 0 {
		t.Errorf("HighScore() after clear = %d", high)
	}

	// Other games untouched
	if high, _ := store.HighScore("ants"); high != 7 {
		t.Errorf("ants high score = %d, expected 7", high)
	}
}

func TestGameStats(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{10, 20, 30} {
		store.RecordScore("flappy", score)
	}

	stats, err := store.GetGameStats("flappy")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.HighScore != 30 || stats.TotalScore != 60 || stats.AvgScore != 20 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	empty, err := store.GetGameStats("ants")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 {
		t.Errorf("empty stats = %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 1 || all["flappy"] == nil || all["flappy"].HighScore != 30 {
		t.Errorf("GetAllGamesStats() = %+v", all)
	}
}
