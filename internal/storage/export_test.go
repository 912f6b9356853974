package storage

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"
)

func TestExportCSV(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	entries := []ScoreEntry{
		{ID: 1, GameID: "flappy", Score: 12, CreatedAt: at},
		{ID: 2, GameID: "flappy", Score: 3},
	}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, entries); err != nil {
		t.Fatalf("ExportCSV() failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{
		"id,game_id,score,created_at",
		"1,flappy,12,2026-03-01T12:30:00Z",
		"2,flappy,3,",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, expected %d:\n%s", len(lines), len(want), buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, expected %q", i, lines[i], want[i])
		}
	}
}

func TestExportFromStore(t *testing.T) {
	store := openTestStore(t)
	store.RecordScore("ants", 20)
	store.RecordScore("ants", 15)

	all, err := store.AllScores("ants")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, all); err != nil {
		t.Fatalf("ExportCSV() failed: %v", err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 3 {
		t.Errorf("expected header plus 2 rows, got %d lines", n)
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   Summary
	}{
		{"empty", nil, Summary{}},
		{"single", []int{7}, Summary{Count: 1, Mean: 7, Median: 7, P90: 7, Best: 7}},
		{
			"five runs",
			[]int{30, 10, 50, 20, 40},
			Summary{Count: 5, Mean: 30, StdDev: math.Sqrt(250), Median: 30, P90: 50, Best: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var entries []ScoreEntry
			for _, s := range tt.scores {
				entries = append(entries, ScoreEntry{Score: s})
			}

			got := Summarize(entries)
			if got.Count != tt.want.Count || got.Best != tt.want.Best {
				t.Errorf("count/best = %d/%d, expected %d/%d", got.Count, got.Best, tt.want.Count, tt.want.Best)
			}
			for _, f := range []struct {
				name      string
				got, want float64
			}{
				{"mean", got.Mean, tt.want.Mean},
				{"stddev", got.StdDev, tt.want.StdDev},
				{"median", got.Median, tt.want.Median},
				{"p90", got.P90, tt.want.P90},
			} {
				if math.Abs(f.got-f.want) > 1e-9 {
					t.Errorf("%s = %g, expected %g", f.name, f.got, f.want)
				}
			}
		})
	}
}
