package storage

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
)

// csvRecord is the exported shape of a ScoreEntry.
type csvRecord struct {
	ID        int64  `csv:"id"`
	GameID    string `csv:"game_id"`
	Score     int    `csv:"score"`
	CreatedAt string `csv:"created_at"`
}

// ExportCSV writes entries as CSV with a header row.
func ExportCSV(w io.Writer, entries []ScoreEntry) error {
	records := make([]csvRecord, len(entries))
	for i, e := range entries {
		records[i] = csvRecord{
			ID:     e.ID,
			GameID: e.GameID,
			Score:  e.Score,
		}
		if !e.CreatedAt.IsZero() {
			records[i].CreatedAt = e.CreatedAt.UTC().Format(time.RFC3339)
		}
	}

	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("storage: cannot write csv: %w", err)
	}
	return nil
}
