package storage

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary describes the distribution of a game's scores.
type Summary struct {
	Count  int
	Mean   float64
	StdDev float64 // sample standard deviation, 0 with fewer than two runs
	Median float64
	P90    float64
	Best   int
}

// Summarize computes the score distribution of entries.
func Summarize(entries []ScoreEntry) Summary {
	if len(entries) == 0 {
		return Summary{}
	}

	xs := make([]float64, len(entries))
	best := entries[0].Score
	for i, e := range entries {
		xs[i] = float64(e.Score)
		best = max(best, e.Score)
	}
	sort.Float64s(xs)

	sum := Summary{
		Count:  len(xs),
		Median: stat.Quantile(0.5, stat.Empirical, xs, nil),
		P90:    stat.Quantile(0.9, stat.Empirical, xs, nil),
		Best:   best,
	}
	if len(xs) > 1 {
		sum.Mean, sum.StdDev = stat.MeanStdDev(xs, nil)
	} else {
		sum.Mean = xs[0]
	}
	return sum
}
