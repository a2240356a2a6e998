package stats

import (
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"dbstats/domain/core"
)

// FriedmanResult holds the outcome of the Friedman omnibus test.
type FriedmanResult struct {
	ChiSq float64 // tie-corrected chi-square statistic
	P     float64
	DF    int // k - 1 treatments
	N     int // number of subjects (blocks)
}

// Friedman runs the non-parametric repeated-measures test across k related
// samples (k >= 3), one slice per treatment, aligned by subject index.
// Within each subject the treatments are ranked with average ranks for
// ties, and the chi-square statistic carries the standard tie correction.
//
// A fully tied design (every subject constant across treatments) has no
// rank information at all; the test degenerates to ChiSq = 0, p = 1.
func Friedman(samples ...[]float64) (FriedmanResult, error) {
	k := len(samples)
	if k < 3 {
		return FriedmanResult{}, core.ErrInsufficientData
	}
	n := len(samples[0])
	for _, s := range samples {
		if len(s) != n {
			return FriedmanResult{}, core.ErrLengthMismatch
		}
	}
	if n < 2 {
		return FriedmanResult{}, core.ErrInsufficientData
	}

	rankSums := make([]float64, k)
	tieTerm := 0.0

	row := make([]float64, k)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			row[j] = samples[j][i]
		}
		ranks, ties := averageRanks(row)
		for j := 0; j < k; j++ {
			rankSums[j] += ranks[j]
		}
		for _, t := range ties {
			tieTerm += float64(t*t*t - t)
		}
	}

	nf, kf := float64(n), float64(k)
	stat := 0.0
	for _, r := range rankSums {
		stat += r * r
	}
	stat = 12/(nf*kf*(kf+1))*stat - 3*nf*(kf+1)

	correction := 1 - tieTerm/(nf*kf*(kf*kf-1))
	if correction == 0 {
		return FriedmanResult{ChiSq: 0, P: 1, DF: k - 1, N: n}, nil
	}
	stat /= correction

	dist := distuv.ChiSquared{K: float64(k - 1)}
	return FriedmanResult{
		ChiSq: stat,
		P:     1 - dist.CDF(stat),
		DF:    k - 1,
		N:     n,
	}, nil
}

// averageRanks ranks the values of one subject row, assigning tied values
// their average rank. The second return value lists the size of each tie
// group for the tie-correction term.
func averageRanks(values []float64) ([]float64, []int) {
	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})

	ranks := make([]float64, n)
	ties := make([]int, 0)

	i := 0
	for i < n {
		j := i
		for j+1 < n && values[order[j+1]] == values[order[i]] {
			j++
		}
		// Ranks are 1-based; tied values share the mean of their span.
		avg := float64(i+j)/2 + 1
		for t := i; t <= j; t++ {
			ranks[order[t]] = avg
		}
		if j > i {
			ties = append(ties, j-i+1)
		}
		i = j + 1
	}
	return ranks, ties
}
