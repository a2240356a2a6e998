package stats

import "sort"

// Holm applies Holm's step-down correction to a family of raw p-values,
// controlling the family-wise error rate at alpha. It returns the adjusted
// p-values (in the input order) and the per-comparison rejection flags.
//
// Adjusted values are the running maximum of (m-i) * p over the p-values
// in ascending order, clamped to 1, which makes them monotone in the
// sorted order and never smaller than the raw value.
func Holm(pvals []float64, alpha float64) ([]float64, []bool) {
	m := len(pvals)
	adjusted := make([]float64, m)
	reject := make([]bool, m)
	if m == 0 {
		return adjusted, reject
	}

	order := make([]int, m)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return pvals[order[a]] < pvals[order[b]]
	})

	running := 0.0
	for rank, idx := range order {
		adj := float64(m-rank) * pvals[idx]
		if adj > running {
			running = adj
		}
		if running > 1 {
			running = 1
		}
		adjusted[idx] = running
		reject[idx] = running <= alpha
	}
	return adjusted, reject
}
