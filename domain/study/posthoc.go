package study

import (
	"fmt"
	"math"

	"dbstats/domain/stats"
)

// Comparison is one phase pair submitted to the paired post-hoc test.
type Comparison struct {
	Baseline  Phase
	Treatment Phase
}

// DefaultComparisons is the fixed family of pairwise phase comparisons.
var DefaultComparisons = []Comparison{
	{PhasePre, PhaseDBS},
	{PhaseDBS, PhasePost},
	{PhasePre, PhasePost},
}

// PosthocRow is one pairwise comparison of the Holm-corrected post-hoc
// family. CohensDz is NaN when the paired differences have zero variance.
type PosthocRow struct {
	Phase1      Phase
	Phase2      Phase
	TStat       float64
	PRaw        float64
	CohensDz    float64
	PHolm       float64
	Significant bool
}

// RunPosthoc runs the paired t-test family over the pivoted subject-level
// effect table and applies Holm's correction across the raw p-values.
//
// The t-statistic follows the baseline-minus-treatment differences while
// Cohen's dz reports the change relative to baseline, so the two carry
// opposite signs for the same comparison. A zero-variance dz is recorded
// as NaN and reported in the warnings rather than failing the family.
func RunPosthoc(effects []SubjectEffect, comparisons []Comparison, alpha float64) ([]PosthocRow, []string, error) {
	rows := make([]PosthocRow, 0, len(comparisons))
	pvals := make([]float64, 0, len(comparisons))
	warnings := make([]string, 0)

	for _, cmp := range comparisons {
		x := EffectColumn(effects, cmp.Baseline)
		y := EffectColumn(effects, cmp.Treatment)

		res, err := stats.PairedTTest(x, y)
		if err != nil {
			return nil, nil, fmt.Errorf("paired t-test %s vs %s: %w", cmp.Baseline, cmp.Treatment, err)
		}

		dz, err := stats.CohensDz(x, y)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf(
				"Cohen's dz undefined for %s vs %s: %v", cmp.Baseline, cmp.Treatment, err))
			dz = math.NaN()
		}

		rows = append(rows, PosthocRow{
			Phase1:   cmp.Baseline,
			Phase2:   cmp.Treatment,
			TStat:    res.T,
			PRaw:     res.P,
			CohensDz: dz,
		})
		pvals = append(pvals, res.P)
	}

	adjusted, reject := stats.Holm(pvals, alpha)
	for i := range rows {
		rows[i].PHolm = adjusted[i]
		rows[i].Significant = reject[i]
	}
	return rows, warnings, nil
}
