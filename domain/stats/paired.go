// Package stats implements the paired-sample statistics used by the
// analysis pipeline: the paired t-test, Cohen's dz effect size, Holm's
// step-down correction and the Friedman omnibus test.
package stats

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"dbstats/domain/core"
)

// PairedResult holds the outcome of a paired two-sided t-test.
type PairedResult struct {
	T  float64 // t-statistic for the differences x - y
	P  float64 // two-sided p-value
	DF int     // degrees of freedom, n - 1
	N  int     // number of pairs
}

// PairedTTest runs a two-sided paired t-test on x and y. The statistic is
// computed on the differences x[i] - y[i] with df = n - 1.
//
// When every difference is identical the standard error is zero. If the
// common difference is itself zero the samples are indistinguishable and
// the test degenerates to t = 0, p = 1; a non-zero constant difference
// yields an infinite statistic with p = 0. Both cases are defined rather
// than propagated as NaN.
func PairedTTest(x, y []float64) (PairedResult, error) {
	if len(x) != len(y) {
		return PairedResult{}, core.ErrLengthMismatch
	}
	if len(x) < 2 {
		return PairedResult{}, core.ErrInsufficientData
	}

	n := len(x)
	diff := make([]float64, n)
	for i := range x {
		diff[i] = x[i] - y[i]
	}

	mean, _ := stats.Mean(diff)
	sd, _ := stats.StandardDeviationSample(diff)

	res := PairedResult{DF: n - 1, N: n}
	if sd == 0 {
		if mean == 0 {
			res.T, res.P = 0, 1
			return res, nil
		}
		res.T = math.Inf(1)
		if mean < 0 {
			res.T = math.Inf(-1)
		}
		res.P = 0
		return res, nil
	}

	res.T = mean / (sd / math.Sqrt(float64(n)))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(res.DF)}
	res.P = 2 * (1 - dist.CDF(math.Abs(res.T)))
	return res, nil
}

// CohensDz computes the paired-sample standardized effect size
// mean(treatment - baseline) / sd(treatment - baseline) with the sample
// standard deviation (Bessel's correction). The sign convention reports
// the change relative to baseline.
//
// Zero variance in the differences leaves dz undefined; this is surfaced
// as ErrZeroVariance instead of a silent NaN or Inf.
func CohensDz(baseline, treatment []float64) (float64, error) {
	if len(baseline) != len(treatment) {
		return 0, core.ErrLengthMismatch
	}
	if len(baseline) < 2 {
		return 0, core.ErrInsufficientData
	}

	diff := make([]float64, len(baseline))
	for i := range baseline {
		diff[i] = treatment[i] - baseline[i]
	}

	mean, _ := stats.Mean(diff)
	sd, _ := stats.StandardDeviationSample(diff)
	if sd == 0 {
		return 0, core.ErrZeroVariance
	}
	return mean / sd, nil
}
