package plot

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// kdeCurve is a kernel density estimate evaluated on a fixed grid,
// truncated to the data range (no tail extrapolation, as the published
// violins were cut at the observed extremes).
type kdeCurve struct {
	grid    []float64
	density []float64
}

const kdeGridPoints = 64

// gaussianKDE builds a Gaussian kernel density estimate with Silverman's
// bandwidth. Degenerate samples (fewer than two points or zero spread)
// return nil; callers skip the violin and fall back to box and points.
func gaussianKDE(values []float64) *kdeCurve {
	n := len(values)
	if n < 2 {
		return nil
	}

	sd, _ := stats.StandardDeviationSample(values)
	q25, _ := stats.Percentile(values, 25)
	q75, _ := stats.Percentile(values, 75)
	iqr := q75 - q25

	spread := sd
	if iqr > 0 && iqr/1.34 < spread {
		spread = iqr / 1.34
	}
	if spread <= 0 {
		return nil
	}
	h := 0.9 * spread * math.Pow(float64(n), -0.2)

	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	if min == max {
		return nil
	}

	kernel := distuv.Normal{Mu: 0, Sigma: 1}
	curve := &kdeCurve{
		grid:    make([]float64, kdeGridPoints),
		density: make([]float64, kdeGridPoints),
	}
	step := (max - min) / float64(kdeGridPoints-1)
	for i := 0; i < kdeGridPoints; i++ {
		y := min + float64(i)*step
		d := 0.0
		for _, v := range values {
			d += kernel.Prob((y - v) / h)
		}
		curve.grid[i] = y
		curve.density[i] = d / (float64(n) * h)
	}
	return curve
}

// maxDensity returns the curve's peak, used to normalize violin widths.
func (c *kdeCurve) maxDensity() float64 {
	peak := 0.0
	for _, d := range c.density {
		if d > peak {
			peak = d
		}
	}
	return peak
}
