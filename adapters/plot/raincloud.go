package plot

import (
	"image/color"
	"math/rand"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"dbstats/domain/study"
	"dbstats/domain/sucrose"
)

// Raincloud geometry shared by all composite figures.
const (
	violinHalfWidth = 0.32
	dodgeOffset     = 0.2
	stripJitter     = 0.12
	jitterSeed      = 1
)

// RenderPDRaincloud draws the PD-only phase comparison: a blue KDE violin
// per phase, a black open box inside it and green jittered subject points.
// Implements ports.FigureRendererPort.
func (r *Renderer) RenderPDRaincloud(path string, means []study.PhaseMean) error {
	p := newFigure("Body Weight – PD Rats Across Experimental Phases", "", "Mean Body Weight (g)")
	p.Add(plotter.NewGrid())
	p.NominalX(phaseLabels()...)

	rng := rand.New(rand.NewSource(jitterSeed))
	for i, phase := range study.PhaseOrder {
		values := study.PhaseColumn(means, phase)
		loc := float64(i)
		if err := addViolin(p, loc, violinHalfWidth, values, violinBlue); err != nil {
			return err
		}
		if err := addBox(p, loc, values); err != nil {
			return err
		}
		if _, err := addStrip(p, rng, loc, values, pointGreen, vg.Points(4)); err != nil {
			return err
		}
	}

	return r.savePNG(p, path, 7*vg.Inch, 5*vg.Inch)
}

// RenderGroupedRaincloud draws the PD-vs-control phase comparison with
// dodged violins, boxes and points per group. Implements
// ports.FigureRendererPort.
func (r *Renderer) RenderGroupedRaincloud(path string, means []study.PhaseMean) error {
	p := newFigure("Body Weight by Experimental Phase", "", "Mean Body Weight (g)")
	p.Add(plotter.NewGrid())
	p.NominalX(phaseLabels()...)

	groups := []struct {
		group  study.Group
		offset float64
		fill   color.NRGBA
		label  string
	}{
		{study.GroupCO, -dodgeOffset, coColor, "Control"},
		{study.GroupPD, +dodgeOffset, pdColor, "PD"},
	}

	rng := rand.New(rand.NewSource(jitterSeed))
	legendDone := make(map[study.Group]bool)
	for i, phase := range study.PhaseOrder {
		for _, g := range groups {
			values := study.PhaseColumn(study.FilterPhaseMeans(means, g.group), phase)
			if len(values) == 0 {
				continue
			}
			loc := float64(i) + g.offset
			if err := addViolin(p, loc, violinHalfWidth/2, values, g.fill); err != nil {
				return err
			}
			if err := addBox(p, loc, values); err != nil {
				return err
			}
			strip, err := addStrip(p, rng, loc, values, g.fill, vg.Points(3))
			if err != nil {
				return err
			}
			if !legendDone[g.group] {
				p.Legend.Add(g.label, strip)
				legendDone[g.group] = true
			}
		}
	}
	p.Legend.Top = true

	return r.savePNG(p, path, 7*vg.Inch, 5*vg.Inch)
}

// RenderSucroseRaincloud draws the sucrose-preference OFF/ON comparison
// for the PD rats. Implements ports.FigureRendererPort.
func (r *Renderer) RenderSucroseRaincloud(path string, paired *sucrose.Paired) error {
	p := newFigure("Sucrose Preference – PD Rats (DBS OFF vs ON)", "", "Sucrose Preference (%)")
	p.Add(plotter.NewGrid())
	p.NominalX("OFF", "ON")

	rng := rand.New(rand.NewSource(jitterSeed))
	for i, stim := range sucrose.StimOrder {
		values := paired.Values(stim)
		loc := float64(i)
		if err := addViolin(p, loc, violinHalfWidth, values, violinBlue); err != nil {
			return err
		}
		if err := addBox(p, loc, values); err != nil {
			return err
		}
		if _, err := addStrip(p, rng, loc, values, pointGreen, vg.Points(5)); err != nil {
			return err
		}
	}

	return r.savePNG(p, path, 6*vg.Inch, 5*vg.Inch)
}

// addViolin adds a mirrored KDE polygon centered on loc. Degenerate
// samples have no density estimate and simply get no violin.
func addViolin(p *plot.Plot, loc, halfWidth float64, values []float64, fill color.NRGBA) error {
	curve := gaussianKDE(values)
	if curve == nil {
		return nil
	}
	peak := curve.maxDensity()
	if peak == 0 {
		return nil
	}

	n := len(curve.grid)
	xys := make(plotter.XYs, 0, 2*n)
	for i := 0; i < n; i++ {
		w := curve.density[i] / peak * halfWidth
		xys = append(xys, plotter.XY{X: loc - w, Y: curve.grid[i]})
	}
	for i := n - 1; i >= 0; i-- {
		w := curve.density[i] / peak * halfWidth
		xys = append(xys, plotter.XY{X: loc + w, Y: curve.grid[i]})
	}

	poly, err := plotter.NewPolygon(xys)
	if err != nil {
		return err
	}
	poly.Color = withAlpha(fill, 0xB3)
	poly.LineStyle.Width = 0
	p.Add(poly)
	return nil
}

// addBox adds the open quartile box with black edges and no outlier glyphs
// (individual points are drawn by the strip instead).
func addBox(p *plot.Plot, loc float64, values []float64) error {
	box, err := plotter.NewBoxPlot(vg.Points(18), loc, plotter.Values(values))
	if err != nil {
		return err
	}
	box.FillColor = nil
	box.BoxStyle.Color = boxBlack
	box.BoxStyle.Width = vg.Points(1.4)
	box.WhiskerStyle.Color = boxBlack
	box.WhiskerStyle.Width = vg.Points(1.4)
	box.MedianStyle.Color = boxBlack
	box.MedianStyle.Width = vg.Points(1.6)
	box.GlyphStyle.Radius = 0
	p.Add(box)
	return nil
}

// addStrip adds the jittered raw observations.
func addStrip(p *plot.Plot, rng *rand.Rand, loc float64, values []float64, fill color.NRGBA, radius vg.Length) (*plotter.Scatter, error) {
	xys := make(plotter.XYs, len(values))
	for i, v := range values {
		xys[i] = plotter.XY{X: loc + (rng.Float64()*2-1)*stripJitter, Y: v}
	}
	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Color = fill
	scatter.GlyphStyle.Radius = radius
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(scatter)
	return scatter, nil
}

func phaseLabels() []string {
	labels := make([]string, len(study.PhaseOrder))
	for i, phase := range study.PhaseOrder {
		labels[i] = string(phase)
	}
	return labels
}
