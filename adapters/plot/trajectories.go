package plot

import (
	"image/color"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"dbstats/domain/study"
)

// Fixed figure file names, matching the published supplementary material.
const (
	TrajectoriesFile     = "Fig_Weight_Trajectories.png"
	GroupedRaincloudFile = "Fig_Weight_Raincloud.png"
	PDRaincloudFile      = "Fig_PD_Weight_Raincloud_Pre_DBS_Post.png"
	SucroseRaincloudFile = "Fig_PD_Raincloud_Final.png"
)

// RenderTrajectories draws every subject's weekly weight as a faded line,
// overlays the thick group mean trajectories, and shades the three
// experimental phases. Implements ports.FigureRendererPort.
func (r *Renderer) RenderTrajectories(path string, long []study.Observation) error {
	p := newFigure("Body Weight Trajectories Across Experimental Phases", "Week", "Body Weight (g)")
	p.Add(plotter.NewGrid())

	lo, hi := weightRange(long)
	pad := 0.05 * (hi - lo)
	lo, hi = lo-pad, hi+pad

	// Phase bands behind everything else.
	bands := []struct {
		from, to float64
		fill     color.Color
	}{
		{0.5, 4.5, bandGray},
		{4.5, 8.5, bandGrayMid},
		{8.5, 12.5, bandGray},
	}
	for _, b := range bands {
		poly, err := plotter.NewPolygon(plotter.XYs{
			{X: b.from, Y: lo}, {X: b.to, Y: lo}, {X: b.to, Y: hi}, {X: b.from, Y: hi},
		})
		if err != nil {
			return err
		}
		poly.Color = b.fill
		poly.LineStyle.Width = 0
		p.Add(poly)
	}

	// Individual trajectories, faded.
	bySubject := make(map[string]plotter.XYs)
	subjectOrder := make([]string, 0)
	subjectGroup := make(map[string]study.Group)
	for _, obs := range long {
		if _, ok := bySubject[obs.Subject]; !ok {
			subjectOrder = append(subjectOrder, obs.Subject)
			subjectGroup[obs.Subject] = obs.Group
		}
		bySubject[obs.Subject] = append(bySubject[obs.Subject], plotter.XY{
			X: float64(obs.WeekNum), Y: obs.Weight,
		})
	}
	for _, subject := range subjectOrder {
		line, err := plotter.NewLine(bySubject[subject])
		if err != nil {
			return err
		}
		c := coColor
		if subjectGroup[subject] == study.GroupPD {
			c = pdColor
		}
		line.Color = withAlpha(c, 0x40)
		line.Width = vg.Points(1)
		p.Add(line)
	}

	// Group mean trajectories, one legend entry each.
	for _, g := range []study.Group{study.GroupPD, study.GroupCO} {
		xys, err := groupMeans(long, g)
		if err != nil {
			return err
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		line.Color = pdColor
		label := "PD"
		if g == study.GroupCO {
			line.Color = coColor
			label = "Control"
		}
		line.Width = vg.Points(3)
		p.Add(line)
		p.Legend.Add(label, line)
	}
	p.Legend.Top = true

	p.X.Min, p.X.Max = 0.5, 12.5
	p.Y.Min, p.Y.Max = lo, hi

	return r.savePNG(p, path, 9*vg.Inch, 6*vg.Inch)
}

// groupMeans averages the weekly weights of one group.
func groupMeans(long []study.Observation, g study.Group) (plotter.XYs, error) {
	byWeek := make(map[int][]float64)
	for _, obs := range long {
		if obs.Group == g {
			byWeek[obs.WeekNum] = append(byWeek[obs.WeekNum], obs.Weight)
		}
	}
	xys := make(plotter.XYs, 0, study.StudyWeeks)
	for week := 1; week <= study.StudyWeeks; week++ {
		values, ok := byWeek[week]
		if !ok {
			continue
		}
		m, err := stats.Mean(values)
		if err != nil {
			return nil, err
		}
		xys = append(xys, plotter.XY{X: float64(week), Y: m})
	}
	return xys, nil
}

func weightRange(long []study.Observation) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, obs := range long {
		lo = math.Min(lo, obs.Weight)
		hi = math.Max(hi, obs.Weight)
	}
	return lo, hi
}
