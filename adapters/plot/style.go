// Package plot renders the publication figures with gonum/plot: the
// phase-banded weight trajectories and the raincloud composites
// (KDE violin, quartile box, jittered points).
package plot

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"dbstats/adapters/export"
	"dbstats/internal"
)

var log = internal.DefaultLogger

// Color-blind-safe palette matching the published figures.
var (
	pdColor     = color.NRGBA{R: 0xD5, G: 0x5E, B: 0x00, A: 0xFF} // vermillion
	coColor     = color.NRGBA{R: 0x00, G: 0x72, B: 0xB2, A: 0xFF} // blue
	violinBlue  = color.NRGBA{R: 0x4C, G: 0x72, B: 0xB0, A: 0xFF}
	pointGreen  = color.NRGBA{R: 0x55, G: 0xA8, B: 0x68, A: 0xFF}
	bandGray    = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x1A} // phase band, alpha 0.1
	bandGrayMid = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x33} // DBS band, alpha 0.2
	boxBlack    = color.NRGBA{A: 0xFF}
)

// withAlpha fades a palette color for individual-subject overlays.
func withAlpha(c color.NRGBA, alpha uint8) color.NRGBA {
	c.A = alpha
	return c
}

// Renderer implements ports.FigureRendererPort over gonum/plot.
type Renderer struct {
	DPI float64
}

// NewRenderer creates a figure renderer with the given raster resolution.
func NewRenderer(dpi float64) *Renderer {
	return &Renderer{DPI: dpi}
}

// savePNG rasterizes the plot at the configured DPI and writes it to path,
// overwriting any previous figure.
func (r *Renderer) savePNG(p *plot.Plot, path string, w, h vg.Length) error {
	if err := export.EnsureOutputDir(filepath.Dir(path)); err != nil {
		return err
	}

	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(int(r.DPI)))
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create figure %s: %w", path, err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write figure %s: %w", path, err)
	}
	log.Info("[Renderer] wrote %s (%.0f dpi)", path, r.DPI)
	return nil
}

// newFigure applies the shared whitegrid styling.
func newFigure(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.BackgroundColor = color.White
	return p
}
