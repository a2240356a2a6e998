package app

import (
	"context"
	"math"
	"path/filepath"

	"github.com/fatih/color"

	"dbstats/adapters/plot"
	"dbstats/domain/core"
	"dbstats/domain/stats"
	"dbstats/domain/sucrose"
	"dbstats/internal/config"
	"dbstats/internal/errors"
	"dbstats/ports"
)

// SucroseReport summarizes one sucrose-preference run.
type SucroseReport struct {
	RunID    core.RunID
	Subjects int
	TTest    stats.PairedResult
	CohensDz float64
	Warnings []string
}

// SucroseService runs the sucrose-preference OFF/ON analysis.
type SucroseService struct {
	cfg      *config.Config
	reader   ports.SucroseReaderPort
	renderer ports.FigureRendererPort
}

// NewSucroseService creates the sucrose pipeline service.
func NewSucroseService(cfg *config.Config, reader ports.SucroseReaderPort, renderer ports.FigureRendererPort) *SucroseService {
	return &SucroseService{cfg: cfg, reader: reader, renderer: renderer}
}

// Run pairs each subject's OFF and ON preference, tests the difference
// and renders the final raincloud figure.
func (s *SucroseService) Run(ctx context.Context) (*SucroseReport, error) {
	runID := core.NewRunID()
	log.Info("[Sucrose] run %s starting on %s", runID, s.cfg.Paths.SucroseFile)

	obs, err := s.reader.ReadObservations(s.cfg.Paths.SucroseFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load sucrose table")
	}

	paired, err := sucrose.Pair(obs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pair OFF/ON measurements")
	}

	report := &SucroseReport{RunID: runID, Subjects: len(paired.Subjects)}

	report.TTest, err = stats.PairedTTest(paired.Off, paired.On)
	if err != nil {
		return nil, errors.Wrap(err, "paired t-test failed")
	}

	report.CohensDz, err = stats.CohensDz(paired.Off, paired.On)
	if err != nil {
		warning := "Cohen's dz undefined for OFF vs ON: " + err.Error()
		log.Warn("[Sucrose] %s", warning)
		report.Warnings = append(report.Warnings, warning)
		report.CohensDz = math.NaN()
	}

	figPath := filepath.Join(s.cfg.Paths.OutputDir, plot.SucroseRaincloudFile)
	if err := s.renderer.RenderSucroseRaincloud(figPath, paired); err != nil {
		return nil, errors.Wrap(err, "failed to render sucrose raincloud figure")
	}

	header := color.New(color.FgCyan, color.Bold)
	header.Println("\nPD Sucrose Preference DBS OFF vs ON:")
	color.New(color.FgWhite).Printf("t = %.3f p = %.4f Cohen's dz = %.2f\n",
		report.TTest.T, report.TTest.P, report.CohensDz)

	log.Info("[Sucrose] run %s finished (%d subjects)", runID, report.Subjects)
	return report, ctx.Err()
}
