// Package app wires the analysis pipeline stages together: load, reshape,
// aggregate, test, export, render.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fatih/color"

	"dbstats/adapters/export"
	"dbstats/adapters/plot"
	"dbstats/domain/core"
	"dbstats/domain/stats"
	"dbstats/domain/study"
	"dbstats/internal"
	"dbstats/internal/config"
	"dbstats/internal/errors"
	"dbstats/ports"
)

var log = internal.DefaultLogger

// WeightReport summarizes one weight-analysis run for callers and tests.
type WeightReport struct {
	RunID      core.RunID
	Subjects   int
	PhaseMeans []study.PhaseMean
	Effects    []study.SubjectEffect
	Posthoc    []study.PosthocRow
	Friedman   stats.FriedmanResult
	Warnings   []string
}

// WeightService runs the longitudinal body-weight pipeline.
type WeightService struct {
	cfg      *config.Config
	reader   ports.WeightReaderPort
	exporter ports.TableExporterPort
	renderer ports.FigureRendererPort
}

// NewWeightService creates the weight pipeline service.
func NewWeightService(cfg *config.Config, reader ports.WeightReaderPort, exporter ports.TableExporterPort, renderer ports.FigureRendererPort) *WeightService {
	return &WeightService{cfg: cfg, reader: reader, exporter: exporter, renderer: renderer}
}

// Run executes the full pipeline: load wide table, validate the group
// column against the positional subject layout, melt to long form,
// aggregate phase means, run the Holm-corrected post-hoc family and the
// Friedman omnibus, export tables S1-S3 and render the figures.
func (s *WeightService) Run(ctx context.Context) (*WeightReport, error) {
	runID := core.NewRunID()
	startedAt := time.Now()
	log.Info("[Weight] run %s starting on %s", runID, s.cfg.Paths.WeightFile)

	report := &WeightReport{RunID: runID}

	table, err := s.reader.ReadWideTable(s.cfg.Paths.WeightFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load weight table")
	}
	report.Subjects = table.RowCount()

	if err := study.ValidateGroupOrder(table, s.cfg.Analysis.PDCount); err != nil {
		return nil, errors.Wrap(err, "group column validation failed")
	}

	long, err := study.Melt(table, s.cfg.Analysis.PDCount, s.cfg.Analysis.WeeksPerPhase)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reshape to long form")
	}
	log.Debug("[Weight] melted %d subjects into %d observations", table.RowCount(), len(long))

	means, err := study.PhaseMeans(long)
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate phase means")
	}
	report.PhaseMeans = means

	pdMeans := study.FilterPhaseMeans(means, study.GroupPD)
	effects, degenerate, err := study.ComputeSubjectEffects(pdMeans)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pivot subject effects")
	}
	for _, subject := range degenerate {
		warning := fmt.Sprintf("percent change undefined for %s (zero Pre-DBS mean)", subject)
		log.Warn("[Weight] %s", warning)
		report.Warnings = append(report.Warnings, warning)
	}
	report.Effects = effects

	posthoc, warnings, err := study.RunPosthoc(effects, s.cfg.Analysis.Comparisons, s.cfg.Analysis.Alpha)
	if err != nil {
		return nil, errors.Wrap(err, "post-hoc family failed")
	}
	for _, w := range warnings {
		log.Warn("[Weight] %s", w)
	}
	report.Posthoc = posthoc
	report.Warnings = append(report.Warnings, warnings...)

	friedman, err := stats.Friedman(
		study.EffectColumn(effects, study.PhasePre),
		study.EffectColumn(effects, study.PhaseDBS),
		study.EffectColumn(effects, study.PhasePost),
	)
	if err != nil {
		return nil, errors.Wrap(err, "Friedman test failed")
	}
	report.Friedman = friedman

	if err := s.export(report); err != nil {
		return nil, err
	}
	if err := s.render(long, means, pdMeans); err != nil {
		return nil, err
	}

	manifest := export.RunManifest{
		RunID:     runID,
		StartedAt: startedAt,
		InputPath: s.cfg.Paths.WeightFile,
		Artifacts: []string{
			export.PhaseMeansFile, export.SubjectEffectsFile, export.PosthocFile,
			plot.TrajectoriesFile, plot.GroupedRaincloudFile, plot.PDRaincloudFile,
		},
	}
	if err := export.WriteManifest(s.outPath(export.ManifestFile), manifest); err != nil {
		return nil, errors.Wrap(err, "failed to write run manifest")
	}

	s.printSummary(report)
	log.Info("[Weight] run %s finished in %s", runID, time.Since(startedAt).Round(time.Millisecond))
	return report, ctx.Err()
}

func (s *WeightService) export(report *WeightReport) error {
	if err := s.exporter.WritePhaseMeans(s.outPath(export.PhaseMeansFile), report.PhaseMeans); err != nil {
		return errors.Wrap(err, "failed to write phase means table")
	}
	if err := s.exporter.WriteSubjectEffects(s.outPath(export.SubjectEffectsFile), report.Effects); err != nil {
		return errors.Wrap(err, "failed to write subject effects table")
	}
	if err := s.exporter.WritePosthoc(s.outPath(export.PosthocFile), report.Posthoc); err != nil {
		return errors.Wrap(err, "failed to write post-hoc table")
	}
	return nil
}

func (s *WeightService) render(long []study.Observation, means, pdMeans []study.PhaseMean) error {
	if err := s.renderer.RenderTrajectories(s.outPath(plot.TrajectoriesFile), long); err != nil {
		return errors.Wrap(err, "failed to render trajectories figure")
	}
	if err := s.renderer.RenderGroupedRaincloud(s.outPath(plot.GroupedRaincloudFile), means); err != nil {
		return errors.Wrap(err, "failed to render grouped raincloud figure")
	}
	if err := s.renderer.RenderPDRaincloud(s.outPath(plot.PDRaincloudFile), pdMeans); err != nil {
		return errors.Wrap(err, "failed to render PD raincloud figure")
	}
	return nil
}

func (s *WeightService) outPath(name string) string {
	return filepath.Join(s.cfg.Paths.OutputDir, name)
}

// printSummary prints the headline statistics the way the lab reports
// them: the Pre-DBS vs DBS paired test and the Friedman omnibus.
func (s *WeightService) printSummary(report *WeightReport) {
	header := color.New(color.FgCyan, color.Bold)
	value := color.New(color.FgWhite)

	for _, row := range report.Posthoc {
		if row.Phase1 == study.PhasePre && row.Phase2 == study.PhaseDBS {
			header.Println("\nPD Weight Pre-DBS vs DBS:")
			value.Printf("t = %.3f p = %.4f Cohen's dz = %.2f\n", row.TStat, row.PRaw, row.CohensDz)
		}
	}

	header.Println("\nFriedman test (PD):")
	value.Printf("Chi² = %.3f p = %.4f\n", report.Friedman.ChiSq, report.Friedman.P)

	color.New(color.FgGreen).Println("\nAll analyses, tables, and figures generated successfully.")
}
