package app

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"dbstats/adapters/excel"
	"dbstats/adapters/export"
	"dbstats/adapters/plot"
	"dbstats/domain/core"
	"dbstats/domain/study"
	"dbstats/internal/config"
	"dbstats/internal/testkit"
)

func testConfig(t *testing.T, weightFile string) *config.Config {
	t.Helper()
	return &config.Config{
		Paths: config.PathConfig{
			WeightFile: weightFile,
			OutputDir:  filepath.Join(t.TempDir(), "results"),
		},
		Analysis: config.AnalysisConfig{
			Alpha:         0.05,
			PDCount:       9,
			WeeksPerPhase: study.WeeksPerPhase,
			Comparisons:   study.DefaultComparisons,
		},
		Figures: config.FigureConfig{DPI: 72},
	}
}

func newTestService(cfg *config.Config) *WeightService {
	return NewWeightService(cfg, excel.NewWeightReader(), export.NewCSVExporter(), plot.NewRenderer(cfg.Figures.DPI))
}

func TestWeightService_EndToEnd(t *testing.T) {
	table := testkit.RampWideTable(9, 3, 300, 350)
	path, err := testkit.WriteWideCSV(t.TempDir(), table)
	if err != nil {
		t.Fatal(err)
	}
	cfg := testConfig(t, path)

	report, err := newTestService(cfg).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if report.Subjects != 12 {
		t.Errorf("subjects = %d, want 12", report.Subjects)
	}
	// 12 subjects x 3 phases of aggregated means.
	if len(report.PhaseMeans) != 36 {
		t.Errorf("phase means = %d, want 36", len(report.PhaseMeans))
	}
	if len(report.Effects) != 9 {
		t.Errorf("effects = %d, want 9 PD subjects", len(report.Effects))
	}
	if len(report.Posthoc) != 3 {
		t.Errorf("posthoc rows = %d, want 3", len(report.Posthoc))
	}

	for _, name := range []string{
		export.PhaseMeansFile,
		export.SubjectEffectsFile,
		export.PosthocFile,
		export.ManifestFile,
		plot.TrajectoriesFile,
		plot.GroupedRaincloudFile,
		plot.PDRaincloudFile,
	} {
		if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, name)); err != nil {
			t.Errorf("artifact %s not written: %v", name, err)
		}
	}

	if report.RunID == core.RunID("") {
		t.Error("run id not assigned")
	}
}

func TestWeightService_ConstantWeights(t *testing.T) {
	// All PD subjects at 300 g every week, controls at 350 g: every phase
	// comparison is degenerate and must come out t = 0, p = 1 with dz NaN.
	table := testkit.ConstantWideTable(9, 3, 300, 350)
	path, err := testkit.WriteWideCSV(t.TempDir(), table)
	if err != nil {
		t.Fatal(err)
	}
	cfg := testConfig(t, path)

	report, err := newTestService(cfg).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	for _, row := range report.Posthoc {
		if row.TStat != 0 || row.PRaw != 1 {
			t.Errorf("%s vs %s: t=%g p=%g, want t=0 p=1", row.Phase1, row.Phase2, row.TStat, row.PRaw)
		}
		if !math.IsNaN(row.CohensDz) {
			t.Errorf("%s vs %s: dz=%g, want NaN", row.Phase1, row.Phase2, row.CohensDz)
		}
		if row.Significant {
			t.Errorf("%s vs %s flagged significant", row.Phase1, row.Phase2)
		}
	}

	if report.Friedman.ChiSq != 0 || report.Friedman.P != 1 {
		t.Errorf("Friedman = (%g, %g), want (0, 1)", report.Friedman.ChiSq, report.Friedman.P)
	}
	if len(report.Warnings) == 0 {
		t.Error("expected zero-variance warnings")
	}
}

func TestWeightService_GroupOrderMismatch(t *testing.T) {
	table := testkit.RampWideTable(9, 3, 300, 350)
	// Corrupt the file: a control row inside the PD block.
	table.Rows[2].Group = study.GroupCO
	path, err := testkit.WriteWideCSV(t.TempDir(), table)
	if err != nil {
		t.Fatal(err)
	}
	cfg := testConfig(t, path)

	_, err = newTestService(cfg).Run(context.Background())
	if err == nil {
		t.Fatal("expected group-order validation to fail the run")
	}
}
