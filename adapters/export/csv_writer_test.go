package export

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"

	"dbstats/domain/core"
	"dbstats/domain/study"
)

func readBack(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return records
}

func TestWritePhaseMeans(t *testing.T) {
	path := filepath.Join(t.TempDir(), PhaseMeansFile)
	rows := []study.PhaseMean{
		{Subject: "PD_1", Group: study.GroupPD, Phase: study.PhasePre, Weight: 301.5},
		{Subject: "PD_1", Group: study.GroupPD, Phase: study.PhaseDBS, Weight: 295.25},
	}
	if err := NewCSVExporter().WritePhaseMeans(path, rows); err != nil {
		t.Fatal(err)
	}

	records := readBack(t, path)
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2", len(records))
	}
	wantHeader := []string{"Subject", "Group", "Phase", "Weight"}
	for i, h := range wantHeader {
		if records[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}
	if records[1][3] != "301.5" {
		t.Errorf("weight cell = %q, want 301.5", records[1][3])
	}
}

func TestWriteSubjectEffects_NaNPercentChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), SubjectEffectsFile)
	rows := []study.SubjectEffect{
		{Subject: "PD_1", Pre: 0, DBS: 270, Post: 280, Delta: 270, PercentChange: math.NaN()},
	}
	if err := NewCSVExporter().WriteSubjectEffects(path, rows); err != nil {
		t.Fatal(err)
	}

	records := readBack(t, path)
	if records[1][5] != "NaN" {
		t.Errorf("percent-change cell = %q, want NaN", records[1][5])
	}
}

func TestWritePosthoc_BoolFormatting(t *testing.T) {
	path := filepath.Join(t.TempDir(), PosthocFile)
	rows := []study.PosthocRow{
		{Phase1: study.PhasePre, Phase2: study.PhaseDBS, TStat: 3.46, PRaw: 0.01, CohensDz: -2, PHolm: 0.03, Significant: true},
		{Phase1: study.PhaseDBS, Phase2: study.PhasePost, TStat: -1.2, PRaw: 0.3, CohensDz: 0.4, PHolm: 0.3, Significant: false},
	}
	if err := NewCSVExporter().WritePosthoc(path, rows); err != nil {
		t.Fatal(err)
	}

	records := readBack(t, path)
	if records[1][6] != "True" || records[2][6] != "False" {
		t.Errorf("significance cells = %q, %q; want True, False", records[1][6], records[2][6])
	}
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestFile)
	m := RunManifest{
		RunID:     core.NewRunID(),
		InputPath: "data/weights.xlsx",
		Artifacts: []string{PhaseMeansFile},
	}
	if err := WriteManifest(path, m); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("manifest not written: %v", err)
	}
}

func TestWriteCSV_CreatesOutputDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", PhaseMeansFile)
	err := NewCSVExporter().WritePhaseMeans(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not created in nested dir: %v", err)
	}
}
