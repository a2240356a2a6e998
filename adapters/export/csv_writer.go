// Package export writes the supplementary tables and the run manifest
// under the results directory.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"dbstats/domain/core"
	"dbstats/domain/study"
	"dbstats/internal"
)

var log = internal.DefaultLogger

// Fixed output file names, matching the published supplementary material.
const (
	PhaseMeansFile     = "Table_S1_Weight_PhaseMeans.csv"
	SubjectEffectsFile = "Table_S2_PD_SubjectLevel_WeightEffects.csv"
	PosthocFile        = "Table_S3_PD_Posthoc_HolmCorrected.csv"
	ManifestFile       = "run_manifest.json"
)

// CSVExporter writes analysis tables as CSV files, overwriting previous runs.
type CSVExporter struct{}

// NewCSVExporter creates a table exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// WritePhaseMeans implements ports.TableExporterPort.
func (e *CSVExporter) WritePhaseMeans(path string, rows []study.PhaseMean) error {
	records := [][]string{{"Subject", "Group", "Phase", "Weight"}}
	for _, r := range rows {
		records = append(records, []string{
			r.Subject, string(r.Group), string(r.Phase), formatFloat(r.Weight),
		})
	}
	return writeCSV(path, records)
}

// WriteSubjectEffects implements ports.TableExporterPort.
func (e *CSVExporter) WriteSubjectEffects(path string, rows []study.SubjectEffect) error {
	records := [][]string{{
		"Subject", "Pre-DBS", "DBS", "Post-DBS", "Delta_DBS_minus_Pre", "Percent_Change",
	}}
	for _, r := range rows {
		records = append(records, []string{
			r.Subject,
			formatFloat(r.Pre),
			formatFloat(r.DBS),
			formatFloat(r.Post),
			formatFloat(r.Delta),
			formatFloat(r.PercentChange),
		})
	}
	return writeCSV(path, records)
}

// WritePosthoc implements ports.TableExporterPort.
func (e *CSVExporter) WritePosthoc(path string, rows []study.PosthocRow) error {
	records := [][]string{{
		"Phase1", "Phase2", "t_stat", "p_raw", "Cohens_dz", "p_holm", "Significant",
	}}
	for _, r := range rows {
		records = append(records, []string{
			string(r.Phase1),
			string(r.Phase2),
			formatFloat(r.TStat),
			formatFloat(r.PRaw),
			formatFloat(r.CohensDz),
			formatFloat(r.PHolm),
			formatBool(r.Significant),
		})
	}
	return writeCSV(path, records)
}

// RunManifest captures audit metadata for one analysis run.
type RunManifest struct {
	RunID     core.RunID `json:"run_id"`
	StartedAt time.Time  `json:"started_at"`
	InputPath string     `json:"input_path"`
	Artifacts []string   `json:"artifacts"`
}

// WriteManifest serializes the run manifest next to the tables.
func WriteManifest(path string, m RunManifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write run manifest: %w", err)
	}
	log.Debug("[Exporter] wrote manifest %s", path)
	return nil
}

// EnsureOutputDir creates the results directory if it does not exist.
func EnsureOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}

func writeCSV(path string, records [][]string) error {
	if err := EnsureOutputDir(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Info("[Exporter] wrote %s (%d rows)", path, len(records)-1)
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formatBool matches the True/False capitalization of the published tables.
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
