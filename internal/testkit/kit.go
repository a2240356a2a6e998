// Package testkit builds synthetic experiment fixtures for tests.
package testkit

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"dbstats/domain/study"
	"dbstats/domain/sucrose"
)

// ConstantWideTable builds a wide table where every PD subject weighs
// pdWeight every week and every control subject coWeight. Useful for
// degenerate-variance edge cases.
func ConstantWideTable(pdCount, coCount int, pdWeight, coWeight float64) *study.WideTable {
	table := &study.WideTable{}
	for i := 0; i < pdCount; i++ {
		table.Rows = append(table.Rows, constantRow(study.GroupPD, pdWeight))
	}
	for i := 0; i < coCount; i++ {
		table.Rows = append(table.Rows, constantRow(study.GroupCO, coWeight))
	}
	return table
}

// RampWideTable builds a wide table with distinct per-subject, per-week
// weights. The weekly slope grows with the subject index so phase-mean
// differences vary across subjects and nothing degenerates to zero
// variance.
func RampWideTable(pdCount, coCount int, pdBase, coBase float64) *study.WideTable {
	table := &study.WideTable{}
	for i := 0; i < pdCount; i++ {
		table.Rows = append(table.Rows, rampRow(study.GroupPD, pdBase+float64(i), i+1))
	}
	for i := 0; i < coCount; i++ {
		table.Rows = append(table.Rows, rampRow(study.GroupCO, coBase+float64(i), i+1))
	}
	return table
}

// WriteWideCSV serializes a wide table into dir as a loader-compatible CSV
// and returns its path.
func WriteWideCSV(dir string, table *study.WideTable) (string, error) {
	path := filepath.Join(dir, "weights.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"Group"}
	for i := 1; i <= study.StudyWeeks; i++ {
		header = append(header, study.WeekLabel(i))
	}
	records := [][]string{header}
	for _, row := range table.Rows {
		rec := []string{string(row.Group)}
		for _, weight := range row.Weights {
			rec = append(rec, fmt.Sprintf("%g", weight))
		}
		records = append(records, rec)
	}
	if err := w.WriteAll(records); err != nil {
		return "", err
	}
	return path, nil
}

// SucroseObservations builds one OFF and one ON measurement per subject.
func SucroseObservations(subjects int, off, on float64) []sucrose.Observation {
	obs := make([]sucrose.Observation, 0, 2*subjects)
	for i := 1; i <= subjects; i++ {
		subject := fmt.Sprintf("PD_%d", i)
		obs = append(obs,
			sucrose.Observation{Subject: subject, Stimulation: sucrose.StimOff, Preference: off + float64(i)},
			sucrose.Observation{Subject: subject, Stimulation: sucrose.StimOn, Preference: on + float64(i)*2},
		)
	}
	return obs
}

// WriteSucroseCSV serializes sucrose observations into dir and returns the path.
func WriteSucroseCSV(dir string, obs []sucrose.Observation) (string, error) {
	path := filepath.Join(dir, "sucrose.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	records := [][]string{{"Subject", "Stimulation", "SucrosePreference"}}
	for _, o := range obs {
		records = append(records, []string{
			o.Subject, string(o.Stimulation), fmt.Sprintf("%g", o.Preference),
		})
	}
	return path, csv.NewWriter(f).WriteAll(records)
}

func constantRow(g study.Group, weight float64) study.WideRow {
	weights := make([]float64, study.StudyWeeks)
	for i := range weights {
		weights[i] = weight
	}
	return study.WideRow{Group: g, Weights: weights}
}

func rampRow(g study.Group, base float64, slope int) study.WideRow {
	weights := make([]float64, study.StudyWeeks)
	for i := range weights {
		weights[i] = base + float64(slope)*float64(i+1)/10
	}
	return study.WideRow{Group: g, Weights: weights}
}
