// Package excel reads the experiment's tabular input files. Both xlsx and
// CSV files are supported, chosen by extension.
package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"dbstats/domain/core"
	"dbstats/domain/study"
	"dbstats/domain/sucrose"
	"dbstats/internal"
)

var log = internal.DefaultLogger

// DataReader handles reading Excel and CSV files into raw string rows.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadRows reads all rows, header included, as strings.
func (r *DataReader) ReadRows() ([][]string, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVRows()
	default:
		return r.readExcelRows()
	}
}

// readExcelRows reads Sheet1 of an xlsx workbook.
func (r *DataReader) readExcelRows() ([][]string, error) {
	start := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	log.Debug("[DataReader] Sheet1 read in %.2fms (%d rows)",
		float64(time.Since(start).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

// readCSVRows reads a CSV file in full.
func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

// WeightReader loads the wide weight table: first column the group label,
// then exactly one numeric column per study week. Column names in the
// header row are ignored; the schema is positional.
type WeightReader struct{}

// NewWeightReader creates a wide weight-table reader.
func NewWeightReader() *WeightReader {
	return &WeightReader{}
}

// ReadWideTable implements ports.WeightReaderPort.
func (r *WeightReader) ReadWideTable(path string) (*study.WideTable, error) {
	rows, err := NewDataReader(path).ReadRows()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, core.ErrEmptyDataset
	}

	wantCols := study.StudyWeeks + 1
	if got := len(rows[0]); got < wantCols {
		return nil, core.NewSchemaError(fmt.Sprintf(
			"header has %d columns, want %d (Group + %d weeks)", got, wantCols, study.StudyWeeks))
	}

	table := &study.WideTable{Rows: make([]study.WideRow, 0, len(rows)-1)}
	for i, row := range rows[1:] {
		if len(row) < wantCols {
			return nil, core.NewSchemaError(fmt.Sprintf(
				"row %d has %d columns, want %d", i+1, len(row), wantCols))
		}
		weights := make([]float64, study.StudyWeeks)
		for w := 0; w < study.StudyWeeks; w++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[w+1]), 64)
			if err != nil {
				return nil, core.NewCellError(i+1, w+2, row[w+1])
			}
			weights[w] = v
		}
		table.Rows = append(table.Rows, study.WideRow{
			Group:   study.Group(strings.TrimSpace(row[0])),
			Weights: weights,
		})
	}
	log.Info("[WeightReader] loaded %d subjects from %s", table.RowCount(), path)
	return table, nil
}

// SucroseReader loads the long sucrose-preference table with columns
// Subject, Stimulation (OFF/ON) and SucrosePreference.
type SucroseReader struct{}

// NewSucroseReader creates a sucrose-preference reader.
func NewSucroseReader() *SucroseReader {
	return &SucroseReader{}
}

// ReadObservations implements ports.SucroseReaderPort.
func (r *SucroseReader) ReadObservations(path string) ([]sucrose.Observation, error) {
	rows, err := NewDataReader(path).ReadRows()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, core.ErrEmptyDataset
	}
	if got := len(rows[0]); got < 3 {
		return nil, core.NewSchemaError(fmt.Sprintf(
			"header has %d columns, want 3 (Subject, Stimulation, SucrosePreference)", got))
	}

	obs := make([]sucrose.Observation, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) < 3 {
			return nil, core.NewSchemaError(fmt.Sprintf(
				"row %d has %d columns, want 3", i+1, len(row)))
		}
		pref, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			return nil, core.NewCellError(i+1, 3, row[2])
		}
		obs = append(obs, sucrose.Observation{
			Subject:     strings.TrimSpace(row[0]),
			Stimulation: sucrose.Stimulation(strings.ToUpper(strings.TrimSpace(row[1]))),
			Preference:  pref,
		})
	}
	log.Info("[SucroseReader] loaded %d observations from %s", len(obs), path)
	return obs, nil
}
