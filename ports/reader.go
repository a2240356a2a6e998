// Package ports defines the interfaces between the analysis services and
// their I/O adapters.
package ports

import (
	"dbstats/domain/study"
	"dbstats/domain/sucrose"
)

// WeightReaderPort loads the wide weight table from a data file.
type WeightReaderPort interface {
	ReadWideTable(path string) (*study.WideTable, error)
}

// SucroseReaderPort loads the long sucrose-preference table from a data file.
type SucroseReaderPort interface {
	ReadObservations(path string) ([]sucrose.Observation, error)
}
