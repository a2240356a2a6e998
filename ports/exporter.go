package ports

import "dbstats/domain/study"

// TableExporterPort writes the supplementary tables under the output
// directory, overwriting any previous run's files.
type TableExporterPort interface {
	WritePhaseMeans(path string, rows []study.PhaseMean) error
	WriteSubjectEffects(path string, rows []study.SubjectEffect) error
	WritePosthoc(path string, rows []study.PosthocRow) error
}
