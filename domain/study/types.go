package study

import "fmt"

// Group labels the two experimental cohorts.
type Group string

const (
	GroupPD Group = "PD"
	GroupCO Group = "CO"
)

// Phase is one of the three 4-week windows of the 12-week study.
type Phase string

const (
	PhasePre  Phase = "Pre-DBS"
	PhaseDBS  Phase = "DBS"
	PhasePost Phase = "Post-DBS"
)

// PhaseOrder is the canonical display and comparison ordering.
var PhaseOrder = []Phase{PhasePre, PhaseDBS, PhasePost}

// WeeksPerPhase is the default width of each experimental phase.
const WeeksPerPhase = 4

// StudyWeeks is the number of weekly measurements per subject.
const StudyWeeks = 12

// DefaultPDCount is how many leading rows of the wide table are PD subjects.
const DefaultPDCount = 9

// PhaseForWeek maps a 1-based week number onto its experimental phase.
// Boundaries are inclusive on the upper edge: weeks 1-4 are Pre-DBS,
// 5-8 are DBS, and everything after is Post-DBS.
func PhaseForWeek(week, weeksPerPhase int) Phase {
	switch {
	case week <= weeksPerPhase:
		return PhasePre
	case week <= 2*weeksPerPhase:
		return PhaseDBS
	default:
		return PhasePost
	}
}

// WideRow is one subject's row of the wide input table: a group label
// followed by one weight per study week, in week order.
type WideRow struct {
	Group   Group
	Weights []float64
}

// WideTable is the raw fixed-schema input: one row per subject,
// PD subjects first. Subject identity is positional until AssignSubjects
// attaches explicit IDs.
type WideTable struct {
	Rows []WideRow
}

// RowCount returns the number of subjects in the table.
func (t *WideTable) RowCount() int { return len(t.Rows) }

// Observation is one (subject, week) measurement in long form.
type Observation struct {
	Subject string
	Group   Group
	Week    string // original column label, e.g. "Week_3"
	WeekNum int
	Weight  float64
	Phase   Phase
}

// PhaseMean is one subject's mean weight within one phase.
type PhaseMean struct {
	Subject string
	Group   Group
	Phase   Phase
	Weight  float64
}

// SubjectEffect is the per-subject pivot of the PD phase means with the
// derived DBS-effect columns. Delta and PercentChange are NaN when the
// baseline is degenerate; see ComputeSubjectEffects.
type SubjectEffect struct {
	Subject       string
	Pre           float64
	DBS           float64
	Post          float64
	Delta         float64
	PercentChange float64
}

// WeekLabel formats the canonical column label for a 1-based week number.
func WeekLabel(week int) string {
	return fmt.Sprintf("Week_%d", week)
}
