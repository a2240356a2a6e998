package study

import (
	"fmt"
	"regexp"
	"strconv"

	"dbstats/domain/core"
)

var weekNumPattern = regexp.MustCompile(`(\d+)`)

// AssignSubjects produces the positional subject labels for a wide table:
// the first pdCount rows become PD_1..PD_n, the remainder CO_1..CO_m.
func AssignSubjects(rowCount, pdCount int) []string {
	subjects := make([]string, rowCount)
	for i := 0; i < rowCount; i++ {
		if i < pdCount {
			subjects[i] = fmt.Sprintf("PD_%d", i+1)
		} else {
			subjects[i] = fmt.Sprintf("CO_%d", i-pdCount+1)
		}
	}
	return subjects
}

// GroupForRow returns the group implied by row position under the
// PD-subjects-first layout.
func GroupForRow(row, pdCount int) Group {
	if row < pdCount {
		return GroupPD
	}
	return GroupCO
}

// ValidateGroupOrder checks the file's Group column against the positional
// PD-first assumption the subject labels are built on. The two encode the
// same information; if they ever disagree the input is malformed and the
// analysis must not proceed on silently wrong labels.
func ValidateGroupOrder(table *WideTable, pdCount int) error {
	for i, row := range table.Rows {
		want := GroupForRow(i, pdCount)
		if row.Group != want {
			return core.NewGroupOrderError(i+1, string(want), string(row.Group))
		}
	}
	return nil
}

// ParseWeekNum extracts the numeric week index from a week column label
// such as "Week_7".
func ParseWeekNum(label string) (int, error) {
	m := weekNumPattern.FindString(label)
	if m == "" {
		return 0, core.NewSchemaError(fmt.Sprintf("week label %q has no numeric index", label))
	}
	return strconv.Atoi(m)
}

// Melt reshapes the wide table into long form: one Observation per
// (subject, week) cell, R rows by W week columns giving exactly R*W
// observations. Subjects are assigned positionally and each observation
// carries its parsed week number and phase label.
func Melt(table *WideTable, pdCount, weeksPerPhase int) ([]Observation, error) {
	if table.RowCount() == 0 {
		return nil, core.ErrEmptyDataset
	}

	subjects := AssignSubjects(table.RowCount(), pdCount)
	long := make([]Observation, 0, table.RowCount()*StudyWeeks)

	for i, row := range table.Rows {
		if len(row.Weights) != StudyWeeks {
			return nil, core.NewSchemaError(fmt.Sprintf(
				"row %d has %d week columns, want %d", i+1, len(row.Weights), StudyWeeks))
		}
		for w, weight := range row.Weights {
			label := WeekLabel(w + 1)
			weekNum, err := ParseWeekNum(label)
			if err != nil {
				return nil, err
			}
			long = append(long, Observation{
				Subject: subjects[i],
				Group:   row.Group,
				Week:    label,
				WeekNum: weekNum,
				Weight:  weight,
				Phase:   PhaseForWeek(weekNum, weeksPerPhase),
			})
		}
	}
	return long, nil
}

// FilterGroup returns the observations belonging to one group.
func FilterGroup(long []Observation, g Group) []Observation {
	out := make([]Observation, 0, len(long))
	for _, obs := range long {
		if obs.Group == g {
			out = append(out, obs)
		}
	}
	return out
}
