package study

import (
	"errors"
	"fmt"
	"testing"

	"dbstats/domain/core"
)

func testTable(pdCount, coCount int) *WideTable {
	table := &WideTable{}
	for i := 0; i < pdCount+coCount; i++ {
		g := GroupPD
		if i >= pdCount {
			g = GroupCO
		}
		weights := make([]float64, StudyWeeks)
		for w := range weights {
			weights[w] = 300 + float64(i) + float64(w)
		}
		table.Rows = append(table.Rows, WideRow{Group: g, Weights: weights})
	}
	return table
}

func TestAssignSubjects(t *testing.T) {
	got := AssignSubjects(12, 9)
	want := []string{
		"PD_1", "PD_2", "PD_3", "PD_4", "PD_5", "PD_6", "PD_7", "PD_8", "PD_9",
		"CO_1", "CO_2", "CO_3",
	}
	if len(got) != len(want) {
		t.Fatalf("got %d subjects, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("subject %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestMelt_CellBijection(t *testing.T) {
	table := testTable(9, 3)
	long, err := Melt(table, 9, WeeksPerPhase)
	if err != nil {
		t.Fatal(err)
	}

	if len(long) != 12*StudyWeeks {
		t.Fatalf("got %d long rows, want %d", len(long), 12*StudyWeeks)
	}

	// Every (Subject, WeekNum) key appears exactly once.
	seen := make(map[string]bool)
	for _, obs := range long {
		key := fmt.Sprintf("%s/%d", obs.Subject, obs.WeekNum)
		if seen[key] {
			t.Errorf("duplicate long row for %s", key)
		}
		seen[key] = true
	}
}

func TestMelt_CarriesPhaseAndWeekNum(t *testing.T) {
	long, err := Melt(testTable(2, 1), 2, WeeksPerPhase)
	if err != nil {
		t.Fatal(err)
	}
	for _, obs := range long {
		if obs.WeekNum < 1 || obs.WeekNum > StudyWeeks {
			t.Errorf("week number %d out of range", obs.WeekNum)
		}
		if obs.Phase != PhaseForWeek(obs.WeekNum, WeeksPerPhase) {
			t.Errorf("obs %s week %d has phase %s", obs.Subject, obs.WeekNum, obs.Phase)
		}
		if obs.Week != WeekLabel(obs.WeekNum) {
			t.Errorf("obs week label %q does not match week %d", obs.Week, obs.WeekNum)
		}
	}
}

func TestMelt_EmptyTable(t *testing.T) {
	_, err := Melt(&WideTable{}, 9, WeeksPerPhase)
	if !errors.Is(err, core.ErrEmptyDataset) {
		t.Errorf("got %v, want ErrEmptyDataset", err)
	}
}

func TestMelt_ShortRow(t *testing.T) {
	table := &WideTable{Rows: []WideRow{{Group: GroupPD, Weights: []float64{1, 2, 3}}}}
	_, err := Melt(table, 9, WeeksPerPhase)
	if !errors.Is(err, core.ErrSchemaMismatch) {
		t.Errorf("got %v, want ErrSchemaMismatch", err)
	}
}

func TestParseWeekNum(t *testing.T) {
	n, err := ParseWeekNum("Week_11")
	if err != nil || n != 11 {
		t.Errorf("ParseWeekNum(Week_11) = %d, %v", n, err)
	}
	if _, err := ParseWeekNum("Weight"); err == nil {
		t.Error("expected error for label without digits")
	}
}

func TestValidateGroupOrder(t *testing.T) {
	table := testTable(9, 3)
	if err := ValidateGroupOrder(table, 9); err != nil {
		t.Fatalf("consistent table rejected: %v", err)
	}

	// Swap a control row into the PD block.
	table.Rows[4].Group = GroupCO
	err := ValidateGroupOrder(table, 9)
	if !errors.Is(err, core.ErrGroupOrderMismatch) {
		t.Errorf("got %v, want ErrGroupOrderMismatch", err)
	}
}
