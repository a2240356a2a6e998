package study

import "testing"

func TestPhaseForWeek_TotalCoverage(t *testing.T) {
	want := map[int]Phase{
		1: PhasePre, 2: PhasePre, 3: PhasePre, 4: PhasePre,
		5: PhaseDBS, 6: PhaseDBS, 7: PhaseDBS, 8: PhaseDBS,
		9: PhasePost, 10: PhasePost, 11: PhasePost, 12: PhasePost,
	}
	for week := 1; week <= StudyWeeks; week++ {
		got := PhaseForWeek(week, WeeksPerPhase)
		if got != want[week] {
			t.Errorf("PhaseForWeek(%d) = %s, want %s", week, got, want[week])
		}
	}
}

func TestPhaseForWeek_Boundaries(t *testing.T) {
	cases := []struct {
		week int
		want Phase
	}{
		{4, PhasePre},
		{5, PhaseDBS},
		{8, PhaseDBS},
		{9, PhasePost},
	}
	for _, c := range cases {
		if got := PhaseForWeek(c.week, WeeksPerPhase); got != c.want {
			t.Errorf("week %d: got %s, want %s", c.week, got, c.want)
		}
	}
}

func TestWeekLabel(t *testing.T) {
	if got := WeekLabel(7); got != "Week_7" {
		t.Errorf("WeekLabel(7) = %q", got)
	}
}
