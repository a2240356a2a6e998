package sucrose

import (
	"errors"
	"testing"

	"dbstats/domain/core"
)

func TestPair(t *testing.T) {
	obs := []Observation{
		{Subject: "PD_1", Stimulation: StimOff, Preference: 70},
		{Subject: "PD_2", Stimulation: StimOff, Preference: 65},
		{Subject: "PD_1", Stimulation: StimOn, Preference: 85},
		{Subject: "PD_2", Stimulation: StimOn, Preference: 80},
	}
	paired, err := Pair(obs)
	if err != nil {
		t.Fatal(err)
	}

	if len(paired.Subjects) != 2 {
		t.Fatalf("got %d subjects, want 2", len(paired.Subjects))
	}
	if paired.Subjects[0] != "PD_1" || paired.Subjects[1] != "PD_2" {
		t.Errorf("subject order %v, want first-appearance order", paired.Subjects)
	}
	if paired.Off[0] != 70 || paired.On[0] != 85 {
		t.Errorf("PD_1 pair = (%g, %g), want (70, 85)", paired.Off[0], paired.On[0])
	}
}

func TestPair_MissingState(t *testing.T) {
	obs := []Observation{
		{Subject: "PD_1", Stimulation: StimOff, Preference: 70},
	}
	_, err := Pair(obs)
	if !errors.Is(err, core.ErrSchemaMismatch) {
		t.Errorf("got %v, want ErrSchemaMismatch", err)
	}
}

func TestPair_DuplicateState(t *testing.T) {
	obs := []Observation{
		{Subject: "PD_1", Stimulation: StimOff, Preference: 70},
		{Subject: "PD_1", Stimulation: StimOff, Preference: 71},
	}
	_, err := Pair(obs)
	if !errors.Is(err, core.ErrSchemaMismatch) {
		t.Errorf("got %v, want ErrSchemaMismatch", err)
	}
}

func TestPair_UnknownState(t *testing.T) {
	obs := []Observation{
		{Subject: "PD_1", Stimulation: "MAYBE", Preference: 70},
	}
	_, err := Pair(obs)
	if !errors.Is(err, core.ErrSchemaMismatch) {
		t.Errorf("got %v, want ErrSchemaMismatch", err)
	}
}

func TestPair_Empty(t *testing.T) {
	_, err := Pair(nil)
	if !errors.Is(err, core.ErrEmptyDataset) {
		t.Errorf("got %v, want ErrEmptyDataset", err)
	}
}
