// Package sucrose holds the sucrose-preference side of the experiment:
// one preference measurement per subject per stimulation state.
package sucrose

import (
	"fmt"

	"dbstats/domain/core"
)

// Stimulation is the DBS stimulation state during a preference test.
type Stimulation string

const (
	StimOff Stimulation = "OFF"
	StimOn  Stimulation = "ON"
)

// StimOrder is the canonical display ordering.
var StimOrder = []Stimulation{StimOff, StimOn}

// Observation is one subject's sucrose preference (percent) under one
// stimulation state.
type Observation struct {
	Subject     string
	Stimulation Stimulation
	Preference  float64
}

// Paired holds the per-subject OFF/ON preference pairs, aligned by
// subject order of first appearance.
type Paired struct {
	Subjects []string
	Off      []float64
	On       []float64
}

// Pair aligns the long observations into per-subject OFF/ON pairs.
// Every subject must appear exactly once per stimulation state.
func Pair(obs []Observation) (*Paired, error) {
	if len(obs) == 0 {
		return nil, core.ErrEmptyDataset
	}

	order := make([]string, 0)
	seen := make(map[string]map[Stimulation]float64)

	for _, o := range obs {
		if o.Stimulation != StimOff && o.Stimulation != StimOn {
			return nil, core.NewSchemaError(fmt.Sprintf(
				"subject %s has unknown stimulation state %q", o.Subject, o.Stimulation))
		}
		states, ok := seen[o.Subject]
		if !ok {
			order = append(order, o.Subject)
			states = make(map[Stimulation]float64, 2)
			seen[o.Subject] = states
		}
		if _, dup := states[o.Stimulation]; dup {
			return nil, core.NewSchemaError(fmt.Sprintf(
				"subject %s has duplicate %s measurement", o.Subject, o.Stimulation))
		}
		states[o.Stimulation] = o.Preference
	}

	p := &Paired{
		Subjects: order,
		Off:      make([]float64, 0, len(order)),
		On:       make([]float64, 0, len(order)),
	}
	for _, subject := range order {
		states := seen[subject]
		off, okOff := states[StimOff]
		on, okOn := states[StimOn]
		if !okOff || !okOn {
			return nil, core.NewSchemaError(fmt.Sprintf(
				"subject %s is missing an OFF or ON measurement", subject))
		}
		p.Off = append(p.Off, off)
		p.On = append(p.On, on)
	}
	return p, nil
}

// Values returns the preference column for one stimulation state.
func (p *Paired) Values(s Stimulation) []float64 {
	if s == StimOff {
		return p.Off
	}
	return p.On
}
