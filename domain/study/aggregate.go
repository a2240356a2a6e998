package study

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"dbstats/domain/core"
)

// PhaseMeans groups the long table by (Subject, Group, Phase) and takes the
// arithmetic mean of Weight within each group. The output is deterministic:
// subjects in order of first appearance, phases in canonical order, exactly
// one row per subject per phase that has observations.
func PhaseMeans(long []Observation) ([]PhaseMean, error) {
	type key struct {
		subject string
		phase   Phase
	}

	order := make([]string, 0)
	groups := make(map[string]Group)
	buckets := make(map[key][]float64)

	for _, obs := range long {
		if _, seen := groups[obs.Subject]; !seen {
			order = append(order, obs.Subject)
			groups[obs.Subject] = obs.Group
		}
		k := key{obs.Subject, obs.Phase}
		buckets[k] = append(buckets[k], obs.Weight)
	}

	means := make([]PhaseMean, 0, len(order)*len(PhaseOrder))
	for _, subject := range order {
		for _, phase := range PhaseOrder {
			values, ok := buckets[key{subject, phase}]
			if !ok {
				continue
			}
			m, err := stats.Mean(values)
			if err != nil {
				return nil, fmt.Errorf("phase mean for %s/%s: %w", subject, phase, err)
			}
			means = append(means, PhaseMean{
				Subject: subject,
				Group:   groups[subject],
				Phase:   phase,
				Weight:  m,
			})
		}
	}
	return means, nil
}

// FilterPhaseMeans returns the phase-mean rows belonging to one group.
func FilterPhaseMeans(means []PhaseMean, g Group) []PhaseMean {
	out := make([]PhaseMean, 0, len(means))
	for _, pm := range means {
		if pm.Group == g {
			out = append(out, pm)
		}
	}
	return out
}

// PhaseColumn extracts one phase's means across subjects, preserving
// subject order. Used to build the paired samples for the test runner.
func PhaseColumn(means []PhaseMean, phase Phase) []float64 {
	out := make([]float64, 0)
	for _, pm := range means {
		if pm.Phase == phase {
			out = append(out, pm.Weight)
		}
	}
	return out
}

// ComputeSubjectEffects pivots one group's phase means into one row per
// subject with the three phase columns and the derived DBS-effect columns:
// Delta = DBS - Pre and PercentChange = Delta/Pre * 100.
//
// A subject whose Pre-DBS mean is zero has no defined percent change; such
// subjects get PercentChange = NaN and are reported in the second return
// value so the caller can warn rather than silently propagate non-finite
// values. A subject missing any phase is an error.
func ComputeSubjectEffects(means []PhaseMean) ([]SubjectEffect, []string, error) {
	order := make([]string, 0)
	byPhase := make(map[string]map[Phase]float64)

	for _, pm := range means {
		if _, seen := byPhase[pm.Subject]; !seen {
			order = append(order, pm.Subject)
			byPhase[pm.Subject] = make(map[Phase]float64, len(PhaseOrder))
		}
		byPhase[pm.Subject][pm.Phase] = pm.Weight
	}

	effects := make([]SubjectEffect, 0, len(order))
	degenerate := make([]string, 0)

	for _, subject := range order {
		phases := byPhase[subject]
		for _, phase := range PhaseOrder {
			if _, ok := phases[phase]; !ok {
				return nil, nil, fmt.Errorf("%w: %s has no %s mean", core.ErrMissingPhase, subject, phase)
			}
		}

		pre := phases[PhasePre]
		dbs := phases[PhaseDBS]
		post := phases[PhasePost]
		delta := dbs - pre

		pct := math.NaN()
		if pre != 0 {
			pct = delta / pre * 100
		} else {
			degenerate = append(degenerate, subject)
		}

		effects = append(effects, SubjectEffect{
			Subject:       subject,
			Pre:           pre,
			DBS:           dbs,
			Post:          post,
			Delta:         delta,
			PercentChange: pct,
		})
	}
	return effects, degenerate, nil
}

// EffectColumn extracts one phase's per-subject means from the pivoted
// effect table, preserving row order.
func EffectColumn(effects []SubjectEffect, phase Phase) []float64 {
	out := make([]float64, len(effects))
	for i, e := range effects {
		switch phase {
		case PhasePre:
			out[i] = e.Pre
		case PhaseDBS:
			out[i] = e.DBS
		case PhasePost:
			out[i] = e.Post
		}
	}
	return out
}
