// Package reducer derives the candidate set from the domain and the trial log.
//
// The result is a pure function of (Domain, trials): it never depends on
// insertion order or on the history of deletions, so callers rebuild it from
// scratch after every mutation instead of patching it.
package reducer

import (
	"fmt"

	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/combo"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/trial"
)

// EliminationThreshold is the match count against a failure at which a
// combo stops being a candidate
const EliminationThreshold = 2

// Reduce computes the combos still possible given the recorded trials:
//  1. start from the full universe
//  2. drop every combo recorded as a success or hint
//  3. drop every combo sharing two or more attributes with a failure
func Reduce(domain *combo.Domain, trials []trial.Trial) *CandidateSet {
	exact := make(map[combo.Combo]struct{})
	var failures []combo.Combo
	for _, t := range trials {
		switch t.Kind {
		case trial.KindSuccess, trial.KindHint:
			exact[t.Combo] = struct{}{}
		case trial.KindFailure:
			failures = append(failures, t.Combo)
		case trial.KindPending:
		default:
			panic(fmt.Sprintf("reducer: unhandled trial kind %q", t.Kind))
		}
	}

	universe := domain.Universe()
	kept := make([]combo.Combo, 0, len(universe))
	for _, c := range universe {
		if _, hit := exact[c]; hit {
			continue
		}
		if eliminatedBy(c, failures) {
			continue
		}
		kept = append(kept, c)
	}
	return newCandidateSet(kept)
}

// Eliminated reports whether c is excluded by any of the given trials
func Eliminated(c combo.Combo, trials []trial.Trial) bool {
	for _, t := range trials {
		switch t.Kind {
		case trial.KindSuccess, trial.KindHint:
			if t.Combo == c {
				return true
			}
		case trial.KindFailure:
			if combo.MatchCount(c, t.Combo) >= EliminationThreshold {
				return true
			}
		case trial.KindPending:
		default:
			panic(fmt.Sprintf("reducer: unhandled trial kind %q", t.Kind))
		}
	}
	return false
}

func eliminatedBy(c combo.Combo, failures []combo.Combo) bool {
	for _, f := range failures {
		if combo.MatchCount(c, f) >= EliminationThreshold {
			return true
		}
	}
	return false
}
