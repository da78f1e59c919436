// Package recommend suggests the next values worth trying for a partially
// pinned (metal, organ, herb) selection.
package recommend

import (
	"sort"

	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/combo"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/trial"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/reducer"
)

// Options tunes the filter
type Options struct {
	// SkipPending drops a value when the selection plus that value names a
	// combo that is already queued. Only applies with two attributes pinned.
	SkipPending bool
}

// Recommendation lists, per unpinned dimension, the values worth trying next
// in domain order. Pinned dimensions always have an empty list.
type Recommendation struct {
	Selection reducer.Selection `json:"selection"`
	Metal     []string          `json:"metal"`
	Organ     []string          `json:"organ"`
	Herb      []string          `json:"herb"`
}

// For returns the list for dimension d
func (r Recommendation) For(d combo.Dimension) []string {
	switch d {
	case combo.Metal:
		return r.Metal
	case combo.Organ:
		return r.Organ
	default:
		return r.Herb
	}
}

func (r *Recommendation) set(d combo.Dimension, v []string) {
	switch d {
	case combo.Metal:
		r.Metal = v
	case combo.Organ:
		r.Organ = v
	default:
		r.Herb = v
	}
}

// Recommend filters the candidate set by the selection and removes values
// that are already known bad or near-miss in the context of what is pinned.
// With zero or three attributes pinned nothing is recommended.
func Recommend(domain *combo.Domain, candidates *reducer.CandidateSet, trials []trial.Trial, sel reducer.Selection, opts Options) Recommendation {
	rec := Recommendation{Selection: sel, Metal: []string{}, Organ: []string{}, Herb: []string{}}
	pinned := sel.PinnedCount()
	if pinned == 0 || pinned == len(combo.Dimensions) {
		return rec
	}

	filtered := candidates.Filter(sel)
	for _, d := range combo.Dimensions {
		if sel.Pinned(d) {
			continue
		}
		forbidden := Forbidden(trials, sel, d)
		if opts.SkipPending && pinned == 2 {
			for v := range queued(trials, sel, d) {
				forbidden[v] = trial.KindPending
			}
		}

		seen := make(map[string]struct{})
		var values []string
		for _, c := range filtered {
			v := c.Get(d)
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			if _, bad := forbidden[v]; bad {
				continue
			}
			values = append(values, v)
		}
		sort.SliceStable(values, func(i, j int) bool {
			return domain.Index(d, values[i]) < domain.Index(d, values[j])
		})
		if values == nil {
			values = []string{}
		}
		rec.set(d, values)
	}
	return rec
}

// Forbidden returns the values of dimension d that appear in a failure or
// hint whose every pinned attribute (other than d) equals the selection.
// The map value is the kind that caused it; a failure outranks a hint.
// With nothing pinned the result is empty.
func Forbidden(trials []trial.Trial, sel reducer.Selection, d combo.Dimension) map[string]trial.Kind {
	out := make(map[string]trial.Kind)
	scoped := sel.With(d, "")
	if scoped.PinnedCount() == 0 {
		return out
	}
	for _, t := range trials {
		if t.Kind != trial.KindFailure && t.Kind != trial.KindHint {
			continue
		}
		if !scoped.Matches(t.Combo) {
			continue
		}
		v := t.Combo.Get(d)
		if prev, ok := out[v]; ok && prev == trial.KindFailure {
			continue
		}
		out[v] = t.Kind
	}
	return out
}

func queued(trials []trial.Trial, sel reducer.Selection, d combo.Dimension) map[string]struct{} {
	out := make(map[string]struct{})
	for _, t := range trials {
		if t.Kind == trial.KindPending && sel.With(d, "").Matches(t.Combo) {
			out[t.Combo.Get(d)] = struct{}{}
		}
	}
	return out
}
