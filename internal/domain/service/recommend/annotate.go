package recommend

import (
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/combo"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/trial"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/reducer"
)

// Status classifies one value of a dimension for a picker
type Status string

const (
	StatusRecommended Status = "recommended"
	StatusForbidden   Status = "forbidden"
	StatusQueued      Status = "queued"
	StatusEliminated  Status = "eliminated"
)

// ValueStatus is one row of an annotated picker
type ValueStatus struct {
	Value  string `json:"value"`
	Index  int    `json:"index"`
	Status Status `json:"status"`
	// Near is set when a hint, and no failure, forbids the value
	Near bool `json:"near,omitempty"`
}

// Annotate classifies every value of dimension d given the other pinned
// attributes of sel. The pin on d itself, if any, is ignored.
func Annotate(domain *combo.Domain, candidates *reducer.CandidateSet, trials []trial.Trial, sel reducer.Selection, d combo.Dimension, opts Options) []ValueStatus {
	scoped := sel.With(d, "")
	forbidden := Forbidden(trials, scoped, d)
	var pending map[string]struct{}
	if opts.SkipPending && scoped.PinnedCount() == 2 {
		pending = queued(trials, scoped, d)
	}

	values := domain.Values(d)
	out := make([]ValueStatus, 0, len(values))
	for i, v := range values {
		vs := ValueStatus{Value: v, Index: i}
		kind, isForbidden := forbidden[v]
		_, isQueued := pending[v]
		switch {
		case isForbidden:
			vs.Status = StatusForbidden
			vs.Near = kind == trial.KindHint
		case isQueued:
			vs.Status = StatusQueued
		case candidates.Any(scoped.With(d, v)):
			vs.Status = StatusRecommended
		default:
			vs.Status = StatusEliminated
		}
		out = append(out, vs)
	}
	return out
}
