package dto

import (
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/combo"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/trial"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/projection"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/recommend"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/reducer"
)

// TrialView is the outbound shape of one trial
type TrialView struct {
	ID    string      `json:"id"`
	Kind  string      `json:"kind"`
	Combo combo.Combo `json:"combo"`
	Label string      `json:"label,omitempty"`
}

// NewTrialView converts a domain trial
func NewTrialView(t trial.Trial) TrialView {
	return TrialView{ID: t.ID, Kind: t.Kind.String(), Combo: t.Combo, Label: t.Label}
}

// NewTrialViews converts a list of trials, never returning nil
func NewTrialViews(trials []trial.Trial) []TrialView {
	out := make([]TrialView, 0, len(trials))
	for _, t := range trials {
		out = append(out, NewTrialView(t))
	}
	return out
}

// CandidateList is a possibly truncated listing of the candidate set
type CandidateList struct {
	Total     int           `json:"total"`
	Universe  int           `json:"universe"`
	Truncated bool          `json:"truncated"`
	Combos    []combo.Combo `json:"combos"`
}

// OptionsView is the annotated value list of one dimension
type OptionsView struct {
	Dimension string                  `json:"dimension"`
	Selection reducer.Selection       `json:"selection"`
	Values    []recommend.ValueStatus `json:"values"`
}

// UntestedReport lists metal/herb pairs not touched by any trial
type UntestedReport struct {
	FocusOrgan string            `json:"focus_organ,omitempty"`
	Pairs      []projection.Pair `json:"pairs"`
}

// Stats summarises the session
type Stats struct {
	Successes  int `json:"successes"`
	Hints      int `json:"hints"`
	Failures   int `json:"failures"`
	Pending    int `json:"pending"`
	Candidates int `json:"candidates"`
	Universe   int `json:"universe"`
}
