// Package projection projects the trial log onto two-dimensional views:
// the per-organ cross-section matrix and the untested metal/herb pairs.
package projection

import (
	"errors"
	"fmt"

	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/combo"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/trial"
)

// ErrUnknownOrgan is returned when the matrix organ is not in the domain
var ErrUnknownOrgan = errors.New("unknown organ")

// CellState is the strongest known fact about one (metal, organ, herb) cell
type CellState string

const (
	CellSuccess       CellState = "success"
	CellHint          CellState = "hint"
	CellLocalFailure  CellState = "local_failure"
	CellGlobalFailure CellState = "global_failure"
	CellPending       CellState = "pending"
	CellEmpty         CellState = "empty"
)

// ParseCellState validates a configured state name
func ParseCellState(s string) (CellState, error) {
	switch st := CellState(s); st {
	case CellSuccess, CellHint, CellLocalFailure, CellGlobalFailure, CellPending:
		return st, nil
	default:
		return "", fmt.Errorf("unknown matrix cell state %q", s)
	}
}

// Policy decides which facts a cell shows and in what order of strength.
// States missing from Precedence are never shown.
type Policy struct {
	Precedence []CellState
}

// DefaultPolicy ranks success > hint > local failure > global failure > pending
func DefaultPolicy() Policy {
	return Policy{Precedence: []CellState{
		CellSuccess, CellHint, CellLocalFailure, CellGlobalFailure, CellPending,
	}}
}

// Cell is one annotated (metal, herb) position for the matrix organ
type Cell struct {
	Metal   string    `json:"metal"`
	Herb    string    `json:"herb"`
	State   CellState `json:"state"`
	Label   string    `json:"label,omitempty"`
	TrialID string    `json:"trial_id,omitempty"`
	// FromOrgan is the organ of the failure behind a global failure
	FromOrgan string `json:"from_organ,omitempty"`
}

// Matrix is the metal x herb grid for one organ, in domain order
type Matrix struct {
	Organ  string   `json:"organ"`
	Metals []string `json:"metals"`
	Herbs  []string `json:"herbs"`
	Cells  [][]Cell `json:"cells"`
}

// At returns the cell for (metal, herb)
func (m Matrix) At(metal, herb string) (Cell, bool) {
	for i, mv := range m.Metals {
		if mv != metal {
			continue
		}
		for j, hv := range m.Herbs {
			if hv == herb {
				return m.Cells[i][j], true
			}
		}
	}
	return Cell{}, false
}

// Count returns the number of cells in state st
func (m Matrix) Count(st CellState) int {
	n := 0
	for _, row := range m.Cells {
		for _, c := range row {
			if c.State == st {
				n++
			}
		}
	}
	return n
}

type fact struct {
	state     CellState
	label     string
	trialID   string
	fromOrgan string
}

type pairKey struct{ metal, herb string }

// BuildMatrix annotates every (metal, herb) pair for organ with the
// strongest fact allowed by policy. A global failure is a failure on the same
// (metal, herb) recorded under a different organ: the pair is dead by the
// match-count rule but was never tested with this organ.
func BuildMatrix(domain *combo.Domain, trials []trial.Trial, organ string, policy Policy) (Matrix, error) {
	if !domain.Contains(combo.Organ, organ) {
		return Matrix{}, fmt.Errorf("%w: %q", ErrUnknownOrgan, organ)
	}
	if len(policy.Precedence) == 0 {
		policy = DefaultPolicy()
	}
	rank := make(map[CellState]int, len(policy.Precedence))
	for i, st := range policy.Precedence {
		if _, dup := rank[st]; !dup {
			rank[st] = i
		}
	}

	best := make(map[pairKey]fact)
	offer := func(k pairKey, f fact) {
		r, shown := rank[f.state]
		if !shown {
			return
		}
		if cur, ok := best[k]; ok && rank[cur.state] <= r {
			return
		}
		best[k] = f
	}

	for _, t := range trials {
		k := pairKey{t.Combo.Metal, t.Combo.Herb}
		local := t.Combo.Organ == organ
		switch t.Kind {
		case trial.KindSuccess:
			if local {
				offer(k, fact{state: CellSuccess, label: t.Label, trialID: t.ID})
			}
		case trial.KindHint:
			if local {
				offer(k, fact{state: CellHint, label: t.Label, trialID: t.ID})
			}
		case trial.KindFailure:
			if local {
				offer(k, fact{state: CellLocalFailure, trialID: t.ID})
			} else {
				offer(k, fact{state: CellGlobalFailure, trialID: t.ID, fromOrgan: t.Combo.Organ})
			}
		case trial.KindPending:
			if local {
				offer(k, fact{state: CellPending, trialID: t.ID})
			}
		default:
			panic(fmt.Sprintf("projection: unhandled trial kind %q", t.Kind))
		}
	}

	m := Matrix{
		Organ:  organ,
		Metals: domain.Values(combo.Metal),
		Herbs:  domain.Values(combo.Herb),
	}
	m.Cells = make([][]Cell, len(m.Metals))
	for i, metal := range m.Metals {
		row := make([]Cell, len(m.Herbs))
		for j, herb := range m.Herbs {
			cell := Cell{Metal: metal, Herb: herb, State: CellEmpty}
			if f, ok := best[pairKey{metal, herb}]; ok {
				cell.State = f.state
				cell.Label = f.label
				cell.TrialID = f.trialID
				cell.FromOrgan = f.fromOrgan
			}
			row[j] = cell
		}
		m.Cells[i] = row
	}
	return m, nil
}
