// Package engine owns the trial log of a research session together with
// the candidate set derived from it.
//
// The candidate set is a cache: it is rebuilt from (Domain, Log) by
// recompute after every mutation and is never patched incrementally, so it
// is always reproducible from the log alone. Engine is not safe for
// concurrent use; hosts must serialise calls.
package engine

import (
	"fmt"

	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/combo"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/trial"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/projection"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/recommend"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/service/reducer"
)

// Engine is the single mutation entry point of the core
type Engine struct {
	domain     *combo.Domain
	ids        trial.IDGenerator
	log        *trial.Log
	candidates *reducer.CandidateSet
}

// New creates an engine with an empty log
func New(domain *combo.Domain, ids trial.IDGenerator) *Engine {
	if ids == nil {
		ids = trial.NewULIDGenerator()
	}
	e := &Engine{domain: domain, ids: ids, log: trial.NewLog()}
	e.recompute()
	return e
}

// Domain returns the immutable domain of the session
func (e *Engine) Domain() *combo.Domain {
	return e.domain
}

// Trials returns every trial in insertion order
func (e *Engine) Trials() []trial.Trial {
	return e.log.All()
}

// TrialsOf returns the trials of one kind in insertion order
func (e *Engine) TrialsOf(k trial.Kind) []trial.Trial {
	return e.log.ByKind(k)
}

// Find looks up a trial by ID
func (e *Engine) Find(id string) (trial.Trial, bool) {
	return e.log.Find(id)
}

// Candidates returns the current candidate set
func (e *Engine) Candidates() *reducer.CandidateSet {
	return e.candidates
}

// Commit validates and records one outcome. Recording a definitive outcome
// for a queued combo removes the pending trial in the same step.
func (e *Engine) Commit(kind trial.Kind, c combo.Combo, label string) (trial.Trial, error) {
	t, err := trial.New(e.ids.NewID(), kind, c, label)
	if err != nil {
		return trial.Trial{}, err
	}
	if err := e.checkDomain(t.Combo); err != nil {
		return trial.Trial{}, err
	}
	err = e.apply(func(l *trial.Log) error {
		_, err := l.Insert(t)
		return err
	})
	if err != nil {
		return trial.Trial{}, err
	}
	return t, nil
}

// Resolve turns the pending trial pendingID into a definitive outcome
func (e *Engine) Resolve(pendingID string, kind trial.Kind, label string) (trial.Trial, error) {
	p, ok := e.log.Find(pendingID)
	if !ok {
		return trial.Trial{}, fmt.Errorf("%w: %s", trial.ErrNotFound, pendingID)
	}
	if p.Kind != trial.KindPending {
		return trial.Trial{}, &trial.ValidationError{
			Field:  "id",
			Reason: fmt.Sprintf("trial %s is %s, not pending", pendingID, p.Kind),
		}
	}
	if !kind.IsDefinitive() {
		return trial.Trial{}, &trial.ValidationError{
			Field:  "kind",
			Reason: fmt.Sprintf("a pending trial resolves to success, hint or failure, not %s", kind),
		}
	}
	return e.Commit(kind, p.Combo, label)
}

// Remove deletes a trial by ID and rebuilds the candidate set
func (e *Engine) Remove(id string) (trial.Trial, error) {
	var removed trial.Trial
	err := e.apply(func(l *trial.Log) error {
		var err error
		removed, err = l.Remove(id)
		return err
	})
	if err != nil {
		return trial.Trial{}, err
	}
	return removed, nil
}

// Replace swaps the whole log for trials, atomically: on error the
// current log and candidate set are untouched.
func (e *Engine) Replace(trials []trial.Trial) error {
	next, err := trial.FromTrials(trials)
	if err != nil {
		return err
	}
	for _, t := range trials {
		if err := e.checkDomain(t.Combo); err != nil {
			return fmt.Errorf("trial %s: %w", t.ID, err)
		}
	}
	e.log = next
	e.recompute()
	return nil
}

// Recommend suggests next values for a partial selection
func (e *Engine) Recommend(sel reducer.Selection, opts recommend.Options) recommend.Recommendation {
	return recommend.Recommend(e.domain, e.candidates, e.log.All(), sel, opts)
}

// Annotate classifies every value of dimension d for a picker
func (e *Engine) Annotate(sel reducer.Selection, d combo.Dimension, opts recommend.Options) []recommend.ValueStatus {
	return recommend.Annotate(e.domain, e.candidates, e.log.All(), sel, d, opts)
}

// Matrix builds the cross-section for organ
func (e *Engine) Matrix(organ string, policy projection.Policy) (projection.Matrix, error) {
	return projection.BuildMatrix(e.domain, e.log.All(), organ, policy)
}

// Untested lists the metal/herb pairs no trial has touched
func (e *Engine) Untested(focusOrgan string) []projection.Pair {
	return projection.UntestedPairs(e.domain, e.log.All(), focusOrgan)
}

// apply runs mutate on a copy of the log and swaps it in only on success,
// then rebuilds the candidate set
func (e *Engine) apply(mutate func(*trial.Log) error) error {
	next := e.log.Clone()
	if err := mutate(next); err != nil {
		return err
	}
	e.log = next
	e.recompute()
	return nil
}

// recompute rebuilds the candidate set from the domain and the full log
func (e *Engine) recompute() {
	e.candidates = reducer.Reduce(e.domain, e.log.All())
}

func (e *Engine) checkDomain(c combo.Combo) error {
	for _, d := range combo.Dimensions {
		if !e.domain.Contains(d, c.Get(d)) {
			return &trial.ValidationError{
				Field:  d.String(),
				Reason: fmt.Sprintf("%q is not a known %s", c.Get(d), d),
			}
		}
	}
	return nil
}
