package trial

import (
	"fmt"

	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/combo"
)

// Log is the append/delete store of trials and the only source of truth
// for the candidate set. It keeps insertion order so exports are stable.
//
// Invariants:
//   - IDs are unique across all kinds
//   - a combo has at most one definitive (success, hint, failure) trial
//   - a combo with a definitive trial has no pending trial
//   - a combo has at most one pending trial
type Log struct {
	trials []Trial
}

// NewLog creates an empty log
func NewLog() *Log {
	return &Log{}
}

// FromTrials rebuilds a log from stored trials, enforcing every invariant.
// Unlike Insert it never drops pending trials: a stored pending trial for a
// resolved combo is reported as an error.
func FromTrials(trials []Trial) (*Log, error) {
	l := NewLog()
	for i, t := range trials {
		if _, err := New(t.ID, t.Kind, t.Combo, t.Label); err != nil {
			return nil, fmt.Errorf("trial %d: %w", i, err)
		}
		if err := l.check(t); err != nil {
			return nil, fmt.Errorf("trial %d: %w", i, err)
		}
		if t.Kind.IsDefinitive() {
			if p, ok := l.PendingFor(t.Combo); ok {
				return nil, fmt.Errorf("trial %d: %w", i, &ValidationError{
					Field:  "combo",
					Reason: fmt.Sprintf("%s is resolved but still pending as %s", t.Combo, p.ID),
				})
			}
		}
		l.trials = append(l.trials, t)
	}
	return l, nil
}

// Len returns the number of trials
func (l *Log) Len() int {
	return len(l.trials)
}

// All returns a copy of every trial in insertion order
func (l *Log) All() []Trial {
	return append([]Trial(nil), l.trials...)
}

// ByKind returns the trials of one kind in insertion order
func (l *Log) ByKind(k Kind) []Trial {
	var out []Trial
	for _, t := range l.trials {
		if t.Kind == k {
			out = append(out, t)
		}
	}
	return out
}

// Count returns the number of trials of kind k
func (l *Log) Count(k Kind) int {
	n := 0
	for _, t := range l.trials {
		if t.Kind == k {
			n++
		}
	}
	return n
}

// Find looks up a trial by ID
func (l *Log) Find(id string) (Trial, bool) {
	for _, t := range l.trials {
		if t.ID == id {
			return t, true
		}
	}
	return Trial{}, false
}

// DefinitiveFor returns the resolved outcome recorded for c, if any
func (l *Log) DefinitiveFor(c combo.Combo) (Trial, bool) {
	for _, t := range l.trials {
		if t.Kind.IsDefinitive() && t.Combo == c {
			return t, true
		}
	}
	return Trial{}, false
}

// PendingFor returns the queued trial for c, if any
func (l *Log) PendingFor(c combo.Combo) (Trial, bool) {
	for _, t := range l.trials {
		if t.Kind == KindPending && t.Combo == c {
			return t, true
		}
	}
	return Trial{}, false
}

// Insert appends t. A definitive trial removes the pending trial of the same
// combo in the same step; the removed trials are returned.
func (l *Log) Insert(t Trial) ([]Trial, error) {
	if err := l.check(t); err != nil {
		return nil, err
	}
	var resolved []Trial
	if t.Kind.IsDefinitive() {
		kept := l.trials[:0:0]
		for _, existing := range l.trials {
			if existing.Kind == KindPending && existing.Combo == t.Combo {
				resolved = append(resolved, existing)
				continue
			}
			kept = append(kept, existing)
		}
		l.trials = kept
	}
	l.trials = append(l.trials, t)
	return resolved, nil
}

// Remove deletes the trial with the given ID
func (l *Log) Remove(id string) (Trial, error) {
	for i, t := range l.trials {
		if t.ID == id {
			l.trials = append(l.trials[:i:i], l.trials[i+1:]...)
			return t, nil
		}
	}
	return Trial{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Clone returns an independent copy
func (l *Log) Clone() *Log {
	return &Log{trials: l.All()}
}

// check validates t against the current contents without mutating
func (l *Log) check(t Trial) error {
	if _, dup := l.Find(t.ID); dup {
		return &ValidationError{Field: "id", Reason: fmt.Sprintf("duplicate trial ID %s", t.ID)}
	}
	if prior, ok := l.DefinitiveFor(t.Combo); ok {
		if t.Kind.IsDefinitive() {
			return &ValidationError{
				Field:  "combo",
				Reason: fmt.Sprintf("%s already recorded as %s (%s)", t.Combo, prior.Kind, prior.ID),
			}
		}
		return &ValidationError{
			Field:  "combo",
			Reason: fmt.Sprintf("%s already resolved as %s, cannot queue it", t.Combo, prior.Kind),
		}
	}
	if t.Kind == KindPending {
		if p, ok := l.PendingFor(t.Combo); ok {
			return &ValidationError{
				Field:  "combo",
				Reason: fmt.Sprintf("%s is already pending (%s)", t.Combo, p.ID),
			}
		}
	}
	return nil
}
