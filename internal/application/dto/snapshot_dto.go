package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/combo"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/trial"
)

// LabeledEntry is a persisted success or hint
type LabeledEntry struct {
	ID    string      `json:"id"`
	Combo combo.Combo `json:"combo"`
	Label string      `json:"label"`
}

// Entry is a persisted failure or pending trial
type Entry struct {
	ID    string      `json:"id"`
	Combo combo.Combo `json:"combo"`
}

// Snapshot is the persisted and exported shape of the trial log.
// The candidate set is deliberately absent: it is recomputed on load.
type Snapshot struct {
	Successes []LabeledEntry `json:"successes"`
	Hints     []LabeledEntry `json:"hints"`
	Failures  []Entry        `json:"failures"`
	Pending   []Entry        `json:"pending"`
}

// NewSnapshot groups trials by kind, keeping insertion order within a kind
func NewSnapshot(trials []trial.Trial) *Snapshot {
	s := &Snapshot{
		Successes: []LabeledEntry{},
		Hints:     []LabeledEntry{},
		Failures:  []Entry{},
		Pending:   []Entry{},
	}
	for _, t := range trials {
		switch t.Kind {
		case trial.KindSuccess:
			s.Successes = append(s.Successes, LabeledEntry{ID: t.ID, Combo: t.Combo, Label: t.Label})
		case trial.KindHint:
			s.Hints = append(s.Hints, LabeledEntry{ID: t.ID, Combo: t.Combo, Label: t.Label})
		case trial.KindFailure:
			s.Failures = append(s.Failures, Entry{ID: t.ID, Combo: t.Combo})
		case trial.KindPending:
			s.Pending = append(s.Pending, Entry{ID: t.ID, Combo: t.Combo})
		default:
			panic(fmt.Sprintf("dto: unhandled trial kind %q", t.Kind))
		}
	}
	return s
}

// Trials flattens the snapshot: successes, hints, failures, then pending
func (s *Snapshot) Trials() []trial.Trial {
	out := make([]trial.Trial, 0, s.Len())
	for _, e := range s.Successes {
		out = append(out, trial.Trial{ID: e.ID, Kind: trial.KindSuccess, Combo: e.Combo, Label: e.Label})
	}
	for _, e := range s.Hints {
		out = append(out, trial.Trial{ID: e.ID, Kind: trial.KindHint, Combo: e.Combo, Label: e.Label})
	}
	for _, e := range s.Failures {
		out = append(out, trial.Trial{ID: e.ID, Kind: trial.KindFailure, Combo: e.Combo})
	}
	for _, e := range s.Pending {
		out = append(out, trial.Trial{ID: e.ID, Kind: trial.KindPending, Combo: e.Combo})
	}
	return out
}

// Len returns the total number of entries
func (s *Snapshot) Len() int {
	return len(s.Successes) + len(s.Hints) + len(s.Failures) + len(s.Pending)
}

// Encode serialises the snapshot to compact JSON
func (s *Snapshot) Encode() ([]byte, error) {
	data, err := json.Marshal(NewSnapshot(s.Trials()))
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// ImportError reports a malformed snapshot payload. Nothing is applied
// when it is returned.
type ImportError struct {
	Cause error
}

func (e *ImportError) Error() string {
	return "invalid backup data: " + e.Cause.Error()
}

func (e *ImportError) Unwrap() error {
	return e.Cause
}

// IsImport reports whether err is, or wraps, an ImportError
func IsImport(err error) bool {
	var ie *ImportError
	return errors.As(err, &ie)
}

// legacyEntry is one record of the browser tool's backup format
type legacyEntry struct {
	ID    string      `json:"id"`
	Combo combo.Combo `json:"combo"`
	Name  string      `json:"name"`
}

// rawSnapshot accepts both the current keys and the browser tool's keys
type rawSnapshot struct {
	Successes *[]LabeledEntry `json:"successes"`
	Hints     *[]LabeledEntry `json:"hints"`
	Failures  *[]Entry        `json:"failures"`
	Pending   *[]Entry        `json:"pending"`

	Potions      *[]legacyEntry `json:"potions"`
	CloseHints   *[]legacyEntry `json:"closeHints"`
	NothingTried *[]legacyEntry `json:"nothingTried"`
	InFlask      *[]legacyEntry `json:"inFlask"`
}

func (r *rawSnapshot) hasCurrent() bool {
	return r.Successes != nil || r.Hints != nil || r.Failures != nil || r.Pending != nil
}

func (r *rawSnapshot) hasLegacy() bool {
	return r.Potions != nil || r.CloseHints != nil || r.NothingTried != nil || r.InFlask != nil
}

// DecodeSnapshot parses text back into a snapshot. Missing lists decode as
// empty. Any parse problem is an *ImportError.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, &ImportError{Cause: errors.New("empty payload")}
	}
	if trimmed[0] != '{' {
		return nil, &ImportError{Cause: errors.New("payload is not a JSON object")}
	}

	var raw rawSnapshot
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if err := dec.Decode(&raw); err != nil {
		return nil, &ImportError{Cause: err}
	}
	if dec.More() {
		return nil, &ImportError{Cause: errors.New("trailing data after JSON object")}
	}
	if raw.hasCurrent() && raw.hasLegacy() {
		return nil, &ImportError{Cause: errors.New("payload mixes current and legacy keys")}
	}

	s := NewSnapshot(nil)
	if raw.hasLegacy() {
		s.Successes = fromLegacyLabeled(raw.Potions)
		s.Hints = fromLegacyLabeled(raw.CloseHints)
		s.Failures = fromLegacy(raw.NothingTried)
		s.Pending = fromLegacy(raw.InFlask)
		return s, nil
	}
	if raw.Successes != nil {
		s.Successes = append(s.Successes, *raw.Successes...)
	}
	if raw.Hints != nil {
		s.Hints = append(s.Hints, *raw.Hints...)
	}
	if raw.Failures != nil {
		s.Failures = append(s.Failures, *raw.Failures...)
	}
	if raw.Pending != nil {
		s.Pending = append(s.Pending, *raw.Pending...)
	}
	return s, nil
}

func fromLegacyLabeled(in *[]legacyEntry) []LabeledEntry {
	out := []LabeledEntry{}
	if in == nil {
		return out
	}
	for _, e := range *in {
		out = append(out, LabeledEntry{ID: e.ID, Combo: e.Combo, Label: e.Name})
	}
	return out
}

func fromLegacy(in *[]legacyEntry) []Entry {
	out := []Entry{}
	if in == nil {
		return out
	}
	for _, e := range *in {
		out = append(out, Entry{ID: e.ID, Combo: e.Combo})
	}
	return out
}
