package reducer

import (
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/combo"
)

// Selection is a partial (metal, organ, herb) pick; an empty component is
// unpinned
type Selection struct {
	Metal string `json:"metal,omitempty"`
	Organ string `json:"organ,omitempty"`
	Herb  string `json:"herb,omitempty"`
}

// Pinned reports whether dimension d is fixed
func (s Selection) Pinned(d combo.Dimension) bool {
	return s.Get(d) != ""
}

// Get returns the pinned value for d, or ""
func (s Selection) Get(d combo.Dimension) string {
	return combo.Combo(s).Get(d)
}

// With returns a copy of s with dimension d set to v; "" unpins it
func (s Selection) With(d combo.Dimension, v string) Selection {
	return Selection(combo.Combo(s).With(d, v))
}

// PinnedCount returns how many dimensions are fixed
func (s Selection) PinnedCount() int {
	n := 0
	for _, d := range combo.Dimensions {
		if s.Pinned(d) {
			n++
		}
	}
	return n
}

// Matches reports whether c agrees with every pinned attribute
func (s Selection) Matches(c combo.Combo) bool {
	for _, d := range combo.Dimensions {
		if s.Pinned(d) && s.Get(d) != c.Get(d) {
			return false
		}
	}
	return true
}

// CandidateSet is the ordered set of combos not excluded by any trial.
// It is always reproducible from (Domain, trials) and is never persisted.
type CandidateSet struct {
	combos []combo.Combo
	member map[combo.Combo]struct{}
}

func newCandidateSet(combos []combo.Combo) *CandidateSet {
	member := make(map[combo.Combo]struct{}, len(combos))
	for _, c := range combos {
		member[c] = struct{}{}
	}
	return &CandidateSet{combos: combos, member: member}
}

// Len returns the number of candidates
func (s *CandidateSet) Len() int {
	return len(s.combos)
}

// Contains reports whether c is still a candidate
func (s *CandidateSet) Contains(c combo.Combo) bool {
	_, ok := s.member[c]
	return ok
}

// Combos returns the candidates in domain order
func (s *CandidateSet) Combos() []combo.Combo {
	return append([]combo.Combo(nil), s.combos...)
}

// Filter returns the candidates consistent with sel, in domain order
func (s *CandidateSet) Filter(sel Selection) []combo.Combo {
	var out []combo.Combo
	for _, c := range s.combos {
		if sel.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}

// Any reports whether some candidate is consistent with sel
func (s *CandidateSet) Any(sel Selection) bool {
	for _, c := range s.combos {
		if sel.Matches(c) {
			return true
		}
	}
	return false
}

// Equal reports whether both sets hold the same combos in the same order
func (s *CandidateSet) Equal(other *CandidateSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i := range s.combos {
		if s.combos[i] != other.combos[i] {
			return false
		}
	}
	return true
}
