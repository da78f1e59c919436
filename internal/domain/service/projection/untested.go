package projection

import (
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/combo"
	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/trial"
)

// Pair is a (metal, herb) pair; the organ is irrelevant to the report
type Pair struct {
	Metal string `json:"metal"`
	Herb  string `json:"herb"`
}

func (p Pair) String() string {
	return p.Metal + " + " + p.Herb
}

// UntestedPairs lists the (metal, herb) pairs that no trial of any kind has
// touched under any organ, metal outer and herb inner.
//
// With a focus organ the report also drops every pair whose metal or herb
// already appears in some trial recorded with that organ.
func UntestedPairs(domain *combo.Domain, trials []trial.Trial, focusOrgan string) []Pair {
	tried := make(map[Pair]struct{}, len(trials))
	usedMetals := make(map[string]struct{})
	usedHerbs := make(map[string]struct{})
	for _, t := range trials {
		tried[Pair{t.Combo.Metal, t.Combo.Herb}] = struct{}{}
		if focusOrgan != "" && t.Combo.Organ == focusOrgan {
			usedMetals[t.Combo.Metal] = struct{}{}
			usedHerbs[t.Combo.Herb] = struct{}{}
		}
	}

	out := []Pair{}
	for _, m := range domain.Values(combo.Metal) {
		if _, used := usedMetals[m]; used {
			continue
		}
		for _, h := range domain.Values(combo.Herb) {
			if _, used := usedHerbs[h]; used {
				continue
			}
			p := Pair{Metal: m, Herb: h}
			if _, seen := tried[p]; seen {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
