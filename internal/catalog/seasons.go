package catalog

import (
	"fmt"
	"strings"

	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/combo"
)

// Seasons in display order. "all" is a season of its own, not a wildcard.
var Seasons = []string{"spring", "summer", "autumn", "winter", "all"}

// SeasonGroup lists the herbs that can be picked in one season
type SeasonGroup struct {
	Season string   `json:"season"`
	Herbs  []string `json:"herbs"`
}

// ValidSeason reports whether s is a known season name
func ValidSeason(s string) bool {
	s = strings.ToLower(Normalize(s))
	for _, v := range Seasons {
		if v == s {
			return true
		}
	}
	return false
}

// HerbInfo looks up a herb by name, case-insensitively
func (c *Catalog) HerbInfo(name string) (Herb, error) {
	canon := c.Canonical(combo.Herb, name)
	for _, h := range c.Herbs {
		if h.Name == canon {
			return h, nil
		}
	}
	return Herb{}, fmt.Errorf("unknown herb %q", name)
}

// HerbsIn returns the herbs picked in season, in catalog order
func (c *Catalog) HerbsIn(season string) ([]string, error) {
	season = strings.ToLower(Normalize(season))
	if !ValidSeason(season) {
		return nil, fmt.Errorf("unknown season %q (want one of %s)", season, strings.Join(Seasons, ", "))
	}
	out := []string{}
	for _, h := range c.Herbs {
		if h.Season1 == season || h.Season2 == season {
			out = append(out, h.Name)
		}
	}
	return out, nil
}

// SeasonGroups groups every herb by season. A herb with the same season in
// both slots is listed once.
func (c *Catalog) SeasonGroups() []SeasonGroup {
	groups := make([]SeasonGroup, 0, len(Seasons))
	for _, s := range Seasons {
		herbs, _ := c.HerbsIn(s)
		groups = append(groups, SeasonGroup{Season: s, Herbs: herbs})
	}
	return groups
}
