// Package catalog loads the ingredient lists that define the research
// domain, together with the herb picking seasons.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/combo"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// Herb is a herb entry with up to two picking seasons
type Herb struct {
	Name    string `yaml:"name" json:"name"`
	Season1 string `yaml:"season1,omitempty" json:"season1,omitempty"`
	Season2 string `yaml:"season2,omitempty" json:"season2,omitempty"`
}

// Catalog is the ordered ingredient list of a session
type Catalog struct {
	Metals []string `yaml:"metals"`
	Organs []string `yaml:"organs"`
	Herbs  []Herb   `yaml:"herbs"`

	domain *combo.Domain
	folded [3]map[string]string
}

// Default returns the embedded catalog
func Default() (*Catalog, error) {
	return Parse(defaultCatalogYAML)
}

// Load reads a catalog file; an empty path selects the embedded default
func Load(fs afero.Fs, path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes catalog YAML, normalises every value and builds the domain
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	for i := range c.Metals {
		c.Metals[i] = Normalize(c.Metals[i])
	}
	for i := range c.Organs {
		c.Organs[i] = Normalize(c.Organs[i])
	}
	for i := range c.Herbs {
		c.Herbs[i].Name = Normalize(c.Herbs[i].Name)
		c.Herbs[i].Season1 = strings.ToLower(Normalize(c.Herbs[i].Season1))
		c.Herbs[i].Season2 = strings.ToLower(Normalize(c.Herbs[i].Season2))
		for _, season := range []string{c.Herbs[i].Season1, c.Herbs[i].Season2} {
			if season != "" && !ValidSeason(season) {
				return nil, fmt.Errorf("herb %q: unknown season %q", c.Herbs[i].Name, season)
			}
		}
	}

	d, err := combo.NewDomain(c.Metals, c.Organs, c.HerbNames())
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	c.domain = d

	fold := cases.Fold()
	for i, dim := range combo.Dimensions {
		m := make(map[string]string)
		for _, v := range d.Values(dim) {
			m[fold.String(v)] = v
		}
		c.folded[i] = m
	}
	return &c, nil
}

// Domain returns the combination universe built from the catalog
func (c *Catalog) Domain() *combo.Domain {
	return c.domain
}

// HerbNames returns herb names in catalog order
func (c *Catalog) HerbNames() []string {
	names := make([]string, len(c.Herbs))
	for i, h := range c.Herbs {
		names[i] = h.Name
	}
	return names
}

// Canonical maps user input onto the catalog spelling of a value in dim.
// Input is normalised first; an exact match wins over a case-folded one.
// Unknown input is returned normalised so validation can report it.
func (c *Catalog) Canonical(dim combo.Dimension, input string) string {
	v := Normalize(input)
	if v == "" || c.domain.Contains(dim, v) {
		return v
	}
	if canon, ok := c.folded[dim][cases.Fold().String(v)]; ok {
		return canon
	}
	return v
}

// CanonicalCombo applies Canonical to every component
func (c *Catalog) CanonicalCombo(in combo.Combo) combo.Combo {
	for _, d := range combo.Dimensions {
		in = in.With(d, c.Canonical(d, in.Get(d)))
	}
	return in
}

// Normalize trims and NFC-normalises a catalog or user value
func Normalize(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
