package combo

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyDimension = errors.New("dimension has no values")
	ErrDuplicateValue = errors.New("dimension has duplicate values")
	ErrEmptyValue     = errors.New("dimension has an empty value")
)

// Domain is the immutable universe of combinations for a session.
// Value order is significant and is never re-sorted.
type Domain struct {
	values   [3][]string
	index    [3]map[string]int
	universe []Combo
}

// NewDomain validates the three value lists and builds the universe
func NewDomain(metals, organs, herbs []string) (*Domain, error) {
	d := &Domain{}
	for i, list := range [3][]string{metals, organs, herbs} {
		dim := Dimensions[i]
		if len(list) == 0 {
			return nil, fmt.Errorf("%s: %w", dim, ErrEmptyDimension)
		}
		idx := make(map[string]int, len(list))
		for pos, v := range list {
			if v == "" {
				return nil, fmt.Errorf("%s at position %d: %w", dim, pos, ErrEmptyValue)
			}
			if _, dup := idx[v]; dup {
				return nil, fmt.Errorf("%s %q: %w", dim, v, ErrDuplicateValue)
			}
			idx[v] = pos
		}
		d.values[i] = append([]string(nil), list...)
		d.index[i] = idx
	}
	d.universe = Generate(d.values[Metal], d.values[Organ], d.values[Herb])
	return d, nil
}

// MustDomain is NewDomain for fixtures; it panics on invalid input
func MustDomain(metals, organs, herbs []string) *Domain {
	d, err := NewDomain(metals, organs, herbs)
	if err != nil {
		panic(err)
	}
	return d
}

// Generate enumerates the full cross product, metal outer, organ middle,
// herb inner. The result is reproducible from the same three lists.
func Generate(metals, organs, herbs []string) []Combo {
	out := make([]Combo, 0, len(metals)*len(organs)*len(herbs))
	for _, m := range metals {
		for _, o := range organs {
			for _, h := range herbs {
				out = append(out, Combo{Metal: m, Organ: o, Herb: h})
			}
		}
	}
	return out
}

// Values returns a copy of the ordered values of dimension dim
func (d *Domain) Values(dim Dimension) []string {
	return append([]string(nil), d.values[dim]...)
}

// Index returns the display position of v in dim, or -1
func (d *Domain) Index(dim Dimension, v string) int {
	if i, ok := d.index[dim][v]; ok {
		return i
	}
	return -1
}

// Contains reports whether v is a value of dim
func (d *Domain) Contains(dim Dimension, v string) bool {
	_, ok := d.index[dim][v]
	return ok
}

// Universe returns the full ordered universe. Callers must not modify it.
func (d *Domain) Universe() []Combo {
	return d.universe
}

// Size is the number of combinations in the universe
func (d *Domain) Size() int {
	return len(d.universe)
}

// Ordinal returns the position of c in the universe, or -1 when any
// component is outside the domain
func (d *Domain) Ordinal(c Combo) int {
	m, o, h := d.Index(Metal, c.Metal), d.Index(Organ, c.Organ), d.Index(Herb, c.Herb)
	if m < 0 || o < 0 || h < 0 {
		return -1
	}
	no, nh := len(d.values[Organ]), len(d.values[Herb])
	return (m*no+o)*nh + h
}
