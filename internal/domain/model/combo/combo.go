package combo

import "fmt"

// Dimension identifies one of the three attribute axes of a combination
type Dimension int

const (
	Metal Dimension = iota
	Organ
	Herb
)

// Dimensions lists every dimension in positional order
var Dimensions = [3]Dimension{Metal, Organ, Herb}

// String returns the lower-case dimension name
func (d Dimension) String() string {
	switch d {
	case Metal:
		return "metal"
	case Organ:
		return "organ"
	case Herb:
		return "herb"
	default:
		return fmt.Sprintf("dimension(%d)", int(d))
	}
}

// ParseDimension converts a dimension name back into a Dimension
func ParseDimension(s string) (Dimension, error) {
	switch s {
	case "metal":
		return Metal, nil
	case "organ":
		return Organ, nil
	case "herb":
		return Herb, nil
	default:
		return 0, fmt.Errorf("unknown dimension %q", s)
	}
}

// Combo is one (metal, organ, herb) triple. It is a value type: two combos
// are equal iff all three components are equal.
type Combo struct {
	Metal string `json:"metal"`
	Organ string `json:"organ"`
	Herb  string `json:"herb"`
}

// New builds a combo from its three components
func New(metal, organ, herb string) Combo {
	return Combo{Metal: metal, Organ: organ, Herb: herb}
}

// Get returns the component for dimension d
func (c Combo) Get(d Dimension) string {
	switch d {
	case Metal:
		return c.Metal
	case Organ:
		return c.Organ
	case Herb:
		return c.Herb
	default:
		panic(fmt.Sprintf("combo: unknown dimension %d", int(d)))
	}
}

// With returns a copy of c with dimension d set to v
func (c Combo) With(d Dimension, v string) Combo {
	switch d {
	case Metal:
		c.Metal = v
	case Organ:
		c.Organ = v
	case Herb:
		c.Herb = v
	default:
		panic(fmt.Sprintf("combo: unknown dimension %d", int(d)))
	}
	return c
}

// Complete reports whether all three components are set
func (c Combo) Complete() bool {
	return c.Metal != "" && c.Organ != "" && c.Herb != ""
}

// MatchCount returns how many positional attributes a and b share (0-3)
func MatchCount(a, b Combo) int {
	n := 0
	if a.Metal == b.Metal {
		n++
	}
	if a.Organ == b.Organ {
		n++
	}
	if a.Herb == b.Herb {
		n++
	}
	return n
}

func (c Combo) String() string {
	return c.Metal + " + " + c.Organ + " + " + c.Herb
}
