package presenter

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/YoshitsuguKoike/potionlab/internal/domain/model/combo"
)

// hue step, saturation and lightness per dimension
var paletteShape = [3]struct {
	step int
	s, l float64
}{
	combo.Metal: {step: 35, s: 0.50, l: 0.75},
	combo.Organ: {step: 55, s: 0.60, l: 0.70},
	combo.Herb:  {step: 75, s: 0.65, l: 0.65},
}

// Palette assigns every domain value a stable pastel colour derived from
// its display position, so the same value keeps its colour across views.
type Palette struct {
	colors [3]map[string]string
}

// NewPalette builds the palette for a domain
func NewPalette(d *combo.Domain) *Palette {
	p := &Palette{}
	for _, dim := range combo.Dimensions {
		values := d.Values(dim)
		m := make(map[string]string, len(values))
		for i, v := range values {
			m[v] = ColorAt(dim, i)
		}
		p.colors[dim] = m
	}
	return p
}

// ColorAt returns the hex colour of the i-th value of dim
func ColorAt(dim combo.Dimension, i int) string {
	shape := paletteShape[dim]
	hue := float64((i * shape.step) % 360)
	return colorful.Hsl(hue, shape.s, shape.l).Hex()
}

// Color returns the hex colour of value v, or "" when v is not in the domain
func (p *Palette) Color(dim combo.Dimension, v string) string {
	return p.colors[dim][v]
}

// Map returns a copy of the value to colour table of dim
func (p *Palette) Map(dim combo.Dimension) map[string]string {
	out := make(map[string]string, len(p.colors[dim]))
	for k, v := range p.colors[dim] {
		out[k] = v
	}
	return out
}
