package strength

import "fmt"

// Catalog is the read-only element lookup the calculators depend on.
type Catalog interface {
	Get(name string) (Element, error)
	Names() []string
}

// Resolve looks every name up before any composition is built, so an unknown
// element fails the request up front.
func Resolve(c Catalog, names ...string) ([]Element, error) {
	out := make([]Element, 0, len(names))
	for _, n := range names {
		e, err := c.Get(n)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// Compose pairs elements with concentrations by position.
func Compose(elements []Element, concentrations []float64) ([]Member, error) {
	if len(elements) != len(concentrations) {
		return nil, fmt.Errorf("%w: %d elements, %d concentrations", ErrInvalidComposition, len(elements), len(concentrations))
	}
	out := make([]Member, len(elements))
	for i := range elements {
		out[i] = Member{Element: elements[i], Concentration: concentrations[i]}
	}
	return out, nil
}
