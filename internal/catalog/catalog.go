// Package catalog holds element property tables. A catalog is an explicit value
// owned by the caller; there is no package-level table the calculators reach for.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"Labusch/internal/calc/strength"
)

var (
	ErrUnknownElement = errors.New("catalog: unknown element")
	ErrInvalidCatalog = errors.New("catalog: invalid catalog")
)

// Static is an immutable, insertion-ordered catalog.
type Static struct {
	order []string
	byKey map[string]strength.Element
}

// New builds a catalog. Names must be non-empty and unique. Alpha is taken as
// given, zero included; defaulting an absent alpha is the decoder's job.
func New(elements ...strength.Element) (*Static, error) {
	c := &Static{
		order: make([]string, 0, len(elements)),
		byKey: make(map[string]strength.Element, len(elements)),
	}
	for i, e := range elements {
		e.Name = strings.TrimSpace(e.Name)
		if e.Name == "" {
			return nil, fmt.Errorf("%w: elements[%d] has no name", ErrInvalidCatalog, i)
		}
		if _, dup := c.byKey[e.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate element %q", ErrInvalidCatalog, e.Name)
		}
		if e.ShearModulus <= 0 {
			return nil, fmt.Errorf("%w: %s shear modulus must be positive", ErrInvalidCatalog, e.Name)
		}
		if e.Alpha < 0 {
			return nil, fmt.Errorf("%w: %s alpha must not be negative", ErrInvalidCatalog, e.Name)
		}
		c.order = append(c.order, e.Name)
		c.byKey[e.Name] = e
	}
	return c, nil
}

func (c *Static) Get(name string) (strength.Element, error) {
	e, ok := c.byKey[name]
	if !ok {
		return strength.Element{}, fmt.Errorf("%w: %q", ErrUnknownElement, name)
	}
	return e, nil
}

func (c *Static) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Static) Elements() []strength.Element {
	out := make([]strength.Element, len(c.order))
	for i, n := range c.order {
		out[i] = c.byKey[n]
	}
	return out
}

func (c *Static) Len() int { return len(c.order) }

// Default returns the reference table of refractory and transition metals.
func Default() *Static {
	c, err := New(
		strength.Element{Name: "W", ShearModulus: 161, LatticeMisfit: 0.012, ModulusMismatch: 0.03, Alpha: 9},
		strength.Element{Name: "Mo", ShearModulus: 126, LatticeMisfit: 0.015, ModulusMismatch: 0.025, Alpha: 9},
		strength.Element{Name: "Nb", ShearModulus: 38, LatticeMisfit: 0.025, ModulusMismatch: 0.02, Alpha: 9},
		strength.Element{Name: "Ta", ShearModulus: 69, LatticeMisfit: 0.02, ModulusMismatch: 0.018, Alpha: 9},
		strength.Element{Name: "Ti", ShearModulus: 44, LatticeMisfit: 0.03, ModulusMismatch: 0.04, Alpha: 9},
		strength.Element{Name: "Zr", ShearModulus: 33, LatticeMisfit: 0.035, ModulusMismatch: 0.045, Alpha: 9},
		strength.Element{Name: "Cr", ShearModulus: 115, LatticeMisfit: 0.01, ModulusMismatch: 0.015, Alpha: 9},
		strength.Element{Name: "Fe", ShearModulus: 82, LatticeMisfit: 0.014, ModulusMismatch: 0.02, Alpha: 9},
		strength.Element{Name: "V", ShearModulus: 47, LatticeMisfit: 0.022, ModulusMismatch: 0.03, Alpha: 9},
	)
	if err != nil {
		panic(err)
	}
	return c
}
