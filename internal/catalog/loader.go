package catalog

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"Labusch/internal/calc/strength"

	"gopkg.in/yaml.v3"
)

type yamlCatalog struct {
	Elements []yamlElement `yaml:"elements"`
}

// yamlElement keeps alpha as a pointer so an absent key and an explicit 0
// decode differently.
type yamlElement struct {
	Name            string   `yaml:"name"`
	ShearModulus    float64  `yaml:"shear_modulus"`
	LatticeMisfit   float64  `yaml:"lattice_misfit"`
	ModulusMismatch float64  `yaml:"modulus_mismatch"`
	Alpha           *float64 `yaml:"alpha"`
}

func (y yamlElement) element() strength.Element {
	alpha := strength.DefaultAlpha
	if y.Alpha != nil {
		alpha = *y.Alpha
	}
	return strength.Element{
		Name:            y.Name,
		ShearModulus:    y.ShearModulus,
		LatticeMisfit:   y.LatticeMisfit,
		ModulusMismatch: y.ModulusMismatch,
		Alpha:           alpha,
	}
}

func LoadFile(path string) (*Static, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	c, err := Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func Decode(r io.Reader) (*Static, error) {
	var dto yamlCatalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&dto); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if len(dto.Elements) == 0 {
		return nil, fmt.Errorf("%w: no elements", ErrInvalidCatalog)
	}
	elements := make([]strength.Element, len(dto.Elements))
	for i, y := range dto.Elements {
		elements[i] = y.element()
	}
	return New(elements...)
}

// Load returns the catalog at path, or Default when path is empty.
func Load(path string) (*Static, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
