package catalog_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"Labusch/internal/calc/strength"
	"Labusch/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := catalog.Default()
	assert.Equal(t, []string{"W", "Mo", "Nb", "Ta", "Ti", "Zr", "Cr", "Fe", "V"}, c.Names())
	assert.Equal(t, 9, c.Len())

	w, err := c.Get("W")
	require.NoError(t, err)
	assert.Equal(t, strength.Element{Name: "W", ShearModulus: 161, LatticeMisfit: 0.012, ModulusMismatch: 0.03, Alpha: 9}, w)

	_, err = c.Get("w")
	assert.ErrorIs(t, err, catalog.ErrUnknownElement, "lookup is exact")
}

func TestNamesIsACopy(t *testing.T) {
	c := catalog.Default()
	names := c.Names()
	names[0] = "Xx"
	assert.Equal(t, "W", c.Names()[0])
}

func TestResolve(t *testing.T) {
	els, err := strength.Resolve(catalog.Default(), "Nb", "Ta")
	require.NoError(t, err)
	assert.Equal(t, 38.0, els[0].ShearModulus)
	assert.Equal(t, 69.0, els[1].ShearModulus)

	_, err = strength.Resolve(catalog.Default(), "Nb", "Unobtainium")
	assert.ErrorIs(t, err, catalog.ErrUnknownElement)
}

func TestNew_Rejects(t *testing.T) {
	cases := map[string][]strength.Element{
		"empty name": {{Name: " ", ShearModulus: 1}},
		"duplicate":  {{Name: "A", ShearModulus: 1}, {Name: "A", ShearModulus: 2}},
		"modulus":    {{Name: "A", ShearModulus: 0}},
		"alpha":      {{Name: "A", ShearModulus: 1, Alpha: -1}},
	}
	for name, els := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := catalog.New(els...)
			assert.ErrorIs(t, err, catalog.ErrInvalidCatalog)
		})
	}
}

func TestDecode(t *testing.T) {
	src := `
elements:
  - name: A
    shear_modulus: 100
    lattice_misfit: 0.01
    modulus_mismatch: 0.02
  - name: B
    shear_modulus: 50
    lattice_misfit: 0.03
    modulus_mismatch: 0.01
    alpha: 16
  - name: C
    shear_modulus: 10
    alpha: 0
`
	c, err := catalog.Decode(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, c.Names())

	a, _ := c.Get("A")
	assert.Equal(t, strength.DefaultAlpha, a.Alpha, "missing alpha defaults to 9")
	b, _ := c.Get("B")
	assert.Equal(t, 16.0, b.Alpha)
	cc, _ := c.Get("C")
	assert.Zero(t, cc.Alpha, "explicit zero alpha is kept")
}

func TestNew_KeepsZeroAlpha(t *testing.T) {
	c, err := catalog.New(strength.Element{Name: "A", ShearModulus: 1, LatticeMisfit: 0.5, ModulusMismatch: 0.1})
	require.NoError(t, err)
	a, err := c.Get("A")
	require.NoError(t, err)
	assert.Zero(t, a.Alpha)

	mu := strength.MisfitParameter(a.Alpha, a.LatticeMisfit, a.ModulusMismatch, strength.ExponentCubeRoot)
	assert.InDelta(t, 0.2154, mu, 1e-4, "lattice term drops out when alpha is 0")
}

func TestDecode_Invalid(t *testing.T) {
	for name, src := range map[string]string{
		"no elements":   "elements: []\n",
		"unknown field": "elements:\n  - name: A\n    shear_modulus: 1\n    density: 3\n",
		"not yaml":      "elements: [",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := catalog.Decode(strings.NewReader(src))
			assert.ErrorIs(t, err, catalog.ErrInvalidCatalog)
		})
	}
}

func TestLoad(t *testing.T) {
	c, err := catalog.Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, c.Len())

	path := filepath.Join(t.TempDir(), "elements.yaml")
	require.NoError(t, os.WriteFile(path, []byte("elements:\n  - name: Cu\n    shear_modulus: 48\n"), 0o600))

	c, err = catalog.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cu"}, c.Names())

	_, err = catalog.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
