// Package strength computes the Labusch-type solid solution strength of an
// alloy from per-element properties.
//
// The model has one free parameter, the misfit exponent p in
//
//	μ_i = (α·δa_i² + δG_i²)^p
//
// Two conventions are in use (p = 1/3 and p = 2/3) and they give materially
// different magnitudes, so the exponent travels in Model and is never assumed.
package strength

import (
	"fmt"
	"math"
)

const (
	ExponentCubeRoot  = 1.0 / 3.0
	ExponentTwoThirds = 2.0 / 3.0

	// Calibration is the empirical divisor of the Labusch strengthening model.
	Calibration = 45.0

	DefaultAlpha     = 9.0
	DefaultTolerance = 1e-3
)

type Element struct {
	Name            string  `json:"name" yaml:"name"`
	ShearModulus    float64 `json:"shear_modulus" yaml:"shear_modulus"`
	LatticeMisfit   float64 `json:"lattice_misfit" yaml:"lattice_misfit"`
	ModulusMismatch float64 `json:"modulus_mismatch" yaml:"modulus_mismatch"`
	Alpha           float64 `json:"alpha" yaml:"alpha"`
}

type Member struct {
	Element       Element `json:"element"`
	Concentration float64 `json:"concentration"`
}

type Result struct {
	Elements       []string  `json:"elements"`
	Concentrations []float64 `json:"concentrations"`
	ShearModulus   float64   `json:"shear_modulus_gpa"`
	Strength       float64   `json:"solid_solution_strength_mpa"`
}

// Model selects the misfit exponent and the tolerance applied to free-form
// compositions.
type Model struct {
	MisfitExponent float64 `json:"misfit_exponent"`
	Tolerance      float64 `json:"tolerance"`
}

func DefaultModel() Model {
	return Model{MisfitExponent: ExponentCubeRoot, Tolerance: DefaultTolerance}
}

func (m Model) Validate() error {
	if math.IsNaN(m.MisfitExponent) || math.IsInf(m.MisfitExponent, 0) || m.MisfitExponent <= 0 {
		return fmt.Errorf("%w: misfit exponent %v", ErrInvalidModel, m.MisfitExponent)
	}
	if !(m.Tolerance > 0 && m.Tolerance < 1) {
		return fmt.Errorf("%w: tolerance %v", ErrInvalidModel, m.Tolerance)
	}
	return nil
}

func MisfitParameter(alpha, latticeMisfit, modulusMismatch, exponent float64) float64 {
	return math.Pow(alpha*latticeMisfit*latticeMisfit+modulusMismatch*modulusMismatch, exponent)
}

// SolidSolutionStrength validates a caller-supplied composition and evaluates it.
func (m Model) SolidSolutionStrength(members []Member) (Result, error) {
	if err := m.Validate(); err != nil {
		return Result{}, err
	}
	if err := ValidateComposition(members, m.Tolerance); err != nil {
		return Result{}, err
	}
	return m.Evaluate(members), nil
}

// Evaluate skips validation. It is meant for grids that are valid by
// construction; use SolidSolutionStrength for anything else.
func (m Model) Evaluate(members []Member) Result {
	res := Result{
		Elements:       make([]string, len(members)),
		Concentrations: make([]float64, len(members)),
	}

	var shear, aggregate float64
	for i, mb := range members {
		e := mb.Element
		c := mb.Concentration
		res.Elements[i] = e.Name
		res.Concentrations[i] = c

		shear += c * e.ShearModulus
		mu := MisfitParameter(e.Alpha, e.LatticeMisfit, e.ModulusMismatch, m.MisfitExponent)
		aggregate += c * mu * mu
	}

	res.ShearModulus = shear
	res.Strength = shear * math.Pow(aggregate, 2.0/3.0) / Calibration
	return res
}

// ValidateComposition checks that every concentration lies in [0,1] and that
// they sum to 1 within the relative tolerance tol.
func ValidateComposition(members []Member, tol float64) error {
	if len(members) == 0 {
		return fmt.Errorf("%w: empty composition", ErrInvalidComposition)
	}
	var total float64
	for _, mb := range members {
		c := mb.Concentration
		if math.IsNaN(c) || c < 0 || c > 1 {
			return fmt.Errorf("%w: %s concentration %v outside [0,1]", ErrInvalidComposition, mb.Element.Name, c)
		}
		total += c
	}
	if math.Abs(total-1) > tol*math.Max(math.Abs(total), 1) {
		return fmt.Errorf("%w: concentrations sum to %.6f", ErrInvalidComposition, total)
	}
	return nil
}
