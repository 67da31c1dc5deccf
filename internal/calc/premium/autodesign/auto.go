// Package autodesign picks the strongest composition for a set of elements.
package autodesign

import (
	"context"

	"Labusch/internal/calc/strength"
	"Labusch/internal/calc/sweep"
)

type Input struct {
	Elements []string `json:"elements"`
	Step     float64  `json:"step"`
	Exponent string   `json:"exponent"`
}

type Design struct {
	Elements []string        `json:"elements"`
	Exponent string          `json:"exponent"`
	Step     float64         `json:"step"`
	Points   int             `json:"points"`
	Best     strength.Result `json:"best"`
	Notes    string          `json:"notes"`
}

// Optimize sweeps the binary or ternary grid and keeps only the best point.
func Optimize(ctx context.Context, r sweep.Runner, in Input) (Design, error) {
	out, err := r.Run(ctx, sweep.Request{Elements: in.Elements, Step: in.Step, Exponent: in.Exponent})
	if err != nil {
		return Design{}, err
	}
	return Design{
		Elements: out.Elements,
		Exponent: out.Exponent,
		Step:     out.Step,
		Points:   out.Points,
		Best:     out.Best,
		Notes:    "Strongest composition on the sweep grid.",
	}, nil
}
