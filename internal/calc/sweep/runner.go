package sweep

import (
	"context"
	"fmt"

	"Labusch/internal/calc/strength"
)

type Request struct {
	Elements []string `json:"elements"`
	Step     float64  `json:"step"`
	Exponent string   `json:"exponent"`
}

type Outcome struct {
	Elements []string          `json:"elements"`
	Exponent string            `json:"exponent"`
	Step     float64           `json:"step"`
	Points   int               `json:"points"`
	Best     strength.Result   `json:"best"`
	Results  []strength.Result `json:"results,omitempty"`
}

// Runner carries the defaults a request may override. MaxPoints bounds the
// grid a single request may ask for; zero means DefaultMaxPoints.
type Runner struct {
	Catalog   strength.Catalog
	Model     strength.Model
	Step      float64
	Workers   int
	MaxPoints int
}

// Run sweeps two or three named elements.
func (r Runner) Run(ctx context.Context, req Request) (Outcome, error) {
	if len(req.Elements) != 2 && len(req.Elements) != 3 {
		return Outcome{}, fmt.Errorf("%w: %d (want 2 or 3)", ErrElementCount, len(req.Elements))
	}
	model, err := r.Model.WithExponent(req.Exponent)
	if err != nil {
		return Outcome{}, err
	}
	step := req.Step
	if step == 0 {
		step = r.Step
	}
	if step == 0 {
		step = DefaultStep
	}
	if _, err := CheckPoints(len(req.Elements), step, r.MaxPoints); err != nil {
		return Outcome{}, err
	}
	elements, err := strength.Resolve(r.Catalog, req.Elements...)
	if err != nil {
		return Outcome{}, err
	}

	var results []strength.Result
	if r.Workers > 1 {
		results, err = CollectParallel(ctx, model, elements, step, r.Workers)
	} else {
		seq, serr := Sweep(model, elements, step)
		if serr != nil {
			return Outcome{}, serr
		}
		results = Collect(seq)
	}
	if err != nil {
		return Outcome{}, err
	}

	best, err := Best(results)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Elements: append([]string(nil), req.Elements...),
		Exponent: strength.ExponentLabel(model.MisfitExponent),
		Step:     step,
		Points:   len(results),
		Best:     best,
		Results:  results,
	}, nil
}
