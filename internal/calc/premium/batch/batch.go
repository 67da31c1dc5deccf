package batch

import (
	"errors"
	"fmt"

	"Labusch/internal/calc/strength"
)

var ErrNoItems = errors.New("batch: no items")

type Item struct {
	Elements []struct {
		Name          string  `json:"name"`
		Concentration float64 `json:"concentration"`
	} `json:"elements"`
}

type Input struct {
	Items    []Item `json:"items"`
	Exponent string `json:"exponent"`
}

type Output struct {
	Exponent string            `json:"exponent"`
	Results  []strength.Result `json:"results"`
}

// Calculate evaluates every item in order. The first invalid item fails the batch.
func Calculate(m strength.Model, c strength.Catalog, in Input) (Output, error) {
	if len(in.Items) == 0 {
		return Output{}, ErrNoItems
	}
	model, err := m.WithExponent(in.Exponent)
	if err != nil {
		return Output{}, err
	}

	out := Output{
		Exponent: strength.ExponentLabel(model.MisfitExponent),
		Results:  make([]strength.Result, 0, len(in.Items)),
	}
	for i, item := range in.Items {
		names := make([]string, len(item.Elements))
		conc := make([]float64, len(item.Elements))
		for j, e := range item.Elements {
			names[j], conc[j] = e.Name, e.Concentration
		}
		elements, err := strength.Resolve(c, names...)
		if err != nil {
			return Output{}, fmt.Errorf("items[%d]: %w", i, err)
		}
		members, err := strength.Compose(elements, conc)
		if err != nil {
			return Output{}, fmt.Errorf("items[%d]: %w", i, err)
		}
		res, err := model.SolidSolutionStrength(members)
		if err != nil {
			return Output{}, fmt.Errorf("items[%d]: %w", i, err)
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
