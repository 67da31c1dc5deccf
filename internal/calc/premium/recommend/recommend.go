// Package recommend ranks catalog element pairs by their strongest binary alloy.
package recommend

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"Labusch/internal/calc/strength"
	"Labusch/internal/calc/sweep"
)

const DefaultTop = 5

type Pair struct {
	Elements []string        `json:"elements"`
	Best     strength.Result `json:"best"`
}

type Ranking struct {
	Exponent string  `json:"exponent"`
	Step     float64 `json:"step"`
	Pairs    int     `json:"pairs"`
	Top      []Pair  `json:"top"`
}

// Pairs sweeps every unordered pair in catalog order and returns the top
// entries by best strength. Ties keep catalog order. maxPoints bounds the
// points evaluated across all pairs; zero means sweep.DefaultMaxPoints.
func Pairs(ctx context.Context, c strength.Catalog, m strength.Model, step float64, top, maxPoints int) (Ranking, error) {
	if err := m.Validate(); err != nil {
		return Ranking{}, err
	}
	if step == 0 {
		step = sweep.DefaultStep
	}
	if top <= 0 {
		top = DefaultTop
	}
	if maxPoints <= 0 {
		maxPoints = sweep.DefaultMaxPoints
	}
	names := c.Names()
	size, err := sweep.Points(2, step)
	if err != nil {
		return Ranking{}, err
	}
	if n := len(names) * (len(names) - 1) / 2; n > 0 && size > maxPoints/n {
		return Ranking{}, fmt.Errorf("%w: %d pairs of %d points exceeds %d", sweep.ErrTooManyPoints, n, size, maxPoints)
	}
	elements, err := strength.Resolve(c, names...)
	if err != nil {
		return Ranking{}, err
	}

	var pairs []Pair
	for i := range elements {
		for j := i + 1; j < len(elements); j++ {
			if err := ctx.Err(); err != nil {
				return Ranking{}, err
			}
			seq, err := sweep.Binary(m, elements[i], elements[j], step)
			if err != nil {
				return Ranking{}, err
			}
			best, err := sweep.BestOf(seq)
			if err != nil {
				return Ranking{}, err
			}
			pairs = append(pairs, Pair{Elements: []string{names[i], names[j]}, Best: best})
		}
	}
	if len(pairs) == 0 {
		return Ranking{}, sweep.ErrEmptySweep
	}

	total := len(pairs)
	slices.SortStableFunc(pairs, func(a, b Pair) int {
		return cmp.Compare(b.Best.Strength, a.Best.Strength)
	})
	return Ranking{
		Exponent: strength.ExponentLabel(m.MisfitExponent),
		Step:     step,
		Pairs:    total,
		Top:      pairs[:min(top, total)],
	}, nil
}
