package sweep

import (
	"iter"

	"Labusch/internal/calc/strength"
)

// Binary sweeps c1 from 0 to 1 with c2 = 1 - c1.
func Binary(m strength.Model, a, b strength.Element, step float64) (iter.Seq[strength.Result], error) {
	return Sweep(m, []strength.Element{a, b}, step)
}

// Ternary sweeps c1 (outer) and c2 (inner) ascending with c3 implied.
func Ternary(m strength.Model, a, b, c strength.Element, step float64) (iter.Seq[strength.Result], error) {
	return Sweep(m, []strength.Element{a, b, c}, step)
}

// Sweep evaluates the model at every grid point for the given elements.
func Sweep(m strength.Model, elements []strength.Element, step float64) (iter.Seq[strength.Result], error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	grid, err := Grid(len(elements), step)
	if err != nil {
		return nil, err
	}
	els := append([]strength.Element(nil), elements...)
	return func(yield func(strength.Result) bool) {
		for c := range grid {
			if !yield(m.Evaluate(compose(els, c))) {
				return
			}
		}
	}, nil
}

func compose(elements []strength.Element, conc []float64) []strength.Member {
	members := make([]strength.Member, len(elements))
	for i, e := range elements {
		members[i] = strength.Member{Element: e, Concentration: conc[i]}
	}
	return members
}

func Collect(seq iter.Seq[strength.Result]) []strength.Result {
	var out []strength.Result
	for r := range seq {
		out = append(out, r)
	}
	return out
}

// Best returns the result with the highest strength. The first one wins ties.
func Best(results []strength.Result) (strength.Result, error) {
	if len(results) == 0 {
		return strength.Result{}, ErrEmptySweep
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.Strength > best.Strength {
			best = r
		}
	}
	return best, nil
}

// BestOf is Best over a sequence without materializing it.
func BestOf(seq iter.Seq[strength.Result]) (strength.Result, error) {
	var (
		best  strength.Result
		found bool
	)
	for r := range seq {
		if !found || r.Strength > best.Strength {
			best, found = r, true
		}
	}
	if !found {
		return strength.Result{}, ErrEmptySweep
	}
	return best, nil
}
