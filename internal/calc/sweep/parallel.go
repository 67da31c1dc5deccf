package sweep

import (
	"context"
	"runtime"
	"sync"

	"Labusch/internal/calc/strength"
)

// CollectParallel evaluates the same grid as Sweep on a pool of workers. The
// returned slice is in grid order regardless of which worker finished first.
func CollectParallel(ctx context.Context, m strength.Model, elements []strength.Element, step float64, workers int) ([]strength.Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	grid, err := Grid(len(elements), step)
	if err != nil {
		return nil, err
	}
	var points [][]float64
	for c := range grid {
		points = append(points, c)
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, len(points))

	els := append([]strength.Element(nil), elements...)
	out := make([]strength.Result, len(points))
	idx := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				out[i] = m.Evaluate(compose(els, points[i]))
			}
		}()
	}

	var cerr error
dispatch:
	for i := range points {
		if err := ctx.Err(); err != nil {
			cerr = err
			break
		}
		select {
		case <-ctx.Done():
			cerr = ctx.Err()
			break dispatch
		case idx <- i:
		}
	}
	close(idx)
	wg.Wait()

	if cerr != nil {
		return nil, cerr
	}
	return out, nil
}
