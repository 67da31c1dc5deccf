// Package sweep enumerates compositions over a fixed concentration grid and
// evaluates the strength model at every point.
//
// Sequences are lazy and restartable: every range over a returned iter.Seq
// starts from the first grid point and visits points in the same order.
package sweep

import (
	"errors"
	"fmt"
	"iter"
	"math"
)

const (
	DefaultStep      = 0.01
	DefaultMaxPoints = 1_000_000

	// MaxSteps caps the intervals along one axis so grid sizes stay
	// representable as int.
	MaxSteps = 1 << 24

	// stepSlack absorbs float error when deciding whether i*step still lies
	// within the unit interval.
	stepSlack = 1e-9
)

var (
	ErrEmptySweep    = errors.New("sweep: no results")
	ErrInvalidStep   = errors.New("sweep: invalid step")
	ErrElementCount  = errors.New("sweep: unsupported element count")
	ErrTooManyPoints = errors.New("sweep: grid too large")
)

// Steps returns n, the number of whole steps that fit in [0,1]: the axis
// values are i*step for i = 0..n with n*step <= 1 (within 1e-9). The step
// need not divide 1. Only NaN, non-positive and absurdly fine steps are
// rejected.
func Steps(step float64) (int, error) {
	if math.IsNaN(step) || step <= 0 {
		return 0, fmt.Errorf("%w: %v must be positive", ErrInvalidStep, step)
	}
	n := math.Floor((1 + stepSlack) / step)
	if n > MaxSteps {
		return 0, fmt.Errorf("%w: %v is finer than 1/%d", ErrInvalidStep, step, MaxSteps)
	}
	return int(n), nil
}

// divides reports whether n steps land exactly on 1, in which case axis
// values are computed as i/n to keep them free of accumulated error.
func divides(step float64, n int) bool {
	return n > 0 && math.Abs(float64(n)*step-1) <= stepSlack
}

// Simplex yields every k-tuple of non-negative integers summing to n, with the
// first index varying slowest. The yielded slice is reused between iterations.
func Simplex(k, n int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if k <= 0 || n < 0 {
			return
		}
		counts := make([]int, k)
		var walk func(pos, left int) bool
		walk = func(pos, left int) bool {
			if pos == k-1 {
				counts[pos] = left
				return yield(counts)
			}
			for c := 0; c <= left; c++ {
				counts[pos] = c
				if !walk(pos+1, left-c) {
					return false
				}
			}
			return true
		}
		walk(0, n)
	}
}

// Grid yields concentration vectors for k components at the given step.
//
// The leading k-1 components walk the axis i*step; the last takes whatever
// is left, 1 - sum, and points where that goes negative are skipped. When
// the step divides 1 and k > 2, every component is count/n instead, so
// the vector sums to 1 exactly. A step above 1 cannot reach the far end of
// the axis and the grid is empty.
func Grid(k int, step float64) (iter.Seq[[]float64], error) {
	if k < 2 {
		return nil, fmt.Errorf("%w: %d", ErrElementCount, k)
	}
	n, err := Steps(step)
	if err != nil {
		return nil, err
	}
	if step > 1 {
		return func(func([]float64) bool) {}, nil
	}
	exact := divides(step, n)
	value := func(i int) float64 {
		if exact {
			return float64(i) / float64(n)
		}
		return float64(i) * step
	}
	return func(yield func([]float64) bool) {
		for counts := range Simplex(k, n) {
			c := make([]float64, k)
			rest := 1.0
			for i := range k - 1 {
				c[i] = value(counts[i])
				rest -= c[i]
			}
			switch {
			case exact && k > 2:
				c[k-1] = value(counts[k-1])
			case rest < 0:
				continue
			default:
				c[k-1] = rest
			}
			if !yield(c) {
				return
			}
		}
	}, nil
}

// Points is the number of vectors Grid(k, step) yields.
func Points(k int, step float64) (int, error) {
	n, err := Steps(step)
	if err != nil {
		return 0, err
	}
	if step > 1 {
		return 0, nil
	}
	return Size(k, n), nil
}

// CheckPoints returns the grid size for k components at step, or
// ErrTooManyPoints when it exceeds limit. A limit <= 0 means
// DefaultMaxPoints.
func CheckPoints(k int, step float64, limit int) (int, error) {
	if limit <= 0 {
		limit = DefaultMaxPoints
	}
	size, err := Points(k, step)
	if err != nil {
		return 0, err
	}
	if size > limit {
		return size, fmt.Errorf("%w: %d points at step %v exceeds %d", ErrTooManyPoints, size, step, limit)
	}
	return size, nil
}

// Size is the number of grid points for k components at n intervals,
// C(n+k-1, k-1). It saturates at math.MaxInt.
func Size(k, n int) int {
	if k <= 0 || n < 0 {
		return 0
	}
	r := 1
	for i := 1; i < k; i++ {
		if r > math.MaxInt/(n+i) {
			return math.MaxInt
		}
		r = r * (n + i) / i
	}
	return r
}
