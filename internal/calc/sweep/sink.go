package sweep

import (
	"errors"

	"Labusch/internal/calc/strength"
)

// Sink receives a finished sweep for presentation or storage.
type Sink interface {
	Consume(results []strength.Result, best strength.Result) error
}

type SinkFunc func(results []strength.Result, best strength.Result) error

func (f SinkFunc) Consume(results []strength.Result, best strength.Result) error {
	return f(results, best)
}

// Publish selects the best result and hands everything to each sink in turn.
// All sinks run; their errors are joined.
func Publish(results []strength.Result, sinks ...Sink) (strength.Result, error) {
	best, err := Best(results)
	if err != nil {
		return strength.Result{}, err
	}
	var errs []error
	for _, s := range sinks {
		if s == nil {
			continue
		}
		if err := s.Consume(results, best); err != nil {
			errs = append(errs, err)
		}
	}
	return best, errors.Join(errs...)
}
