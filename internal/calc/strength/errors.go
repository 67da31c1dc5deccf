package strength

import "errors"

var (
	ErrInvalidComposition = errors.New("strength: invalid composition")
	ErrInvalidModel       = errors.New("strength: invalid model")
)
