package strength

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseExponent accepts "1/3", "2/3", any "a/b" fraction, or a decimal.
func ParseExponent(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ExponentCubeRoot, nil
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: exponent %q", ErrInvalidModel, s)
		}
		d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err != nil || d == 0 {
			return 0, fmt.Errorf("%w: exponent %q", ErrInvalidModel, s)
		}
		return n / d, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: exponent %q", ErrInvalidModel, s)
	}
	return v, nil
}

// WithExponent returns a copy of m using the parsed exponent. An empty string
// keeps m's exponent.
func (m Model) WithExponent(s string) (Model, error) {
	if strings.TrimSpace(s) == "" {
		return m, m.Validate()
	}
	p, err := ParseExponent(s)
	if err != nil {
		return Model{}, err
	}
	m.MisfitExponent = p
	return m, m.Validate()
}

// ExponentLabel renders the two named conventions as fractions.
func ExponentLabel(p float64) string {
	switch p {
	case ExponentCubeRoot:
		return "1/3"
	case ExponentTwoThirds:
		return "2/3"
	default:
		return strconv.FormatFloat(p, 'g', 6, 64)
	}
}
