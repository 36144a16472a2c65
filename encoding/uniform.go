package encoding

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/foamio/errs"
)

// DecodeUniform decodes the value of a uniform entry line.
//
// A line holding "(" yields the tuple between the outer parentheses, e.g.
// "value uniform (1 0 0);". Otherwise the single number between the "uniform"
// keyword and the ";" terminator is parsed, e.g. "internalField uniform 273.15;".
//
// Returns:
//   - Value: The decoded value
//   - error: ErrInvalidValue for malformed numbers, ErrDecodeMismatch for a tuple
//     that is not 3, 6 or 9 wide
func DecodeUniform(line string) (Value, error) {
	if open := strings.IndexByte(line, '('); open >= 0 {
		body, err := between(line, open)
		if err != nil {
			return Value{}, err
		}

		return parseTuple(body)
	}

	_, rest, found := strings.Cut(line, "uniform")
	if !found {
		return Value{}, fmt.Errorf("%w: no uniform keyword in %q", errs.ErrInvalidValue, line)
	}

	token, _, _ := strings.Cut(rest, ";")
	f, err := parseFloat(token)
	if err != nil {
		return Value{}, err
	}

	return ScalarValue(f), nil
}

// between returns the text between the "(" at open and the last ")" of line.
func between(line string, open int) (string, error) {
	closing := strings.LastIndexByte(line, ')')
	if closing < open {
		return "", fmt.Errorf("%w: unbalanced parentheses in %q", errs.ErrInvalidValue, line)
	}

	return line[open+1 : closing], nil
}

// parseTuple parses whitespace separated components.
func parseTuple(body string) (Value, error) {
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return Value{}, fmt.Errorf("%w: empty tuple", errs.ErrInvalidValue)
	}
	if len(fields) > maxArity {
		return Value{}, fmt.Errorf("%w: %d components do not form a value", errs.ErrDecodeMismatch, len(fields))
	}

	var comps [maxArity]float64
	for i, f := range fields {
		v, err := parseFloat(f)
		if err != nil {
			return Value{}, err
		}
		comps[i] = v
	}

	return NewValue(comps[:len(fields)]...)
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidValue, s)
	}

	return v, nil
}
