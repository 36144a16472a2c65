package encoding

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/arloliu/foamio/errs"
	"github.com/arloliu/foamio/format"
)

const maxArity = 9

// Value is one field value: a scalar, a vector, a symmetric tensor or a tensor.
//
// Components are stored inline, so a Value is a plain comparable struct that can
// be copied freely.
type Value struct {
	kind  format.ValueKind
	comps [maxArity]float64
}

// ScalarValue returns a scalar value.
func ScalarValue(v float64) Value {
	return Value{kind: format.KindScalar, comps: [maxArity]float64{v}}
}

// VectorValue returns a vector value.
func VectorValue(x, y, z float64) Value {
	return Value{kind: format.KindVector, comps: [maxArity]float64{x, y, z}}
}

// NewValue builds a value from its components; the kind follows from the number
// of components.
//
// Returns ErrDecodeMismatch unless 1, 3, 6 or 9 components are given.
func NewValue(comps ...float64) (Value, error) {
	kind, ok := format.KindOfArity(len(comps))
	if !ok {
		return Value{}, fmt.Errorf("%w: %d components do not form a value", errs.ErrDecodeMismatch, len(comps))
	}

	v := Value{kind: kind}
	copy(v.comps[:], comps)

	return v, nil
}

// Kind returns the value kind.
func (v Value) Kind() format.ValueKind {
	return v.kind
}

// Arity returns the number of components.
func (v Value) Arity() int {
	return v.kind.Arity()
}

// Scalar returns the first component.
func (v Value) Scalar() float64 {
	return v.comps[0]
}

// Vector returns the first three components as a vector.
func (v Value) Vector() r3.Vec {
	return r3.Vec{X: v.comps[0], Y: v.comps[1], Z: v.comps[2]}
}

// Components returns a copy of the components.
func (v Value) Components() []float64 {
	out := make([]float64, v.Arity())
	copy(out, v.comps[:])

	return out
}

// At returns component i, or 0 when i is out of range.
func (v Value) At(i int) float64 {
	if i < 0 || i >= v.Arity() {
		return 0
	}

	return v.comps[i]
}

// String formats the value the way it is written in an ASCII body.
func (v Value) String() string {
	if v.kind == format.KindScalar {
		return strconv.FormatFloat(v.comps[0], 'g', -1, 64)
	}

	parts := make([]string, v.Arity())
	for i := range parts {
		parts[i] = strconv.FormatFloat(v.comps[i], 'g', -1, 64)
	}

	return "(" + strings.Join(parts, " ") + ")"
}
