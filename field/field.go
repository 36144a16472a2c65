// Package field parses the internal and boundary values of field files.
//
// A field file holds one value per mesh cell in its internalField entry and one
// dictionary per boundary patch in its boundaryField section:
//
//	internalField   nonuniform List<vector>
//	2
//	(
//	(1 0 0)
//	(0 1 0)
//	)
//	;
//
//	boundaryField
//	{
//	    inlet
//	    {
//	        type            fixedValue;
//	        value           uniform (1 0 0);
//	    }
//	}
//
// Bodies may be ASCII or binary; the format, byte order and word widths come
// from the file header.
package field

import (
	"iter"

	"github.com/arloliu/foamio/encoding"
	"github.com/arloliu/foamio/format"
)

// InternalField is the internal field of a field file: either one uniform value
// that applies to every cell, or one value per cell.
type InternalField struct {
	kind    format.ValueKind
	uniform bool
	value   encoding.Value
	values  []encoding.Value
}

// NewUniform returns a uniform internal field.
func NewUniform(v encoding.Value) *InternalField {
	return &InternalField{kind: v.Kind(), uniform: true, value: v}
}

// NewNonuniform returns an internal field holding one value per cell.
func NewNonuniform(kind format.ValueKind, values []encoding.Value) *InternalField {
	return &InternalField{kind: kind, values: values}
}

// Kind returns the value kind.
func (f *InternalField) Kind() format.ValueKind {
	return f.kind
}

// IsUniform reports whether the field is a single broadcast value.
func (f *InternalField) IsUniform() bool {
	return f.uniform
}

// Uniform returns the broadcast value of a uniform field.
func (f *InternalField) Uniform() (encoding.Value, bool) {
	return f.value, f.uniform
}

// Len returns the number of explicit values; 0 for a uniform field.
func (f *InternalField) Len() int {
	return len(f.values)
}

// Values returns the per-cell values of a nonuniform field.
func (f *InternalField) Values() []encoding.Value {
	return f.values
}

// At returns the value of cell i. A uniform field returns its value for any i;
// a nonuniform field returns false for i out of range.
func (f *InternalField) At(i int) (encoding.Value, bool) {
	if f.uniform {
		return f.value, true
	}

	if i < 0 || i >= len(f.values) {
		return encoding.Value{}, false
	}

	return f.values[i], true
}

// All returns an iterator over the explicit values with their cell index.
func (f *InternalField) All() iter.Seq2[int, encoding.Value] {
	return func(yield func(int, encoding.Value) bool) {
		for i, v := range f.values {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Entry is one value entry of a boundary patch, such as "value" or "gradient".
type Entry struct {
	Kind    format.ValueKind
	Uniform bool
	// Value is set for a uniform entry.
	Value encoding.Value
	// Values is set for a nonuniform entry, one value per patch face.
	Values []encoding.Value
}

// Len returns the number of explicit values; 0 for a uniform entry.
func (e Entry) Len() int {
	return len(e.Values)
}

// PatchEntries maps entry names to values for one patch.
type PatchEntries map[string]Entry

// BoundaryField maps patch names to their entries.
type BoundaryField map[string]PatchEntries

// Entry returns the entry called key of the named patch.
func (b BoundaryField) Entry(patch, key string) (Entry, bool) {
	entries, ok := b[patch]
	if !ok {
		return Entry{}, false
	}

	e, ok := entries[key]

	return e, ok
}
