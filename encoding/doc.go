// Package encoding decodes the values stored in mesh and field file bodies.
//
// Values appear in three shapes:
//
//   - uniform entries, a single value on the declaration line:
//     "internalField uniform (1 0 0);"
//   - nonuniform ASCII lists, a count line, an opening "(" line, one entry per
//     line and a closing ")" line
//   - nonuniform binary lists, a count line followed by a "(" marker byte, the raw
//     machine words and a closing ")" byte
//
// Binary offset arithmetic lives in offset.go; the raw word decoders in
// numeric_raw.go and label_raw.go turn packed words into float64 and int values
// according to a section.Layout. NumericRawEncoder and LabelRawEncoder write the
// same words back; they exist to produce binary bodies for fixtures and tools,
// the package itself never writes files.
//
// # Basic Usage
//
//	v, err := encoding.DecodeUniform("internalField uniform 273.15;")
//
//	values, err := encoding.DecodeNonuniform(content, start, content.Len()-1, header.Layout)
package encoding
