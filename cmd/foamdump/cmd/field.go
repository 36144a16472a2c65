package cmd

import (
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/arloliu/foamio"
	"github.com/arloliu/foamio/encoding"
	"github.com/arloliu/foamio/field"
)

type fieldReport struct {
	File     string                             `yaml:"file"`
	Class    string                             `yaml:"class,omitempty"`
	Object   string                             `yaml:"object,omitempty"`
	Format   string                             `yaml:"format"`
	Internal *valuesReport                      `yaml:"internal,omitempty"`
	Boundary map[string]map[string]valuesReport `yaml:"boundary,omitempty"`
}

type valuesReport struct {
	Kind    string    `yaml:"kind"`
	Uniform bool      `yaml:"uniform"`
	Len     int       `yaml:"len"`
	Min     []float64 `yaml:"min,flow,omitempty"`
	Max     []float64 `yaml:"max,flow,omitempty"`
}

// fieldCmd represents the field command
var fieldCmd = &cobra.Command{
	Use:   "field <file>",
	Short: "Summarise a field file",
	Long: `Parse the internal and boundary fields of a field file and print the
value kind, length and per-component range of every entry.

Example:
  foamdump field cavity/0.5/U`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := foamio.ReadField(args[0], readerOptions(cmd)...)
		if err != nil {
			return err
		}

		report := fieldReport{
			File:   args[0],
			Class:  f.Header.Class,
			Object: f.Header.Object,
			Format: f.Header.Format.String(),
		}

		if in := f.Internal; in != nil {
			values := in.Values()
			if u, ok := in.Uniform(); ok {
				values = []encoding.Value{u}
			}
			r := summarise(values)
			r.Kind, r.Uniform, r.Len = in.Kind().String(), in.IsUniform(), in.Len()
			report.Internal = &r
		}

		if len(f.Boundary) > 0 {
			report.Boundary = make(map[string]map[string]valuesReport, len(f.Boundary))
			for patch, entries := range f.Boundary {
				report.Boundary[patch] = make(map[string]valuesReport, len(entries))
				for key, e := range entries {
					report.Boundary[patch][key] = entrySummary(e)
				}
			}
		}

		return writeYAML(cmd.OutOrStdout(), report)
	},
}

func init() {
	rootCmd.AddCommand(fieldCmd)
}

func entrySummary(e field.Entry) valuesReport {
	values := e.Values
	if e.Uniform {
		values = []encoding.Value{e.Value}
	}

	r := summarise(values)
	r.Kind, r.Uniform, r.Len = e.Kind.String(), e.Uniform, e.Len()

	return r
}

// summarise returns the per-component minimum and maximum of values.
func summarise(values []encoding.Value) valuesReport {
	if len(values) == 0 {
		return valuesReport{}
	}

	arity := values[0].Arity()
	r := valuesReport{Min: make([]float64, arity), Max: make([]float64, arity)}
	column := make([]float64, len(values))
	for c := range arity {
		for i, v := range values {
			column[i] = v.At(c)
		}
		r.Min[c] = floats.Min(column)
		r.Max[c] = floats.Max(column)
	}

	return r
}
