package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/foamio"
	"github.com/arloliu/foamio/source"
)

type optionsKey struct{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "foamdump",
	Short: "Inspect mesh and field files",
	Long: `foamdump decodes finite-volume mesh directories and field files and
prints a YAML summary. Bodies may be ASCII or binary and files may be replaced
by .gz, .zst, .lz4 or .sz compressed siblings.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		preamble, _ := cmd.Flags().GetInt("preamble")
		order, _ := cmd.Flags().GetString("byte-order")

		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

		opts := []foamio.Option{
			foamio.WithLogger(logger),
			foamio.WithPreambleLines(preamble),
		}
		switch order {
		case "", "auto":
		case "little":
			opts = append(opts, foamio.WithLittleEndian())
		case "big":
			opts = append(opts, foamio.WithBigEndian())
		default:
			return fmt.Errorf("invalid byte order %q, want auto, little or big", order)
		}

		cmd.SetContext(context.WithValue(cmd.Context(), optionsKey{}, opts))

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug events to stderr")
	rootCmd.PersistentFlags().Int("preamble", source.DefaultPreambleLines, "Fixed lines skipped at the top of mesh array files")
	rootCmd.PersistentFlags().String("byte-order", "auto", "Byte order of binary bodies: auto, little or big")
}

func readerOptions(cmd *cobra.Command) []foamio.Option {
	opts, _ := cmd.Context().Value(optionsKey{}).([]foamio.Option)

	return opts
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}

	return enc.Close()
}
