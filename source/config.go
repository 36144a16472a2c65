package source

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/arloliu/foamio/endian"
	"github.com/arloliu/foamio/format"
	"github.com/arloliu/foamio/internal/options"
)

// Defaults shared by every reader.
const (
	// DefaultHeaderScanLimit is the number of leading lines searched for the
	// "format" header entry.
	DefaultHeaderScanLimit = 20
	// DefaultPreambleLines is the number of fixed lines skipped at the top of a
	// mesh array file before its entry count is searched for.
	DefaultPreambleLines = 13
)

// DefaultCompressions is the order in which compressed siblings are tried when
// the plain file is absent.
var DefaultCompressions = []format.CompressionType{
	format.CompressionGzip,
	format.CompressionZstd,
	format.CompressionLZ4,
	format.CompressionS2,
}

// Option configures a Config.
type Option = options.Option[*Config]

// Config holds the reader settings shared by the source, mesh and field packages.
//
// A Config is immutable once built and safe to share between goroutines.
type Config struct {
	logger          *slog.Logger
	compressions    []format.CompressionType
	headerScanLimit int
	preambleLines   int
	engine          endian.EndianEngine
}

// NewConfig builds a Config from the defaults and the given options.
//
// Returns:
//   - *Config: The resulting configuration
//   - error: The first option error, prefixed with the option name
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		logger:          slog.New(slog.DiscardHandler),
		compressions:    DefaultCompressions,
		headerScanLimit: DefaultHeaderScanLimit,
		preambleLines:   DefaultPreambleLines,
	}

	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// Logger returns the structured logger readers report to.
func (c *Config) Logger() *slog.Logger { return c.logger }

// Compressions returns the compressed sibling types tried, in order.
func (c *Config) Compressions() []format.CompressionType { return c.compressions }

// HeaderScanLimit returns the number of leading lines searched for header entries.
func (c *Config) HeaderScanLimit() int { return c.headerScanLimit }

// PreambleLines returns the number of fixed lines skipped in mesh array files.
func (c *Config) PreambleLines() int { return c.preambleLines }

// ByteOrder returns the byte order override, if one was configured.
func (c *Config) ByteOrder() (endian.EndianEngine, bool) {
	return c.engine, c.engine != nil
}

// WithLogger sets the structured logger. A nil logger is rejected.
func WithLogger(logger *slog.Logger) Option {
	return options.New("WithLogger", func(c *Config) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		c.logger = logger

		return nil
	})
}

// WithCompressions sets the compressed sibling types tried when a plain file is
// absent. Passing no types disables the fallback.
func WithCompressions(types ...format.CompressionType) Option {
	return options.New("WithCompressions", func(c *Config) error {
		for _, ct := range types {
			if ct.Suffix() == "" {
				return fmt.Errorf("compression %s has no file suffix", ct)
			}
		}
		c.compressions = append([]format.CompressionType(nil), types...)

		return nil
	})
}

// WithHeaderScanLimit sets how many leading lines are searched for header entries.
func WithHeaderScanLimit(limit int) Option {
	return options.New("WithHeaderScanLimit", func(c *Config) error {
		if limit <= 0 {
			return fmt.Errorf("limit must be positive, got %d", limit)
		}
		c.headerScanLimit = limit

		return nil
	})
}

// WithPreambleLines sets how many fixed lines are skipped in mesh array files.
func WithPreambleLines(n int) Option {
	return options.New("WithPreambleLines", func(c *Config) error {
		if n < 0 {
			return fmt.Errorf("preamble must not be negative, got %d", n)
		}
		c.preambleLines = n

		return nil
	})
}

// WithByteOrder forces the byte order of binary bodies, overriding the header
// "arch" entry and the native order.
func WithByteOrder(engine endian.EndianEngine) Option {
	return options.New("WithByteOrder", func(c *Config) error {
		if engine == nil {
			return errors.New("engine must not be nil")
		}
		c.engine = engine

		return nil
	})
}
