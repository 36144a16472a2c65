package options

import "fmt"

// Option represents a functional option for configuring any type T.
type Option[T any] interface {
	apply(T) error
	name() string
}

// Func is a generic functional option that wraps a function.
// It implements the Option interface for any type T.
type Func[T any] struct {
	label     string
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

func (f *Func[T]) name() string {
	return f.label
}

// New creates a named functional option from a function.
//
// The name is prefixed to any error the function returns, so a rejected value
// reports which option rejected it (e.g. "WithHeaderScanLimit: limit must be positive").
func New[T any](name string, fn func(T) error) *Func[T] {
	return &Func[T]{label: name, applyFunc: fn}
}

// NoError creates a named functional option from a function that cannot fail.
func NoError[T any](name string, fn func(T)) *Func[T] {
	return &Func[T]{
		label: name,
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply applies multiple options to a target object in order.
//
// It stops at the first failing option and returns its error wrapped with the
// option name. Nil options are skipped.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt.apply(target); err != nil {
			if n := opt.name(); n != "" {
				return fmt.Errorf("%s: %w", n, err)
			}

			return err
		}
	}

	return nil
}
