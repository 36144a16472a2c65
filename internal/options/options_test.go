package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Limit    int
	Name     string
	LastCall string
}

var errNegative = errors.New("limit cannot be negative")

func (tc *testConfig) setLimit(v int) error {
	if v < 0 {
		return errNegative
	}
	tc.Limit = v
	tc.LastCall = "setLimit"

	return nil
}

func withLimit(v int) Option[*testConfig] {
	return New("withLimit", func(c *testConfig) error { return c.setLimit(v) })
}

func withName(name string) Option[*testConfig] {
	return NoError("withName", func(c *testConfig) {
		c.Name = name
		c.LastCall = "withName"
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		config := &testConfig{}

		err := Apply(config, withLimit(20), withName("points"))
		require.NoError(t, err)
		require.Equal(t, 20, config.Limit)
		require.Equal(t, "points", config.Name)
		require.Equal(t, "withName", config.LastCall)
	})

	t.Run("stops at first error and names the option", func(t *testing.T) {
		config := &testConfig{}

		err := Apply(config, withLimit(5), withLimit(-1), withName("skipped"))
		require.ErrorIs(t, err, errNegative)
		require.Contains(t, err.Error(), "withLimit: ")
		require.Equal(t, 5, config.Limit)
		require.Empty(t, config.Name)
	})

	t.Run("unnamed option error is returned as is", func(t *testing.T) {
		config := &testConfig{}

		err := Apply(config, New("", func(c *testConfig) error { return c.setLimit(-3) }))
		require.Equal(t, errNegative, err)
	})

	t.Run("skips nil options", func(t *testing.T) {
		config := &testConfig{}

		err := Apply(config, nil, withName("faces"))
		require.NoError(t, err)
		require.Equal(t, "faces", config.Name)
	})

	t.Run("empty options leave target unchanged", func(t *testing.T) {
		config := &testConfig{Limit: 7}

		require.NoError(t, Apply(config))
		require.Equal(t, 7, config.Limit)
	})
}

func TestGenericsWithPrimitive(t *testing.T) {
	var num int
	opt := NoError("set", func(n *int) { *n = 42 })

	require.NoError(t, Apply(&num, Option[*int](opt)))
	require.Equal(t, 42, num)
}
