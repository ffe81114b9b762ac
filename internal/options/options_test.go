package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type loadConfig struct {
	parallelism  int
	fingerprints bool
}

func (c *loadConfig) setParallelism(n int) error {
	if n < 1 {
		return errors.New("parallelism must be at least 1")
	}
	c.parallelism = n

	return nil
}

func TestNew(t *testing.T) {
	t.Run("applies the function", func(t *testing.T) {
		cfg := &loadConfig{}
		opt := New(func(c *loadConfig) error { return c.setParallelism(4) })

		require.NoError(t, opt.apply(cfg))
		require.Equal(t, 4, cfg.parallelism)
	})

	t.Run("propagates rejection", func(t *testing.T) {
		cfg := &loadConfig{}
		opt := New(func(c *loadConfig) error { return c.setParallelism(0) })

		err := opt.apply(cfg)
		require.Error(t, err)
		require.Contains(t, err.Error(), "at least 1")
	})
}

func TestNoError(t *testing.T) {
	cfg := &loadConfig{}
	opt := NoError(func(c *loadConfig) { c.fingerprints = true })

	require.NoError(t, opt.apply(cfg))
	require.True(t, cfg.fingerprints)
}

func TestApply(t *testing.T) {
	t.Run("in order", func(t *testing.T) {
		cfg := &loadConfig{}
		err := Apply(cfg,
			New(func(c *loadConfig) error { return c.setParallelism(2) }),
			NoError(func(c *loadConfig) { c.fingerprints = true }),
		)
		require.NoError(t, err)
		require.Equal(t, 2, cfg.parallelism)
		require.True(t, cfg.fingerprints)
	})

	t.Run("stops at first failure", func(t *testing.T) {
		cfg := &loadConfig{}
		err := Apply(cfg,
			New(func(c *loadConfig) error { return c.setParallelism(-1) }),
			NoError(func(c *loadConfig) { c.fingerprints = true }),
		)
		require.Error(t, err)
		require.False(t, cfg.fingerprints)
	})

	t.Run("no options is a no-op", func(t *testing.T) {
		cfg := &loadConfig{}
		require.NoError(t, Apply(cfg))
		require.Equal(t, loadConfig{}, *cfg)
	})
}
