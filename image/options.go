package image

import (
	"github.com/cockroachdb/errors"

	"github.com/arloliu/zisraw/internal/options"
)

// loadConfig collects the tunables of a single Load call. Loading is
// correct with the zero configuration; options only trade resources for
// speed.
type loadConfig struct {
	parallelism  int
	fingerprints bool
}

func newLoadConfig() *loadConfig {
	return &loadConfig{parallelism: 1}
}

// LoadOption configures Load and Open.
type LoadOption = options.Option[*loadConfig]

// WithLocateParallelism locates subblocks with up to n concurrent readers.
// Location is independent per directory entry, so the result is identical
// to a sequential pass; the default is 1.
func WithLocateParallelism(n int) LoadOption {
	return options.New(func(c *loadConfig) error {
		if n < 1 {
			return errors.Newf("locate parallelism %d, need at least 1", n)
		}
		c.parallelism = n

		return nil
	})
}

// WithFingerprints computes every subblock's pixel fingerprint during load
// instead of on first request.
func WithFingerprints() LoadOption {
	return options.NoError(func(c *loadConfig) {
		c.fingerprints = true
	})
}
