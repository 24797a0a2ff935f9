package digest

import (
	"fmt"

	"github.com/arloliu/aggcore/errs"
	"github.com/arloliu/aggcore/internal/options"
)

// config holds a TDigest's construction-time parameters.
type config struct {
	bucketCap int
}

// Option configures a TDigest at construction time.
type Option = options.Option[*config]

// WithBucketCap sets the maximum number of centroids a digest compresses
// down to. The default is 100, matching TDigest::default() in the original
// implementation.
func WithBucketCap(n int) Option {
	return options.New(func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("%w: got %d", errs.ErrInvalidBucketCap, n)
		}

		c.bucketCap = n

		return nil
	})
}

func defaultConfig() *config {
	return &config{bucketCap: 100}
}
