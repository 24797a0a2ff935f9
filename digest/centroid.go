package digest

import "github.com/arloliu/aggcore/flatcodec"

// Centroid is one weighted cluster of a t-digest, storing its mean and the
// total weight (sample count) it represents.
type Centroid struct {
	Mean   flatcodec.OrderedFloat64
	Weight uint64
}

// NewCentroid builds a Centroid from a raw mean and weight.
func NewCentroid(mean float64, weight uint64) Centroid {
	return Centroid{Mean: flatcodec.OrderedFloat64(mean), Weight: weight}
}

// Add folds an additional weighted sum into the centroid and returns the
// centroid's new total sum (its new mean times its new weight), which the
// caller adds to its running digest sum, matching the Rust implementation's
// use as a running-sum accumulator during merge.
func (c *Centroid) Add(sum float64, weight uint64) float64 {
	oldWeight := c.Weight
	oldMean := float64(c.Mean)

	newSum := sum + float64(oldWeight)*oldMean
	newWeight := oldWeight + weight
	c.Weight = newWeight
	c.Mean = flatcodec.OrderedFloat64(newSum / float64(newWeight))

	return newSum
}

// Less orders centroids by mean, matching Rust's Ord impl for Centroid.
func (c Centroid) Less(other Centroid) bool {
	return c.Mean.Compare(other.Mean) < 0
}
