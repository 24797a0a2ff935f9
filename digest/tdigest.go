package digest

import (
	"math"
	"sort"

	"github.com/arloliu/aggcore/flatcodec"
	"github.com/arloliu/aggcore/internal/options"
)

// TDigest is a mergeable sketch of a value distribution.
type TDigest struct {
	centroids []Centroid
	bucketCap int
	sum       float64
	count     uint64
	max       float64
	min       float64
}

// New returns an empty TDigest configured by opts.
func New(opts ...Option) *TDigest {
	cfg := defaultConfig()
	// Errors from malformed options (e.g. non-positive bucket cap) are
	// surfaced by callers that need validation through NewChecked; the
	// functional-options default path mirrors the teacher's NoError style
	// for the common case of compile-time-constant configuration.
	_ = options.Apply(cfg, opts...)

	return &TDigest{bucketCap: cfg.bucketCap, max: math.NaN(), min: math.NaN()}
}

// NewChecked is like New but returns an error if any option is invalid.
func NewChecked(opts ...Option) (*TDigest, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &TDigest{bucketCap: cfg.bucketCap, max: math.NaN(), min: math.NaN()}, nil
}

// FromCentroids reconstructs a TDigest from already-computed summary
// statistics, as when deserializing from wire bytes. If centroids exceeds
// bucketCap, it is compressed down via MergeDigests.
func FromCentroids(centroids []Centroid, sum float64, count uint64, max, min float64, bucketCap int) *TDigest {
	if len(centroids) <= bucketCap {
		return &TDigest{centroids: centroids, bucketCap: bucketCap, sum: sum, count: count, max: max, min: min}
	}

	oversized := &TDigest{centroids: centroids, bucketCap: len(centroids), sum: sum, count: count, max: max, min: min}

	return MergeDigests([]*TDigest{New(WithBucketCap(bucketCap)), oversized})
}

// Centroids returns the digest's internal centroids, sorted by mean.
func (t *TDigest) Centroids() []Centroid { return t.centroids }

// Mean returns the overall mean of the distribution, 0 if the digest is empty.
func (t *TDigest) Mean() float64 {
	if t.count == 0 {
		return 0
	}

	return t.sum / float64(t.count)
}

// Sum returns the sum of all values folded into the digest.
func (t *TDigest) Sum() float64 { return t.sum }

// Count returns the number of values folded into the digest.
func (t *TDigest) Count() uint64 { return t.count }

// Max returns the maximum value seen.
func (t *TDigest) Max() float64 { return t.max }

// Min returns the minimum value seen.
func (t *TDigest) Min() float64 { return t.min }

// IsEmpty reports whether the digest has seen any values.
func (t *TDigest) IsEmpty() bool { return len(t.centroids) == 0 }

// BucketCap returns the configured maximum centroid count.
func (t *TDigest) BucketCap() int { return t.bucketCap }

// NumBuckets returns the current number of centroids.
func (t *TDigest) NumBuckets() int { return len(t.centroids) }

func kToQ(k, d float64) float64 {
	kDivD := k / d
	if kDivD >= 0.5 {
		base := 1.0 - kDivD
		return 1.0 - 2.0*base*base
	}

	return 2.0 * kDivD * kDivD
}

func updateBoundsOnOverflow(value float64, lower, upper *float64) {
	if value < *lower {
		*lower = value
	}

	if value > *upper {
		*upper = value
	}
}

// MergeUnsorted sorts values and folds them into a new digest derived from t.
func (t *TDigest) MergeUnsorted(values []float64) *TDigest {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return t.MergeSorted(sorted)
}

// MergeSorted folds an already-sorted slice of values into a new digest
// derived from t, compressing to at most t.bucketCap centroids.
func (t *TDigest) MergeSorted(sortedValues []float64) *TDigest {
	if len(sortedValues) == 0 {
		clone := *t
		clone.centroids = append([]Centroid(nil), t.centroids...)

		return &clone
	}

	result := New(WithBucketCap(t.bucketCap))
	result.count = t.count + uint64(len(sortedValues))

	minVal := sortedValues[0]
	maxVal := sortedValues[len(sortedValues)-1]

	if t.count > 0 {
		result.min = math.Min(t.min, minVal)
		result.max = math.Max(t.max, maxVal)
	} else {
		result.min = minVal
		result.max = maxVal
	}

	compressed := make([]Centroid, 0, t.bucketCap)

	kLimit := 1.0
	qLimitTimesCount := kToQ(kLimit, float64(t.bucketCap)) * float64(result.count)
	kLimit++

	ci, vi := 0, 0
	nextFromCentroids := func() bool {
		if ci >= len(t.centroids) {
			return false
		}

		if vi >= len(sortedValues) {
			return true
		}

		return t.centroids[ci].Mean.Compare(flatcodec.OrderedFloat64(sortedValues[vi])) < 0
	}

	popNext := func() Centroid {
		if nextFromCentroids() {
			c := t.centroids[ci]
			ci++

			return c
		}

		v := sortedValues[vi]
		vi++

		return NewCentroid(v, 1)
	}

	curr := popNext()
	weightSoFar := curr.Weight
	sumsToMerge := 0.0
	weightsToMerge := uint64(0)

	for ci < len(t.centroids) || vi < len(sortedValues) {
		next := popNext()
		nextSum := float64(next.Mean) * float64(next.Weight)
		weightSoFar += next.Weight

		if float64(weightSoFar) <= qLimitTimesCount {
			sumsToMerge += nextSum
			weightsToMerge += next.Weight
		} else {
			result.sum += curr.Add(sumsToMerge, weightsToMerge)
			sumsToMerge = 0
			weightsToMerge = 0
			updateBoundsOnOverflow(float64(curr.Mean), &result.min, &result.max)
			compressed = append(compressed, curr)
			qLimitTimesCount = kToQ(kLimit, float64(t.bucketCap)) * float64(result.count)
			kLimit++
			curr = next
		}
	}

	result.sum += curr.Add(sumsToMerge, weightsToMerge)
	updateBoundsOnOverflow(float64(curr.Mean), &result.min, &result.max)
	compressed = append(compressed, curr)

	sort.Slice(compressed, func(i, j int) bool { return compressed[i].Less(compressed[j]) })

	result.centroids = compressed

	return result
}
