package digest

import (
	"math"
	"sort"
)

func externalMerge(centroids []Centroid, first, middle, last int) {
	result := make([]Centroid, 0, last-first)

	i, j := first, middle
	for i < middle && j < last {
		if centroids[i].Less(centroids[j]) {
			result = append(result, centroids[i])
			i++
		} else if centroids[j].Less(centroids[i]) {
			result = append(result, centroids[j])
			j++
		} else {
			result = append(result, centroids[i])
			i++
		}
	}

	for i < middle {
		result = append(result, centroids[i])
		i++
	}

	for j < last {
		result = append(result, centroids[j])
		j++
	}

	copy(centroids[first:first+len(result)], result)
}

// MergeDigests combines several digests into one, merging their sorted
// centroid slices pairwise (doubling the block size each pass) before
// re-running the same compression pass MergeSorted uses.
func MergeDigests(digests []*TDigest) *TDigest {
	nCentroids := 0
	for _, d := range digests {
		nCentroids += len(d.centroids)
	}

	if nCentroids == 0 {
		return New()
	}

	bucketCap := digests[0].bucketCap

	centroids := make([]Centroid, 0, nCentroids)
	starts := make([]int, 0, len(digests))

	count := uint64(0)
	minVal := math.Inf(1)
	maxVal := math.Inf(-1)

	start := 0
	for _, d := range digests {
		starts = append(starts, start)

		if d.count > 0 {
			minVal = math.Min(minVal, d.min)
			maxVal = math.Max(maxVal, d.max)
			count += d.count
			centroids = append(centroids, d.centroids...)
			start += len(d.centroids)
		}
	}

	digestsPerBlock := 1
	for digestsPerBlock < len(starts) {
		for i := 0; i < len(starts); i += digestsPerBlock * 2 {
			if i+digestsPerBlock < len(starts) {
				first := starts[i]
				middle := starts[i+digestsPerBlock]

				last := len(centroids)
				if i+2*digestsPerBlock < len(starts) {
					last = starts[i+2*digestsPerBlock]
				}

				externalMerge(centroids, first, middle, last)
			}
		}

		digestsPerBlock *= 2
	}

	result := New(WithBucketCap(bucketCap))
	compressed := make([]Centroid, 0, bucketCap)

	kLimit := 1.0
	qLimitTimesCount := kToQ(kLimit, float64(bucketCap)) * float64(count)

	curr := centroids[0]
	weightSoFar := curr.Weight
	sumsToMerge := 0.0
	weightsToMerge := uint64(0)

	for _, centroid := range centroids[1:] {
		weightSoFar += centroid.Weight

		if float64(weightSoFar) <= qLimitTimesCount {
			sumsToMerge += float64(centroid.Mean) * float64(centroid.Weight)
			weightsToMerge += centroid.Weight
		} else {
			result.sum += curr.Add(sumsToMerge, weightsToMerge)
			sumsToMerge = 0
			weightsToMerge = 0
			updateBoundsOnOverflow(float64(curr.Mean), &minVal, &maxVal)
			compressed = append(compressed, curr)
			qLimitTimesCount = kToQ(kLimit, float64(bucketCap)) * float64(count)
			kLimit++
			curr = centroid
		}
	}

	result.sum += curr.Add(sumsToMerge, weightsToMerge)
	updateBoundsOnOverflow(float64(curr.Mean), &minVal, &maxVal)
	compressed = append(compressed, curr)

	sort.Slice(compressed, func(i, j int) bool { return compressed[i].Less(compressed[j]) })

	result.count = count
	result.min = minVal
	result.max = maxVal
	result.centroids = compressed

	return result
}
