// Package digest implements the t-digest quantile sketch: a compact,
// mergeable approximation of a value distribution built from weighted
// centroids, supporting point quantile and inverse-quantile queries.
//
// The implementation follows the algorithm in timescaledb-toolkit's
// t-digest crate: centroids are kept sorted by mean, a scale function
// k_to_q controls how aggressively nearby centroids are merged during
// compression, and digests combine either by merging sorted centroid
// streams pairwise (MergeDigests) or by replaying a raw, unsorted sample
// (MergeUnsorted).
package digest
