// Package flatcodec defines the FlatSerializable capability: the minimum
// contract a type must satisfy to be read from and written to a flat,
// contiguous byte buffer without an intermediate parse tree.
//
// A Codec[T] describes, for a concrete type T, the minimum number of bytes
// a value occupies, the alignment its first byte must sit on, whether a
// contiguous run of values can be reinterpreted from raw bytes without a
// per-element decode step, and the three core operations: TryRef (borrow a
// value from a byte slice), Fill (write a value into a byte slice) and
// ByteLen (the exact number of bytes Fill would consume).
//
// This package provides the primitive codecs (integers, floats, bool, fixed
// arrays). The schema package builds record and tagged-sum layouts out of
// them.
package flatcodec
