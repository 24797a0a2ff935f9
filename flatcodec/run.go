package flatcodec

import (
	"fmt"

	"github.com/arloliu/aggcore/endian"
)

// FixedArrayCodec composes a Codec[T] into a Codec for a fixed-length [N]T
// array, matching flat_serialize's "fixed array" field kind. The caller
// supplies the element codec and the fixed length; alignment and
// trivial-copy both pass through from the element codec unchanged.
type FixedArrayCodec[T any] struct {
	elem Codec[T]
	n    int
}

// NewFixedArrayCodec returns a Codec for arrays of exactly n elements of the
// type described by elem.
func NewFixedArrayCodec[T any](elem Codec[T], n int) FixedArrayCodec[T] {
	return FixedArrayCodec[T]{elem: elem, n: n}
}

func (c FixedArrayCodec[T]) MinLen() int                       { return c.elem.MinLen() * c.n }
func (c FixedArrayCodec[T]) RequiredAlignment() int            { return c.elem.RequiredAlignment() }
func (c FixedArrayCodec[T]) MaxProvidedAlignment() (int, bool) { return c.elem.MaxProvidedAlignment() }
func (c FixedArrayCodec[T]) TrivialCopy() bool                 { return c.elem.TrivialCopy() }

func (c FixedArrayCodec[T]) ByteLen(val []T) int {
	if c.elem.TrivialCopy() {
		return c.elem.MinLen() * c.n
	}

	total := 0
	for _, v := range val {
		total += c.elem.ByteLen(v)
	}

	return total
}

func (c FixedArrayCodec[T]) TryRef(data []byte, engine endian.EndianEngine) ([]T, []byte, error) {
	out := make([]T, c.n)
	rest := data

	for i := 0; i < c.n; i++ {
		v, next, err := c.elem.TryRef(rest, engine)
		if err != nil {
			return nil, nil, fmt.Errorf("array element %d: %w", i, err)
		}

		out[i] = v
		rest = next
	}

	return out, rest, nil
}

func (c FixedArrayCodec[T]) Fill(val []T, buf []byte, engine endian.EndianEngine) []byte {
	rest := buf
	for i := 0; i < c.n; i++ {
		rest = c.elem.Fill(val[i], rest, engine)
	}

	return rest
}

// alignUp rounds n up to the next multiple of alignment. alignment <= 1 is
// treated as no-op alignment.
func alignUp(n, alignment int) int {
	if alignment <= 1 {
		return n
	}

	rem := n % alignment
	if rem == 0 {
		return n
	}

	return n + (alignment - rem)
}

// padLen is the number of zero-padding bytes needed after a value of n
// bytes so the next value starts on an alignment boundary.
func padLen(n, alignment int) int {
	return alignUp(n, alignment) - n
}

// ReadRun decodes a length-prefixed run of count values of T from the front
// of data, advancing past exactly the bytes the run occupies. This mirrors
// flat_serialize's "variable length slice whose length is given by an
// earlier field" kind: the count is not re-read from the wire here, it is
// supplied by the caller from a previously decoded length field.
//
// Per spec §4.1 rule 4, each decoded element is followed by zero-padding up
// to elem.RequiredAlignment() before the next element starts, so elements
// whose own size isn't a multiple of their required alignment (variable
// length, non-trivial-copy elements in particular) don't drift the
// alignment of every element after them.
func ReadRun[T any](elem Codec[T], data []byte, count int, engine endian.EndianEngine) ([]T, []byte, error) {
	out := make([]T, count)
	rest := data
	align := elem.RequiredAlignment()

	for i := 0; i < count; i++ {
		v, next, err := elem.TryRef(rest, engine)
		if err != nil {
			return nil, nil, fmt.Errorf("run element %d: %w", i, err)
		}

		consumed := len(rest) - len(next)
		rest = next

		pad := padLen(consumed, align)
		if pad > 0 {
			if pad > len(rest) {
				return nil, nil, notEnoughBytes(pad, len(rest))
			}

			rest = rest[pad:]
		}

		out[i] = v
	}

	return out, rest, nil
}

// WriteRun writes each value in vals to the front of buf in order using
// elem, zero-padding after each element up to elem.RequiredAlignment(), and
// returns the remaining suffix of buf after the run.
func WriteRun[T any](elem Codec[T], vals []T, buf []byte, engine endian.EndianEngine) []byte {
	rest := buf
	align := elem.RequiredAlignment()

	for _, v := range vals {
		before := len(rest)
		rest = elem.Fill(v, rest, engine)
		consumed := before - len(rest)

		pad := padLen(consumed, align)
		for i := 0; i < pad; i++ {
			rest[i] = 0
		}
		rest = rest[pad:]
	}

	return rest
}

// RunByteLen returns the total number of bytes a run of vals would occupy
// under elem, including inter-element alignment padding.
func RunByteLen[T any](elem Codec[T], vals []T) int {
	align := elem.RequiredAlignment()
	total := 0

	for _, v := range vals {
		sz := elem.MinLen()
		if !elem.TrivialCopy() {
			sz = elem.ByteLen(v)
		}

		total += alignUp(sz, align)
	}

	return total
}
