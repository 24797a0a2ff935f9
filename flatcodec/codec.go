package flatcodec

import (
	"fmt"
	"math"

	"github.com/arloliu/aggcore/endian"
	"github.com/arloliu/aggcore/errs"
)

// Codec is the FlatSerializable capability (spec §4.1) for a concrete type T.
//
// Implementations must not read beyond MinLen() without first advancing
// their own internal bookkeeping, and TryRef's returned remaining slice must
// point immediately after the consumed prefix.
type Codec[T any] interface {
	// MinLen is the minimum number of bytes any value of T occupies.
	MinLen() int
	// RequiredAlignment is the power-of-two alignment the first byte of a
	// value of T must sit on within a buffer.
	RequiredAlignment() int
	// MaxProvidedAlignment is the upper bound on the alignment the
	// following field can assume after a value of T; ok is false when the
	// type preserves natural alignment (no bound).
	MaxProvidedAlignment() (alignment int, ok bool)
	// TrivialCopy reports whether a contiguous region of N values of T can
	// be reinterpreted directly from raw bytes.
	TrivialCopy() bool
	// TryRef reads a value of T from the front of data and returns it along
	// with the remaining bytes after the consumed prefix.
	TryRef(data []byte, engine endian.EndianEngine) (T, []byte, error)
	// Fill writes val into the front of buf, which must have length
	// >= ByteLen(val), and returns the remaining, still-uninitialized
	// suffix of buf.
	Fill(val T, buf []byte, engine endian.EndianEngine) []byte
	// ByteLen returns the exact number of bytes Fill would consume for val.
	ByteLen(val T) int
}

func notEnoughBytes(need int, got int) error {
	return fmt.Errorf("%w: need %d bytes, have %d", errs.ErrNotEnoughBytes, need, got)
}

// boolCodec implements Codec[bool]. A bool occupies one byte, any non-zero
// byte decodes true.
type boolCodec struct{}

// Bool is the Codec for bool.
var Bool Codec[bool] = boolCodec{}

func (boolCodec) MinLen() int                             { return 1 }
func (boolCodec) RequiredAlignment() int                  { return 1 }
func (boolCodec) MaxProvidedAlignment() (int, bool)       { return 0, false }
func (boolCodec) TrivialCopy() bool                        { return true }
func (boolCodec) ByteLen(bool) int                         { return 1 }

func (boolCodec) TryRef(data []byte, _ endian.EndianEngine) (bool, []byte, error) {
	if len(data) < 1 {
		return false, nil, notEnoughBytes(1, len(data))
	}

	return data[0] != 0, data[1:], nil
}

func (boolCodec) Fill(val bool, buf []byte, _ endian.EndianEngine) []byte {
	if val {
		buf[0] = 1
	} else {
		buf[0] = 0
	}

	return buf[1:]
}

// uintCodec records an unsigned integer byte width. It has no methods and
// is not one of the Codec implementations below.
type uintCodec struct {
	width int
}

// Uint8 ... Uint64 and Int8 ... Int64 are the Codec instances for integers
// up to 64 bits. Each width has its own codec type whose TryRef/Fill read
// and write that Go type directly.
var (
	Uint8  Codec[uint8]  = uint8Codec{}
	Uint16 Codec[uint16] = uint16Codec{}
	Uint32 Codec[uint32] = uint32Codec{}
	Uint64 Codec[uint64] = uint64Codec{}

	Int8  Codec[int8]  = int8Codec{}
	Int16 Codec[int16] = int16Codec{}
	Int32 Codec[int32] = int32Codec{}
	Int64 Codec[int64] = int64Codec{}
)

type uint8Codec struct{}

func (uint8Codec) MinLen() int                       { return 1 }
func (uint8Codec) RequiredAlignment() int            { return 1 }
func (uint8Codec) MaxProvidedAlignment() (int, bool) { return 0, false }
func (uint8Codec) TrivialCopy() bool                 { return true }
func (uint8Codec) ByteLen(uint8) int                 { return 1 }
func (uint8Codec) TryRef(data []byte, _ endian.EndianEngine) (uint8, []byte, error) {
	if len(data) < 1 {
		return 0, nil, notEnoughBytes(1, len(data))
	}

	return data[0], data[1:], nil
}
func (uint8Codec) Fill(val uint8, buf []byte, _ endian.EndianEngine) []byte {
	buf[0] = val
	return buf[1:]
}

type uint16Codec struct{}

func (uint16Codec) MinLen() int                       { return 2 }
func (uint16Codec) RequiredAlignment() int            { return 2 }
func (uint16Codec) MaxProvidedAlignment() (int, bool) { return 0, false }
func (uint16Codec) TrivialCopy() bool                 { return true }
func (uint16Codec) ByteLen(uint16) int                { return 2 }
func (uint16Codec) TryRef(data []byte, engine endian.EndianEngine) (uint16, []byte, error) {
	if len(data) < 2 {
		return 0, nil, notEnoughBytes(2, len(data))
	}

	return engine.Uint16(data[:2]), data[2:], nil
}
func (uint16Codec) Fill(val uint16, buf []byte, engine endian.EndianEngine) []byte {
	engine.PutUint16(buf[:2], val)
	return buf[2:]
}

type uint32Codec struct{}

func (uint32Codec) MinLen() int                       { return 4 }
func (uint32Codec) RequiredAlignment() int            { return 4 }
func (uint32Codec) MaxProvidedAlignment() (int, bool) { return 0, false }
func (uint32Codec) TrivialCopy() bool                 { return true }
func (uint32Codec) ByteLen(uint32) int                { return 4 }
func (uint32Codec) TryRef(data []byte, engine endian.EndianEngine) (uint32, []byte, error) {
	if len(data) < 4 {
		return 0, nil, notEnoughBytes(4, len(data))
	}

	return engine.Uint32(data[:4]), data[4:], nil
}
func (uint32Codec) Fill(val uint32, buf []byte, engine endian.EndianEngine) []byte {
	engine.PutUint32(buf[:4], val)
	return buf[4:]
}

type uint64Codec struct{}

func (uint64Codec) MinLen() int                       { return 8 }
func (uint64Codec) RequiredAlignment() int            { return 8 }
func (uint64Codec) MaxProvidedAlignment() (int, bool) { return 0, false }
func (uint64Codec) TrivialCopy() bool                 { return true }
func (uint64Codec) ByteLen(uint64) int                { return 8 }
func (uint64Codec) TryRef(data []byte, engine endian.EndianEngine) (uint64, []byte, error) {
	if len(data) < 8 {
		return 0, nil, notEnoughBytes(8, len(data))
	}

	return engine.Uint64(data[:8]), data[8:], nil
}
func (uint64Codec) Fill(val uint64, buf []byte, engine endian.EndianEngine) []byte {
	engine.PutUint64(buf[:8], val)
	return buf[8:]
}

type int8Codec struct{}

func (int8Codec) MinLen() int                       { return 1 }
func (int8Codec) RequiredAlignment() int            { return 1 }
func (int8Codec) MaxProvidedAlignment() (int, bool) { return 0, false }
func (int8Codec) TrivialCopy() bool                 { return true }
func (int8Codec) ByteLen(int8) int                  { return 1 }
func (int8Codec) TryRef(data []byte, _ endian.EndianEngine) (int8, []byte, error) {
	if len(data) < 1 {
		return 0, nil, notEnoughBytes(1, len(data))
	}

	return int8(data[0]), data[1:], nil
}
func (int8Codec) Fill(val int8, buf []byte, _ endian.EndianEngine) []byte {
	buf[0] = byte(val)
	return buf[1:]
}

type int16Codec struct{}

func (int16Codec) MinLen() int                       { return 2 }
func (int16Codec) RequiredAlignment() int            { return 2 }
func (int16Codec) MaxProvidedAlignment() (int, bool) { return 0, false }
func (int16Codec) TrivialCopy() bool                 { return true }
func (int16Codec) ByteLen(int16) int                 { return 2 }
func (int16Codec) TryRef(data []byte, engine endian.EndianEngine) (int16, []byte, error) {
	if len(data) < 2 {
		return 0, nil, notEnoughBytes(2, len(data))
	}

	return int16(engine.Uint16(data[:2])), data[2:], nil
}
func (int16Codec) Fill(val int16, buf []byte, engine endian.EndianEngine) []byte {
	engine.PutUint16(buf[:2], uint16(val))
	return buf[2:]
}

type int32Codec struct{}

func (int32Codec) MinLen() int                       { return 4 }
func (int32Codec) RequiredAlignment() int            { return 4 }
func (int32Codec) MaxProvidedAlignment() (int, bool) { return 0, false }
func (int32Codec) TrivialCopy() bool                 { return true }
func (int32Codec) ByteLen(int32) int                 { return 4 }
func (int32Codec) TryRef(data []byte, engine endian.EndianEngine) (int32, []byte, error) {
	if len(data) < 4 {
		return 0, nil, notEnoughBytes(4, len(data))
	}

	return int32(engine.Uint32(data[:4])), data[4:], nil
}
func (int32Codec) Fill(val int32, buf []byte, engine endian.EndianEngine) []byte {
	engine.PutUint32(buf[:4], uint32(val))
	return buf[4:]
}

type int64Codec struct{}

func (int64Codec) MinLen() int                       { return 8 }
func (int64Codec) RequiredAlignment() int            { return 8 }
func (int64Codec) MaxProvidedAlignment() (int, bool) { return 0, false }
func (int64Codec) TrivialCopy() bool                 { return true }
func (int64Codec) ByteLen(int64) int                 { return 8 }
func (int64Codec) TryRef(data []byte, engine endian.EndianEngine) (int64, []byte, error) {
	if len(data) < 8 {
		return 0, nil, notEnoughBytes(8, len(data))
	}

	return int64(engine.Uint64(data[:8])), data[8:], nil
}
func (int64Codec) Fill(val int64, buf []byte, engine endian.EndianEngine) []byte {
	engine.PutUint64(buf[:8], uint64(val))
	return buf[8:]
}

// Int128 and Uint128 represent 128-bit integers as two 64-bit halves, since
// Go has no native 128-bit integer type.
type (
	Int128  struct{ Hi int64; Lo uint64 }
	Uint128 struct{ Hi, Lo uint64 }
)

type uint128Codec struct{}

// UInt128 is the Codec for Uint128.
var UInt128 Codec[Uint128] = uint128Codec{}

func (uint128Codec) MinLen() int                       { return 16 }
func (uint128Codec) RequiredAlignment() int            { return 8 }
func (uint128Codec) MaxProvidedAlignment() (int, bool) { return 0, false }
func (uint128Codec) TrivialCopy() bool                 { return true }
func (uint128Codec) ByteLen(Uint128) int               { return 16 }
func (uint128Codec) TryRef(data []byte, engine endian.EndianEngine) (Uint128, []byte, error) {
	if len(data) < 16 {
		return Uint128{}, nil, notEnoughBytes(16, len(data))
	}

	return Uint128{Hi: engine.Uint64(data[:8]), Lo: engine.Uint64(data[8:16])}, data[16:], nil
}
func (uint128Codec) Fill(val Uint128, buf []byte, engine endian.EndianEngine) []byte {
	engine.PutUint64(buf[:8], val.Hi)
	engine.PutUint64(buf[8:16], val.Lo)

	return buf[16:]
}

type int128Codec struct{}

// Int128Codec is the Codec for Int128.
var Int128Codec Codec[Int128] = int128Codec{}

func (int128Codec) MinLen() int                       { return 16 }
func (int128Codec) RequiredAlignment() int            { return 8 }
func (int128Codec) MaxProvidedAlignment() (int, bool) { return 0, false }
func (int128Codec) TrivialCopy() bool                 { return true }
func (int128Codec) ByteLen(Int128) int                { return 16 }
func (int128Codec) TryRef(data []byte, engine endian.EndianEngine) (Int128, []byte, error) {
	if len(data) < 16 {
		return Int128{}, nil, notEnoughBytes(16, len(data))
	}

	return Int128{Hi: int64(engine.Uint64(data[:8])), Lo: engine.Uint64(data[8:16])}, data[16:], nil
}
func (int128Codec) Fill(val Int128, buf []byte, engine endian.EndianEngine) []byte {
	engine.PutUint64(buf[:8], uint64(val.Hi))
	engine.PutUint64(buf[8:16], val.Lo)

	return buf[16:]
}

type float32Codec struct{}

// Float32 is the Codec for float32.
var Float32 Codec[float32] = float32Codec{}

func (float32Codec) MinLen() int                       { return 4 }
func (float32Codec) RequiredAlignment() int            { return 4 }
func (float32Codec) MaxProvidedAlignment() (int, bool) { return 0, false }
func (float32Codec) TrivialCopy() bool                 { return true }
func (float32Codec) ByteLen(float32) int               { return 4 }
func (float32Codec) TryRef(data []byte, engine endian.EndianEngine) (float32, []byte, error) {
	if len(data) < 4 {
		return 0, nil, notEnoughBytes(4, len(data))
	}

	return math.Float32frombits(engine.Uint32(data[:4])), data[4:], nil
}
func (float32Codec) Fill(val float32, buf []byte, engine endian.EndianEngine) []byte {
	engine.PutUint32(buf[:4], math.Float32bits(val))
	return buf[4:]
}

type float64Codec struct{}

// Float64 is the Codec for float64.
var Float64 Codec[float64] = float64Codec{}

func (float64Codec) MinLen() int                       { return 8 }
func (float64Codec) RequiredAlignment() int            { return 8 }
func (float64Codec) MaxProvidedAlignment() (int, bool) { return 0, false }
func (float64Codec) TrivialCopy() bool                 { return true }
func (float64Codec) ByteLen(float64) int               { return 8 }
func (float64Codec) TryRef(data []byte, engine endian.EndianEngine) (float64, []byte, error) {
	if len(data) < 8 {
		return 0, nil, notEnoughBytes(8, len(data))
	}

	return math.Float64frombits(engine.Uint64(data[:8])), data[8:], nil
}
func (float64Codec) Fill(val float64, buf []byte, engine endian.EndianEngine) []byte {
	engine.PutUint64(buf[:8], math.Float64bits(val))
	return buf[8:]
}

// OrderedFloat64 wraps float64 with a total order (NaN sorts as greater than
// +Inf), mirroring the ordered-float wrapper the spec requires a codec for.
// The wire encoding is bit-identical to a plain float64.
type OrderedFloat64 float64

// Compare returns -1, 0 or 1 comparing a to b under the total order: NaN is
// considered greater than every other value including +Inf, and equal to
// itself.
func (a OrderedFloat64) Compare(b OrderedFloat64) int {
	af, bf := float64(a), float64(b)
	switch {
	case math.IsNaN(af) && math.IsNaN(bf):
		return 0
	case math.IsNaN(af):
		return 1
	case math.IsNaN(bf):
		return -1
	case af < bf:
		return -1
	case af > bf:
		return 1
	default:
		return 0
	}
}

type orderedFloat64Codec struct{}

// OrderedFloat64Codec is the Codec for OrderedFloat64.
var OrderedFloat64Codec Codec[OrderedFloat64] = orderedFloat64Codec{}

func (orderedFloat64Codec) MinLen() int                       { return 8 }
func (orderedFloat64Codec) RequiredAlignment() int            { return 8 }
func (orderedFloat64Codec) MaxProvidedAlignment() (int, bool) { return 0, false }
func (orderedFloat64Codec) TrivialCopy() bool                 { return true }
func (orderedFloat64Codec) ByteLen(OrderedFloat64) int        { return 8 }
func (orderedFloat64Codec) TryRef(data []byte, engine endian.EndianEngine) (OrderedFloat64, []byte, error) {
	v, rest, err := Float64.TryRef(data, engine)
	return OrderedFloat64(v), rest, err
}
func (orderedFloat64Codec) Fill(val OrderedFloat64, buf []byte, engine endian.EndianEngine) []byte {
	return Float64.Fill(float64(val), buf, engine)
}
