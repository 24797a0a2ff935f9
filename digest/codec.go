package digest

import (
	"fmt"

	"github.com/arloliu/aggcore/endian"
	"github.com/arloliu/aggcore/flatcodec"
	"github.com/arloliu/aggcore/format"
	"github.com/arloliu/aggcore/wire"
)

// centroidCodec pairs a mean and weight, matching Centroid's flat layout:
// an 8-byte float64 mean (required alignment 8) followed by an 8-byte
// weight. Hand-written rather than composed through schema, matching the
// "one implementation per schema, no dynamic dispatch" design note.
type centroidCodec struct{}

func (centroidCodec) MinLen() int                       { return 16 }
func (centroidCodec) RequiredAlignment() int            { return 8 }
func (centroidCodec) MaxProvidedAlignment() (int, bool) { return 0, false }
func (centroidCodec) TrivialCopy() bool                 { return true }
func (centroidCodec) ByteLen(Centroid) int              { return 16 }

func (centroidCodec) TryRef(data []byte, engine endian.EndianEngine) (Centroid, []byte, error) {
	mean, rest, err := flatcodec.Float64.TryRef(data, engine)
	if err != nil {
		return Centroid{}, nil, err
	}

	weight, rest, err := flatcodec.Uint64.TryRef(rest, engine)
	if err != nil {
		return Centroid{}, nil, err
	}

	return NewCentroid(mean, weight), rest, nil
}

func (centroidCodec) Fill(val Centroid, buf []byte, engine endian.EndianEngine) []byte {
	rest := flatcodec.Float64.Fill(float64(val.Mean), buf, engine)
	return flatcodec.Uint64.Fill(val.Weight, rest, engine)
}

var centroidCodecInstance flatcodec.Codec[Centroid] = centroidCodec{}

// headerLen is the fixed-size prefix of a serialized digest: bucketCap
// (uint32), count (uint64), sum, max, min (float64 each), numCentroids
// (uint32).
const headerLen = 4 + 8 + 8 + 8 + 8 + 4

// Marshal serializes t into a framed byte slice using the given compression.
func (t *TDigest) Marshal(compression format.CompressionType) ([]byte, error) {
	engine := endian.GetLittleEndianEngine()

	body := make([]byte, headerLen+flatcodec.RunByteLen[Centroid](centroidCodecInstance, t.centroids))
	rest := body

	rest = flatcodec.Uint32.Fill(uint32(t.bucketCap), rest, engine)
	rest = flatcodec.Uint64.Fill(t.count, rest, engine)
	rest = flatcodec.Float64.Fill(t.sum, rest, engine)
	rest = flatcodec.Float64.Fill(t.max, rest, engine)
	rest = flatcodec.Float64.Fill(t.min, rest, engine)
	rest = flatcodec.Uint32.Fill(uint32(len(t.centroids)), rest, engine)
	flatcodec.WriteRun(centroidCodecInstance, t.centroids, rest, engine)

	return wire.Encode(body, compression, engine)
}

// Unmarshal decodes a digest previously produced by Marshal.
func Unmarshal(framed []byte, compression format.CompressionType) (*TDigest, error) {
	engine := endian.GetLittleEndianEngine()

	body, _, err := wire.Decode(framed, compression, engine)
	if err != nil {
		return nil, fmt.Errorf("decode digest frame: %w", err)
	}

	bucketCap, rest, err := flatcodec.Uint32.TryRef(body, engine)
	if err != nil {
		return nil, err
	}

	count, rest, err := flatcodec.Uint64.TryRef(rest, engine)
	if err != nil {
		return nil, err
	}

	sum, rest, err := flatcodec.Float64.TryRef(rest, engine)
	if err != nil {
		return nil, err
	}

	maxVal, rest, err := flatcodec.Float64.TryRef(rest, engine)
	if err != nil {
		return nil, err
	}

	minVal, rest, err := flatcodec.Float64.TryRef(rest, engine)
	if err != nil {
		return nil, err
	}

	numCentroids, rest, err := flatcodec.Uint32.TryRef(rest, engine)
	if err != nil {
		return nil, err
	}

	centroids, _, err := flatcodec.ReadRun(centroidCodecInstance, rest, int(numCentroids), engine)
	if err != nil {
		return nil, err
	}

	return &TDigest{
		centroids: centroids,
		bucketCap: int(bucketCap),
		sum:       sum,
		count:     count,
		max:       maxVal,
		min:       minVal,
	}, nil
}
