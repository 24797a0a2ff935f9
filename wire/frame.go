package wire

import (
	"fmt"

	"github.com/arloliu/aggcore/compress"
	"github.com/arloliu/aggcore/endian"
	"github.com/arloliu/aggcore/errs"
	"github.com/arloliu/aggcore/format"
	"github.com/arloliu/aggcore/internal/pool"
)

// headerLen is the fixed 4-byte length header every frame begins with.
const headerLen = 4

var framePool = pool.NewByteBufferPool(pool.BlobBufferDefaultSize, pool.BlobBufferMaxThreshold)

// Encode wraps body (the flat-encoded record bytes) in a frame: a 4-byte
// header, written in engine's byte order, holding the length of the
// (possibly compressed) body, followed by that body itself. When compression is format.CompressionNone the body
// is copied through unchanged.
func Encode(body []byte, compression format.CompressionType, engine endian.EndianEngine) ([]byte, error) {
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	payload, err := codec.Compress(body)
	if err != nil {
		return nil, fmt.Errorf("compress frame body: %w", err)
	}

	buf := framePool.Get()
	defer framePool.Put(buf)

	buf.Grow(headerLen + len(payload))
	buf.ExtendOrGrow(headerLen)
	engine.PutUint32(buf.Bytes()[:headerLen], uint32(len(payload)))
	buf.MustWrite(payload)

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// Decode reads a frame produced by Encode, returning the decompressed body
// and the remaining bytes in data after the frame.
func Decode(data []byte, compression format.CompressionType, engine endian.EndianEngine) (body []byte, rest []byte, err error) {
	if len(data) < headerLen {
		return nil, nil, fmt.Errorf("%w: frame header needs %d bytes, have %d", errs.ErrNotEnoughBytes, headerLen, len(data))
	}

	length := int(engine.Uint32(data[:headerLen]))
	if len(data)-headerLen < length {
		return nil, nil, fmt.Errorf("%w: frame body needs %d bytes, have %d", errs.ErrNotEnoughBytes, length, len(data)-headerLen)
	}

	payload := data[headerLen : headerLen+length]

	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, nil, err
	}

	out, err := codec.Decompress(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("decompress frame body: %w", err)
	}

	return out, data[headerLen+length:], nil
}
