package wire

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// maxDecodedSize limits the memory a single compressed payload may expand
// to.
const maxDecodedSize = 1 << 30

var (
	encoder = sync.OnceValues(func() (*zstd.Encoder, error) {
		return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	})
	decoder = sync.OnceValues(func() (*zstd.Decoder, error) {
		return zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxDecodedSize))
	})
)

// IsCompressed reports whether d starts with a zstd frame.
func IsCompressed(d []byte) bool {
	return bytes.HasPrefix(d, zstdMagic)
}

// Compress wraps d in a zstd frame.
func Compress(d []byte) ([]byte, error) {
	enc, err := encoder()
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	return enc.EncodeAll(d, make([]byte, 0, len(d)/2)), nil
}

// Decompress unwraps a zstd frame. Input without a frame is returned as is.
func Decompress(d []byte) ([]byte, error) {
	if !IsCompressed(d) {
		return d, nil
	}
	dec, err := decoder()
	if err != nil {
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	res, err := dec.DecodeAll(d, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return res, nil
}
