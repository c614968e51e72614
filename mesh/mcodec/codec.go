package mcodec

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

type (
	// ErrDecompression is returned when the block codec rejects the
	// input or produces a payload of unexpected length.
	ErrDecompression struct {
		Reason   string
		Expected int
		Got      int
	}
)

func (e ErrDecompression) Error() string {
	if e.Got != e.Expected {
		return fmt.Sprintf(
			"decompression failed: %s (expected %d bytes, got %d)",
			e.Reason, e.Expected, e.Got,
		)
	}
	return "decompression failed: " + e.Reason
}

// Decompress expands an LZ4 block into exactly expectedSize bytes.
// A handful of assets carry a zlib stream in the same slot, so that is
// tried when the LZ4 block is rejected. There are no retries beyond
// that; layout fallback happens at the strategy level.
func Decompress(src []byte, expectedSize int) ([]byte, error) {
	if expectedSize <= 0 {
		return nil, ErrDecompression{Reason: "non-positive output size", Expected: expectedSize, Got: expectedSize}
	}
	if len(src) == 0 {
		return nil, ErrDecompression{Reason: "empty input block", Expected: expectedSize}
	}

	dst := make([]byte, expectedSize)
	n, err := lz4.UncompressBlock(src, dst)
	if err == nil && n == expectedSize {
		return dst, nil
	}

	if out, zerr := inflateZlib(src); zerr == nil && len(out) == expectedSize {
		return out, nil
	}

	if err != nil {
		return nil, ErrDecompression{Reason: err.Error(), Expected: expectedSize, Got: expectedSize}
	}
	return nil, ErrDecompression{Reason: "short LZ4 output", Expected: expectedSize, Got: n}
}

func inflateZlib(src []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
