package mfield

import (
	"encoding/binary"
	"math"
)

type (
	// QuantHeader holds the per-axis dequantization parameters read
	// from the payload. The encoder stores no slot for the Z range:
	// the Y range is reused for it. That is a structural fact of the
	// format, observed across every sampled asset, not a bug to fix.
	QuantHeader struct {
		Min   [3]float32
		Range [3]float32
	}
)

// ReadQuantHeader reads the five stored float32 quantization fields
// starting at off (min x/y/z, range x/y) and mirrors range y into
// range z.
func ReadQuantHeader(payload []byte, off int) (QuantHeader, error) {
	if off < 0 || off+20 > len(payload) {
		return QuantHeader{}, ErrSizeMismatch{What: "quantization header", Need: off + 20, Have: len(payload)}
	}
	f32 := func(at int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(payload[at:]))
	}
	header := QuantHeader{
		Min:   [3]float32{f32(off), f32(off + 4), f32(off + 8)},
		Range: [3]float32{f32(off + 12), f32(off + 16), 0},
	}
	header.Range[2] = header.Range[1]
	return header, nil
}

// Dequantize maps a 16-bit raw value back into [min, min+rng].
func Dequantize(raw uint16, min, rng float32) float32 {
	return min + (float32(raw)/65535.0)*rng
}

// ReadQuantVertices reads n vertices stored as three consecutive
// uint16 values each, dequantized through the header. Returns the
// offset just past the vertex block.
func ReadQuantVertices(payload []byte, off, n int, header QuantHeader) ([][3]float32, int, error) {
	need := off + n*6
	if off < 0 || n < 0 || need > len(payload) {
		return nil, 0, ErrSizeMismatch{What: "quantized vertex block", Need: need, Have: len(payload)}
	}
	vertices := make([][3]float32, n)
	for i := 0; i < n; i++ {
		base := off + i*6
		for axis := 0; axis < 3; axis++ {
			raw := binary.LittleEndian.Uint16(payload[base+axis*2:])
			vertices[i][axis] = Dequantize(raw, header.Min[axis], header.Range[axis])
		}
	}
	return vertices, need, nil
}

// ReadNormalizedUVs reads n UV pairs stored as uint16 values
// normalized by 65535. A truncated tail is tolerated: missing pairs
// default to (0,0), matching assets exported without UV data.
func ReadNormalizedUVs(payload []byte, off, n int) ([][2]float32, int) {
	uvs := make([][2]float32, n)
	for i := 0; i < n; i++ {
		base := off + i*4
		if base < 0 || base+4 > len(payload) {
			continue
		}
		uvs[i] = [2]float32{
			float32(binary.LittleEndian.Uint16(payload[base:])) / 65535.0,
			float32(binary.LittleEndian.Uint16(payload[base+2:])) / 65535.0,
		}
	}
	return uvs, off + n*4
}
