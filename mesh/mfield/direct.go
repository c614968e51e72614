package mfield

import (
	"encoding/binary"
	"math"
)

// ReadDirectVertices reads n full-precision vertices starting at off.
// Each record is stride bytes with three float32 coordinates at its
// head; the remainder of the record is padding. Returns the vertices
// and the offset just past the last record.
func ReadDirectVertices(payload []byte, off, n, stride int) ([][3]float32, int, error) {
	need := off + n*stride
	if off < 0 || n < 0 || stride < 12 || need > len(payload) {
		return nil, 0, ErrSizeMismatch{What: "direct vertex block", Need: need, Have: len(payload)}
	}
	vertices := make([][3]float32, n)
	for i := 0; i < n; i++ {
		base := off + i*stride
		vertices[i] = [3]float32{
			math.Float32frombits(binary.LittleEndian.Uint32(payload[base:])),
			math.Float32frombits(binary.LittleEndian.Uint32(payload[base+4:])),
			math.Float32frombits(binary.LittleEndian.Uint32(payload[base+8:])),
		}
	}
	return vertices, need, nil
}

// ReadHalfUVs reads n UV pairs encoded as two binary16 values at the
// head of each stride-byte record. flipV mirrors the V coordinate
// (v -> 1-v), which the structured layout requires.
func ReadHalfUVs(payload []byte, off, n, stride int, flipV bool) ([][2]float32, int, error) {
	need := off + n*stride
	if off < 0 || n < 0 || stride < 4 || need > len(payload) {
		return nil, 0, ErrSizeMismatch{What: "half-float UV block", Need: need, Have: len(payload)}
	}
	uvs := make([][2]float32, n)
	for i := 0; i < n; i++ {
		base := off + i*stride
		u := HalfToFloat(binary.LittleEndian.Uint16(payload[base:]))
		v := HalfToFloat(binary.LittleEndian.Uint16(payload[base+2:]))
		if flipV {
			v = 1 - v
		}
		uvs[i] = [2]float32{u, v}
	}
	return uvs, need, nil
}
