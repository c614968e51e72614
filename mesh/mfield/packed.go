package mfield

// UnpackByte maps a byte-packed coordinate into [-1, 1], centered on
// 128.
func UnpackByte(b byte) float32 {
	return (float32(b) - 128) / 127.5
}

// ReadPackedVertices reads n byte-packed vertices. The encoder appends
// this block last, so it is anchored to the tail of the payload rather
// than the head: each vertex is four bytes (one padding byte, then the
// three packed axes). Returns the vertices and the block's start
// offset, which bounds the index search space.
func ReadPackedVertices(payload []byte, n int) ([][3]float32, int, error) {
	size := n * 4
	if n <= 0 || size > len(payload) {
		return nil, 0, ErrSizeMismatch{What: "packed vertex block", Need: size, Have: len(payload)}
	}
	start := len(payload) - size
	vertices := make([][3]float32, n)
	for i := 0; i < n; i++ {
		base := start + i*4
		vertices[i] = [3]float32{
			UnpackByte(payload[base+1]),
			UnpackByte(payload[base+2]),
			UnpackByte(payload[base+3]),
		}
	}
	return vertices, start, nil
}
