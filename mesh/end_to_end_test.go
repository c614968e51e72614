package mesh

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skymesh/mesh/mlayout"
)

func putUint16(bs []byte, off int, value uint16) {
	binary.LittleEndian.PutUint16(bs[off:], value)
}

func putUint32(bs []byte, off int, value uint32) {
	binary.LittleEndian.PutUint32(bs[off:], value)
}

func putFloat32At(bs []byte, off int, value float32) {
	binary.LittleEndian.PutUint32(bs[off:], math.Float32bits(value))
}

// compressInto builds a file image that stores payload as an LZ4 block
// behind the most common layout: sizes at 0x52/0x56, block at 0x5A.
func compressInto(t *testing.T, payload []byte) []byte {
	t.Helper()
	var compressor lz4.Compressor
	dst := make([]byte, lz4.CompressBlockBound(len(payload)))
	n, err := compressor.CompressBlock(payload, dst)
	require.NoError(t, err)
	require.Greater(t, n, 0)

	file := make([]byte, 0x5A+n)
	putUint32(file, 0x52, uint32(n))
	putUint32(file, 0x56, uint32(len(payload)))
	copy(file[0x5A:], dst[:n])
	return file
}

var testFaces = [][3]uint32{
	{1, 2, 3}, {3, 4, 5}, {5, 6, 7}, {7, 8, 9}, {9, 10, 11}, {11, 12, 13},
}

func TestDecodeMeshStructuredFile(t *testing.T) {
	const vertexCount = 12
	faces := [][3]uint32{{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, {9, 10, 11}}

	body := make([]byte, 179+vertexCount*16+vertexCount*16+len(faces)*6)
	putUint32(body, 116, vertexCount)
	putUint32(body, 120, uint32(len(faces)*3))
	// IsIdx32, NumPoints, reserved fields, load flags, and skip flags
	// all stay zero
	offset := 179
	for i := 0; i < vertexCount; i++ {
		putFloat32At(body, offset, float32(i))
		putFloat32At(body, offset+4, float32(i*2))
		putFloat32At(body, offset+8, float32(i*3))
		offset += 16
	}
	for i := 0; i < vertexCount; i++ {
		putUint16(body, offset, 0x3800)   // u = 0.5
		putUint16(body, offset+2, 0x3800) // v = 0.5, flipped to 0.5
		offset += 16
	}
	for _, face := range faces {
		for _, index := range face {
			putUint16(body, offset, uint16(index))
			offset += 2
		}
	}

	// compressed size 0 selects the stored-uncompressed branch
	file := make([]byte, mlayout.FilePayloadOff+len(body))
	putUint32(file, mlayout.FileUncompressedSizeOff, uint32(len(body)))
	copy(file[mlayout.FilePayloadOff:], body)

	outcome := DecodeMesh(file, DecodeOptions{})
	require.True(t, outcome.Success(), "outcome error: %v", outcome.Err)
	assert.Equal(t, StrategyStructured, outcome.Strategy)
	assert.Len(t, outcome.Mesh.Vertices, vertexCount)
	assert.Equal(t, Vertex{5, 10, 15}, outcome.Mesh.Vertices[5])
	assert.Len(t, outcome.Mesh.UVs, vertexCount)
	assert.Equal(t, UV{0.5, 0.5}, outcome.Mesh.UVs[3])
	assert.Equal(t, faces, outcome.Mesh.Faces)
}

func TestDecodeMeshQuantizedFile(t *testing.T) {
	const vertexCount = 20

	payload := make([]byte, 360)
	// dequantization header: min (0,0,0), range (10,10)
	putFloat32At(payload, 0x6C, 10)
	putFloat32At(payload, 0x70, 10)
	putUint32(payload, mlayout.SharedCountOff, vertexCount)
	putUint32(payload, mlayout.TotalIndexOff, uint32(len(testFaces)*3))
	offset := mlayout.QuantVertexOff
	for i := 0; i < vertexCount; i++ {
		for axis := 0; axis < 3; axis++ {
			putUint16(payload, offset, 32768) // mid-scale
			offset += 2
		}
	}
	for i := 0; i < vertexCount; i++ {
		putUint16(payload, offset, 32768)
		putUint16(payload, offset+2, 32768)
		offset += 4
	}
	for _, face := range testFaces {
		for _, index := range face {
			putUint16(payload, offset, uint16(index))
			offset += 2
		}
	}

	outcome := DecodeMesh(compressInto(t, payload), DecodeOptions{})
	require.True(t, outcome.Success(), "outcome error: %v", outcome.Err)
	assert.Equal(t, StrategyQuantized, outcome.Strategy)
	require.Len(t, outcome.Mesh.Vertices, vertexCount)
	for axis := 0; axis < 3; axis++ {
		assert.InDelta(t, 5.0, outcome.Mesh.Vertices[7][axis], 0.001)
	}
	require.Len(t, outcome.Mesh.UVs, vertexCount)
	assert.InDelta(t, 0.5, outcome.Mesh.UVs[7][0], 0.001)
	assert.Equal(t, testFaces, outcome.Mesh.Faces)
}

func TestDecodeMeshPackedFile(t *testing.T) {
	const vertexCount = 20

	payload := make([]byte, 300)
	putUint32(payload, mlayout.SharedCountOff, vertexCount)
	putUint32(payload, mlayout.TotalIndexOff, uint32(len(testFaces)*3))
	offset := mlayout.DirectVertexOff
	for _, face := range testFaces {
		for _, index := range face {
			putUint16(payload, offset, uint16(index))
			offset += 2
		}
	}
	vertexStart := len(payload) - vertexCount*4
	for i := 0; i < vertexCount; i++ {
		base := vertexStart + i*4
		payload[base+1] = 255
		payload[base+2] = 128
		payload[base+3] = 0
	}

	outcome := DecodeMesh(compressInto(t, payload), DecodeOptions{PreferPacked: true})
	require.True(t, outcome.Success(), "outcome error: %v", outcome.Err)
	assert.Equal(t, StrategyPacked, outcome.Strategy)
	require.Len(t, outcome.Mesh.Vertices, vertexCount)
	assert.InDelta(t, 0.996, outcome.Mesh.Vertices[0][0], 0.001)
	assert.InDelta(t, 0, outcome.Mesh.Vertices[0][1], 0.001)
	assert.InDelta(t, -1.004, outcome.Mesh.Vertices[0][2], 0.001)
	assert.Len(t, outcome.Mesh.UVs, vertexCount)
	assert.Equal(t, testFaces, outcome.Mesh.Faces)
}

func TestDecodeMeshDirectFile(t *testing.T) {
	const vertexCount = 12
	faces := [][3]uint32{{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, {9, 10, 11}}

	payload := make([]byte, 179+vertexCount*16+vertexCount*4+vertexCount*16+len(faces)*6)
	putUint32(payload, mlayout.SharedCountOff, vertexCount)
	putUint32(payload, mlayout.TotalIndexOff, uint32(len(faces)*3))
	offset := mlayout.DirectVertexOff
	for i := 0; i < vertexCount; i++ {
		putFloat32At(payload, offset, float32(i))
		putFloat32At(payload, offset+4, float32(-i))
		putFloat32At(payload, offset+8, 1)
		offset += 16
	}
	offset += vertexCount * 4
	for i := 0; i < vertexCount; i++ {
		putUint16(payload, offset, 0x3800)
		putUint16(payload, offset+2, 0x3800)
		offset += 16
	}
	for _, face := range faces {
		for _, index := range face {
			putUint16(payload, offset, uint16(index))
			offset += 2
		}
	}

	var compressor lz4.Compressor
	dst := make([]byte, lz4.CompressBlockBound(len(payload)))
	n, err := compressor.CompressBlock(payload, dst)
	require.NoError(t, err)
	require.Greater(t, n, 0)

	file := make([]byte, directPayloadOff+n)
	copy(file, directMagic)
	putUint32(file, directCompressedSizeOff, uint32(n))
	putUint32(file, directUncompressedSizeOff, uint32(len(payload)))
	copy(file[directPayloadOff:], dst[:n])

	outcome := DecodeMesh(file, DecodeOptions{})
	require.True(t, outcome.Success(), "outcome error: %v", outcome.Err)
	assert.Equal(t, StrategyDirect, outcome.Strategy)
	require.Len(t, outcome.Mesh.Vertices, vertexCount)
	assert.Equal(t, Vertex{4, -4, 1}, outcome.Mesh.Vertices[4])
	assert.Equal(t, UV{0.5, 0.5}, outcome.Mesh.UVs[0])
	assert.Equal(t, faces, outcome.Mesh.Faces)
}
