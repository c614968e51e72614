package mindex

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPayload embeds faceCount triples at offset using the given
// width, surrounded by 0xFF filler that can never pass the bounds
// check for small vertex counts.
func buildPayload(t *testing.T, offset, faceCount int, width Width, faces [][3]uint32) []byte {
	t.Helper()
	require.Equal(t, faceCount, len(faces))
	size := offset + faceCount*width.faceBytes() + 32
	payload := make([]byte, size)
	for i := range payload {
		payload[i] = 0xFF
	}
	off := offset
	for _, face := range faces {
		for _, index := range face {
			if width == Width32 {
				binary.LittleEndian.PutUint32(payload[off:], index)
				off += 4
			} else {
				binary.LittleEndian.PutUint16(payload[off:], uint16(index))
				off += 2
			}
		}
	}
	return payload
}

func syntheticFaces(faceCount, vertexCount int) [][3]uint32 {
	faces := make([][3]uint32, faceCount)
	for i := range faces {
		base := uint32(i % (vertexCount - 3))
		faces[i] = [3]uint32{base + 1, base + 2, base + 3}
	}
	return faces
}

func TestFindRecovers16BitRun(t *testing.T) {
	const vertexCount, faceCount, offset = 50, 8, 0x40
	faces := syntheticFaces(faceCount, vertexCount)
	payload := buildPayload(t, offset, faceCount, Width16, faces)

	for _, step := range []int{1, 2, 4} {
		locator := NewLocator()
		locator.Step = step
		run, err := locator.Find(payload, vertexCount, faceCount, []int{0})
		require.NoError(t, err, "step %d", step)
		assert.Equal(t, offset, run.Offset, "step %d", step)
		assert.Equal(t, Width16, run.Width, "step %d", step)
		assert.Equal(t, faces, run.Faces, "step %d", step)
	}
}

func TestFindRecovers32BitRun(t *testing.T) {
	// 32-bit index data with small values reads as alternating
	// value/zero words under a 16-bit interpretation, which the
	// zero-ratio filter rejects; only the 32-bit reading survives.
	const vertexCount, faceCount, offset = 50, 6, 0x20
	faces := syntheticFaces(faceCount, vertexCount)
	payload := buildPayload(t, offset, faceCount, Width32, faces)

	locator := NewLocator()
	run, err := locator.Find(payload, vertexCount, faceCount, []int{0})
	require.NoError(t, err)
	assert.Equal(t, offset, run.Offset)
	assert.Equal(t, Width32, run.Width)
	assert.Equal(t, faces, run.Faces)
}

func TestFindRejectsZeroHeavyRun(t *testing.T) {
	const vertexCount, faceCount, offset = 50, 8, 0x40
	faces := syntheticFaces(faceCount, vertexCount)
	// poison the prefix: a third of the leading indices are zero
	faces[0] = [3]uint32{0, 0, 5}
	payload := buildPayload(t, offset, faceCount, Width16, faces)

	locator := NewLocator()
	_, err := locator.Find(payload, vertexCount, faceCount, []int{0})
	assert.Error(t, err)
	assert.IsType(t, ErrNotFound{}, err)
}

func TestFindHonorsIterationCap(t *testing.T) {
	const vertexCount, faceCount = 50, 8
	faces := syntheticFaces(faceCount, vertexCount)
	payload := buildPayload(t, 0x400, faceCount, Width16, faces)

	locator := NewLocator()
	locator.Step = 1
	locator.MaxIterations = 10
	_, err := locator.Find(payload, vertexCount, faceCount, []int{0})
	require.Error(t, err)
	notFound, ok := err.(ErrNotFound)
	require.True(t, ok)
	assert.Equal(t, 10, notFound.Iterations)
}

func TestFindUsesLaterAnchor(t *testing.T) {
	const vertexCount, faceCount, offset = 50, 8, 0x80
	faces := syntheticFaces(faceCount, vertexCount)
	payload := buildPayload(t, offset, faceCount, Width16, faces)

	locator := NewLocator()
	run, err := locator.Find(payload, vertexCount, faceCount, []int{offset, 0})
	require.NoError(t, err)
	assert.Equal(t, offset, run.Offset)
}

func TestFindTruncatedRunRejected(t *testing.T) {
	const vertexCount, faceCount, offset = 50, 8, 0x40
	faces := syntheticFaces(faceCount, vertexCount)
	payload := buildPayload(t, offset, faceCount, Width16, faces)
	// cut the payload so the full run no longer fits
	payload = payload[:offset+faceCount*Width16.faceBytes()-3]

	locator := NewLocator()
	_, err := locator.Find(payload, vertexCount, faceCount, []int{offset})
	assert.Error(t, err)
}

func TestReadRun(t *testing.T) {
	faces := [][3]uint32{{1, 2, 3}, {4, 5, 6}}
	payload := buildPayload(t, 0, 2, Width16, faces)

	got, err := ReadRun(payload, 0, 2, Width16)
	require.NoError(t, err)
	assert.Equal(t, faces, got)

	_, err = ReadRun(payload, 0, 100, Width16)
	assert.Error(t, err)
}
