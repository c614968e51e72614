package lbytes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytesReader_ReadInt(t *testing.T) {
	reader := NewBytesReader(
		[]byte{
			3, 1, 4, 3,
			12, 34, 56, 78,
		},
	)

	resultInt1, err := reader.ReadInt()
	assert.NoError(t, err)
	assert.Equal(t, int32(50594051), resultInt1)

	resultInt2, err := reader.ReadInt()
	assert.NoError(t, err)
	assert.Equal(t, int32(1312301580), resultInt2)
}

func TestBytesReader_ReadUint16(t *testing.T) {
	reader := NewBytesReader([]byte{0x34, 0x12, 0xFF, 0xFF})

	result1, err := reader.ReadUint16()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x1234), result1)

	result2, err := reader.ReadUint16()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0xFFFF), result2)

	_, err = reader.ReadUint16()
	assert.Error(t, err)
}

func TestBytesReader_ReadFloat32(t *testing.T) {
	bits := math.Float32bits(1.5)
	reader := NewBytesReader(
		[]byte{
			byte(bits), byte(bits >> 8), byte(bits >> 16), byte(bits >> 24),
		},
	)

	result, err := reader.ReadFloat32()
	assert.NoError(t, err)
	assert.Equal(t, float32(1.5), result)
}

func TestBytesReader_SeekAndOffset(t *testing.T) {
	reader := NewBytesReader([]byte{0, 1, 2, 3, 4, 5, 6, 7})

	assert.NoError(t, reader.SeekTo(4))
	assert.Equal(t, 4, reader.Offset())

	assert.NoError(t, reader.Skip(2))
	assert.Equal(t, 6, reader.Offset())

	result, err := reader.ReadUint16()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x0706), result)
}
