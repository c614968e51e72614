package lbytes

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
)

func NewBytesReader(bs []byte) *Reader {
	return &Reader{
		Reader: *bytes.NewReader(bs),
	}
}

func (b *Reader) ReadInt() (int32, error) {
	bs := make([]byte, 4)
	_, err := io.ReadFull(b, bs)
	if err != nil {
		return 0, err
	}
	result := binary.LittleEndian.Uint32(bs)
	return int32(result), nil
}

func (b *Reader) ReadUint32() (uint32, error) {
	bs := make([]byte, 4)
	_, err := io.ReadFull(b, bs)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(bs), nil
}

func (b *Reader) ReadUint16() (uint16, error) {
	bs := make([]byte, 2)
	_, err := io.ReadFull(b, bs)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(bs), nil
}

func (b *Reader) ReadFloat32() (float32, error) {
	bits, err := b.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

func (b *Reader) ReadBytes(n int) ([]byte, error) {
	bs := make([]byte, n)
	// add return early to avoid EOF error
	// when reader's pointer reach end of file
	// while the number of next bytes to read is 0
	if n == 0 {
		return bs, nil
	}
	_, err := io.ReadFull(b, bs)
	if err != nil {
		return nil, err
	}
	return bs, nil
}

func (b *Reader) ReadString(n int) (string, error) {
	bs, err := b.ReadBytes(n)
	if err != nil {
		return "", err
	}

	return string(bs), nil
}

func (b *Reader) Skip(n int) error {
	_, err := b.Seek(int64(n), io.SeekCurrent)
	return err
}

func (b *Reader) SeekTo(offset int) error {
	_, err := b.Seek(int64(offset), io.SeekStart)
	return err
}

// Offset reports the current read position from the start of the
// underlying buffer.
func (b *Reader) Offset() int {
	return int(b.Size()) - b.Len()
}
