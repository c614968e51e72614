package mlayout

import (
	"fmt"

	"skymesh/mesh/lbytes"
	"github.com/pkg/errors"
)

type (
	// FileHeader is the structured reading of the (approximately)
	// 256-byte file header shared by the newer export generations.
	FileHeader struct {
		Version          byte
		NumLODs          uint32
		CompressedSize   uint32
		UncompressedSize uint32
	}

	// BodyFlags is the flags block at the start of the decompressed
	// payload. The first 116 bytes are an unused float (the engine
	// stores +inf there), two bounding boxes, and sixteen padding
	// floats; the counts and skip flags follow.
	BodyFlags struct {
		VertexCount   uint32
		CornerCount   uint32
		IsIdx32       uint32
		NumPoints     uint32
		LoadNormals   byte
		SkipPositions uint32
		SkipUVs       uint32
	}
)

// ParseFileHeader reads the fixed header fields of the structured
// layout. It does not validate the sizes; callers gate them through
// Candidate.Check or equivalent bounds checks.
func ParseFileHeader(data []byte) (*FileHeader, error) {
	if len(data) < FilePayloadOff {
		return nil, errors.New(
			fmt.Sprintf("ParseFileHeader: file is %d bytes, need at least 0x%X", len(data), FilePayloadOff),
		)
	}
	reader := lbytes.NewBytesReader(data)

	header := FileHeader{Version: data[0]}
	if err := reader.SeekTo(FileLODCountOff); err != nil {
		return nil, errors.Wrap(err, "ParseFileHeader seek LOD count")
	}
	var err error
	if header.NumLODs, err = reader.ReadUint32(); err != nil {
		return nil, errors.Wrap(err, "ParseFileHeader read LOD count")
	}
	if err := reader.SeekTo(FileCompressedSizeOff); err != nil {
		return nil, errors.Wrap(err, "ParseFileHeader seek compressed size")
	}
	if header.CompressedSize, err = reader.ReadUint32(); err != nil {
		return nil, errors.Wrap(err, "ParseFileHeader read compressed size")
	}
	if header.UncompressedSize, err = reader.ReadUint32(); err != nil {
		return nil, errors.Wrap(err, "ParseFileHeader read uncompressed size")
	}
	return &header, nil
}

// ParseBodyFlags reads the flags block and leaves the reader positioned
// at the first vertex record.
func ParseBodyFlags(reader *lbytes.Reader) (*BodyFlags, error) {
	// unused float, old bounding box, bounding box, padding floats
	if err := reader.Skip(4 + 6*4 + 6*4 + 16*4); err != nil {
		return nil, errors.Wrap(err, "ParseBodyFlags skip preamble")
	}

	flags := BodyFlags{}
	var err error
	if flags.VertexCount, err = reader.ReadUint32(); err != nil {
		return nil, errors.Wrap(err, "ParseBodyFlags read vertex count")
	}
	if flags.CornerCount, err = reader.ReadUint32(); err != nil {
		return nil, errors.Wrap(err, "ParseBodyFlags read corner count")
	}
	if flags.IsIdx32, err = reader.ReadUint32(); err != nil {
		return nil, errors.Wrap(err, "ParseBodyFlags read index width flag")
	}
	if flags.NumPoints, err = reader.ReadUint32(); err != nil {
		return nil, errors.Wrap(err, "ParseBodyFlags read point count")
	}
	// four reserved uint32 properties
	if err = reader.Skip(4 * 4); err != nil {
		return nil, errors.Wrap(err, "ParseBodyFlags skip reserved properties")
	}
	loadFlags, err := reader.ReadBytes(3)
	if err != nil {
		return nil, errors.Wrap(err, "ParseBodyFlags read load flags")
	}
	flags.LoadNormals = loadFlags[0]
	if flags.SkipPositions, err = reader.ReadUint32(); err != nil {
		return nil, errors.Wrap(err, "ParseBodyFlags read skip-positions flag")
	}
	if flags.SkipUVs, err = reader.ReadUint32(); err != nil {
		return nil, errors.Wrap(err, "ParseBodyFlags read skip-UVs flag")
	}
	// one flag and four unknown uint32 fields close the block
	if err = reader.Skip(5 * 4); err != nil {
		return nil, errors.Wrap(err, "ParseBodyFlags skip trailing fields")
	}
	return &flags, nil
}
