package mlayout

import (
	"encoding/binary"
	"fmt"

	"skymesh/ds"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// candidateTable is ordered most-specific-first: the 4-byte size-field
// layouts are tried before the 2-byte ones, and within each group the
// more commonly observed offsets come first. The first candidate that
// passes the structural gate wins for a given strategy.
var candidateTable = []Candidate{
	{CompressedSizeOff: 0x52, UncompressedSizeOff: 0x56, PayloadOff: 0x5A, SizeFieldWidth: 4, IndexPolicy: IndexProbe},
	{CompressedSizeOff: 0x4E, UncompressedSizeOff: 0x51, PayloadOff: 0x56, SizeFieldWidth: 2, IndexPolicy: IndexProbe},
	{CompressedSizeOff: 0x4E, UncompressedSizeOff: 0x52, PayloadOff: 0x56, SizeFieldWidth: 2, IndexPolicy: IndexProbe},
	{CompressedSizeOff: 0x4E, UncompressedSizeOff: 0x50, PayloadOff: 0x56, SizeFieldWidth: 2, IndexPolicy: IndexProbe},
	{CompressedSizeOff: 0x4C, UncompressedSizeOff: 0x50, PayloadOff: 0x56, SizeFieldWidth: 2, IndexPolicy: IndexProbe},
}

// legacyTable holds the oldest layout generation, where a LOD count
// field sits before the block sizes and 16-bit index triples follow the
// UV block directly.
var legacyTable = []Candidate{
	{CompressedSizeOff: 0x4E, UncompressedSizeOff: 0x52, PayloadOff: 0x56, SizeFieldWidth: 4, LODCountOff: 0x44, IndexPolicy: IndexFixed16},
	{CompressedSizeOff: 0x4A, UncompressedSizeOff: 0x4E, PayloadOff: 0x52, SizeFieldWidth: 4, LODCountOff: 0x40, IndexPolicy: IndexFixed16},
	{CompressedSizeOff: 0x52, UncompressedSizeOff: 0x56, PayloadOff: 0x5A, SizeFieldWidth: 4, LODCountOff: 0x48, IndexPolicy: IndexFixed16},
}

// Candidates returns the full ordered layout table.
func Candidates() []Candidate {
	all := make([]Candidate, 0, len(candidateTable)+len(legacyTable))
	all = append(all, candidateTable...)
	all = append(all, legacyTable...)
	return all
}

// ProbeCandidates returns the layouts whose index region must be
// located by scanning.
func ProbeCandidates() []Candidate {
	return lo.Filter(
		Candidates(),
		func(c Candidate, _ int) bool {
			return c.IndexPolicy == IndexProbe
		},
	)
}

// LegacyCandidates returns the oldest layout generation.
func LegacyCandidates() []Candidate {
	result := make([]Candidate, len(legacyTable))
	copy(result, legacyTable)
	return result
}

// VertexCountOffsets lists the payload offsets where the shared-vertex
// and total-index counts have been observed across export versions.
func VertexCountOffsets() []int {
	return []int{0x74, 0x70, 0x78, 0x80}
}

// ProbeOffsets lists every 4-aligned payload offset worth probing for
// the count pair when nothing else matched.
func ProbeOffsets() []int {
	return ds.MakeRange(0x20, 0x100, 4)
}

func (c Candidate) readSize(data []byte, off int) (int, error) {
	if off+c.SizeFieldWidth > len(data) {
		return 0, errors.New(
			fmt.Sprintf("readSize: offset 0x%X past end of %d-byte file", off, len(data)),
		)
	}
	if c.SizeFieldWidth == 2 {
		return int(binary.LittleEndian.Uint16(data[off:])), nil
	}
	return int(int32(binary.LittleEndian.Uint32(data[off:]))), nil
}

// Check applies the structural gate before any decompression happens:
// both sizes must be positive and below hard caps, and the declared
// compressed run must fit inside the file. A candidate that fails is
// skipped, never retried.
func (c Candidate) Check(compressedSize, uncompressedSize, fileLen int) error {
	if compressedSize <= 0 || compressedSize >= MaxCompressedSize {
		return errors.New(
			fmt.Sprintf("Check: compressed size %d outside (0, %d)", compressedSize, MaxCompressedSize),
		)
	}
	if uncompressedSize <= 0 || uncompressedSize >= MaxUncompressedSize {
		return errors.New(
			fmt.Sprintf("Check: uncompressed size %d outside (0, %d)", uncompressedSize, MaxUncompressedSize),
		)
	}
	if c.PayloadOff+compressedSize > fileLen {
		return errors.New(
			fmt.Sprintf(
				"Check: payload 0x%X+%d overruns %d-byte file",
				c.PayloadOff, compressedSize, fileLen,
			),
		)
	}
	return nil
}

// ExtractBlock reads the size fields of the candidate, applies the
// structural gate, and slices out the compressed block together with
// its declared uncompressed size.
func (c Candidate) ExtractBlock(data []byte) ([]byte, int, error) {
	compressedSize, err := c.readSize(data, c.CompressedSizeOff)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ExtractBlock read compressed size")
	}
	uncompressedSize, err := c.readSize(data, c.UncompressedSizeOff)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ExtractBlock read uncompressed size")
	}
	if err := c.Check(compressedSize, uncompressedSize, len(data)); err != nil {
		return nil, 0, err
	}
	return data[c.PayloadOff : c.PayloadOff+compressedSize], uncompressedSize, nil
}
