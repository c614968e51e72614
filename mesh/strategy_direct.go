package mesh

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"

	"skymesh/mesh/mcodec"
	"skymesh/mesh/mfield"
	"skymesh/mesh/mindex"
	"skymesh/mesh/mlayout"
)

// The direct-float container opens with this magic. Its header is two
// bytes wider than the structured one, which shifts every field.
var directMagic = []byte{0x1F, 0x00, 0x00, 0x00}

const (
	directBonesFlagOff        = 76
	directCompressedSizeOff   = 82
	directUncompressedSizeOff = 86
	directPayloadOff          = 90
)

// decodeDirect handles the direct-float container: full-precision
// vertex records at a fixed payload offset, half-float UVs, and 16-bit
// index triples immediately after the optional bone block.
func decodeDirect(data []byte, opts DecodeOptions) (*DecodedMesh, error) {
	if !bytes.HasPrefix(data, directMagic) {
		return nil, ErrMalformedHeader{Reason: "missing direct-float container magic"}
	}
	if len(data) < directPayloadOff {
		return nil, ErrMalformedHeader{
			Reason: fmt.Sprintf("file is %d bytes, header needs %d", len(data), directPayloadOff),
		}
	}
	hasBones := binary.LittleEndian.Uint16(data[directBonesFlagOff:]) == 1
	compressedSize, _ := readInt32At(data, directCompressedSizeOff)
	uncompressedSize, _ := readInt32At(data, directUncompressedSizeOff)
	if compressedSize <= 0 || compressedSize > mlayout.MaxCompressedSize ||
		uncompressedSize <= 0 || uncompressedSize > mlayout.MaxUncompressedSize ||
		directPayloadOff+compressedSize > len(data) {
		return nil, ErrMalformedHeader{
			Reason: fmt.Sprintf("block sizes %d/%d out of range", compressedSize, uncompressedSize),
		}
	}
	payload, err := mcodec.Decompress(
		data[directPayloadOff:directPayloadOff+compressedSize],
		uncompressedSize,
	)
	if err != nil {
		return nil, errors.Wrap(err, "decodeDirect")
	}

	vertexCount, ok := readInt32At(payload, mlayout.SharedCountOff)
	if !ok || vertexCount <= 0 || vertexCount > 200_000 {
		return nil, ErrMalformedHeader{
			Reason: fmt.Sprintf("vertex count %d out of range", vertexCount),
		}
	}
	indexCount, ok := readInt32At(payload, mlayout.TotalIndexOff)
	if !ok || indexCount <= 0 || indexCount%3 != 0 || indexCount > 600_000 {
		return nil, ErrMalformedHeader{
			Reason: fmt.Sprintf("index count %d out of range", indexCount),
		}
	}

	offset := mlayout.DirectVertexOff
	vertices, offset, err := mfield.ReadDirectVertices(payload, offset, vertexCount, 16)
	if err != nil {
		return nil, errors.Wrap(err, "decodeDirect read vertices")
	}
	// one uint32 attribute per vertex sits between positions and UVs
	offset += vertexCount * 4
	uvs, offset, err := mfield.ReadHalfUVs(payload, offset, vertexCount, 16, false)
	if err != nil {
		return nil, errors.Wrap(err, "decodeDirect read UVs")
	}
	if hasBones {
		offset += vertexCount * 8
	}
	faces, err := mindex.ReadRun(payload, offset, indexCount/3, mindex.Width16)
	if err != nil {
		return nil, errors.Wrap(err, "decodeDirect read indices")
	}
	return &DecodedMesh{
		Vertices: vertices,
		UVs:      uvs,
		Faces:    faces,
	}, nil
}
