package mesh

import (
	"fmt"

	"github.com/pkg/errors"

	"skymesh/mesh/lbytes"
	"skymesh/mesh/mcodec"
	"skymesh/mesh/mfield"
	"skymesh/mesh/mindex"
	"skymesh/mesh/mlayout"
)

// decodeStructured handles the newest export generation: a fixed file
// header with the sizes at 0x4E/0x52 and an LZ4 block at 0x56 whose
// payload opens with a self-describing flags block. This is the only
// layout that states its own index width.
func decodeStructured(data []byte, opts DecodeOptions) (*DecodedMesh, error) {
	if stripped, ok := mlayout.StripNamePrefix(data); ok {
		data = stripped
	}
	header, err := mlayout.ParseFileHeader(data)
	if err != nil {
		return nil, ErrMalformedHeader{Reason: err.Error()}
	}

	body, err := structuredBody(data, header)
	if err != nil {
		return nil, err
	}
	reader := lbytes.NewBytesReader(body)
	flags, err := mlayout.ParseBodyFlags(reader)
	if err != nil {
		return nil, ErrMalformedHeader{Reason: err.Error()}
	}
	vertexCount := int(flags.VertexCount)
	cornerCount := int(flags.CornerCount)
	if vertexCount <= 0 || vertexCount > 1_000_000 {
		return nil, ErrMalformedHeader{
			Reason: fmt.Sprintf("vertex count %d out of range", vertexCount),
		}
	}
	if cornerCount <= 0 || cornerCount%3 != 0 || cornerCount > 3_000_000 {
		return nil, ErrMalformedHeader{
			Reason: fmt.Sprintf("corner count %d out of range", cornerCount),
		}
	}
	if flags.SkipPositions != 0 {
		return nil, ErrMalformedHeader{Reason: "position data stripped from payload"}
	}

	// float32 x/y/z plus four padding bytes per record
	offset := reader.Offset()
	vertices, offset, err := mfield.ReadDirectVertices(body, offset, vertexCount, 16)
	if err != nil {
		return nil, errors.Wrap(err, "decodeStructured read vertices")
	}
	if flags.LoadNormals > 0 {
		offset += vertexCount * 4
	}
	var uvs []UV
	if flags.SkipUVs == 0 {
		uvs, offset, err = mfield.ReadHalfUVs(body, offset, vertexCount, 16, true)
		if err != nil {
			return nil, errors.Wrap(err, "decodeStructured read UVs")
		}
	}
	width := mindex.Width16
	if flags.IsIdx32 != 0 {
		width = mindex.Width32
	}
	faces, err := mindex.ReadRun(body, offset, cornerCount/3, width)
	if err != nil {
		return nil, errors.Wrap(err, "decodeStructured read indices")
	}
	return &DecodedMesh{
		Vertices: vertices,
		UVs:      uvs,
		Faces:    faces,
	}, nil
}

// structuredBody resolves the payload bytes: decompressed when the
// header claims a real compressed block, raw when the sizes say the
// block was stored uncompressed.
func structuredBody(data []byte, header *mlayout.FileHeader) ([]byte, error) {
	compressedSize := int(header.CompressedSize)
	uncompressedSize := int(header.UncompressedSize)
	if uncompressedSize <= 0 || uncompressedSize > mlayout.MaxUncompressedSize {
		return nil, ErrMalformedHeader{
			Reason: fmt.Sprintf("uncompressed size %d out of range", uncompressedSize),
		}
	}
	if compressedSize > 10 && compressedSize < uncompressedSize {
		if mlayout.FilePayloadOff+compressedSize > len(data) {
			return nil, ErrMalformedHeader{
				Reason: fmt.Sprintf("compressed block of %d bytes overruns the file", compressedSize),
			}
		}
		block := data[mlayout.FilePayloadOff : mlayout.FilePayloadOff+compressedSize]
		body, err := mcodec.Decompress(block, uncompressedSize)
		if err != nil {
			return nil, errors.Wrap(err, "structuredBody")
		}
		return body, nil
	}
	if mlayout.FilePayloadOff+uncompressedSize > len(data) {
		return nil, ErrMalformedHeader{
			Reason: fmt.Sprintf("stored block of %d bytes overruns the file", uncompressedSize),
		}
	}
	return data[mlayout.FilePayloadOff : mlayout.FilePayloadOff+uncompressedSize], nil
}
